package cmd

import (
	"github.com/spf13/cobra"

	"ledgercheck/internal/quality"
	"ledgercheck/internal/report"
	"ledgercheck/pkg/models"
)

var qualityCSV string

var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Evaluate completeness, uniqueness, validity and referential integrity",
	Long: `Run the declared quality rules against the loaded dataset and print one
profile per (field, dimension) pair plus a referential integrity summary.`,
	RunE: runQuality,
}

func runQuality(cmd *cobra.Command, args []string) error {
	customers, transactions, err := loadRelations(cmd)
	if err != nil {
		return err
	}
	e := quality.NewEvaluator(cfg)

	type check func() (*quality.FieldProfile, error)
	checks := []check{
		func() (*quality.FieldProfile, error) { return e.Completeness(customers, models.ColName) },
		func() (*quality.FieldProfile, error) { return e.Completeness(customers, models.ColAge) },
		func() (*quality.FieldProfile, error) { return e.Uniqueness(customers, models.ColID) },
		func() (*quality.FieldProfile, error) { return e.Uniqueness(transactions, models.ColID) },
		func() (*quality.FieldProfile, error) { return e.Validity(customers, models.ColAge, e.AgeRule()) },
		func() (*quality.FieldProfile, error) { return e.Validity(transactions, models.ColAmount, e.AmountRule()) },
		func() (*quality.FieldProfile, error) { return e.Validity(transactions, models.ColDate, e.DateRule()) },
	}

	profiles := make([]*quality.FieldProfile, 0, len(checks))
	for _, c := range checks {
		p, err := c()
		if err != nil {
			return err
		}
		profiles = append(profiles, p)
	}

	if err := emit(cmd, qualityCSV, report.ProfileTable(profiles...)); err != nil {
		return err
	}

	integrity, err := e.ReferentialIntegrity(transactions, models.ColCustomerID, customers, models.ColID)
	if err != nil {
		return err
	}
	newRenderer(cmd).Render(report.IntegrityTable(integrity))
	return nil
}

func init() {
	qualityCmd.Flags().StringVar(&qualityCSV, "csv", "", "also save the profile table as CSV to this path")
	rootCmd.AddCommand(qualityCmd)
}
