package cmd

import (
	"github.com/spf13/cobra"

	"ledgercheck/internal/quality"
	"ledgercheck/internal/report"
	"ledgercheck/pkg/models"
)

var orphansCSV string

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List transactions whose customer does not exist",
	Long: `Run the referential integrity check and print the orphaned transaction
rows in full, newest first.`,
	RunE: runOrphans,
}

func runOrphans(cmd *cobra.Command, args []string) error {
	customers, transactions, err := loadRelations(cmd)
	if err != nil {
		return err
	}

	rep, err := quality.NewEvaluator(cfg).
		ReferentialIntegrity(transactions, models.ColCustomerID, customers, models.ColID)
	if err != nil {
		return err
	}

	newRenderer(cmd).Render(report.IntegrityTable(rep))
	return emit(cmd, orphansCSV, report.RelationTable("Orphaned transactions", rep.Orphans))
}

func init() {
	orphansCmd.Flags().StringVar(&orphansCSV, "csv", "", "also save the orphan rows as CSV to this path")
	rootCmd.AddCommand(orphansCmd)
}
