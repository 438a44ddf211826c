package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgercheck/internal/quality"
	"ledgercheck/internal/report"
	"ledgercheck/pkg/models"
)

var (
	outlierRelation string
	outlierField    string
	outlierCSV      string
)

var outliersCmd = &cobra.Command{
	Use:   "outliers",
	Short: "Detect statistical outliers in a numeric column",
	Long: `Compute mean, standard deviation and interpolated quartiles for a numeric
column and flag every row outside the IQR fences.`,
	RunE: runOutliers,
}

func runOutliers(cmd *cobra.Command, args []string) error {
	customers, transactions, err := loadRelations(cmd)
	if err != nil {
		return err
	}

	rel := transactions
	switch outlierRelation {
	case "transactions":
	case "customers":
		rel = customers
	default:
		return fmt.Errorf("unknown relation %q (want customers or transactions)", outlierRelation)
	}

	e := quality.NewEvaluator(cfg)
	rep, err := e.DetectOutliers(rel, outlierField)
	if err != nil {
		return err
	}
	return emit(cmd, outlierCSV, report.OutlierTable(rep))
}

func init() {
	outliersCmd.Flags().StringVar(&outlierRelation, "relation", "transactions", "relation to scan (customers or transactions)")
	outliersCmd.Flags().StringVar(&outlierField, "field", models.ColAmount, "numeric column to scan")
	outliersCmd.Flags().StringVar(&outlierCSV, "csv", "", "also save the outlier table as CSV to this path")
	rootCmd.AddCommand(outliersCmd)
}
