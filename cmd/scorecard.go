package cmd

import (
	"github.com/spf13/cobra"

	"ledgercheck/internal/observability"
	"ledgercheck/internal/quality"
	"ledgercheck/internal/report"
)

var scorecardCSV string

var scorecardCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "Build the composite quality scorecard",
	Long: `Evaluate every standard quality dimension over the dataset and combine
the scores into a banded scorecard with an overall quality score.`,
	RunE: runScorecard,
}

func runScorecard(cmd *cobra.Command, args []string) error {
	customers, transactions, err := loadRelations(cmd)
	if err != nil {
		return err
	}

	rep := quality.NewEvaluator(cfg).DatasetScorecard(customers, transactions)
	observability.Default().Info("scorecard built", map[string]interface{}{
		"run_id":  rep.RunID,
		"entries": len(rep.Entries),
	})
	return emit(cmd, scorecardCSV, report.ScorecardTable(rep))
}

func init() {
	scorecardCmd.Flags().StringVar(&scorecardCSV, "csv", "", "also save the scorecard as CSV to this path")
	rootCmd.AddCommand(scorecardCmd)
}
