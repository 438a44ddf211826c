package cmd

import (
	"github.com/spf13/cobra"

	"ledgercheck/internal/reconcile"
	"ledgercheck/internal/report"
	"ledgercheck/pkg/models"
)

var (
	reconcileCSV   string
	systemATypes   []string
	crossSystemKey string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile transaction totals across periods, systems and days",
}

var reconcilePeriodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Compare each calendar month to its predecessor",
	Long: `Aggregate transaction totals by calendar month and flag months whose
total moved beyond the configured variance threshold.`,
	RunE: runReconcilePeriods,
}

var reconcileSystemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "Cross-check two transaction populations with a full outer join",
	Long: `Split the transactions by category into two simulated systems, aggregate
each side by the shared key, and reconcile counts and totals per key.`,
	RunE: runReconcileSystems,
}

var reconcileDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Flag daily totals that depart from the category's historical mean",
	RunE:  runReconcileDaily,
}

func runReconcilePeriods(cmd *cobra.Command, args []string) error {
	_, transactions, err := loadRelations(cmd)
	if err != nil {
		return err
	}

	records, err := reconcile.NewEngine(cfg.Reconciliation).
		PeriodOverPeriod(transactions, models.ColDate, models.ColAmount)
	if err != nil {
		return err
	}
	return emit(cmd, reconcileCSV, report.PeriodTable(records))
}

func runReconcileSystems(cmd *cobra.Command, args []string) error {
	_, transactions, err := loadRelations(cmd)
	if err != nil {
		return err
	}

	sysA, sysB, err := reconcile.SplitByCategory(transactions, models.ColType, systemATypes)
	if err != nil {
		return err
	}
	records, err := reconcile.NewEngine(cfg.Reconciliation).
		CrossSystemRelations(sysA, sysB, crossSystemKey, models.ColAmount)
	if err != nil {
		return err
	}
	return emit(cmd, reconcileCSV, report.CrossSystemTable(records))
}

func runReconcileDaily(cmd *cobra.Command, args []string) error {
	_, transactions, err := loadRelations(cmd)
	if err != nil {
		return err
	}

	records, err := reconcile.NewEngine(cfg.Reconciliation).
		DailyExceptions(transactions, models.ColDate, models.ColType, models.ColAmount)
	if err != nil {
		return err
	}
	return emit(cmd, reconcileCSV, report.DailyExceptionTable(records))
}

func init() {
	reconcileCmd.PersistentFlags().StringVar(&reconcileCSV, "csv", "", "also save the result table as CSV to this path")
	reconcileSystemsCmd.Flags().StringSliceVar(&systemATypes, "system-a-types",
		[]string{string(models.TypeDeposit), string(models.TypeTransfer)},
		"transaction types assigned to system A; everything else is system B")
	reconcileSystemsCmd.Flags().StringVar(&crossSystemKey, "key", models.ColCustomerID,
		"shared key to aggregate and join on")

	reconcileCmd.AddCommand(reconcilePeriodsCmd)
	reconcileCmd.AddCommand(reconcileSystemsCmd)
	reconcileCmd.AddCommand(reconcileDailyCmd)
	rootCmd.AddCommand(reconcileCmd)
}
