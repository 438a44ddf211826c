package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ledgercheck/internal/config"
	"ledgercheck/internal/observability"
	"ledgercheck/internal/relation"
	"ledgercheck/internal/report"
	"ledgercheck/internal/source"
	"ledgercheck/pkg/models"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	cfg *models.Config

	rootCmd = &cobra.Command{
		Use:   "ledgercheck",
		Short: "Data quality and reconciliation checks for banking datasets",
		Long: "ledgercheck evaluates a customers/transactions dataset against declared " +
			"quality rules, detects statistical outliers, builds a composite quality " +
			"scorecard, and reconciles transaction totals across periods and systems.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				observability.Default().SetLevel(observability.DebugLevel)
			}
			// version and init must work without a loadable config
			switch cmd.Name() {
			case "version", "init":
				return nil
			}
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadFile(cfgFile)
			} else {
				cfg, err = config.Load()
			}
			return err
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.GetConfigFile()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initViper() {
	viper.SetEnvPrefix("LEDGERCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadRelations builds the configured loader and fetches both relations.
func loadRelations(cmd *cobra.Command) (customers, transactions *relation.Relation, err error) {
	loader, err := source.New(cfg.Source)
	if err != nil {
		return nil, nil, err
	}

	logger := observability.Default().WithField("source", cfg.Source.Type)
	logger.Debug("loading relations")

	customers, transactions, err = loader.Load(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("relations loaded", map[string]interface{}{
		"customers":    customers.NumRows(),
		"transactions": transactions.NumRows(),
	})
	return customers, transactions, nil
}

func newRenderer(cmd *cobra.Command) *report.Renderer {
	return report.NewRenderer(cmd.OutOrStdout(), noColor || viper.GetBool("no_color"))
}

// emit renders a table to the terminal and, when csvPath is set, also saves
// it as CSV.
func emit(cmd *cobra.Command, csvPath string, t report.Table) error {
	newRenderer(cmd).Render(t)
	if csvPath == "" {
		return nil
	}
	if err := report.SaveCSV(csvPath, t); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", csvPath)
	return nil
}
