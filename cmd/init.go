package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"ledgercheck/internal/config"
	"ledgercheck/pkg/models"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive configuration setup",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	fmt.Println("Setting up ledgercheck...")
	fmt.Println()

	if _, err := os.Stat(config.GetConfigFile()); err == nil {
		var overwrite bool
		prompt := &survey.Confirm{
			Message: "Configuration already exists. Do you want to overwrite it?",
			Default: false,
		}
		if err := survey.AskOne(prompt, &overwrite); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	newCfg := models.Default()

	var sourceType string
	if err := survey.AskOne(&survey.Select{
		Message: "Where should the dataset come from?",
		Options: []string{"sample", "csv", "database"},
		Default: "sample",
	}, &sourceType); err != nil {
		return err
	}
	newCfg.Source.Type = sourceType

	switch sourceType {
	case "csv":
		qs := []*survey.Question{
			{
				Name:     "customerspath",
				Prompt:   &survey.Input{Message: "Customers CSV path:"},
				Validate: survey.Required,
			},
			{
				Name:     "transactionspath",
				Prompt:   &survey.Input{Message: "Transactions CSV path:"},
				Validate: survey.Required,
			},
		}
		answers := struct {
			CustomersPath    string `survey:"customerspath"`
			TransactionsPath string `survey:"transactionspath"`
		}{}
		if err := survey.Ask(qs, &answers); err != nil {
			return err
		}
		newCfg.Source.CustomersPath = answers.CustomersPath
		newCfg.Source.TransactionsPath = answers.TransactionsPath

	case "database":
		qs := []*survey.Question{
			{
				Name: "driver",
				Prompt: &survey.Select{
					Message: "Database driver:",
					Options: []string{"sqlite", "snowflake"},
					Default: "sqlite",
				},
			},
			{
				Name:     "dsn",
				Prompt:   &survey.Input{Message: "Connection string (DSN):"},
				Validate: survey.Required,
			},
			{
				Name:   "customerstable",
				Prompt: &survey.Input{Message: "Customers table:", Default: "customers"},
			},
			{
				Name:   "transactionstable",
				Prompt: &survey.Input{Message: "Transactions table:", Default: "transactions"},
			},
		}
		answers := struct {
			Driver            string
			DSN               string `survey:"dsn"`
			CustomersTable    string `survey:"customerstable"`
			TransactionsTable string `survey:"transactionstable"`
		}{}
		if err := survey.Ask(qs, &answers); err != nil {
			return err
		}
		newCfg.Source.Driver = answers.Driver
		newCfg.Source.DSN = answers.DSN
		newCfg.Source.CustomersTable = answers.CustomersTable
		newCfg.Source.TransactionsTable = answers.TransactionsTable
	}

	var tune bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Adjust thresholds (amount ceiling, variance)? Defaults are fine for most datasets.",
		Default: false,
	}, &tune); err != nil {
		return err
	}
	if tune {
		if err := askFloat("Maximum valid transaction amount:", &newCfg.Validity.AmountCeiling); err != nil {
			return err
		}
		if err := askFloat("Period variance threshold (%):", &newCfg.Reconciliation.VarianceThresholdPct); err != nil {
			return err
		}
		if err := askFloat("Outlier IQR multiplier:", &newCfg.Outliers.IQRMultiplier); err != nil {
			return err
		}
	}

	if err := newCfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(newCfg); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Configuration saved to:", config.GetConfigFile())
	fmt.Println()
	fmt.Println("Try it out: ledgercheck scorecard")
	return nil
}

// askFloat prompts with the current value as default and parses the answer
// in place.
func askFloat(message string, target *float64) error {
	var raw string
	prompt := &survey.Input{
		Message: message,
		Default: strconv.FormatFloat(*target, 'f', -1, 64),
	}
	if err := survey.AskOne(prompt, &raw); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", raw)
	}
	*target = f
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
