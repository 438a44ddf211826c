package models

import "fmt"

// Config is the top-level ledgercheck configuration. All thresholds that the
// evaluators use are explicit here so tests can exercise boundary behavior.
type Config struct {
	Source         Source         `yaml:"source"`
	Validity       Validity       `yaml:"validity"`
	Outliers       Outliers       `yaml:"outliers"`
	Reconciliation Reconciliation `yaml:"reconciliation"`
	Scorecard      Scorecard      `yaml:"scorecard"`
}

// Source describes where the customers/transactions relations come from.
type Source struct {
	Type             string `yaml:"type"`              // csv, database, sample
	CustomersPath    string `yaml:"customers_path"`    // csv: path to customers file
	TransactionsPath string `yaml:"transactions_path"` // csv: path to transactions file
	Driver           string `yaml:"driver"`            // database: sqlite or snowflake
	DSN              string `yaml:"dsn"`
	CustomersTable   string `yaml:"customers_table"`
	TransactionsTable string `yaml:"transactions_table"`
}

// Validity holds the declared field rules.
type Validity struct {
	AgeMin        int     `yaml:"age_min"`
	AgeMax        int     `yaml:"age_max"`
	AmountCeiling float64 `yaml:"amount_ceiling"`
}

// Outliers holds statistical outlier detection settings.
type Outliers struct {
	IQRMultiplier float64 `yaml:"iqr_multiplier"`
}

// Reconciliation holds variance and exception thresholds.
type Reconciliation struct {
	VarianceThresholdPct float64 `yaml:"variance_threshold_pct"`
	WarningSigma         float64 `yaml:"warning_sigma"`
	ExceptionSigma       float64 `yaml:"exception_sigma"`
}

// Scorecard holds the quality band cutoffs. Each cutoff is an inclusive
// lower bound.
type Scorecard struct {
	Excellent float64 `yaml:"excellent"`
	Good      float64 `yaml:"good"`
	Fair      float64 `yaml:"fair"`
}

// Default returns the configuration with the standard thresholds.
func Default() *Config {
	return &Config{
		Source: Source{
			Type:              "sample",
			CustomersTable:    "customers",
			TransactionsTable: "transactions",
		},
		Validity: Validity{
			AgeMin:        18,
			AgeMax:        120,
			AmountCeiling: 1_000_000,
		},
		Outliers: Outliers{
			IQRMultiplier: 1.5,
		},
		Reconciliation: Reconciliation{
			VarianceThresholdPct: 10,
			WarningSigma:         1,
			ExceptionSigma:       2,
		},
		Scorecard: Scorecard{
			Excellent: 95,
			Good:      85,
			Fair:      70,
		},
	}
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	if c.Validity.AgeMin > c.Validity.AgeMax {
		return fmt.Errorf("validity: age_min (%d) greater than age_max (%d)",
			c.Validity.AgeMin, c.Validity.AgeMax)
	}
	if c.Validity.AmountCeiling <= 0 {
		return fmt.Errorf("validity: amount_ceiling must be positive, got %v",
			c.Validity.AmountCeiling)
	}
	if c.Outliers.IQRMultiplier <= 0 {
		return fmt.Errorf("outliers: iqr_multiplier must be positive, got %v",
			c.Outliers.IQRMultiplier)
	}
	if c.Reconciliation.WarningSigma > c.Reconciliation.ExceptionSigma {
		return fmt.Errorf("reconciliation: warning_sigma (%v) greater than exception_sigma (%v)",
			c.Reconciliation.WarningSigma, c.Reconciliation.ExceptionSigma)
	}
	if c.Scorecard.Fair > c.Scorecard.Good || c.Scorecard.Good > c.Scorecard.Excellent {
		return fmt.Errorf("scorecard: band cutoffs must satisfy fair <= good <= excellent")
	}
	switch c.Source.Type {
	case "csv", "database", "sample", "":
	default:
		return fmt.Errorf("source: unknown type %q", c.Source.Type)
	}
	return nil
}
