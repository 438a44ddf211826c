package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 18, cfg.Validity.AgeMin)
	assert.Equal(t, 120, cfg.Validity.AgeMax)
	assert.Equal(t, float64(1_000_000), cfg.Validity.AmountCeiling)
	assert.Equal(t, 1.5, cfg.Outliers.IQRMultiplier)
	assert.Equal(t, float64(10), cfg.Reconciliation.VarianceThresholdPct)
	assert.Equal(t, float64(95), cfg.Scorecard.Excellent)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid default",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "age bounds inverted",
			mutate:  func(c *Config) { c.Validity.AgeMin = 130 },
			wantErr: "age_min",
		},
		{
			name:    "zero amount ceiling",
			mutate:  func(c *Config) { c.Validity.AmountCeiling = 0 },
			wantErr: "amount_ceiling",
		},
		{
			name:    "negative iqr multiplier",
			mutate:  func(c *Config) { c.Outliers.IQRMultiplier = -1 },
			wantErr: "iqr_multiplier",
		},
		{
			name:    "sigma thresholds inverted",
			mutate:  func(c *Config) { c.Reconciliation.WarningSigma = 3 },
			wantErr: "warning_sigma",
		},
		{
			name:    "band cutoffs out of order",
			mutate:  func(c *Config) { c.Scorecard.Fair = 99 },
			wantErr: "band cutoffs",
		},
		{
			name:    "unknown source type",
			mutate:  func(c *Config) { c.Source.Type = "parquet" },
			wantErr: "unknown type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
