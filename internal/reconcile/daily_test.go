package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgercheck/internal/testutil"
	"ledgercheck/pkg/errors"
	"ledgercheck/pkg/models"
)

// dailyRel builds one transaction per (day offset, total) for a category.
func dailyRel(category string, totals ...float64) []testutil.TransactionRow {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rows := make([]testutil.TransactionRow, 0, len(totals))
	for i, total := range totals {
		rows = append(rows, testutil.Tx(int64(i+1), 1, base.AddDate(0, 0, i), total, category))
	}
	return rows
}

func TestDailyExceptionsFlagsSpike(t *testing.T) {
	rows := dailyRel("Deposit",
		100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 1000)

	out, err := newTestEngine().DailyExceptions(
		testutil.Transactions(rows...), models.ColDate, models.ColType, models.ColAmount)
	require.NoError(t, err)

	require.Len(t, out, 1, "only the spike day departs by more than one sigma")
	spike := out[0]
	assert.Equal(t, "2024-01-11", spike.Day)
	assert.Equal(t, "Deposit", spike.Category)
	assert.Equal(t, StatusException, spike.Status)
	assert.Equal(t, 1000.0, spike.Total)
	require.True(t, spike.ZScore.Valid)
	assert.Greater(t, spike.ZScore.Float64, 2.0)
}

func TestDailyExceptionsWarning(t *testing.T) {
	// Totals [10,10,10,10,16]: sigma 2.4, z for the last day is exactly 2.0,
	// which is over the warning threshold but not over the exception one.
	rows := dailyRel("Payment", 10, 10, 10, 10, 16)

	out, err := newTestEngine().DailyExceptions(
		testutil.Transactions(rows...), models.ColDate, models.ColType, models.ColAmount)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, StatusWarning, out[0].Status)
	require.True(t, out[0].ZScore.Valid)
	assert.InDelta(t, 2.0, out[0].ZScore.Float64, 1e-9)
}

func TestDailyExceptionsConstantSeriesIsQuiet(t *testing.T) {
	rows := dailyRel("Transfer", 50, 50, 50, 50)

	out, err := newTestEngine().DailyExceptions(
		testutil.Transactions(rows...), models.ColDate, models.ColType, models.ColAmount)
	require.NoError(t, err)
	assert.Empty(t, out, "a constant series has no departures to flag")
}

func TestDailyExceptionsAggregatesWithinDay(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	// Ten quiet days at 100, then a day whose two transactions sum to 1000.
	rows := dailyRel("Deposit", 100, 100, 100, 100, 100, 100, 100, 100, 100, 100)
	rows = append(rows,
		testutil.Tx(90, 1, base.AddDate(0, 0, 10), 400, "Deposit"),
		testutil.Tx(91, 1, base.AddDate(0, 0, 10).Add(2*time.Hour), 600, "Deposit"),
	)

	out, err := newTestEngine().DailyExceptions(
		testutil.Transactions(rows...), models.ColDate, models.ColType, models.ColAmount)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, 1000.0, out[0].Total)
	assert.Equal(t, StatusException, out[0].Status)
}

func TestDailyExceptionsIndependentCategories(t *testing.T) {
	rows := dailyRel("Deposit", 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 1000)
	payments := dailyRel("Payment", 20, 20, 20, 20)
	for i := range payments {
		payments[i].ID += 100
	}
	rows = append(rows, payments...)

	out, err := newTestEngine().DailyExceptions(
		testutil.Transactions(rows...), models.ColDate, models.ColType, models.ColAmount)
	require.NoError(t, err)

	require.Len(t, out, 1, "a quiet category must not be dragged along by a noisy one")
	assert.Equal(t, "Deposit", out[0].Category)
}

func TestDailyExceptionsOrderedByDeviation(t *testing.T) {
	rows := dailyRel("Deposit",
		100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 1200, 2000)

	out, err := newTestEngine().DailyExceptions(
		testutil.Transactions(rows...), models.ColDate, models.ColType, models.ColAmount)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(out), 2)
	assert.Equal(t, 2000.0, out[0].Total, "largest deviation first")
}

func TestDailyExceptionsMissingColumn(t *testing.T) {
	_, err := newTestEngine().DailyExceptions(
		testutil.Transactions(), models.ColDate, "category", models.ColAmount)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSchemaMismatch, errors.GetErrorCode(err))
}
