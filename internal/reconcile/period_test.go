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

func newTestEngine() *Engine {
	return NewEngine(models.Default().Reconciliation)
}

func monthly(t *testing.T, totals map[string]float64) []PeriodComparison {
	t.Helper()

	var rows []testutil.TransactionRow
	id := int64(1)
	for month, total := range totals {
		date, err := time.Parse("2006-01", month)
		require.NoError(t, err)
		rows = append(rows, testutil.Tx(id, 1, date.Add(10*24*time.Hour), total, "Deposit"))
		id++
	}

	out, err := newTestEngine().PeriodOverPeriod(
		testutil.Transactions(rows...), models.ColDate, models.ColAmount)
	require.NoError(t, err)
	return out
}

func TestPeriodOverPeriod(t *testing.T) {
	out := monthly(t, map[string]float64{
		"2024-01": 100,
		"2024-02": 150,
		"2024-03": 90,
	})

	// The first month has no predecessor and is not reported.
	require.Len(t, out, 2)

	feb := out[0]
	assert.Equal(t, "2024-02", feb.Period)
	assert.Equal(t, "2024-01", feb.PrevPeriod)
	require.True(t, feb.VariancePct.Valid)
	assert.InDelta(t, 50, feb.VariancePct.Float64, 1e-9)
	assert.Equal(t, StatusSignificantChange, feb.Status)

	mar := out[1]
	assert.Equal(t, "2024-03", mar.Period)
	require.True(t, mar.VariancePct.Valid)
	assert.InDelta(t, -40, mar.VariancePct.Float64, 1e-9)
	assert.Equal(t, StatusSignificantChange, mar.Status)
}

func TestPeriodOverPeriodSmallChangeIsNormal(t *testing.T) {
	out := monthly(t, map[string]float64{
		"2024-01": 100,
		"2024-02": 105,
	})

	require.Len(t, out, 1)
	assert.Equal(t, StatusNormal, out[0].Status)
	require.True(t, out[0].VariancePct.Valid)
	assert.InDelta(t, 5, out[0].VariancePct.Float64, 1e-9)
}

func TestPeriodOverPeriodZeroPredecessor(t *testing.T) {
	out := monthly(t, map[string]float64{
		"2024-01": 0,
		"2024-02": 250,
	})

	require.Len(t, out, 1)
	assert.False(t, out[0].VariancePct.Valid, "variance over a zero base must be undefined, not zero")
	assert.Equal(t, StatusSignificantChange, out[0].Status, "a jump from zero is still a change")
}

func TestPeriodOverPeriodAggregates(t *testing.T) {
	jan := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	rel := testutil.Transactions(
		testutil.Tx(1, 1, jan, 60, "Deposit"),
		testutil.Tx(2, 1, jan.Add(48*time.Hour), 40, "Payment"),
		testutil.Tx(3, 1, feb, 200, "Deposit"),
	)

	out, err := newTestEngine().PeriodOverPeriod(rel, models.ColDate, models.ColAmount)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, 1, out[0].Count)
	assert.Equal(t, 2, out[0].PrevCount)
	assert.Equal(t, 100.0, out[0].PrevTotal)
	assert.Equal(t, 200.0, out[0].Total)
	assert.Equal(t, 100.0, out[0].Variance)
}

func TestPeriodOverPeriodEmptyRelation(t *testing.T) {
	out, err := newTestEngine().PeriodOverPeriod(
		testutil.Transactions(), models.ColDate, models.ColAmount)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPeriodOverPeriodMissingColumn(t *testing.T) {
	_, err := newTestEngine().PeriodOverPeriod(
		testutil.Transactions(), models.ColDate, "value")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSchemaMismatch, errors.GetErrorCode(err))
}
