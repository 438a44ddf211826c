package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgercheck/pkg/models"
)

func TestSampleLoaderDeterministic(t *testing.T) {
	ctx := context.Background()

	c1, t1, err := NewSampleLoader(7).Load(ctx)
	require.NoError(t, err)
	c2, t2, err := NewSampleLoader(7).Load(ctx)
	require.NoError(t, err)

	require.Equal(t, c1.NumRows(), c2.NumRows())
	require.Equal(t, t1.NumRows(), t2.NumRows())

	for i := 0; i < c1.NumRows(); i++ {
		assert.Equal(t, c1.Row(i).Values(), c2.Row(i).Values())
	}
}

func TestSampleLoaderHasDeliberateDefects(t *testing.T) {
	customers, transactions, err := NewSampleLoader(defaultSampleSeed).Load(context.Background())
	require.NoError(t, err)

	require.Positive(t, customers.NumRows())
	require.Positive(t, transactions.NumRows())

	names, err := customers.Column(models.ColName)
	require.NoError(t, err)
	nullNames := 0
	for _, v := range names {
		if v.IsNull() {
			nullNames++
		}
	}
	assert.Positive(t, nullNames, "sample must include missing names")

	ids, err := customers.Column(models.ColID)
	require.NoError(t, err)
	seen := map[string]int{}
	for _, v := range ids {
		seen[v.Key()]++
	}
	assert.Less(t, len(seen), len(ids), "sample must include a duplicate customer id")

	known := map[string]struct{}{}
	for _, v := range ids {
		known[v.Key()] = struct{}{}
	}
	fks, err := transactions.Column(models.ColCustomerID)
	require.NoError(t, err)
	orphans := 0
	for _, v := range fks {
		if _, ok := known[v.Key()]; !ok {
			orphans++
		}
	}
	assert.Positive(t, orphans, "sample must include orphaned transactions")

	amounts, err := transactions.Floats(models.ColAmount)
	require.NoError(t, err)
	extreme, negative := 0, 0
	for _, f := range amounts {
		if f > 1_000_000 {
			extreme++
		}
		if f < 0 {
			negative++
		}
	}
	assert.Positive(t, extreme, "sample must include amounts above the ceiling")
	assert.Positive(t, negative, "sample must include negative amounts")
}
