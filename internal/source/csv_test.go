package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgercheck/pkg/errors"
	"ledgercheck/pkg/models"
)

const customersCSV = `id,name,age,city,account_type
1,Alice,30,Oslo,Savings
2,,41,Bergen,Current
3,Carol,,Trondheim,Business
`

const transactionsCSV = `id,customer_id,date,amount,type
10,1,2024-01-05,100.50,Deposit
11,2,2024-01-06 09:30:00,-20,Withdrawal
12,99,2024-02-01,not-a-number,Transfer
`

func writeCSVPair(t *testing.T, customers, transactions string) models.Source {
	t.Helper()
	dir := t.TempDir()

	cPath := filepath.Join(dir, "customers.csv")
	require.NoError(t, os.WriteFile(cPath, []byte(customers), 0o600))
	tPath := filepath.Join(dir, "transactions.csv")
	require.NoError(t, os.WriteFile(tPath, []byte(transactions), 0o600))

	return models.Source{Type: "csv", CustomersPath: cPath, TransactionsPath: tPath}
}

func TestCSVLoader(t *testing.T) {
	cfg := writeCSVPair(t, customersCSV, transactionsCSV)

	customers, transactions, err := NewCSVLoader(cfg).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, customers.NumRows())
	assert.Equal(t, 3, transactions.NumRows())

	// Empty cells load as nulls.
	name, err := customers.Row(1).Value(models.ColName)
	require.NoError(t, err)
	assert.True(t, name.IsNull())
	age, err := customers.Row(2).Value(models.ColAge)
	require.NoError(t, err)
	assert.True(t, age.IsNull())

	// Numeric and date cells load typed.
	amount, err := transactions.Row(0).Value(models.ColAmount)
	require.NoError(t, err)
	f, ok := amount.Float64()
	require.True(t, ok)
	assert.Equal(t, 100.50, f)

	date, err := transactions.Row(1).Value(models.ColDate)
	require.NoError(t, err)
	_, ok = date.Time()
	assert.True(t, ok)

	// Unparseable numbers stay text for the validity checks to score.
	bad, err := transactions.Row(2).Value(models.ColAmount)
	require.NoError(t, err)
	_, ok = bad.Float64()
	assert.False(t, ok)
	assert.Equal(t, "not-a-number", bad.String())
}

func TestCSVLoaderMissingRequiredColumn(t *testing.T) {
	cfg := writeCSVPair(t,
		"id,name,age,city\n1,Alice,30,Oslo\n", // no account_type
		transactionsCSV,
	)

	_, _, err := NewCSVLoader(cfg).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSchemaMismatch, errors.GetErrorCode(err))
}

func TestCSVLoaderExtraColumnsRideAlong(t *testing.T) {
	cfg := writeCSVPair(t,
		"id,name,age,city,account_type,segment\n1,Alice,30,Oslo,Savings,Retail\n",
		transactionsCSV,
	)

	customers, _, err := NewCSVLoader(cfg).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, customers.HasColumn("segment"))
}

func TestCSVLoaderFileNotFound(t *testing.T) {
	cfg := models.Source{
		Type:             "csv",
		CustomersPath:    filepath.Join(t.TempDir(), "nope.csv"),
		TransactionsPath: filepath.Join(t.TempDir(), "nope.csv"),
	}

	_, _, err := NewCSVLoader(cfg).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.GetErrorCode(err))
}

func TestNewLoaderDispatch(t *testing.T) {
	tests := []struct {
		name    string
		cfg     models.Source
		want    interface{}
		wantErr bool
	}{
		{name: "csv", cfg: models.Source{Type: "csv"}, want: &CSVLoader{}},
		{name: "database", cfg: models.Source{Type: "database", Driver: "sqlite"}, want: &DatabaseLoader{}},
		{name: "sample", cfg: models.Source{Type: "sample"}, want: &SampleLoader{}},
		{name: "default is sample", cfg: models.Source{}, want: &SampleLoader{}},
		{name: "unknown", cfg: models.Source{Type: "parquet"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, loader)
		})
	}
}
