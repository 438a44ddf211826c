package source

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgercheck/pkg/errors"
	"ledgercheck/pkg/models"
)

func mockLoader(t *testing.T) (*DatabaseLoader, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	loader := NewDatabaseLoader(Config{
		Driver:            "sqlite",
		DSN:               ":memory:",
		CustomersTable:    "customers",
		TransactionsTable: "transactions",
		Timeout:           5 * time.Second,
	})
	loader.db = db
	loader.connected = true

	return loader, mock
}

func TestDatabaseLoaderLoad(t *testing.T) {
	loader, mock := mockLoader(t)

	when := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, name, age, city, account_type FROM customers").
		WillReturnRows(sqlmock.NewRows(models.CustomerColumns).
			AddRow(int64(1), "Alice", int64(30), "Oslo", "Savings").
			AddRow(int64(2), nil, int64(41), "Bergen", "Current"))

	mock.ExpectQuery("SELECT id, customer_id, date, amount, type FROM transactions").
		WillReturnRows(sqlmock.NewRows(models.TransactionColumns).
			AddRow(int64(10), int64(1), when, 100.5, "Deposit").
			AddRow(int64(11), int64(99), "2024-01-06", []byte("25.00"), "Payment"))

	customers, transactions, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 2, customers.NumRows())
	name, err := customers.Row(1).Value(models.ColName)
	require.NoError(t, err)
	assert.True(t, name.IsNull(), "SQL NULL loads as a null cell")

	// Text dates and byte amounts re-parse into typed cells.
	date, err := transactions.Row(1).Value(models.ColDate)
	require.NoError(t, err)
	_, ok := date.Time()
	assert.True(t, ok)
	amount, err := transactions.Row(1).Value(models.ColAmount)
	require.NoError(t, err)
	f, ok := amount.Float64()
	require.True(t, ok)
	assert.Equal(t, 25.0, f)
}

func TestDatabaseLoaderMissingColumn(t *testing.T) {
	loader, mock := mockLoader(t)

	mock.ExpectQuery("SELECT id, name, age, city, account_type FROM customers").
		WillReturnError(fmt.Errorf("SQL logic error: no such column: account_type"))

	_, _, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSchemaMismatch, errors.GetErrorCode(err))
}

func TestDatabaseLoaderQueryFailure(t *testing.T) {
	loader, mock := mockLoader(t)

	mock.ExpectQuery("SELECT id, name, age, city, account_type FROM customers").
		WillReturnError(fmt.Errorf("connection reset"))

	_, _, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSourceRead, errors.GetErrorCode(err))
}

func TestDatabaseLoaderReleasesConnection(t *testing.T) {
	loader, mock := mockLoader(t)

	mock.ExpectQuery("SELECT id, name, age, city, account_type FROM customers").
		WillReturnRows(sqlmock.NewRows(models.CustomerColumns))
	mock.ExpectQuery("SELECT id, customer_id, date, amount, type FROM transactions").
		WillReturnRows(sqlmock.NewRows(models.TransactionColumns))
	mock.ExpectClose()

	_, _, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.False(t, loader.connected)
}
