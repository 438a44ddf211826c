// Package testutil provides relation fixtures shared by the evaluator and
// reconciliation tests.
package testutil

import (
	"time"

	"ledgercheck/internal/relation"
	"ledgercheck/pkg/models"
)

// CustomerRow is a loose customer row for fixtures. Nil pointers become
// null cells.
type CustomerRow struct {
	ID          int64
	Name        *string
	Age         *int
	City        string
	AccountType string
}

// TransactionRow is a loose transaction row for fixtures.
type TransactionRow struct {
	ID         int64
	CustomerID int64
	Date       time.Time
	Amount     *float64
	Type       string
}

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// IntP returns a pointer to i.
func IntP(i int) *int { return &i }

// FloatP returns a pointer to f.
func FloatP(f float64) *float64 { return &f }

// Customers builds a customers relation from fixture rows.
func Customers(rows ...CustomerRow) *relation.Relation {
	rel := relation.New("customers", models.CustomerColumns)
	for _, r := range rows {
		name := relation.Null()
		if r.Name != nil {
			name = relation.String(*r.Name)
		}
		age := relation.Null()
		if r.Age != nil {
			age = relation.Int(int64(*r.Age))
		}
		_ = rel.AppendRow(
			relation.Int(r.ID),
			name,
			age,
			relation.String(r.City),
			relation.String(r.AccountType),
		)
	}
	return rel
}

// Transactions builds a transactions relation from fixture rows.
func Transactions(rows ...TransactionRow) *relation.Relation {
	rel := relation.New("transactions", models.TransactionColumns)
	for _, r := range rows {
		amount := relation.Null()
		if r.Amount != nil {
			amount = relation.Float(*r.Amount)
		}
		date := relation.Null()
		if !r.Date.IsZero() {
			date = relation.Time(r.Date)
		}
		_ = rel.AppendRow(
			relation.Int(r.ID),
			relation.Int(r.CustomerID),
			date,
			amount,
			relation.String(r.Type),
		)
	}
	return rel
}

// Tx is shorthand for a well-formed transaction fixture row.
func Tx(id, customerID int64, date time.Time, amount float64, typ string) TransactionRow {
	return TransactionRow{
		ID:         id,
		CustomerID: customerID,
		Date:       date,
		Amount:     FloatP(amount),
		Type:       typ,
	}
}

// Cust is shorthand for a well-formed customer fixture row.
func Cust(id int64, name string, age int, city, accountType string) CustomerRow {
	return CustomerRow{
		ID:          id,
		Name:        Str(name),
		Age:         IntP(age),
		City:        city,
		AccountType: accountType,
	}
}
