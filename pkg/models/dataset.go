package models

import "time"

// Customer is a row of the customers relation. Loaded externally and
// read-only to the evaluators.
type Customer struct {
	ID          int64
	Name        string
	Age         int
	City        string
	AccountType string
}

// TransactionType is the categorical type of a transaction.
type TransactionType string

const (
	TypeDeposit    TransactionType = "Deposit"
	TypeWithdrawal TransactionType = "Withdrawal"
	TypeTransfer   TransactionType = "Transfer"
	TypePayment    TransactionType = "Payment"
)

// Transaction is a row of the transactions relation. CustomerID may be
// dangling; that is a quality signal, not a load error.
type Transaction struct {
	ID         int64
	CustomerID int64
	Date       time.Time
	Amount     float64
	Type       TransactionType
}

// Canonical column names shared by the loaders and evaluators.
const (
	ColID          = "id"
	ColName        = "name"
	ColAge         = "age"
	ColCity        = "city"
	ColAccountType = "account_type"
	ColCustomerID  = "customer_id"
	ColDate        = "date"
	ColAmount      = "amount"
	ColType        = "type"
)

// CustomerColumns are the required columns of the customers relation.
var CustomerColumns = []string{ColID, ColName, ColAge, ColCity, ColAccountType}

// TransactionColumns are the required columns of the transactions relation.
var TransactionColumns = []string{ColID, ColCustomerID, ColDate, ColAmount, ColType}
