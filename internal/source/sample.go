package source

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"ledgercheck/internal/relation"
	"ledgercheck/pkg/models"
)

const defaultSampleSeed = 42

// SampleLoader generates a deterministic in-memory banking dataset with
// deliberate quality defects: missing names and ages, a duplicated customer
// id, orphaned transactions, out-of-range ages and amounts, a future-dated
// transaction, and a handful of extreme amounts for the outlier detector.
type SampleLoader struct {
	seed int64
}

// NewSampleLoader creates a sample loader. The same seed always yields the
// same dataset, so repeated evaluations are comparable.
func NewSampleLoader(seed int64) *SampleLoader {
	return &SampleLoader{seed: seed}
}

var (
	sampleCities   = []string{"Oslo", "Bergen", "Trondheim", "Stavanger", "Drammen"}
	sampleAccounts = []string{"Savings", "Current", "Business"}
	sampleTypes    = []models.TransactionType{
		models.TypeDeposit, models.TypeWithdrawal, models.TypeTransfer, models.TypePayment,
	}
)

// Load generates the two relations.
func (l *SampleLoader) Load(ctx context.Context) (*relation.Relation, *relation.Relation, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	rng := rand.New(rand.NewSource(l.seed))
	now := time.Now().UTC().Truncate(time.Hour)

	const nCustomers = 200
	const nTransactions = 2000

	customers := relation.New("customers", models.CustomerColumns)
	for i := 1; i <= nCustomers; i++ {
		id := relation.Int(int64(i))
		name := relation.String(fmt.Sprintf("Customer %03d", i))
		age := relation.Int(int64(18 + rng.Intn(60)))

		switch {
		case i%37 == 0:
			name = relation.Null() // missing name
		case i%53 == 0:
			age = relation.Null() // missing age
		case i%71 == 0:
			age = relation.Int(int64(130 + rng.Intn(20))) // out-of-range age
		case i == nCustomers:
			id = relation.Int(1) // duplicate key
		}

		_ = customers.AppendRow(
			id,
			name,
			age,
			relation.String(sampleCities[rng.Intn(len(sampleCities))]),
			relation.String(sampleAccounts[rng.Intn(len(sampleAccounts))]),
		)
	}

	transactions := relation.New("transactions", models.TransactionColumns)
	for i := 1; i <= nTransactions; i++ {
		customerID := int64(1 + rng.Intn(nCustomers))
		if i%97 == 0 {
			customerID = int64(nCustomers + 1000 + rng.Intn(50)) // orphan
		}

		date := now.AddDate(0, 0, -rng.Intn(365)).Add(-time.Duration(rng.Intn(24)) * time.Hour)
		if i%499 == 0 {
			date = now.AddDate(0, 1, 0) // future-dated
		}

		amount := relation.Float(float64(1+rng.Intn(500_000)) / 100)
		switch {
		case i%211 == 0:
			amount = relation.Float(2_000_000 + rng.Float64()*500_000) // above ceiling, extreme
		case i%307 == 0:
			amount = relation.Float(-float64(1 + rng.Intn(1000))) // negative
		case i%401 == 0:
			amount = relation.Null() // missing
		}

		_ = transactions.AppendRow(
			relation.Int(int64(i)),
			relation.Int(customerID),
			relation.Time(date),
			amount,
			relation.String(string(sampleTypes[rng.Intn(len(sampleTypes))])),
		)
	}

	return customers, transactions, nil
}
