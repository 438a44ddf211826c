package reconcile

import "database/sql"

// Statuses attached to reconciliation records.
const (
	StatusNormal            = "Normal"
	StatusSignificantChange = "Significant Change"

	StatusOnlyInA = "Only in System A"
	StatusOnlyInB = "Only in System B"
	StatusInBoth  = "In Both"

	StatusOK        = "OK"
	StatusWarning   = "Warning"
	StatusException = "Exception"
)

// PeriodComparison compares one calendar month to its immediate predecessor.
// VariancePct is undefined (not zero) when the previous total is zero.
type PeriodComparison struct {
	Period      string
	Count       int
	Total       float64
	PrevPeriod  string
	PrevCount   int
	PrevTotal   float64
	Variance    float64
	VariancePct sql.NullFloat64
	Status      string
}

// SystemAggregate is one side's aggregate for a shared key.
type SystemAggregate struct {
	Key   string
	Count int
	Total float64
}

// CrossSystemRecord is one row of a two-system set reconciliation. A key
// missing from one side contributes zero count and amount to that side, and
// variances are still computed arithmetically.
type CrossSystemRecord struct {
	Key            string
	CountA         int
	CountB         int
	TotalA         float64
	TotalB         float64
	CountVariance  int
	AmountVariance float64
	Status         string
}

// DailyException flags a (day, category) total that departs from the
// category's historical mean. ZScore is undefined when the category's
// standard deviation is zero.
type DailyException struct {
	Day            string
	Category       string
	Total          float64
	CategoryMean   float64
	CategoryStdDev float64
	Deviation      float64
	ZScore         sql.NullFloat64
	Status         string
}
