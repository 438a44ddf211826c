package quality

import (
	"database/sql"
	"time"

	"ledgercheck/internal/relation"
)

// Dimension is a quality dimension of the scorecard.
type Dimension string

const (
	DimensionCompleteness         Dimension = "Completeness"
	DimensionUniqueness           Dimension = "Uniqueness"
	DimensionValidity             Dimension = "Validity"
	DimensionReferentialIntegrity Dimension = "Referential Integrity"
)

// FieldProfile is the result of a single-field quality evaluation. Score is
// invalid (not zero) when the relation was empty.
type FieldProfile struct {
	Relation      string
	Field         string
	Dimension     Dimension
	TotalRows     int
	NonNullCount  int
	NullCount     int
	DistinctCount int
	Score         sql.NullFloat64
}

// IntegrityReport is the result of a referential integrity evaluation.
// Orphans holds the child rows whose foreign key has no parent, newest first.
type IntegrityReport struct {
	ChildRelation  string
	ParentRelation string
	ForeignKey     string
	TotalRows      int
	MatchedRows    int
	OrphanCount    int
	Score          sql.NullFloat64
	OrphanPct      sql.NullFloat64
	Orphans        *relation.Relation
}

// OutlierClass classifies a value against the IQR bounds.
type OutlierClass string

const (
	ClassBelowLowerBound OutlierClass = "BelowLowerBound"
	ClassAboveUpperBound OutlierClass = "AboveUpperBound"
	ClassNormal          OutlierClass = "Normal"
)

// OutlierBound holds the statistical bounds computed for one numeric column.
type OutlierBound struct {
	Mean       float64
	StdDev     float64
	Q1         float64
	Q3         float64
	IQR        float64
	LowerBound float64
	UpperBound float64
}

// Outlier is one flagged row: its value, class, and absolute deviation from
// the column mean.
type Outlier struct {
	RowIndex  int
	Value     float64
	Class     OutlierClass
	Deviation float64
	Row       relation.Row
}

// OutlierReport is the result of an outlier detection run. Outliers holds
// only the non-Normal rows, most extreme first.
type OutlierReport struct {
	Relation  string
	Field     string
	TotalRows int
	Bound     OutlierBound
	Outliers  []Outlier
}

// DimensionResult is one dimension score handed to the composite scorer.
// Err is set when the underlying evaluation failed; the scorer surfaces it
// instead of dropping the dimension.
type DimensionResult struct {
	Dimension Dimension
	Field     string
	Score     sql.NullFloat64
	Err       error
}

// ScorecardEntry is one row of the composite scorecard.
type ScorecardEntry struct {
	Dimension Dimension
	Field     string
	Score     sql.NullFloat64
	Band      string
	Failed    bool
	Err       error
}

// ScorecardReport is the composite quality scorecard for one evaluation run.
type ScorecardReport struct {
	RunID       string
	GeneratedAt time.Time
	Entries     []ScorecardEntry
	Overall     sql.NullFloat64
}

// Quality bands, inclusive lower bounds per the configured cutoffs.
const (
	BandExcellent = "Excellent"
	BandGood      = "Good"
	BandFair      = "Fair"
	BandPoor      = "Poor"
)
