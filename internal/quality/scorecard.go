package quality

import (
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"ledgercheck/internal/relation"
	"ledgercheck/pkg/models"
)

// BuildScorecard aggregates dimension results into a banded scorecard.
// Failed dimensions are surfaced as failed entries, never dropped; the
// overall score averages the successful dimensions only.
func BuildScorecard(bands models.Scorecard, results []DimensionResult) *ScorecardReport {
	report := &ScorecardReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
	}

	var sum float64
	var n int
	for _, r := range results {
		entry := ScorecardEntry{
			Dimension: r.Dimension,
			Field:     r.Field,
			Score:     r.Score,
			Err:       r.Err,
			Failed:    r.Err != nil,
		}
		if !entry.Failed && r.Score.Valid {
			entry.Band = band(bands, r.Score.Float64)
			sum += r.Score.Float64
			n++
		}
		report.Entries = append(report.Entries, entry)
	}

	if n > 0 {
		report.Overall = sql.NullFloat64{Float64: sum / float64(n), Valid: true}
	}

	// Descending score; failed or undefined entries sort last.
	sort.SliceStable(report.Entries, func(i, j int) bool {
		a, b := report.Entries[i], report.Entries[j]
		if a.Score.Valid != b.Score.Valid {
			return a.Score.Valid
		}
		return a.Score.Float64 > b.Score.Float64
	})

	return report
}

// band maps a score to its quality band. Cutoffs are inclusive lower bounds.
func band(bands models.Scorecard, score float64) string {
	switch {
	case score >= bands.Excellent:
		return BandExcellent
	case score >= bands.Good:
		return BandGood
	case score >= bands.Fair:
		return BandFair
	default:
		return BandPoor
	}
}

// DatasetScorecard runs the standard dimension checks for the banking
// dataset and composes them into one scorecard. A failure in one dimension
// does not abort the siblings.
func (e *Evaluator) DatasetScorecard(customers, transactions *relation.Relation) *ScorecardReport {
	var results []DimensionResult

	add := func(dim Dimension, field string, profile *FieldProfile, err error) {
		r := DimensionResult{Dimension: dim, Field: field, Err: err}
		if profile != nil {
			r.Score = profile.Score
		}
		results = append(results, r)
	}

	p, err := e.Completeness(customers, models.ColName)
	add(DimensionCompleteness, models.ColName, p, err)

	p, err = e.Completeness(customers, models.ColAge)
	add(DimensionCompleteness, models.ColAge, p, err)

	p, err = e.Uniqueness(customers, models.ColID)
	add(DimensionUniqueness, "customers."+models.ColID, p, err)

	p, err = e.Uniqueness(transactions, models.ColID)
	add(DimensionUniqueness, "transactions."+models.ColID, p, err)

	integrity, err := e.ReferentialIntegrity(transactions, models.ColCustomerID, customers, models.ColID)
	r := DimensionResult{Dimension: DimensionReferentialIntegrity, Field: models.ColCustomerID, Err: err}
	if integrity != nil {
		r.Score = integrity.Score
	}
	results = append(results, r)

	p, err = e.Validity(customers, models.ColAge, e.AgeRule())
	add(DimensionValidity, models.ColAge, p, err)

	p, err = e.Validity(transactions, models.ColAmount, e.AmountRule())
	add(DimensionValidity, models.ColAmount, p, err)

	p, err = e.Validity(transactions, models.ColDate, e.DateRule())
	add(DimensionValidity, models.ColDate, p, err)

	return BuildScorecard(e.cfg.Scorecard, results)
}
