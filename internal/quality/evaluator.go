// Package quality implements the data-quality evaluation pipeline:
// per-field rule evaluation, IQR outlier detection, and the composite
// scorecard that aggregates dimension scores into quality bands.
package quality

import (
	"database/sql"
	"sort"
	"time"

	"ledgercheck/internal/relation"
	"ledgercheck/pkg/models"
)

// Evaluator computes per-field quality metrics over relation snapshots.
// All methods are pure reads; an Evaluator is safe for concurrent use.
type Evaluator struct {
	cfg *models.Config
	now func() time.Time
}

// NewEvaluator creates an evaluator with the given thresholds.
func NewEvaluator(cfg *models.Config) *Evaluator {
	return &Evaluator{cfg: cfg, now: time.Now}
}

// Completeness scores the fraction of non-missing values in a field.
// Null markers and empty strings both count as missing.
func (e *Evaluator) Completeness(rel *relation.Relation, field string) (*FieldProfile, error) {
	col, err := rel.Column(field)
	if err != nil {
		return nil, err
	}

	profile := &FieldProfile{
		Relation:  rel.Name(),
		Field:     field,
		Dimension: DimensionCompleteness,
		TotalRows: len(col),
	}

	distinct := make(map[string]struct{})
	for _, v := range col {
		if v.IsNull() {
			profile.NullCount++
			continue
		}
		profile.NonNullCount++
		distinct[v.Key()] = struct{}{}
	}
	profile.DistinctCount = len(distinct)

	if profile.TotalRows > 0 {
		profile.Score = score(100 * float64(profile.NonNullCount) / float64(profile.TotalRows))
	}
	return profile, nil
}

// Uniqueness scores a designated key field: 100 x (1 - duplicateGroups/totalRows),
// where a duplicate group is any key value occurring more than once.
func (e *Evaluator) Uniqueness(rel *relation.Relation, keyField string) (*FieldProfile, error) {
	col, err := rel.Column(keyField)
	if err != nil {
		return nil, err
	}

	profile := &FieldProfile{
		Relation:  rel.Name(),
		Field:     keyField,
		Dimension: DimensionUniqueness,
		TotalRows: len(col),
	}

	counts := make(map[string]int)
	for _, v := range col {
		if v.IsNull() {
			profile.NullCount++
			continue
		}
		profile.NonNullCount++
		counts[v.Key()]++
	}
	profile.DistinctCount = len(counts)

	duplicateGroups := 0
	for _, n := range counts {
		if n > 1 {
			duplicateGroups++
		}
	}

	if profile.TotalRows > 0 {
		profile.Score = score(100 * (1 - float64(duplicateGroups)/float64(profile.TotalRows)))
	}
	return profile, nil
}

// Rule is a named validity predicate over a single cell.
type Rule struct {
	Name  string
	Valid func(relation.Value) bool
}

// AgeRule returns the configured age range rule.
func (e *Evaluator) AgeRule() Rule {
	min, max := float64(e.cfg.Validity.AgeMin), float64(e.cfg.Validity.AgeMax)
	return Rule{
		Name: "age_range",
		Valid: func(v relation.Value) bool {
			f, ok := v.Float64()
			return ok && f >= min && f <= max
		},
	}
}

// AmountRule returns the configured amount range rule: positive and at most
// the ceiling.
func (e *Evaluator) AmountRule() Rule {
	ceiling := e.cfg.Validity.AmountCeiling
	return Rule{
		Name: "amount_range",
		Valid: func(v relation.Value) bool {
			f, ok := v.Float64()
			return ok && f > 0 && f <= ceiling
		},
	}
}

// DateRule returns the not-in-the-future rule.
func (e *Evaluator) DateRule() Rule {
	now := e.now()
	return Rule{
		Name: "date_not_future",
		Valid: func(v relation.Value) bool {
			t, ok := v.Time()
			return ok && !t.After(now)
		},
	}
}

// Validity scores the fraction of rows whose field satisfies the rule.
// Missing values do not satisfy any rule.
func (e *Evaluator) Validity(rel *relation.Relation, field string, rule Rule) (*FieldProfile, error) {
	col, err := rel.Column(field)
	if err != nil {
		return nil, err
	}

	profile := &FieldProfile{
		Relation:  rel.Name(),
		Field:     field,
		Dimension: DimensionValidity,
		TotalRows: len(col),
	}

	valid := 0
	distinct := make(map[string]struct{})
	for _, v := range col {
		if v.IsNull() {
			profile.NullCount++
		} else {
			profile.NonNullCount++
			distinct[v.Key()] = struct{}{}
		}
		if rule.Valid(v) {
			valid++
		}
	}
	profile.DistinctCount = len(distinct)

	if profile.TotalRows > 0 {
		profile.Score = score(100 * float64(valid) / float64(profile.TotalRows))
	}
	return profile, nil
}

// ReferentialIntegrity scores the fraction of child rows whose foreign key
// resolves to an existing parent row. Orphaned rows are reported with full
// row detail, newest first when the child relation has a date column.
func (e *Evaluator) ReferentialIntegrity(child *relation.Relation, fkField string, parent *relation.Relation, pkField string) (*IntegrityReport, error) {
	if err := child.Require(fkField); err != nil {
		return nil, err
	}
	parentKeys, err := parent.Column(pkField)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(parentKeys))
	for _, v := range parentKeys {
		if !v.IsNull() {
			known[v.Key()] = struct{}{}
		}
	}

	report := &IntegrityReport{
		ChildRelation:  child.Name(),
		ParentRelation: parent.Name(),
		ForeignKey:     fkField,
		TotalRows:      child.NumRows(),
	}

	type orphanRow struct {
		row relation.Row
		at  time.Time
	}
	var orphans []orphanRow

	for i := 0; i < child.NumRows(); i++ {
		row := child.Row(i)
		fk := row.MustValue(fkField)
		if _, ok := known[fk.Key()]; ok && !fk.IsNull() {
			report.MatchedRows++
			continue
		}
		o := orphanRow{row: row}
		if child.HasColumn(models.ColDate) {
			if t, ok := row.MustValue(models.ColDate).Time(); ok {
				o.at = t
			}
		}
		orphans = append(orphans, o)
	}

	report.OrphanCount = len(orphans)
	if report.TotalRows > 0 {
		report.Score = score(100 * float64(report.MatchedRows) / float64(report.TotalRows))
		report.OrphanPct = score(100 * float64(report.OrphanCount) / float64(report.TotalRows))
	}

	sort.SliceStable(orphans, func(i, j int) bool {
		return orphans[i].at.After(orphans[j].at)
	})
	report.Orphans = relation.New(child.Name()+"_orphans", child.Columns())
	for _, o := range orphans {
		_ = report.Orphans.AppendRow(o.row.Values()...)
	}

	return report, nil
}

func score(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}
