// Package report renders evaluation results as terminal tables or CSV
// exports. Every result type flattens into a Table first, so the same rows
// feed both outputs.
package report

import (
	"database/sql"
	"fmt"
	"strconv"

	"ledgercheck/internal/quality"
	"ledgercheck/internal/reconcile"
	"ledgercheck/internal/relation"
)

// Table is a flat record set with named columns.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Undefined is how sentinel (empty-input or divide-by-zero) values render.
const Undefined = "n/a"

func fmtScore(v sql.NullFloat64) string {
	if !v.Valid {
		return Undefined
	}
	return fmt.Sprintf("%.2f", v.Float64)
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// ScorecardTable flattens a composite scorecard.
func ScorecardTable(r *quality.ScorecardReport) Table {
	t := Table{
		Title:   fmt.Sprintf("Quality scorecard %s (overall %s)", r.RunID, fmtScore(r.Overall)),
		Headers: []string{"Dimension", "Field", "Score", "Band"},
	}
	for _, e := range r.Entries {
		band := e.Band
		if e.Failed {
			band = "FAILED: " + e.Err.Error()
		} else if !e.Score.Valid {
			band = Undefined
		}
		t.Rows = append(t.Rows, []string{string(e.Dimension), e.Field, fmtScore(e.Score), band})
	}
	return t
}

// ProfileTable flattens per-field quality profiles.
func ProfileTable(profiles ...*quality.FieldProfile) Table {
	t := Table{
		Title:   "Field quality profile",
		Headers: []string{"Relation", "Field", "Dimension", "Rows", "Non-null", "Null", "Distinct", "Score"},
	}
	for _, p := range profiles {
		t.Rows = append(t.Rows, []string{
			p.Relation, p.Field, string(p.Dimension),
			strconv.Itoa(p.TotalRows), strconv.Itoa(p.NonNullCount),
			strconv.Itoa(p.NullCount), strconv.Itoa(p.DistinctCount),
			fmtScore(p.Score),
		})
	}
	return t
}

// IntegrityTable flattens a referential integrity report.
func IntegrityTable(r *quality.IntegrityReport) Table {
	return Table{
		Title:   "Referential integrity",
		Headers: []string{"Child", "Parent", "Foreign key", "Rows", "Matched", "Orphans", "Orphan %", "Score"},
		Rows: [][]string{{
			r.ChildRelation, r.ParentRelation, r.ForeignKey,
			strconv.Itoa(r.TotalRows), strconv.Itoa(r.MatchedRows),
			strconv.Itoa(r.OrphanCount), fmtScore(r.OrphanPct), fmtScore(r.Score),
		}},
	}
}

// RelationTable flattens any relation, full row detail in column order.
func RelationTable(title string, rel *relation.Relation) Table {
	t := Table{Title: title, Headers: rel.Columns()}
	for i := 0; i < rel.NumRows(); i++ {
		values := rel.Row(i).Values()
		row := make([]string, len(values))
		for j, v := range values {
			if v.IsNull() {
				row[j] = ""
			} else {
				row[j] = v.String()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// OutlierTable flattens an outlier report.
func OutlierTable(r *quality.OutlierReport) Table {
	t := Table{
		Title: fmt.Sprintf("Outliers in %s.%s (bounds %.2f .. %.2f, mean %.2f, stddev %.2f)",
			r.Relation, r.Field, r.Bound.LowerBound, r.Bound.UpperBound, r.Bound.Mean, r.Bound.StdDev),
		Headers: []string{"Row", "Value", "Class", "Deviation"},
	}
	for _, o := range r.Outliers {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(o.RowIndex), fmtFloat(o.Value), string(o.Class), fmtFloat(o.Deviation),
		})
	}
	return t
}

// PeriodTable flattens a period-over-period comparison.
func PeriodTable(records []reconcile.PeriodComparison) Table {
	t := Table{
		Title:   "Period-over-period reconciliation",
		Headers: []string{"Period", "Count", "Total", "Prev period", "Prev total", "Variance", "Variance %", "Status"},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.Period, strconv.Itoa(r.Count), fmtFloat(r.Total),
			r.PrevPeriod, fmtFloat(r.PrevTotal),
			fmtFloat(r.Variance), fmtScore(r.VariancePct), r.Status,
		})
	}
	return t
}

// CrossSystemTable flattens a two-system reconciliation.
func CrossSystemTable(records []reconcile.CrossSystemRecord) Table {
	t := Table{
		Title:   "Cross-system reconciliation",
		Headers: []string{"Key", "Count A", "Count B", "Total A", "Total B", "Count var", "Amount var", "Status"},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.Key, strconv.Itoa(r.CountA), strconv.Itoa(r.CountB),
			fmtFloat(r.TotalA), fmtFloat(r.TotalB),
			strconv.Itoa(r.CountVariance), fmtFloat(r.AmountVariance), r.Status,
		})
	}
	return t
}

// DailyExceptionTable flattens daily exception records.
func DailyExceptionTable(records []reconcile.DailyException) Table {
	t := Table{
		Title:   "Daily exceptions",
		Headers: []string{"Day", "Category", "Total", "Mean", "StdDev", "Deviation", "Z", "Status"},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.Day, r.Category, fmtFloat(r.Total),
			fmtFloat(r.CategoryMean), fmtFloat(r.CategoryStdDev),
			fmtFloat(r.Deviation), fmtScore(r.ZScore), r.Status,
		})
	}
	return t
}
