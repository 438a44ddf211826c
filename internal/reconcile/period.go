// Package reconcile implements the reconciliation engine: period-over-period
// variance, two-system set reconciliation, and daily exception flagging.
package reconcile

import (
	"database/sql"
	"math"
	"sort"

	"ledgercheck/internal/relation"
	"ledgercheck/pkg/models"
)

// Engine runs reconciliation comparisons with configured thresholds.
// Stateless; safe for concurrent use.
type Engine struct {
	cfg models.Reconciliation
}

// NewEngine creates a reconciliation engine.
func NewEngine(cfg models.Reconciliation) *Engine {
	return &Engine{cfg: cfg}
}

// PeriodOverPeriod partitions transactions by calendar month, aggregates
// count and total amount per month, and compares each month to its immediate
// predecessor in chronological order. The earliest month has no predecessor
// and is not reported. A month following a zero total gets an undefined
// variance percentage; it is still flagged Significant Change when the total
// actually moved, so a jump from zero is never silently Normal.
func (e *Engine) PeriodOverPeriod(rel *relation.Relation, dateField, amountField string) ([]PeriodComparison, error) {
	if err := rel.Require(dateField, amountField); err != nil {
		return nil, err
	}

	type agg struct {
		count int
		total float64
	}
	byPeriod := make(map[string]*agg)

	for i := 0; i < rel.NumRows(); i++ {
		row := rel.Row(i)
		t, ok := row.MustValue(dateField).Time()
		if !ok {
			continue // unpartitionable without a date
		}
		key := t.Format("2006-01")
		a := byPeriod[key]
		if a == nil {
			a = &agg{}
			byPeriod[key] = a
		}
		a.count++
		if f, ok := row.MustValue(amountField).Float64(); ok {
			a.total += f
		}
	}

	periods := make([]string, 0, len(byPeriod))
	for p := range byPeriod {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	var out []PeriodComparison
	for i := 1; i < len(periods); i++ {
		cur, prev := byPeriod[periods[i]], byPeriod[periods[i-1]]

		cmp := PeriodComparison{
			Period:     periods[i],
			Count:      cur.count,
			Total:      cur.total,
			PrevPeriod: periods[i-1],
			PrevCount:  prev.count,
			PrevTotal:  prev.total,
			Variance:   cur.total - prev.total,
			Status:     StatusNormal,
		}

		if prev.total != 0 {
			pct := 100 * (cur.total - prev.total) / prev.total
			cmp.VariancePct = sql.NullFloat64{Float64: pct, Valid: true}
			if math.Abs(pct) > e.cfg.VarianceThresholdPct {
				cmp.Status = StatusSignificantChange
			}
		} else if cur.total != 0 {
			cmp.Status = StatusSignificantChange
		}

		out = append(out, cmp)
	}

	return out, nil
}
