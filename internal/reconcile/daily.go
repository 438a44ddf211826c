package reconcile

import (
	"database/sql"
	"math"
	"sort"

	"ledgercheck/internal/relation"
	"ledgercheck/internal/stats"
)

// DailyExceptions computes the total amount per (day, category) pair and
// compares each daily total against that category's mean and standard
// deviation across all of its observed days. |z| above the exception sigma
// flags Exception, above the warning sigma flags Warning. Only non-OK rows
// are returned, ordered by descending absolute deviation.
//
// When a category's totals are constant (zero standard deviation), any
// nonzero deviation is classified Exception: the z-score is undefined but a
// departure from a constant series is a real signal and must not be
// suppressed by the division by zero.
func (e *Engine) DailyExceptions(rel *relation.Relation, dateField, typeField, amountField string) ([]DailyException, error) {
	if err := rel.Require(dateField, typeField, amountField); err != nil {
		return nil, err
	}

	type cell struct {
		day      string
		category string
	}
	totals := make(map[cell]float64)

	for i := 0; i < rel.NumRows(); i++ {
		row := rel.Row(i)
		t, ok := row.MustValue(dateField).Time()
		if !ok {
			continue
		}
		category := row.MustValue(typeField)
		if category.IsNull() {
			continue
		}
		c := cell{day: t.Format("2006-01-02"), category: category.String()}
		if f, ok := row.MustValue(amountField).Float64(); ok {
			totals[c] += f
		} else {
			totals[c] += 0
		}
	}

	perCategory := make(map[string][]float64)
	for c, total := range totals {
		perCategory[c.category] = append(perCategory[c.category], total)
	}

	type catStats struct {
		mean   float64
		stdDev float64
	}
	byCategory := make(map[string]catStats, len(perCategory))
	for category, values := range perCategory {
		mean, _ := stats.Mean(values)
		sd, _ := stats.StdDev(values)
		byCategory[category] = catStats{mean: mean, stdDev: sd}
	}

	var out []DailyException
	for c, total := range totals {
		cs := byCategory[c.category]
		deviation := total - cs.mean

		rec := DailyException{
			Day:            c.day,
			Category:       c.category,
			Total:          total,
			CategoryMean:   cs.mean,
			CategoryStdDev: cs.stdDev,
			Deviation:      deviation,
			Status:         StatusOK,
		}

		if cs.stdDev == 0 {
			if deviation != 0 {
				rec.Status = StatusException
			}
		} else {
			z := deviation / cs.stdDev
			rec.ZScore = sql.NullFloat64{Float64: z, Valid: true}
			switch {
			case math.Abs(z) > e.cfg.ExceptionSigma:
				rec.Status = StatusException
			case math.Abs(z) > e.cfg.WarningSigma:
				rec.Status = StatusWarning
			}
		}

		if rec.Status != StatusOK {
			out = append(out, rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := math.Abs(out[i].Deviation), math.Abs(out[j].Deviation)
		if di != dj {
			return di > dj
		}
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Category < out[j].Category
	})

	return out, nil
}
