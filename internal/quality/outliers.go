package quality

import (
	"math"
	"sort"

	"ledgercheck/internal/relation"
	"ledgercheck/internal/stats"
	"ledgercheck/pkg/errors"
)

// DetectOutliers computes IQR bounds over a numeric column and returns the
// rows falling outside them, most extreme first. Quartiles use linear
// interpolation between order statistics (see stats.Quantile) so the bounds
// reproduce across implementations.
func (e *Evaluator) DetectOutliers(rel *relation.Relation, field string) (*OutlierReport, error) {
	col, err := rel.Column(field)
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(col))
	for _, v := range col {
		if f, ok := v.Float64(); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return nil, errors.EmptyInput(rel.Name()).
			WithContext("field", field)
	}

	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StdDev(values)
	q1, _ := stats.Quantile(values, 0.25)
	q3, _ := stats.Quantile(values, 0.75)
	iqr := q3 - q1
	mult := e.cfg.Outliers.IQRMultiplier

	report := &OutlierReport{
		Relation:  rel.Name(),
		Field:     field,
		TotalRows: rel.NumRows(),
		Bound: OutlierBound{
			Mean:       mean,
			StdDev:     stdDev,
			Q1:         q1,
			Q3:         q3,
			IQR:        iqr,
			LowerBound: q1 - mult*iqr,
			UpperBound: q3 + mult*iqr,
		},
	}

	for i, v := range col {
		f, ok := v.Float64()
		if !ok {
			continue
		}
		class := ClassNormal
		switch {
		case f < report.Bound.LowerBound:
			class = ClassBelowLowerBound
		case f > report.Bound.UpperBound:
			class = ClassAboveUpperBound
		}
		if class == ClassNormal {
			continue
		}
		report.Outliers = append(report.Outliers, Outlier{
			RowIndex:  i,
			Value:     f,
			Class:     class,
			Deviation: math.Abs(f - mean),
			Row:       rel.Row(i),
		})
	}

	sort.SliceStable(report.Outliers, func(i, j int) bool {
		return report.Outliers[i].Deviation > report.Outliers[j].Deviation
	})

	return report, nil
}
