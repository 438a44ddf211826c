// Package stats provides the small numeric routines shared by the quality
// evaluators and the reconciliation engine: mean/standard deviation
// accumulation and quantile estimation.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values, or false when values is empty.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// StdDev returns the population standard deviation of values, or false when
// values is empty. Two-pass for numerical stability.
func StdDev(values []float64) (float64, bool) {
	mean, ok := Mean(values)
	if !ok {
		return 0, false
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values))), true
}

// Quantile estimates the p-quantile (0 <= p <= 1) of values using linear
// interpolation between order statistics: h = (n-1)p, interpolated between
// the floor(h)-th and floor(h)+1-th sorted values. This is the continuous
// estimator most SQL engines use for PERCENTILE_CONT, so bounds computed
// here reproduce across implementations. Returns false when values is empty.
func Quantile(values []float64, p float64) (float64, bool) {
	n := len(values)
	if n == 0 {
		return 0, false
	}
	if p <= 0 {
		return minOf(values), true
	}
	if p >= 1 {
		return maxOf(values), true
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	frac := h - float64(lo)
	if lo+1 >= n {
		return sorted[n-1], true
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), true
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
