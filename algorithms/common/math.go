package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic numeric helpers shared by the spectral and pitch algorithms

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.StdDev(data, nil)
}

// Sum returns the sum of all values, 0 for an empty slice
func Sum(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Sum(data)
}

// Energy returns the sum of squared samples
func Energy(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Dot(data, data)
}

// ArgMax returns the index of the largest value.
// Ties resolve to the first occurrence; an empty slice yields -1.
func ArgMax(data []float64) int {
	if len(data) == 0 {
		return -1
	}
	return floats.MaxIdx(data)
}

// ArgMaxInRange is ArgMax restricted to data[start:end].
// The returned index refers to data, not the sub-slice. Bounds are clamped.
func ArgMaxInRange(data []float64, start, end int) int {
	start = max(start, 0)
	end = min(end, len(data))
	if start >= end {
		return -1
	}
	return start + floats.MaxIdx(data[start:end])
}

// IsFinite reports whether x is neither NaN nor infinite
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
