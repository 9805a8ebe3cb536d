// Package stats provides the descriptive statistics behind the
// aggregation pipeline: mean, sample standard deviation and the bounded
// consistency index.
package stats

import "math"

// minConsistencySamples is the floor below which the consistency index
// is undefined.
const minConsistencySamples = 3

// DropNaN returns the non-missing values of sample.
func DropNaN(sample []float64) []float64 {
	out := make([]float64, 0, len(sample))
	for _, v := range sample {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean returns the arithmetic mean, or NaN for an empty sample.
// Missing values must be dropped by the caller.
func Mean(sample []float64) float64 {
	if len(sample) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range sample {
		sum += v
	}
	return sum / float64(len(sample))
}

// StdDev returns the sample standard deviation (N-1 divisor), or NaN for
// fewer than 2 values. Missing values must be dropped by the caller.
func StdDev(sample []float64) float64 {
	if len(sample) < 2 {
		return math.NaN()
	}
	mean := Mean(sample)
	var sq float64
	for _, v := range sample {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(sample)-1))
}

// Consistency returns a 0-100 consistency index for a numeric sample:
// a clipped inverse coefficient of variation, 100 meaning zero relative
// spread. Missing values are dropped first. Undefined (NaN) for fewer than
// 3 remaining values or a mean of exactly zero.
func Consistency(sample []float64) float64 {
	vals := DropNaN(sample)
	if len(vals) < minConsistencySamples {
		return math.NaN()
	}

	mean := Mean(vals)
	if mean == 0 {
		return math.NaN()
	}
	std := StdDev(vals)

	return math.Max(0, 100*(1-std/mean))
}
