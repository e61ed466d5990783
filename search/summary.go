package search

import (
	"math"
	"slices"
	"time"
)

// Summary describes a sample of durations, such as the slice times of a run.
type Summary struct {
	Count    int
	Min, Max time.Duration
	Median   time.Duration
	Mean     time.Duration
	// StdDev is the population standard deviation.
	StdDev time.Duration
}

// Summarize describes a sample of nanosecond durations without reordering it. No data
// gives the zero Summary.
func Summarize(ns []float64) Summary {
	n := len(ns)
	if n == 0 {
		return Summary{}
	}
	sorted := slices.Clone(ns)
	slices.Sort(sorted)
	med := sorted[n/2]
	if n%2 == 0 {
		med = (sorted[n/2-1] + med) / 2
	}

	var mean, m2 float64
	for i, v := range ns {
		d := v - mean
		mean += d / float64(i+1)
		m2 += d * (v - mean)
	}
	return Summary{
		Count:  n,
		Min:    time.Duration(sorted[0]),
		Max:    time.Duration(sorted[n-1]),
		Median: time.Duration(med),
		Mean:   time.Duration(mean),
		StdDev: time.Duration(math.Sqrt(m2 / float64(n))),
	}
}
