package search

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/TomTonic/seedfinder/rng"
)

// MinimumSamples is the smallest sample CompareRuntimes accepts for each side.
const MinimumSamples = 11

var ErrTooFewSamples = errors.New("too few runtime samples")

// Speedup is the confidence that sample A runs faster than sample B by at least
// Threshold, measured relative to B's median.
type Speedup struct {
	Threshold  float64
	Confidence float64
}

// CompareRuntimes compares two runtime samples in any unit, typically the Elapsed of
// repeated searches or SliceTimes of two configurations. For each threshold it returns
// the bootstrap confidence that 1 - median(A)/median(B) reaches it. No thresholds means
// a single threshold of 0. reps is the number of bootstrap replicates; seed makes the
// resampling reproducible, 0 draws a fresh one.
func CompareRuntimes(a, b []float64, thresholds []float64, reps uint64, seed uint64) ([]Speedup, error) {
	if len(a) < MinimumSamples || len(b) < MinimumSamples {
		return nil, fmt.Errorf("%d and %d samples, need %d each: %w", len(a), len(b), MinimumSamples, ErrTooFewSamples)
	}
	if len(thresholds) == 0 {
		thresholds = []float64{0}
	}
	thresholds = slices.Clone(thresholds)
	slices.Sort(thresholds)

	conf := bootstrapConfidence(a, b, thresholds, reps, seed)
	out := make([]Speedup, len(thresholds))
	for i, t := range thresholds {
		out[i] = Speedup{Threshold: t, Confidence: conf[i]}
	}
	return out, nil
}

// resampler draws bootstrap samples from one reproducible stream.
type resampler struct {
	gen rng.Xorshift
}

func newResampler(seed uint64) *resampler {
	if seed == 0 {
		seed = rng.NewEntropy(8).Uint64() | 1
	}
	return &resampler{gen: rng.NewXorshift(seed, ^seed)}
}

// sample fills dst with len(xs) values drawn from xs with replacement.
func (r *resampler) sample(xs, dst []float64) []float64 {
	dst = dst[:0]
	n := uint32(len(xs))
	for range n {
		dst = append(dst, xs[r.gen.NextRange(0, n)])
	}
	return dst
}

// median selects the upper median of xs in expected linear time, reordering xs.
func (r *resampler) median(xs []float64) float64 {
	k := len(xs) / 2
	low, high := 0, len(xs)-1
	for low < high {
		p := low + int(r.gen.NextRange(0, uint32(high-low+1)))
		xs[p], xs[high] = xs[high], xs[p]
		pivot := xs[high]
		i := low
		for j := low; j < high; j++ {
			if xs[j] < pivot {
				xs[i], xs[j] = xs[j], xs[i]
				i++
			}
		}
		xs[i], xs[high] = xs[high], xs[i]
		switch {
		case i == k:
			return xs[i]
		case i < k:
			low = i + 1
		default:
			high = i - 1
		}
	}
	return xs[k]
}

// relativeSpeedup is 1 - medA/medB with the degenerate cases mapped to 0 or NaN. A
// vanishing medB is replaced by a tiny scale aware epsilon.
func relativeSpeedup(medA, medB float64) float64 {
	switch {
	case math.IsNaN(medA) || math.IsNaN(medB):
		return math.NaN()
	case medA == medB:
		return 0
	}
	eps := math.Max(math.Abs(medB)*1e-12, 1e-300)
	denom := medB
	if math.Abs(medB) < eps {
		denom = eps
	}
	return 1 - medA/denom
}

// bootstrapConfidence returns, for each sorted threshold, the share of replicates whose
// relative speedup reaches it. Zero replicates yield NaN.
func bootstrapConfidence(a, b []float64, thresholds []float64, reps uint64, seed uint64) []float64 {
	conf := make([]float64, len(thresholds))
	if reps == 0 {
		for i := range conf {
			conf[i] = math.NaN()
		}
		return conf
	}
	r := newResampler(seed)
	counts := make([]uint64, len(thresholds))
	bufA := make([]float64, 0, len(a))
	bufB := make([]float64, 0, len(b))
	for range reps {
		bufA = r.sample(a, bufA)
		bufB = r.sample(b, bufB)
		delta := relativeSpeedup(r.median(bufA), r.median(bufB))
		for i, t := range thresholds {
			if delta >= t {
				counts[i]++
			}
		}
	}
	for i := range conf {
		conf[i] = float64(counts[i]) / float64(reps)
	}
	return conf
}
