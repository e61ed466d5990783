package search

import (
	"math"
	"slices"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(n int, v float64) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = v
	}
	return xs
}

func TestCompareRuntimesTooFewSamples(t *testing.T) {
	_, err := CompareRuntimes(make([]float64, 10), make([]float64, 11), []float64{0.1}, 1000, 1)
	require.ErrorIs(t, err, ErrTooFewSamples)
	_, err = CompareRuntimes(make([]float64, 11), nil, nil, 1000, 1)
	require.ErrorIs(t, err, ErrTooFewSamples)
}

func TestCompareRuntimesDefaultThreshold(t *testing.T) {
	got, err := CompareRuntimes(constant(11, 100), constant(11, 120), nil, 1000, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Threshold)
	assert.Equal(t, 1.0, got[0].Confidence)
}

func TestCompareRuntimesConstantSamples(t *testing.T) {
	// 1 - 100/120 is one sixth.
	got, err := CompareRuntimes(constant(11, 100), constant(11, 120), []float64{0.2, 0.1}, 500, 7)
	require.NoError(t, err)
	assert.Equal(t, []Speedup{{0.1, 1}, {0.2, 0}}, got, "thresholds come back sorted")
}

func TestCompareRuntimesConfidenceMonotonicity(t *testing.T) {
	a := make([]float64, 31)
	b := make([]float64, 31)
	for i := range a {
		a[i] = 100 + float64(i%7)*5
		b[i] = 140 + float64(i%5)*8
	}
	thresholds := []float64{0, 0.1, 0.2, 0.3, 0.4}
	got, err := CompareRuntimes(a, b, thresholds, 2000, 42)
	require.NoError(t, err)
	for i, s := range got {
		assert.GreaterOrEqual(t, s.Confidence, 0.0)
		assert.LessOrEqual(t, s.Confidence, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, s.Confidence, got[i-1].Confidence, "threshold %v", s.Threshold)
		}
	}
	assert.Equal(t, 1.0, got[0].Confidence, "every A is below every B")
}

func TestCompareRuntimesIsReproducible(t *testing.T) {
	a := []float64{5, 9, 3, 7, 8, 2, 6, 4, 1, 10, 11, 12}
	b := []float64{6, 8, 4, 9, 7, 3, 5, 11, 2, 10, 12, 13}
	first, err := CompareRuntimes(a, b, []float64{0, 0.05}, 1000, 99)
	require.NoError(t, err)
	second, err := CompareRuntimes(a, b, []float64{0, 0.05}, 1000, 99)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBootstrapWithoutReplicates(t *testing.T) {
	conf := bootstrapConfidence(constant(11, 1), constant(11, 2), []float64{0, 0.5}, 0, 1)
	require.Len(t, conf, 2)
	assert.True(t, math.IsNaN(conf[0]))
	assert.True(t, math.IsNaN(conf[1]))
}

func TestResampleDrawsFromInput(t *testing.T) {
	r := newResampler(3)
	xs := []float64{1, 2, 3, 4, 5}
	sample := r.sample(xs, nil)
	assert.Len(t, sample, len(xs))
	for _, v := range sample {
		assert.Contains(t, xs, v)
	}
}

func TestResamplerMedianMatchesSort(t *testing.T) {
	r := newResampler(11)
	f := func(xs []float64) bool {
		if len(xs) == 0 {
			return true
		}
		for _, v := range xs {
			if math.IsNaN(v) {
				return true
			}
		}
		sorted := slices.Clone(xs)
		slices.Sort(sorted)
		return r.median(slices.Clone(xs)) == sorted[len(sorted)/2]
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestRelativeSpeedup(t *testing.T) {
	assert.Equal(t, 0.0, relativeSpeedup(5, 5))
	assert.Equal(t, 0.5, relativeSpeedup(50, 100))
	assert.Equal(t, -1.0, relativeSpeedup(200, 100))
	assert.True(t, math.IsNaN(relativeSpeedup(math.NaN(), 1)))
	assert.False(t, math.IsInf(relativeSpeedup(1, 0), 0))
}

func TestSliceTimesIsACopy(t *testing.T) {
	r := NewRunner[int](Config{Workers: 1})
	require.NoError(t, r.Run(t.Context(), 3, func(i int, dst []int) []int { return dst }))
	times := r.SliceTimes()
	require.Len(t, times, 3)
	times[0] = -1
	assert.NotEqual(t, -1.0, r.SliceTimes()[0])
}
