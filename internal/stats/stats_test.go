package stats_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-teambalance/internal/stats"
)

func TestMean(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		values   []float64
		expected float64
	}{
		"simple":   {values: []float64{6, 6.5, 7, 6.5}, expected: 6.5},
		"single":   {values: []float64{3}, expected: 3},
		"negative": {values: []float64{-1, 1}, expected: 0},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tc.expected, stats.Mean(tc.values), 1e-12)
		})
	}

	assert.True(t, math.IsNaN(stats.Mean(nil)))
	assert.True(t, math.IsNaN(stats.Mean([]float64{1, math.NaN()})))
}

func TestNanMean(t *testing.T) {
	t.Parallel()

	mean, n := stats.NanMean([]float64{1, math.NaN(), 3})
	assert.InDelta(t, 2.0, mean, 1e-12)
	assert.Equal(t, 2, n)

	mean, n = stats.NanMean([]float64{math.NaN()})
	assert.True(t, math.IsNaN(mean))
	assert.Zero(t, n)
}

func TestPopulationStdDev(t *testing.T) {
	t.Parallel()

	// numpy.std([2, 4, 4, 4, 5, 5, 7, 9]) == 2.0
	assert.InDelta(t, 2.0, stats.PopulationStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
	assert.InDelta(t, 0.0, stats.PopulationStdDev([]float64{6.4, 6.4, 6.4, 6.4}), 1e-12)
	assert.True(t, math.IsNaN(stats.PopulationStdDev(nil)))
	assert.True(t, math.IsNaN(stats.PopulationStdDev([]float64{1, math.NaN()})))
}

func TestNanSampleStdDev(t *testing.T) {
	t.Parallel()

	// pandas.Series([2, 4, 4, 4, 5, 5, 7, 9]).std() == 2.138089935299395
	assert.InDelta(t, 2.138089935299395, stats.NanSampleStdDev([]float64{2, 4, math.NaN(), 4, 4, 5, 5, 7, 9}), 1e-12)
	assert.True(t, math.IsNaN(stats.NanSampleStdDev([]float64{1})))
}

func TestMaskOutliers(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		values    []float64
		threshold float64
		masked    []int
	}{
		"one outlier": {
			values:    []float64{5, 5, 6, 5, 6, 5, 6, 5, 20},
			threshold: 2,
			masked:    []int{8},
		},
		"no outlier": {
			values:    []float64{5, 6, 7},
			threshold: 2,
		},
		"constant column": {
			values:    []float64{4, 4, 4, 4},
			threshold: 2,
		},
		"disabled": {
			values:    []float64{5, 5, 6, 5, 6, 5, 6, 5, 20},
			threshold: 0,
		},
		"missing values are kept missing": {
			values:    []float64{5, math.NaN(), 6, 5, 6, 5, 6, 5, 20},
			threshold: 2,
			masked:    []int{8},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, count := stats.MaskOutliers(tc.values, tc.threshold)
			assert.Len(t, got, len(tc.values))
			assert.Equal(t, len(tc.masked), count)

			for _, i := range tc.masked {
				assert.True(t, math.IsNaN(got[i]), "index %d should be masked", i)
			}

			for i, v := range tc.values {
				if math.IsNaN(v) {
					assert.True(t, math.IsNaN(got[i]))
				}
			}
		})
	}
}

func TestPopulationStdDevProperties(t *testing.T) {
	t.Parallel()

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	values := gen.SliceOfN(5, gen.Float64Range(0, 10))

	properties.Property("is never negative", prop.ForAll(
		func(v []float64) bool {
			return stats.PopulationStdDev(v) >= 0
		},
		values,
	))

	properties.Property("is invariant under translation", prop.ForAll(
		func(v []float64, shift float64) bool {
			shifted := make([]float64, len(v))
			for i := range v {
				shifted[i] = v[i] + shift
			}

			return math.Abs(stats.PopulationStdDev(v)-stats.PopulationStdDev(shifted)) < 1e-9
		},
		values,
		gen.Float64Range(-100, 100),
	))

	properties.Property("never exceeds the sample deviation", prop.ForAll(
		func(v []float64) bool {
			return stats.PopulationStdDev(v) <= stats.NanSampleStdDev(v)+1e-12
		},
		values,
	))

	properties.TestingRun(t)
}
