// Package stats holds the small set of descriptive statistics used to score people and
// partitions. Missing observations are represented as NaN.
package stats

import "math"

// Mean returns the arithmetic mean of values. NaN values propagate and an empty slice
// yields NaN.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// NanMean returns the mean of the non-NaN values and how many there were.
func NanMean(values []float64) (float64, int) {
	sum := 0.0
	n := 0

	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}

		sum += v
		n++
	}

	if n == 0 {
		return math.NaN(), 0
	}

	return sum / float64(n), n
}

// PopulationStdDev returns the standard deviation of values with n as divisor.
func PopulationStdDev(values []float64) float64 {
	mean := Mean(values)
	if math.IsNaN(mean) {
		return math.NaN()
	}

	sq := 0.0
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return math.Sqrt(sq / float64(len(values)))
}

// NanSampleStdDev returns the standard deviation of the non-NaN values with n-1 as divisor.
// Fewer than two values yield NaN.
func NanSampleStdDev(values []float64) float64 {
	mean, n := NanMean(values)
	if n < 2 {
		return math.NaN()
	}

	sq := 0.0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}

		d := v - mean
		sq += d * d
	}

	return math.Sqrt(sq / float64(n-1))
}

// MaskOutliers returns a copy of values where every value whose z-score magnitude exceeds
// threshold is replaced by NaN, along with the number of values masked. The z-score uses
// the sample standard deviation of the non-NaN values. Nothing is masked when threshold
// is not positive or the deviation is zero or undefined.
func MaskOutliers(values []float64, threshold float64) ([]float64, int) {
	res := make([]float64, len(values))
	copy(res, values)

	if threshold <= 0 {
		return res, 0
	}

	mean, _ := NanMean(values)
	sd := NanSampleStdDev(values)

	if math.IsNaN(sd) || sd == 0 {
		return res, 0
	}

	masked := 0

	for i, v := range res {
		if math.IsNaN(v) {
			continue
		}

		if math.Abs(v-mean)/sd > threshold {
			res[i] = math.NaN()
			masked++
		}
	}

	return res, masked
}
