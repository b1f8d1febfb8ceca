package signal

import (
	"math"
	"sort"
)

// #region moments

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance returns the population variance, or 0 for an empty slice.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

// Std returns the population standard deviation.
func Std(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// #endregion moments

// #region percentile

// Percentile returns the p-th percentile (0-100) using linear interpolation
// between closest ranks. Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// #endregion percentile

// #region oscillation

// SignChanges counts sign transitions in the first difference of the series.
// A transition is any index where sign(diff[i+1]) != sign(diff[i]), with
// sign being -1, 0, or +1. Used to detect oscillating (scanning) signals.
func SignChanges(values []float64) int {
	if len(values) < 3 {
		return 0
	}
	signs := make([]int, len(values)-1)
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		switch {
		case d > 0:
			signs[i-1] = 1
		case d < 0:
			signs[i-1] = -1
		}
	}
	changes := 0
	for i := 1; i < len(signs); i++ {
		if signs[i] != signs[i-1] {
			changes++
		}
	}
	return changes
}

// #endregion oscillation

// #region clamp

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion clamp
