package series

import "math"

// Trailing-window primitives over plain float64 slices. A row is defined only
// once the full window is available and free of NaN inputs; every other row
// is NaN. Mean, std, min and max maintain sliding accumulators so each step
// costs O(1) amortized. RollingMeanAbsDev recomputes per row and is the one
// O(window) step.

// NaNSlice returns a length-n slice filled with NaN.
func NaNSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// RollingMean returns the trailing arithmetic mean over window values.
func RollingMean(values []float64, window int) []float64 {
	out := NaNSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	var sum float64
	invalid := 0 // NaN inputs inside the current window

	for i, v := range values {
		if math.IsNaN(v) {
			invalid++
		} else {
			sum += v
		}

		if i >= window {
			old := values[i-window]
			if math.IsNaN(old) {
				invalid--
			} else {
				sum -= old
			}
		}

		if i >= window-1 && invalid == 0 {
			out[i] = sum / float64(window)
		}
	}

	return out
}

// RollingStd returns the trailing sample standard deviation (N-1 divisor)
// over window values. Windows shorter than two rows are undefined.
func RollingStd(values []float64, window int) []float64 {
	out := NaNSlice(len(values))
	if window < 2 || len(values) < window {
		return out
	}

	var sum, sumSq float64
	invalid := 0

	for i, v := range values {
		if math.IsNaN(v) {
			invalid++
		} else {
			sum += v
			sumSq += v * v
		}

		if i >= window {
			old := values[i-window]
			if math.IsNaN(old) {
				invalid--
			} else {
				sum -= old
				sumSq -= old * old
			}
		}

		if i >= window-1 && invalid == 0 {
			n := float64(window)
			mean := sum / n
			// clamp tiny negative variance caused by float drift
			variance := (sumSq - n*mean*mean) / (n - 1)
			if variance < 0 {
				variance = 0
			}
			out[i] = math.Sqrt(variance)
		}
	}

	return out
}

// RollingMin returns the trailing minimum over window values.
func RollingMin(values []float64, window int) []float64 {
	return rollingExtreme(values, window, func(kept, incoming float64) bool {
		return kept < incoming
	})
}

// RollingMax returns the trailing maximum over window values.
func RollingMax(values []float64, window int) []float64 {
	return rollingExtreme(values, window, func(kept, incoming float64) bool {
		return kept > incoming
	})
}

// rollingExtreme keeps a monotonic deque of candidate indices, best at the
// front, so each row is answered in O(1) amortized.
func rollingExtreme(values []float64, window int, better func(kept, incoming float64) bool) []float64 {
	out := NaNSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	deque := make([]int, 0, window)
	invalid := 0

	for i, v := range values {
		if math.IsNaN(v) {
			invalid++
		} else {
			for len(deque) > 0 && !better(values[deque[len(deque)-1]], v) {
				deque = deque[:len(deque)-1]
			}
			deque = append(deque, i)
		}

		if i >= window {
			old := i - window
			if math.IsNaN(values[old]) {
				invalid--
			}
			if len(deque) > 0 && deque[0] <= old {
				deque = deque[1:]
			}
		}

		if i >= window-1 && invalid == 0 {
			out[i] = values[deque[0]]
		}
	}

	return out
}

// RollingMeanAbsDev returns the trailing mean absolute deviation from each
// window's own mean.
func RollingMeanAbsDev(values []float64, window int) []float64 {
	out := NaNSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	means := RollingMean(values, window)
	for i := window - 1; i < len(values); i++ {
		if math.IsNaN(means[i]) {
			continue
		}

		var total float64
		for j := i - window + 1; j <= i; j++ {
			total += math.Abs(values[j] - means[i])
		}
		out[i] = total / float64(window)
	}

	return out
}

// Shift returns values moved forward by periods rows, NaN-filling the gap.
// Negative periods move values backward.
func Shift(values []float64, periods int) []float64 {
	out := NaNSlice(len(values))
	for i := range values {
		j := i - periods
		if j >= 0 && j < len(values) {
			out[i] = values[j]
		}
	}

	return out
}

// Diff returns the per-row change against the row periods earlier. Rows
// without a counterpart are NaN.
func Diff(values []float64, periods int) []float64 {
	out := NaNSlice(len(values))
	for i := range values {
		j := i - periods
		if j >= 0 && j < len(values) {
			out[i] = values[i] - values[j]
		}
	}

	return out
}

// EWMA returns the recursive exponentially weighted moving average with
// alpha = 2/(span+1), seeded with the first valid value. No look-ahead: each
// row depends only on rows at or before it. NaN rows carry the running value
// forward once seeded.
func EWMA(values []float64, span int) []float64 {
	out := NaNSlice(len(values))
	if span <= 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1.0)
	current := math.NaN()

	for i, v := range values {
		switch {
		case math.IsNaN(v):
			// keep the running value
		case math.IsNaN(current):
			current = v
		default:
			current = v*alpha + current*(1-alpha)
		}
		out[i] = current
	}

	return out
}
