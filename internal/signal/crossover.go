package signal

import (
	"github.com/meridian-lab/stock-analysis/internal/series"
)

// MACrossover signals the step after the fast average crosses the slow one:
// +1 when the sign of (fast - slow) rises, -1 when it falls. Warm-up rows
// where either side is NaN compare as equal and stay neutral.
func (g *Generator) MACrossover(input *series.Series, fastColumn, slowColumn string) []float64 {
	out := zeroSignals(input.Len())

	values, ok := g.requireColumns(input, "ma_crossover", fastColumn, slowColumn)
	if !ok {
		return out
	}
	fast, slow := values[0], values[1]

	for i := 1; i < len(out); i++ {
		change := relativeSign(fast[i], slow[i]) - relativeSign(fast[i-1], slow[i-1])
		switch {
		case change > 0:
			out[i] = 1
		case change < 0:
			out[i] = -1
		}
	}

	return out
}

// relativeSign reports which side is larger. NaN on either side means
// neither comparison holds, so the position counts as flat.
func relativeSign(a, b float64) float64 {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
