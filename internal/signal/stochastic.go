package signal

import (
	"github.com/meridian-lab/stock-analysis/internal/series"
)

// Stochastic signals %K/%D crossovers inside the extreme zones: +1 when %K
// crosses above %D while still below oversold, -1 when %K crosses below %D
// while still above overbought.
func (g *Generator) Stochastic(input *series.Series, kColumn, dColumn string, overbought, oversold float64) []float64 {
	out := zeroSignals(input.Len())

	values, ok := g.requireColumns(input, "stochastic", kColumn, dColumn)
	if !ok {
		return out
	}
	k, d := values[0], values[1]

	for i := 1; i < len(out); i++ {
		switch {
		case k[i] > d[i] && k[i-1] <= d[i-1] && k[i] < oversold:
			out[i] = 1
		case k[i] < d[i] && k[i-1] >= d[i-1] && k[i] > overbought:
			out[i] = -1
		}
	}

	return out
}
