package signal

import (
	"github.com/meridian-lab/stock-analysis/internal/series"
)

// RSI signals momentum reversals at the threshold extremes: +1 when RSI sits
// at or below oversold and is rising, -1 when it sits at or above overbought
// and is falling. This is a momentum filter inside the extreme zone, not a
// zone-entry detector.
func (g *Generator) RSI(input *series.Series, column string, overbought, oversold float64) []float64 {
	out := zeroSignals(input.Len())

	values, ok := g.requireColumns(input, "rsi", column)
	if !ok {
		return out
	}
	rsi := values[0]

	for i := 1; i < len(rsi); i++ {
		switch {
		case rsi[i] <= oversold && rsi[i] > rsi[i-1]:
			out[i] = 1
		case rsi[i] >= overbought && rsi[i] < rsi[i-1]:
			out[i] = -1
		}
	}

	return out
}
