package signal

import (
	"github.com/meridian-lab/stock-analysis/internal/series"
)

// MACD signals line crossovers: +1 the step the MACD line moves above the
// signal line, -1 the step it moves below.
func (g *Generator) MACD(input *series.Series, macdColumn, signalColumn string) []float64 {
	out := zeroSignals(input.Len())

	values, ok := g.requireColumns(input, "macd", macdColumn, signalColumn)
	if !ok {
		return out
	}
	line, signalLine := values[0], values[1]

	for i := 1; i < len(out); i++ {
		switch {
		case line[i] > signalLine[i] && line[i-1] <= signalLine[i-1]:
			out[i] = 1
		case line[i] < signalLine[i] && line[i-1] >= signalLine[i-1]:
			out[i] = -1
		}
	}

	return out
}
