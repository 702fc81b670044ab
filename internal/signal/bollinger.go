package signal

import (
	"github.com/meridian-lab/stock-analysis/internal/series"
)

// BollingerBands signals band re-entries: +1 when the close recovers from
// below the lower band to at or above it, -1 when it falls from above the
// upper band to at or below it. The lower-band rule fires first and a row it
// claims is never overwritten by the upper-band rule.
func (g *Generator) BollingerBands(input *series.Series, closeColumn, upperColumn, lowerColumn string) []float64 {
	out := zeroSignals(input.Len())

	values, ok := g.requireColumns(input, "bollinger_bands", closeColumn, upperColumn, lowerColumn)
	if !ok {
		return out
	}
	closes, upper, lower := values[0], values[1], values[2]

	prevCloses := series.Shift(closes, 1)
	prevUpper := series.Shift(upper, 1)
	prevLower := series.Shift(lower, 1)

	// Row 0 has NaN shifted values, so neither comparison can hold there.
	for i := range out {
		if prevCloses[i] < prevLower[i] && closes[i] >= lower[i] {
			out[i] = 1
			continue
		}

		if prevCloses[i] > prevUpper[i] && closes[i] <= upper[i] {
			out[i] = -1
		}
	}

	return out
}
