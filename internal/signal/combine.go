package signal

import (
	"go.uber.org/zap"

	"github.com/meridian-lab/stock-analysis/internal/series"
)

// Combine fuses the named signal columns into one tri-state column via a
// normalized weighted sum: +1 above 0.2, -1 below -0.2, else 0. Nil weights
// mean uniform weighting; a weight count mismatch or a non-positive weight
// sum is logged and falls back to uniform.
func (g *Generator) Combine(input *series.Series, signalColumns []string, weights []float64) []float64 {
	out := zeroSignals(input.Len())
	if len(signalColumns) == 0 {
		return out
	}

	values, ok := g.requireColumns(input, "combine", signalColumns...)
	if !ok {
		return out
	}

	if len(weights) == 0 {
		weights = uniformWeights(len(signalColumns))
	}

	if len(weights) != len(signalColumns) {
		g.log.Error("weight count does not match signal column count",
			zap.Int("weights", len(weights)),
			zap.Int("columns", len(signalColumns)))
		weights = uniformWeights(len(signalColumns))
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}

	if total <= 0 {
		g.log.Error("weights must sum to a positive value", zap.Float64("sum", total))
		weights = uniformWeights(len(signalColumns))
		total = 1
	}

	for i := range out {
		sum := 0.0
		for j, column := range values {
			sum += column[i] * weights[j] / total
		}

		switch {
		case sum > buyThreshold:
			out[i] = 1
		case sum < sellThreshold:
			out[i] = -1
		}
	}

	return out
}

func uniformWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}

	return weights
}
