// Package signal derives tri-state trading-direction columns from a price
// series enriched with indicator columns. Every operation degrades to an
// all-zero column when its inputs are missing; nothing here is fatal.
package signal

import (
	"go.uber.org/zap"

	"github.com/meridian-lab/stock-analysis/internal/logger"
	"github.com/meridian-lab/stock-analysis/internal/series"
)

// Default threshold levels for the oscillator signals.
const (
	DefaultRSIOverbought   = 70.0
	DefaultRSIOversold     = 30.0
	DefaultStochOverbought = 80.0
	DefaultStochOversold   = 20.0
)

// Fixed decision thresholds for the combined signal.
const (
	buyThreshold  = 0.2
	sellThreshold = -0.2
)

// Generator produces signal columns from indicator columns.
type Generator struct {
	log *logger.Logger
}

// NewGenerator creates a signal generator. A nil logger falls back to the
// process-wide default.
func NewGenerator(log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Default()
	}

	return &Generator{log: log}
}

// zeroSignals returns an all-neutral column of the given length.
func zeroSignals(n int) []float64 {
	return make([]float64, n)
}

// requireColumns fetches the named columns, logging when any is absent.
func (g *Generator) requireColumns(input *series.Series, operation string, columns ...string) ([][]float64, bool) {
	values := make([][]float64, 0, len(columns))
	for _, column := range columns {
		col := input.Column(column)
		if col.IsNone() {
			g.log.Error("required column not found",
				zap.String("operation", operation),
				zap.String("column", column))

			return nil, false
		}
		values = append(values, col.Unwrap())
	}

	return values, true
}
