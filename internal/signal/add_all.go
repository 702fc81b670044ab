package signal

import (
	"strings"

	"go.uber.org/zap"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
)

// AddAllOptions parameterizes AddAll. Zero values fall back to the defaults.
type AddAllOptions struct {
	RSIOverbought   float64
	RSIOversold     float64
	StochOverbought float64
	StochOversold   float64
	// Weights feed the combined column. Empty means uniform.
	Weights []float64
}

// DefaultAddAllOptions returns the standard AddAll parameter set.
func DefaultAddAllOptions() AddAllOptions {
	return AddAllOptions{
		RSIOverbought:   DefaultRSIOverbought,
		RSIOversold:     DefaultRSIOversold,
		StochOverbought: DefaultStochOverbought,
		StochOversold:   DefaultStochOversold,
	}
}

// AddAll appends every signal whose prerequisite indicator columns exist,
// then fuses all Signal_ columns into the combined column. Signal columns
// already present are left untouched, so applying AddAll twice yields the
// same table. Timestamps are normalized to UTC before any computation.
func (g *Generator) AddAll(input *series.Series, opts AddAllOptions) *series.Series {
	defaults := DefaultAddAllOptions()
	if opts.RSIOverbought <= 0 {
		opts.RSIOverbought = defaults.RSIOverbought
	}
	if opts.RSIOversold <= 0 {
		opts.RSIOversold = defaults.RSIOversold
	}
	if opts.StochOverbought <= 0 {
		opts.StochOverbought = defaults.StochOverbought
	}
	if opts.StochOversold <= 0 {
		opts.StochOversold = defaults.StochOversold
	}

	input.Normalize()

	rules := []struct {
		name     string
		requires []string
		compute  func() []float64
	}{
		{
			name:     types.ColumnSignalMACrossover,
			requires: []string{types.SMAColumn(20), types.SMAColumn(50)},
			compute: func() []float64 {
				return g.MACrossover(input, types.SMAColumn(20), types.SMAColumn(50))
			},
		},
		{
			name:     types.ColumnSignalRSI,
			requires: []string{types.ColumnRSI},
			compute: func() []float64 {
				return g.RSI(input, types.ColumnRSI, opts.RSIOverbought, opts.RSIOversold)
			},
		},
		{
			name:     types.ColumnSignalBB,
			requires: []string{types.ColumnBBUpper, types.ColumnBBLower},
			compute: func() []float64 {
				return g.BollingerBands(input, types.ColumnClose, types.ColumnBBUpper, types.ColumnBBLower)
			},
		},
		{
			name:     types.ColumnSignalMACD,
			requires: []string{types.ColumnMACD, types.ColumnMACDSignal},
			compute: func() []float64 {
				return g.MACD(input, types.ColumnMACD, types.ColumnMACDSignal)
			},
		},
		{
			name:     types.ColumnSignalStoch,
			requires: []string{types.ColumnStochK, types.ColumnStochD},
			compute: func() []float64 {
				return g.Stochastic(input, types.ColumnStochK, types.ColumnStochD, opts.StochOverbought, opts.StochOversold)
			},
		},
	}

	for _, rule := range rules {
		if input.HasColumn(rule.name) || !input.HasColumns(rule.requires...) {
			continue
		}

		if err := input.SetColumn(rule.name, rule.compute()); err != nil {
			g.log.Error("failed to attach signal column",
				zap.String("column", rule.name),
				zap.Error(err))
		}
	}

	if input.HasColumn(types.ColumnSignalCombined) {
		return input
	}

	// The combined column itself is excluded from discovery so a re-run
	// never feeds it back into the fusion.
	discovered := make([]string, 0)
	for _, name := range input.Columns() {
		if name == types.ColumnSignalCombined || !strings.HasPrefix(name, types.SignalColumnPrefix) {
			continue
		}
		discovered = append(discovered, name)
	}

	if len(discovered) == 0 {
		return input
	}

	if err := input.SetColumn(types.ColumnSignalCombined, g.Combine(input, discovered, opts.Weights)); err != nil {
		g.log.Error("failed to attach signal column",
			zap.String("column", types.ColumnSignalCombined),
			zap.Error(err))
	}

	return input
}
