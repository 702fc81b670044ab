// Package indicator derives technical-indicator columns from a price series.
// Every indicator is a windowed transform appended to the caller's table; the
// engine and the indicators themselves keep no per-series state.
package indicator

import (
	optional "github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/meridian-lab/stock-analysis/internal/logger"
	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
)

// Context carries the collaborators shared by indicator computations.
type Context struct {
	Logger   *logger.Logger
	Registry Registry
}

// Column is one derived column aligned to the input series.
type Column struct {
	Name   string
	Values []float64
}

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config configures the indicator parameters
	Config(params ...any) error
	// Columns returns the output column names for the current configuration
	Columns() []string
	// Compute derives the output columns from the input series. A missing
	// required input column is logged and yields None.
	Compute(input *series.Series, ctx Context) optional.Option[[]Column]
}

// denominatorFloor replaces a zero range before division so flat windows
// produce 0 instead of Inf or NaN.
const denominatorFloor = 1e-10

func guardDenominator(v float64) float64 {
	if v == 0 {
		return denominatorFloor
	}

	return v
}

// requireColumns fetches the named input columns, logging when any is absent.
func requireColumns(input *series.Series, ctx Context, name types.IndicatorType, columns ...string) ([][]float64, bool) {
	values := make([][]float64, 0, len(columns))
	for _, column := range columns {
		col := input.Column(column)
		if col.IsNone() {
			if ctx.Logger != nil {
				ctx.Logger.Error("required column not found",
					zap.String("indicator", string(name)),
					zap.String("column", column))
			}

			return nil, false
		}
		values = append(values, col.Unwrap())
	}

	return values, true
}
