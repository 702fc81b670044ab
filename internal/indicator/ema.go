package indicator

import (
	optional "github.com/moznion/go-optional"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// EMA indicator implements the Exponential Moving Average over a source column.
type EMA struct {
	span   int
	column string
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		span:   20, // Default span
		column: types.ColumnClose,
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: span (int), column (string, optional).
func (e *EMA) Config(params ...any) error {
	if len(params) < 1 || len(params) > 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 or 2 parameters: span (int), column (string, optional)")
	}

	span, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for span parameter, expected int")
	}

	if span <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "span must be a positive integer, got %d", span)
	}

	if len(params) == 2 {
		column, ok := params[1].(string)
		if !ok {
			return errors.New(errors.ErrCodeInvalidType, "invalid type for column parameter, expected string")
		}

		if column == "" {
			return errors.New(errors.ErrCodeInvalidParameter, "column must not be empty")
		}

		e.column = column
	}

	e.span = span

	return nil
}

// Columns returns the output column names for the current configuration.
func (e *EMA) Columns() []string {
	return []string{types.EMAColumn(e.span)}
}

// Compute derives the recursive exponentially weighted mean with
// alpha = 2/(span+1), seeded with the first value.
func (e *EMA) Compute(input *series.Series, ctx Context) optional.Option[[]Column] {
	values, ok := requireColumns(input, ctx, e.Name(), e.column)
	if !ok {
		return optional.None[[]Column]()
	}

	return optional.Some([]Column{{
		Name:   types.EMAColumn(e.span),
		Values: series.EWMA(values[0], e.span),
	}})
}
