package indicator

import (
	optional "github.com/moznion/go-optional"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// SMA indicator implements the Simple Moving Average over a source column.
type SMA struct {
	window int
	column string
}

// NewSMA creates a new SMA indicator with default configuration.
func NewSMA() Indicator {
	return &SMA{
		window: 20, // Default window
		column: types.ColumnClose,
	}
}

// Name returns the name of the indicator.
func (sm *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Config configures the SMA indicator. Expected parameters: window (int), column (string, optional).
func (sm *SMA) Config(params ...any) error {
	if len(params) < 1 || len(params) > 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 or 2 parameters: window (int), column (string, optional)")
	}

	window, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for window parameter, expected int")
	}

	if window <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "window must be a positive integer, got %d", window)
	}

	if len(params) == 2 {
		column, ok := params[1].(string)
		if !ok {
			return errors.New(errors.ErrCodeInvalidType, "invalid type for column parameter, expected string")
		}

		if column == "" {
			return errors.New(errors.ErrCodeInvalidParameter, "column must not be empty")
		}

		sm.column = column
	}

	sm.window = window

	return nil
}

// Columns returns the output column names for the current configuration.
func (sm *SMA) Columns() []string {
	return []string{types.SMAColumn(sm.window)}
}

// Compute derives the trailing mean of the source column. Rows without a
// complete window are NaN.
func (sm *SMA) Compute(input *series.Series, ctx Context) optional.Option[[]Column] {
	values, ok := requireColumns(input, ctx, sm.Name(), sm.column)
	if !ok {
		return optional.None[[]Column]()
	}

	return optional.Some([]Column{{
		Name:   types.SMAColumn(sm.window),
		Values: series.RollingMean(values[0], sm.window),
	}})
}
