package indicator

import (
	optional "github.com/moznion/go-optional"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// BollingerBands represents the Bollinger Bands indicator.
type BollingerBands struct {
	window    int
	numStdDev float64
	column    string
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		window:    20,  // Default window
		numStdDev: 2.0, // Default standard deviation multiplier
		column:    types.ColumnClose,
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Config configures the Bollinger Bands indicator. Expected parameters: window (int), numStdDev (float64), column (string, optional).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) < 2 || len(params) > 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 or 3 parameters: window (int), numStdDev (float64), column (string, optional)")
	}

	window, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for window parameter, expected int")
	}

	if window <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "window must be a positive integer, got %d", window)
	}

	numStdDev, ok := params[1].(float64)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for numStdDev parameter, expected float64")
	}

	if numStdDev < 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "numStdDev must be non-negative, got %f", numStdDev)
	}

	if len(params) == 3 {
		column, ok := params[2].(string)
		if !ok {
			return errors.New(errors.ErrCodeInvalidType, "invalid type for column parameter, expected string")
		}

		if column == "" {
			return errors.New(errors.ErrCodeInvalidParameter, "column must not be empty")
		}

		bb.column = column
	}

	bb.window = window
	bb.numStdDev = numStdDev

	return nil
}

// Columns returns the output column names for the current configuration.
func (bb *BollingerBands) Columns() []string {
	return []string{types.ColumnBBUpper, types.ColumnBBMiddle, types.ColumnBBLower}
}

// Compute derives the middle band as SMA(window) and the upper and lower
// bands at numStdDev trailing sample standard deviations around it.
func (bb *BollingerBands) Compute(input *series.Series, ctx Context) optional.Option[[]Column] {
	values, ok := requireColumns(input, ctx, bb.Name(), bb.column)
	if !ok {
		return optional.None[[]Column]()
	}

	middle := series.RollingMean(values[0], bb.window)
	std := series.RollingStd(values[0], bb.window)

	upper := make([]float64, len(middle))
	lower := make([]float64, len(middle))
	for i := range middle {
		width := bb.numStdDev * std[i]
		upper[i] = middle[i] + width
		lower[i] = middle[i] - width
	}

	return optional.Some([]Column{
		{Name: types.ColumnBBUpper, Values: upper},
		{Name: types.ColumnBBMiddle, Values: middle},
		{Name: types.ColumnBBLower, Values: lower},
	})
}
