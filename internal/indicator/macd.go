package indicator

import (
	optional "github.com/moznion/go-optional"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
	column       string
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12, // Default fast period
		slowPeriod:   26, // Default slow period
		signalPeriod: 9,  // Default signal period
		column:       types.ColumnClose,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int), column (string, optional).
func (m *MACD) Config(params ...any) error {
	if len(params) < 3 || len(params) > 4 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 or 4 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int), column (string, optional)")
	}

	fastPeriod, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for fastPeriod parameter, expected int")
	}

	if fastPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod must be a positive integer, got %d", fastPeriod)
	}

	slowPeriod, ok := params[1].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for slowPeriod parameter, expected int")
	}

	if slowPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "slowPeriod must be a positive integer, got %d", slowPeriod)
	}

	signalPeriod, ok := params[2].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for signalPeriod parameter, expected int")
	}

	if signalPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "signalPeriod must be a positive integer, got %d", signalPeriod)
	}

	if len(params) == 4 {
		column, ok := params[3].(string)
		if !ok {
			return errors.New(errors.ErrCodeInvalidType, "invalid type for column parameter, expected string")
		}

		if column == "" {
			return errors.New(errors.ErrCodeInvalidParameter, "column must not be empty")
		}

		m.column = column
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

// Columns returns the output column names for the current configuration.
func (m *MACD) Columns() []string {
	return []string{types.ColumnMACD, types.ColumnMACDSignal, types.ColumnMACDHistogram}
}

// Compute derives the MACD line as EMA(fast) - EMA(slow), the signal line as
// EMA(signalPeriod) of the MACD line, and the histogram as their difference.
func (m *MACD) Compute(input *series.Series, ctx Context) optional.Option[[]Column] {
	values, ok := requireColumns(input, ctx, m.Name(), m.column)
	if !ok {
		return optional.None[[]Column]()
	}

	fast := series.EWMA(values[0], m.fastPeriod)
	slow := series.EWMA(values[0], m.slowPeriod)

	line := make([]float64, len(fast))
	for i := range line {
		line[i] = fast[i] - slow[i]
	}

	signalLine := series.EWMA(line, m.signalPeriod)

	histogram := make([]float64, len(line))
	for i := range histogram {
		histogram[i] = line[i] - signalLine[i]
	}

	return optional.Some([]Column{
		{Name: types.ColumnMACD, Values: line},
		{Name: types.ColumnMACDSignal, Values: signalLine},
		{Name: types.ColumnMACDHistogram, Values: histogram},
	})
}
