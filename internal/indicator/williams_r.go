package indicator

import (
	optional "github.com/moznion/go-optional"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// WilliamsR represents the Williams %R momentum indicator.
type WilliamsR struct {
	window int
}

// NewWilliamsR creates a new Williams %R indicator with default configuration.
func NewWilliamsR() Indicator {
	return &WilliamsR{
		window: 14, // Default window
	}
}

// Name returns the name of the indicator.
func (w *WilliamsR) Name() types.IndicatorType {
	return types.IndicatorTypeWilliamsR
}

// Config configures the Williams %R indicator. Expected parameters: window (int).
func (w *WilliamsR) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: window (int)")
	}

	window, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for window parameter, expected int")
	}

	if window <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "window must be a positive integer, got %d", window)
	}

	w.window = window

	return nil
}

// Columns returns the output column names for the current configuration.
func (w *WilliamsR) Columns() []string {
	return []string{types.ColumnWilliamsR}
}

// Compute derives the close position relative to the trailing high, scaled to
// [-100, 0]. A flat range divides to 0 via the guarded denominator.
func (w *WilliamsR) Compute(input *series.Series, ctx Context) optional.Option[[]Column] {
	values, ok := requireColumns(input, ctx, w.Name(), types.ColumnHigh, types.ColumnLow, types.ColumnClose)
	if !ok {
		return optional.None[[]Column]()
	}

	highs, lows, closes := values[0], values[1], values[2]
	highest := series.RollingMax(highs, w.window)
	lowest := series.RollingMin(lows, w.window)

	out := make([]float64, len(closes))
	for i := range out {
		out[i] = -100 * (highest[i] - closes[i]) / guardDenominator(highest[i]-lowest[i])
	}

	return optional.Some([]Column{{
		Name:   types.ColumnWilliamsR,
		Values: out,
	}})
}
