package indicator

import (
	optional "github.com/moznion/go-optional"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// CCI represents the Commodity Channel Index indicator.
type CCI struct {
	window int
}

// NewCCI creates a new CCI indicator with default configuration.
func NewCCI() Indicator {
	return &CCI{
		window: 20, // Default window
	}
}

// Name returns the name of the indicator.
func (c *CCI) Name() types.IndicatorType {
	return types.IndicatorTypeCCI
}

// Config configures the CCI indicator. Expected parameters: window (int).
func (c *CCI) Config(params ...any) error {
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

	c.window = window

	return nil
}

// Columns returns the output column names for the current configuration.
func (c *CCI) Columns() []string {
	return []string{types.ColumnCCI}
}

// Compute derives the deviation of the typical price (H+L+C)/3 from its
// trailing mean, scaled by 0.015 times the trailing mean absolute deviation.
// A flat window divides to 0 via the guarded denominator.
func (c *CCI) Compute(input *series.Series, ctx Context) optional.Option[[]Column] {
	values, ok := requireColumns(input, ctx, c.Name(), types.ColumnHigh, types.ColumnLow, types.ColumnClose)
	if !ok {
		return optional.None[[]Column]()
	}

	highs, lows, closes := values[0], values[1], values[2]
	typical := make([]float64, len(closes))
	for i := range typical {
		typical[i] = (highs[i] + lows[i] + closes[i]) / 3
	}

	mean := series.RollingMean(typical, c.window)
	deviation := series.RollingMeanAbsDev(typical, c.window)

	out := make([]float64, len(typical))
	for i := range out {
		out[i] = (typical[i] - mean[i]) / guardDenominator(0.015*deviation[i])
	}

	return optional.Some([]Column{{
		Name:   types.ColumnCCI,
		Values: out,
	}})
}
