package indicator

import (
	"math"

	optional "github.com/moznion/go-optional"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// ATR represents the Average True Range volatility indicator.
type ATR struct {
	window int
}

// NewATR creates a new ATR indicator with default configuration.
func NewATR() Indicator {
	return &ATR{
		window: 14, // Default window
	}
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Config configures the ATR indicator. Expected parameters: window (int).
func (a *ATR) Config(params ...any) error {
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

	a.window = window

	return nil
}

// Columns returns the output column names for the current configuration.
func (a *ATR) Columns() []string {
	return []string{types.ColumnATR}
}

// Compute derives the trailing mean of the true range: the largest of
// high-low, |high-prevClose| and |low-prevClose| per row.
func (a *ATR) Compute(input *series.Series, ctx Context) optional.Option[[]Column] {
	values, ok := requireColumns(input, ctx, a.Name(), types.ColumnHigh, types.ColumnLow, types.ColumnClose)
	if !ok {
		return optional.None[[]Column]()
	}

	highs, lows, closes := values[0], values[1], values[2]
	trueRange := make([]float64, len(closes))
	for i := range trueRange {
		highLow := highs[i] - lows[i]
		if i == 0 {
			// no previous close on the first row
			trueRange[i] = highLow
			continue
		}

		trueRange[i] = largestDefined(
			highLow,
			math.Abs(highs[i]-closes[i-1]),
			math.Abs(lows[i]-closes[i-1]),
		)
	}

	return optional.Some([]Column{{
		Name:   types.ColumnATR,
		Values: series.RollingMean(trueRange, a.window),
	}})
}

// largestDefined takes the maximum over the non-NaN candidates, NaN only when
// every candidate is NaN.
func largestDefined(candidates ...float64) float64 {
	out := math.NaN()
	for _, c := range candidates {
		if math.IsNaN(c) {
			continue
		}
		if math.IsNaN(out) || c > out {
			out = c
		}
	}

	return out
}
