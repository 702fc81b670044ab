package indicator

import (
	"math"

	optional "github.com/moznion/go-optional"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
type RSI struct {
	window int
	column string
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		window: 14, // Default window
		column: types.ColumnClose,
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: window (int), column (string, optional).
func (r *RSI) Config(params ...any) error {
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

		r.column = column
	}

	r.window = window

	return nil
}

// Columns returns the output column names for the current configuration.
func (r *RSI) Columns() []string {
	return []string{types.ColumnRSI}
}

// Compute splits per-step changes into gains and losses, takes their trailing
// means, and maps RS = meanGain/meanLoss into [0, 100]. The first row's
// change counts as zero gain and zero loss. A window with zero mean loss but
// positive mean gain saturates at 100; a fully flat window is undefined.
func (r *RSI) Compute(input *series.Series, ctx Context) optional.Option[[]Column] {
	values, ok := requireColumns(input, ctx, r.Name(), r.column)
	if !ok {
		return optional.None[[]Column]()
	}

	source := values[0]
	deltas := series.Diff(source, 1)
	gains := make([]float64, len(source))
	losses := make([]float64, len(source))
	for i, delta := range deltas {
		switch {
		case delta > 0:
			gains[i] = delta
		case delta < 0:
			losses[i] = -delta
		}
	}

	meanGain := series.RollingMean(gains, r.window)
	meanLoss := series.RollingMean(losses, r.window)

	out := series.NaNSlice(len(source))
	for i := range out {
		mg, ml := meanGain[i], meanLoss[i]
		if math.IsNaN(mg) || math.IsNaN(ml) {
			continue
		}

		if ml == 0 {
			// zero loss means infinite RS, saturate
			if mg > 0 {
				out[i] = 100
			}

			continue
		}

		rs := mg / ml
		out[i] = 100 - 100/(1+rs)
	}

	return optional.Some([]Column{{
		Name:   types.ColumnRSI,
		Values: out,
	}})
}
