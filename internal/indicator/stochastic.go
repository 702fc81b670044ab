package indicator

import (
	optional "github.com/moznion/go-optional"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// StochasticOscillator represents the %K/%D stochastic momentum indicator.
type StochasticOscillator struct {
	kPeriod int
	dPeriod int
}

// NewStochasticOscillator creates a new stochastic oscillator with default configuration.
func NewStochasticOscillator() Indicator {
	return &StochasticOscillator{
		kPeriod: 14, // Default %K period
		dPeriod: 3,  // Default %D period
	}
}

// Name returns the name of the indicator.
func (so *StochasticOscillator) Name() types.IndicatorType {
	return types.IndicatorTypeStochasticOscillator
}

// Config configures the stochastic oscillator. Expected parameters: kPeriod (int), dPeriod (int).
func (so *StochasticOscillator) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: kPeriod (int), dPeriod (int)")
	}

	kPeriod, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for kPeriod parameter, expected int")
	}

	if kPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "kPeriod must be a positive integer, got %d", kPeriod)
	}

	dPeriod, ok := params[1].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for dPeriod parameter, expected int")
	}

	if dPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "dPeriod must be a positive integer, got %d", dPeriod)
	}

	so.kPeriod = kPeriod
	so.dPeriod = dPeriod

	return nil
}

// Columns returns the output column names for the current configuration.
func (so *StochasticOscillator) Columns() []string {
	return []string{types.ColumnStochK, types.ColumnStochD}
}

// Compute derives %K as the close position inside the trailing high-low range
// and %D as SMA(dPeriod) of %K. A flat range divides to 0 via the guarded
// denominator.
func (so *StochasticOscillator) Compute(input *series.Series, ctx Context) optional.Option[[]Column] {
	values, ok := requireColumns(input, ctx, so.Name(), types.ColumnHigh, types.ColumnLow, types.ColumnClose)
	if !ok {
		return optional.None[[]Column]()
	}

	highs, lows, closes := values[0], values[1], values[2]
	highest := series.RollingMax(highs, so.kPeriod)
	lowest := series.RollingMin(lows, so.kPeriod)

	k := make([]float64, len(closes))
	for i := range k {
		k[i] = 100 * (closes[i] - lowest[i]) / guardDenominator(highest[i]-lowest[i])
	}

	return optional.Some([]Column{
		{Name: types.ColumnStochK, Values: k},
		{Name: types.ColumnStochD, Values: series.RollingMean(k, so.dPeriod)},
	})
}
