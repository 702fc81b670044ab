package indicator

import (
	"go.uber.org/zap"

	"github.com/meridian-lab/stock-analysis/internal/logger"
	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
)

// Params names one indicator computation for Engine.Compute. Args are
// forwarded to the indicator's Config; leave them empty to keep the
// indicator's current configuration.
type Params struct {
	Type types.IndicatorType
	Args []any
}

// Engine resolves indicators from its registry and appends their columns to
// a price series. It caches nothing across invocations; every requested
// column is computed fresh from the input.
type Engine struct {
	registry Registry
	log      *logger.Logger
}

// NewEngine creates an engine with every built-in indicator registered.
// A nil logger falls back to the process-wide default.
func NewEngine(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Default()
	}

	registry := NewRegistry()
	builtins := []Indicator{
		NewSMA(),
		NewEMA(),
		NewRSI(),
		NewBollingerBands(),
		NewMACD(),
		NewStochasticOscillator(),
		NewWilliamsR(),
		NewATR(),
		NewCCI(),
	}
	for _, ind := range builtins {
		// built-in names are unique, registration cannot fail
		_ = registry.Register(ind)
	}

	return &Engine{
		registry: registry,
		log:      log,
	}
}

// Registry exposes the engine's indicator registry so callers can add their
// own indicators.
func (e *Engine) Registry() Registry {
	return e.registry
}

// Compute appends the columns of every requested indicator to s and returns
// s. Columns already present are never touched; a failed request (unknown
// indicator, bad parameters, missing input columns) is logged and skipped so
// a single bad request cannot fail the pipeline.
func (e *Engine) Compute(s *series.Series, requests []Params) *series.Series {
	for _, request := range requests {
		ind, err := e.registry.Get(request.Type)
		if err != nil {
			e.log.Error("indicator not found",
				zap.String("indicator", string(request.Type)),
				zap.Error(err))

			continue
		}

		if len(request.Args) > 0 {
			if err := ind.Config(request.Args...); err != nil {
				e.log.Error("invalid indicator parameters",
					zap.String("indicator", string(request.Type)),
					zap.Error(err))

				continue
			}
		}

		e.apply(s, ind)
	}

	return s
}

// AddAllOptions parameterizes AddAll. Zero values fall back to the defaults.
type AddAllOptions struct {
	SMAWindows []int
	EMAWindows []int
	RSIWindow  int
}

// DefaultAddAllOptions returns the standard AddAll parameter set.
func DefaultAddAllOptions() AddAllOptions {
	return AddAllOptions{
		SMAWindows: []int{20, 50},
		EMAWindows: []int{20, 50},
		RSIWindow:  14,
	}
}

// AddAll normalizes the series' time zone and appends the full indicator
// set: windowed SMAs and EMAs, RSI, Bollinger Bands (20, 2.0), MACD
// (12, 26, 9), stochastic oscillator (14, 3), Williams %R (14), ATR (14)
// and CCI (20).
func (e *Engine) AddAll(s *series.Series, opts AddAllOptions) *series.Series {
	defaults := DefaultAddAllOptions()
	if len(opts.SMAWindows) == 0 {
		opts.SMAWindows = defaults.SMAWindows
	}
	if len(opts.EMAWindows) == 0 {
		opts.EMAWindows = defaults.EMAWindows
	}
	if opts.RSIWindow <= 0 {
		opts.RSIWindow = defaults.RSIWindow
	}

	s.Normalize()

	requests := make([]Params, 0, len(opts.SMAWindows)+len(opts.EMAWindows)+7)
	for _, window := range opts.SMAWindows {
		requests = append(requests, Params{Type: types.IndicatorTypeSMA, Args: []any{window}})
	}
	for _, span := range opts.EMAWindows {
		requests = append(requests, Params{Type: types.IndicatorTypeEMA, Args: []any{span}})
	}
	requests = append(requests,
		Params{Type: types.IndicatorTypeRSI, Args: []any{opts.RSIWindow}},
		Params{Type: types.IndicatorTypeBollingerBands, Args: []any{20, 2.0}},
		Params{Type: types.IndicatorTypeMACD, Args: []any{12, 26, 9}},
		Params{Type: types.IndicatorTypeStochasticOscillator, Args: []any{14, 3}},
		Params{Type: types.IndicatorTypeWilliamsR, Args: []any{14}},
		Params{Type: types.IndicatorTypeATR, Args: []any{14}},
		Params{Type: types.IndicatorTypeCCI, Args: []any{20}},
	)

	return e.Compute(s, requests)
}

func (e *Engine) context() Context {
	return Context{
		Logger:   e.log,
		Registry: e.registry,
	}
}

// apply computes one configured indicator and attaches the columns that do
// not exist yet on the series.
func (e *Engine) apply(s *series.Series, ind Indicator) {
	pending := false
	for _, name := range ind.Columns() {
		if !s.HasColumn(name) {
			pending = true
			break
		}
	}
	if !pending {
		e.log.Debug("indicator columns already present",
			zap.String("indicator", string(ind.Name())))

		return
	}

	result := ind.Compute(s, e.context())
	if result.IsNone() {
		// Compute already logged the failure
		return
	}

	for _, col := range result.Unwrap() {
		if s.HasColumn(col.Name) {
			continue
		}
		if err := s.SetColumn(col.Name, col.Values); err != nil {
			e.log.Error("failed to attach indicator column",
				zap.String("indicator", string(ind.Name())),
				zap.String("column", col.Name),
				zap.Error(err))
		}
	}
}
