// Package config loads and validates the YAML analysis configuration.
package config

import (
	"encoding/json"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/meridian-lab/stock-analysis/internal/indicator"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/internal/version"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// AnalysisConfig is the root document for one analysis run.
type AnalysisConfig struct {
	Version    string           `yaml:"version" json:"version" jsonschema:"title=Version,description=Tool version this configuration targets,required" validate:"required"`
	Indicators IndicatorsConfig `yaml:"indicators" json:"indicators" jsonschema:"title=Indicators,description=Indicator parameterizations to compute"`
	Signals    SignalsConfig    `yaml:"signals" json:"signals" jsonschema:"title=Signals,description=Signal thresholds and fusion weights"`
	Output     OutputConfig     `yaml:"output" json:"output" jsonschema:"title=Output,description=Export format and precision"`
}

// IndicatorsConfig selects the indicator parameterizations to compute.
type IndicatorsConfig struct {
	SMAWindows       []int   `yaml:"sma_windows" json:"sma_windows" jsonschema:"title=SMA Windows,description=Simple moving average windows" default:"[20,50]" validate:"dive,gt=0"`
	EMAWindows       []int   `yaml:"ema_windows" json:"ema_windows" jsonschema:"title=EMA Windows,description=Exponential moving average spans" default:"[20,50]" validate:"dive,gt=0"`
	RSIWindow        int     `yaml:"rsi_window" json:"rsi_window" jsonschema:"title=RSI Window" default:"14" validate:"gt=0"`
	BollingerWindow  int     `yaml:"bollinger_window" json:"bollinger_window" jsonschema:"title=Bollinger Window" default:"20" validate:"gt=0"`
	BollingerStdDev  float64 `yaml:"bollinger_std_dev" json:"bollinger_std_dev" jsonschema:"title=Bollinger Std Dev,description=Band width in standard deviations" default:"2.0" validate:"gte=0"`
	MACDFastPeriod   int     `yaml:"macd_fast_period" json:"macd_fast_period" jsonschema:"title=MACD Fast Period" default:"12" validate:"gt=0"`
	MACDSlowPeriod   int     `yaml:"macd_slow_period" json:"macd_slow_period" jsonschema:"title=MACD Slow Period" default:"26" validate:"gt=0"`
	MACDSignalPeriod int     `yaml:"macd_signal_period" json:"macd_signal_period" jsonschema:"title=MACD Signal Period" default:"9" validate:"gt=0"`
	StochKPeriod     int     `yaml:"stoch_k_period" json:"stoch_k_period" jsonschema:"title=Stochastic %K Period" default:"14" validate:"gt=0"`
	StochDPeriod     int     `yaml:"stoch_d_period" json:"stoch_d_period" jsonschema:"title=Stochastic %D Period" default:"3" validate:"gt=0"`
	WilliamsWindow   int     `yaml:"williams_window" json:"williams_window" jsonschema:"title=Williams %R Window" default:"14" validate:"gt=0"`
	ATRWindow        int     `yaml:"atr_window" json:"atr_window" jsonschema:"title=ATR Window" default:"14" validate:"gt=0"`
	CCIWindow        int     `yaml:"cci_window" json:"cci_window" jsonschema:"title=CCI Window" default:"20" validate:"gt=0"`
}

// SignalsConfig sets the oscillator thresholds and combination weights.
type SignalsConfig struct {
	RSIOverbought   float64   `yaml:"rsi_overbought" json:"rsi_overbought" jsonschema:"title=RSI Overbought" default:"70" validate:"gte=0,lte=100,gtfield=RSIOversold"`
	RSIOversold     float64   `yaml:"rsi_oversold" json:"rsi_oversold" jsonschema:"title=RSI Oversold" default:"30" validate:"gte=0,lte=100"`
	StochOverbought float64   `yaml:"stoch_overbought" json:"stoch_overbought" jsonschema:"title=Stochastic Overbought" default:"80" validate:"gte=0,lte=100,gtfield=StochOversold"`
	StochOversold   float64   `yaml:"stoch_oversold" json:"stoch_oversold" jsonschema:"title=Stochastic Oversold" default:"20" validate:"gte=0,lte=100"`
	CombineWeights  []float64 `yaml:"combine_weights" json:"combine_weights" jsonschema:"title=Combine Weights,description=Per-signal weights for the combined column; empty means uniform"`
}

// OutputConfig controls how enriched tables are exported.
type OutputConfig struct {
	Format    string `yaml:"format" json:"format" jsonschema:"title=Format,enum=csv,enum=parquet" default:"csv" validate:"oneof=csv parquet"`
	Precision int32  `yaml:"precision" json:"precision" jsonschema:"title=Precision,description=Decimal places for CSV cells" default:"6" validate:"gte=0,lte=12"`
}

// Load reads a config file and returns the validated configuration.
func Load(path string) (*AnalysisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigReadFailed, "failed to read config file", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document, applies defaults, validates the result and
// gates it against the tool version.
func Parse(data []byte) (*AnalysisConfig, error) {
	config := &AnalysisConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParseFailed, "failed to parse config file", err)
	}

	if err := defaults.Set(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParseFailed, "failed to apply config defaults", err)
	}

	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigValidation, "invalid configuration", err)
	}

	if err := version.CheckVersionCompatibility(version.GetVersion(), config.Version); err != nil {
		return nil, errors.Wrap(errors.ErrCodeVersionMismatch, "config version is not compatible with this tool", err)
	}

	return config, nil
}

// DefaultConfig returns a configuration with every field at its default.
func DefaultConfig() (*AnalysisConfig, error) {
	config := &AnalysisConfig{Version: version.GetVersion()}
	if err := defaults.Set(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParseFailed, "failed to apply config defaults", err)
	}

	return config, nil
}

// ToIndicatorRequests converts the indicator section into engine requests.
func (c *AnalysisConfig) ToIndicatorRequests() []indicator.Params {
	requests := make([]indicator.Params, 0, len(c.Indicators.SMAWindows)+len(c.Indicators.EMAWindows)+7)

	for _, window := range c.Indicators.SMAWindows {
		requests = append(requests, indicator.Params{Type: types.IndicatorTypeSMA, Args: []any{window}})
	}

	for _, span := range c.Indicators.EMAWindows {
		requests = append(requests, indicator.Params{Type: types.IndicatorTypeEMA, Args: []any{span}})
	}

	requests = append(requests,
		indicator.Params{Type: types.IndicatorTypeRSI, Args: []any{c.Indicators.RSIWindow}},
		indicator.Params{Type: types.IndicatorTypeBollingerBands, Args: []any{c.Indicators.BollingerWindow, c.Indicators.BollingerStdDev}},
		indicator.Params{Type: types.IndicatorTypeMACD, Args: []any{c.Indicators.MACDFastPeriod, c.Indicators.MACDSlowPeriod, c.Indicators.MACDSignalPeriod}},
		indicator.Params{Type: types.IndicatorTypeStochasticOscillator, Args: []any{c.Indicators.StochKPeriod, c.Indicators.StochDPeriod}},
		indicator.Params{Type: types.IndicatorTypeWilliamsR, Args: []any{c.Indicators.WilliamsWindow}},
		indicator.Params{Type: types.IndicatorTypeATR, Args: []any{c.Indicators.ATRWindow}},
		indicator.Params{Type: types.IndicatorTypeCCI, Args: []any{c.Indicators.CCIWindow}},
	)

	return requests
}

// GenerateSchema generates a JSON schema for the AnalysisConfig.
func (c *AnalysisConfig) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(c)
	schema.Title = "analysis-config"
	schema.Description = "Configuration schema for a stock analysis run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates an indented JSON schema string for the AnalysisConfig.
func (c *AnalysisConfig) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSchemaGeneration, "failed to marshal config schema", err)
	}

	return string(schemaBytes), nil
}
