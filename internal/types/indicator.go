package types

type IndicatorType string

const (
	IndicatorTypeSMA                  IndicatorType = "sma"
	IndicatorTypeEMA                  IndicatorType = "ema"
	IndicatorTypeRSI                  IndicatorType = "rsi"
	IndicatorTypeBollingerBands       IndicatorType = "bollinger_bands"
	IndicatorTypeMACD                 IndicatorType = "macd"
	IndicatorTypeStochasticOscillator IndicatorType = "stochastic_oscillator"
	IndicatorTypeWilliamsR            IndicatorType = "williams_r"
	IndicatorTypeATR                  IndicatorType = "atr"
	IndicatorTypeCCI                  IndicatorType = "cci"
)
