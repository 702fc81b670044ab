package types

import "fmt"

// Input columns required on every price table. ColumnDate names the
// timestamp axis in files; in memory it lives on the series itself.
const (
	ColumnDate   = "Date"
	ColumnOpen   = "Open"
	ColumnHigh   = "High"
	ColumnLow    = "Low"
	ColumnClose  = "Close"
	ColumnVolume = "Volume"
)

// Indicator columns with fixed names.
const (
	ColumnRSI           = "RSI"
	ColumnBBUpper       = "BB_Upper"
	ColumnBBMiddle      = "BB_Middle"
	ColumnBBLower       = "BB_Lower"
	ColumnMACD          = "MACD"
	ColumnMACDSignal    = "MACD_Signal"
	ColumnMACDHistogram = "MACD_Histogram"
	ColumnStochK        = "Stoch_K"
	ColumnStochD        = "Stoch_D"
	ColumnWilliamsR     = "Williams_R"
	ColumnATR           = "ATR"
	ColumnCCI           = "CCI"
)

// Signal columns. Every generated signal column carries the prefix so the
// combiner can discover them by name.
const (
	SignalColumnPrefix      = "Signal_"
	ColumnSignalMACrossover = "Signal_MA_Crossover"
	ColumnSignalRSI         = "Signal_RSI"
	ColumnSignalBB          = "Signal_BB"
	ColumnSignalMACD        = "Signal_MACD"
	ColumnSignalStoch       = "Signal_Stoch"
	ColumnSignalCombined    = "Signal_Combined"
)

// RequiredColumns returns the input columns every price table must carry.
func RequiredColumns() []string {
	return []string{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume}
}

// SMAColumn returns the windowed SMA column name, e.g. SMA_20.
func SMAColumn(window int) string {
	return fmt.Sprintf("SMA_%d", window)
}

// EMAColumn returns the windowed EMA column name, e.g. EMA_50.
func EMAColumn(span int) string {
	return fmt.Sprintf("EMA_%d", span)
}
