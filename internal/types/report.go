package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SignalCount aggregates one signal column over an analyzed range.
type SignalCount struct {
	// Column is the signal column name.
	Column string `yaml:"column"`
	// Buys is the number of rows flagged +1.
	Buys int `yaml:"buys"`
	// Sells is the number of rows flagged -1.
	Sells int `yaml:"sells"`
	// Neutral is the number of rows without a signal.
	Neutral int `yaml:"neutral"`
}

// AnalysisReport summarizes one analysis run over a single data file.
type AnalysisReport struct {
	// ID is the unique identifier for this analysis run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// DataPath is the path to the price data file that was analyzed.
	DataPath string `yaml:"data_path" json:"data_path"`
	// OutputPath is the path to the enriched table written by this run.
	OutputPath string `yaml:"output_path" json:"output_path"`
	// Rows is the number of rows analyzed.
	Rows int `yaml:"rows"`
	// Start is the first analyzed timestamp.
	Start time.Time `yaml:"start"`
	// End is the last analyzed timestamp.
	End time.Time `yaml:"end"`
	// LastClose is the close price on the final row.
	LastClose float64 `yaml:"last_close"`
	// LastCombinedSignal is the combined signal on the final row.
	LastCombinedSignal string `yaml:"last_combined_signal"`
	// Signals summarizes each generated signal column.
	Signals []SignalCount `yaml:"signals"`
}

func WriteAnalysisReport(path string, report AnalysisReport) error {
	// Marshal the struct to YAML
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis report to YAML: %w", err)
	}

	// Write the YAML data to the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write analysis report to file: %w", err)
	}

	return nil
}
