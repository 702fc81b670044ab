// Package analysis orchestrates complete runs: load price files, append
// indicator and signal columns, export the enriched tables and summarize
// each run in a report.
package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/meridian-lab/stock-analysis/internal/config"
	"github.com/meridian-lab/stock-analysis/internal/dataset"
	"github.com/meridian-lab/stock-analysis/internal/indicator"
	"github.com/meridian-lab/stock-analysis/internal/logger"
	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/signal"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// Runner executes the load, indicators, signals, export pipeline for a
// fixed configuration.
type Runner struct {
	config    *config.AnalysisConfig
	log       *logger.Logger
	engine    *indicator.Engine
	generator *signal.Generator
}

// NewRunner creates a runner for the given configuration. A nil logger
// falls back to the default logger.
func NewRunner(cfg *config.AnalysisConfig, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Default()
	}

	return &Runner{
		config:    cfg,
		log:       log,
		engine:    indicator.NewEngine(log),
		generator: signal.NewGenerator(log),
	}
}

// Options control a single Run invocation.
type Options struct {
	// DataPaths lists the input files to analyze.
	DataPaths []string
	// OutputDir receives one enriched table and one report per input file.
	OutputDir string
	// Start and End bound the analyzed time range.
	Start optional.Option[time.Time]
	End   optional.Option[time.Time]
	// ShowProgress renders a progress bar over the input files.
	ShowProgress bool
	// SkipReport disables the per-file YAML report.
	SkipReport bool
}

// Run analyzes every input file and returns one report per file.
// The first failing file aborts the run.
func (r *Runner) Run(ctx context.Context, opts Options) ([]types.AnalysisReport, error) {
	if len(opts.DataPaths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "no input files to analyze")
	}

	if opts.OutputDir == "" {
		return nil, errors.New(errors.ErrCodeResultsDirRequired, "output directory is required")
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to create output directory", err)
	}

	writer, err := dataset.NewWriter(r.config.Output.Format, r.config.Output.Precision, r.log)
	if err != nil {
		return nil, err
	}

	source, err := dataset.NewDuckDBSource(r.log)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.Default(int64(len(opts.DataPaths)))
	}

	reports := make([]types.AnalysisReport, 0, len(opts.DataPaths))

	for _, dataPath := range opts.DataPaths {
		if bar != nil {
			bar.Describe(fmt.Sprintf("Analyzing %s", filepath.Base(dataPath)))
		}

		report, err := r.runFile(ctx, source, writer, dataPath, opts)
		if err != nil {
			return nil, errors.Wrapf(errors.GetCode(err), err, "analysis of %s failed", dataPath)
		}

		reports = append(reports, report)

		if bar != nil {
			bar.Add(1)
		}
	}

	return reports, nil
}

func (r *Runner) runFile(ctx context.Context, source dataset.Source, writer dataset.Writer, dataPath string, opts Options) (types.AnalysisReport, error) {
	runID := uuid.New().String()

	r.log.Info("Starting analysis run",
		zap.String("runId", runID),
		zap.String("dataPath", dataPath),
	)

	if err := source.Initialize(dataPath); err != nil {
		return types.AnalysisReport{}, err
	}

	prices, err := source.Read(ctx, opts.Start, opts.End)
	if err != nil {
		return types.AnalysisReport{}, err
	}

	if prices.Len() == 0 {
		return types.AnalysisReport{}, errors.Newf(errors.ErrCodeEmptySeries, "no rows in %s for the requested range", dataPath)
	}

	r.engine.Compute(prices, r.config.ToIndicatorRequests())
	r.generator.AddAll(prices, signal.AddAllOptions{
		RSIOverbought:   r.config.Signals.RSIOverbought,
		RSIOversold:     r.config.Signals.RSIOversold,
		StochOverbought: r.config.Signals.StochOverbought,
		StochOversold:   r.config.Signals.StochOversold,
		Weights:         r.config.Signals.CombineWeights,
	})

	outputPath := filepath.Join(opts.OutputDir, outputName(dataPath, runID, writer.Extension()))
	if err := writer.Write(ctx, prices, outputPath); err != nil {
		return types.AnalysisReport{}, err
	}

	report := buildReport(runID, dataPath, outputPath, prices)

	if !opts.SkipReport {
		reportPath := strings.TrimSuffix(outputPath, "."+writer.Extension()) + "_report.yaml"
		if err := types.WriteAnalysisReport(reportPath, report); err != nil {
			return types.AnalysisReport{}, errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to write run report", err)
		}
	}

	r.log.Info("Analysis run finished",
		zap.String("runId", runID),
		zap.Int("rows", prices.Len()),
		zap.String("outputPath", outputPath),
	)

	return report, nil
}

// outputName builds "<base>_<short run id>.<ext>" so repeated runs over the
// same file never clobber each other.
func outputName(dataPath, runID, extension string) string {
	base := strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))

	short := runID
	if len(short) > 8 {
		short = short[:8]
	}

	return fmt.Sprintf("%s_%s.%s", base, short, extension)
}

func buildReport(runID, dataPath, outputPath string, enriched *series.Series) types.AnalysisReport {
	report := types.AnalysisReport{
		ID:         runID,
		Timestamp:  time.Now().UTC(),
		DataPath:   dataPath,
		OutputPath: outputPath,
		Rows:       enriched.Len(),
		Start:      enriched.Time(0),
		End:        enriched.Time(enriched.Len() - 1),
	}

	if enriched.HasColumn(types.ColumnClose) {
		closes := enriched.Column(types.ColumnClose).Unwrap()
		report.LastClose = closes[len(closes)-1]
	}

	for _, name := range enriched.Columns() {
		if !strings.HasPrefix(name, types.SignalColumnPrefix) {
			continue
		}

		count := types.SignalCount{Column: name}
		for _, v := range enriched.Column(name).Unwrap() {
			switch {
			case v > 0:
				count.Buys++
			case v < 0:
				count.Sells++
			default:
				count.Neutral++
			}
		}

		report.Signals = append(report.Signals, count)
	}

	if enriched.HasColumn(types.ColumnSignalCombined) {
		values := enriched.Column(types.ColumnSignalCombined).Unwrap()
		report.LastCombinedSignal = types.DirectionFromValue(values[len(values)-1]).String()
	}

	return report
}
