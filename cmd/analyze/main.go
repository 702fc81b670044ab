package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/moznion/go-optional"
	"github.com/urfave/cli/v3"

	"github.com/meridian-lab/stock-analysis/internal/analysis"
	"github.com/meridian-lab/stock-analysis/internal/config"
	"github.com/meridian-lab/stock-analysis/internal/logger"
	"github.com/meridian-lab/stock-analysis/internal/version"
)

// runAction loads the configuration, expands the data glob and executes the
// analysis pipeline over every matching file.
func runAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	dataGlob := cmd.String("data")
	outputDir := cmd.String("output")
	quiet := cmd.Bool("quiet")

	var (
		cfg *config.AnalysisConfig
		err error
	)

	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.DefaultConfig()
	}

	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	files, err := filepath.Glob(dataGlob)
	if err != nil {
		return fmt.Errorf("invalid data glob: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no data files match %q", dataGlob)
	}

	sort.Strings(files)

	appLogger := logger.NewDiscardLogger()
	if !quiet {
		appLogger, err = logger.NewLogger()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
	}
	defer appLogger.Sync()

	opts := analysis.Options{
		DataPaths:    files,
		OutputDir:    outputDir,
		ShowProgress: !quiet,
		SkipReport:   cmd.Bool("no-report"),
	}

	if start := cmd.Timestamp("start"); !start.IsZero() {
		opts.Start = optional.Some(start)
	}

	if end := cmd.Timestamp("end"); !end.IsZero() {
		opts.End = optional.Some(end)
	}

	runner := analysis.NewRunner(cfg, appLogger)

	reports, err := runner.Run(ctx, opts)
	if err != nil {
		return err
	}

	for _, report := range reports {
		fmt.Printf("%s: %d rows, last close %.2f, combined signal %s -> %s\n",
			filepath.Base(report.DataPath), report.Rows, report.LastClose,
			report.LastCombinedSignal, report.OutputPath)
	}

	return nil
}

// schemaAction prints the JSON schema for the analysis configuration file.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	schemaJSON, err := (&config.AnalysisConfig{}).GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schemaJSON)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "analyze",
		Usage:   "Compute technical indicators and trading signals over price files",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Analyze price files and export enriched tables",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the analysis config YAML. Defaults apply when omitted.",
					},
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Glob of input price files (CSV or Parquet)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory for enriched tables and run reports",
						Value:   "results",
					},
					&cli.TimestampFlag{
						Name:    "start",
						Aliases: []string{"s"},
						Usage:   "Only analyze rows at or after this date (`YYYY-MM-DD`)",
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
					},
					&cli.TimestampFlag{
						Name:    "end",
						Aliases: []string{"e"},
						Usage:   "Only analyze rows at or before this date (`YYYY-MM-DD`)",
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Suppress logs and the progress bar",
					},
					&cli.BoolFlag{
						Name:  "no-report",
						Usage: "Skip the per-file YAML run report",
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema for the analysis config file",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
