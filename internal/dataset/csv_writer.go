package dataset

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/meridian-lab/stock-analysis/internal/logger"
	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// CSVWriter exports a table as CSV. Undefined cells become empty fields so
// spreadsheet tools read them as blanks instead of "NaN" strings.
type CSVWriter struct {
	precision int32
	logger    *logger.Logger
}

// NewCSVWriter creates a CSV writer rounding every cell to the given number
// of decimal places.
func NewCSVWriter(precision int32, log *logger.Logger) *CSVWriter {
	return &CSVWriter{precision: precision, logger: log}
}

// Extension implements Writer.
func (w *CSVWriter) Extension() string {
	return FormatCSV
}

// Write implements Writer.
func (w *CSVWriter) Write(ctx context.Context, input *series.Series, path string) error {
	w.logger.Debug("Writing CSV export",
		zap.String("path", path),
		zap.Int("rows", input.Len()),
		zap.Int("columns", len(input.Columns())),
	)

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to create output file", err)
	}
	defer file.Close()

	columns := input.Columns()

	values := make([][]float64, len(columns))
	for i, name := range columns {
		values[i] = input.Column(name).Unwrap()
	}

	writer := csv.NewWriter(file)

	header := append([]string{types.ColumnDate}, columns...)
	if err := writer.Write(header); err != nil {
		return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to write CSV header", err)
	}

	times := input.Times()
	record := make([]string, len(header))

	for row := 0; row < input.Len(); row++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		record[0] = times[row].Format(time.RFC3339)
		for i := range columns {
			record[i+1] = w.formatCell(values[i][row])
		}

		if err := writer.Write(record); err != nil {
			return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to write CSV row", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to flush CSV output", err)
	}

	return nil
}

func (w *CSVWriter) formatCell(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	return decimal.NewFromFloat(v).Round(w.precision).String()
}
