package dataset

import (
	"context"

	"github.com/meridian-lab/stock-analysis/internal/logger"
	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// Export formats understood by NewWriter.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Writer exports an enriched table to a destination file.
type Writer interface {
	// Write persists the whole table to path.
	Write(ctx context.Context, input *series.Series, path string) error
	// Extension returns the file extension for this format, without the dot.
	Extension() string
}

// NewWriter returns the writer for the given export format.
func NewWriter(format string, precision int32, log *logger.Logger) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(precision, log), nil
	case FormatParquet:
		return NewParquetWriter(log), nil
	default:
		return nil, errors.Newf(errors.ErrCodeDatasetWriteFailed, "unsupported export format %q, want csv or parquet", format)
	}
}
