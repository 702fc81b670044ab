package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/meridian-lab/stock-analysis/internal/logger"
	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// ParquetWriter exports a table as Parquet by staging it in an in-memory
// DuckDB table and running COPY TO. Undefined cells become NULLs.
type ParquetWriter struct {
	logger *logger.Logger
}

// NewParquetWriter creates a Parquet writer.
func NewParquetWriter(log *logger.Logger) *ParquetWriter {
	return &ParquetWriter{logger: log}
}

// Extension implements Writer.
func (w *ParquetWriter) Extension() string {
	return FormatParquet
}

// Write implements Writer.
func (w *ParquetWriter) Write(ctx context.Context, input *series.Series, path string) error {
	w.logger.Debug("Writing Parquet export",
		zap.String("path", path),
		zap.Int("rows", input.Len()),
		zap.Int("columns", len(input.Columns())),
	)

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	columns := input.Columns()

	if err := w.createTable(ctx, db, columns); err != nil {
		return err
	}

	if err := w.insertRows(ctx, db, input, columns); err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`COPY analysis_data TO '%s' (FORMAT PARQUET)`, path))
	if err != nil {
		return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to export to Parquet", err)
	}

	return nil
}

func (w *ParquetWriter) createTable(ctx context.Context, db *sql.DB, columns []string) error {
	definitions := make([]string, 0, len(columns)+1)
	definitions = append(definitions, fmt.Sprintf(`"%s" TIMESTAMP`, types.ColumnDate))

	for _, name := range columns {
		definitions = append(definitions, fmt.Sprintf(`"%s" DOUBLE`, name))
	}

	query := fmt.Sprintf(`CREATE TABLE analysis_data (%s)`, strings.Join(definitions, ", "))

	if _, err := db.ExecContext(ctx, query); err != nil {
		return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to create staging table", err)
	}

	return nil
}

func (w *ParquetWriter) insertRows(ctx context.Context, db *sql.DB, input *series.Series, columns []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to begin transaction", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)+1), ", ")

	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO analysis_data VALUES (%s)`, placeholders))
	if err != nil {
		tx.Rollback()

		return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to prepare insert statement", err)
	}
	defer stmt.Close()

	values := make([][]float64, len(columns))
	for i, name := range columns {
		values[i] = input.Column(name).Unwrap()
	}

	times := input.Times()
	args := make([]interface{}, len(columns)+1)

	for row := 0; row < input.Len(); row++ {
		select {
		case <-ctx.Done():
			tx.Rollback()

			return ctx.Err()
		default:
		}

		args[0] = times[row]

		for i := range columns {
			v := values[i][row]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				args[i+1] = nil
			} else {
				args[i+1] = v
			}
		}

		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()

			return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to insert row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()

		return errors.Wrap(errors.ErrCodeDatasetWriteFailed, "failed to commit transaction", err)
	}

	return nil
}
