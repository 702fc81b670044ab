// Package dataset loads price tables from disk and exports enriched tables.
// DuckDB does the heavy lifting for both CSV and Parquet files.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/meridian-lab/stock-analysis/internal/logger"
	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// Source reads price tables into a series.
type Source interface {
	// Initialize points the source at a data file. It may be called again
	// to switch files.
	Initialize(path string) error
	// Count returns the number of rows inside the optional time range.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Read loads the rows inside the optional time range, ordered by time.
	Read(ctx context.Context, start optional.Option[time.Time], end optional.Option[time.Time]) (*series.Series, error)
	// Close releases the underlying database.
	Close() error
}

type DuckDBSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBSource creates an in-memory DuckDB instance for reading price
// files. Initialize() must be called before reading.
func NewDuckDBSource(log *logger.Logger) (Source, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatasetUnavailable, "failed to open DuckDB connection", err)
	}

	_, err = db.Exec(`
		SET memory_limit='4GB';
		SET threads=4;
	`)
	if err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeDatasetUnavailable, "failed to set DuckDB optimizations", err)
	}

	return &DuckDBSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements Source. The file format is picked by extension.
func (d *DuckDBSource) Initialize(path string) error {
	d.logger.Debug("Initializing dataset view", zap.String("path", path))

	// First drop the view if it exists
	_, err := d.db.Exec(`DROP VIEW IF EXISTS price_data;`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	var reader string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		reader = fmt.Sprintf("read_csv_auto('%s', header=true)", path)
	case ".parquet":
		reader = fmt.Sprintf("read_parquet('%s')", path)
	default:
		return errors.Newf(errors.ErrCodeDatasetParseFailed, "unsupported dataset format %q, want .csv or .parquet", filepath.Ext(path))
	}

	// Squirrel doesn't support CREATE VIEW, so this stays raw SQL.
	query := fmt.Sprintf(`CREATE VIEW price_data AS SELECT * FROM %s;`, reader)

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDatasetParseFailed, "failed to create dataset view", err)
	}

	return nil
}

// Count implements Source.
func (d *DuckDBSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query := "SELECT COUNT(*) FROM price_data"

	var conditions []string

	var params []interface{}

	if start.IsSome() {
		conditions = append(conditions, fmt.Sprintf("Date >= $%d", len(params)+1))
		params = append(params, start.Unwrap())
	}

	if end.IsSome() {
		conditions = append(conditions, fmt.Sprintf("Date <= $%d", len(params)+1))
		params = append(params, end.Unwrap())
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int

	err := d.db.QueryRow(query, params...).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count dataset rows", err)
	}

	return count, nil
}

// Read implements Source.
func (d *DuckDBSource) Read(ctx context.Context, start optional.Option[time.Time], end optional.Option[time.Time]) (*series.Series, error) {
	d.logger.Debug("Reading dataset",
		zap.Bool("hasStart", start.IsSome()),
		zap.Bool("hasEnd", end.IsSome()),
	)

	builder := d.sq.
		Select(
			"CAST(Date AS TIMESTAMP) AS Date",
			"CAST(Open AS DOUBLE) AS Open",
			"CAST(High AS DOUBLE) AS High",
			"CAST(Low AS DOUBLE) AS Low",
			"CAST(Close AS DOUBLE) AS Close",
			"CAST(Volume AS DOUBLE) AS Volume",
		).
		From("price_data").
		OrderBy("Date ASC")

	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"Date": start.Unwrap()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"Date": end.Unwrap()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build dataset query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query dataset", err)
	}
	defer rows.Close()

	var times []time.Time

	var opens, highs, lows, closes, volumes []float64

	for rows.Next() {
		var (
			timestamp                      time.Time
			open, high, low, close, volume float64
		)

		if err := rows.Scan(&timestamp, &open, &high, &low, &close, &volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan dataset row", err)
		}

		times = append(times, timestamp)
		opens = append(opens, open)
		highs = append(highs, high)
		lows = append(lows, low)
		closes = append(closes, close)
		volumes = append(volumes, volume)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating dataset rows", err)
	}

	result, err := series.FromOHLCV(times, opens, highs, lows, closes, volumes)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatasetParseFailed, "dataset rows do not form a valid series", err)
	}

	return result, nil
}

// Close implements Source.
func (d *DuckDBSource) Close() error {
	if d.db == nil {
		return nil
	}

	err := d.db.Close()
	d.db = nil

	return err
}
