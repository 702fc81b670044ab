// Package series provides the ordered OHLCV table the indicator engine and
// signal generator operate on: a shared time index plus named float64 columns
// of equal length, with trailing-window primitives over plain slices.
package series

import (
	"time"

	optional "github.com/moznion/go-optional"

	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// Series is a time-indexed table. Derived columns are appended to the same
// instance and always stay aligned to the index.
type Series struct {
	times   []time.Time
	columns map[string][]float64
	order   []string
}

// New creates an empty series over the given time index. Timestamps must be
// unique and strictly increasing.
func New(times []time.Time) (*Series, error) {
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, errors.Newf(errors.ErrCodeTimestampOrder,
				"timestamps must be strictly increasing: row %d (%s) does not follow row %d (%s)",
				i, times[i], i-1, times[i-1])
		}
	}

	return &Series{
		times:   append([]time.Time(nil), times...),
		columns: make(map[string][]float64),
	}, nil
}

// FromOHLCV creates a series carrying the five required price columns.
func FromOHLCV(times []time.Time, opens, highs, lows, closes, volumes []float64) (*Series, error) {
	s, err := New(times)
	if err != nil {
		return nil, err
	}

	inputs := []struct {
		name   string
		values []float64
	}{
		{types.ColumnOpen, opens},
		{types.ColumnHigh, highs},
		{types.ColumnLow, lows},
		{types.ColumnClose, closes},
		{types.ColumnVolume, volumes},
	}
	for _, input := range inputs {
		if err := s.SetColumn(input.name, input.values); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Len returns the number of rows.
func (s *Series) Len() int {
	return len(s.times)
}

// Times returns the shared time index. Callers must treat it as read-only.
func (s *Series) Times() []time.Time {
	return s.times
}

// Time returns the timestamp at row i.
func (s *Series) Time(i int) time.Time {
	return s.times[i]
}

// Normalize converts every timestamp to UTC so window computations never
// compare timestamps across zones.
func (s *Series) Normalize() {
	for i := range s.times {
		s.times[i] = s.times[i].UTC()
	}
}

// HasColumn reports whether a column exists.
func (s *Series) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// HasColumns reports whether every named column exists.
func (s *Series) HasColumns(names ...string) bool {
	for _, name := range names {
		if !s.HasColumn(name) {
			return false
		}
	}

	return true
}

// Column returns the values of a named column, or None when the column is
// absent. The returned slice is the stored column; callers must treat it as
// read-only.
func (s *Series) Column(name string) optional.Option[[]float64] {
	values, ok := s.columns[name]
	if !ok {
		return optional.None[[]float64]()
	}

	return optional.Some(values)
}

// SetColumn attaches values under name, replacing an existing column of the
// same name. The length must match the series length.
func (s *Series) SetColumn(name string, values []float64) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidParameter, "column name must not be empty")
	}
	if len(values) != len(s.times) {
		return errors.Newf(errors.ErrCodeColumnLengthMismatch,
			"column %s has %d values, series has %d rows", name, len(values), len(s.times))
	}

	if !s.HasColumn(name) {
		s.order = append(s.order, name)
	}
	s.columns[name] = values

	return nil
}

// Columns returns the column names in insertion order.
func (s *Series) Columns() []string {
	return append([]string(nil), s.order...)
}

// Clone returns a deep copy sharing no state with the receiver.
func (s *Series) Clone() *Series {
	clone := &Series{
		times:   append([]time.Time(nil), s.times...),
		columns: make(map[string][]float64, len(s.columns)),
		order:   append([]string(nil), s.order...),
	}
	for name, values := range s.columns {
		clone.columns[name] = append([]float64(nil), values...)
	}

	return clone
}
