// Package testutil builds deterministic OHLCV fixtures for tests.
package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/meridian-lab/stock-analysis/internal/series"
)

// Pattern defines the shape of a generated price path.
type Pattern string

const (
	// PatternIncreasing trends upward with mild noise
	PatternIncreasing Pattern = "increasing"
	// PatternDecreasing trends downward with mild noise
	PatternDecreasing Pattern = "decreasing"
	// PatternConstant holds the initial price on every row
	PatternConstant Pattern = "constant"
	// PatternOscillating swings around the initial price
	PatternOscillating Pattern = "oscillating"
)

const (
	// minimumPrice is the floor that keeps generated prices positive
	minimumPrice = 0.01
	// baseVolume is the base for generated volume data
	baseVolume = 1000000.0
)

// Config holds the generation parameters. Zero values fall back to defaults.
type Config struct {
	// Rows is the number of rows to generate
	Rows int
	// Pattern is the price path shape
	Pattern Pattern
	// InitialPrice is the starting price
	InitialPrice float64
	// TrendStrength is the per-row drift fraction for trending patterns
	TrendStrength float64
	// Volatility is the noise amplitude as a fraction of price
	Volatility float64
	// StartTime is the first timestamp
	StartTime time.Time
	// Interval is the spacing between rows
	Interval time.Duration
	// Seed feeds the random source so runs are reproducible
	Seed int64
}

// Generator produces deterministic OHLCV series for tests.
type Generator struct {
	config Config
	rng    *rand.Rand
}

// NewGenerator creates a generator, filling config defaults.
func NewGenerator(config Config) *Generator {
	if config.Pattern == "" {
		config.Pattern = PatternIncreasing
	}
	if config.InitialPrice <= 0 {
		config.InitialPrice = 100.0
	}
	if config.TrendStrength <= 0 {
		config.TrendStrength = 0.01
	}
	if config.Volatility <= 0 {
		config.Volatility = 0.02
	}
	if config.StartTime.IsZero() {
		config.StartTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if config.Interval <= 0 {
		config.Interval = 24 * time.Hour
	}
	if config.Seed == 0 {
		config.Seed = 42
	}

	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Series generates the configured number of OHLCV rows.
func (g *Generator) Series() (*series.Series, error) {
	n := g.config.Rows
	if n <= 0 {
		return nil, fmt.Errorf("rows must be positive, got %d", n)
	}

	times := make([]time.Time, n)
	opens := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)

	currentPrice := g.config.InitialPrice
	currentTime := g.config.StartTime

	for i := 0; i < n; i++ {
		newPrice := g.nextPrice(i, currentPrice)
		if newPrice < minimumPrice {
			newPrice = minimumPrice
		}

		times[i] = currentTime
		opens[i] = currentPrice
		closes[i] = newPrice

		if g.config.Pattern == PatternConstant {
			highs[i] = newPrice
			lows[i] = newPrice
			volumes[i] = baseVolume
		} else {
			span := math.Max(opens[i], closes[i]) * g.config.Volatility * 0.5
			highs[i] = math.Max(opens[i], closes[i]) + g.rng.Float64()*span
			lows[i] = math.Min(opens[i], closes[i]) - g.rng.Float64()*span
			if lows[i] < minimumPrice {
				lows[i] = minimumPrice
			}
			volumes[i] = baseVolume * (0.5 + g.rng.Float64())
		}

		currentPrice = newPrice
		currentTime = currentTime.Add(g.config.Interval)
	}

	return series.FromOHLCV(times, opens, highs, lows, closes, volumes)
}

func (g *Generator) nextPrice(row int, currentPrice float64) float64 {
	switch g.config.Pattern {
	case PatternDecreasing:
		noise := g.config.Volatility * (g.rng.Float64() - 0.7)
		return currentPrice * (1 - g.config.TrendStrength + noise)
	case PatternConstant:
		return g.config.InitialPrice
	case PatternOscillating:
		target := g.config.InitialPrice * (1 + 0.05*math.Sin(float64(row+1)/3.0))
		noise := 1 + g.config.Volatility*0.1*(g.rng.Float64()-0.5)

		return target * noise
	default:
		noise := g.config.Volatility * (g.rng.Float64() - 0.3)
		return currentPrice * (1 + g.config.TrendStrength + noise)
	}
}

// Times returns n daily timestamps starting 2024-01-01 UTC.
func Times(n int) []time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, n)
	for i := range times {
		times[i] = base.Add(time.Duration(i) * 24 * time.Hour)
	}

	return times
}

// Linear returns n values starting at start and stepping by step.
func Linear(start, step float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*step
	}

	return values
}

// Constant returns n copies of value.
func Constant(value float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = value
	}

	return values
}

// FromCloses builds a series whose Open, High and Low all equal Close, with a
// flat volume column. Useful for exercising close-driven indicators exactly.
func FromCloses(closes []float64) (*series.Series, error) {
	columns := make([][]float64, 4)
	for i := range columns {
		columns[i] = append([]float64(nil), closes...)
	}

	return series.FromOHLCV(
		Times(len(closes)),
		columns[0],
		columns[1],
		columns[2],
		columns[3],
		Constant(baseVolume, len(closes)),
	)
}
