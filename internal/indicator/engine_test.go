package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/testutil"
	"github.com/meridian-lab/stock-analysis/internal/types"
)

type EngineTestSuite struct {
	baseSuite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) builtinTypes() []types.IndicatorType {
	return []types.IndicatorType{
		types.IndicatorTypeSMA,
		types.IndicatorTypeEMA,
		types.IndicatorTypeRSI,
		types.IndicatorTypeBollingerBands,
		types.IndicatorTypeMACD,
		types.IndicatorTypeStochasticOscillator,
		types.IndicatorTypeWilliamsR,
		types.IndicatorTypeATR,
		types.IndicatorTypeCCI,
	}
}

func (suite *EngineTestSuite) TestNewEngineRegistersBuiltins() {
	engine := NewEngine(nil)
	suite.NotNil(engine)

	registered := engine.Registry().List()
	suite.Len(registered, len(suite.builtinTypes()))
	for _, name := range suite.builtinTypes() {
		suite.Contains(registered, name)
	}
}

func (suite *EngineTestSuite) TestComputeAppliesRequest() {
	engine := NewEngine(nil)
	input := suite.closeSeries(1, 2, 3, 4, 5)

	output := engine.Compute(input, []Params{
		{Type: types.IndicatorTypeSMA, Args: []any{3}},
	})
	suite.Same(input, output)
	suite.Require().True(output.HasColumn("SMA_3"))

	values := output.Column("SMA_3").Unwrap()
	suite.assertValues([]float64{math.NaN(), math.NaN(), 2, 3, 4}, values)
}

func (suite *EngineTestSuite) TestComputeUnknownIndicatorSkipped() {
	engine := NewEngine(nil)
	input := suite.closeSeries(1, 2, 3)
	before := len(input.Columns())

	engine.Compute(input, []Params{{Type: types.IndicatorType("bogus")}})
	suite.Len(input.Columns(), before)
}

func (suite *EngineTestSuite) TestComputeInvalidParamsSkipped() {
	engine := NewEngine(nil)
	input := suite.closeSeries(1, 2, 3)

	engine.Compute(input, []Params{
		{Type: types.IndicatorTypeSMA, Args: []any{"invalid"}},
	})
	suite.False(input.HasColumn("SMA_20"))
}

func (suite *EngineTestSuite) TestComputeKeepsExistingColumn() {
	engine := NewEngine(nil)
	input := suite.closeSeries(1, 2, 3, 4, 5)

	sentinel := []float64{9, 9, 9, 9, 9}
	suite.Require().NoError(input.SetColumn("SMA_3", sentinel))

	engine.Compute(input, []Params{
		{Type: types.IndicatorTypeSMA, Args: []any{3}},
	})

	// An existing column is never recomputed or overwritten.
	suite.Equal(sentinel, input.Column("SMA_3").Unwrap())
}

func (suite *EngineTestSuite) TestComputeDefaultConfigWhenNoArgs() {
	engine := NewEngine(nil)
	input := suite.closeSeries(testutil.Linear(1, 1, 25)...)

	engine.Compute(input, []Params{{Type: types.IndicatorTypeSMA}})
	suite.True(input.HasColumn("SMA_20"))
}

func (suite *EngineTestSuite) TestAddAllProducesAllColumns() {
	generated, err := testutil.NewGenerator(testutil.Config{
		Rows:    60,
		Pattern: testutil.PatternOscillating,
		Seed:    3,
	}).Series()
	suite.Require().NoError(err)

	engine := NewEngine(nil)
	engine.AddAll(generated, AddAllOptions{})

	expected := []string{
		"SMA_20", "SMA_50",
		"EMA_20", "EMA_50",
		types.ColumnRSI,
		types.ColumnBBUpper, types.ColumnBBMiddle, types.ColumnBBLower,
		types.ColumnMACD, types.ColumnMACDSignal, types.ColumnMACDHistogram,
		types.ColumnStochK, types.ColumnStochD,
		types.ColumnWilliamsR,
		types.ColumnATR,
		types.ColumnCCI,
	}
	for _, name := range expected {
		suite.True(generated.HasColumn(name), "missing column %s", name)
	}
	suite.Len(generated.Columns(), len(types.RequiredColumns())+len(expected))
}

func (suite *EngineTestSuite) TestAddAllIdempotent() {
	generated, err := testutil.NewGenerator(testutil.Config{
		Rows:    60,
		Pattern: testutil.PatternIncreasing,
		Seed:    5,
	}).Series()
	suite.Require().NoError(err)

	engine := NewEngine(nil)
	engine.AddAll(generated, AddAllOptions{})

	names := generated.Columns()
	rsi := append([]float64(nil), generated.Column(types.ColumnRSI).Unwrap()...)

	// A second pass sees every column already present and changes nothing.
	engine.AddAll(generated, AddAllOptions{})
	suite.Equal(names, generated.Columns())
	suite.assertValues(rsi, generated.Column(types.ColumnRSI).Unwrap())
}

func (suite *EngineTestSuite) TestAddAllDeterministic() {
	config := testutil.Config{Rows: 40, Pattern: testutil.PatternOscillating, Seed: 9}

	first, err := testutil.NewGenerator(config).Series()
	suite.Require().NoError(err)
	second, err := testutil.NewGenerator(config).Series()
	suite.Require().NoError(err)

	engine := NewEngine(nil)
	engine.AddAll(first, AddAllOptions{})
	engine.AddAll(second, AddAllOptions{})

	suite.Equal(first.Columns(), second.Columns())
	for _, name := range first.Columns() {
		suite.assertValues(first.Column(name).Unwrap(), second.Column(name).Unwrap())
	}
}

func (suite *EngineTestSuite) TestAddAllCustomWindows() {
	generated, err := testutil.NewGenerator(testutil.Config{Rows: 30, Seed: 2}).Series()
	suite.Require().NoError(err)

	engine := NewEngine(nil)
	engine.AddAll(generated, AddAllOptions{
		SMAWindows: []int{5},
		EMAWindows: []int{9},
		RSIWindow:  7,
	})

	suite.True(generated.HasColumn("SMA_5"))
	suite.True(generated.HasColumn("EMA_9"))
	suite.True(generated.HasColumn(types.ColumnRSI))
	suite.False(generated.HasColumn("SMA_20"))
	suite.False(generated.HasColumn("EMA_20"))
}

func (suite *EngineTestSuite) TestAddAllNormalizesTimestamps() {
	zone := time.FixedZone("UTC+5", 5*60*60)
	times := make([]time.Time, 30)
	for i := range times {
		times[i] = time.Date(2024, 1, 1+i, 9, 30, 0, 0, zone)
	}

	closes := testutil.Linear(100, 1, 30)
	input, err := series.FromOHLCV(times, closes, closes, closes, closes, testutil.Constant(1, 30))
	suite.Require().NoError(err)

	engine := NewEngine(nil)
	engine.AddAll(input, AddAllOptions{})

	suite.Equal(time.UTC, input.Time(0).Location())
}

func (suite *EngineTestSuite) TestDefaultAddAllOptions() {
	options := DefaultAddAllOptions()
	suite.Equal([]int{20, 50}, options.SMAWindows)
	suite.Equal([]int{20, 50}, options.EMAWindows)
	suite.Equal(14, options.RSIWindow)
}
