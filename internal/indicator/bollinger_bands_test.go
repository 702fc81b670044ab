package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/meridian-lab/stock-analysis/internal/testutil"
	"github.com/meridian-lab/stock-analysis/internal/types"
)

type BollingerBandsTestSuite struct {
	baseSuite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestNewBollingerBands() {
	bb := NewBollingerBands()
	suite.NotNil(bb)

	// Cast to *BollingerBands to check default values
	bbImpl := bb.(*BollingerBands)
	suite.Equal(20, bbImpl.window)
	suite.Equal(2.0, bbImpl.numStdDev)
	suite.Equal(types.ColumnClose, bbImpl.column)
}

func (suite *BollingerBandsTestSuite) TestName() {
	suite.Equal(types.IndicatorTypeBollingerBands, NewBollingerBands().Name())
}

func (suite *BollingerBandsTestSuite) TestConfigValid() {
	bb := NewBollingerBands()
	bbImpl := bb.(*BollingerBands)

	err := bb.Config(10, 1.5)
	suite.NoError(err)
	suite.Equal(10, bbImpl.window)
	suite.Equal(1.5, bbImpl.numStdDev)
}

func (suite *BollingerBandsTestSuite) TestConfigWithColumn() {
	bb := NewBollingerBands()
	bbImpl := bb.(*BollingerBands)

	err := bb.Config(10, 1.5, types.ColumnOpen)
	suite.NoError(err)
	suite.Equal(types.ColumnOpen, bbImpl.column)
}

func (suite *BollingerBandsTestSuite) TestConfigZeroStdDev() {
	// Zero multiplier collapses the bands onto the middle, which is allowed.
	err := NewBollingerBands().Config(10, 0.0)
	suite.NoError(err)
}

func (suite *BollingerBandsTestSuite) TestConfigTooFewParams() {
	err := NewBollingerBands().Config(10)
	suite.Error(err)
	suite.Contains(err.Error(), "Config expects 2 or 3 parameters")
}

func (suite *BollingerBandsTestSuite) TestConfigInvalidWindowType() {
	err := NewBollingerBands().Config("invalid", 2.0)
	suite.Error(err)
	suite.Contains(err.Error(), "invalid type for window")
}

func (suite *BollingerBandsTestSuite) TestConfigInvalidWindowValue() {
	err := NewBollingerBands().Config(0, 2.0)
	suite.Error(err)
	suite.Contains(err.Error(), "window must be a positive integer")
}

func (suite *BollingerBandsTestSuite) TestConfigInvalidStdDevType() {
	err := NewBollingerBands().Config(10, 2)
	suite.Error(err)
	suite.Contains(err.Error(), "invalid type for numStdDev")
}

func (suite *BollingerBandsTestSuite) TestConfigNegativeStdDev() {
	err := NewBollingerBands().Config(10, -1.0)
	suite.Error(err)
	suite.Contains(err.Error(), "numStdDev must be non-negative")
}

func (suite *BollingerBandsTestSuite) TestColumns() {
	expected := []string{types.ColumnBBUpper, types.ColumnBBMiddle, types.ColumnBBLower}
	suite.Equal(expected, NewBollingerBands().Columns())
}

func (suite *BollingerBandsTestSuite) TestCompute() {
	bb := NewBollingerBands()
	suite.Require().NoError(bb.Config(3, 1.0))

	input := suite.closeSeries(2, 4, 6, 8)
	result := bb.Compute(input, suite.testContext())
	suite.Require().True(result.IsSome())

	columns := result.Unwrap()
	// Sample std of [2,4,6] and [4,6,8] is 2.
	suite.assertValues([]float64{math.NaN(), math.NaN(), 4, 6}, suite.columnValues(columns, types.ColumnBBMiddle))
	suite.assertValues([]float64{math.NaN(), math.NaN(), 6, 8}, suite.columnValues(columns, types.ColumnBBUpper))
	suite.assertValues([]float64{math.NaN(), math.NaN(), 2, 4}, suite.columnValues(columns, types.ColumnBBLower))
}

func (suite *BollingerBandsTestSuite) TestComputeBandOrdering() {
	generated, err := testutil.NewGenerator(testutil.Config{
		Rows:    50,
		Pattern: testutil.PatternOscillating,
		Seed:    11,
	}).Series()
	suite.Require().NoError(err)

	bb := NewBollingerBands()
	suite.Require().NoError(bb.Config(20, 2.0))

	result := bb.Compute(generated, suite.testContext())
	suite.Require().True(result.IsSome())

	columns := result.Unwrap()
	upper := suite.columnValues(columns, types.ColumnBBUpper)
	middle := suite.columnValues(columns, types.ColumnBBMiddle)
	lower := suite.columnValues(columns, types.ColumnBBLower)

	for i := range middle {
		if math.IsNaN(middle[i]) {
			continue
		}
		suite.GreaterOrEqual(upper[i], middle[i], "row %d", i)
		suite.GreaterOrEqual(middle[i], lower[i], "row %d", i)
	}
}

func (suite *BollingerBandsTestSuite) TestComputeConstantSeriesCollapses() {
	bb := NewBollingerBands()
	suite.Require().NoError(bb.Config(20, 2.0))

	input := suite.closeSeries(testutil.Constant(100, 50)...)
	result := bb.Compute(input, suite.testContext())
	suite.Require().True(result.IsSome())

	columns := result.Unwrap()
	upper := suite.columnValues(columns, types.ColumnBBUpper)
	lower := suite.columnValues(columns, types.ColumnBBLower)

	for i := 19; i < len(upper); i++ {
		suite.InDelta(100, upper[i], 1e-9, "row %d", i)
		suite.InDelta(100, lower[i], 1e-9, "row %d", i)
	}
}

func (suite *BollingerBandsTestSuite) TestComputeMissingColumn() {
	bb := NewBollingerBands()
	suite.Require().NoError(bb.Config(3, 2.0, "Adjusted"))

	input := suite.closeSeries(1, 2, 3)
	result := bb.Compute(input, suite.testContext())
	suite.True(result.IsNone())
}
