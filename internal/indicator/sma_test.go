package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/meridian-lab/stock-analysis/internal/types"
)

type SMATestSuite struct {
	baseSuite
}

func TestSMASuite(t *testing.T) {
	suite.Run(t, new(SMATestSuite))
}

func (suite *SMATestSuite) TestNewSMA() {
	sma := NewSMA()
	suite.NotNil(sma)

	// Cast to *SMA to check default values
	smaImpl := sma.(*SMA)
	suite.Equal(20, smaImpl.window)
	suite.Equal(types.ColumnClose, smaImpl.column)
}

func (suite *SMATestSuite) TestName() {
	suite.Equal(types.IndicatorTypeSMA, NewSMA().Name())
}

func (suite *SMATestSuite) TestConfigWindowOnly() {
	sma := NewSMA()
	smaImpl := sma.(*SMA)

	err := sma.Config(5)
	suite.NoError(err)
	suite.Equal(5, smaImpl.window)
	// Column should remain default
	suite.Equal(types.ColumnClose, smaImpl.column)
}

func (suite *SMATestSuite) TestConfigWithColumn() {
	sma := NewSMA()
	smaImpl := sma.(*SMA)

	err := sma.Config(5, types.ColumnOpen)
	suite.NoError(err)
	suite.Equal(5, smaImpl.window)
	suite.Equal(types.ColumnOpen, smaImpl.column)
}

func (suite *SMATestSuite) TestConfigNoParams() {
	err := NewSMA().Config()
	suite.Error(err)
	suite.Contains(err.Error(), "Config expects 1 or 2 parameters")
}

func (suite *SMATestSuite) TestConfigInvalidWindowType() {
	err := NewSMA().Config("invalid")
	suite.Error(err)
	suite.Contains(err.Error(), "invalid type for window")
}

func (suite *SMATestSuite) TestConfigInvalidWindowValue() {
	err := NewSMA().Config(0)
	suite.Error(err)
	suite.Contains(err.Error(), "window must be a positive integer")

	err = NewSMA().Config(-5)
	suite.Error(err)
}

func (suite *SMATestSuite) TestConfigInvalidColumnType() {
	err := NewSMA().Config(5, 10)
	suite.Error(err)
	suite.Contains(err.Error(), "invalid type for column")
}

func (suite *SMATestSuite) TestConfigEmptyColumn() {
	err := NewSMA().Config(5, "")
	suite.Error(err)
	suite.Contains(err.Error(), "column must not be empty")
}

func (suite *SMATestSuite) TestColumns() {
	sma := NewSMA()
	suite.Equal([]string{"SMA_20"}, sma.Columns())

	suite.NoError(sma.Config(5))
	suite.Equal([]string{"SMA_5"}, sma.Columns())
}

func (suite *SMATestSuite) TestCompute() {
	sma := NewSMA()
	suite.Require().NoError(sma.Config(3))

	input := suite.closeSeries(1, 2, 3, 4, 5)
	result := sma.Compute(input, suite.testContext())
	suite.Require().True(result.IsSome())

	values := suite.columnValues(result.Unwrap(), "SMA_3")
	suite.assertValues([]float64{math.NaN(), math.NaN(), 2, 3, 4}, values)
}

func (suite *SMATestSuite) TestComputeWindowOneMatchesSource() {
	sma := NewSMA()
	suite.Require().NoError(sma.Config(1))

	closes := []float64{3, 1, 4, 1, 5}
	input := suite.closeSeries(closes...)
	result := sma.Compute(input, suite.testContext())
	suite.Require().True(result.IsSome())

	suite.assertValues(closes, suite.columnValues(result.Unwrap(), "SMA_1"))
}

func (suite *SMATestSuite) TestComputeAlternateColumn() {
	sma := NewSMA()
	suite.Require().NoError(sma.Config(2, types.ColumnVolume))

	input := suite.closeSeries(1, 2, 3)
	result := sma.Compute(input, suite.testContext())
	suite.Require().True(result.IsSome())

	// Fixture volume is flat, so the mean is the volume itself past warm-up.
	values := suite.columnValues(result.Unwrap(), "SMA_2")
	suite.assertValues([]float64{math.NaN(), 1000000, 1000000}, values)
}

func (suite *SMATestSuite) TestComputeMissingColumn() {
	sma := NewSMA()
	suite.Require().NoError(sma.Config(3, "Adjusted"))

	input := suite.closeSeries(1, 2, 3, 4, 5)
	result := sma.Compute(input, suite.testContext())
	suite.True(result.IsNone())
}
