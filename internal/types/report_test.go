package types

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ReportTestSuite struct {
	suite.Suite
	tempDir string
}

func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportTestSuite))
}

func (suite *ReportTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "report_test")
	suite.NoError(err)
	suite.tempDir = tempDir
}

func (suite *ReportTestSuite) TearDownTest() {
	os.RemoveAll(suite.tempDir)
}

func (suite *ReportTestSuite) TestWriteAnalysisReport() {
	report := AnalysisReport{
		ID:                 "run-1",
		Timestamp:          time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		DataPath:           "data/AAPL.csv",
		OutputPath:         "results/AAPL_enriched.csv",
		Rows:               250,
		Start:              time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		End:                time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		LastClose:          181.42,
		LastCombinedSignal: DirectionBuy.String(),
		Signals: []SignalCount{
			{Column: ColumnSignalRSI, Buys: 4, Sells: 3, Neutral: 243},
			{Column: ColumnSignalCombined, Buys: 2, Sells: 1, Neutral: 247},
		},
	}

	filePath := filepath.Join(suite.tempDir, "report.yaml")
	err := WriteAnalysisReport(filePath, report)
	suite.NoError(err)

	// Verify file was created
	_, err = os.Stat(filePath)
	suite.NoError(err)

	// Read and verify contents
	data, err := os.ReadFile(filePath)
	suite.NoError(err)

	var readReport AnalysisReport
	err = yaml.Unmarshal(data, &readReport)
	suite.NoError(err)

	suite.Equal("run-1", readReport.ID)
	suite.Equal("data/AAPL.csv", readReport.DataPath)
	suite.Equal(250, readReport.Rows)
	suite.Equal(181.42, readReport.LastClose)
	suite.Equal("buy", readReport.LastCombinedSignal)
	suite.Len(readReport.Signals, 2)
	suite.Equal(ColumnSignalRSI, readReport.Signals[0].Column)
	suite.Equal(4, readReport.Signals[0].Buys)
}

func (suite *ReportTestSuite) TestWriteAnalysisReportInvalidPath() {
	err := WriteAnalysisReport(filepath.Join(suite.tempDir, "missing", "report.yaml"), AnalysisReport{})
	suite.Error(err)
}

func (suite *ReportTestSuite) TestDirectionValues() {
	suite.Equal(1.0, DirectionBuy.Float())
	suite.Equal(-1.0, DirectionSell.Float())
	suite.Equal(0.0, DirectionNone.Float())

	suite.Equal("buy", DirectionBuy.String())
	suite.Equal("sell", DirectionSell.String())
	suite.Equal("none", DirectionNone.String())
}

func (suite *ReportTestSuite) TestDirectionFromValue() {
	suite.Equal(DirectionBuy, DirectionFromValue(1))
	suite.Equal(DirectionBuy, DirectionFromValue(0.4))
	suite.Equal(DirectionSell, DirectionFromValue(-1))
	suite.Equal(DirectionNone, DirectionFromValue(0))
	suite.Equal(DirectionNone, DirectionFromValue(math.NaN()))
}

func (suite *ReportTestSuite) TestColumnNames() {
	suite.Equal("SMA_20", SMAColumn(20))
	suite.Equal("EMA_50", EMAColumn(50))
	suite.Equal([]string{"Open", "High", "Low", "Close", "Volume"}, RequiredColumns())
}
