package indicator

import (
	"testing"

	optional "github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/meridian-lab/stock-analysis/internal/series"
	"github.com/meridian-lab/stock-analysis/internal/types"
)

// mockIndicator is a simple mock indicator for testing the registry
type mockIndicator struct {
	name types.IndicatorType
}

func newMockIndicator(name types.IndicatorType) *mockIndicator {
	return &mockIndicator{name: name}
}

func (m *mockIndicator) Name() types.IndicatorType {
	return m.name
}

func (m *mockIndicator) Config(params ...any) error {
	return nil
}

func (m *mockIndicator) Columns() []string {
	return []string{string(m.name)}
}

func (m *mockIndicator) Compute(input *series.Series, ctx Context) optional.Option[[]Column] {
	return optional.None[[]Column]()
}

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestNewRegistry() {
	registry := NewRegistry()
	suite.NotNil(registry)
}

func (suite *RegistryTestSuite) TestRegister() {
	registry := NewRegistry()

	indicator := newMockIndicator(types.IndicatorTypeRSI)
	err := registry.Register(indicator)
	suite.NoError(err)

	// Verify the indicator is registered
	retrieved, err := registry.Get(types.IndicatorTypeRSI)
	suite.NoError(err)
	suite.Equal(indicator, retrieved)
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	registry := NewRegistry()

	indicator1 := newMockIndicator(types.IndicatorTypeRSI)
	indicator2 := newMockIndicator(types.IndicatorTypeRSI)

	err := registry.Register(indicator1)
	suite.NoError(err)

	// Trying to register another indicator with the same name should fail
	err = registry.Register(indicator2)
	suite.Error(err)
	suite.Contains(err.Error(), "already registered")
}

func (suite *RegistryTestSuite) TestGetNotFound() {
	registry := NewRegistry()

	_, err := registry.Get(types.IndicatorTypeRSI)
	suite.Error(err)
	suite.Contains(err.Error(), "not found")
}

func (suite *RegistryTestSuite) TestList() {
	registry := NewRegistry()

	// Empty registry should return empty list
	suite.Empty(registry.List())

	// Register some indicators
	registry.Register(newMockIndicator(types.IndicatorTypeRSI))
	registry.Register(newMockIndicator(types.IndicatorTypeMACD))
	registry.Register(newMockIndicator(types.IndicatorTypeEMA))

	// Should now have 3 indicators
	names := registry.List()
	suite.Len(names, 3)
	suite.Contains(names, types.IndicatorTypeRSI)
	suite.Contains(names, types.IndicatorTypeMACD)
	suite.Contains(names, types.IndicatorTypeEMA)
}

func (suite *RegistryTestSuite) TestRemove() {
	registry := NewRegistry()

	// Register an indicator
	indicator := newMockIndicator(types.IndicatorTypeRSI)
	err := registry.Register(indicator)
	suite.NoError(err)

	// Remove it
	err = registry.Remove(types.IndicatorTypeRSI)
	suite.NoError(err)

	// Should no longer be found
	_, err = registry.Get(types.IndicatorTypeRSI)
	suite.Error(err)
}

func (suite *RegistryTestSuite) TestRemoveNotFound() {
	registry := NewRegistry()

	// Trying to remove a non-existent indicator should fail
	err := registry.Remove(types.IndicatorTypeRSI)
	suite.Error(err)
	suite.Contains(err.Error(), "not found")
}

func (suite *RegistryTestSuite) TestConcurrentAccess() {
	registry := NewRegistry()

	// Test concurrent registration
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(idx int) {
			indicatorType := types.IndicatorType(string(rune('A' + idx)))
			registry.Register(newMockIndicator(indicatorType))
			done <- true
		}(i)
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}

	// Should have 10 indicators
	suite.Len(registry.List(), 10)
}
