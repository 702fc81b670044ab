package indicator

import (
	"sync"

	"github.com/meridian-lab/stock-analysis/internal/types"
	"github.com/meridian-lab/stock-analysis/pkg/errors"
)

// Registry manages all available indicators.
type Registry interface {
	Register(indicator Indicator) error
	Get(name types.IndicatorType) (Indicator, error)
	List() []types.IndicatorType
	Remove(name types.IndicatorType) error
}

// RegistryV1 manages all available indicators.
type RegistryV1 struct {
	indicators map[types.IndicatorType]Indicator
	mu         sync.RWMutex
}

// NewRegistry creates a new indicator registry.
func NewRegistry() Registry {
	return &RegistryV1{
		indicators: make(map[types.IndicatorType]Indicator),
		mu:         sync.RWMutex{},
	}
}

// Register adds an indicator to the registry.
func (r *RegistryV1) Register(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := indicator.Name()
	if _, exists := r.indicators[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists,
			"Register: indicator with name %s already registered", name)
	}

	r.indicators[name] = indicator

	return nil
}

// Get retrieves an indicator by name.
func (r *RegistryV1) Get(name types.IndicatorType) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.indicators[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound,
			"Get: indicator with name %s not found", name)
	}

	return indicator, nil
}

// List returns a list of all registered indicator names.
func (r *RegistryV1) List() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, 0, len(r.indicators))
	for name := range r.indicators {
		names = append(names, name)
	}

	return names
}

// Remove removes an indicator from the registry.
func (r *RegistryV1) Remove(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound,
			"Remove: indicator with name %s not found", name)
	}

	delete(r.indicators, name)

	return nil
}
