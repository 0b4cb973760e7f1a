package mocks

import (
	"context"
	"sync"

	"github.com/dosewise/dosewise-api/internal/interaction"
)

// MockProvider implements interaction.Provider for testing
type MockProvider struct {
	// GetDrugInteractionsFn allows test cases to mock the drug lookup behavior
	GetDrugInteractionsFn func(ctx context.Context, name string) (*interaction.DrugInteractionData, error)

	// GetHerbInfoFn allows test cases to mock the herb lookup behavior
	GetHerbInfoFn func(ctx context.Context, name string) (*interaction.HerbInteractionData, error)

	// Default response values keyed by lowercase medication name
	DrugData map[string]*interaction.DrugInteractionData
	HerbData map[string]*interaction.HerbInteractionData
	Err      error

	// Call tracking for verification
	Calls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// DrugCount tracks how many times GetDrugInteractions was called
		DrugCount int

		// HerbCount tracks how many times GetHerbInfo was called
		HerbCount int

		// DrugNames contains all names passed to GetDrugInteractions calls
		DrugNames []string

		// HerbNames contains all names passed to GetHerbInfo calls
		HerbNames []string
	}
}

// GetDrugInteractions implements the interaction.Provider interface
func (m *MockProvider) GetDrugInteractions(
	ctx context.Context,
	name string,
) (*interaction.DrugInteractionData, error) {
	m.Calls.mu.Lock()
	m.Calls.DrugCount++
	m.Calls.DrugNames = append(m.Calls.DrugNames, name)
	m.Calls.mu.Unlock()

	if m.GetDrugInteractionsFn != nil {
		return m.GetDrugInteractionsFn(ctx, name)
	}

	if m.Err != nil {
		return nil, m.Err
	}
	if data, ok := m.DrugData[name]; ok {
		return data, nil
	}
	return nil, interaction.ErrNotFound
}

// GetHerbInfo implements the interaction.Provider interface
func (m *MockProvider) GetHerbInfo(
	ctx context.Context,
	name string,
) (*interaction.HerbInteractionData, error) {
	m.Calls.mu.Lock()
	m.Calls.HerbCount++
	m.Calls.HerbNames = append(m.Calls.HerbNames, name)
	m.Calls.mu.Unlock()

	if m.GetHerbInfoFn != nil {
		return m.GetHerbInfoFn(ctx, name)
	}

	if m.Err != nil {
		return nil, m.Err
	}
	if data, ok := m.HerbData[name]; ok {
		return data, nil
	}
	return nil, interaction.ErrNotFound
}

// NewMockProviderWithDrugData creates a MockProvider that serves the given
// drug interaction data and returns interaction.ErrNotFound for everything else
func NewMockProviderWithDrugData(data map[string]*interaction.DrugInteractionData) *MockProvider {
	return &MockProvider{
		DrugData: data,
	}
}

// NewMockProviderWithError creates a MockProvider that fails every lookup
// with the specified error
func NewMockProviderWithError(err error) *MockProvider {
	return &MockProvider{
		Err: err,
	}
}

// DrugCount returns how many drug lookups were made
func (m *MockProvider) DrugCount() int {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return m.Calls.DrugCount
}

// Reset resets the call tracking state
func (m *MockProvider) Reset() {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()

	m.Calls.DrugCount = 0
	m.Calls.HerbCount = 0
	m.Calls.DrugNames = nil
	m.Calls.HerbNames = nil
}
