package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/dosewise/dosewise-api/internal/domain"
	"github.com/dosewise/dosewise-api/internal/service/safety"
)

// MockSafetyService implements safety.Service for testing
type MockSafetyService struct {
	// CheckInteractionsFn allows test cases to mock the interaction check behavior
	CheckInteractionsFn func(ctx context.Context, medications []*domain.Medication) ([]domain.InteractionResult, error)

	// AssessSafetyFn allows test cases to mock the assessment behavior
	AssessSafetyFn func(
		ctx context.Context,
		medications []*domain.Medication,
		schedules []*domain.Schedule,
		now time.Time,
	) (*domain.SafetyAssessment, error)

	// EscalateFn allows test cases to mock the escalation behavior
	EscalateFn func(assessment *domain.SafetyAssessment, status domain.EmergencyStatus) (safety.Escalation, error)

	// SaferAlternativesFn allows test cases to mock the alternatives behavior
	SaferAlternativesFn func(
		ctx context.Context,
		candidates []*domain.Medication,
		current []*domain.Medication,
		criteria domain.AlternativeCriteria,
	) ([]safety.Alternative, error)

	// Default response values
	Interactions []domain.InteractionResult
	Assessment   *domain.SafetyAssessment
	Escalation   safety.Escalation
	Alternatives []safety.Alternative
	Err          error

	// Call tracking for verification
	Calls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		CheckCount        int
		AssessCount       int
		EscalateCount     int
		AlternativesCount int
		ClearCacheCount   int
	}
}

var _ safety.Service = (*MockSafetyService)(nil)

// CheckInteractions implements the safety.Service interface
func (m *MockSafetyService) CheckInteractions(
	ctx context.Context,
	medications []*domain.Medication,
) ([]domain.InteractionResult, error) {
	m.Calls.mu.Lock()
	m.Calls.CheckCount++
	m.Calls.mu.Unlock()

	if m.CheckInteractionsFn != nil {
		return m.CheckInteractionsFn(ctx, medications)
	}
	return m.Interactions, m.Err
}

// AssessSafety implements the safety.Service interface
func (m *MockSafetyService) AssessSafety(
	ctx context.Context,
	medications []*domain.Medication,
	schedules []*domain.Schedule,
	now time.Time,
) (*domain.SafetyAssessment, error) {
	m.Calls.mu.Lock()
	m.Calls.AssessCount++
	m.Calls.mu.Unlock()

	if m.AssessSafetyFn != nil {
		return m.AssessSafetyFn(ctx, medications, schedules, now)
	}
	return m.Assessment, m.Err
}

// Escalate implements the safety.Service interface
func (m *MockSafetyService) Escalate(
	assessment *domain.SafetyAssessment,
	status domain.EmergencyStatus,
) (safety.Escalation, error) {
	m.Calls.mu.Lock()
	m.Calls.EscalateCount++
	m.Calls.mu.Unlock()

	if m.EscalateFn != nil {
		return m.EscalateFn(assessment, status)
	}
	return m.Escalation, m.Err
}

// SaferAlternatives implements the safety.Service interface
func (m *MockSafetyService) SaferAlternatives(
	ctx context.Context,
	candidates []*domain.Medication,
	current []*domain.Medication,
	criteria domain.AlternativeCriteria,
) ([]safety.Alternative, error) {
	m.Calls.mu.Lock()
	m.Calls.AlternativesCount++
	m.Calls.mu.Unlock()

	if m.SaferAlternativesFn != nil {
		return m.SaferAlternativesFn(ctx, candidates, current, criteria)
	}
	return m.Alternatives, m.Err
}

// ClearCache implements the safety.Service interface
func (m *MockSafetyService) ClearCache() {
	m.Calls.mu.Lock()
	m.Calls.ClearCacheCount++
	m.Calls.mu.Unlock()
}
