package mocks

import (
	"sync"
	"time"

	"github.com/dosewise/dosewise-api/internal/domain"
	"github.com/dosewise/dosewise-api/internal/domain/dosing"
	"github.com/google/uuid"
)

// MockDosingService implements dosing.Service for testing
type MockDosingService struct {
	// ValidateScheduleFn allows test cases to mock the validation behavior
	ValidateScheduleFn func(schedule *domain.Schedule, now time.Time) (*domain.ValidationResult, error)

	// GetNextOccurrenceFn allows test cases to mock the recurrence behavior
	GetNextOccurrenceFn func(schedule *domain.Schedule, after time.Time) (dosing.NextOccurrence, error)

	// DetectConflictsFn allows test cases to mock the conflict detection behavior
	DetectConflictsFn func(
		existing []*domain.Schedule,
		names map[uuid.UUID]string,
		candidate *domain.Schedule,
		now time.Time,
	) ([]domain.ScheduleConflict, error)

	// ProjectDosesFn allows test cases to mock the dose projection behavior
	ProjectDosesFn func(schedule *domain.Schedule, from time.Time, days int) ([]time.Time, error)

	// Default response values
	Result     *domain.ValidationResult
	Next       dosing.NextOccurrence
	Conflicts  []domain.ScheduleConflict
	Doses      []time.Time
	Err        error

	// Call tracking for verification
	Calls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		ValidateCount  int
		NextCount      int
		ConflictsCount int
		ProjectCount   int
	}
}

var _ dosing.Service = (*MockDosingService)(nil)

// ValidateSchedule implements the dosing.Service interface
func (m *MockDosingService) ValidateSchedule(
	schedule *domain.Schedule,
	now time.Time,
) (*domain.ValidationResult, error) {
	m.Calls.mu.Lock()
	m.Calls.ValidateCount++
	m.Calls.mu.Unlock()

	if m.ValidateScheduleFn != nil {
		return m.ValidateScheduleFn(schedule, now)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return domain.NewValidationResult(), nil
}

// GetNextOccurrence implements the dosing.Service interface
func (m *MockDosingService) GetNextOccurrence(
	schedule *domain.Schedule,
	after time.Time,
) (dosing.NextOccurrence, error) {
	m.Calls.mu.Lock()
	m.Calls.NextCount++
	m.Calls.mu.Unlock()

	if m.GetNextOccurrenceFn != nil {
		return m.GetNextOccurrenceFn(schedule, after)
	}
	return m.Next, m.Err
}

// DetectConflicts implements the dosing.Service interface
func (m *MockDosingService) DetectConflicts(
	existing []*domain.Schedule,
	names map[uuid.UUID]string,
	candidate *domain.Schedule,
	now time.Time,
) ([]domain.ScheduleConflict, error) {
	m.Calls.mu.Lock()
	m.Calls.ConflictsCount++
	m.Calls.mu.Unlock()

	if m.DetectConflictsFn != nil {
		return m.DetectConflictsFn(existing, names, candidate, now)
	}
	return m.Conflicts, m.Err
}

// ProjectDoses implements the dosing.Service interface
func (m *MockDosingService) ProjectDoses(
	schedule *domain.Schedule,
	from time.Time,
	days int,
) ([]time.Time, error) {
	m.Calls.mu.Lock()
	m.Calls.ProjectCount++
	m.Calls.mu.Unlock()

	if m.ProjectDosesFn != nil {
		return m.ProjectDosesFn(schedule, from, days)
	}
	return m.Doses, m.Err
}
