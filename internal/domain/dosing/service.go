// Package dosing implements the schedule safety engine: per-type validation
// rules, the recurrence engine, and the timing conflict detector. All
// functions are synchronous and side-effect-free; they read immutable inputs
// and allocate new outputs, so a single Service is safe for concurrent use.
package dosing

import (
	"errors"
	"time"

	"github.com/dosewise/dosewise-api/internal/domain"
	"github.com/google/uuid"
)

// Common errors.
var (
	ErrNilSchedule = errors.New("schedule cannot be nil")
)

// NextOccurrence is the result of a next-occurrence computation. At is only
// meaningful when Found is true; Exhausted distinguishes a schedule whose end
// date has passed from one with no valid slot in the search horizon.
type NextOccurrence struct {
	At        time.Time `json:"at"`
	Found     bool      `json:"found"`
	Exhausted bool      `json:"exhausted"`
}

// Service defines the schedule safety engine operations.
type Service interface {
	// ValidateSchedule runs every per-type safety rule and returns all
	// violations at once. A nil schedule is the only error condition;
	// rule failures are carried inside the result.
	ValidateSchedule(schedule *domain.Schedule, now time.Time) (*domain.ValidationResult, error)

	// GetNextOccurrence returns the earliest concrete dose time at or after
	// "after" satisfying the schedule's recurrence rule. Found is false when
	// the schedule has ended or has no valid times.
	GetNextOccurrence(schedule *domain.Schedule, after time.Time) (NextOccurrence, error)

	// DetectConflicts compares a candidate schedule against the existing
	// active schedules and reports timing conflicts with suggested
	// alternative times. The names map resolves medication IDs for display.
	DetectConflicts(
		existing []*domain.Schedule,
		names map[uuid.UUID]string,
		candidate *domain.Schedule,
		now time.Time,
	) ([]domain.ScheduleConflict, error)

	// ProjectDoses expands a schedule into concrete UTC dose instants over a
	// look-ahead window of whole days. This is the same normalized projection
	// the conflict detector uses, exposed for timing-interaction checks.
	ProjectDoses(schedule *domain.Schedule, from time.Time, days int) ([]time.Time, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new dosing service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a new dosing service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// ValidateSchedule implements the Service interface.
func (s *defaultService) ValidateSchedule(
	schedule *domain.Schedule,
	now time.Time,
) (*domain.ValidationResult, error) {
	if schedule == nil {
		return nil, ErrNilSchedule
	}
	return validateSchedule(schedule, now, s.params), nil
}

// GetNextOccurrence implements the Service interface.
func (s *defaultService) GetNextOccurrence(
	schedule *domain.Schedule,
	after time.Time,
) (NextOccurrence, error) {
	if schedule == nil {
		return NextOccurrence{}, ErrNilSchedule
	}
	at, found, exhausted := nextOccurrence(schedule, after, s.params)
	return NextOccurrence{At: at, Found: found, Exhausted: exhausted}, nil
}

// DetectConflicts implements the Service interface.
func (s *defaultService) DetectConflicts(
	existing []*domain.Schedule,
	names map[uuid.UUID]string,
	candidate *domain.Schedule,
	now time.Time,
) ([]domain.ScheduleConflict, error) {
	if candidate == nil {
		return nil, ErrNilSchedule
	}
	return detectConflicts(existing, names, candidate, now, s.params), nil
}

// ProjectDoses implements the Service interface.
func (s *defaultService) ProjectDoses(
	schedule *domain.Schedule,
	from time.Time,
	days int,
) ([]time.Time, error) {
	if schedule == nil {
		return nil, ErrNilSchedule
	}
	if days <= 0 {
		days = s.params.ConflictLookaheadDays
	}
	return projectDoses(schedule, from, days), nil
}
