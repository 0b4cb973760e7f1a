// Package safety implements the interaction aggregator and safety escalation:
// it fans lookups out to an external interaction-data provider, merges the
// raw facts into unified results with worst-case severity tie-breaking,
// computes the aggregate safety score, and maps score plus missed-dose
// history to an escalation level.
package safety

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dosewise/dosewise-api/internal/domain"
)

// Common error types for the safety service.
var (
	// ErrNoMedications indicates an interaction check was requested for an
	// empty or single-element medication list.
	ErrNoMedications = errors.New("at least two medications are required for an interaction check")

	// ErrNilMedication indicates a nil medication in the input list.
	ErrNilMedication = errors.New("medication cannot be nil")

	// ErrNilAssessment indicates escalation was requested without an assessment.
	ErrNilAssessment = errors.New("safety assessment cannot be nil")
)

// EscalationLevel is the discrete risk tier driving notification and
// emergency-contact behavior.
type EscalationLevel string

// Escalation tiers, ordered from least to most severe.
const (
	EscalationOptimal   EscalationLevel = "OPTIMAL"
	EscalationSafe      EscalationLevel = "SAFE"
	EscalationCaution   EscalationLevel = "CAUTION"
	EscalationUnsafe    EscalationLevel = "UNSAFE"
	EscalationEmergency EscalationLevel = "EMERGENCY"
)

// Escalation is the combined risk classification for a user's medication set.
type Escalation struct {
	Level                  EscalationLevel `json:"level"`
	RequiredActions        []string        `json:"required_actions"`
	NotifyEmergencyContact bool            `json:"notify_emergency_contact"`
}

// Alternative is a candidate substitute medication with its safety score
// against the user's current medication set.
type Alternative struct {
	Medication *domain.Medication `json:"medication"`
	Score      float64            `json:"score"`
}

// Service provides interaction aggregation and safety scoring.
type Service interface {
	// CheckInteractions queries the interaction-data provider for every
	// unordered medication pair and merges the results. Provider failures
	// degrade the affected pair to unknown severity rather than failing the
	// whole check: a failed safety lookup must never silently pass.
	CheckInteractions(ctx context.Context, medications []*domain.Medication) ([]domain.InteractionResult, error)

	// AssessSafety combines interaction results and timing checks over the
	// given schedules into an aggregate SafetyAssessment. The worst pair
	// dominates the score; it is never a sum, so many low-severity hits
	// cannot outweigh one severe interaction.
	AssessSafety(
		ctx context.Context,
		medications []*domain.Medication,
		schedules []*domain.Schedule,
		now time.Time,
	) (*domain.SafetyAssessment, error)

	// Escalate maps an assessment plus missed-dose history to an escalation
	// level. The two risk signals are orthogonal and combined by taking the
	// more severe classification.
	Escalate(assessment *domain.SafetyAssessment, status domain.EmergencyStatus) (Escalation, error)

	// SaferAlternatives scores each candidate against the user's current
	// medications and returns those clearing the criteria, highest score
	// first, ties broken by name.
	SaferAlternatives(
		ctx context.Context,
		candidates []*domain.Medication,
		current []*domain.Medication,
		criteria domain.AlternativeCriteria,
	) ([]Alternative, error)

	// ClearCache drops all cached interaction results. Exposed for tests and
	// for forcing a data refresh.
	ClearCache()
}

// ServiceError wraps errors from the safety service with operation context so
// consumers can differentiate failures with errors.As instead of string
// matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "check_interactions").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewCheckInteractionsError returns a new ServiceError for the check_interactions operation.
func NewCheckInteractionsError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "check_interactions", Message: message, Err: err}
}

// NewAssessSafetyError returns a new ServiceError for the assess_safety operation.
func NewAssessSafetyError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "assess_safety", Message: message, Err: err}
}
