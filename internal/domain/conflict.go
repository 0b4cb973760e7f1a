package domain

import "time"

// ConflictType identifies why two schedules collide.
type ConflictType string

// Conflict kinds.
const (
	ConflictTypeTiming      ConflictType = "timing"
	ConflictTypeInteraction ConflictType = "interaction"
)

// ConflictSeverity grades a schedule conflict for display purposes. Distinct
// from interaction Severity, which grades pharmacological risk.
type ConflictSeverity string

// Conflict severities.
const (
	ConflictSeverityLow    ConflictSeverity = "low"
	ConflictSeverityMedium ConflictSeverity = "medium"
	ConflictSeverityHigh   ConflictSeverity = "high"
)

// ScheduleConflict records one unsafe overlap between two schedules.
// Immutable once produced; one conflict per detected pair and time.
// SuggestedTime is the nearest slot at or after the conflicting one that
// clears the minimum gap against every other schedule, so taking the
// suggestion cannot introduce a new conflict.
type ScheduleConflict struct {
	Medication1    string           `json:"medication1"`
	Medication2    string           `json:"medication2"`
	Time           time.Time        `json:"time"`
	ConflictType   ConflictType     `json:"conflict_type"`
	Severity       ConflictSeverity `json:"severity"`
	Recommendation string           `json:"recommendation"`
	SuggestedTime  *time.Time       `json:"suggested_time,omitempty"`
}

// EmergencyStatus carries the caller-supplied adherence signal that feeds
// escalation independently of the interaction score.
type EmergencyStatus struct {
	MissedDoses     int        `json:"missed_doses"`
	LastTakenAt     *time.Time `json:"last_taken_at,omitempty"`
	CriticalityHint string     `json:"criticality_hint,omitempty"`
}

// AlternativeCriteria filters candidate medications when searching for safer
// substitutes.
type AlternativeCriteria struct {
	MinSafetyScore float64  `json:"min_safety_score"`
	AvoidWith      []string `json:"avoid_with,omitempty"`
}
