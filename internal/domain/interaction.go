package domain

import "time"

// Severity classifies how dangerous an interaction is. SeverityUnknown is
// assigned when the data provider could not be reached: missing data must not
// imply safety, so unknown still carries weight in the safety score.
type Severity string

// Interaction severities, ordered low to severe.
const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeveritySevere   Severity = "severe"
	SeverityUnknown  Severity = "unknown"
)

// Rank returns the ordering position of a severity for worst-case
// tie-breaking. Higher rank means more dangerous. Unknown ranks between
// moderate and high so absent data is treated cautiously but never outranks a
// confirmed high-severity finding.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityModerate:
		return 2
	case SeverityUnknown:
		return 3
	case SeverityHigh:
		return 4
	case SeveritySevere:
		return 5
	default:
		return 0
	}
}

// WorseThan reports whether s is strictly more dangerous than other.
func (s Severity) WorseThan(other Severity) bool {
	return s.Rank() > other.Rank()
}

// InteractionType identifies the kind of interaction finding.
type InteractionType string

// Interaction finding kinds.
const (
	InteractionTypeDrugDrug         InteractionType = "drug_drug"
	InteractionTypeHerbDrug         InteractionType = "herb_drug"
	InteractionTypeTiming           InteractionType = "timing"
	InteractionTypeContraindication InteractionType = "contraindication"
)

// InteractionWarning is a single advisory attached to an interaction finding.
type InteractionWarning struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Source   string   `json:"source,omitempty"`
}

// InteractionResult is the merged finding for one medication pair. When
// multiple sources disagree the highest severity wins and recommendation
// lists are unioned; severities are never averaged since averaging could mask
// a severe interaction.
type InteractionResult struct {
	Severity                   Severity             `json:"severity"`
	Type                       InteractionType      `json:"type"`
	Description                string               `json:"description"`
	Medications                []string             `json:"medications"`
	Warnings                   []InteractionWarning `json:"warnings"`
	Recommendations            []string             `json:"recommendations"`
	EmergencyInstructions      string               `json:"emergency_instructions,omitempty"`
	RequiresImmediateAttention bool                 `json:"requires_immediate_attention"`
}

// ScheduledDose names a medication together with one concrete dosing instant.
type ScheduledDose struct {
	Name          string    `json:"name"`
	ScheduledTime time.Time `json:"scheduled_time"`
}

// TimingInteraction reports two doses scheduled closer together than the
// minimum gap the interaction data requires for that pair.
type TimingInteraction struct {
	Medication1     ScheduledDose `json:"medication1"`
	Medication2     ScheduledDose `json:"medication2"`
	MinimumGapHours float64       `json:"minimum_gap_hours"`
	ActualGapHours  float64       `json:"actual_gap_hours"`
	Recommendation  string        `json:"recommendation"`
}

// SafetyAssessment is the aggregate risk picture for a set of medications.
// Score is in [0,1] and monotonically decreasing in the severity and count of
// interactions; 1.0 means no known risk.
type SafetyAssessment struct {
	Score              float64             `json:"score"`
	SeverityScores     []float64           `json:"severity_scores"`
	TimingScore        float64             `json:"timing_score"`
	Interactions       []InteractionResult `json:"interactions"`
	TimingInteractions []TimingInteraction `json:"timing_interactions"`
	Recommendations    []string            `json:"recommendations"`
	Timestamp          time.Time           `json:"timestamp"`
}
