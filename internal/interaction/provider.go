package interaction

import (
	"context"

	"github.com/dosewise/dosewise-api/internal/domain"
)

// InteractionFact is one raw interaction reported by a data source for a
// medication pair. Facts from multiple sources are merged by the safety
// aggregator with worst-case severity tie-breaking.
type InteractionFact struct {
	// WithMedication is the normalized name of the other medication.
	WithMedication string `json:"with_medication"`

	Severity    domain.Severity `json:"severity"`
	Description string          `json:"description"`
	Source      string          `json:"source,omitempty"`

	// Contraindicated marks pairs that must never be combined. A
	// contraindication always triggers immediate-attention handling
	// regardless of numeric severity.
	Contraindicated bool `json:"contraindicated"`

	// MinimumGapHours is the required spacing between doses of the pair,
	// zero when the source does not specify one.
	MinimumGapHours float64 `json:"minimum_gap_hours"`

	Recommendations []string `json:"recommendations,omitempty"`

	// EmergencyInstructions are surfaced only when the merged result
	// requires immediate attention.
	EmergencyInstructions string `json:"emergency_instructions,omitempty"`
}

// DrugInteractionData is everything a source knows about one drug.
type DrugInteractionData struct {
	Name         string            `json:"name"`
	Interactions []InteractionFact `json:"interactions"`
}

// HerbInteractionData is everything a source knows about one herbal
// supplement, including the drugs it interferes with.
type HerbInteractionData struct {
	Name         string            `json:"name"`
	Interactions []InteractionFact `json:"interactions"`
}

// Provider defines the interface for looking up raw interaction facts.
//
// Implementations must honor context cancellation and return the sentinel
// errors from errors.go on failure so the aggregator can distinguish
// transient lookup failures (retried, then degraded to unknown severity)
// from a medication simply being absent from the dataset.
type Provider interface {
	// GetDrugInteractions returns interaction data for a drug by normalized
	// name, or ErrNotFound when the dataset has no entry for it.
	GetDrugInteractions(ctx context.Context, name string) (*DrugInteractionData, error)

	// GetHerbInfo returns interaction data for an herbal supplement by
	// normalized name, or ErrNotFound when the dataset has no entry for it.
	GetHerbInfo(ctx context.Context, name string) (*HerbInteractionData, error)
}
