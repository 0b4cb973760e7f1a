package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Medication-specific validation errors.
var (
	// ErrMedicationIDEmpty is returned when a medication ID is empty or nil.
	ErrMedicationIDEmpty = errors.New("medication ID cannot be empty")

	// ErrMedicationUserIDEmpty is returned when a medication's user ID is empty or nil.
	ErrMedicationUserIDEmpty = errors.New("medication user ID cannot be empty")

	// ErrMedicationNameEmpty is returned when a medication's name is empty.
	ErrMedicationNameEmpty = errors.New("medication name cannot be empty")
)

// Medication is a drug or herbal supplement tracked for a user. The engine
// only reads medications; storage belongs to the caller.
type Medication struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Strength string    `json:"strength,omitempty"`
	Unit     string    `json:"unit,omitempty"`

	// Herbal distinguishes supplements so the aggregator can run herb-drug
	// lookups against the herb dataset instead of the drug-drug one.
	Herbal bool `json:"herbal"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMedication creates a medication with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewMedication(userID uuid.UUID, name string, herbal bool) (*Medication, error) {
	medication := &Medication{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Herbal:    herbal,
		Active:    true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := medication.Validate(); err != nil {
		return nil, err
	}

	return medication, nil
}

// Validate checks if the Medication has valid data.
func (m *Medication) Validate() error {
	if m.ID == uuid.Nil {
		return ErrMedicationIDEmpty
	}
	if m.UserID == uuid.Nil {
		return ErrMedicationUserIDEmpty
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrMedicationNameEmpty
	}
	return nil
}

// NormalizedName returns the lowercase trimmed name used for interaction
// lookups and cache keys, so "Warfarin" and "warfarin " hit the same entry.
func (m *Medication) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(m.Name))
}
