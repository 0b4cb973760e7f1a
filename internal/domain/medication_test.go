package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewMedication(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()

	medication, err := NewMedication(userID, "  Warfarin ", false)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if medication.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if medication.Name != "Warfarin" {
		t.Errorf("Expected trimmed name %q, got %q", "Warfarin", medication.Name)
	}

	if !medication.Active {
		t.Error("Expected new medication to be active")
	}

	// Test invalid userID
	_, err = NewMedication(uuid.Nil, "Warfarin", false)
	if err != ErrMedicationUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrMedicationUserIDEmpty, err)
	}

	// Test empty name
	_, err = NewMedication(userID, "   ", false)
	if err != ErrMedicationNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrMedicationNameEmpty, err)
	}
}

func TestMedicationNormalizedName(t *testing.T) {
	t.Parallel() // Enable parallel execution

	m := Medication{Name: "  St. John's Wort  "}
	if got := m.NormalizedName(); got != "st. john's wort" {
		t.Errorf("Expected normalized name %q, got %q", "st. john's wort", got)
	}

	a := Medication{Name: "Warfarin"}
	b := Medication{Name: "warfarin "}
	if a.NormalizedName() != b.NormalizedName() {
		t.Error("Expected case and whitespace variants to normalize identically")
	}
}
