package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewSchedule(t *testing.T) {
	t.Parallel() // Enable parallel execution
	medicationID := uuid.New()
	userID := uuid.New()
	start := time.Now().UTC().AddDate(0, 0, 1)

	schedule, err := NewSchedule(medicationID, userID, ScheduleTypeFixedTime, start, 500, "mg")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if schedule.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if schedule.MedicationID != medicationID {
		t.Errorf("Expected medication ID %s, got %s", medicationID, schedule.MedicationID)
	}

	if schedule.Frequency != FrequencyDaily {
		t.Errorf("Expected default frequency %s, got %s", FrequencyDaily, schedule.Frequency)
	}

	if !schedule.Active {
		t.Error("Expected new schedule to be active")
	}

	// Test invalid medication ID
	_, err = NewSchedule(uuid.Nil, userID, ScheduleTypeFixedTime, start, 500, "mg")
	if err != ErrScheduleMedicationIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrScheduleMedicationIDEmpty, err)
	}

	// Test invalid user ID
	_, err = NewSchedule(medicationID, uuid.Nil, ScheduleTypeFixedTime, start, 500, "mg")
	if err != ErrScheduleUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrScheduleUserIDEmpty, err)
	}

	// Test invalid type
	_, err = NewSchedule(medicationID, userID, ScheduleType("HOURLY"), start, 500, "mg")
	if err != ErrScheduleTypeInvalid {
		t.Errorf("Expected error %v, got %v", ErrScheduleTypeInvalid, err)
	}

	// Test invalid dosage
	_, err = NewSchedule(medicationID, userID, ScheduleTypeFixedTime, start, 0, "mg")
	if err != ErrScheduleDosageInvalid {
		t.Errorf("Expected error %v, got %v", ErrScheduleDosageInvalid, err)
	}
}

func TestScheduleTypeValid(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := []ScheduleType{
		ScheduleTypeFixedTime,
		ScheduleTypeInterval,
		ScheduleTypePRN,
		ScheduleTypeComplex,
		ScheduleTypeCyclic,
		ScheduleTypeTapered,
		ScheduleTypeMealBased,
		ScheduleTypeSlidingScale,
	}
	for _, st := range valid {
		if !st.Valid() {
			t.Errorf("Expected %s to be valid", st)
		}
	}

	if ScheduleType("WEEKLY").Valid() {
		t.Error("Expected unknown type to be invalid")
	}
	if ScheduleType("").Valid() {
		t.Error("Expected empty type to be invalid")
	}
}

func TestEffectiveFrequency(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		schedule Schedule
		expected Frequency
	}{
		{
			name:     "Explicit frequency wins",
			schedule: Schedule{Frequency: FrequencyMonthly, DaysOfWeek: []int{1}},
			expected: FrequencyMonthly,
		},
		{
			name:     "Days of week implies weekly",
			schedule: Schedule{DaysOfWeek: []int{1, 3, 5}},
			expected: FrequencyWeekly,
		},
		{
			name:     "Days of month implies monthly",
			schedule: Schedule{DaysOfMonth: []int{1, 15}},
			expected: FrequencyMonthly,
		},
		{
			name:     "Default is daily",
			schedule: Schedule{},
			expected: FrequencyDaily,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.schedule.EffectiveFrequency(); got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestScheduleHasEnded(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Now().UTC()

	open := Schedule{}
	if open.HasEnded(now) {
		t.Error("Expected open-ended schedule to never end")
	}

	past := now.AddDate(0, 0, -1)
	ended := Schedule{EndDate: &past}
	if !ended.HasEnded(now) {
		t.Error("Expected schedule with past end date to be ended")
	}

	future := now.AddDate(0, 0, 1)
	active := Schedule{EndDate: &future}
	if active.HasEnded(now) {
		t.Error("Expected schedule with future end date to not be ended")
	}
}

func TestScheduleRetire(t *testing.T) {
	t.Parallel() // Enable parallel execution
	schedule := Schedule{Active: true, UpdatedAt: time.Now().UTC().Add(-time.Hour)}
	before := schedule.UpdatedAt

	schedule.Retire()

	if schedule.Active {
		t.Error("Expected retired schedule to be inactive")
	}
	if !schedule.UpdatedAt.After(before) {
		t.Error("Expected UpdatedAt to advance on retire")
	}
}
