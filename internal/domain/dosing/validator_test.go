package dosing

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dosewise/dosewise-api/internal/domain"
)

var testNow = time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

// baseSchedule returns a structurally valid schedule starting tomorrow that
// individual cases mutate.
func baseSchedule(scheduleType domain.ScheduleType) *domain.Schedule {
	return &domain.Schedule{
		ID:           uuid.New(),
		MedicationID: uuid.New(),
		UserID:       uuid.New(),
		Type:         scheduleType,
		StartDate:    testNow.AddDate(0, 0, 1),
		Dosage:       500,
		Unit:         "mg",
		Active:       true,
	}
}

// hasCode reports whether any collected error carries the given code.
func hasCode(result *domain.ValidationResult, code string) bool {
	for _, e := range result.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestValidateFixedTimeSchedule(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name      string
		times     []domain.TimeOfDay
		wantValid bool
		wantCode  string
	}{
		{
			name:      "Morning and evening doses",
			times:     []domain.TimeOfDay{{Hour: 8}, {Hour: 20}},
			wantValid: true,
		},
		{
			name:      "No dosing times",
			times:     nil,
			wantValid: false,
			wantCode:  domain.CodeInvalidTime,
		},
		{
			name:      "Duplicate dosing time",
			times:     []domain.TimeOfDay{{Hour: 8}, {Hour: 8}},
			wantValid: false,
			wantCode:  domain.CodeDuplicateTime,
		},
		{
			name:      "Doses ten minutes apart",
			times:     []domain.TimeOfDay{{Hour: 8, Minute: 0}, {Hour: 8, Minute: 10}},
			wantValid: false,
			wantCode:  domain.CodeUnsafeInterval,
		},
		{
			name:      "Doses too close across midnight",
			times:     []domain.TimeOfDay{{Hour: 0, Minute: 5}, {Hour: 23, Minute: 55}},
			wantValid: false,
			wantCode:  domain.CodeUnsafeInterval,
		},
		{
			name:      "Unsorted input is handled",
			times:     []domain.TimeOfDay{{Hour: 20}, {Hour: 8}, {Hour: 14}},
			wantValid: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := baseSchedule(domain.ScheduleTypeFixedTime)
			s.Times = tc.times

			result := validateSchedule(s, testNow, params)

			if result.IsValid != tc.wantValid {
				t.Errorf("Expected IsValid=%v, got %v (errors: %v)", tc.wantValid, result.IsValid, result.Errors)
			}
			if tc.wantCode != "" && !hasCode(result, tc.wantCode) {
				t.Errorf("Expected code %s in %v", tc.wantCode, result.Errors)
			}
		})
	}
}

func TestValidateIntervalSchedule(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name      string
		hours     int
		wantValid bool
		wantCode  string
	}{
		{
			name:      "Every six hours",
			hours:     6,
			wantValid: true,
		},
		{
			name:      "Every four hours is the floor",
			hours:     4,
			wantValid: true,
		},
		{
			name:      "Missing interval",
			hours:     0,
			wantValid: false,
			wantCode:  domain.CodeInvalidTime,
		},
		{
			name:      "Below the four hour minimum",
			hours:     3,
			wantValid: false,
			wantCode:  domain.CodeUnsafeInterval,
		},
		{
			name:      "Does not divide the day evenly",
			hours:     5,
			wantValid: false,
			wantCode:  domain.CodeInvalidTime,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := baseSchedule(domain.ScheduleTypeInterval)
			s.IntervalHours = tc.hours

			result := validateSchedule(s, testNow, params)

			if result.IsValid != tc.wantValid {
				t.Errorf("Expected IsValid=%v, got %v (errors: %v)", tc.wantValid, result.IsValid, result.Errors)
			}
			if tc.wantCode != "" && !hasCode(result, tc.wantCode) {
				t.Errorf("Expected code %s in %v", tc.wantCode, result.Errors)
			}
		})
	}
}

func TestValidatePRNSchedule(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name        string
		maxDaily    int
		minBetween  float64
		wantValid   bool
		wantCode    string
		wantWarning bool
	}{
		{
			name:       "Up to four doses six hours apart",
			maxDaily:   4,
			minBetween: 6,
			wantValid:  true,
		},
		{
			name:       "Missing daily maximum",
			maxDaily:   0,
			minBetween: 6,
			wantValid:  false,
			wantCode:   domain.CodeInvalidTime,
		},
		{
			name:       "Missing minimum gap",
			maxDaily:   4,
			minBetween: 0,
			wantValid:  false,
			wantCode:   domain.CodeInvalidTime,
		},
		{
			name:       "Gap below the safe minimum",
			maxDaily:   4,
			minBetween: 2,
			wantValid:  false,
			wantCode:   domain.CodeUnsafeInterval,
		},
		{
			name:       "Daily maximum above the ceiling",
			maxDaily:   10,
			minBetween: 4,
			wantValid:  false,
			wantCode:   domain.CodeExceedDailyLimit,
		},
		{
			name:        "Unreachable daily maximum warns",
			maxDaily:    7,
			minBetween:  4,
			wantValid:   true,
			wantWarning: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := baseSchedule(domain.ScheduleTypePRN)
			s.MaxDailyDoses = tc.maxDaily
			s.MinHoursBetween = tc.minBetween

			result := validateSchedule(s, testNow, params)

			if result.IsValid != tc.wantValid {
				t.Errorf("Expected IsValid=%v, got %v (errors: %v)", tc.wantValid, result.IsValid, result.Errors)
			}
			if tc.wantCode != "" && !hasCode(result, tc.wantCode) {
				t.Errorf("Expected code %s in %v", tc.wantCode, result.Errors)
			}
			if tc.wantWarning && len(result.Warnings) == 0 {
				t.Error("Expected a warning about the unreachable daily maximum")
			}
		})
	}
}

func TestValidateTaperedSchedule(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name      string
		startDose float64
		endDose   float64
		taperDays int
		wantValid bool
	}{
		{
			name:      "Ten to two over eight days",
			startDose: 10,
			endDose:   2,
			taperDays: 8,
			wantValid: true,
		},
		{
			name:      "Step below one unit per day",
			startDose: 10,
			endDose:   2,
			taperDays: 16,
			wantValid: false,
		},
		{
			name:      "Dose does not decrease",
			startDose: 5,
			endDose:   5,
			taperDays: 5,
			wantValid: false,
		},
		{
			name:      "Missing taper duration",
			startDose: 10,
			endDose:   2,
			taperDays: 0,
			wantValid: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := baseSchedule(domain.ScheduleTypeTapered)
			s.StartDose = tc.startDose
			s.EndDose = tc.endDose
			s.TaperDays = tc.taperDays

			result := validateSchedule(s, testNow, params)

			if result.IsValid != tc.wantValid {
				t.Errorf("Expected IsValid=%v, got %v (errors: %v)", tc.wantValid, result.IsValid, result.Errors)
			}
		})
	}
}

func TestValidateCyclicSchedule(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	s := baseSchedule(domain.ScheduleTypeCyclic)
	s.DaysOn = 21
	s.DaysOff = 7
	s.Times = []domain.TimeOfDay{{Hour: 9}}

	result := validateSchedule(s, testNow, params)
	if !result.IsValid {
		t.Errorf("Expected valid cyclic schedule, got errors: %v", result.Errors)
	}

	s.DaysOff = 0
	result = validateSchedule(s, testNow, params)
	if result.IsValid {
		t.Error("Expected cyclic schedule without off days to be invalid")
	}
}

func TestValidateDayLists(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	s := baseSchedule(domain.ScheduleTypeFixedTime)
	s.Times = []domain.TimeOfDay{{Hour: 9}}
	s.DaysOfWeek = []int{1, 7, 1}

	result := validateSchedule(s, testNow, params)
	if result.IsValid {
		t.Error("Expected out-of-range and duplicate weekdays to be invalid")
	}
	if len(result.Errors) != 2 {
		t.Errorf("Expected 2 errors (range, duplicate), got %d: %v", len(result.Errors), result.Errors)
	}

	s = baseSchedule(domain.ScheduleTypeFixedTime)
	s.Times = []domain.TimeOfDay{{Hour: 9}}
	s.DaysOfMonth = []int{0, 32}

	result = validateSchedule(s, testNow, params)
	if result.IsValid {
		t.Error("Expected out-of-range month days to be invalid")
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	// Past start date, bad time of day, duplicate times: all three must be
	// reported in one pass.
	s := baseSchedule(domain.ScheduleTypeFixedTime)
	s.StartDate = testNow.AddDate(0, 0, -5)
	s.Times = []domain.TimeOfDay{{Hour: 25}, {Hour: 8}, {Hour: 8}}

	result := validateSchedule(s, testNow, params)

	if result.IsValid {
		t.Error("Expected invalid result")
	}
	if !hasCode(result, domain.CodeInvalidDateRange) {
		t.Error("Expected INVALID_DATE_RANGE to be collected")
	}
	if !hasCode(result, domain.CodeInvalidTime) {
		t.Error("Expected INVALID_TIME to be collected")
	}
	if !hasCode(result, domain.CodeDuplicateTime) {
		t.Error("Expected DUPLICATE_TIME to be collected")
	}
}

func TestServiceValidateScheduleNil(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()

	_, err := service.ValidateSchedule(nil, testNow)
	if err != ErrNilSchedule {
		t.Errorf("Expected error %v, got %v", ErrNilSchedule, err)
	}
}
