package domain

import (
	"testing"
	"time"
)

func TestTimeOfDayValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name      string
		tod       TimeOfDay
		wantValid bool
		wantCode  string
	}{
		{
			name:      "Valid morning time",
			tod:       TimeOfDay{Hour: 8, Minute: 30},
			wantValid: true,
		},
		{
			name:      "Valid midnight zero value",
			tod:       TimeOfDay{},
			wantValid: true,
		},
		{
			name:      "Valid with timezone",
			tod:       TimeOfDay{Hour: 22, Minute: 0, Timezone: "America/New_York"},
			wantValid: true,
		},
		{
			name:      "Hour too large",
			tod:       TimeOfDay{Hour: 24, Minute: 0},
			wantValid: false,
			wantCode:  CodeInvalidTime,
		},
		{
			name:      "Negative hour",
			tod:       TimeOfDay{Hour: -1, Minute: 0},
			wantValid: false,
			wantCode:  CodeInvalidTime,
		},
		{
			name:      "Minute too large",
			tod:       TimeOfDay{Hour: 10, Minute: 60},
			wantValid: false,
			wantCode:  CodeInvalidTime,
		},
		{
			name:      "Unknown timezone",
			tod:       TimeOfDay{Hour: 10, Minute: 0, Timezone: "Mars/Olympus"},
			wantValid: false,
			wantCode:  CodeInvalidTime,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.tod.Validate()
			if result.IsValid != tc.wantValid {
				t.Errorf("Expected IsValid=%v, got %v (errors: %v)", tc.wantValid, result.IsValid, result.Errors)
			}
			if !tc.wantValid {
				if len(result.Errors) == 0 {
					t.Fatal("Expected at least one validation error")
				}
				if result.Errors[0].Code != tc.wantCode {
					t.Errorf("Expected code %s, got %s", tc.wantCode, result.Errors[0].Code)
				}
			}
		})
	}
}

func TestTimeOfDayOn(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("Failed to load timezone: %v", err)
	}

	// 22:00 in New York during EST is 03:00 UTC the next day.
	tod := TimeOfDay{Hour: 22, Minute: 0}
	got := tod.On(2026, time.January, 15, ny)

	want := time.Date(2026, time.January, 16, 3, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got.Location() != time.UTC {
		t.Errorf("Expected UTC result, got location %v", got.Location())
	}
}

func TestNormalizeToUTCIsDeterministic(t *testing.T) {
	t.Parallel() // Enable parallel execution

	date := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)
	tod := TimeOfDay{Hour: 9, Minute: 15}

	first, err := NormalizeToUTC(tod, date, "Europe/Berlin")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := NormalizeToUTC(tod, date, "Europe/Berlin")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("Expected identical results, got %v and %v", first, second)
	}

	// Berlin is UTC+2 in June, so 09:15 local is 07:15 UTC.
	want := time.Date(2026, time.June, 10, 7, 15, 0, 0, time.UTC)
	if !first.Equal(want) {
		t.Errorf("Expected %v, got %v", want, first)
	}

	_, err = NormalizeToUTC(tod, date, "Not/AZone")
	if err == nil {
		t.Error("Expected error for unknown timezone, got nil")
	}
}

func TestValidateDateRange(t *testing.T) {
	t.Parallel() // Enable parallel execution

	now := time.Date(2026, time.March, 1, 15, 0, 0, 0, time.UTC)

	endAt := func(d time.Time) *time.Time { return &d }

	testCases := []struct {
		name      string
		start     time.Time
		end       *time.Time
		wantValid bool
	}{
		{
			name:      "Open-ended future start",
			start:     now.AddDate(0, 0, 1),
			end:       nil,
			wantValid: true,
		},
		{
			name:      "Start earlier today is accepted",
			start:     time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC),
			end:       nil,
			wantValid: true,
		},
		{
			name:      "Start in the past",
			start:     now.AddDate(0, 0, -1),
			end:       nil,
			wantValid: false,
		},
		{
			name:      "End before start",
			start:     now.AddDate(0, 0, 5),
			end:       endAt(now.AddDate(0, 0, 2)),
			wantValid: false,
		},
		{
			name:      "Duration at the two year limit",
			start:     now,
			end:       endAt(now.Add(MaxScheduleDuration)),
			wantValid: true,
		},
		{
			name:      "Duration beyond the two year limit",
			start:     now,
			end:       endAt(now.Add(MaxScheduleDuration + time.Hour)),
			wantValid: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := ValidateDateRange(tc.start, tc.end, now, 0)
			if result.IsValid != tc.wantValid {
				t.Errorf("Expected IsValid=%v, got %v (errors: %v)", tc.wantValid, result.IsValid, result.Errors)
			}
			for _, e := range result.Errors {
				if e.Code != CodeInvalidDateRange {
					t.Errorf("Expected code %s, got %s", CodeInvalidDateRange, e.Code)
				}
			}
		})
	}
}
