package domain

import (
	"errors"
	"fmt"
	"time"
)

// Time/date-range validation errors.
var (
	// ErrInvalidTimeOfDay is returned when an hour or minute is out of range
	// or a timezone does not resolve to a known IANA zone.
	ErrInvalidTimeOfDay = errors.New("invalid time of day")

	// ErrInvalidDateRange is returned when a schedule's date range is
	// inverted, starts in the past, or exceeds the maximum allowed duration.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// MaxScheduleDuration bounds how far into the future a recurring schedule may
// extend. Guards against unbounded recurrence.
const MaxScheduleDuration = 2 * 365 * 24 * time.Hour

// TimeOfDay is a wall-clock time with an optional IANA timezone. The zero
// value is midnight with no timezone, which is valid.
type TimeOfDay struct {
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Timezone string `json:"timezone,omitempty"`
}

// Validate checks that hour and minute are in range and that the timezone, if
// present, resolves against the system timezone database.
func (t TimeOfDay) Validate() *ValidationResult {
	result := NewValidationResult()

	if t.Hour < 0 || t.Hour > 23 {
		result.AddError(CodeInvalidTime, "hour",
			fmt.Sprintf("hour must be between 0 and 23, got %d", t.Hour))
	}
	if t.Minute < 0 || t.Minute > 59 {
		result.AddError(CodeInvalidTime, "minute",
			fmt.Sprintf("minute must be between 0 and 59, got %d", t.Minute))
	}
	if t.Timezone != "" {
		if _, err := time.LoadLocation(t.Timezone); err != nil {
			result.AddError(CodeInvalidTime, "timezone",
				fmt.Sprintf("unknown timezone %q", t.Timezone))
		}
	}

	return result
}

// MinutesFromMidnight returns the time as minutes since local midnight.
// Only meaningful for a validated TimeOfDay.
func (t TimeOfDay) MinutesFromMidnight() int {
	return t.Hour*60 + t.Minute
}

// Location resolves the timezone, falling back to UTC when none is set.
// Returns an error for unknown zones; callers that have already validated the
// TimeOfDay may ignore it.
func (t TimeOfDay) Location() (*time.Location, error) {
	if t.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}
	return loc, nil
}

// On projects the time of day onto a calendar date in the given location and
// returns the resulting instant in UTC. DST transitions are resolved by the
// timezone database via time.Date.
func (t TimeOfDay) On(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, t.Hour, t.Minute, 0, 0, loc).UTC()
}

// String formats the time as HH:MM for logging and recommendations.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ValidateDateRange checks a schedule's start/end dates against "now". The
// start may not be in the past (compared at day granularity so a schedule
// starting earlier today is accepted), the end may not precede the start, and
// the overall duration may not exceed maxDuration (MaxScheduleDuration when
// zero).
func ValidateDateRange(start time.Time, end *time.Time, now time.Time, maxDuration time.Duration) *ValidationResult {
	result := NewValidationResult()

	if maxDuration <= 0 {
		maxDuration = MaxScheduleDuration
	}

	startDay := start.UTC().Truncate(24 * time.Hour)
	nowDay := now.UTC().Truncate(24 * time.Hour)
	if startDay.Before(nowDay) {
		result.AddError(CodeInvalidDateRange, "start_date", "start date cannot be in the past")
	}

	if end != nil {
		if end.Before(start) {
			result.AddError(CodeInvalidDateRange, "end_date", "end date cannot precede start date")
		} else if end.Sub(start) > maxDuration {
			result.AddError(CodeInvalidDateRange, "end_date",
				fmt.Sprintf("schedule duration exceeds maximum of %s", maxDuration))
		}
	}

	return result
}

// NormalizeToUTC converts a wall-clock time on a given date in the named
// timezone to the corresponding UTC instant. Deterministic for a given
// instant; DST is resolved by the timezone database, not re-implemented here.
func NormalizeToUTC(t TimeOfDay, date time.Time, timezone string) (time.Time, error) {
	loc := time.UTC
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: unknown timezone %q", ErrInvalidTimeOfDay, timezone)
		}
	}

	local := date.In(loc)
	return t.On(local.Year(), local.Month(), local.Day(), loc), nil
}
