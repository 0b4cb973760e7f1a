package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Schedule-specific validation errors.
var (
	// ErrScheduleIDEmpty is returned when a schedule ID is empty or nil.
	ErrScheduleIDEmpty = errors.New("schedule ID cannot be empty")

	// ErrScheduleMedicationIDEmpty is returned when a schedule's medication ID is empty or nil.
	ErrScheduleMedicationIDEmpty = errors.New("schedule medication ID cannot be empty")

	// ErrScheduleUserIDEmpty is returned when a schedule's user ID is empty or nil.
	ErrScheduleUserIDEmpty = errors.New("schedule user ID cannot be empty")

	// ErrScheduleTypeInvalid is returned when a schedule carries an unknown type.
	ErrScheduleTypeInvalid = errors.New("unknown schedule type")

	// ErrScheduleDosageInvalid is returned when a schedule's dosage is not positive.
	ErrScheduleDosageInvalid = errors.New("schedule dosage must be positive")
)

// ScheduleType identifies the dosing pattern of a schedule.
type ScheduleType string

// Supported schedule types.
const (
	ScheduleTypeFixedTime    ScheduleType = "FIXED_TIME"
	ScheduleTypeInterval     ScheduleType = "INTERVAL"
	ScheduleTypePRN          ScheduleType = "PRN"
	ScheduleTypeComplex      ScheduleType = "COMPLEX"
	ScheduleTypeCyclic       ScheduleType = "CYCLIC"
	ScheduleTypeTapered      ScheduleType = "TAPERED"
	ScheduleTypeMealBased    ScheduleType = "MEAL_BASED"
	ScheduleTypeSlidingScale ScheduleType = "SLIDING_SCALE"
)

// Frequency identifies the recurrence rule applied by the recurrence engine.
type Frequency string

// Supported recurrence frequencies.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Schedule describes when a medication should be taken. Schedules are created
// on user request, mutated only through the validator (never silently
// repaired), soft-retired via Active=false, and never deleted from history.
type Schedule struct {
	ID           uuid.UUID    `json:"id"`
	MedicationID uuid.UUID    `json:"medication_id"`
	UserID       uuid.UUID    `json:"user_id"`
	Type         ScheduleType `json:"type"`
	Frequency    Frequency    `json:"frequency,omitempty"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Timezone  string     `json:"timezone,omitempty"`

	// FIXED_TIME / COMPLEX / MEAL_BASED dosing slots.
	Times []TimeOfDay `json:"times,omitempty"`

	// INTERVAL dosing.
	IntervalHours int `json:"interval_hours,omitempty"`

	// Weekly/monthly recurrence.
	DaysOfWeek  []int `json:"days_of_week,omitempty"`
	DaysOfMonth []int `json:"days_of_month,omitempty"`

	// MEAL_BASED slots, e.g. "breakfast", "dinner".
	MealTimes []string `json:"meal_times,omitempty"`

	// PRN limits.
	MaxDailyDoses   int     `json:"max_daily_doses,omitempty"`
	MinHoursBetween float64 `json:"min_hours_between,omitempty"`

	// TAPERED parameters.
	StartDose float64 `json:"start_dose,omitempty"`
	EndDose   float64 `json:"end_dose,omitempty"`
	TaperDays int     `json:"taper_days,omitempty"`

	// CYCLIC parameters.
	DaysOn  int `json:"days_on,omitempty"`
	DaysOff int `json:"days_off,omitempty"`

	Dosage          float64 `json:"dosage"`
	Unit            string  `json:"unit"`
	ReminderMinutes int     `json:"reminder_minutes,omitempty"`
	Active          bool    `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSchedule creates a schedule with a fresh ID and timestamps. Shape
// validation happens here; the per-type safety rules live in the dosing
// package and run separately so every problem can be reported at once.
func NewSchedule(
	medicationID, userID uuid.UUID,
	scheduleType ScheduleType,
	startDate time.Time,
	dosage float64,
	unit string,
) (*Schedule, error) {
	schedule := &Schedule{
		ID:           uuid.New(),
		MedicationID: medicationID,
		UserID:       userID,
		Type:         scheduleType,
		Frequency:    FrequencyDaily,
		StartDate:    startDate,
		Dosage:       dosage,
		Unit:         unit,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	return schedule, nil
}

// Validate checks the structural shape of the schedule. Malformed external
// input is rejected here with a typed error rather than propagated.
func (s *Schedule) Validate() error {
	if s.ID == uuid.Nil {
		return ErrScheduleIDEmpty
	}
	if s.MedicationID == uuid.Nil {
		return ErrScheduleMedicationIDEmpty
	}
	if s.UserID == uuid.Nil {
		return ErrScheduleUserIDEmpty
	}
	if !s.Type.Valid() {
		return ErrScheduleTypeInvalid
	}
	if s.Dosage <= 0 {
		return ErrScheduleDosageInvalid
	}
	return nil
}

// Valid reports whether the schedule type is one of the supported values.
func (t ScheduleType) Valid() bool {
	switch t {
	case ScheduleTypeFixedTime,
		ScheduleTypeInterval,
		ScheduleTypePRN,
		ScheduleTypeComplex,
		ScheduleTypeCyclic,
		ScheduleTypeTapered,
		ScheduleTypeMealBased,
		ScheduleTypeSlidingScale:
		return true
	default:
		return false
	}
}

// EffectiveFrequency returns the recurrence rule for this schedule, inferring
// weekly/monthly from the configured day lists when Frequency is unset.
func (s *Schedule) EffectiveFrequency() Frequency {
	if s.Frequency != "" {
		return s.Frequency
	}
	if len(s.DaysOfWeek) > 0 {
		return FrequencyWeekly
	}
	if len(s.DaysOfMonth) > 0 {
		return FrequencyMonthly
	}
	return FrequencyDaily
}

// Location resolves the schedule's timezone, defaulting to UTC.
func (s *Schedule) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HasEnded reports whether the schedule's end date has passed at the given
// instant. Schedules without an end date never end.
func (s *Schedule) HasEnded(now time.Time) bool {
	return s.EndDate != nil && now.After(*s.EndDate)
}

// Retire soft-deletes the schedule. History is never physically deleted; the
// audit trail requires retired schedules to remain readable.
func (s *Schedule) Retire() {
	s.Active = false
	s.UpdatedAt = time.Now().UTC()
}
