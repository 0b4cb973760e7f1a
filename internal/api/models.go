package api

import (
	"time"

	"github.com/dosewise/dosewise-api/internal/domain"
	"github.com/google/uuid"
)

// TimeOfDayInput is the wire shape of a dosing time.
type TimeOfDayInput struct {
	Hour     int    `json:"hour" validate:"min=0,max=23"`
	Minute   int    `json:"minute" validate:"min=0,max=59"`
	Timezone string `json:"timezone,omitempty"`
}

// ScheduleInput is the wire shape of a schedule submitted for validation,
// recurrence, or conflict checks. Malformed input is rejected at this
// boundary with a typed error; per-type safety rules run afterwards in the
// dosing engine so every problem can be reported at once.
type ScheduleInput struct {
	ID           string `json:"id,omitempty"`
	MedicationID string `json:"medication_id" validate:"required,uuid"`
	UserID       string `json:"user_id" validate:"required,uuid"`
	Type         string `json:"type" validate:"required,oneof=FIXED_TIME INTERVAL PRN COMPLEX CYCLIC TAPERED MEAL_BASED SLIDING_SCALE"`
	Frequency    string `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly monthly"`

	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Timezone  string     `json:"timezone,omitempty"`

	Times       []TimeOfDayInput `json:"times,omitempty" validate:"dive"`
	Interval    int              `json:"interval_hours,omitempty"`
	DaysOfWeek  []int            `json:"days_of_week,omitempty"`
	DaysOfMonth []int            `json:"days_of_month,omitempty"`
	MealTimes   []string         `json:"meal_times,omitempty"`

	MaxDailyDoses   int     `json:"max_daily_doses,omitempty"`
	MinHoursBetween float64 `json:"min_hours_between,omitempty"`

	StartDose float64 `json:"start_dose,omitempty"`
	EndDose   float64 `json:"end_dose,omitempty"`
	TaperDays int     `json:"taper_days,omitempty"`

	DaysOn  int `json:"days_on,omitempty"`
	DaysOff int `json:"days_off,omitempty"`

	Dosage          float64 `json:"dosage" validate:"required,gt=0"`
	Unit            string  `json:"unit" validate:"required"`
	ReminderMinutes int     `json:"reminder_minutes,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

// toDomain converts the input into a domain schedule. IDs are generated when
// absent so ad-hoc validation requests need not mint their own.
func (in *ScheduleInput) toDomain() (*domain.Schedule, error) {
	id := uuid.New()
	if in.ID != "" {
		parsed, err := uuid.Parse(in.ID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}
	medicationID, err := uuid.Parse(in.MedicationID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return nil, err
	}

	times := make([]domain.TimeOfDay, len(in.Times))
	for i, t := range in.Times {
		times[i] = domain.TimeOfDay{Hour: t.Hour, Minute: t.Minute, Timezone: t.Timezone}
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	schedule := &domain.Schedule{
		ID:              id,
		MedicationID:    medicationID,
		UserID:          userID,
		Type:            domain.ScheduleType(in.Type),
		Frequency:       domain.Frequency(in.Frequency),
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Timezone:        in.Timezone,
		Times:           times,
		IntervalHours:   in.Interval,
		DaysOfWeek:      in.DaysOfWeek,
		DaysOfMonth:     in.DaysOfMonth,
		MealTimes:       in.MealTimes,
		MaxDailyDoses:   in.MaxDailyDoses,
		MinHoursBetween: in.MinHoursBetween,
		StartDose:       in.StartDose,
		EndDose:         in.EndDose,
		TaperDays:       in.TaperDays,
		DaysOn:          in.DaysOn,
		DaysOff:         in.DaysOff,
		Dosage:          in.Dosage,
		Unit:            in.Unit,
		ReminderMinutes: in.ReminderMinutes,
		Active:          active,
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return schedule, nil
}

// MedicationInput is the wire shape of a medication.
type MedicationInput struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name" validate:"required"`
	Herbal bool   `json:"herbal,omitempty"`
}

// toDomain converts the input into a domain medication owned by the given
// user.
func (in *MedicationInput) toDomain(userID uuid.UUID) (*domain.Medication, error) {
	id := uuid.New()
	if in.ID != "" {
		parsed, err := uuid.Parse(in.ID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}
	medication := &domain.Medication{
		ID:        id,
		UserID:    userID,
		Name:      in.Name,
		Herbal:    in.Herbal,
		Active:    true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := medication.Validate(); err != nil {
		return nil, err
	}
	return medication, nil
}

// NextOccurrenceResponse reports the next concrete dose time for a schedule.
type NextOccurrenceResponse struct {
	At        *time.Time `json:"at,omitempty"`
	Exhausted bool       `json:"exhausted"`
}
