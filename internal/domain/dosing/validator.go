package dosing

import (
	"fmt"
	"sort"
	"time"

	"github.com/dosewise/dosewise-api/internal/domain"
)

// validateSchedule runs every per-type safety rule for the schedule and
// collects all violations into a single result. Rules never short-circuit so
// the caller can display every problem at once.
func validateSchedule(s *domain.Schedule, now time.Time, params *Params) *domain.ValidationResult {
	result := domain.NewValidationResult()

	for i, t := range s.Times {
		tr := t.Validate()
		for _, e := range tr.Errors {
			result.AddError(e.Code, fmt.Sprintf("times[%d].%s", i, e.Field), e.Message)
		}
	}

	result.Merge(domain.ValidateDateRange(s.StartDate, s.EndDate, now, params.MaxScheduleDuration))

	validateDayLists(s, result)

	switch s.Type {
	case domain.ScheduleTypeFixedTime, domain.ScheduleTypeComplex, domain.ScheduleTypeMealBased:
		validateFixedTimes(s, result, params)
	case domain.ScheduleTypeInterval:
		validateInterval(s, result, params)
	case domain.ScheduleTypePRN:
		validatePRN(s, result, params)
	case domain.ScheduleTypeTapered:
		validateTapered(s, result, params)
	case domain.ScheduleTypeCyclic:
		validateCyclic(s, result)
	}

	return result
}

// validateFixedTimes enforces the minimum spacing between dosing slots of a
// single medication. The gap between the last slot of one day and the first
// slot of the next is included since the schedule recurs.
func validateFixedTimes(s *domain.Schedule, result *domain.ValidationResult, params *Params) {
	if len(s.Times) == 0 {
		result.AddError(domain.CodeInvalidTime, "times", "at least one dosing time is required")
		return
	}

	minutes := make([]int, 0, len(s.Times))
	seen := make(map[int]bool, len(s.Times))
	for _, t := range s.Times {
		m := t.MinutesFromMidnight()
		if seen[m] {
			result.AddError(domain.CodeDuplicateTime, "times",
				fmt.Sprintf("duplicate dosing time %s", t))
			continue
		}
		seen[m] = true
		minutes = append(minutes, m)
	}

	if len(minutes) < 2 {
		return
	}
	sort.Ints(minutes)

	for i := 1; i < len(minutes); i++ {
		gap := minutes[i] - minutes[i-1]
		if gap < params.MinDoseIntervalMinutes {
			result.AddError(domain.CodeUnsafeInterval, "times",
				fmt.Sprintf("dosing times %s apart; minimum spacing is %d minutes",
					formatGap(gap), params.MinDoseIntervalMinutes))
		}
	}

	// Wrap-around gap between the last slot today and the first tomorrow.
	wrap := minutes[0] + 24*60 - minutes[len(minutes)-1]
	if wrap < params.MinDoseIntervalMinutes {
		result.AddError(domain.CodeUnsafeInterval, "times",
			fmt.Sprintf("dosing times %s apart across midnight; minimum spacing is %d minutes",
				formatGap(wrap), params.MinDoseIntervalMinutes))
	}
}

// validateInterval enforces the minimum period and the even-division rule
// that keeps the daily dosing grid stable.
func validateInterval(s *domain.Schedule, result *domain.ValidationResult, params *Params) {
	if s.IntervalHours <= 0 {
		result.AddError(domain.CodeInvalidTime, "interval_hours", "interval is required for interval schedules")
		return
	}
	if s.IntervalHours < params.MinIntervalHours {
		result.AddError(domain.CodeUnsafeInterval, "interval_hours",
			fmt.Sprintf("interval of %d hours is below the minimum of %d hours",
				s.IntervalHours, params.MinIntervalHours))
	}
	if 24%s.IntervalHours != 0 {
		result.AddError(domain.CodeInvalidTime, "interval_hours",
			fmt.Sprintf("interval of %d hours does not divide evenly into 24", s.IntervalHours))
	}
}

// validatePRN enforces the as-needed dosing limits: a required daily maximum,
// a required minimum gap, and the configured safe ceiling.
func validatePRN(s *domain.Schedule, result *domain.ValidationResult, params *Params) {
	if s.MaxDailyDoses <= 0 {
		result.AddError(domain.CodeInvalidTime, "max_daily_doses", "max daily doses is required for PRN schedules")
	}
	if s.MinHoursBetween <= 0 {
		result.AddError(domain.CodeInvalidTime, "min_hours_between", "minimum hours between doses is required for PRN schedules")
	} else if s.MinHoursBetween < params.MinPRNHoursBetween {
		result.AddError(domain.CodeUnsafeInterval, "min_hours_between",
			fmt.Sprintf("minimum gap of %.1f hours is below the safe minimum of %.1f hours",
				s.MinHoursBetween, params.MinPRNHoursBetween))
	}
	if s.MaxDailyDoses > params.MaxDailyDoses {
		result.AddError(domain.CodeExceedDailyLimit, "max_daily_doses",
			fmt.Sprintf("%d doses per day exceeds the safe ceiling of %d", s.MaxDailyDoses, params.MaxDailyDoses))
	}
	if s.MaxDailyDoses > 0 && s.MinHoursBetween > 0 &&
		float64(s.MaxDailyDoses-1)*s.MinHoursBetween >= 24 {
		result.AddWarning(domain.CodeExceedDailyLimit, "max_daily_doses",
			"the daily maximum cannot be reached while honoring the minimum gap")
	}
}

// validateTapered checks that the dose decreases and that the per-day step is
// at least one dosage unit, so the taper is expressible in whole steps.
func validateTapered(s *domain.Schedule, result *domain.ValidationResult, params *Params) {
	if s.TaperDays <= 0 {
		result.AddError(domain.CodeInvalidTime, "taper_days", "taper duration must be at least one day")
		return
	}
	if s.StartDose <= s.EndDose {
		result.AddError(domain.CodeInvalidTime, "start_dose", "tapered schedules must decrease from start dose to end dose")
		return
	}
	step := (s.StartDose - s.EndDose) / float64(s.TaperDays)
	if step < params.MinTaperStep {
		result.AddError(domain.CodeInvalidTime, "taper_days",
			fmt.Sprintf("taper step of %.2f per day is smaller than one dosage unit", step))
	}
}

// validateCyclic requires at least one day on and one day off; a zero in
// either collapses the cycle.
func validateCyclic(s *domain.Schedule, result *domain.ValidationResult) {
	if s.DaysOn < 1 {
		result.AddError(domain.CodeInvalidTime, "days_on", "cyclic schedules require at least one day on")
	}
	if s.DaysOff < 1 {
		result.AddError(domain.CodeInvalidTime, "days_off", "cyclic schedules require at least one day off")
	}
}

// validateDayLists checks weekly and monthly day selections wherever they
// appear: values must be unique and in range.
func validateDayLists(s *domain.Schedule, result *domain.ValidationResult) {
	seenWeek := make(map[int]bool, len(s.DaysOfWeek))
	for _, d := range s.DaysOfWeek {
		if d < 0 || d > 6 {
			result.AddError(domain.CodeInvalidTime, "days_of_week",
				fmt.Sprintf("day of week %d is out of range 0-6", d))
			continue
		}
		if seenWeek[d] {
			result.AddError(domain.CodeInvalidTime, "days_of_week",
				fmt.Sprintf("duplicate day of week %d", d))
		}
		seenWeek[d] = true
	}

	seenMonth := make(map[int]bool, len(s.DaysOfMonth))
	for _, d := range s.DaysOfMonth {
		if d < 1 || d > 31 {
			result.AddError(domain.CodeInvalidTime, "days_of_month",
				fmt.Sprintf("day of month %d is out of range 1-31", d))
			continue
		}
		if seenMonth[d] {
			result.AddError(domain.CodeInvalidTime, "days_of_month",
				fmt.Sprintf("duplicate day of month %d", d))
		}
		seenMonth[d] = true
	}
}

func formatGap(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
