package dosing

import (
	"sort"
	"time"

	"github.com/dosewise/dosewise-api/internal/domain"
)

// recurrenceHorizonDays bounds the forward search for the next occurrence.
// Covers monthly rules that skip months lacking the configured day.
const recurrenceHorizonDays = 400

// dailySlots returns the schedule's dosing times within a single day as local
// wall-clock values, sorted ascending. INTERVAL schedules are expanded onto
// their daily grid anchored at the start date so all types project uniformly.
func dailySlots(s *domain.Schedule) []domain.TimeOfDay {
	if s.Type == domain.ScheduleTypeInterval {
		if s.IntervalHours <= 0 || 24%s.IntervalHours != 0 {
			return nil
		}
		anchor := s.StartDate.In(s.Location())
		slots := make([]domain.TimeOfDay, 0, 24/s.IntervalHours)
		for k := 0; k < 24/s.IntervalHours; k++ {
			slots = append(slots, domain.TimeOfDay{
				Hour:   (anchor.Hour() + k*s.IntervalHours) % 24,
				Minute: anchor.Minute(),
			})
		}
		sort.Slice(slots, func(i, j int) bool {
			return slots[i].MinutesFromMidnight() < slots[j].MinutesFromMidnight()
		})
		return slots
	}

	slots := make([]domain.TimeOfDay, len(s.Times))
	copy(slots, s.Times)
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].MinutesFromMidnight() < slots[j].MinutesFromMidnight()
	})
	return slots
}

// occursOn reports whether the schedule's recurrence rule includes the given
// local calendar day. Cyclic schedules only occur during the "on" portion of
// their cycle, counted from the start date.
func occursOn(s *domain.Schedule, localDay time.Time) bool {
	if s.Type == domain.ScheduleTypeCyclic && s.DaysOn > 0 && s.DaysOff > 0 {
		start := s.StartDate.In(s.Location())
		startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.Location())
		daysSince := int(localDay.Sub(startDay).Hours() / 24)
		if daysSince < 0 {
			return false
		}
		cycle := s.DaysOn + s.DaysOff
		if daysSince%cycle >= s.DaysOn {
			return false
		}
	}

	switch s.EffectiveFrequency() {
	case domain.FrequencyWeekly:
		for _, d := range s.DaysOfWeek {
			if int(localDay.Weekday()) == d {
				return true
			}
		}
		return false
	case domain.FrequencyMonthly:
		for _, d := range s.DaysOfMonth {
			if localDay.Day() == d {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// slotLocation resolves the timezone a dose slot is anchored in. A slot may
// carry its own timezone overriding the schedule's.
func slotLocation(s *domain.Schedule, slot domain.TimeOfDay) *time.Location {
	if slot.Timezone != "" {
		if l, err := slot.Location(); err == nil {
			return l
		}
	}
	return s.Location()
}

// nextOccurrence computes the earliest concrete dose time at or after "after"
// satisfying the schedule's recurrence rule.
//
// All ordering comparisons happen on UTC instants; the returned value is
// re-expressed in the schedule's timezone for display only. Slots carrying
// their own timezone are anchored there, so the earliest instant can belong
// to a later wall-clock slot. The exhausted flag distinguishes a schedule
// whose end date has passed from one that simply has no valid slot in the
// search horizon.
func nextOccurrence(s *domain.Schedule, after time.Time, params *Params) (occurrence time.Time, found bool, exhausted bool) {
	if s.HasEnded(after) {
		return time.Time{}, false, true
	}

	slots := dailySlots(s)
	if len(slots) == 0 {
		return time.Time{}, false, false
	}

	loc := s.Location()
	from := after
	if s.StartDate.After(from) {
		from = s.StartDate
	}

	local := from.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var best time.Time
	firstHitDay := 0
	pastEnd := false

	for i := 0; i < recurrenceHorizonDays; i++ {
		if s.EndDate != nil && day.After(s.EndDate.In(loc)) {
			pastEnd = true
			break
		}
		// Slot timezones can lag or lead the schedule's by up to 26 hours
		// combined, so a later calendar day may still yield an earlier UTC
		// instant. Two extra days close that window.
		if found && i > firstHitDay+2 {
			break
		}
		if occursOn(s, day) {
			for _, slot := range slots {
				candidate := slot.On(day.Year(), day.Month(), day.Day(), slotLocation(s, slot))
				if candidate.Before(from.UTC()) {
					continue
				}
				if s.EndDate != nil && candidate.After(s.EndDate.UTC()) {
					continue
				}
				if !found {
					found = true
					firstHitDay = i
					best = candidate
				} else if candidate.Before(best) {
					best = candidate
				}
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	if found {
		return best.In(loc), true, false
	}
	if pastEnd {
		return time.Time{}, false, true
	}
	return time.Time{}, false, false
}

// projectDoses expands the schedule into concrete UTC dose instants over a
// bounded look-ahead window of whole local days starting at "from". This is
// the normalized projection the conflict detector compares across schedule
// types.
func projectDoses(s *domain.Schedule, from time.Time, days int) []time.Time {
	slots := dailySlots(s)
	if len(slots) == 0 {
		return nil
	}

	loc := s.Location()
	local := from.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var doses []time.Time
	for i := 0; i < days; i++ {
		if occursOn(s, day) {
			for _, slot := range slots {
				candidate := slot.On(day.Year(), day.Month(), day.Day(), slotLocation(s, slot))
				if candidate.Before(s.StartDate.UTC()) {
					continue
				}
				if s.EndDate != nil && candidate.After(s.EndDate.UTC()) {
					continue
				}
				doses = append(doses, candidate)
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return doses
}
