package dosing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dosewise/dosewise-api/internal/domain"
	"github.com/google/uuid"
)

// detectConflicts compares the candidate schedule against every existing
// active schedule for a different medication and reports each pair of
// concrete dose times that fall within the minimum inter-medication gap.
//
// Detection is symmetric: the pair of medication names is reported in sorted
// order, so swapping candidate and existing yields the same conflicts.
func detectConflicts(
	existing []*domain.Schedule,
	names map[uuid.UUID]string,
	candidate *domain.Schedule,
	now time.Time,
	params *Params,
) []domain.ScheduleConflict {
	candidateDoses := projectDoses(candidate, now, params.ConflictLookaheadDays)
	if len(candidateDoses) == 0 {
		return nil
	}

	minGap := time.Duration(params.MinTimeBetweenMedsHours * float64(time.Hour))

	// All other schedules' doses, kept per schedule for pairing and pooled
	// for suggestion search.
	var pooled []time.Time
	type projected struct {
		schedule *domain.Schedule
		doses    []time.Time
	}
	others := make([]projected, 0, len(existing))
	for _, s := range existing {
		if !s.Active || s.MedicationID == candidate.MedicationID {
			continue
		}
		doses := projectDoses(s, now, params.ConflictLookaheadDays)
		if len(doses) == 0 {
			continue
		}
		others = append(others, projected{schedule: s, doses: doses})
		pooled = append(pooled, doses...)
	}

	conflicts := make([]domain.ScheduleConflict, 0)
	seen := make(map[string]bool)

	for _, other := range others {
		for _, candidateTime := range candidateDoses {
			for _, otherTime := range other.doses {
				gap := candidateTime.Sub(otherTime)
				if gap < 0 {
					gap = -gap
				}
				if gap >= minGap {
					continue
				}

				med1, med2 := pairNames(names, candidate.MedicationID, other.schedule.MedicationID)
				key := fmt.Sprintf("%s|%s|%d", med1, med2, candidateTime.Unix())
				if seen[key] {
					continue
				}
				seen[key] = true

				conflict := domain.ScheduleConflict{
					Medication1:  med1,
					Medication2:  med2,
					Time:         candidateTime,
					ConflictType: domain.ConflictTypeTiming,
					Severity:     severityForGap(gap, minGap),
					Recommendation: fmt.Sprintf(
						"doses are %s apart; separate %s and %s by at least %.1f hours",
						formatDuration(gap), med1, med2, params.MinTimeBetweenMedsHours),
				}
				if suggested, ok := suggestDoseTime(candidateTime, pooled, minGap, params); ok {
					conflict.SuggestedTime = &suggested
				}
				conflicts = append(conflicts, conflict)
			}
		}
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if !conflicts[i].Time.Equal(conflicts[j].Time) {
			return conflicts[i].Time.Before(conflicts[j].Time)
		}
		return conflicts[i].Medication2 < conflicts[j].Medication2
	})

	return conflicts
}

// suggestDoseTime searches forward from the conflicting slot for the nearest
// time clearing the minimum gap against every dose of every other schedule,
// not just the one that conflicted, so the suggestion cannot introduce a new
// conflict. The search is bounded to 48 hours.
func suggestDoseTime(
	from time.Time,
	otherDoses []time.Time,
	minGap time.Duration,
	params *Params,
) (time.Time, bool) {
	step := time.Duration(params.SuggestionStepMinutes) * time.Minute
	limit := from.Add(48 * time.Hour)

	for t := from; !t.After(limit); t = t.Add(step) {
		clear := true
		for _, d := range otherDoses {
			gap := t.Sub(d)
			if gap < 0 {
				gap = -gap
			}
			if gap < minGap {
				clear = false
				break
			}
		}
		if clear {
			return t, true
		}
	}

	return time.Time{}, false
}

// severityForGap grades a timing conflict: near-simultaneous doses are high
// severity, doses most of the way to the minimum gap are low.
func severityForGap(gap, minGap time.Duration) domain.ConflictSeverity {
	ratio := float64(gap) / float64(minGap)
	switch {
	case ratio < 1.0/3.0:
		return domain.ConflictSeverityHigh
	case ratio < 2.0/3.0:
		return domain.ConflictSeverityMedium
	default:
		return domain.ConflictSeverityLow
	}
}

// pairNames resolves medication names and returns them in sorted order so
// conflict reports are order-independent. Falls back to the ID when the
// caller did not supply a name.
func pairNames(names map[uuid.UUID]string, a, b uuid.UUID) (string, string) {
	nameA, ok := names[a]
	if !ok {
		nameA = a.String()
	}
	nameB, ok := names[b]
	if !ok {
		nameB = b.String()
	}
	if nameA > nameB {
		return nameB, nameA
	}
	return nameA, nameB
}

func formatDuration(d time.Duration) string {
	minutes := int(math.Round(d.Minutes()))
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
