package dosing

import "time"

// Params defines all configurable limits for schedule validation, recurrence,
// and conflict detection.
type Params struct {
	// MinDoseIntervalMinutes is the minimum spacing between two fixed dosing
	// times of the same medication.
	MinDoseIntervalMinutes int

	// MinIntervalHours is the smallest allowed INTERVAL schedule period.
	MinIntervalHours int

	// MinPRNHoursBetween is the smallest allowed gap between PRN doses.
	MinPRNHoursBetween float64

	// MaxDailyDoses is the safe ceiling for PRN doses per day.
	MaxDailyDoses int

	// MinTaperStep is the smallest per-day dose decrement a tapered schedule
	// may use, in dosage units.
	MinTaperStep float64

	// MinTimeBetweenMedsHours is the default gap required between doses of
	// different medications.
	MinTimeBetweenMedsHours float64

	// MaxScheduleDuration bounds the start-to-end span of a schedule.
	MaxScheduleDuration time.Duration

	// ConflictLookaheadDays is how many days of concrete dose times are
	// projected when comparing two schedules.
	ConflictLookaheadDays int

	// SuggestionStepMinutes is the granularity used when searching for an
	// alternative dose time that clears all conflicts.
	SuggestionStepMinutes int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values keep the defaults.
type ParamsConfig struct {
	MinDoseIntervalMinutes  int
	MinIntervalHours        int
	MinPRNHoursBetween      float64
	MaxDailyDoses           int
	MinTaperStep            float64
	MinTimeBetweenMedsHours float64
	MaxScheduleDuration     time.Duration
	ConflictLookaheadDays   int
	SuggestionStepMinutes   int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinDoseIntervalMinutes:  15,
		MinIntervalHours:        4,
		MinPRNHoursBetween:      4,
		MaxDailyDoses:           8,
		MinTaperStep:            1,
		MinTimeBetweenMedsHours: 2,
		MaxScheduleDuration:     2 * 365 * 24 * time.Hour,
		ConflictLookaheadDays:   1,
		SuggestionStepMinutes:   15,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinDoseIntervalMinutes > 0 {
		params.MinDoseIntervalMinutes = config.MinDoseIntervalMinutes
	}
	if config.MinIntervalHours > 0 {
		params.MinIntervalHours = config.MinIntervalHours
	}
	if config.MinPRNHoursBetween > 0 {
		params.MinPRNHoursBetween = config.MinPRNHoursBetween
	}
	if config.MaxDailyDoses > 0 {
		params.MaxDailyDoses = config.MaxDailyDoses
	}
	if config.MinTaperStep > 0 {
		params.MinTaperStep = config.MinTaperStep
	}
	if config.MinTimeBetweenMedsHours > 0 {
		params.MinTimeBetweenMedsHours = config.MinTimeBetweenMedsHours
	}
	if config.MaxScheduleDuration > 0 {
		params.MaxScheduleDuration = config.MaxScheduleDuration
	}
	if config.ConflictLookaheadDays > 0 {
		params.ConflictLookaheadDays = config.ConflictLookaheadDays
	}
	if config.SuggestionStepMinutes > 0 {
		params.SuggestionStepMinutes = config.SuggestionStepMinutes
	}

	return params
}
