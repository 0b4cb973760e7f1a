package safety

import (
	"time"

	"github.com/dosewise/dosewise-api/internal/domain"
)

// Thresholds are the score cut-offs for each escalation tier.
type Thresholds struct {
	Optimal float64
	Safe    float64
	Caution float64
	Unsafe  float64
}

// Params defines all configurable values for interaction aggregation,
// scoring, caching, and escalation.
type Params struct {
	// CacheTTL is how long a merged pair result stays valid.
	CacheTTL time.Duration

	// MaxCacheSize bounds the pair cache; least-recently-used entries are
	// evicted beyond it.
	MaxCacheSize int

	// LookupTimeout bounds each provider call. Timeouts are per call so a
	// single slow lookup cannot block unrelated pairs.
	LookupTimeout time.Duration

	// EmergencyThreshold is the normalized severity weight at or above which
	// a pair requires immediate attention.
	EmergencyThreshold float64

	// SeverityWeights map each severity to its normalized [0,1] risk weight.
	SeverityWeights map[domain.Severity]float64

	// DefaultMinGapHours is the dose spacing assumed for an interacting pair
	// when the data source does not specify one.
	DefaultMinGapHours float64

	// TimingPenaltyPerViolation is subtracted from the score for each timing
	// violation, up to MaxTimingPenalty.
	TimingPenaltyPerViolation float64
	MaxTimingPenalty          float64

	// TimingLookaheadDays is the window of concrete dose times examined for
	// timing interactions.
	TimingLookaheadDays int

	// Thresholds are the escalation score cut-offs.
	Thresholds Thresholds

	// MissedDosesCaution and MissedDosesEmergency are the adherence cut-offs
	// that raise escalation independently of the interaction score.
	MissedDosesCaution   int
	MissedDosesEmergency int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		CacheTTL:           7 * 24 * time.Hour,
		MaxCacheSize:       1000,
		LookupTimeout:      5 * time.Second,
		EmergencyThreshold: 0.9,

		// Worst pair dominates; weights are normalized severity, not
		// additive penalties. Unknown weighs like moderate so missing data
		// can never score as safe.
		SeverityWeights: map[domain.Severity]float64{
			domain.SeveritySevere:   0.9,
			domain.SeverityHigh:     0.6,
			domain.SeverityModerate: 0.3,
			domain.SeverityUnknown:  0.3,
			domain.SeverityLow:      0.1,
		},

		DefaultMinGapHours:        2,
		TimingPenaltyPerViolation: 0.1,
		MaxTimingPenalty:          0.3,
		TimingLookaheadDays:       1,

		Thresholds: Thresholds{
			Optimal: 0.95,
			Safe:    0.8,
			Caution: 0.6,
			Unsafe:  0.3,
		},

		MissedDosesCaution:   3,
		MissedDosesEmergency: 5,
	}
}
