package safety

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dosewise/dosewise-api/internal/domain"
	"github.com/dosewise/dosewise-api/internal/domain/dosing"
	"github.com/dosewise/dosewise-api/internal/interaction"
	"github.com/dosewise/dosewise-api/internal/platform/logger"
)

// Verify interface compliance at compile time
var _ Service = (*safetyServiceImpl)(nil)

// pairFinding is the merged outcome for one unordered medication pair. A nil
// Result means the pair has no known interaction. MinGapHours carries the
// dose spacing the data source requires, used by the timing check.
type pairFinding struct {
	Result      *domain.InteractionResult
	MinGapHours float64
}

// safetyServiceImpl implements the Service interface.
type safetyServiceImpl struct {
	provider      interaction.Provider
	dosingService dosing.Service
	cache         *interactionCache
	params        *Params
	logger        *slog.Logger
}

// NewService creates a new safety Service. The cache is owned by the service
// instance and injected nowhere else; there is no ambient global state.
func NewService(
	provider interaction.Provider,
	dosingService dosing.Service,
	params *Params,
	log *slog.Logger,
) Service {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if dosingService == nil {
		panic("dosingService cannot be nil")
	}
	if params == nil {
		params = NewDefaultParams()
	}
	if log == nil {
		log = slog.Default()
	}

	return &safetyServiceImpl{
		provider:      provider,
		dosingService: dosingService,
		cache:         newInteractionCache(params.MaxCacheSize, params.CacheTTL),
		params:        params,
		logger:        log.With(slog.String("component", "safety_service")),
	}
}

// medPair is one unordered pair of medications to check.
type medPair struct {
	m1, m2 *domain.Medication
}

// CheckInteractions implements Service.CheckInteractions.
func (s *safetyServiceImpl) CheckInteractions(
	ctx context.Context,
	medications []*domain.Medication,
) ([]domain.InteractionResult, error) {
	findings, err := s.checkAllPairs(ctx, medications, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	results := make([]domain.InteractionResult, 0, len(findings))
	for _, f := range findings {
		if f.Result != nil {
			results = append(results, *f.Result)
		}
	}
	return results, nil
}

// checkAllPairs fans out one lookup per unordered pair and waits for all of
// them before returning, so a combined assessment never sees partial results.
func (s *safetyServiceImpl) checkAllPairs(
	ctx context.Context,
	medications []*domain.Medication,
	now time.Time,
) ([]*pairFinding, error) {
	if len(medications) < 2 {
		return nil, ErrNoMedications
	}
	for _, m := range medications {
		if m == nil {
			return nil, ErrNilMedication
		}
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	pairs := make([]medPair, 0, len(medications)*(len(medications)-1)/2)
	for i := 0; i < len(medications); i++ {
		for j := i + 1; j < len(medications); j++ {
			pairs = append(pairs, medPair{m1: medications[i], m2: medications[j]})
		}
	}

	log.Debug("checking interactions",
		slog.Int("medications", len(medications)),
		slog.Int("pairs", len(pairs)))

	findings := make([]*pairFinding, len(pairs))
	var wg sync.WaitGroup
	for i, p := range pairs {
		wg.Add(1)
		go func(i int, p medPair) {
			defer wg.Done()
			findings[i] = s.checkPair(ctx, p.m1, p.m2, now)
		}(i, p)
	}
	wg.Wait()

	return findings, nil
}

// checkPair resolves one pair through the cache or the provider. Lookup
// failures degrade to an unknown-severity finding; they never propagate as
// errors, since a failed safety check must not silently pass validation.
func (s *safetyServiceImpl) checkPair(
	ctx context.Context,
	m1, m2 *domain.Medication,
	now time.Time,
) *pairFinding {
	log := logger.FromContextOrDefault(ctx, s.logger)
	name1, name2 := m1.NormalizedName(), m2.NormalizedName()

	if finding, ok := s.cache.get(name1, name2, now); ok {
		return finding
	}

	facts, lookupFailed := s.lookupPairFacts(ctx, m1, m2)
	finding := s.mergeFacts(m1, m2, facts, lookupFailed)
	s.cache.put(name1, name2, finding, now)

	if lookupFailed {
		log.Warn("interaction lookup degraded to unknown severity",
			slog.String("medication1", name1),
			slog.String("medication2", name2))
	}

	return finding
}

// lookupPairFacts queries the provider in both directions with a per-call
// timeout. Herbal medications are looked up against the herb dataset. A
// missing dataset entry is not a failure; any other error marks the lookup
// failed so the merge can fail closed.
func (s *safetyServiceImpl) lookupPairFacts(
	ctx context.Context,
	m1, m2 *domain.Medication,
) (facts []interaction.InteractionFact, lookupFailed bool) {
	type direction struct {
		subject *domain.Medication
		other   *domain.Medication
	}

	for _, d := range []direction{{m1, m2}, {m2, m1}} {
		callCtx, cancel := context.WithTimeout(ctx, s.params.LookupTimeout)
		found, err := s.lookupFacts(callCtx, d.subject)
		cancel()

		if err != nil {
			if !errors.Is(err, interaction.ErrNotFound) {
				lookupFailed = true
			}
			continue
		}

		otherName := d.other.NormalizedName()
		for _, f := range found {
			if normalizeName(f.WithMedication) == otherName {
				facts = append(facts, f)
			}
		}
	}

	return facts, lookupFailed
}

// lookupFacts fetches all facts a source has about one medication.
func (s *safetyServiceImpl) lookupFacts(
	ctx context.Context,
	m *domain.Medication,
) ([]interaction.InteractionFact, error) {
	if m.Herbal {
		data, err := s.provider.GetHerbInfo(ctx, m.NormalizedName())
		if err != nil {
			return nil, err
		}
		return data.Interactions, nil
	}

	data, err := s.provider.GetDrugInteractions(ctx, m.NormalizedName())
	if err != nil {
		return nil, err
	}
	return data.Interactions, nil
}

// mergeFacts combines every fact reported for a pair into one finding. The
// highest severity wins and recommendation lists are unioned; severities are
// never averaged, since averaging could mask a severe interaction. A failed
// lookup contributes an unknown severity floor.
func (s *safetyServiceImpl) mergeFacts(
	m1, m2 *domain.Medication,
	facts []interaction.InteractionFact,
	lookupFailed bool,
) *pairFinding {
	name1, name2 := m1.NormalizedName(), m2.NormalizedName()
	if name1 > name2 {
		name1, name2 = name2, name1
	}

	if len(facts) == 0 && !lookupFailed {
		return &pairFinding{Result: nil, MinGapHours: 0}
	}

	severity := domain.Severity("")
	if lookupFailed {
		severity = domain.SeverityUnknown
	}

	interactionType := domain.InteractionTypeDrugDrug
	if m1.Herbal || m2.Herbal {
		interactionType = domain.InteractionTypeHerbDrug
	}

	var (
		description  string
		warnings     []domain.InteractionWarning
		emergency    string
		minGapHours  float64
		contraindic  bool
		recsSeen     = make(map[string]bool)
		recs         []string
		worstFactSev = domain.Severity("")
	)

	for _, f := range facts {
		if f.Severity.WorseThan(severity) {
			severity = f.Severity
		}
		if f.Severity.WorseThan(worstFactSev) {
			worstFactSev = f.Severity
			description = f.Description
		}
		if f.Contraindicated {
			contraindic = true
		}
		if f.MinimumGapHours > minGapHours {
			minGapHours = f.MinimumGapHours
		}
		if f.EmergencyInstructions != "" && emergency == "" {
			emergency = f.EmergencyInstructions
		}
		warnings = append(warnings, domain.InteractionWarning{
			Severity: f.Severity,
			Message:  f.Description,
			Source:   f.Source,
		})
		for _, r := range f.Recommendations {
			if !recsSeen[r] {
				recsSeen[r] = true
				recs = append(recs, r)
			}
		}
	}

	if contraindic {
		interactionType = domain.InteractionTypeContraindication
	}
	if description == "" {
		description = fmt.Sprintf("could not verify interactions between %s and %s", name1, name2)
		recs = append(recs, "verify this combination with a pharmacist; interaction data was unavailable")
	}

	requiresAttention := contraindic || s.severityWeight(severity) >= s.params.EmergencyThreshold

	result := &domain.InteractionResult{
		Severity:                   severity,
		Type:                       interactionType,
		Description:                description,
		Medications:                []string{name1, name2},
		Warnings:                   warnings,
		Recommendations:            recs,
		RequiresImmediateAttention: requiresAttention,
	}
	if requiresAttention {
		result.EmergencyInstructions = emergency
		if result.EmergencyInstructions == "" {
			result.EmergencyInstructions = "contact a healthcare provider or poison control immediately"
		}
	}

	if minGapHours <= 0 {
		minGapHours = s.params.DefaultMinGapHours
	}

	return &pairFinding{Result: result, MinGapHours: minGapHours}
}

// AssessSafety implements Service.AssessSafety.
func (s *safetyServiceImpl) AssessSafety(
	ctx context.Context,
	medications []*domain.Medication,
	schedules []*domain.Schedule,
	now time.Time,
) (*domain.SafetyAssessment, error) {
	findings, err := s.checkAllPairs(ctx, medications, now)
	if err != nil {
		if errors.Is(err, ErrNoMedications) || errors.Is(err, ErrNilMedication) {
			return nil, err
		}
		return nil, NewAssessSafetyError("interaction check failed", err)
	}

	var (
		interactions   []domain.InteractionResult
		severityScores []float64
		worst          float64
	)
	recsSeen := make(map[string]bool)
	var recs []string

	for _, f := range findings {
		if f.Result == nil {
			continue
		}
		interactions = append(interactions, *f.Result)
		w := s.severityWeight(f.Result.Severity)
		severityScores = append(severityScores, w)
		if w > worst {
			worst = w
		}
		for _, r := range f.Result.Recommendations {
			if !recsSeen[r] {
				recsSeen[r] = true
				recs = append(recs, r)
			}
		}
	}

	timing := s.checkTiming(medications, schedules, findings, now)
	for _, t := range timing {
		if !recsSeen[t.Recommendation] {
			recsSeen[t.Recommendation] = true
			recs = append(recs, t.Recommendation)
		}
	}

	timingPenalty := float64(len(timing)) * s.params.TimingPenaltyPerViolation
	if timingPenalty > s.params.MaxTimingPenalty {
		timingPenalty = s.params.MaxTimingPenalty
	}

	// Worst pair dominates rather than summing, so many low-severity hits
	// cannot produce an unbounded penalty.
	score := clamp01(1 - worst - timingPenalty)

	return &domain.SafetyAssessment{
		Score:              score,
		SeverityScores:     severityScores,
		TimingScore:        clamp01(1 - timingPenalty),
		Interactions:       interactions,
		TimingInteractions: timing,
		Recommendations:    recs,
		Timestamp:          now,
	}, nil
}

// checkTiming compares the concrete scheduled dose times of every interacting
// pair against the pair's required minimum gap.
func (s *safetyServiceImpl) checkTiming(
	medications []*domain.Medication,
	schedules []*domain.Schedule,
	findings []*pairFinding,
	now time.Time,
) []domain.TimingInteraction {
	if len(schedules) == 0 {
		return nil
	}

	doseTimes := make(map[string][]time.Time, len(medications))
	for _, m := range medications {
		for _, sch := range schedules {
			if !sch.Active || sch.MedicationID != m.ID {
				continue
			}
			doses, err := s.dosingService.ProjectDoses(sch, now, s.params.TimingLookaheadDays)
			if err != nil {
				continue
			}
			name := m.NormalizedName()
			doseTimes[name] = append(doseTimes[name], doses...)
		}
	}

	var out []domain.TimingInteraction
	for _, f := range findings {
		if f.Result == nil {
			continue
		}
		name1, name2 := f.Result.Medications[0], f.Result.Medications[1]
		doses1, doses2 := doseTimes[name1], doseTimes[name2]

		for _, d1 := range doses1 {
			for _, d2 := range doses2 {
				gap := d1.Sub(d2)
				if gap < 0 {
					gap = -gap
				}
				actualGapHours := gap.Hours()
				if actualGapHours >= f.MinGapHours {
					continue
				}
				out = append(out, domain.TimingInteraction{
					Medication1:     domain.ScheduledDose{Name: name1, ScheduledTime: d1},
					Medication2:     domain.ScheduledDose{Name: name2, ScheduledTime: d2},
					MinimumGapHours: f.MinGapHours,
					ActualGapHours:  actualGapHours,
					Recommendation: fmt.Sprintf(
						"take %s and %s at least %.1f hours apart",
						name1, name2, f.MinGapHours),
				})
			}
		}
	}

	return out
}

// Escalate implements Service.Escalate.
func (s *safetyServiceImpl) Escalate(
	assessment *domain.SafetyAssessment,
	status domain.EmergencyStatus,
) (Escalation, error) {
	if assessment == nil {
		return Escalation{}, ErrNilAssessment
	}

	scoreLevel := s.levelForScore(assessment)
	adherenceLevel := s.levelForMissedDoses(status.MissedDoses)

	// Two orthogonal risk signals; the more severe classification wins.
	level := scoreLevel
	if escalationRank(adherenceLevel) > escalationRank(scoreLevel) {
		level = adherenceLevel
	}

	return s.buildEscalation(level, assessment, status), nil
}

// levelForScore maps a safety assessment to its base tier. Any pair
// requiring immediate attention is an emergency regardless of the numeric
// score.
func (s *safetyServiceImpl) levelForScore(assessment *domain.SafetyAssessment) EscalationLevel {
	for _, r := range assessment.Interactions {
		if r.RequiresImmediateAttention {
			return EscalationEmergency
		}
	}

	t := s.params.Thresholds
	switch {
	case assessment.Score >= t.Optimal:
		return EscalationOptimal
	case assessment.Score >= t.Safe:
		return EscalationSafe
	case assessment.Score <= t.Unsafe:
		return EscalationUnsafe
	default:
		return EscalationCaution
	}
}

// levelForMissedDoses maps adherence history to a tier independent of the
// interaction score.
func (s *safetyServiceImpl) levelForMissedDoses(missed int) EscalationLevel {
	switch {
	case missed >= s.params.MissedDosesEmergency:
		return EscalationEmergency
	case missed >= s.params.MissedDosesCaution:
		return EscalationCaution
	default:
		return EscalationOptimal
	}
}

// buildEscalation assembles the required actions for a tier.
func (s *safetyServiceImpl) buildEscalation(
	level EscalationLevel,
	assessment *domain.SafetyAssessment,
	status domain.EmergencyStatus,
) Escalation {
	e := Escalation{Level: level, RequiredActions: []string{}}

	switch level {
	case EscalationEmergency:
		e.NotifyEmergencyContact = true
		e.RequiredActions = append(e.RequiredActions,
			"contact the prescribing physician immediately")
		for _, r := range assessment.Interactions {
			if r.RequiresImmediateAttention && r.EmergencyInstructions != "" {
				e.RequiredActions = append(e.RequiredActions, r.EmergencyInstructions)
			}
		}
	case EscalationUnsafe:
		e.NotifyEmergencyContact = true
		e.RequiredActions = append(e.RequiredActions,
			"do not take the next dose until a pharmacist reviews this combination")
	case EscalationCaution:
		e.RequiredActions = append(e.RequiredActions,
			"review the flagged interactions with a pharmacist")
	}

	if status.MissedDoses >= s.params.MissedDosesCaution {
		e.RequiredActions = append(e.RequiredActions,
			fmt.Sprintf("%d doses missed; confirm the medication plan is still being followed", status.MissedDoses))
	}

	return e
}

// SaferAlternatives implements Service.SaferAlternatives.
func (s *safetyServiceImpl) SaferAlternatives(
	ctx context.Context,
	candidates []*domain.Medication,
	current []*domain.Medication,
	criteria domain.AlternativeCriteria,
) ([]Alternative, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	avoid := make(map[string]bool, len(criteria.AvoidWith))
	for _, name := range criteria.AvoidWith {
		avoid[normalizeName(name)] = true
	}
	taken := make(map[string]bool, len(current))
	for _, m := range current {
		if m != nil {
			taken[m.NormalizedName()] = true
		}
	}

	alternatives := make([]Alternative, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil {
			return nil, ErrNilMedication
		}
		name := candidate.NormalizedName()
		if avoid[name] || taken[name] {
			continue
		}

		score := 1.0
		if len(current) > 0 {
			assessment, err := s.AssessSafety(ctx, append(append([]*domain.Medication{}, current...), candidate), nil, time.Now().UTC())
			if err != nil {
				log.Warn("skipping alternative after assessment failure",
					slog.String("candidate", name),
					slog.String("error", err.Error()))
				continue
			}
			score = assessment.Score
		}

		if score < criteria.MinSafetyScore {
			continue
		}
		alternatives = append(alternatives, Alternative{Medication: candidate, Score: score})
	}

	// Deterministic ordering: highest safety score first, ties by name.
	sort.Slice(alternatives, func(i, j int) bool {
		if alternatives[i].Score != alternatives[j].Score {
			return alternatives[i].Score > alternatives[j].Score
		}
		return alternatives[i].Medication.NormalizedName() < alternatives[j].Medication.NormalizedName()
	})

	return alternatives, nil
}

// ClearCache implements Service.ClearCache.
func (s *safetyServiceImpl) ClearCache() {
	s.cache.clear()
}

// severityWeight returns the normalized risk weight for a severity.
func (s *safetyServiceImpl) severityWeight(severity domain.Severity) float64 {
	return s.params.SeverityWeights[severity]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// escalationRank orders tiers for worst-of combination.
func escalationRank(level EscalationLevel) int {
	switch level {
	case EscalationOptimal:
		return 0
	case EscalationSafe:
		return 1
	case EscalationCaution:
		return 2
	case EscalationUnsafe:
		return 3
	case EscalationEmergency:
		return 4
	default:
		return 0
	}
}
