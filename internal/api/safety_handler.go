package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dosewise/dosewise-api/internal/api/shared"
	"github.com/dosewise/dosewise-api/internal/domain"
	"github.com/dosewise/dosewise-api/internal/events"
	"github.com/dosewise/dosewise-api/internal/platform/logger"
	"github.com/dosewise/dosewise-api/internal/service/safety"
	"github.com/google/uuid"
)

// SafetyHandler handles interaction checks, safety assessments, and
// alternative lookups.
type SafetyHandler struct {
	safetyService safety.Service
	alerts        events.AlertEmitter
	logger        *slog.Logger
}

// NewSafetyHandler creates a new SafetyHandler. The alert emitter may be nil,
// in which case escalations are returned to the caller but never published.
func NewSafetyHandler(safetyService safety.Service, alerts events.AlertEmitter, log *slog.Logger) *SafetyHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SafetyHandler")
	}
	return &SafetyHandler{
		safetyService: safetyService,
		alerts:        alerts,
		logger:        log.With(slog.String("component", "safety_handler")),
	}
}

// InteractionsRequest is the request body for POST /safety/interactions and
// POST /safety/assessment.
type InteractionsRequest struct {
	UserID      string            `json:"user_id" validate:"required,uuid"`
	Medications []MedicationInput `json:"medications" validate:"required,min=2,dive"`
	Schedules   []ScheduleInput   `json:"schedules,omitempty" validate:"dive"`
	MissedDoses int               `json:"missed_doses,omitempty" validate:"gte=0"`
}

// CheckInteractions handles POST /safety/interactions requests.
func (h *SafetyHandler) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, medications, _, ok := h.decodeInteractionsRequest(w, r)
	if !ok {
		return
	}

	results, err := h.safetyService.CheckInteractions(r.Context(), medications)
	if err != nil {
		if errors.Is(err, safety.ErrNoMedications) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "At least two medications are required")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to check interactions", err)
		return
	}

	log.Debug("interaction check complete",
		slog.String("user_id", req.UserID),
		slog.Int("medications", len(medications)),
		slog.Int("interactions", len(results)))
	shared.RespondWithJSON(w, r, http.StatusOK, results)
}

// AssessmentResponse pairs the aggregate assessment with its escalation.
type AssessmentResponse struct {
	Assessment *domain.SafetyAssessment `json:"assessment"`
	Escalation safety.Escalation        `json:"escalation"`
}

// AssessSafety handles POST /safety/assessment requests.
func (h *SafetyHandler) AssessSafety(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, medications, schedules, ok := h.decodeInteractionsRequest(w, r)
	if !ok {
		return
	}

	assessment, err := h.safetyService.AssessSafety(r.Context(), medications, schedules, time.Now().UTC())
	if err != nil {
		if errors.Is(err, safety.ErrNoMedications) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "At least two medications are required")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to assess safety", err)
		return
	}

	escalation, err := h.safetyService.Escalate(assessment, domain.EmergencyStatus{MissedDoses: req.MissedDoses})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to compute escalation", err)
		return
	}

	if escalation.NotifyEmergencyContact {
		h.emitAlert(r, req.UserID, assessment, escalation)
	}

	log.Debug("safety assessment complete",
		slog.String("user_id", req.UserID),
		slog.Float64("score", assessment.Score),
		slog.String("level", string(escalation.Level)))
	shared.RespondWithJSON(w, r, http.StatusOK, AssessmentResponse{
		Assessment: assessment,
		Escalation: escalation,
	})
}

// EmergencyAlertPayload is the payload of emergency alert events published to
// notification channels.
type EmergencyAlertPayload struct {
	UserID          string   `json:"user_id"`
	Level           string   `json:"level"`
	Score           float64  `json:"score"`
	RequiredActions []string `json:"required_actions"`
}

// emitAlert publishes an emergency alert event. Delivery failures are logged
// but never fail the request; the escalation is already in the response body.
func (h *SafetyHandler) emitAlert(r *http.Request, userID string, assessment *domain.SafetyAssessment, escalation safety.Escalation) {
	if h.alerts == nil {
		return
	}
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	event, err := events.NewAlertEvent(events.EventTypeEmergencyAlert, EmergencyAlertPayload{
		UserID:          userID,
		Level:           string(escalation.Level),
		Score:           assessment.Score,
		RequiredActions: escalation.RequiredActions,
	})
	if err != nil {
		log.Error("failed to build alert event", slog.String("error", err.Error()))
		return
	}
	if err := h.alerts.EmitEvent(r.Context(), event); err != nil {
		log.Error("failed to emit alert event",
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}

// AlternativesRequest is the request body for POST /safety/alternatives.
type AlternativesRequest struct {
	UserID         string            `json:"user_id" validate:"required,uuid"`
	Candidates     []MedicationInput `json:"candidates" validate:"required,min=1,dive"`
	Current        []MedicationInput `json:"current" validate:"dive"`
	MinSafetyScore float64           `json:"min_safety_score" validate:"gte=0,lte=1"`
	AvoidWith      []string          `json:"avoid_with,omitempty"`
}

// SaferAlternatives handles POST /safety/alternatives requests.
func (h *SafetyHandler) SaferAlternatives(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AlternativesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	candidates, err := toMedications(req.Candidates, userID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Malformed candidate medication")
		return
	}
	current, err := toMedications(req.Current, userID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Malformed current medication")
		return
	}

	alternatives, err := h.safetyService.SaferAlternatives(r.Context(), candidates, current,
		domain.AlternativeCriteria{
			MinSafetyScore: req.MinSafetyScore,
			AvoidWith:      req.AvoidWith,
		})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to find alternatives", err)
		return
	}

	log.Debug("alternatives search complete",
		slog.String("user_id", req.UserID),
		slog.Int("candidates", len(candidates)),
		slog.Int("results", len(alternatives)))
	shared.RespondWithJSON(w, r, http.StatusOK, alternatives)
}

// decodeInteractionsRequest decodes and validates the shared request body of
// the interactions and assessment endpoints, writing the error response
// itself on failure.
func (h *SafetyHandler) decodeInteractionsRequest(
	w http.ResponseWriter,
	r *http.Request,
) (*InteractionsRequest, []*domain.Medication, []*domain.Schedule, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req InteractionsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return nil, nil, nil, false
	}
	if err := shared.ValidateRequest(&req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return nil, nil, nil, false
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID format")
		return nil, nil, nil, false
	}

	medications, err := toMedications(req.Medications, userID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Malformed medication")
		return nil, nil, nil, false
	}

	schedules := make([]*domain.Schedule, 0, len(req.Schedules))
	for i := range req.Schedules {
		s, err := req.Schedules[i].toDomain()
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Malformed schedule")
			return nil, nil, nil, false
		}
		schedules = append(schedules, s)
	}

	return &req, medications, schedules, true
}

func toMedications(inputs []MedicationInput, userID uuid.UUID) ([]*domain.Medication, error) {
	medications := make([]*domain.Medication, 0, len(inputs))
	for i := range inputs {
		m, err := inputs[i].toDomain(userID)
		if err != nil {
			return nil, err
		}
		medications = append(medications, m)
	}
	return medications, nil
}
