// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dosewise/dosewise-api/internal/api/shared"
	"github.com/dosewise/dosewise-api/internal/domain"
	"github.com/dosewise/dosewise-api/internal/domain/dosing"
	"github.com/dosewise/dosewise-api/internal/platform/logger"
	"github.com/google/uuid"
)

// ScheduleHandler handles schedule validation, recurrence, and conflict
// requests.
type ScheduleHandler struct {
	dosingService dosing.Service
	logger        *slog.Logger
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(dosingService dosing.Service, log *slog.Logger) *ScheduleHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ScheduleHandler")
	}
	return &ScheduleHandler{
		dosingService: dosingService,
		logger:        log.With(slog.String("component", "schedule_handler")),
	}
}

// ValidateScheduleRequest is the request body for POST /schedules/validate.
type ValidateScheduleRequest struct {
	Schedule ScheduleInput `json:"schedule" validate:"required"`
}

// ValidateSchedule handles POST /schedules/validate requests. It runs every
// per-type safety rule and returns all violations at once; rule failures are
// a 200 response with is_valid=false, not an HTTP error.
func (h *ScheduleHandler) ValidateSchedule(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ValidateScheduleRequest
	schedule, ok := h.decodeSchedule(w, r, &req, &req.Schedule)
	if !ok {
		return
	}

	result, err := h.dosingService.ValidateSchedule(schedule, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to validate schedule", err)
		return
	}

	log.Debug("schedule validated",
		slog.String("schedule_id", schedule.ID.String()),
		slog.Bool("is_valid", result.IsValid),
		slog.Int("errors", len(result.Errors)))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// NextOccurrenceRequest is the request body for POST /schedules/next-occurrence.
type NextOccurrenceRequest struct {
	Schedule ScheduleInput `json:"schedule" validate:"required"`
	After    *time.Time    `json:"after,omitempty"`
}

// NextOccurrence handles POST /schedules/next-occurrence requests.
// Responds 204 when the schedule has no upcoming occurrence.
func (h *ScheduleHandler) NextOccurrence(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req NextOccurrenceRequest
	schedule, ok := h.decodeSchedule(w, r, &req, &req.Schedule)
	if !ok {
		return
	}

	after := time.Now().UTC()
	if req.After != nil {
		after = req.After.UTC()
	}

	next, err := h.dosingService.GetNextOccurrence(schedule, after)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to compute next occurrence", err)
		return
	}

	if !next.Found {
		log.Debug("no upcoming occurrence",
			slog.String("schedule_id", schedule.ID.String()),
			slog.Bool("exhausted", next.Exhausted))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NextOccurrenceResponse{
		At:        &next.At,
		Exhausted: next.Exhausted,
	})
}

// ConflictsRequest is the request body for POST /schedules/conflicts.
type ConflictsRequest struct {
	Candidate ScheduleInput     `json:"candidate" validate:"required"`
	Existing  []ScheduleInput   `json:"existing" validate:"dive"`
	Names     map[string]string `json:"medication_names,omitempty"`
}

// DetectConflicts handles POST /schedules/conflicts requests.
func (h *ScheduleHandler) DetectConflicts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ConflictsRequest
	candidate, ok := h.decodeSchedule(w, r, &req, &req.Candidate)
	if !ok {
		return
	}

	existing := make([]*domain.Schedule, 0, len(req.Existing))
	for i := range req.Existing {
		s, err := req.Existing[i].toDomain()
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid existing schedule")
			return
		}
		existing = append(existing, s)
	}

	names := make(map[uuid.UUID]string, len(req.Names))
	for idStr, name := range req.Names {
		id, err := uuid.Parse(idStr)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid medication ID in names")
			return
		}
		names[id] = name
	}

	conflicts, err := h.dosingService.DetectConflicts(existing, names, candidate, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to detect conflicts", err)
		return
	}

	log.Debug("conflict detection complete",
		slog.String("candidate_id", candidate.ID.String()),
		slog.Int("existing", len(existing)),
		slog.Int("conflicts", len(conflicts)))
	shared.RespondWithJSON(w, r, http.StatusOK, conflicts)
}

// decodeSchedule decodes and validates a request carrying one primary
// schedule input, writing the error response itself on failure.
func (h *ScheduleHandler) decodeSchedule(
	w http.ResponseWriter,
	r *http.Request,
	req interface{},
	input *ScheduleInput,
) (*domain.Schedule, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := shared.DecodeJSON(r, req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return nil, false
	}

	schedule, err := input.toDomain()
	if err != nil {
		log.Warn("malformed schedule", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Malformed schedule: "+err.Error())
		return nil, false
	}
	return schedule, true
}
