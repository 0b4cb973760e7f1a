package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel() // Enable parallel execution

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]string{"status": "ok"})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected valid JSON body, got error %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestRespondWithErrorAndLogHidesInternalError(t *testing.T) {
	t.Parallel() // Enable parallel execution

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	w := httptest.NewRecorder()

	internal := errors.New("provider https://api.example.com/drug?name=warfarin returned 500")
	RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "Failed to check interactions", internal)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON body, got error %v", err)
	}
	if resp.Error != "Failed to check interactions" {
		t.Errorf("Expected sanitized message, got %q", resp.Error)
	}
	if resp.TraceID == "" {
		t.Error("Expected trace ID in error response")
	}

	// The raw internal error never reaches the client.
	if bodyStr := w.Body.String(); strings.Contains(bodyStr, "warfarin") || strings.Contains(bodyStr, "api.example.com") {
		t.Errorf("Internal error leaked to client: %s", bodyStr)
	}
}
