package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Alert event types.
const (
	// EventTypeEmergencyAlert is emitted when an escalation requires the
	// emergency contact to be notified.
	EventTypeEmergencyAlert = "emergency_alert"
)

// AlertEvent represents a safety escalation that downstream channels (push,
// SMS, emergency contact) should act on. It carries the escalation data
// without direct dependencies on the safety package, so delivery integrations
// can be added without touching the engine.
type AlertEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates the kind of alert
	Type string `json:"type"`

	// Payload contains the alert-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *AlertEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewAlertEvent creates a new AlertEvent with the specified type and payload.
func NewAlertEvent(eventType string, payload interface{}) (*AlertEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &AlertEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// AlertHandler defines an interface for components that can handle alert
// events. Handlers are responsible for delivering or recording the alert.
type AlertHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *AlertEvent) error
}

// AlertEmitter defines an interface for components that can emit alert
// events. This allows handlers to publish escalations without direct
// knowledge of the delivery channels.
type AlertEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *AlertEvent) error
}
