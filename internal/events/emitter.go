package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryAlertEmitter is a simple implementation of the AlertEmitter
// interface that stores registered handlers in memory and dispatches events
// to them.
type InMemoryAlertEmitter struct {
	handlers []AlertHandler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryAlertEmitter creates a new instance of InMemoryAlertEmitter.
func NewInMemoryAlertEmitter(logger *slog.Logger) *InMemoryAlertEmitter {
	return &InMemoryAlertEmitter{
		handlers: make([]AlertHandler, 0),
		logger:   logger.With("component", "in_memory_alert_emitter"),
	}
}

// RegisterHandler adds a new alert handler to receive events.
func (e *InMemoryAlertEmitter) RegisterHandler(handler AlertHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered new alert handler", "handler_count", len(e.handlers))
}

// EmitEvent publishes the given event to all registered handlers.
// If any handler returns an error, the event will still be sent to all other
// handlers, and the first error encountered will be returned.
func (e *InMemoryAlertEmitter) EmitEvent(ctx context.Context, event *AlertEvent) error {
	e.mu.RLock()
	handlers := make([]AlertHandler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	e.logger.Debug("emitting alert event",
		"event_id", event.ID,
		"event_type", event.Type,
		"handler_count", len(handlers))

	if len(handlers) == 0 {
		e.logger.Warn("no handlers registered for alert event",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process alert event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// LogHandler is an AlertHandler that records alerts in the structured log.
// It is the default sink until a real delivery channel is registered.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler writing to the given logger.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger.With("component", "alert_log_handler")}
}

// HandleEvent implements the AlertHandler interface.
func (h *LogHandler) HandleEvent(ctx context.Context, event *AlertEvent) error {
	h.logger.Warn("safety alert raised",
		"event_id", event.ID,
		"event_type", event.Type,
		"payload", string(event.Payload))
	return nil
}
