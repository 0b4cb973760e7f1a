package shared

import (
	"context"
	"testing"
)

func TestTraceIDRoundTrip(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)

	if traceID == "" {
		t.Fatal("Expected a trace ID to be set")
	}
	if len(traceID) != 2*TraceIDLength {
		t.Errorf("Expected %d hex characters, got %d", 2*TraceIDLength, len(traceID))
	}

	// Each request gets a fresh ID.
	other := GetTraceID(SetTraceID(context.Background()))
	if other == traceID {
		t.Error("Expected distinct trace IDs for distinct contexts")
	}
}

func TestGetTraceIDMissing(t *testing.T) {
	t.Parallel() // Enable parallel execution

	if got := GetTraceID(context.Background()); got != "" {
		t.Errorf("Expected empty trace ID for bare context, got %q", got)
	}
}
