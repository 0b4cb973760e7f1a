package rxnorm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosewise/dosewise-api/internal/domain"
	"github.com/dosewise/dosewise-api/internal/interaction"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		Timeout:        time.Second,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
	}
}

func TestNewClientConfigValidation(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{}, nil)
	assert.ErrorIs(t, err, interaction.ErrInvalidConfig)

	client, err := NewClient(Config{BaseURL: "http://localhost:9999"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestGetDrugInteractions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interactions/drug", r.URL.Path)
		assert.Equal(t, "warfarin", r.URL.Query().Get("name"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "warfarin",
			"interactions": [
				{
					"with_medication": "aspirin",
					"severity": "major",
					"description": "increased bleeding risk",
					"source": "drugbank",
					"minimum_gap_hours": 4,
					"recommendations": ["monitor INR closely"]
				}
			]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	data, err := client.GetDrugInteractions(context.Background(), "warfarin")

	require.NoError(t, err)
	assert.Equal(t, "warfarin", data.Name)
	require.Len(t, data.Interactions, 1)

	fact := data.Interactions[0]
	assert.Equal(t, "aspirin", fact.WithMedication)
	assert.Equal(t, domain.SeverityHigh, fact.Severity, "provider label 'major' maps to high")
	assert.Equal(t, 4.0, fact.MinimumGapHours)
	assert.Equal(t, []string{"monitor INR closely"}, fact.Recommendations)
}

func TestGetHerbInfo(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interactions/herb", r.URL.Path)
		_, _ = w.Write([]byte(`{"name": "st. john's wort", "interactions": []}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	data, err := client.GetHerbInfo(context.Background(), "st. john's wort")

	require.NoError(t, err)
	assert.Equal(t, "st. john's wort", data.Name)
	assert.Empty(t, data.Interactions)
}

func TestLookupNotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = client.GetDrugInteractions(context.Background(), "unobtainium")

	assert.ErrorIs(t, err, interaction.ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "404 is permanent and must not retry")
}

func TestLookupRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"name": "warfarin", "interactions": []}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	data, err := client.GetDrugInteractions(context.Background(), "warfarin")

	require.NoError(t, err)
	assert.Equal(t, "warfarin", data.Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "two 500s then success")
}

func TestLookupRetriesConcurrently(t *testing.T) {
	t.Parallel()

	// Interaction lookups fan out across goroutines, so the retry path's
	// jitter draw must be safe under the race detector.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	const lookups = 8
	errs := make(chan error, lookups)
	for i := 0; i < lookups; i++ {
		go func() {
			_, err := client.GetDrugInteractions(context.Background(), "warfarin")
			errs <- err
		}()
	}

	for i := 0; i < lookups; i++ {
		assert.ErrorIs(t, <-errs, interaction.ErrTransientFailure)
	}
}

func TestLookupExhaustsRetries(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = client.GetDrugInteractions(context.Background(), "warfarin")

	assert.ErrorIs(t, err, interaction.ErrTransientFailure)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "MaxRetries=2 means three attempts")
}

func TestLookupMalformedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "warfarin", "interactions": [`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = client.GetDrugInteractions(context.Background(), "warfarin")

	assert.ErrorIs(t, err, interaction.ErrInvalidResponse)
}

func TestLookupEmptyName(t *testing.T) {
	t.Parallel()

	client, err := NewClient(testConfig("http://localhost:9999"), nil)
	require.NoError(t, err)

	_, err = client.GetDrugInteractions(context.Background(), "")
	assert.ErrorIs(t, err, interaction.ErrLookupFailed)
}

func TestLookupHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.RetryBaseDelay = time.Minute // force the retry wait to dominate
	client, err := NewClient(cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.GetDrugInteractions(ctx, "warfarin")
	assert.ErrorIs(t, err, interaction.ErrTransientFailure)
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected domain.Severity
	}{
		{"low", domain.SeverityLow},
		{"minor", domain.SeverityLow},
		{"Moderate", domain.SeverityModerate},
		{"medium", domain.SeverityModerate},
		{"high", domain.SeverityHigh},
		{"MAJOR", domain.SeverityHigh},
		{"severe", domain.SeveritySevere},
		{"critical", domain.SeveritySevere},
		{"", domain.SeverityUnknown},
		{"something-new", domain.SeverityUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseSeverity(tc.input))
		})
	}
}
