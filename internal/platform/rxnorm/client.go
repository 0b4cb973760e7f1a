package rxnorm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/dosewise/dosewise-api/internal/interaction"
	"golang.org/x/time/rate"
)

// Verify interface compliance at compile time
var _ interaction.Provider = (*Client)(nil)

// Config holds the settings for the interaction data API client.
type Config struct {
	// BaseURL is the root of the interaction API, without a trailing slash.
	BaseURL string

	// Timeout bounds each individual HTTP call.
	Timeout time.Duration

	// MaxRetries is how many times a transient failure is retried before the
	// lookup is given up. The total number of attempts is MaxRetries+1.
	MaxRetries int

	// RetryBaseDelay is the first backoff delay; subsequent delays double
	// with jitter applied.
	RetryBaseDelay time.Duration

	// RequestsPerSecond rate-limits outgoing calls to stay within the data
	// provider's usage policy. Zero disables limiting.
	RequestsPerSecond float64
}

// Client implements interaction.Provider using a drug/herb interaction HTTP
// API with retries, backoff, and rate limiting.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewClient creates a new interaction data API client with the provided
// configuration.
func NewClient(cfg Config, log *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", interaction.ErrInvalidConfig)
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", interaction.ErrInvalidConfig, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = 500 * time.Millisecond
	}
	if log == nil {
		log = slog.Default()
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay,
		logger:     log.With(slog.String("component", "rxnorm_client")),
	}, nil
}

// GetDrugInteractions implements interaction.Provider.
func (c *Client) GetDrugInteractions(ctx context.Context, name string) (*interaction.DrugInteractionData, error) {
	resp, err := c.lookupWithRetry(ctx, "/interactions/drug", name)
	if err != nil {
		return nil, err
	}
	return &interaction.DrugInteractionData{
		Name:         resp.Name,
		Interactions: toFacts(resp.Interactions),
	}, nil
}

// GetHerbInfo implements interaction.Provider.
func (c *Client) GetHerbInfo(ctx context.Context, name string) (*interaction.HerbInteractionData, error) {
	resp, err := c.lookupWithRetry(ctx, "/interactions/herb", name)
	if err != nil {
		return nil, err
	}
	return &interaction.HerbInteractionData{
		Name:         resp.Name,
		Interactions: toFacts(resp.Interactions),
	}, nil
}

// lookupWithRetry performs the lookup with exponential backoff retry logic.
// Transient failures (network errors, 5xx, 429) are retried up to maxRetries
// times; permanent failures (not found, malformed response) return
// immediately.
func (c *Client) lookupWithRetry(ctx context.Context, path, name string) (*lookupResponse, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: medication name cannot be empty", interaction.ErrLookupFailed)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", interaction.ErrTransientFailure, err)
		}

		resp, err := c.lookup(ctx, path, name)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if errors.Is(err, interaction.ErrNotFound) || errors.Is(err, interaction.ErrInvalidResponse) {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}

		// Exponential backoff with jitter:
		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		// Lookups fan out concurrently, so the jitter draw uses the locked
		// top-level rand.
		backoff := float64(c.baseDelay) * math.Pow(2, float64(attempt))
		jitter := 0.5 + rand.Float64()*0.5
		delay := time.Duration(backoff * jitter)

		c.logger.Warn("interaction lookup failed, retrying",
			slog.String("path", path),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", interaction.ErrTransientFailure, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: exceeded %d retry attempts: %v",
		interaction.ErrTransientFailure, c.maxRetries, lastErr)
}

// lookup performs a single HTTP call and maps status codes onto the
// interaction package's sentinel errors.
func (c *Client) lookup(ctx context.Context, path, name string) (*lookupResponse, error) {
	u := fmt.Sprintf("%s%s?name=%s", c.baseURL, path, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interaction.ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interaction.ErrTransientFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", interaction.ErrNotFound, name)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", interaction.ErrTransientFailure, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", interaction.ErrInvalidResponse, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interaction.ErrTransientFailure, err)
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", interaction.ErrInvalidResponse, err)
	}

	return &parsed, nil
}

// toFacts converts wire payloads to interaction facts.
func toFacts(payloads []interactionPayload) []interaction.InteractionFact {
	facts := make([]interaction.InteractionFact, 0, len(payloads))
	for _, p := range payloads {
		facts = append(facts, interaction.InteractionFact{
			WithMedication:        p.WithMedication,
			Severity:              parseSeverity(p.Severity),
			Description:           p.Description,
			Source:                p.Source,
			Contraindicated:       p.Contraindicated,
			MinimumGapHours:       p.MinimumGapHours,
			Recommendations:       p.Recommendations,
			EmergencyInstructions: p.EmergencyInstructions,
		})
	}
	return facts
}
