package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests use t.Setenv, which precludes t.Parallel.

func TestLoadRequiresBaseURL(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "BaseURL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOSEWISE_INTERACTION_BASE_URL", "https://interactions.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "https://interactions.example.com", cfg.Interaction.BaseURL)
	assert.Equal(t, 5000, cfg.Interaction.TimeoutMS)
	assert.Equal(t, 3, cfg.Interaction.RetryAttempts)
	assert.Equal(t, 7, cfg.Safety.CacheDurationDays)
	assert.Equal(t, 1000, cfg.Safety.MaxCacheSize)
	assert.InDelta(t, 0.9, cfg.Safety.EmergencyThreshold, 0.001)
	assert.Equal(t, 15, cfg.Dosing.MinDoseIntervalMinutes)
	assert.InDelta(t, 2.0, cfg.Dosing.MinTimeBetweenMedsHours, 0.001)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DOSEWISE_INTERACTION_BASE_URL", "https://interactions.example.com")
	t.Setenv("DOSEWISE_SERVER_PORT", "9090")
	t.Setenv("DOSEWISE_SERVER_LOG_LEVEL", "debug")
	t.Setenv("DOSEWISE_SAFETY_MAX_CACHE_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 50, cfg.Safety.MaxCacheSize)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("DOSEWISE_INTERACTION_BASE_URL", "https://interactions.example.com")
	t.Setenv("DOSEWISE_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogLevel")
}
