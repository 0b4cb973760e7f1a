package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dosewise/dosewise-api/internal/config"
	"github.com/dosewise/dosewise-api/internal/domain/dosing"
	"github.com/dosewise/dosewise-api/internal/events"
	"github.com/dosewise/dosewise-api/internal/platform/logger"
	"github.com/dosewise/dosewise-api/internal/platform/rxnorm"
	"github.com/dosewise/dosewise-api/internal/service/safety"
)

// application holds the wired dependencies of the server.
type application struct {
	config        *config.Config
	logger        *slog.Logger
	dosingService dosing.Service
	safetyService safety.Service
	alertEmitter  events.AlertEmitter
}

// newApplication loads configuration and wires every service. The interaction
// cache lives inside the safety service instance; nothing here is global.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)

	provider, err := rxnorm.NewClient(rxnorm.Config{
		BaseURL:           cfg.Interaction.BaseURL,
		Timeout:           time.Duration(cfg.Interaction.TimeoutMS) * time.Millisecond,
		MaxRetries:        cfg.Interaction.RetryAttempts,
		RetryBaseDelay:    time.Duration(cfg.Interaction.RetryBaseDelayMS) * time.Millisecond,
		RequestsPerSecond: cfg.Interaction.RequestsPerSecond,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create interaction provider: %w", err)
	}

	dosingService := dosing.NewServiceWithParams(dosing.NewParams(dosing.ParamsConfig{
		MinDoseIntervalMinutes:  cfg.Dosing.MinDoseIntervalMinutes,
		MinTimeBetweenMedsHours: cfg.Dosing.MinTimeBetweenMedsHours,
		MaxDailyDoses:           cfg.Dosing.MaxDailyDoses,
	}))

	safetyParams := safety.NewDefaultParams()
	if cfg.Safety.CacheDurationDays > 0 {
		safetyParams.CacheTTL = time.Duration(cfg.Safety.CacheDurationDays) * 24 * time.Hour
	}
	if cfg.Safety.MaxCacheSize > 0 {
		safetyParams.MaxCacheSize = cfg.Safety.MaxCacheSize
	}
	if cfg.Safety.EmergencyThreshold > 0 {
		safetyParams.EmergencyThreshold = cfg.Safety.EmergencyThreshold
	}
	if cfg.Interaction.TimeoutMS > 0 {
		safetyParams.LookupTimeout = time.Duration(cfg.Interaction.TimeoutMS) * time.Millisecond
	}

	safetyService := safety.NewService(provider, dosingService, safetyParams, log)

	// Until a real delivery channel exists, emergency alerts land in the log.
	alertEmitter := events.NewInMemoryAlertEmitter(log)
	alertEmitter.RegisterHandler(events.NewLogHandler(log))

	return &application{
		config:        cfg,
		logger:        log,
		dosingService: dosingService,
		safetyService: safetyService,
		alertEmitter:  alertEmitter,
	}, nil
}
