package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Interaction InteractionConfig `mapstructure:"interaction" validate:"required"`
	Safety      SafetyConfig      `mapstructure:"safety"`
	Dosing      DosingConfig      `mapstructure:"dosing"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// InteractionConfig configures the external interaction data provider client.
type InteractionConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	TimeoutMS         int     `mapstructure:"timeout_ms" validate:"gte=0"`
	RetryAttempts     int     `mapstructure:"retry_attempts" validate:"gte=0,lte=10"`
	RetryBaseDelayMS  int     `mapstructure:"retry_base_delay_ms" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
}

// SafetyConfig tunes interaction aggregation and escalation. Zero values fall
// back to the safety package defaults.
type SafetyConfig struct {
	CacheDurationDays  int     `mapstructure:"cache_duration_days" validate:"gte=0"`
	MaxCacheSize       int     `mapstructure:"max_cache_size" validate:"gte=0"`
	EmergencyThreshold float64 `mapstructure:"emergency_threshold" validate:"gte=0,lte=1"`
}

// DosingConfig tunes schedule validation and conflict detection. Zero values
// fall back to the dosing package defaults.
type DosingConfig struct {
	MinDoseIntervalMinutes  int     `mapstructure:"min_dose_interval_minutes" validate:"gte=0"`
	MinTimeBetweenMedsHours float64 `mapstructure:"min_time_between_meds_hours" validate:"gte=0"`
	MaxDailyDoses           int     `mapstructure:"max_daily_doses" validate:"gte=0"`
}
