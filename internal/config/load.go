package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional config
// file. Environment variables use the DOSEWISE_ prefix with underscores for
// nesting (e.g. DOSEWISE_SERVER_PORT) and take precedence over file values.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("DOSEWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	// Empty default registers the key so AutomaticEnv can bind it.
	v.SetDefault("interaction.base_url", "")
	v.SetDefault("interaction.timeout_ms", 5000)
	v.SetDefault("interaction.retry_attempts", 3)
	v.SetDefault("interaction.retry_base_delay_ms", 500)
	v.SetDefault("interaction.requests_per_second", 10)

	v.SetDefault("safety.cache_duration_days", 7)
	v.SetDefault("safety.max_cache_size", 1000)
	v.SetDefault("safety.emergency_threshold", 0.9)

	v.SetDefault("dosing.min_dose_interval_minutes", 15)
	v.SetDefault("dosing.min_time_between_meds_hours", 2)
	v.SetDefault("dosing.max_daily_doses", 8)
}

// validate checks the populated config against its struct tags and returns a
// readable error naming every failed field.
func validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
