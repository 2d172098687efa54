package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces every environment variable the application reads,
// e.g. SRSAPI_SERVER_PORT or SRSAPI_DATABASE_URL.
const envPrefix = "SRSAPI"

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over file values. Returns a populated Config struct or an
// error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment can carry
		// everything. Anything else (unreadable, malformed) is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// AutomaticEnv alone does not surface env-only keys through Unmarshal;
	// binding each known key explicitly makes the precedence reliable.
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.url",
		"srs.default_ease_factor", "srs.min_ease_factor", "srs.max_ease_factor",
		"srs.again_ease_penalty", "srs.hard_ease_penalty", "srs.easy_ease_bonus",
		"srs.hard_multiplier", "srs.good_multiplier", "srs.easy_multiplier",
		"srs.again_step", "srs.hard_step", "srs.good_step", "srs.easy_graduate_step",
		"srs.lapse_interval", "srs.max_interval",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
