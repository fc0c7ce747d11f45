package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const minProductionSecretLen = 32

// ValidateConfig checks if the configuration meets the requirements for the
// current environment. All problems are reported together.
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverMySQL:
		if cfg.DatabaseURL == "" {
			if cfg.DBHost == "" {
				add("DB_HOST", "is required")
			}
			if cfg.DBUser == "" {
				add("DB_USER", "is required")
			}
			if cfg.DBName == "" {
				add("DB_NAME", "is required")
			}
			if cfg.Environment == Production && cfg.DBPassword == "" {
				add("DB_PASSWORD", "is required in production")
			}
		}
	case DriverSQLite:
		if cfg.DatabaseURL == "" && cfg.DBName == "" {
			add("DB_NAME", "must name the sqlite database file")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	} else if cfg.Environment == Production && len(cfg.JWTSecret) < minProductionSecretLen {
		add("JWT_SECRET", fmt.Sprintf("must be at least %d characters in production", minProductionSecretLen))
	}
	if cfg.JWTTTL <= 0 {
		add("JWT_TTL", "must be positive")
	}

	switch cfg.ClassifierBackend {
	case ClassifierHTTP, ClassifierRekognition:
	default:
		add("CLASSIFIER_BACKEND", fmt.Sprintf("unsupported backend %q", cfg.ClassifierBackend))
	}

	if _, err := time.LoadLocation(cfg.AppTimezone); err != nil {
		add("APP_TIMEZONE", fmt.Sprintf("unknown time zone %q", cfg.AppTimezone))
	}
	if cfg.ExternalTimeout <= 0 {
		add("EXTERNAL_TIMEOUT", "must be positive")
	}
	if cfg.RateLimitPerHour < 0 {
		add("RATE_LIMIT_PER_HOUR", "must not be negative")
	}
	if cfg.LLMTemperature < 0 || cfg.LLMTemperature > 2 {
		add("LLM_TEMPERATURE", "must be between 0 and 2")
	}

	if len(errs) > 0 {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
	}

	return nil
}
