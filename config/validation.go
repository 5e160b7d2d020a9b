package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable for the current
// environment. Development and test accept the built-in defaults;
// production must provide real secrets.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}.Error())
	}
	if cfg.DBHost == "" {
		errors = append(errors, ValidationError{Field: "DB_HOST", Message: "must not be empty"}.Error())
	}
	if cfg.DBName == "" {
		errors = append(errors, ValidationError{Field: "DB_NAME", Message: "must not be empty"}.Error())
	}

	if IsProduction() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == "your-secret-key" {
			errors = append(errors, ValidationError{Field: "JWT_SECRET", Message: "must be set explicitly in production"}.Error())
		}
		if cfg.DBPassword == "" || cfg.DBPassword == "postgres" {
			errors = append(errors, ValidationError{Field: "DB_PASSWORD", Message: "must be set explicitly in production"}.Error())
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
