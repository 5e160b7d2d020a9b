package config

import (
	"os"
)

// Environment names the runtime the service was started in. It decides
// how strictly ValidateConfig treats the built-in defaults.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the current environment: CI is detected from
// the runner's CI variable, everything else comes from ENV, defaulting
// to development for local runs.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch env := os.Getenv("ENV"); env {
	case "production":
		return Production
	case "test":
		return Test
	case "development":
		return Development
	default:
		return Development
	}
}

// IsDevelopment reports whether the service runs in development mode.
func IsDevelopment() bool {
	return GetEnvironment() == Development
}

// IsTest reports whether the service runs under the test environment.
func IsTest() bool {
	return GetEnvironment() == Test
}

// IsCI reports whether the service runs on a CI runner.
func IsCI() bool {
	return GetEnvironment() == CI
}

// IsProduction reports whether the service runs in production, where
// default credentials and secrets are rejected.
func IsProduction() bool {
	return GetEnvironment() == Production
}
