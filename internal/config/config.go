// Package config defines the process configuration for the lunch officer
// service. Configuration is loaded once at startup and is immutable thereafter.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File -> Struct Defaults (Lowest)
//
// Any missing required value or invalid format fails startup immediately.
package config

import "time"

// Config is the top-level configuration struct.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"lunchofficer"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Domain Configurations
	Server ServerConfig
	Lunch  LunchConfig

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s" validate:"gt=0"`
}

// LunchConfig holds decision defaults.
type LunchConfig struct {
	// CatalogPath points at the YAML cafe catalog served when a request does
	// not carry its own cafes.
	CatalogPath string `envconfig:"CATALOG_PATH" validate:"required"`

	// Timezone is used to derive "today" when a request omits the weekday.
	Timezone string `envconfig:"LUNCH_TIMEZONE" default:"UTC" validate:"required,timezone"`

	UnknownWeatherPolicy string `envconfig:"UNKNOWN_WEATHER_POLICY" default:"bad" validate:"oneof=bad good"`

	// Location is resolved from Timezone after validation.
	Location *time.Location `ignored:"true" validate:"-"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrMissingEnv indicates a required environment variable was not found.
	ErrMissingEnv ConfigErrorType = "MISSING_ENV"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
