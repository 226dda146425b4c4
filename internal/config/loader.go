// loader.go implements the configuration loading lifecycle.
//
// The loading sequence is:
//  1. Enforce UTC timezone to prevent drift bugs.
//  2. Load .env files via godotenv (non-fatal if absent).
//  3. Use envconfig to process struct tags and populate the Config struct.
//  4. Populate BuildInfo from linker-injected variables.
//  5. Validate the struct using go-playground/validator.
//  6. Resolve the lunch timezone.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigError is a diagnostic error type returned by LoadConfig.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// defaultDotenv is the dotenv file read from the working directory.
const defaultDotenv = ".env"

// LoadConfig loads and validates the configuration from the environment and
// an optional .env file in the working directory.
func LoadConfig() (*Config, error) {
	return loadConfig(defaultDotenv)
}

// loadConfig is the internal implementation of LoadConfig that accepts the
// dotenv files to read, for testing.
func loadConfig(dotenvFiles ...string) (*Config, error) {
	// Step 1: Enforce UTC timezone to prevent drift bugs.
	time.Local = time.UTC

	// Step 2: Load dotenv files. godotenv does NOT override existing
	// environment variables; a missing file is not an error.
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{
				Type:    ErrParsing,
				Message: fmt.Sprintf("failed to read dotenv file %s", file),
				Err:     err,
			}
		}
	}

	// Step 3: Process envconfig tags. The empty prefix means the exact tag
	// values are used as variable names.
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	// Step 4: Populate build metadata from linker-injected variables.
	cfg.Build = NewBuildInfo()

	// Step 5: Validate the populated struct.
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		errType := ErrValidation
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && onlyRequired(fieldErrs) {
			errType = ErrMissingEnv
		}
		return nil, &ConfigError{
			Type:    errType,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	// Step 6: Resolve the timezone. Validation guarantees it loads.
	loc, err := time.LoadLocation(cfg.Lunch.Timezone)
	if err != nil {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: fmt.Sprintf("unknown timezone %q", cfg.Lunch.Timezone),
			Err:     err,
		}
	}
	cfg.Lunch.Location = loc

	return &cfg, nil
}

// onlyRequired reports whether every failure is a missing required value.
func onlyRequired(errs validator.ValidationErrors) bool {
	for _, fe := range errs {
		if !strings.EqualFold(fe.Tag(), "required") {
			return false
		}
	}
	return len(errs) > 0
}
