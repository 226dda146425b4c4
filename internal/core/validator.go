package core

import (
	"log/slog"

	"lunchofficer/internal/types"
)

// Validator validates decoded request bodies with the shared
// go-playground/validator instance.
type Validator struct {
	logger *slog.Logger
}

// NewValidator creates a new Validator.
func NewValidator(logger *slog.Logger) *Validator {
	return &Validator{
		logger: logger,
	}
}

// ValidateStruct validates a request DTO. Failures are returned as an
// AppError with code code and per-field details.
func (v *Validator) ValidateStruct(s any, code types.ErrorCode, message string) error {
	err := types.ValidateStruct(s, code, message)
	if err != nil && v.logger != nil {
		v.logger.Debug("request validation failed", "error", err)
	}
	return err
}
