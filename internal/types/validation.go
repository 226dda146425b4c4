package types

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// StructValidator returns the shared validator instance. Field names in errors use
// the json tag so that messages match the wire format.
func StructValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("finite", isFinite)
	})
	return validate
}

// isFinite rejects NaN and the infinities. Non-float fields pass.
func isFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// FieldViolation describes a single failed validation rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidateStruct validates s and returns an *AppError carrying the given code
// and a "fields" detail listing each violation. Returns nil when s is valid.
func ValidateStruct(s any, code ErrorCode, message string) error {
	err := StructValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return NewAppError(code, message, err)
	}

	violations := make([]FieldViolation, len(validationErrs))
	for i, fe := range validationErrs {
		violations[i] = FieldViolation{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Message: translateError(fe),
		}
	}
	return NewAppErrorWithDetails(code, message, err, map[string]any{"fields": violations})
}

// fieldPath strips the top-level struct name from the namespace so that
// "CafeDetails.closed_weekdays[0]" becomes "closed_weekdays[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"finite":   "%s must be a finite number",
}

var errorMessageWithParam = map[string]string{
	"gte": "%s must be greater than or equal to %s",
	"lte": "%s must be less than or equal to %s",
}

func translateError(fe validator.FieldError) string {
	field := fieldPath(fe)
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
