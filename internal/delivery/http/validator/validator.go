// Package validator adapts go-playground/validator to echo's Validator
// interface and renders tag failures as field-level messages.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/VaibhavPTM/resort-sas-project/internal/delivery/http/response"

	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ValidationError carries the per-field failures of one request so the
// central error handler can render a 422 with field details.
type ValidationError struct {
	Fields []response.FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// RequestValidator implements echo.Validator.
type RequestValidator struct {
	validate *playground.Validate
}

// New creates the request validator. Field names in error output come from
// the json tag, matching what clients actually send.
func New() *RequestValidator {
	validate := playground.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &RequestValidator{validate: validate}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var tagErrs playground.ValidationErrors
	if !errors.As(err, &tagErrs) {
		return errors.WithStack(err)
	}

	fields := make([]response.FieldError, 0, len(tagErrs))
	for _, tagErr := range tagErrs {
		fields = append(fields, response.FieldError{
			Field:   tagErr.Field(),
			Message: fieldMessage(tagErr),
		})
	}

	return &ValidationError{Fields: fields}
}

// fieldMessage renders one tag failure as a user-facing sentence.
func fieldMessage(tagErr playground.FieldError) string {
	switch tagErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", tagErr.Field())
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", tagErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", tagErr.Param())
	default:
		return fmt.Sprintf("failed validation on %s", tagErr.Tag())
	}
}
