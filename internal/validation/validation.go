// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules (like required
// fields) defined in struct tags, and extracts validation errors into a
// format the client can understand.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/biztime/api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern:
//   - define a request struct with validator tags (`validate:"required"`)
//   - implement Validate() error, usually by calling validation.Struct
type Validatable interface {
	Validate() error
}

// validate is the shared validator instance. validator.Validate caches
// struct metadata, so a single instance is reused across requests.
var validate = validator.New()

// Struct runs struct-tag validation on v. Request types call this from
// their Validate method.
func Struct(v any) error {
	return validate.Struct(v)
}

// CustomValidationError represents a single validation issue for a
// specific field that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from path params and body.
//  2. payload.Validate() applies validation rules.
//  3. On failure, returns a *errs.HTTPError (400) with field-level errors.
//
// payload must be a pointer to a struct so binding can mutate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		// Echo wraps bind failures in its own HTTPError; surface its
		// message when it is a plain string, otherwise stay generic.
		message := "Invalid request body"
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if msg, ok := echoErr.Message.(string); ok && msg != "" {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, nil, fieldErrors)
	}

	return nil
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Custom validation errors convert directly.
		if customErrors, ok := err.(CustomValidationErrors); ok {
			for _, custom := range customErrors {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: custom.Field,
					Error: custom.Message,
				})
			}
			return "Validation failed", fieldErrors
		}
		return err.Error(), []errs.FieldError{}
	}

	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		var msg string

		switch fieldErr.Tag() {
		case "required":
			msg = "is required"

		case "min":
			// min means minimum length for strings, minimum value for numbers.
			if fieldErr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fieldErr.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fieldErr.Param())
			}

		case "max":
			if fieldErr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fieldErr.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fieldErr.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fieldErr.Param())

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", fieldErr.Param())

		default:
			if fieldErr.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, fieldErr.Tag(), fieldErr.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, fieldErr.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
