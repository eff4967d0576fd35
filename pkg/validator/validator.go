package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/magmaminds/admissions/pkg/httpx"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name → human-readable message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !isValidationErrors(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	return errors.As(err, target)
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// Summary returns the top-level error message for a failed validation:
// "All fields are required" when every failure is a missing required field,
// "Validation failed" otherwise.
func Summary(err error) string {
	var ve validator.ValidationErrors
	if !isValidationErrors(err, &ve) || len(ve) == 0 {
		return "Validation failed"
	}
	for _, e := range ve {
		if e.Tag() != "required" {
			return "Validation failed"
		}
	}
	return "All fields are required"
}

// ValidateRequest decodes the JSON request body into T and validates it.
// Malformed JSON and failed validation answer 400; a body over the router's
// size cap answers 413. Returns (parsedStruct, true) on success or (nil, false)
// after the error response has been written.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if err := Validate(&req); err != nil {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{
			"error":  Summary(err),
			"fields": FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}
