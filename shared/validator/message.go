package validator

import (
	"errors"
	"safar/shared/failure"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"datetime": "{field} must match the {param} format",
		"dive":     "{field} has invalid entries",
	}
)

// violations maps every validation error to a field-level violation, so the
// response lists all failing fields instead of stopping at the first.
func violations(err error) []failure.FieldViolation {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return []failure.FieldViolation{{Field: "", Message: err.Error()}}
	}

	fields := make([]failure.FieldViolation, 0, len(valErrors))

	for _, valErr := range valErrors {
		field := valErr.Field()
		param := valErr.Param()

		errStr := messages[valErr.Tag()]
		if errStr == "" {
			errStr = "{field} is invalid"
		}

		errStr = strings.ReplaceAll(errStr, "{field}", field)
		errStr = strings.ReplaceAll(errStr, "{param}", param)

		fields = append(fields, failure.FieldViolation{
			Field:   field,
			Message: errStr,
		})
	}

	return fields
}
