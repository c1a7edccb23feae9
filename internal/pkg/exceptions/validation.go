package exceptions

import (
	"medimarket-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationMessage renders a single tag failure as it is shown under a
// form field, e.g. "discount must be less than or equal to 90".
func FormatValidationMessage(label, tag, param string) string {
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(param), ", "), 1)
		} else {
			customMessage = strings.Replace(customMessage, "%s", param, 1)
		}
	}
	return label + " " + customMessage
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		return FormatValidationMessage(strings.ToLower(firstErr.Field()), firstErr.Tag(), firstErr.Param())
	}
	return constvars.ErrDevInvalidInput
}
