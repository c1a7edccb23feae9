package constvars

// CustomValidationErrorMessages maps validator tags to the message that
// follows the field label, e.g. "quantity must be greater than or equal to 1".
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"notblank":      "cannot be blank",
	"numeric":       "must be a number",
	"number":        "must be a number",
	"integer":       "must be a whole number",
	"date":          "must be a valid date (YYYY-MM-DD)",
	"clock":         "must be a valid time (HH:MM)",
	"min":           "must be at least %s characters long",
	"max":           "maximum at %s characters long",
	"len":           "must be %s characters long",
	"oneof":         "must be one of [%s]",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"url":           "must be a valid URL",
	"not_past_date": "cannot be in the past",
	"after":         "must be after %s",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
	"after": true,
}
