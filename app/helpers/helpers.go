package helpers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := fieldKey(err.Field())
		label := capitalizeFirstLetter(field)
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", label)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", label)
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", label)
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s.", label, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s.", label, err.Param())
		case "gt":
			errorMessages[field] = fmt.Sprintf("%s must be greater than %s.", label, err.Param())
		case "gte":
			errorMessages[field] = fmt.Sprintf("%s must be %s or more.", label, err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s.", label, err.Param())
		case "url":
			errorMessages[field] = fmt.Sprintf("%s must be a valid URL.", label)
		default:
			errorMessages[field] = fmt.Sprintf("%s failed the %s check.", label, err.Tag())
		}
	}
	return errorMessages
}

// ValidationMessages runs FormatValidationErrors when err comes from the
// validator, and reports whether it did.
func ValidationMessages(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	return FormatValidationErrors(verrs), true
}

// fieldKey turns a Go field name into the snake_case name used by the forms,
// e.g. CategoryID becomes category_id.
func fieldKey(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func capitalizeFirstLetter(s string) string {
	if len(s) == 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

func GenerateSlug(s string) string {
	return slug.Make(s)
}

// ParsePositiveInt parses raw, returning fallback for anything that is not
// a positive integer.
func ParsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
