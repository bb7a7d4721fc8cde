package format

import "strings"

const Ellipsis = "..."

// Truncate cuts s to at most length runes and appends an ellipsis when
// anything was cut.
func Truncate(s string, length int) string {
	if length < 0 {
		length = 0
	}
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + Ellipsis
}

// Humanize turns "bank_transfer" into "Bank transfer".
func Humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
