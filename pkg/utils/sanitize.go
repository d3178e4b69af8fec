package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	appErrors "pinpoint-accounts/pkg/errors"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeString normalizes free-text profile fields: surrounding
// whitespace is dropped, interior runs of whitespace collapse to one
// space, and the result is HTML-escaped since it may be echoed into
// mail templates.
func SanitizeString(input string) string {
	fields := strings.Fields(input)
	return html.EscapeString(strings.Join(fields, " "))
}

// SanitizeEmail lowercases and strips an address down to printable
// characters. Addresses are compared case-insensitively everywhere, so
// normalization happens once at the edge.
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	email = htmlTagPattern.ReplaceAllString(email, "")

	var b strings.Builder
	for _, r := range email {
		if unicode.IsPrint(r) && !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateAndSanitizeEmail normalizes the address and rejects it when
// the result is not a plausible email.
func ValidateAndSanitizeEmail(email string) (string, error) {
	sanitized := SanitizeEmail(email)
	if !IsValidEmail(sanitized) {
		return "", appErrors.ErrInvalidEmail
	}
	return sanitized, nil
}
