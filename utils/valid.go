// utils/valid.go
package utils

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Moroccan mobile/landline format: +212 or 0 prefix, operator digit 5-7.
	moroccanPhoneRegex = regexp.MustCompile(`^(\+212|0)[5-7][0-9]{8}$`)

	nonAlphanumRegex = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// SanitizeInput sanitizes user input to prevent XSS and injection attacks
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = html.EscapeString(input)

	// Remove control characters
	input = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)

	return input
}

// SanitizeEmail lowercases, trims and validates an email address
func SanitizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	if !emailRegex.MatchString(email) {
		return "", errors.New("invalid email format")
	}

	return email, nil
}

// IsValidMoroccanPhone reports whether phone matches the Moroccan format.
func IsValidMoroccanPhone(phone string) bool {
	return moroccanPhoneRegex.MatchString(strings.TrimSpace(phone))
}

// Slugify derives a URL-safe slug from a name: lowercased, non-alphanumerics
// stripped, runs of whitespace collapsed into single hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlphanumRegex.ReplaceAllString(slug, "")
	slug = strings.TrimSpace(slug)
	slug = whitespaceRegex.ReplaceAllString(slug, "-")
	return slug
}

// SanitizeStringArray sanitizes an array of strings
func SanitizeStringArray(inputs []string) []string {
	sanitized := make([]string, len(inputs))
	for i, input := range inputs {
		sanitized[i] = SanitizeInput(input)
	}
	return sanitized
}
