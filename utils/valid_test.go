package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Plomberie", "plomberie"},
		{"two words", "Travaux Divers", "travaux-divers"},
		{"collapses whitespace", "Travaux   Divers", "travaux-divers"},
		{"strips punctuation", "Électricité & Domotique!", "lectricit-domotique"},
		{"trims", "  Peinture  ", "peinture"},
		{"keeps digits", "Service 24h", "service-24h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestIsValidMoroccanPhone(t *testing.T) {
	valid := []string{
		"+212612345678",
		"0612345678",
		"0512345678",
		"0712345678",
		"  0612345678  ",
	}
	for _, phone := range valid {
		assert.True(t, IsValidMoroccanPhone(phone), phone)
	}

	invalid := []string{
		"",
		"0812345678",        // unknown operator digit
		"+213612345678",     // wrong country code
		"061234567",         // too short
		"06123456789",       // too long
		"+212 612 345 678",  // spaces inside
		"0612345678a",
	}
	for _, phone := range invalid {
		assert.False(t, IsValidMoroccanPhone(phone), phone)
	}
}

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Ahmed.Alami@Example.COM ")
	assert.NoError(t, err)
	assert.Equal(t, "ahmed.alami@example.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)

	_, err = SanitizeEmail("")
	assert.Error(t, err)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;", SanitizeInput("<script>"))
	assert.Equal(t, "ab", SanitizeInput("a\x00b"))
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
}
