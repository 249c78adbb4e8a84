package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAvailability(t *testing.T) {
	for _, s := range []string{"immediate", "sous_1_semaine", "sous_1_mois", "plus_1_mois"} {
		assert.True(t, ValidAvailability(s), s)
	}
	for _, s := range []string{"", "now", "sous_2_semaines"} {
		assert.False(t, ValidAvailability(s), s)
	}
}

func TestFilterArtisanUpdate(t *testing.T) {
	payload := map[string]interface{}{
		"firstName":  "Ahmed",
		"hourlyRate": 200.0,
		"city":       "Fès",
		// None of these may reach the update document.
		"email":    "hacked@example.com",
		"rating":   5.0,
		"isActive": false,
		"_id":      "000000000000000000000000",
	}

	filtered := FilterArtisanUpdate(payload)

	assert.Equal(t, "Ahmed", filtered["firstName"])
	assert.Equal(t, 200.0, filtered["hourlyRate"])
	assert.Equal(t, "Fès", filtered["city"])
	assert.NotContains(t, filtered, "email")
	assert.NotContains(t, filtered, "rating")
	assert.NotContains(t, filtered, "isActive")
	assert.NotContains(t, filtered, "_id")
	assert.Len(t, filtered, 3)
}
