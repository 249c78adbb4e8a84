package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidRequestStatus(t *testing.T) {
	for _, s := range []string{"pending", "contacted", "in_progress", "completed", "cancelled"} {
		assert.True(t, ValidRequestStatus(s), s)
	}
	for _, s := range []string{"", "done", "Pending", "in-progress"} {
		assert.False(t, ValidRequestStatus(s), s)
	}
}

func TestValidContactStatus(t *testing.T) {
	for _, s := range []string{"pending", "contacted", "interested", "not_interested"} {
		assert.True(t, ValidContactStatus(s), s)
	}
	for _, s := range []string{"", "refused", "not-interested", "in_progress"} {
		assert.False(t, ValidContactStatus(s), s)
	}
}

func TestValidPriority(t *testing.T) {
	for _, s := range []string{"low", "medium", "high", "urgent"} {
		assert.True(t, ValidPriority(s), s)
	}
	assert.False(t, ValidPriority("critical"))
}

func TestBudgetValid(t *testing.T) {
	min, max := 100.0, 500.0

	assert.True(t, (&Budget{Min: &min, Max: &max}).Valid())
	assert.False(t, (&Budget{Min: &max, Max: &min}).Valid())

	equal := 300.0
	assert.True(t, (&Budget{Min: &equal, Max: &equal}).Valid())

	// Partial and absent budgets are always valid.
	assert.True(t, (&Budget{Min: &min}).Valid())
	assert.True(t, (&Budget{Max: &max}).Valid())
	assert.True(t, (&Budget{}).Valid())
	assert.True(t, (*Budget)(nil).Valid())
}

func TestFindContact(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	request := ClientRequest{
		ContactedArtisans: []ContactedArtisan{
			{Artisan: first, Status: ContactStatusContacted},
			{Artisan: second, Status: ContactStatusInterested},
		},
	}

	contact := request.FindContact(second)
	assert.NotNil(t, contact)
	assert.Equal(t, ContactStatusInterested, contact.Status)

	assert.Nil(t, request.FindContact(primitive.NewObjectID()))
}
