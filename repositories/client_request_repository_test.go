package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hrayfi/hrayfi_backend/models"
)

func TestContactSetDoc(t *testing.T) {
	now := time.Now()

	doc := contactSetDoc(models.ContactStatusInterested, "called back", now)
	set := doc["$set"].(bson.M)
	assert.Equal(t, models.ContactStatusInterested, set["contactedArtisans.$.status"])
	assert.Equal(t, "called back", set["contactedArtisans.$.notes"])
	assert.Equal(t, now, set["updatedAt"])

	// Empty notes leave the stored notes untouched.
	doc = contactSetDoc(models.ContactStatusContacted, "", now)
	set = doc["$set"].(bson.M)
	assert.NotContains(t, set, "contactedArtisans.$.notes")
	assert.Equal(t, models.ContactStatusContacted, set["contactedArtisans.$.status"])
}

func TestNewContactEntry(t *testing.T) {
	artisanID := primitive.NewObjectID()
	now := time.Now()

	entry := newContactEntry(artisanID, "first outreach", now)
	assert.Equal(t, artisanID, entry.Artisan)
	assert.Equal(t, models.ContactStatusContacted, entry.Status)
	assert.Equal(t, "first outreach", entry.Notes)
	assert.Equal(t, now, entry.ContactedAt)
}

func TestPromoteFilter(t *testing.T) {
	requestID := primitive.NewObjectID()

	filter := promoteFilter(requestID)
	assert.Equal(t, requestID, filter["_id"])
	// Only a still-pending request may be promoted to contacted.
	assert.Equal(t, models.RequestStatusPending, filter["status"])
}
