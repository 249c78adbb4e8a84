package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hrayfi/hrayfi_backend/models"
)

// ErrContactNotFound is returned when an artisan has no contact entry in
// the request's contactedArtisans list. It maps to a 404 but is distinct
// from a missing request.
var ErrContactNotFound = errors.New("artisan not found among contacts")

// ClientRequestRepository owns the contact-matching workflow updates. Every
// mutation is a single atomic update expression so concurrent operators
// cannot duplicate a contact entry or lose a status change.
type ClientRequestRepository struct {
	db *mongo.Database
}

// NewClientRequestRepository creates a new repository over the database.
func NewClientRequestRepository(db *mongo.Database) *ClientRequestRepository {
	return &ClientRequestRepository{db: db}
}

func (r *ClientRequestRepository) collection() *mongo.Collection {
	return r.db.Collection("clientRequests")
}

// FindByID loads a client request. Returns mongo.ErrNoDocuments when absent.
func (r *ClientRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ClientRequest, error) {
	var request models.ClientRequest
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ContactArtisan records an outreach to one artisan: the existing contact
// entry is set to "contacted" (notes replaced only when supplied), or a new
// entry is appended, keyed by the artisan reference. If the parent request
// is still pending it is promoted to contacted. Returns the updated request.
func (r *ClientRequestRepository) ContactArtisan(ctx context.Context, requestID, artisanID primitive.ObjectID, notes string) (*models.ClientRequest, error) {
	now := time.Now()

	// Try the upsert-by-key in two guarded steps. Each step is atomic; the
	// $ne guard on the push makes a duplicate entry impossible even when two
	// operators contact the same artisan at once, so at most one retry of
	// the positional set is ever needed.
	for attempt := 0; attempt < 2; attempt++ {
		res, err := r.collection().UpdateOne(ctx,
			bson.M{"_id": requestID, "contactedArtisans.artisan": artisanID},
			contactSetDoc(models.ContactStatusContacted, notes, now),
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount > 0 {
			break
		}

		res, err = r.collection().UpdateOne(ctx,
			bson.M{"_id": requestID, "contactedArtisans.artisan": bson.M{"$ne": artisanID}},
			bson.M{
				"$push": bson.M{"contactedArtisans": newContactEntry(artisanID, notes, now)},
				"$set":  bson.M{"updatedAt": now},
			},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount > 0 {
			break
		}
		if attempt == 1 {
			return nil, mongo.ErrNoDocuments
		}
	}

	// Promote the request the first time any artisan is contacted. The
	// status guard keeps this from ever overwriting a later state.
	if _, err := r.collection().UpdateOne(ctx,
		promoteFilter(requestID),
		bson.M{"$set": bson.M{"status": models.RequestStatusContacted, "updatedAt": now}},
	); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, requestID)
}

// UpdateContactStatus sets the status of one contact entry without touching
// the parent request status. Returns mongo.ErrNoDocuments when the request
// is missing and ErrContactNotFound when the artisan has no entry.
func (r *ClientRequestRepository) UpdateContactStatus(ctx context.Context, requestID, artisanID primitive.ObjectID, status, notes string) (*models.ClientRequest, error) {
	// Distinguish a missing request from a missing contact entry up front.
	err := r.collection().FindOne(ctx, bson.M{"_id": requestID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		return nil, err
	}

	res, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": requestID, "contactedArtisans.artisan": artisanID},
		contactSetDoc(status, notes, time.Now()),
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrContactNotFound
	}

	return r.FindByID(ctx, requestID)
}

// UpdateStatus sets the overall request status, optionally replacing the
// notes. Returns mongo.ErrNoDocuments when the request is missing.
func (r *ClientRequestRepository) UpdateStatus(ctx context.Context, requestID primitive.ObjectID, status, notes string) (*models.ClientRequest, error) {
	set := bson.M{"status": status, "updatedAt": time.Now()}
	if notes != "" {
		set["notes"] = notes
	}

	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": requestID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}

	return r.FindByID(ctx, requestID)
}

// contactSetDoc builds the positional update for an existing contact entry.
// Notes are replaced only when non-empty, preserving prior notes otherwise.
func contactSetDoc(status, notes string, now time.Time) bson.M {
	set := bson.M{
		"contactedArtisans.$.status": status,
		"updatedAt":                  now,
	}
	if notes != "" {
		set["contactedArtisans.$.notes"] = notes
	}
	return bson.M{"$set": set}
}

// newContactEntry builds a fresh contact entry in the "contacted" state.
func newContactEntry(artisanID primitive.ObjectID, notes string, now time.Time) models.ContactedArtisan {
	return models.ContactedArtisan{
		Artisan:     artisanID,
		ContactedAt: now,
		Status:      models.ContactStatusContacted,
		Notes:       notes,
	}
}

// promoteFilter matches the request only while it is still pending.
func promoteFilter(requestID primitive.ObjectID) bson.M {
	return bson.M{"_id": requestID, "status": models.RequestStatusPending}
}
