package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Overall request lifecycle states.
const (
	RequestStatusPending    = "pending"
	RequestStatusContacted  = "contacted"
	RequestStatusInProgress = "in_progress"
	RequestStatusCompleted  = "completed"
	RequestStatusCancelled  = "cancelled"
)

// Per-artisan contact states, independent of the parent request status.
const (
	ContactStatusPending       = "pending"
	ContactStatusContacted     = "contacted"
	ContactStatusInterested    = "interested"
	ContactStatusNotInterested = "not_interested"
)

// Request priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidRequestStatus reports whether s is one of the five request states.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusContacted, RequestStatusInProgress,
		RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

// ValidContactStatus reports whether s is a known contact state.
func ValidContactStatus(s string) bool {
	switch s {
	case ContactStatusPending, ContactStatusContacted,
		ContactStatusInterested, ContactStatusNotInterested:
		return true
	}
	return false
}

// ValidPriority reports whether s is a known priority value.
func ValidPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Budget is the client's price range for a request.
type Budget struct {
	Min      *float64 `json:"min,omitempty" bson:"min,omitempty" validate:"omitempty,gte=0"`
	Max      *float64 `json:"max,omitempty" bson:"max,omitempty" validate:"omitempty,gte=0"`
	Currency string   `json:"currency,omitempty" bson:"currency,omitempty" validate:"omitempty,oneof=MAD EUR USD"`
}

// Valid reports whether the budget ordering holds. Partial budgets (only
// one bound set) are always valid.
func (b *Budget) Valid() bool {
	if b == nil || b.Min == nil || b.Max == nil {
		return true
	}
	return *b.Min <= *b.Max
}

// ContactedArtisan is an outreach record embedded in a client request.
// A request holds at most one entry per artisan; entries have no identity
// outside their parent request.
type ContactedArtisan struct {
	Artisan     primitive.ObjectID `json:"artisan" bson:"artisan"`
	ContactedAt time.Time          `json:"contactedAt" bson:"contactedAt"`
	Status      string             `json:"status" bson:"status"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
}

// ClientRequest is a service-seeking submission from an end customer.
// Requests are never deleted; cancellation is a status value.
type ClientRequest struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ClientName        string             `json:"clientName" bson:"clientName"`
	ClientEmail       string             `json:"clientEmail" bson:"clientEmail"`
	ClientPhone       string             `json:"clientPhone" bson:"clientPhone"`
	ServiceCategory   primitive.ObjectID `json:"serviceCategory" bson:"serviceCategory"`
	ServiceType       string             `json:"serviceType" bson:"serviceType"`
	Description       string             `json:"description" bson:"description"`
	City              string             `json:"city" bson:"city"`
	Address           string             `json:"address,omitempty" bson:"address,omitempty"`
	Budget            *Budget            `json:"budget,omitempty" bson:"budget,omitempty"`
	Deadline          *time.Time         `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Status            string             `json:"status" bson:"status"`
	ContactedArtisans []ContactedArtisan `json:"contactedArtisans" bson:"contactedArtisans"`
	Priority          string             `json:"priority" bson:"priority"`
	IsUrgent          bool               `json:"isUrgent" bson:"isUrgent"`
	Source            string             `json:"source" bson:"source"`
	Notes             string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FindContact returns the contact entry for the given artisan, or nil.
func (cr *ClientRequest) FindContact(artisanID primitive.ObjectID) *ContactedArtisan {
	for i := range cr.ContactedArtisans {
		if cr.ContactedArtisans[i].Artisan == artisanID {
			return &cr.ContactedArtisans[i]
		}
	}
	return nil
}

// ContactView is a contact entry with the artisan reference resolved.
type ContactView struct {
	ContactedArtisan
	Artisan *ArtisanRef `json:"artisan"`
}

// ClientRequestResponse is a client request with its references resolved.
type ClientRequestResponse struct {
	ClientRequest
	ServiceCategory   *CategoryRef  `json:"serviceCategory"`
	ContactedArtisans []ContactView `json:"contactedArtisans"`
}

// CreateClientRequestRequest is the submission payload.
type CreateClientRequestRequest struct {
	ClientName      string     `json:"clientName" validate:"required,min=2,max=50"`
	ClientEmail     string     `json:"clientEmail" validate:"required,email"`
	ClientPhone     string     `json:"clientPhone" validate:"required,mophone"`
	ServiceCategory string     `json:"serviceCategory" validate:"required"`
	ServiceType     string     `json:"serviceType" validate:"required"`
	Description     string     `json:"description" validate:"required,min=10,max=1000"`
	City            string     `json:"city" validate:"required"`
	Address         string     `json:"address"`
	Budget          *Budget    `json:"budget"`
	Deadline        *time.Time `json:"deadline"`
	Priority        string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	IsUrgent        bool       `json:"isUrgent"`
	Notes           string     `json:"notes" validate:"omitempty,max=500"`
}

// UpdateRequestStatusRequest updates the overall request status. Arbitrary
// jumps between the five states are allowed.
type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"omitempty,max=500"`
}

// ContactArtisanRequest records an outreach to one artisan.
type ContactArtisanRequest struct {
	ArtisanID string `json:"artisanId" validate:"required"`
	Notes     string `json:"notes"`
}

// UpdateContactStatusRequest updates one contact entry's status.
type UpdateContactStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}
