package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Availability windows an artisan can declare.
const (
	AvailabilityImmediate = "immediate"
	AvailabilityOneWeek   = "sous_1_semaine"
	AvailabilityOneMonth  = "sous_1_mois"
	AvailabilityLater     = "plus_1_mois"
)

// ValidAvailability reports whether s is a known availability value.
func ValidAvailability(s string) bool {
	switch s {
	case AvailabilityImmediate, AvailabilityOneWeek, AvailabilityOneMonth, AvailabilityLater:
		return true
	}
	return false
}

// PortfolioItem is a past work entry on an artisan profile.
type PortfolioItem struct {
	Title       string     `json:"title,omitempty" bson:"title,omitempty"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Artisan is a service-providing professional profile. Profiles are
// soft-deactivated via IsActive, never deleted.
type Artisan struct {
	ID             primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName      string               `json:"firstName" bson:"firstName"`
	LastName       string               `json:"lastName" bson:"lastName"`
	Email          string               `json:"email" bson:"email"`
	Phone          string               `json:"phone" bson:"phone"`
	Profession     string               `json:"profession" bson:"profession"`
	Categories     []primitive.ObjectID `json:"categories" bson:"categories"`
	Experience     *int                 `json:"experience,omitempty" bson:"experience,omitempty"`
	Skills         []string             `json:"skills,omitempty" bson:"skills,omitempty"`
	City           string               `json:"city" bson:"city"`
	Address        string               `json:"address,omitempty" bson:"address,omitempty"`
	ServiceAreas   []string             `json:"serviceAreas,omitempty" bson:"serviceAreas,omitempty"`
	HourlyRate     *float64             `json:"hourlyRate,omitempty" bson:"hourlyRate,omitempty"`
	PricingNote    string               `json:"pricingNote,omitempty" bson:"pricingNote,omitempty"`
	Availability   string               `json:"availability" bson:"availability"`
	Rating         float64              `json:"rating" bson:"rating"`
	ReviewCount    int                  `json:"reviewCount" bson:"reviewCount"`
	IsVerified     bool                 `json:"isVerified" bson:"isVerified"`
	SmsVerified    bool                 `json:"smsVerified" bson:"smsVerified"`
	EmailVerified  bool                 `json:"emailVerified" bson:"emailVerified"`
	Description    string               `json:"description,omitempty" bson:"description,omitempty"`
	PortfolioLinks []string             `json:"portfolioLinks,omitempty" bson:"portfolioLinks,omitempty"`
	Portfolio      []PortfolioItem      `json:"portfolio,omitempty" bson:"portfolio,omitempty"`
	IsActive       bool                 `json:"isActive" bson:"isActive"`
	IsAvailable    bool                 `json:"isAvailable" bson:"isAvailable"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// ArtisanResponse is an artisan with its category references resolved.
// The outer Categories field shadows the raw ObjectID list on marshalling.
type ArtisanResponse struct {
	Artisan
	Categories []CategoryRef `json:"categories"`
}

// ArtisanRef is the resolved artisan summary embedded in client-request
// contact entries.
type ArtisanRef struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	FirstName  string             `json:"firstName" bson:"firstName"`
	LastName   string             `json:"lastName" bson:"lastName"`
	Profession string             `json:"profession" bson:"profession"`
	City       string             `json:"city" bson:"city"`
	Rating     float64            `json:"rating" bson:"rating"`
}

// RegisterArtisanRequest is the signup payload.
type RegisterArtisanRequest struct {
	FirstName      string   `json:"firstName" validate:"required,min=2,max=30"`
	LastName       string   `json:"lastName" validate:"required,min=2,max=30"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone" validate:"required,mophone"`
	Profession     string   `json:"profession" validate:"required"`
	Categories     []string `json:"categories" validate:"required,min=1,dive,required"`
	City           string   `json:"city" validate:"required"`
	ServiceAreas   []string `json:"serviceAreas"`
	Experience     *int     `json:"experience" validate:"omitempty,min=0,max=50"`
	HourlyRate     *float64 `json:"hourlyRate" validate:"omitempty,gte=0"`
	PricingNote    string   `json:"pricingNote" validate:"omitempty,max=200"`
	Availability   string   `json:"availability" validate:"omitempty,oneof=immediate sous_1_semaine sous_1_mois plus_1_mois"`
	Description    string   `json:"description" validate:"omitempty,max=1000"`
	PortfolioLinks []string `json:"portfolioLinks"`
	Skills         []string `json:"skills"`
	SmsVerified    bool     `json:"smsVerified"`
}

// artisanUpdateAllowedFields is the allow-list of fields the update
// endpoint may touch. Anything else in the payload is silently dropped.
var artisanUpdateAllowedFields = []string{
	"firstName", "lastName", "phone", "profession", "categories",
	"city", "address", "experience", "hourlyRate", "availability",
	"description", "skills", "portfolio", "isAvailable",
}

// FilterArtisanUpdate keeps only the allow-listed fields of an update
// payload and returns them as a $set document.
func FilterArtisanUpdate(data map[string]interface{}) bson.M {
	filtered := bson.M{}
	for _, field := range artisanUpdateAllowedFields {
		if value, ok := data[field]; ok {
			filtered[field] = value
		}
	}
	return filtered
}
