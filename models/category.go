package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hrayfi/hrayfi_backend/utils"
)

// ServiceCategory is a named classification of service types. Categories are
// created by admins or the seed command and deactivated by toggling IsActive,
// never deleted.
type ServiceCategory struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Icon        string             `json:"icon,omitempty" bson:"icon,omitempty"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	Order       int                `json:"order" bson:"order"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// EnsureSlug derives the slug from the name exactly once. A slug that is
// already set is kept as-is, including after renames.
func (sc *ServiceCategory) EnsureSlug() {
	if sc.Slug == "" && sc.Name != "" {
		sc.Slug = utils.Slugify(sc.Name)
	}
}

// CategoryRef is the resolved form of a category reference embedded in
// artisan and client-request responses.
type CategoryRef struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
	Slug string             `json:"slug" bson:"slug"`
}

// CreateCategoryRequest is the admin payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"omitempty,max=200"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateCategoryRequest is the admin payload for updating a category.
// Renaming never recomputes the slug.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Icon        *string `json:"icon"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}
