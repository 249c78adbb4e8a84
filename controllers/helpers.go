package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hrayfi/hrayfi_backend/models"
)

// validationDetails converts validator errors to the field-level details
// block of the response envelope.
func validationDetails(err error) []models.ValidationDetail {
	var details []models.ValidationDetail
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details = append(details, models.ValidationDetail{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "mophone":
		return "Invalid Moroccan phone number"
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	}
	return "Invalid value"
}

// fetchCategoryRefs loads the name/slug projection of the given categories
// in one query, keyed by id.
func fetchCategoryRefs(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) (map[primitive.ObjectID]models.CategoryRef, error) {
	refs := make(map[primitive.ObjectID]models.CategoryRef)
	if len(ids) == 0 {
		return refs, nil
	}

	cursor, err := db.Collection("serviceCategories").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.CategoryRef
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	for _, ref := range results {
		refs[ref.ID] = ref
	}
	return refs, nil
}

// categoryRefList resolves ids against the ref map, preserving order and
// skipping references that no longer resolve.
func categoryRefList(ids []primitive.ObjectID, refs map[primitive.ObjectID]models.CategoryRef) []models.CategoryRef {
	resolved := []models.CategoryRef{}
	for _, id := range ids {
		if ref, ok := refs[id]; ok {
			resolved = append(resolved, ref)
		}
	}
	return resolved
}

// fetchArtisanRefs loads the summary projection of the given artisans in
// one query, keyed by id.
func fetchArtisanRefs(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ArtisanRef, error) {
	refs := make(map[primitive.ObjectID]models.ArtisanRef)
	if len(ids) == 0 {
		return refs, nil
	}

	cursor, err := db.Collection("artisans").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.ArtisanRef
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	for _, ref := range results {
		refs[ref.ID] = ref
	}
	return refs, nil
}
