package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hrayfi/hrayfi_backend/models"
)

type CategoryController struct {
	DB *mongo.Database
}

func NewCategoryController(db *mongo.Database) *CategoryController {
	return &CategoryController{DB: db}
}

// GetAllCategories retrieves service categories, filterable by active flag
// and sortable by any stored field (default: display order ascending).
func (cc *CategoryController) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	active := c.QueryParam("active")
	if active == "" {
		active = "true"
	}

	filter := bson.M{}
	if active != "all" {
		filter["isActive"] = active == "true"
	}

	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = "order"
	}
	sortOrder := 1
	if c.QueryParam("sortOrder") == "desc" {
		sortOrder = -1
	}

	findOptions := options.Find().SetSort(bson.D{{Key: sortBy, Value: sortOrder}})

	cursor, err := cc.DB.Collection("serviceCategories").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving service categories",
		})
	}
	defer cursor.Close(ctx)

	categories := []models.ServiceCategory{}
	if err := cursor.All(ctx, &categories); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error decoding service categories",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    categories,
		Count:   models.IntPtr(len(categories)),
	})
}

// GetCategory retrieves a category by ID.
func (cc *CategoryController) GetCategory(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid category ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var category models.ServiceCategory
	err = cc.DB.Collection("serviceCategories").FindOne(ctx, bson.M{"_id": objectID}).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Error:   "Service category not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving service category",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    category,
	})
}

// SearchCategories performs a text search over active categories ranked by
// relevance score.
func (cc *CategoryController) SearchCategories(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if len(query) < 2 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Search term must contain at least 2 characters",
		})
	}

	limit := 10
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l >= 1 {
		limit = l
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"$text":    bson.M{"$search": query},
		"isActive": true,
	}
	findOptions := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(int64(limit))

	cursor, err := cc.DB.Collection("serviceCategories").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error searching service categories",
		})
	}
	defer cursor.Close(ctx)

	categories := []models.ServiceCategory{}
	if err := cursor.All(ctx, &categories); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error decoding service categories",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    categories,
		Count:   models.IntPtr(len(categories)),
		Query:   query,
	})
}

// CreateCategory creates a new service category. The slug is derived from
// the name exactly once, at creation, and never recomputed afterwards.
func (cc *CategoryController) CreateCategory(c echo.Context) error {
	var req models.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid category data",
			Details: validationDetails(err),
		})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	category := models.ServiceCategory{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Icon:        req.Icon,
		Order:       req.Order,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	category.EnsureSlug()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.ServiceCategory
	err := cc.DB.Collection("serviceCategories").FindOne(ctx, bson.M{"slug": category.Slug}).Decode(&existing)
	if err == nil {
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Error:   "A category with this name already exists",
		})
	}

	result, err := cc.DB.Collection("serviceCategories").InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Success: false,
				Error:   "A category with this name already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error creating service category",
		})
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Data:    category,
		Message: "Service category created successfully",
	})
}

// UpdateCategory updates a category. Renames do not refresh the slug, and
// deactivation is a flag toggle, never a delete.
func (cc *CategoryController) UpdateCategory(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid category ID",
		})
	}

	var req models.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid category data",
			Details: validationDetails(err),
		})
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Icon != nil {
		set["icon"] = *req.Icon
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var updated models.ServiceCategory
	err = cc.DB.Collection("serviceCategories").FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Error:   "Service category not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error updating service category",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    updated,
		Message: "Service category updated successfully",
	})
}
