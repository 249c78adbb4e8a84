package controllers

import (
	"context"
	"errors"
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
	"github.com/hrayfi/hrayfi_backend/utils"
)

type ArtisanController struct {
	DB *mongo.Database
}

func NewArtisanController(db *mongo.Database) *ArtisanController {
	return &ArtisanController{DB: db}
}

// GetAllArtisans retrieves active artisans with filters, sorting and
// pagination. Only isActive profiles are eligible regardless of filters.
func (ac *ArtisanController) GetAllArtisans(c echo.Context) error {
	filter := bson.M{"isActive": true}

	if profession := c.QueryParam("profession"); profession != "" {
		filter["profession"] = bson.M{"$regex": profession, "$options": "i"}
	}
	if city := c.QueryParam("city"); city != "" {
		filter["city"] = bson.M{"$regex": city, "$options": "i"}
	}
	if category := c.QueryParam("category"); category != "" {
		categoryID, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Error:   "Invalid category ID",
			})
		}
		filter["categories"] = categoryID
	}
	if minRating := c.QueryParam("minRating"); minRating != "" {
		if rating, err := strconv.ParseFloat(minRating, 64); err == nil {
			filter["rating"] = bson.M{"$gte": rating}
		}
	}
	if maxRate := c.QueryParam("maxRate"); maxRate != "" {
		if rate, err := strconv.ParseFloat(maxRate, 64); err == nil {
			filter["hourlyRate"] = bson.M{"$lte": rate}
		}
	}
	if availability := c.QueryParam("availability"); availability != "" {
		if !models.ValidAvailability(availability) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Error:   "Invalid availability value",
			})
		}
		filter["availability"] = availability
	}

	page, limit := utils.ParsePagination(c, 20)
	sortBy, sortOrder := utils.ParseSort(c, "rating", -1,
		"rating", "createdAt", "hourlyRate", "experience")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	artisansColl := ac.DB.Collection("artisans")

	total, err := artisansColl.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving artisans",
		})
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: sortOrder}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := artisansColl.Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving artisans",
		})
	}
	defer cursor.Close(ctx)

	var artisans []models.Artisan
	if err := cursor.All(ctx, &artisans); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error decoding artisans",
		})
	}

	data, err := ac.resolveArtisans(ctx, artisans)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving artisan categories",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    data,
		Pagination: &models.Pagination{
			Current: page,
			Pages:   utils.TotalPages(total, limit),
			Count:   total,
			Limit:   limit,
		},
		Filters: map[string]string{
			"profession":   c.QueryParam("profession"),
			"city":         c.QueryParam("city"),
			"category":     c.QueryParam("category"),
			"minRating":    c.QueryParam("minRating"),
			"maxRate":      c.QueryParam("maxRate"),
			"availability": c.QueryParam("availability"),
		},
	})
}

// GetArtisan retrieves an artisan by ID with categories resolved.
func (ac *ArtisanController) GetArtisan(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid artisan ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var artisan models.Artisan
	err = ac.DB.Collection("artisans").FindOne(ctx, bson.M{"_id": objectID}).Decode(&artisan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Error:   "Artisan not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving artisan",
		})
	}

	data, err := ac.resolveArtisans(ctx, []models.Artisan{artisan})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving artisan categories",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    data[0],
	})
}

// SearchArtisans performs a text search over active artisans ranked by
// relevance score.
func (ac *ArtisanController) SearchArtisans(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if len(query) < 2 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Search term must contain at least 2 characters",
		})
	}

	limit := 20
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

	cursor, err := ac.DB.Collection("artisans").Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error searching artisans",
		})
	}
	defer cursor.Close(ctx)

	var artisans []models.Artisan
	if err := cursor.All(ctx, &artisans); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error decoding artisans",
		})
	}

	data, err := ac.resolveArtisans(ctx, artisans)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving artisan categories",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    data,
		Count:   models.IntPtr(len(data)),
		Query:   query,
	})
}

// RegisterArtisan creates a new artisan profile. The email must be unused
// and every referenced category must resolve to an active category.
func (ac *ArtisanController) RegisterArtisan(c echo.Context) error {
	var req models.RegisterArtisanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid registration data",
			Details: validationDetails(err),
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid email address",
		})
	}

	categoryIDs := make([]primitive.ObjectID, 0, len(req.Categories))
	for _, id := range req.Categories {
		categoryID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Error:   "Invalid category ID",
			})
		}
		categoryIDs = append(categoryIDs, categoryID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	artisansColl := ac.DB.Collection("artisans")

	var existing models.Artisan
	err = artisansColl.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Error:   "An artisan with this email address already exists",
		})
	}

	// Every referenced category must be active: the validated count has to
	// match the requested count.
	validCount, err := ac.DB.Collection("serviceCategories").CountDocuments(ctx, bson.M{
		"_id":      bson.M{"$in": categoryIDs},
		"isActive": true,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error validating categories",
		})
	}
	if validCount != int64(len(categoryIDs)) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "One or more categories are invalid",
		})
	}

	availability := req.Availability
	if availability == "" {
		availability = models.AvailabilityImmediate
	}

	now := time.Now()
	artisan := models.Artisan{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          email,
		Phone:          strings.TrimSpace(req.Phone),
		Profession:     strings.TrimSpace(req.Profession),
		Categories:     categoryIDs,
		City:           strings.TrimSpace(req.City),
		ServiceAreas:   req.ServiceAreas,
		Experience:     req.Experience,
		HourlyRate:     req.HourlyRate,
		PricingNote:    req.PricingNote,
		Availability:   availability,
		Description:    req.Description,
		PortfolioLinks: req.PortfolioLinks,
		Skills:         req.Skills,
		SmsVerified:    req.SmsVerified,
		Rating:         0,
		ReviewCount:    0,
		IsActive:       true,
		IsAvailable:    true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	result, err := artisansColl.InsertOne(ctx, artisan)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Success: false,
				Error:   "An artisan with this email address already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error registering artisan",
		})
	}
	artisan.ID = result.InsertedID.(primitive.ObjectID)

	go utils.SendArtisanWelcome(artisan.Email, artisan.FirstName)

	data, err := ac.resolveArtisans(ctx, []models.Artisan{artisan})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving artisan categories",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Data:    data[0],
		Message: "Artisan registered successfully",
	})
}

// UpdateArtisan modifies an artisan profile. Only allow-listed fields are
// applied; anything else in the payload is silently ignored.
func (ac *ArtisanController) UpdateArtisan(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid artisan ID",
		})
	}

	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	set := models.FilterArtisanUpdate(payload)

	if availability, ok := set["availability"].(string); ok && !models.ValidAvailability(availability) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid availability value",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Re-validate categories against active ones, same rule as registration.
	if rawCategories, ok := set["categories"]; ok {
		categoryIDs, err := toObjectIDs(rawCategories)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Error:   "Invalid category ID",
			})
		}
		if len(categoryIDs) == 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Error:   "At least one category is required",
			})
		}

		validCount, err := ac.DB.Collection("serviceCategories").CountDocuments(ctx, bson.M{
			"_id":      bson.M{"$in": categoryIDs},
			"isActive": true,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Error:   "Error validating categories",
			})
		}
		if validCount != int64(len(categoryIDs)) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Error:   "One or more categories are invalid",
			})
		}
		set["categories"] = categoryIDs
	}

	set["updatedAt"] = time.Now()

	var updated models.Artisan
	err = ac.DB.Collection("artisans").FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Error:   "Artisan not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error updating artisan",
		})
	}

	data, err := ac.resolveArtisans(ctx, []models.Artisan{updated})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving artisan categories",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    data[0],
		Message: "Artisan updated successfully",
	})
}

// GetArtisanStats aggregates overview numbers and a top-10 city breakdown
// over active artisans.
func (ac *ArtisanController) GetArtisanStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	artisansColl := ac.DB.Collection("artisans")

	overviewPipeline := []bson.M{
		{"$match": bson.M{"isActive": true}},
		{"$group": bson.M{
			"_id":               nil,
			"totalArtisans":     bson.M{"$sum": 1},
			"averageRating":     bson.M{"$avg": "$rating"},
			"averageHourlyRate": bson.M{"$avg": "$hourlyRate"},
			"cities":            bson.M{"$addToSet": "$city"},
			"professions":       bson.M{"$addToSet": "$profession"},
		}},
		{"$project": bson.M{
			"_id":               0,
			"totalArtisans":     1,
			"averageRating":     bson.M{"$round": bson.A{"$averageRating", 1}},
			"averageHourlyRate": bson.M{"$round": bson.A{"$averageHourlyRate", 2}},
			"citiesCount":       bson.M{"$size": "$cities"},
			"professionsCount":  bson.M{"$size": "$professions"},
		}},
	}

	cursor, err := artisansColl.Aggregate(ctx, overviewPipeline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving artisan statistics",
		})
	}
	defer cursor.Close(ctx)

	var overviewResults []bson.M
	if err := cursor.All(ctx, &overviewResults); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error decoding artisan statistics",
		})
	}

	overview := bson.M{
		"totalArtisans":     0,
		"averageRating":     0,
		"averageHourlyRate": 0,
		"citiesCount":       0,
		"professionsCount":  0,
	}
	if len(overviewResults) > 0 {
		overview = overviewResults[0]
	}

	cityPipeline := []bson.M{
		{"$match": bson.M{"isActive": true}},
		{"$group": bson.M{
			"_id":           "$city",
			"count":         bson.M{"$sum": 1},
			"averageRating": bson.M{"$avg": "$rating"},
		}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": 10},
	}

	cityCursor, err := artisansColl.Aggregate(ctx, cityPipeline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving artisan statistics",
		})
	}
	defer cityCursor.Close(ctx)

	topCities := []bson.M{}
	if err := cityCursor.All(ctx, &topCities); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error decoding artisan statistics",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: map[string]interface{}{
			"overview":  overview,
			"topCities": topCities,
		},
	})
}

// resolveArtisans attaches resolved category references to artisans.
func (ac *ArtisanController) resolveArtisans(ctx context.Context, artisans []models.Artisan) ([]models.ArtisanResponse, error) {
	var allIDs []primitive.ObjectID
	seen := make(map[primitive.ObjectID]bool)
	for _, artisan := range artisans {
		for _, id := range artisan.Categories {
			if !seen[id] {
				seen[id] = true
				allIDs = append(allIDs, id)
			}
		}
	}

	refs, err := fetchCategoryRefs(ctx, ac.DB, allIDs)
	if err != nil {
		return nil, err
	}

	resolved := make([]models.ArtisanResponse, 0, len(artisans))
	for _, artisan := range artisans {
		resolved = append(resolved, models.ArtisanResponse{
			Artisan:    artisan,
			Categories: categoryRefList(artisan.Categories, refs),
		})
	}
	return resolved, nil
}

var errInvalidIDList = errors.New("invalid id list")

// toObjectIDs converts a bound JSON array of hex ids to ObjectIDs.
func toObjectIDs(raw interface{}) ([]primitive.ObjectID, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, errInvalidIDList
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		hex, ok := item.(string)
		if !ok {
			return nil, errInvalidIDList
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
