package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hrayfi/hrayfi_backend/models"
	"github.com/hrayfi/hrayfi_backend/repositories"
	"github.com/hrayfi/hrayfi_backend/utils"
	"github.com/hrayfi/hrayfi_backend/websocket"
)

type ClientRequestController struct {
	DB   *mongo.Database
	Repo *repositories.ClientRequestRepository
	Hub  *websocket.Hub
}

func NewClientRequestController(db *mongo.Database, hub *websocket.Hub) *ClientRequestController {
	return &ClientRequestController{
		DB:   db,
		Repo: repositories.NewClientRequestRepository(db),
		Hub:  hub,
	}
}

// CreateClientRequest stores a new service request. The referenced category
// must exist (active or not), the budget bounds must be ordered, and the
// deadline must not be in the past.
func (crc *ClientRequestController) CreateClientRequest(c echo.Context) error {
	var req models.CreateClientRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request data",
			Details: validationDetails(err),
		})
	}
	email, err := utils.SanitizeEmail(req.ClientEmail)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid email address",
		})
	}

	categoryID, err := primitive.ObjectIDFromHex(req.ServiceCategory)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid service category ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Existence check only. Unlike artisan registration, an inactive
	// category is accepted here.
	err = crc.DB.Collection("serviceCategories").FindOne(ctx, bson.M{"_id": categoryID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Error:   "Invalid service category",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error validating service category",
		})
	}

	if !req.Budget.Valid() {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "The minimum budget cannot exceed the maximum budget",
		})
	}

	if req.Deadline != nil && req.Deadline.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "The deadline cannot be in the past",
		})
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	budget := req.Budget
	if budget != nil && budget.Currency == "" {
		budget.Currency = "MAD"
	}

	now := time.Now()
	request := models.ClientRequest{
		ClientName:        strings.TrimSpace(req.ClientName),
		ClientEmail:       email,
		ClientPhone:       strings.TrimSpace(req.ClientPhone),
		ServiceCategory:   categoryID,
		ServiceType:       strings.TrimSpace(req.ServiceType),
		Description:       strings.TrimSpace(req.Description),
		City:              strings.TrimSpace(req.City),
		Address:           strings.TrimSpace(req.Address),
		Budget:            budget,
		Deadline:          req.Deadline,
		Status:            models.RequestStatusPending,
		ContactedArtisans: []models.ContactedArtisan{},
		Priority:          priority,
		IsUrgent:          req.IsUrgent,
		Source:            "website",
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	result, err := crc.DB.Collection("clientRequests").InsertOne(ctx, request)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error creating client request",
		})
	}
	request.ID = result.InsertedID.(primitive.ObjectID)

	data, err := crc.resolveRequests(ctx, []models.ClientRequest{request})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving client request",
		})
	}

	crc.Hub.NotifyNewRequest(data[0])
	go utils.SendRequestConfirmation(request.ClientEmail, request.ClientName, request.ServiceType, request.City)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Data:    data[0],
		Message: "Client request created successfully",
	})
}

// GetAllClientRequests retrieves requests with filters, sorting and
// pagination (default: newest first).
func (crc *ClientRequestController) GetAllClientRequests(c echo.Context) error {
	filter := bson.M{}

	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}
	if city := c.QueryParam("city"); city != "" {
		filter["city"] = bson.M{"$regex": city, "$options": "i"}
	}
	if serviceCategory := c.QueryParam("serviceCategory"); serviceCategory != "" {
		categoryID, err := primitive.ObjectIDFromHex(serviceCategory)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Error:   "Invalid service category ID",
			})
		}
		filter["serviceCategory"] = categoryID
	}
	if priority := c.QueryParam("priority"); priority != "" {
		filter["priority"] = priority
	}

	page, limit := utils.ParsePagination(c, 20)
	sortBy, sortOrder := utils.ParseSort(c, "createdAt", -1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	requestsColl := crc.DB.Collection("clientRequests")

	total, err := requestsColl.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving client requests",
		})
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: sortOrder}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := requestsColl.Find(ctx, filter, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving client requests",
		})
	}
	defer cursor.Close(ctx)

	var requests []models.ClientRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error decoding client requests",
		})
	}

	data, err := crc.resolveRequests(ctx, requests)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving client requests",
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
			"status":          c.QueryParam("status"),
			"city":            c.QueryParam("city"),
			"serviceCategory": c.QueryParam("serviceCategory"),
			"priority":        c.QueryParam("priority"),
		},
	})
}

// GetClientRequest retrieves a request by ID with references resolved.
func (crc *ClientRequestController) GetClientRequest(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	request, err := crc.Repo.FindByID(ctx, objectID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Error:   "Client request not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving client request",
		})
	}

	data, err := crc.resolveRequests(ctx, []models.ClientRequest{*request})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving client request",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    data[0],
	})
}

// UpdateRequestStatus sets the overall request status. Only the five known
// states are accepted; arbitrary jumps between them are allowed.
func (crc *ClientRequestController) UpdateRequestStatus(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request ID",
		})
	}

	var req models.UpdateRequestStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if !models.ValidRequestStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid status",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	request, err := crc.Repo.UpdateStatus(ctx, objectID, req.Status, req.Notes)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Error:   "Client request not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error updating request status",
		})
	}

	data, err := crc.resolveRequests(ctx, []models.ClientRequest{*request})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving client request",
		})
	}

	crc.Hub.NotifyRequestStatus(data[0])

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    data[0],
		Message: "Request status updated successfully",
	})
}

// ContactArtisan records an outreach to one artisan for a request. The
// contact entry is upserted by artisan reference and always lands in the
// "contacted" state; a still-pending request is promoted to contacted.
func (crc *ClientRequestController) ContactArtisan(c echo.Context) error {
	requestID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request ID",
		})
	}

	var req models.ContactArtisanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid contact data",
			Details: validationDetails(err),
		})
	}

	artisanID, err := primitive.ObjectIDFromHex(req.ArtisanID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid artisan ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := crc.Repo.FindByID(ctx, requestID); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Error:   "Client request not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving client request",
		})
	}

	err = crc.DB.Collection("artisans").FindOne(ctx, bson.M{"_id": artisanID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
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

	request, err := crc.Repo.ContactArtisan(ctx, requestID, artisanID, req.Notes)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Error:   "Client request not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error contacting artisan",
		})
	}

	data, err := crc.resolveRequests(ctx, []models.ClientRequest{*request})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving client request",
		})
	}

	crc.Hub.NotifyArtisanContacted(data[0])

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    data[0],
		Message: "Artisan contacted successfully",
	})
}

// UpdateArtisanContactStatus sets the status of one contact entry. The
// parent request status is never touched by this operation.
func (crc *ClientRequestController) UpdateArtisanContactStatus(c echo.Context) error {
	requestID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request ID",
		})
	}
	artisanID, err := primitive.ObjectIDFromHex(c.Param("artisanId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid artisan ID",
		})
	}

	var req models.UpdateContactStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if !models.ValidContactStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid status",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	request, err := crc.Repo.UpdateContactStatus(ctx, requestID, artisanID, req.Status, req.Notes)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Error:   "Client request not found",
			})
		}
		if errors.Is(err, repositories.ErrContactNotFound) {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Error:   err.Error(),
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error updating artisan contact status",
		})
	}

	data, err := crc.resolveRequests(ctx, []models.ClientRequest{*request})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error resolving client request",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    data[0],
		Message: "Artisan contact status updated successfully",
	})
}

// GetClientRequestStats aggregates overview numbers and a top-10 city
// breakdown. The average budget is the average of per-request budget
// midpoints, reproduced as-is from the dashboard's definition.
func (crc *ClientRequestController) GetClientRequestStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	requestsColl := crc.DB.Collection("clientRequests")

	overviewPipeline := []bson.M{
		{"$group": bson.M{
			"_id":           nil,
			"totalRequests": bson.M{"$sum": 1},
			"pendingRequests": bson.M{
				"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.RequestStatusPending}}, 1, 0}},
			},
			"contactedRequests": bson.M{
				"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.RequestStatusContacted}}, 1, 0}},
			},
			"completedRequests": bson.M{
				"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.RequestStatusCompleted}}, 1, 0}},
			},
			"urgentRequests": bson.M{
				"$sum": bson.M{"$cond": bson.A{"$isUrgent", 1, 0}},
			},
			"averageBudget": bson.M{
				"$avg": bson.M{"$avg": bson.A{"$budget.min", "$budget.max"}},
			},
		}},
		{"$project": bson.M{
			"_id":               0,
			"totalRequests":     1,
			"pendingRequests":   1,
			"contactedRequests": 1,
			"completedRequests": 1,
			"urgentRequests":    1,
			"averageBudget":     bson.M{"$round": bson.A{"$averageBudget", 2}},
		}},
	}

	cursor, err := requestsColl.Aggregate(ctx, overviewPipeline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving request statistics",
		})
	}
	defer cursor.Close(ctx)

	var overviewResults []bson.M
	if err := cursor.All(ctx, &overviewResults); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error decoding request statistics",
		})
	}

	overview := bson.M{
		"totalRequests":     0,
		"pendingRequests":   0,
		"contactedRequests": 0,
		"completedRequests": 0,
		"urgentRequests":    0,
		"averageBudget":     0,
	}
	if len(overviewResults) > 0 {
		overview = overviewResults[0]
	}

	cityPipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$city",
			"count": bson.M{"$sum": 1},
			"urgentCount": bson.M{
				"$sum": bson.M{"$cond": bson.A{"$isUrgent", 1, 0}},
			},
		}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": 10},
	}

	cityCursor, err := requestsColl.Aggregate(ctx, cityPipeline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error retrieving request statistics",
		})
	}
	defer cityCursor.Close(ctx)

	topCities := []bson.M{}
	if err := cityCursor.All(ctx, &topCities); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error decoding request statistics",
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

// resolveRequests attaches resolved category and artisan references.
func (crc *ClientRequestController) resolveRequests(ctx context.Context, requests []models.ClientRequest) ([]models.ClientRequestResponse, error) {
	var categoryIDs, artisanIDs []primitive.ObjectID
	seenCategories := make(map[primitive.ObjectID]bool)
	seenArtisans := make(map[primitive.ObjectID]bool)

	for _, request := range requests {
		if !seenCategories[request.ServiceCategory] {
			seenCategories[request.ServiceCategory] = true
			categoryIDs = append(categoryIDs, request.ServiceCategory)
		}
		for _, contact := range request.ContactedArtisans {
			if !seenArtisans[contact.Artisan] {
				seenArtisans[contact.Artisan] = true
				artisanIDs = append(artisanIDs, contact.Artisan)
			}
		}
	}

	categoryRefs, err := fetchCategoryRefs(ctx, crc.DB, categoryIDs)
	if err != nil {
		return nil, err
	}
	artisanRefs, err := fetchArtisanRefs(ctx, crc.DB, artisanIDs)
	if err != nil {
		return nil, err
	}

	resolved := make([]models.ClientRequestResponse, 0, len(requests))
	for _, request := range requests {
		response := models.ClientRequestResponse{
			ClientRequest:     request,
			ContactedArtisans: []models.ContactView{},
		}
		if ref, ok := categoryRefs[request.ServiceCategory]; ok {
			response.ServiceCategory = &ref
		}
		for _, contact := range request.ContactedArtisans {
			view := models.ContactView{ContactedArtisan: contact}
			if ref, ok := artisanRefs[contact.Artisan]; ok {
				view.Artisan = &ref
			}
			response.ContactedArtisans = append(response.ContactedArtisans, view)
		}
		resolved = append(resolved, response)
	}
	return resolved, nil
}
