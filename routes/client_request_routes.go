package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hrayfi/hrayfi_backend/controllers"
	"github.com/hrayfi/hrayfi_backend/websocket"
)

// RegisterClientRequestRoutes wires the request workflow twice, under
// /api/demandes and the /api/client-requests alias kept for older clients.
func RegisterClientRequestRoutes(e *echo.Echo, db *mongo.Database, hub *websocket.Hub) {
	controller := controllers.NewClientRequestController(db, hub)

	for _, prefix := range []string{"/api/demandes", "/api/client-requests"} {
		requests := e.Group(prefix)
		requests.POST("", controller.CreateClientRequest)
		requests.POST("/create", controller.CreateClientRequest)
		requests.GET("", controller.GetAllClientRequests)
		requests.GET("/stats", controller.GetClientRequestStats)
		requests.GET("/:id", controller.GetClientRequest)
		requests.PUT("/:id/status", controller.UpdateRequestStatus)
		requests.POST("/:id/contact", controller.ContactArtisan)
		requests.PUT("/:id/artisan/:artisanId/status", controller.UpdateArtisanContactStatus)
	}
}
