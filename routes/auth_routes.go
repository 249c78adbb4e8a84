package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hrayfi/hrayfi_backend/controllers"
)

// RegisterAuthRoutes wires the admin authentication endpoints.
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Database) {
	controller := controllers.NewAuthController(db)

	auth := e.Group("/api/auth")
	auth.POST("/login", controller.Login)
}
