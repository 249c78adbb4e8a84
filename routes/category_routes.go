package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hrayfi/hrayfi_backend/controllers"
	"github.com/hrayfi/hrayfi_backend/middleware"
)

// RegisterCategoryRoutes wires the public category catalogue and the
// JWT-guarded admin management endpoints.
func RegisterCategoryRoutes(e *echo.Echo, db *mongo.Database) {
	controller := controllers.NewCategoryController(db)

	services := e.Group("/api/services")
	services.GET("", controller.GetAllCategories)
	services.GET("/search", controller.SearchCategories)
	services.GET("/:id", controller.GetCategory)

	admin := e.Group("/api/admin/services", middleware.JWTMiddleware())
	admin.POST("", controller.CreateCategory)
	admin.PUT("/:id", controller.UpdateCategory)
}
