package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hrayfi/hrayfi_backend/controllers"
)

// RegisterArtisanRoutes wires the artisan directory endpoints. The static
// paths are registered before /:id so "search" and "stats" never bind as ids.
func RegisterArtisanRoutes(e *echo.Echo, db *mongo.Database) {
	controller := controllers.NewArtisanController(db)

	artisans := e.Group("/api/artisans")
	artisans.GET("", controller.GetAllArtisans)
	artisans.GET("/search", controller.SearchArtisans)
	artisans.GET("/stats", controller.GetArtisanStats)
	artisans.GET("/:id", controller.GetArtisan)
	artisans.POST("", controller.RegisterArtisan)
	artisans.PUT("/:id", controller.UpdateArtisan)
}
