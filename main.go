package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/hrayfi/hrayfi_backend/config"
	"github.com/hrayfi/hrayfi_backend/middleware"
	"github.com/hrayfi/hrayfi_backend/models"
	"github.com/hrayfi/hrayfi_backend/routes"
	"github.com/hrayfi/hrayfi_backend/utils"
	"github.com/hrayfi/hrayfi_backend/websocket"
)

// CustomValidator adapts go-playground/validator to Echo.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func newValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("mophone", func(fl validator.FieldLevel) bool {
		return utils.IsValidMoroccanPhone(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()
	client, err := config.ConnectDB(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db := client.Database(config.DatabaseName())

	hub := websocket.NewHub()
	go hub.Run()

	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.GlobalCORS())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowInlineJS: false,
	}))

	rateLimiter := middleware.NewRateLimiter()
	e.Use(rateLimiter.RateLimit())

	e.GET("/health", func(c echo.Context) error {
		pingCtx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		if err := client.Ping(pingCtx, nil); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		return c.JSON(code, map[string]interface{}{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	e.GET("/api", func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.Response{
			Success: true,
			Data: map[string]interface{}{
				"name":    "Hrayfi API",
				"version": "1.0.0",
				"endpoints": map[string]string{
					"services": "/api/services",
					"artisans": "/api/artisans",
					"demandes": "/api/demandes",
					"auth":     "/api/auth",
					"ws":       "/ws",
				},
			},
		})
	})

	routes.RegisterCategoryRoutes(e, db)
	routes.RegisterArtisanRoutes(e, db)
	routes.RegisterClientRequestRoutes(e, db, hub)
	routes.RegisterAuthRoutes(e, db)

	e.GET("/ws", websocket.HandleWebSocket(hub))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	log.Println("Server stopped")
}
