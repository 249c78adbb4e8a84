package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrayfi/hrayfi_backend/middleware"
	"github.com/hrayfi/hrayfi_backend/models"
)

type AuthController struct {
	DB *mongo.Database
}

func NewAuthController(db *mongo.Database) *AuthController {
	return &AuthController{DB: db}
}

// Login authenticates an admin and issues a JWT. Unknown emails and wrong
// passwords return the same message.
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid login data",
			Details: validationDetails(err),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.Admin
	err := ac.DB.Collection("admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Error:   "Invalid email or password",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error during login",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Error:   "Invalid email or password",
		})
	}

	token, err := middleware.GenerateJWT(admin.ID.Hex(), admin.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Error generating token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: models.LoginResponse{
			Token: token,
			Email: admin.Email,
		},
		Message: "Login successful",
	})
}
