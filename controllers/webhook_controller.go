// controllers/webhook_controller.go
package controllers

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signforge/signforge_backend/config"
	"github.com/signforge/signforge_backend/models"
	"github.com/signforge/signforge_backend/utils"
)

// WebhookController receives events from the external identity provider
type WebhookController struct {
	db *mongo.Client
}

// NewWebhookController creates a new webhook controller
func NewWebhookController(db *mongo.Client) *WebhookController {
	return &WebhookController{db: db}
}

// IdentityEvent is the payload pushed by the identity provider
type IdentityEvent struct {
	Event string `json:"event"`
	Data  struct {
		Email            string `json:"email"`
		FullName         string `json:"fullName"`
		OrganizationName string `json:"organizationName"`
		TempPassword     string `json:"tempPassword"`
	} `json:"data"`
}

// HandleIdentityEvent provisions an organization and its first admin
// user from a user.created event
func (wc *WebhookController) HandleIdentityEvent(c echo.Context) error {
	secret := os.Getenv("WEBHOOK_SECRET")
	provided := c.Request().Header.Get("X-Webhook-Secret")
	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) != 1 {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid webhook secret",
		})
	}

	var event IdentityEvent
	if err := c.Bind(&event); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payload",
		})
	}

	// Unknown events are acknowledged so the provider does not retry
	if event.Event != "user.created" {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Event ignored",
		})
	}

	if event.Data.Email == "" || event.Data.OrganizationName == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "email and organizationName are required",
		})
	}

	email, err := utils.SanitizeEmail(event.Data.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	userColl := config.GetCollection(wc.db, "users")

	// Replays of the same event are acknowledged without re-provisioning
	count, err := userColl.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		log.Printf("Failed to check existing user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "User already provisioned",
		})
	}

	password := event.Data.TempPassword
	if password == "" {
		password = primitive.NewObjectID().Hex()
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	now := time.Now()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      utils.SanitizeInput(event.Data.OrganizationName),
		Plan:      "trial",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := config.GetCollection(wc.db, "organizations").InsertOne(ctx, org); err != nil {
		log.Printf("Failed to create organization: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	user := models.User{
		ID:             primitive.NewObjectID(),
		Email:          email,
		Password:       hashed,
		FullName:       utils.SanitizeInput(event.Data.FullName),
		Role:           models.RoleAdmin,
		OrganizationID: org.ID,
		IsActive:       true,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := userColl.InsertOne(ctx, user); err != nil {
		log.Printf("Failed to create admin user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Organization provisioned",
		Data: map[string]interface{}{
			"organization": org,
			"user":         user,
		},
	})
}
