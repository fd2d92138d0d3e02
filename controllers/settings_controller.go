// controllers/settings_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/signforge/signforge_backend/config"
	"github.com/signforge/signforge_backend/middleware"
	"github.com/signforge/signforge_backend/models"
)

// SettingsController handles the organization's integration settings
type SettingsController struct {
	db *mongo.Client
}

// NewSettingsController creates a new settings controller
func NewSettingsController(db *mongo.Client) *SettingsController {
	return &SettingsController{db: db}
}

// GetSettings returns the organization's integration settings. A fresh
// organization gets an empty document, not a 404.
func (sc *SettingsController) GetSettings(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	orgID, err := middleware.ExtractOrganizationID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Missing organization scope",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	var settings models.IntegrationSettings
	err = config.GetCollection(sc.db, "integrationSettings").FindOne(ctx, bson.M{"organizationId": orgID}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			settings = models.IntegrationSettings{OrganizationID: orgID}
		} else {
			log.Printf("Failed to load integration settings: %v", err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Internal error",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Settings retrieved",
		Data:    settings,
	})
}

// UpdateSettings upserts the organization's integration settings
func (sc *SettingsController) UpdateSettings(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	orgID, err := middleware.ExtractOrganizationID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Missing organization scope",
		})
	}

	var req models.UpdateIntegrationSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}

	update := bson.M{
		"smtp":               req.SMTP,
		"webhookUrl":         req.WebhookURL,
		"slackWebhookUrl":    req.SlackWebhookURL,
		"notifyOnApproval":   req.NotifyOnApproval,
		"notifyOnSettlement": req.NotifyOnSettlement,
		"updatedAt":          time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(sc.db, "integrationSettings")
	var settings models.IntegrationSettings
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"organizationId": orgID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&settings)
	if err != nil {
		log.Printf("Failed to update integration settings: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Settings updated",
		Data:    settings,
	})
}
