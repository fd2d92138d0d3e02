// controllers/campaign_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/signforge/signforge_backend/config"
	"github.com/signforge/signforge_backend/middleware"
	"github.com/signforge/signforge_backend/models"
	"github.com/signforge/signforge_backend/utils"
)

// CampaignController handles marketing campaign endpoints
type CampaignController struct {
	db *mongo.Client
}

// NewCampaignController creates a new campaign controller
func NewCampaignController(db *mongo.Client) *CampaignController {
	return &CampaignController{db: db}
}

// GetCampaigns returns a paginated list of campaigns
func (cc *CampaignController) GetCampaigns(c echo.Context) error {
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

	query := bson.M{"organizationId": orgID}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}
	if channel := c.QueryParam("channel"); channel != "" {
		query["channel"] = channel
	}
	page, limit := pagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(cc.db, "campaigns")

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		log.Printf("Failed to count campaigns: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		log.Printf("Failed to list campaigns: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	campaigns := []models.Campaign{}
	if err := cursor.All(ctx, &campaigns); err != nil {
		log.Printf("Failed to decode campaigns: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Campaigns retrieved",
		Data: models.PaginatedResponse{
			Items: campaigns,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// CreateCampaign creates a new campaign
func (cc *CampaignController) CreateCampaign(c echo.Context) error {
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

	var req models.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Campaign name is required",
		})
	}

	now := time.Now()
	campaign := models.Campaign{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           utils.SanitizeInput(req.Name),
		Channel:        req.Channel,
		Budget:         req.Budget,
		StartDate:      parseDate(req.StartDate),
		EndDate:        parseDate(req.EndDate),
		Status:         "planned",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	if _, err := config.GetCollection(cc.db, "campaigns").InsertOne(ctx, campaign); err != nil {
		log.Printf("Failed to create campaign: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Campaign created",
		Data:    campaign,
	})
}

// UpdateCampaign updates a campaign by ID
func (cc *CampaignController) UpdateCampaign(c echo.Context) error {
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

	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid campaign ID",
		})
	}

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	for _, field := range []string{"name", "channel", "status"} {
		if v, ok := body[field].(string); ok {
			update[field] = v
		}
	}
	if v, ok := body["budget"].(float64); ok {
		update["budget"] = v
	}
	if v, ok := body["startDate"].(string); ok {
		if t := parseDate(v); t != nil {
			update["startDate"] = *t
		}
	}
	if v, ok := body["endDate"].(string); ok {
		if t := parseDate(v); t != nil {
			update["endDate"] = *t
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(cc.db, "campaigns").UpdateOne(ctx,
		bson.M{"_id": campaignID, "organizationId": orgID},
		bson.M{"$set": update},
	)
	if err != nil {
		log.Printf("Failed to update campaign: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Campaign not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Campaign updated",
	})
}

// DeleteCampaign deletes a campaign by ID
func (cc *CampaignController) DeleteCampaign(c echo.Context) error {
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

	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid campaign ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(cc.db, "campaigns").DeleteOne(ctx, bson.M{"_id": campaignID, "organizationId": orgID})
	if err != nil {
		log.Printf("Failed to delete campaign: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Campaign not found",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
