// controllers/lead_controller.go
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

// LeadController handles lead pipeline endpoints
type LeadController struct {
	db *mongo.Client
}

// NewLeadController creates a new lead controller
func NewLeadController(db *mongo.Client) *LeadController {
	return &LeadController{db: db}
}

// GetLeads returns a paginated, filtered list of leads
func (lc *LeadController) GetLeads(c echo.Context) error {
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

	filter := models.LeadFilter{
		OrganizationID: orgID,
		Status:         c.QueryParam("status"),
		Source:         c.QueryParam("source"),
		AssignedTo:     objectIDQuery(c, "assignedTo"),
		CampaignID:     objectIDQuery(c, "campaignId"),
		Search:         c.QueryParam("search"),
	}
	page, limit := pagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(lc.db, "leads")
	query := filter.Build()

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		log.Printf("Failed to count leads: %v", err)
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
		log.Printf("Failed to list leads: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	leads := []models.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		log.Printf("Failed to decode leads: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Leads retrieved",
		Data: models.PaginatedResponse{
			Items: leads,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// CreateLead creates a new lead
func (lc *LeadController) CreateLead(c echo.Context) error {
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

	var req models.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Lead name is required",
		})
	}

	now := time.Now()
	lead := models.Lead{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           utils.SanitizeInput(req.Name),
		ContactPerson:  utils.SanitizeInput(req.ContactPerson),
		Email:          req.Email,
		Phone:          req.Phone,
		Source:         req.Source,
		Status:         models.LeadStatusNew,
		EstimatedValue: req.EstimatedValue,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.AssignedTo != "" {
		if id, err := primitive.ObjectIDFromHex(req.AssignedTo); err == nil {
			lead.AssignedTo = &id
		}
	}
	if req.CampaignID != "" {
		if id, err := primitive.ObjectIDFromHex(req.CampaignID); err == nil {
			lead.CampaignID = &id
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	if _, err := config.GetCollection(lc.db, "leads").InsertOne(ctx, lead); err != nil {
		log.Printf("Failed to create lead: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead created",
		Data:    lead,
	})
}

// UpdateLead updates a lead by ID
func (lc *LeadController) UpdateLead(c echo.Context) error {
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

	leadID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid lead ID",
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
	for _, field := range []string{"name", "contactPerson", "email", "phone", "source", "status"} {
		if v, ok := body[field].(string); ok {
			update[field] = v
		}
	}
	if v, ok := body["estimatedValue"].(float64); ok {
		update["estimatedValue"] = v
	}
	if v, ok := body["assignedTo"].(string); ok {
		if id, err := primitive.ObjectIDFromHex(v); err == nil {
			update["assignedTo"] = id
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(lc.db, "leads").UpdateOne(ctx,
		bson.M{"_id": leadID, "organizationId": orgID},
		bson.M{"$set": update},
	)
	if err != nil {
		log.Printf("Failed to update lead: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Lead not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead updated",
	})
}

// DeleteLead deletes a lead by ID
func (lc *LeadController) DeleteLead(c echo.Context) error {
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

	leadID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid lead ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(lc.db, "leads").DeleteOne(ctx, bson.M{"_id": leadID, "organizationId": orgID})
	if err != nil {
		log.Printf("Failed to delete lead: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Lead not found",
		})
	}

	return c.NoContent(http.StatusNoContent)
}

// ConvertLead turns a qualified lead into a client
func (lc *LeadController) ConvertLead(c echo.Context) error {
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

	leadID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid lead ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	leadColl := config.GetCollection(lc.db, "leads")

	var lead models.Lead
	if err := leadColl.FindOne(ctx, bson.M{"_id": leadID, "organizationId": orgID}).Decode(&lead); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Lead not found",
		})
	}
	if lead.Status == models.LeadStatusConverted {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Lead is already converted",
		})
	}

	now := time.Now()
	client := models.Client{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           lead.Name,
		ContactPerson:  lead.ContactPerson,
		Email:          lead.Email,
		Phone:          lead.Phone,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := config.GetCollection(lc.db, "clients").InsertOne(ctx, client); err != nil {
		log.Printf("Failed to create client from lead: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	_, err = leadColl.UpdateOne(ctx, bson.M{"_id": leadID}, bson.M{"$set": bson.M{
		"status":    models.LeadStatusConverted,
		"clientId":  client.ID,
		"updatedAt": now,
	}})
	if err != nil {
		log.Printf("Failed to mark lead converted: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lead converted",
		Data:    client,
	})
}
