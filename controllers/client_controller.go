// controllers/client_controller.go
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

// ClientController handles client-related API endpoints
type ClientController struct {
	db *mongo.Client
}

// NewClientController creates a new client controller
func NewClientController(db *mongo.Client) *ClientController {
	return &ClientController{db: db}
}

// GetClients returns a paginated, filtered list of the organization's clients
func (cc *ClientController) GetClients(c echo.Context) error {
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

	filter := models.ClientFilter{
		OrganizationID: orgID,
		Status:         c.QueryParam("status"),
		Industry:       c.QueryParam("industry"),
		Search:         c.QueryParam("search"),
	}
	page, limit := pagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(cc.db, "clients")
	query := filter.Build()

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		log.Printf("Failed to count clients: %v", err)
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
		log.Printf("Failed to list clients: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	clients := []models.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		log.Printf("Failed to decode clients: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Clients retrieved",
		Data: models.PaginatedResponse{
			Items: clients,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// CreateClient creates a new client
func (cc *ClientController) CreateClient(c echo.Context) error {
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

	var req models.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Client name is required",
		})
	}

	now := time.Now()
	client := models.Client{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           utils.SanitizeInput(req.Name),
		ContactPerson:  utils.SanitizeInput(req.ContactPerson),
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        utils.SanitizeInput(req.Address),
		Industry:       req.Industry,
		Status:         "active",
		Notes:          utils.SanitizeInput(req.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	if _, err := config.GetCollection(cc.db, "clients").InsertOne(ctx, client); err != nil {
		log.Printf("Failed to create client: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Client created",
		Data:    client,
	})
}

// UpdateClient updates a client by ID
func (cc *ClientController) UpdateClient(c echo.Context) error {
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

	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID",
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
	for _, field := range []string{"name", "contactPerson", "email", "phone", "address", "industry", "status", "notes"} {
		if v, ok := body[field].(string); ok {
			update[field] = v
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(cc.db, "clients").UpdateOne(ctx,
		bson.M{"_id": clientID, "organizationId": orgID},
		bson.M{"$set": update},
	)
	if err != nil {
		log.Printf("Failed to update client: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Client not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Client updated",
	})
}

// DeleteClient deletes a client by ID
func (cc *ClientController) DeleteClient(c echo.Context) error {
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

	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(cc.db, "clients").DeleteOne(ctx, bson.M{"_id": clientID, "organizationId": orgID})
	if err != nil {
		log.Printf("Failed to delete client: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Client not found",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
