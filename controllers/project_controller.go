// controllers/project_controller.go
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

// ProjectController handles signage project endpoints
type ProjectController struct {
	db *mongo.Client
}

// NewProjectController creates a new project controller
func NewProjectController(db *mongo.Client) *ProjectController {
	return &ProjectController{db: db}
}

// GetProjects returns a paginated, filtered list of projects
func (pc *ProjectController) GetProjects(c echo.Context) error {
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

	filter := models.ProjectFilter{
		OrganizationID: orgID,
		ClientID:       objectIDQuery(c, "clientId"),
		SalesRepID:     objectIDQuery(c, "salesRepId"),
		Status:         c.QueryParam("status"),
		DueAfter:       dateQuery(c, "dueAfter"),
		DueBefore:      dateQuery(c, "dueBefore"),
		Search:         c.QueryParam("search"),
	}
	page, limit := pagination(c)

	query := filter.Build()

	// Budget range filters come as plain numbers in the query string
	if minBudget, err := utils.ParseFloat(c.QueryParam("minBudget")); err == nil && minBudget > 0 {
		query["budget"] = bson.M{"$gte": minBudget}
	}
	if maxBudget, err := utils.ParseFloat(c.QueryParam("maxBudget")); err == nil && maxBudget > 0 {
		if existing, ok := query["budget"].(bson.M); ok {
			existing["$lte"] = maxBudget
		} else {
			query["budget"] = bson.M{"$lte": maxBudget}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(pc.db, "projects")

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		log.Printf("Failed to count projects: %v", err)
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
		log.Printf("Failed to list projects: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		log.Printf("Failed to decode projects: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Projects retrieved",
		Data: models.PaginatedResponse{
			Items: projects,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// GetProject returns a single project by ID
func (pc *ProjectController) GetProject(c echo.Context) error {
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

	projectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid project ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	var project models.Project
	err = config.GetCollection(pc.db, "projects").FindOne(ctx, bson.M{"_id": projectID, "organizationId": orgID}).Decode(&project)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Project not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Project retrieved",
		Data:    project,
	})
}

// CreateProject creates a new project
func (pc *ProjectController) CreateProject(c echo.Context) error {
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

	var req models.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if req.Name == "" || req.ClientID == "" || req.Budget == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name, clientId and budget are required",
		})
	}

	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	// Client must belong to the same organization
	count, err := config.GetCollection(pc.db, "clients").CountDocuments(ctx, bson.M{"_id": clientID, "organizationId": orgID})
	if err != nil {
		log.Printf("Failed to check client: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if count == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Client not found in organization",
		})
	}

	now := time.Now()
	project := models.Project{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		ClientID:       clientID,
		Name:           utils.SanitizeInput(req.Name),
		Description:    utils.SanitizeInput(req.Description),
		Budget:         req.Budget,
		Status:         models.ProjectStatusDraft,
		StartDate:      parseDate(req.StartDate),
		DueDate:        parseDate(req.DueDate),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.SalesRepID != "" {
		if id, err := primitive.ObjectIDFromHex(req.SalesRepID); err == nil {
			project.SalesRepID = &id
		}
	}

	if _, err := config.GetCollection(pc.db, "projects").InsertOne(ctx, project); err != nil {
		log.Printf("Failed to create project: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Project created",
		Data:    project,
	})
}

// UpdateProject updates a project's status, budget or metadata
func (pc *ProjectController) UpdateProject(c echo.Context) error {
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

	projectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid project ID",
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
	for _, field := range []string{"name", "description", "status"} {
		if v, ok := body[field].(string); ok {
			update[field] = v
		}
	}
	if v, ok := body["budget"].(float64); ok {
		update["budget"] = v
	}
	if v, ok := body["salesRepId"].(string); ok {
		if id, err := primitive.ObjectIDFromHex(v); err == nil {
			update["salesRepId"] = id
		}
	}
	if v, ok := body["dueDate"].(string); ok {
		if t := parseDate(v); t != nil {
			update["dueDate"] = *t
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(pc.db, "projects").UpdateOne(ctx,
		bson.M{"_id": projectID, "organizationId": orgID},
		bson.M{"$set": update},
	)
	if err != nil {
		log.Printf("Failed to update project: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Project not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Project updated",
	})
}

// DeleteProject deletes a project by ID
func (pc *ProjectController) DeleteProject(c echo.Context) error {
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

	projectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid project ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(pc.db, "projects").DeleteOne(ctx, bson.M{"_id": projectID, "organizationId": orgID})
	if err != nil {
		log.Printf("Failed to delete project: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Project not found",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
