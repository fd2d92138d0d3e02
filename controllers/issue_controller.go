// controllers/issue_controller.go
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

// IssueController handles project issue endpoints
type IssueController struct {
	db *mongo.Client
}

// NewIssueController creates a new issue controller
func NewIssueController(db *mongo.Client) *IssueController {
	return &IssueController{db: db}
}

// GetIssues returns a paginated, filtered list of issues
func (ic *IssueController) GetIssues(c echo.Context) error {
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

	filter := models.IssueFilter{
		OrganizationID: orgID,
		ProjectID:      objectIDQuery(c, "projectId"),
		Severity:       c.QueryParam("severity"),
		Status:         c.QueryParam("status"),
		Search:         c.QueryParam("search"),
	}
	page, limit := pagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(ic.db, "issues")
	query := filter.Build()

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		log.Printf("Failed to count issues: %v", err)
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
		log.Printf("Failed to list issues: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		log.Printf("Failed to decode issues: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Issues retrieved",
		Data: models.PaginatedResponse{
			Items: issues,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// CreateIssue reports a new issue against a project
func (ic *IssueController) CreateIssue(c echo.Context) error {
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

	reporterID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.CreateIssueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if req.Title == "" || req.ProjectID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Title and projectId are required",
		})
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid project ID",
		})
	}

	severity := req.Severity
	if severity == "" {
		severity = "medium"
	}

	now := time.Now()
	issue := models.Issue{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		ProjectID:      projectID,
		Title:          utils.SanitizeInput(req.Title),
		Description:    utils.SanitizeInput(req.Description),
		Severity:       severity,
		Status:         "open",
		ReportedBy:     reporterID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.AssignedTo != "" {
		if id, err := primitive.ObjectIDFromHex(req.AssignedTo); err == nil {
			issue.AssignedTo = &id
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	if _, err := config.GetCollection(ic.db, "issues").InsertOne(ctx, issue); err != nil {
		log.Printf("Failed to create issue: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	// Assignees hear about new issues straight away
	if issue.AssignedTo != nil {
		if err := utils.SaveNotification(ic.db, *issue.AssignedTo, "Issue assigned",
			"You were assigned issue: "+issue.Title, models.NotificationTypeIssueReported, map[string]interface{}{
				"issueId":   issue.ID.Hex(),
				"projectId": issue.ProjectID.Hex(),
			}); err != nil {
			log.Printf("Failed to save issue notification: %v", err)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Issue created",
		Data:    issue,
	})
}

// UpdateIssue updates an issue by ID
func (ic *IssueController) UpdateIssue(c echo.Context) error {
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

	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid issue ID",
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
	for _, field := range []string{"title", "description", "severity", "status"} {
		if v, ok := body[field].(string); ok {
			update[field] = v
		}
	}
	if v, ok := body["assignedTo"].(string); ok {
		if id, err := primitive.ObjectIDFromHex(v); err == nil {
			update["assignedTo"] = id
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(ic.db, "issues").UpdateOne(ctx,
		bson.M{"_id": issueID, "organizationId": orgID},
		bson.M{"$set": update},
	)
	if err != nil {
		log.Printf("Failed to update issue: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Issue not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Issue updated",
	})
}

// DeleteIssue deletes an issue by ID
func (ic *IssueController) DeleteIssue(c echo.Context) error {
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

	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid issue ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(ic.db, "issues").DeleteOne(ctx, bson.M{"_id": issueID, "organizationId": orgID})
	if err != nil {
		log.Printf("Failed to delete issue: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Issue not found",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
