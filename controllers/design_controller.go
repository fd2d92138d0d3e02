// controllers/design_controller.go
package controllers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/signforge/signforge_backend/config"
	"github.com/signforge/signforge_backend/middleware"
	"github.com/signforge/signforge_backend/models"
	"github.com/signforge/signforge_backend/utils"
	ws "github.com/signforge/signforge_backend/websocket"
)

// DesignController handles design proof upload and review endpoints
type DesignController struct {
	db  *mongo.Client
	hub *ws.Hub
}

// NewDesignController creates a new design controller
func NewDesignController(db *mongo.Client, hub *ws.Hub) *DesignController {
	return &DesignController{db: db, hub: hub}
}

// GetDesignVersions returns the design versions of a project, newest first
func (dc *DesignController) GetDesignVersions(c echo.Context) error {
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
	if projectID := objectIDQuery(c, "projectId"); projectID != nil {
		query["projectId"] = *projectID
	}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}
	page, limit := pagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(dc.db, "designVersions")

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		log.Printf("Failed to count design versions: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "version", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		log.Printf("Failed to list design versions: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	versions := []models.DesignVersion{}
	if err := cursor.All(ctx, &versions); err != nil {
		log.Printf("Failed to decode design versions: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Design versions retrieved",
		Data: models.PaginatedResponse{
			Items: versions,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// UploadDesign accepts a multipart design proof and stores it as the
// project's next version, pending review
func (dc *DesignController) UploadDesign(c echo.Context) error {
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

	submitterID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	projectHex := c.FormValue("projectId")
	if projectHex == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "projectId is required",
		})
	}
	projectID, err := primitive.ObjectIDFromHex(projectHex)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid project ID",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Design file is required",
		})
	}
	if err := utils.ValidateDesignFileType(fileHeader.Filename); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open uploaded design: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	defer src.Close()

	fileData, err := io.ReadAll(src)
	if err != nil {
		log.Printf("Failed to read uploaded design: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	// Stored name is unique per upload; the original name only
	// contributes its extension
	storedName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	filePath, err := utils.SaveDesignFile(fileData, storedName)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	thumbPath, err := utils.GenerateDesignThumbnail(filePath)
	if err != nil {
		log.Printf("Failed to generate design thumbnail: %v", err)
		thumbPath = ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(dc.db, "designVersions")

	// Next version number for the project
	var latest models.DesignVersion
	version := 1
	err = coll.FindOne(ctx, bson.M{"projectId": projectID},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})).Decode(&latest)
	if err == nil {
		version = latest.Version + 1
	} else if err != mongo.ErrNoDocuments {
		log.Printf("Failed to find latest design version: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	now := time.Now()
	design := models.DesignVersion{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		ProjectID:      projectID,
		Version:        version,
		FilePath:       filePath,
		ThumbnailPath:  thumbPath,
		Status:         models.DesignStatusPendingReview,
		SubmittedBy:    submitterID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := coll.InsertOne(ctx, design); err != nil {
		log.Printf("Failed to create design version: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Design version uploaded",
		Data:    design,
	})
}

// DecideDesign approves or rejects a pending design version
func (dc *DesignController) DecideDesign(c echo.Context) error {
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

	reviewerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	designID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid design version ID",
		})
	}

	var req models.DesignDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if req.Status != models.DesignStatusApproved && req.Status != models.DesignStatusRejected {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Status must be approved or rejected",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(dc.db, "designVersions")

	// Only pending versions can be decided; decisions are final
	var updated models.DesignVersion
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": designID, "organizationId": orgID, "status": models.DesignStatusPendingReview},
		bson.M{"$set": bson.M{
			"status":     req.Status,
			"reviewedBy": reviewerID,
			"reviewNote": req.ReviewNote,
			"updatedAt":  time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Either missing or already decided
			count, countErr := coll.CountDocuments(ctx, bson.M{"_id": designID, "organizationId": orgID})
			if countErr == nil && count > 0 {
				return c.JSON(http.StatusConflict, models.Response{
					Status:  http.StatusConflict,
					Message: "Design version has already been reviewed",
				})
			}
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Design version not found",
			})
		}
		log.Printf("Failed to decide design version: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	var project models.Project
	projectName := updated.ProjectID.Hex()
	if err := config.GetCollection(dc.db, "projects").FindOne(ctx, bson.M{"_id": updated.ProjectID}).Decode(&project); err == nil {
		projectName = project.Name
	}

	go utils.NotifyDesignDecision(dc.db, &updated, projectName)
	if dc.hub != nil {
		if err := dc.hub.NotifyDesignDecision(updated.SubmittedBy, updated); err != nil {
			log.Printf("Design decision push skipped: %v", err)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Design decision recorded",
		Data:    updated,
	})
}
