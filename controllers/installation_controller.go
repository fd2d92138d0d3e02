// controllers/installation_controller.go
package controllers

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
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

// InstallationController handles install crew schedule endpoints
type InstallationController struct {
	db  *mongo.Client
	hub *ws.Hub
}

// NewInstallationController creates a new installation schedule controller
func NewInstallationController(db *mongo.Client, hub *ws.Hub) *InstallationController {
	return &InstallationController{db: db, hub: hub}
}

// GetSchedules returns a paginated list of installation schedules
func (ic *InstallationController) GetSchedules(c echo.Context) error {
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

	filter := models.ScheduleFilter{
		OrganizationID: orgID,
		ProjectID:      objectIDQuery(c, "projectId"),
		Status:         c.QueryParam("status"),
		From:           dateQuery(c, "from"),
		To:             dateQuery(c, "to"),
		DateField:      "scheduledDate",
	}
	page, limit := pagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(ic.db, "installationSchedules")
	query := filter.Build()

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		log.Printf("Failed to count installation schedules: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduledDate", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		log.Printf("Failed to list installation schedules: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	schedules := []models.InstallationSchedule{}
	if err := cursor.All(ctx, &schedules); err != nil {
		log.Printf("Failed to decode installation schedules: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Installation schedules retrieved",
		Data: models.PaginatedResponse{
			Items: schedules,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// CreateSchedule books an install crew onto a site
func (ic *InstallationController) CreateSchedule(c echo.Context) error {
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

	var req models.CreateInstallationScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if req.ProjectID == "" || req.SiteAddress == "" || req.ScheduledDate == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "projectId, siteAddress and scheduledDate are required",
		})
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid project ID",
		})
	}

	scheduledDate := parseDate(req.ScheduledDate)
	if scheduledDate == nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid scheduledDate",
		})
	}

	now := time.Now()
	schedule := models.InstallationSchedule{
		ID:              primitive.NewObjectID(),
		OrganizationID:  orgID,
		ProjectID:       projectID,
		Crew:            req.Crew,
		SiteAddress:     utils.SanitizeInput(req.SiteAddress),
		ScheduledDate:   *scheduledDate,
		Status:          models.InstallStatusScheduled,
		PermitsRequired: req.PermitsRequired,
		Notes:           utils.SanitizeInput(req.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	if _, err := config.GetCollection(ic.db, "installationSchedules").InsertOne(ctx, schedule); err != nil {
		log.Printf("Failed to create installation schedule: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	ic.pushScheduleChange(ctx, &schedule)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Installation schedule created",
		Data:    schedule,
	})
}

// UpdateSchedule updates an installation schedule by ID
func (ic *InstallationController) UpdateSchedule(c echo.Context) error {
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

	scheduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid schedule ID",
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
	for _, field := range []string{"siteAddress", "status", "notes"} {
		if v, ok := body[field].(string); ok {
			update[field] = v
		}
	}
	if v, ok := body["permitsRequired"].(bool); ok {
		update["permitsRequired"] = v
	}
	if v, ok := body["crew"].([]interface{}); ok {
		crew := make([]string, 0, len(v))
		for _, member := range v {
			if name, ok := member.(string); ok {
				crew = append(crew, name)
			}
		}
		update["crew"] = crew
	}
	if v, ok := body["scheduledDate"].(string); ok {
		if t := parseDate(v); t != nil {
			update["scheduledDate"] = *t
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(ic.db, "installationSchedules")
	var updated models.InstallationSchedule
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": scheduleID, "organizationId": orgID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Schedule not found",
			})
		}
		log.Printf("Failed to update installation schedule: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	ic.pushScheduleChange(ctx, &updated)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Installation schedule updated",
		Data:    updated,
	})
}

// DeleteSchedule deletes an installation schedule by ID
func (ic *InstallationController) DeleteSchedule(c echo.Context) error {
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

	scheduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid schedule ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	result, err := config.GetCollection(ic.db, "installationSchedules").DeleteOne(ctx, bson.M{"_id": scheduleID, "organizationId": orgID})
	if err != nil {
		log.Printf("Failed to delete installation schedule: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Schedule not found",
		})
	}

	return c.NoContent(http.StatusNoContent)
}

// GetJobCard renders a QR code PNG pointing field crews at the
// schedule's job details
func (ic *InstallationController) GetJobCard(c echo.Context) error {
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

	scheduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid schedule ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	var schedule models.InstallationSchedule
	err = config.GetCollection(ic.db, "installationSchedules").FindOne(ctx, bson.M{"_id": scheduleID, "organizationId": orgID}).Decode(&schedule)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Schedule not found",
		})
	}

	payload := fmt.Sprintf("signforge://installation/%s?project=%s&date=%s",
		schedule.ID.Hex(), schedule.ProjectID.Hex(), schedule.ScheduledDate.Format("2006-01-02"))

	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		log.Printf("Failed to encode job card QR: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	code, err = barcode.Scale(code, 256, 256)
	if err != nil {
		log.Printf("Failed to scale job card QR: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		log.Printf("Failed to render job card PNG: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// pushScheduleChange notifies the project's sales rep, who owns the
// client relationship for install dates
func (ic *InstallationController) pushScheduleChange(ctx context.Context, schedule *models.InstallationSchedule) {
	if ic.hub == nil {
		return
	}
	var project models.Project
	err := config.GetCollection(ic.db, "projects").FindOne(ctx, bson.M{"_id": schedule.ProjectID}).Decode(&project)
	if err != nil || project.SalesRepID == nil {
		return
	}
	if err := ic.hub.NotifyScheduleChange(*project.SalesRepID, schedule); err != nil {
		log.Printf("Schedule push skipped: %v", err)
	}
}
