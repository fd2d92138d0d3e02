// controllers/production_controller.go
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
	ws "github.com/signforge/signforge_backend/websocket"
)

// ProductionController handles shop-floor schedule endpoints
type ProductionController struct {
	db  *mongo.Client
	hub *ws.Hub
}

// NewProductionController creates a new production schedule controller
func NewProductionController(db *mongo.Client, hub *ws.Hub) *ProductionController {
	return &ProductionController{db: db, hub: hub}
}

// GetSchedules returns a paginated list of production schedules
func (pc *ProductionController) GetSchedules(c echo.Context) error {
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
		Station:        c.QueryParam("station"),
		From:           dateQuery(c, "from"),
		To:             dateQuery(c, "to"),
		DateField:      "startDate",
	}
	page, limit := pagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(pc.db, "productionSchedules")
	query := filter.Build()

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		log.Printf("Failed to count production schedules: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "startDate", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		log.Printf("Failed to list production schedules: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	schedules := []models.ProductionSchedule{}
	if err := cursor.All(ctx, &schedules); err != nil {
		log.Printf("Failed to decode production schedules: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Production schedules retrieved",
		Data: models.PaginatedResponse{
			Items: schedules,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// CreateSchedule books a project onto a station
func (pc *ProductionController) CreateSchedule(c echo.Context) error {
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

	var req models.CreateProductionScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if req.ProjectID == "" || req.Station == "" || req.StartDate == "" || req.EndDate == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "projectId, station, startDate and endDate are required",
		})
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid project ID",
		})
	}

	start := parseDate(req.StartDate)
	end := parseDate(req.EndDate)
	if start == nil || end == nil || !end.After(*start) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "endDate must be after startDate",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(pc.db, "productionSchedules")

	// A station cannot run two jobs in overlapping windows
	overlap, err := coll.CountDocuments(ctx, bson.M{
		"organizationId": orgID,
		"station":        req.Station,
		"status":         bson.M{"$ne": "done"},
		"startDate":      bson.M{"$lt": *end},
		"endDate":        bson.M{"$gt": *start},
	})
	if err != nil {
		log.Printf("Failed to check station availability: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if overlap > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Station is already booked for this window",
		})
	}

	now := time.Now()
	schedule := models.ProductionSchedule{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		ProjectID:      projectID,
		Station:        req.Station,
		StartDate:      *start,
		EndDate:        *end,
		Status:         "queued",
		Notes:          utils.SanitizeInput(req.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.AssignedTo != "" {
		if id, err := primitive.ObjectIDFromHex(req.AssignedTo); err == nil {
			schedule.AssignedTo = &id
		}
	}

	if _, err := coll.InsertOne(ctx, schedule); err != nil {
		log.Printf("Failed to create production schedule: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	pc.pushScheduleChange(&schedule)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Production schedule created",
		Data:    schedule,
	})
}

// UpdateSchedule updates a production schedule by ID
func (pc *ProductionController) UpdateSchedule(c echo.Context) error {
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
	for _, field := range []string{"station", "status", "notes"} {
		if v, ok := body[field].(string); ok {
			update[field] = v
		}
	}
	if v, ok := body["assignedTo"].(string); ok {
		if id, err := primitive.ObjectIDFromHex(v); err == nil {
			update["assignedTo"] = id
		}
	}
	for _, field := range []string{"startDate", "endDate"} {
		if v, ok := body[field].(string); ok {
			if t := parseDate(v); t != nil {
				update[field] = *t
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	coll := config.GetCollection(pc.db, "productionSchedules")
	var updated models.ProductionSchedule
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
		log.Printf("Failed to update production schedule: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	pc.pushScheduleChange(&updated)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Production schedule updated",
		Data:    updated,
	})
}

// DeleteSchedule deletes a production schedule by ID
func (pc *ProductionController) DeleteSchedule(c echo.Context) error {
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

	result, err := config.GetCollection(pc.db, "productionSchedules").DeleteOne(ctx, bson.M{"_id": scheduleID, "organizationId": orgID})
	if err != nil {
		log.Printf("Failed to delete production schedule: %v", err)
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

func (pc *ProductionController) pushScheduleChange(schedule *models.ProductionSchedule) {
	if pc.hub == nil || schedule.AssignedTo == nil {
		return
	}
	if err := pc.hub.NotifyScheduleChange(*schedule.AssignedTo, schedule); err != nil {
		log.Printf("Schedule push skipped: %v", err)
	}
}
