// controllers/commission_controller.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signforge/signforge_backend/config"
	"github.com/signforge/signforge_backend/middleware"
	"github.com/signforge/signforge_backend/models"
	"github.com/signforge/signforge_backend/repositories"
	"github.com/signforge/signforge_backend/services"
)

const statsCacheTTL = 5 * time.Minute

// CommissionController handles commission calculation, listing and stats
type CommissionController struct {
	db      *mongo.Client
	service *services.CommissionService
	repo    *repositories.CommissionRepository
}

// NewCommissionController creates a new commission controller
func NewCommissionController(db *mongo.Client) *CommissionController {
	return &CommissionController{
		db:      db,
		service: services.NewCommissionService(db),
		repo:    repositories.NewCommissionRepository(db),
	}
}

func statsCacheKey(userID string, year, month int) string {
	return fmt.Sprintf("commission:stats:%s:%d:%d", userID, year, month)
}

// CalculateCommission computes and records a commission for a project/user pair
func (cc *CommissionController) CalculateCommission(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.CalculateCommissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if req.ProjectID == "" || req.UserID == "" || req.Type == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "projectId, userId and type are required",
		})
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid project ID",
		})
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	commission, err := cc.service.CalculateCommission(ctx, projectID, userID, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Project or user not found",
			})
		case errors.Is(err, services.ErrNoCommissionRate):
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "No commission rate for this role and type",
			})
		case mongo.IsDuplicateKeyError(err):
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Commission already exists for this project, user and type",
			})
		}
		log.Printf("Failed to calculate commission: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	// Stale cached stats for this user are dropped rather than updated
	if redisClient := config.GetRedisClient(); redisClient != nil {
		now := time.Now()
		redisClient.Del(ctx, statsCacheKey(userID.Hex(), now.Year(), int(now.Month())))
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission calculated",
		Data:    commission,
	})
}

// GetCommissions returns a paginated, filtered list of commissions
func (cc *CommissionController) GetCommissions(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	filter := models.CommissionFilter{
		UserID:    objectIDQuery(c, "userId"),
		ProjectID: objectIDQuery(c, "projectId"),
		Status:    c.QueryParam("status"),
		Type:      c.QueryParam("type"),
		From:      dateQuery(c, "from"),
		To:        dateQuery(c, "to"),
	}

	// Sales reps only ever see their own commissions
	if claims.Role == models.RoleSalesRep {
		selfID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Unauthorized",
			})
		}
		filter.UserID = &selfID
	}

	page, limit := pagination(c)

	commissions, total, err := cc.repo.List(context.Background(), filter, page, limit)
	if err != nil {
		log.Printf("Failed to list commissions: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commissions retrieved",
		Data: models.PaginatedResponse{
			Items: commissions,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// GetStats returns a user's commission stats for a month, cached in Redis
func (cc *CommissionController) GetStats(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	userHex := c.QueryParam("userId")
	if userHex == "" || claims.Role == models.RoleSalesRep {
		userHex = claims.UserID
	}
	userID, err := primitive.ObjectIDFromHex(userHex)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	now := time.Now()
	year, _ := strconv.Atoi(c.QueryParam("year"))
	if year == 0 {
		year = now.Year()
	}
	month, _ := strconv.Atoi(c.QueryParam("month"))
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	cacheKey := statsCacheKey(userID.Hex(), year, month)
	if redisClient := config.GetRedisClient(); redisClient != nil {
		if cached, err := redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var stats models.CommissionStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Commission stats retrieved",
					Data:    stats,
				})
			}
		}
	}

	stats, err := cc.service.GetUserCommissionStats(ctx, userID, year, month)
	if err != nil {
		log.Printf("Failed to get commission stats: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	if redisClient := config.GetRedisClient(); redisClient != nil {
		if payload, err := json.Marshal(stats); err == nil {
			redisClient.Set(ctx, cacheKey, payload, statsCacheTTL)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission stats retrieved",
		Data:    stats,
	})
}
