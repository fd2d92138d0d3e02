// controllers/commission_payment_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signforge/signforge_backend/config"
	"github.com/signforge/signforge_backend/middleware"
	"github.com/signforge/signforge_backend/models"
	"github.com/signforge/signforge_backend/repositories"
	"github.com/signforge/signforge_backend/services"
	"github.com/signforge/signforge_backend/utils"
	ws "github.com/signforge/signforge_backend/websocket"
)

// CommissionPaymentController handles monthly settlement endpoints
type CommissionPaymentController struct {
	db      *mongo.Client
	service *services.CommissionService
	repo    *repositories.CommissionRepository
	hub     *ws.Hub
}

// NewCommissionPaymentController creates a new settlement controller
func NewCommissionPaymentController(db *mongo.Client, hub *ws.Hub) *CommissionPaymentController {
	return &CommissionPaymentController{
		db:      db,
		service: services.NewCommissionService(db),
		repo:    repositories.NewCommissionRepository(db),
		hub:     hub,
	}
}

// ProcessPayment settles all of a user's pending commissions for a month
func (pc *CommissionPaymentController) ProcessPayment(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if req.UserID == "" || req.Year == 0 || req.Month < 1 || req.Month > 12 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "userId, year and month (1-12) are required",
		})
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payment, err := pc.service.ProcessMonthlyPayment(ctx, userID, req.Year, req.Month, req.Notes)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "This month has already been settled for the user",
			})
		}
		log.Printf("Failed to process commission payment: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
	if payment == nil {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "No pending commissions to settle",
			Data:    nil,
		})
	}

	if redisClient := config.GetRedisClient(); redisClient != nil {
		redisClient.Del(ctx, statsCacheKey(userID.Hex(), req.Year, req.Month))
	}

	go utils.NotifySettlement(pc.db, payment)
	if pc.hub != nil {
		if err := pc.hub.NotifySettlement(userID, payment); err != nil {
			log.Printf("Settlement push skipped: %v", err)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission payment processed",
		Data:    payment,
	})
}

// GetPayments returns a paginated list of settlements
func (pc *CommissionPaymentController) GetPayments(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	query := bson.M{}
	if userID := objectIDQuery(c, "userId"); userID != nil {
		query["userId"] = *userID
	}
	if claims.Role == models.RoleSalesRep {
		selfID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Unauthorized",
			})
		}
		query["userId"] = selfID
	}
	page, limit := pagination(c)

	payments, total, err := pc.repo.ListPayments(context.Background(), query, page, limit)
	if err != nil {
		log.Printf("Failed to list commission payments: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission payments retrieved",
		Data: models.PaginatedResponse{
			Items: payments,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// ReversePayment deletes a settlement and restores its commissions to pending
func (pc *CommissionPaymentController) ReversePayment(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	paymentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payment ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payment, err := pc.service.ReversePayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Payment not found",
			})
		}
		log.Printf("Failed to reverse commission payment: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	// Stats for the reversed month are stale now
	if redisClient := config.GetRedisClient(); redisClient != nil {
		redisClient.Del(ctx, statsCacheKey(payment.UserID.Hex(), payment.Year, payment.Month))
	}

	return c.NoContent(http.StatusNoContent)
}
