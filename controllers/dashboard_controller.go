// controllers/dashboard_controller.go
package controllers

import (
	"context"
	"encoding/json"
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
)

const dashboardCacheTTL = 2 * time.Minute

// DashboardSummary aggregates the counts shown on the landing screen
type DashboardSummary struct {
	ActiveClients        int64   `json:"activeClients"`
	OpenLeads            int64   `json:"openLeads"`
	ActiveProjects       int64   `json:"activeProjects"`
	OpenIssues           int64   `json:"openIssues"`
	PendingDesignReviews int64   `json:"pendingDesignReviews"`
	UpcomingInstalls     int64   `json:"upcomingInstalls"`
	PendingCommissions   float64 `json:"pendingCommissions"`
}

// DashboardController serves the organization summary endpoint
type DashboardController struct {
	db *mongo.Client
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(db *mongo.Client) *DashboardController {
	return &DashboardController{db: db}
}

// GetSummary returns the organization's dashboard counters, cached in
// Redis for a couple of minutes
func (dc *DashboardController) GetSummary(c echo.Context) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), defaultDBTimeout)
	defer cancel()

	cacheKey := "dashboard:summary:" + orgID.Hex()
	if redisClient := config.GetRedisClient(); redisClient != nil {
		if cached, err := redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var summary DashboardSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return c.JSON(http.StatusOK, models.Response{
					Status:  http.StatusOK,
					Message: "Dashboard summary retrieved",
					Data:    summary,
				})
			}
		}
	}

	summary, err := dc.buildSummary(ctx, orgID)
	if err != nil {
		log.Printf("Failed to build dashboard summary: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal error",
		})
	}

	if redisClient := config.GetRedisClient(); redisClient != nil {
		if payload, err := json.Marshal(summary); err == nil {
			redisClient.Set(ctx, cacheKey, payload, dashboardCacheTTL)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard summary retrieved",
		Data:    summary,
	})
}

func (dc *DashboardController) buildSummary(ctx context.Context, orgID primitive.ObjectID) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	counts := []struct {
		collection string
		filter     bson.M
		target     *int64
	}{
		{"clients", bson.M{"organizationId": orgID, "status": "active"}, &summary.ActiveClients},
		{"leads", bson.M{"organizationId": orgID, "status": bson.M{"$nin": bson.A{models.LeadStatusConverted, models.LeadStatusLost}}}, &summary.OpenLeads},
		{"projects", bson.M{"organizationId": orgID, "status": bson.M{"$in": bson.A{
			models.ProjectStatusInProgress, models.ProjectStatusProduction, models.ProjectStatusInstallation,
		}}}, &summary.ActiveProjects},
		{"issues", bson.M{"organizationId": orgID, "status": bson.M{"$in": bson.A{"open", "in_progress"}}}, &summary.OpenIssues},
		{"designVersions", bson.M{"organizationId": orgID, "status": models.DesignStatusPendingReview}, &summary.PendingDesignReviews},
		{"installationSchedules", bson.M{
			"organizationId": orgID,
			"status":         models.InstallStatusScheduled,
			"scheduledDate":  bson.M{"$gte": time.Now(), "$lt": time.Now().AddDate(0, 0, 14)},
		}, &summary.UpcomingInstalls},
	}

	for _, count := range counts {
		n, err := config.GetCollection(dc.db, count.collection).CountDocuments(ctx, count.filter)
		if err != nil {
			return nil, err
		}
		*count.target = n
	}

	// Pending commission total needs the org's users first: commissions
	// carry no organizationId of their own
	userCursor, err := config.GetCollection(dc.db, "users").Find(ctx, bson.M{"organizationId": orgID})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := userCursor.All(ctx, &users); err != nil {
		return nil, err
	}
	userIDs := make(bson.A, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}

	if len(userIDs) > 0 {
		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{
				"userId": bson.M{"$in": userIDs},
				"status": models.CommissionStatusPending,
			}}},
			{{Key: "$group", Value: bson.M{
				"_id":   nil,
				"total": bson.M{"$sum": "$amount"},
			}}},
		}
		cursor, err := config.GetCollection(dc.db, "commissions").Aggregate(ctx, pipeline)
		if err != nil {
			return nil, err
		}
		var groups []struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.All(ctx, &groups); err != nil {
			return nil, err
		}
		if len(groups) > 0 {
			summary.PendingCommissions = groups[0].Total
		}
	}

	return summary, nil
}
