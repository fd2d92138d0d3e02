// services/commission_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/signforge/signforge_backend/config"
	"github.com/signforge/signforge_backend/models"
)

var (
	// ErrNotFound means the referenced project or user does not exist
	ErrNotFound = errors.New("referenced record not found")
	// ErrNoCommissionRate means the role/type pair has no entry in the
	// rate table
	ErrNoCommissionRate = errors.New("no commission rate configured for role/type")
)

// commissionRates is the fixed role x type rate matrix. Sales reps have
// no override rate: overrides always go to a team leader.
var commissionRates = map[string]map[string]float64{
	models.RoleTeamLeader: {
		models.CommissionTypeSelfGenerated:   0.40,
		models.CommissionTypeCompanyProvided: 0.33,
		models.CommissionTypeOverride:        0.10,
	},
	models.RoleSalesRep: {
		models.CommissionTypeSelfGenerated:   0.30,
		models.CommissionTypeCompanyProvided: 0.25,
	},
}

// CommissionRate looks up the rate for a role/type pair
func CommissionRate(role, commissionType string) (float64, error) {
	rates, ok := commissionRates[role]
	if !ok {
		return 0, ErrNoCommissionRate
	}
	rate, ok := rates[commissionType]
	if !ok {
		return 0, ErrNoCommissionRate
	}
	return rate, nil
}

// CommissionAmount computes the commission on a project budget,
// rounded to 2 decimals
func CommissionAmount(budget, rate float64) float64 {
	return math.Round(budget*rate*100) / 100
}

// MonthWindow returns [first day of month, first day of next month)
func MonthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// CommissionService computes and settles sales commissions
type CommissionService struct {
	db *mongo.Client
}

// NewCommissionService creates a new commission service
func NewCommissionService(db *mongo.Client) *CommissionService {
	return &CommissionService{db: db}
}

// CalculateCommission computes a commission for the given project,
// user and type and inserts it as pending. When the user is a sales
// rep and a team leader exists, an override commission for that team
// leader is created as well.
func (s *CommissionService) CalculateCommission(ctx context.Context, projectID, userID primitive.ObjectID, commissionType string) (*models.Commission, error) {
	projectColl := config.GetCollection(s.db, "projects")
	userColl := config.GetCollection(s.db, "users")
	commissionColl := config.GetCollection(s.db, "commissions")

	var project models.Project
	if err := projectColl.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("project %s: %w", projectID.Hex(), ErrNotFound)
		}
		return nil, err
	}

	var user models.User
	if err := userColl.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %s: %w", userID.Hex(), ErrNotFound)
		}
		return nil, err
	}

	rate, err := CommissionRate(user.Role, commissionType)
	if err != nil {
		return nil, err
	}

	commission := models.Commission{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		ProjectID:  projectID,
		Amount:     CommissionAmount(project.Budget, rate),
		Type:       commissionType,
		Percentage: rate,
		Status:     models.CommissionStatusPending,
		CreatedAt:  time.Now(),
	}
	if _, err := commissionColl.InsertOne(ctx, commission); err != nil {
		return nil, err
	}

	// Calculating a sales rep's commission always grants the team
	// leader an override on the same budget, independent of team
	// assignment (first team leader in the organization).
	if user.Role == models.RoleSalesRep {
		if err := s.createOverrideCommission(ctx, &project, &user); err != nil {
			log.Printf("Failed to create override commission for project %s: %v", projectID.Hex(), err)
		}
	}

	return &commission, nil
}

func (s *CommissionService) createOverrideCommission(ctx context.Context, project *models.Project, salesRep *models.User) error {
	userColl := config.GetCollection(s.db, "users")
	commissionColl := config.GetCollection(s.db, "commissions")

	var teamLeader models.User
	err := userColl.FindOne(ctx, bson.M{
		"organizationId": salesRep.OrganizationID,
		"role":           models.RoleTeamLeader,
	}).Decode(&teamLeader)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil // no team leader, no override
		}
		return err
	}

	rate, err := CommissionRate(models.RoleTeamLeader, models.CommissionTypeOverride)
	if err != nil {
		return err
	}

	override := models.Commission{
		ID:         primitive.NewObjectID(),
		UserID:     teamLeader.ID,
		ProjectID:  project.ID,
		Amount:     CommissionAmount(project.Budget, rate),
		Type:       models.CommissionTypeOverride,
		Percentage: rate,
		Status:     models.CommissionStatusPending,
		CreatedAt:  time.Now(),
	}
	_, err = commissionColl.InsertOne(ctx, override)
	return err
}

// ProcessMonthlyPayment settles all pending commissions of a user for
// the given month. Returns (nil, nil) when there is nothing to settle.
// Payment insert and commission update run in one transaction so
// concurrent settlement calls cannot double-pay.
func (s *CommissionService) ProcessMonthlyPayment(ctx context.Context, userID primitive.ObjectID, year, month int, notes string) (*models.CommissionPayment, error) {
	commissionColl := config.GetCollection(s.db, "commissions")
	paymentColl := config.GetCollection(s.db, "commissionPayments")

	start, end := MonthWindow(year, month)
	filter := models.CommissionFilter{
		UserID: &userID,
		Status: models.CommissionStatusPending,
		From:   &start,
		To:     &end,
	}.Build()

	session, err := s.db.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		cursor, err := commissionColl.Find(sc, filter)
		if err != nil {
			return nil, err
		}
		var pending []models.Commission
		if err := cursor.All(sc, &pending); err != nil {
			return nil, err
		}
		if len(pending) == 0 {
			return nil, nil
		}

		now := time.Now()
		var total float64
		ids := make([]primitive.ObjectID, 0, len(pending))
		for _, c := range pending {
			total += c.Amount
			ids = append(ids, c.ID)
		}

		payment := models.CommissionPayment{
			ID:            primitive.NewObjectID(),
			UserID:        userID,
			Amount:        math.Round(total*100) / 100,
			Year:          year,
			Month:         month,
			PaidAt:        now,
			Notes:         notes,
			CommissionIDs: ids,
		}
		if _, err := paymentColl.InsertOne(sc, payment); err != nil {
			return nil, err
		}

		_, err = commissionColl.UpdateMany(sc,
			bson.M{"_id": bson.M{"$in": ids}},
			bson.M{"$set": bson.M{
				"status": models.CommissionStatusPaid,
				"paidAt": now,
			}},
		)
		if err != nil {
			return nil, err
		}
		return &payment, nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*models.CommissionPayment), nil
}

// ReversePayment deletes a settlement and moves its commissions back
// to pending with paidAt cleared, in one transaction. The deleted
// payment is returned so callers can invalidate month-scoped caches.
func (s *CommissionService) ReversePayment(ctx context.Context, paymentID primitive.ObjectID) (*models.CommissionPayment, error) {
	commissionColl := config.GetCollection(s.db, "commissions")
	paymentColl := config.GetCollection(s.db, "commissionPayments")

	session, err := s.db.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var payment models.CommissionPayment
		if err := paymentColl.FindOne(sc, bson.M{"_id": paymentID}).Decode(&payment); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, fmt.Errorf("payment %s: %w", paymentID.Hex(), ErrNotFound)
			}
			return nil, err
		}

		_, err := commissionColl.UpdateMany(sc,
			bson.M{"_id": bson.M{"$in": payment.CommissionIDs}},
			bson.M{
				"$set":   bson.M{"status": models.CommissionStatusPending},
				"$unset": bson.M{"paidAt": ""},
			},
		)
		if err != nil {
			return nil, err
		}

		if _, err := paymentColl.DeleteOne(sc, bson.M{"_id": paymentID}); err != nil {
			return nil, err
		}
		return &payment, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.CommissionPayment), nil
}

// GetUserCommissionStats returns count, pending sum and paid sum of a
// user's commissions in the given month. Zeros when there are none.
func (s *CommissionService) GetUserCommissionStats(ctx context.Context, userID primitive.ObjectID, year, month int) (*models.CommissionStats, error) {
	commissionColl := config.GetCollection(s.db, "commissions")

	start, end := MonthWindow(year, month)
	match := models.CommissionFilter{
		UserID: &userID,
		From:   &start,
		To:     &end,
	}.Build()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := commissionColl.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, err
	}
	var groups []struct {
		Status string  `bson:"_id"`
		Count  int64   `bson:"count"`
		Total  float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}

	stats := &models.CommissionStats{}
	for _, g := range groups {
		stats.Count += g.Count
		switch g.Status {
		case models.CommissionStatusPending:
			stats.PendingAmount = g.Total
		case models.CommissionStatusPaid:
			stats.PaidAmount = g.Total
		}
	}
	return stats, nil
}
