package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/signforge/signforge_backend/config"
	"github.com/signforge/signforge_backend/models"
)

// CommissionRepository wraps the commissions and commissionPayments
// collections for the read paths shared by controllers
type CommissionRepository struct {
	db *mongo.Client
}

func NewCommissionRepository(db *mongo.Client) *CommissionRepository {
	return &CommissionRepository{db: db}
}

// List returns a page of commissions matching the filter, newest first
func (r *CommissionRepository) List(ctx context.Context, filter models.CommissionFilter, page, limit int) ([]models.Commission, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	coll := config.GetCollection(r.db, "commissions")
	query := filter.Build()

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	commissions := []models.Commission{}
	if err := cursor.All(ctx, &commissions); err != nil {
		return nil, 0, err
	}
	return commissions, total, nil
}

// ListPayments returns a page of settlements for a user, newest first
func (r *CommissionRepository) ListPayments(ctx context.Context, query bson.M, page, limit int) ([]models.CommissionPayment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	coll := config.GetCollection(r.db, "commissionPayments")

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "paidAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	payments := []models.CommissionPayment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
