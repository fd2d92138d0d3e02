package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commission types
const (
	CommissionTypeSelfGenerated   = "self_generated"
	CommissionTypeCompanyProvided = "company_provided"
	CommissionTypeOverride        = "override"
)

// Commission statuses
const (
	CommissionStatusPending = "pending"
	CommissionStatusPaid    = "paid"
)

// Commission is a single earned commission on a project. At most one
// row exists per (projectId, userId, type).
type Commission struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	ProjectID  primitive.ObjectID `json:"projectId" bson:"projectId"`
	Amount     float64            `json:"amount" bson:"amount"`
	Type       string             `json:"type" bson:"type"`
	Percentage float64            `json:"percentage" bson:"percentage"`
	Status     string             `json:"status" bson:"status"`
	PaidAt     *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

type CalculateCommissionRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
	Type      string `json:"type" validate:"required"`
}

// CommissionStats summarises one user's commissions for a month
type CommissionStats struct {
	Count         int64   `json:"count"`
	PendingAmount float64 `json:"pendingAmount"`
	PaidAmount    float64 `json:"paidAmount"`
}
