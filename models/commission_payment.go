package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommissionPayment is one monthly settlement for a user. Its amount
// always equals the sum of the commissions it marked paid; deleting it
// reverses those commissions back to pending.
type CommissionPayment struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        primitive.ObjectID   `json:"userId" bson:"userId"`
	Amount        float64              `json:"amount" bson:"amount"`
	Year          int                  `json:"year" bson:"year"`
	Month         int                  `json:"month" bson:"month"`
	PaidAt        time.Time            `json:"paidAt" bson:"paidAt"`
	Notes         string               `json:"notes,omitempty" bson:"notes,omitempty"`
	CommissionIDs []primitive.ObjectID `json:"commissionIds" bson:"commissionIds"`
}

type ProcessPaymentRequest struct {
	UserID string `json:"userId" validate:"required"`
	Year   int    `json:"year" validate:"required"`
	Month  int    `json:"month" validate:"required,min=1,max=12"`
	Notes  string `json:"notes,omitempty"`
}
