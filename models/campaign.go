package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign is a marketing campaign leads can be attributed to
type Campaign struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID primitive.ObjectID `json:"organizationId" bson:"organizationId"`
	Name           string             `json:"name" bson:"name"`
	Channel        string             `json:"channel,omitempty" bson:"channel,omitempty"` // "email", "social", "print", "trade_show"
	Budget         float64            `json:"budget,omitempty" bson:"budget,omitempty"`
	StartDate      *time.Time         `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate        *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Status         string             `json:"status" bson:"status"` // "planned", "running", "finished"
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateCampaignRequest struct {
	Name      string  `json:"name" validate:"required"`
	Channel   string  `json:"channel,omitempty"`
	Budget    float64 `json:"budget,omitempty"`
	StartDate string  `json:"startDate,omitempty"`
	EndDate   string  `json:"endDate,omitempty"`
}
