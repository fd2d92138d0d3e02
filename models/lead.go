package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead statuses
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Lead is a prospective customer in the sales pipeline
type Lead struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID primitive.ObjectID  `json:"organizationId" bson:"organizationId"`
	Name           string              `json:"name" bson:"name"`
	ContactPerson  string              `json:"contactPerson,omitempty" bson:"contactPerson,omitempty"`
	Email          string              `json:"email,omitempty" bson:"email,omitempty"`
	Phone          string              `json:"phone,omitempty" bson:"phone,omitempty"`
	Source         string              `json:"source,omitempty" bson:"source,omitempty"` // "referral", "web", "cold_call", "campaign"
	Status         string              `json:"status" bson:"status"`
	EstimatedValue float64             `json:"estimatedValue,omitempty" bson:"estimatedValue,omitempty"`
	AssignedTo     *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	CampaignID     *primitive.ObjectID `json:"campaignId,omitempty" bson:"campaignId,omitempty"`
	ClientID       *primitive.ObjectID `json:"clientId,omitempty" bson:"clientId,omitempty"` // set on conversion
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type CreateLeadRequest struct {
	Name           string  `json:"name" validate:"required"`
	ContactPerson  string  `json:"contactPerson,omitempty"`
	Email          string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string  `json:"phone,omitempty"`
	Source         string  `json:"source,omitempty"`
	EstimatedValue float64 `json:"estimatedValue,omitempty"`
	AssignedTo     string  `json:"assignedTo,omitempty"`
	CampaignID     string  `json:"campaignId,omitempty"`
}
