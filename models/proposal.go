package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProposalItem is one line of a proposal
type ProposalItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unitPrice" bson:"unitPrice"`
}

// Proposal is a priced offer sent to a client
type Proposal struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID primitive.ObjectID  `json:"organizationId" bson:"organizationId"`
	ClientID       primitive.ObjectID  `json:"clientId" bson:"clientId"`
	ProjectID      *primitive.ObjectID `json:"projectId,omitempty" bson:"projectId,omitempty"`
	Number         string              `json:"number" bson:"number"`
	Amount         float64             `json:"amount" bson:"amount"`
	ValidUntil     *time.Time          `json:"validUntil,omitempty" bson:"validUntil,omitempty"`
	Status         string              `json:"status" bson:"status"` // "draft", "sent", "accepted", "rejected"
	Items          []ProposalItem      `json:"items,omitempty" bson:"items,omitempty"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type CreateProposalRequest struct {
	ClientID   string         `json:"clientId" validate:"required"`
	ProjectID  string         `json:"projectId,omitempty"`
	Amount     float64        `json:"amount" validate:"required"`
	ValidUntil string         `json:"validUntil,omitempty"`
	Items      []ProposalItem `json:"items,omitempty"`
}
