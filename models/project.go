package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses follow the fabrication lifecycle
const (
	ProjectStatusDraft        = "draft"
	ProjectStatusInProgress   = "in_progress"
	ProjectStatusProduction   = "production"
	ProjectStatusInstallation = "installation"
	ProjectStatusCompleted    = "completed"
	ProjectStatusCancelled    = "cancelled"
)

// Project is a signage job for a client. Budget is the base for
// commission computation.
type Project struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID primitive.ObjectID  `json:"organizationId" bson:"organizationId"`
	ClientID       primitive.ObjectID  `json:"clientId" bson:"clientId"`
	Name           string              `json:"name" bson:"name"`
	Description    string              `json:"description,omitempty" bson:"description,omitempty"`
	Budget         float64             `json:"budget" bson:"budget"`
	Status         string              `json:"status" bson:"status"`
	SalesRepID     *primitive.ObjectID `json:"salesRepId,omitempty" bson:"salesRepId,omitempty"`
	StartDate      *time.Time          `json:"startDate,omitempty" bson:"startDate,omitempty"`
	DueDate        *time.Time          `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type CreateProjectRequest struct {
	ClientID    string  `json:"clientId" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Budget      float64 `json:"budget" validate:"required"`
	SalesRepID  string  `json:"salesRepId,omitempty"`
	StartDate   string  `json:"startDate,omitempty"`
	DueDate     string  `json:"dueDate,omitempty"`
}
