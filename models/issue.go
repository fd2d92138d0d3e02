package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Issue is a problem reported against a project (fabrication defect,
// site blocker, client complaint)
type Issue struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID primitive.ObjectID  `json:"organizationId" bson:"organizationId"`
	ProjectID      primitive.ObjectID  `json:"projectId" bson:"projectId"`
	Title          string              `json:"title" bson:"title"`
	Description    string              `json:"description,omitempty" bson:"description,omitempty"`
	Severity       string              `json:"severity" bson:"severity"` // "low", "medium", "high", "critical"
	Status         string              `json:"status" bson:"status"`     // "open", "in_progress", "resolved", "closed"
	ReportedBy     primitive.ObjectID  `json:"reportedBy" bson:"reportedBy"`
	AssignedTo     *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type CreateIssueRequest struct {
	ProjectID   string `json:"projectId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
}
