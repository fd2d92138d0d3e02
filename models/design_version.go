package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Design version statuses
const (
	DesignStatusPendingReview = "pending_review"
	DesignStatusApproved      = "approved"
	DesignStatusRejected      = "rejected"
)

// DesignVersion is one uploaded design proof for a project. Version
// numbers increment per project.
type DesignVersion struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID primitive.ObjectID  `json:"organizationId" bson:"organizationId"`
	ProjectID      primitive.ObjectID  `json:"projectId" bson:"projectId"`
	Version        int                 `json:"version" bson:"version"`
	FilePath       string              `json:"filePath" bson:"filePath"`
	ThumbnailPath  string              `json:"thumbnailPath,omitempty" bson:"thumbnailPath,omitempty"`
	Status         string              `json:"status" bson:"status"`
	SubmittedBy    primitive.ObjectID  `json:"submittedBy" bson:"submittedBy"`
	ReviewedBy     *primitive.ObjectID `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewNote     string              `json:"reviewNote,omitempty" bson:"reviewNote,omitempty"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type DesignDecisionRequest struct {
	Status     string `json:"status" validate:"required,oneof=approved rejected"`
	ReviewNote string `json:"reviewNote,omitempty"`
}
