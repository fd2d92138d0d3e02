package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Production stations
const (
	StationPrinting = "printing"
	StationCNC      = "cnc"
	StationWelding  = "welding"
	StationPainting = "painting"
	StationAssembly = "assembly"
)

// Installation schedule statuses
const (
	InstallStatusScheduled  = "scheduled"
	InstallStatusInProgress = "in_progress"
	InstallStatusCompleted  = "completed"
	InstallStatusPostponed  = "postponed"
)

// ProductionSchedule books a project onto a shop-floor station
type ProductionSchedule struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID primitive.ObjectID  `json:"organizationId" bson:"organizationId"`
	ProjectID      primitive.ObjectID  `json:"projectId" bson:"projectId"`
	Station        string              `json:"station" bson:"station"`
	StartDate      time.Time           `json:"startDate" bson:"startDate"`
	EndDate        time.Time           `json:"endDate" bson:"endDate"`
	AssignedTo     *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	Status         string              `json:"status" bson:"status"` // "queued", "running", "done"
	Notes          string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type CreateProductionScheduleRequest struct {
	ProjectID  string `json:"projectId" validate:"required"`
	Station    string `json:"station" validate:"required"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
	AssignedTo string `json:"assignedTo,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// InstallationSchedule books an install crew onto a site
type InstallationSchedule struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID  primitive.ObjectID `json:"organizationId" bson:"organizationId"`
	ProjectID       primitive.ObjectID `json:"projectId" bson:"projectId"`
	Crew            []string           `json:"crew,omitempty" bson:"crew,omitempty"`
	SiteAddress     string             `json:"siteAddress" bson:"siteAddress"`
	ScheduledDate   time.Time          `json:"scheduledDate" bson:"scheduledDate"`
	Status          string             `json:"status" bson:"status"`
	PermitsRequired bool               `json:"permitsRequired" bson:"permitsRequired"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateInstallationScheduleRequest struct {
	ProjectID       string   `json:"projectId" validate:"required"`
	SiteAddress     string   `json:"siteAddress" validate:"required"`
	ScheduledDate   string   `json:"scheduledDate" validate:"required"`
	Crew            []string `json:"crew,omitempty"`
	PermitsRequired bool     `json:"permitsRequired,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}
