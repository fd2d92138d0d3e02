// models/filters.go
//
// Typed filter builders per resource. Controllers fill the optional
// fields from query params and call Build to get the bson filter, so
// filter construction stays in one place instead of ad-hoc bson.M
// assembly inside every handler.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientFilter selects clients within an organization
type ClientFilter struct {
	OrganizationID primitive.ObjectID
	Status         string
	Industry       string
	Search         string
}

func (f ClientFilter) Build() bson.M {
	filter := bson.M{"organizationId": f.OrganizationID}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Industry != "" {
		filter["industry"] = f.Industry
	}
	if f.Search != "" {
		regex := bson.M{"$regex": f.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"contactPerson": regex},
			bson.M{"email": regex},
		}
	}
	return filter
}

// LeadFilter selects leads within an organization
type LeadFilter struct {
	OrganizationID primitive.ObjectID
	Status         string
	Source         string
	AssignedTo     *primitive.ObjectID
	CampaignID     *primitive.ObjectID
	Search         string
}

func (f LeadFilter) Build() bson.M {
	filter := bson.M{"organizationId": f.OrganizationID}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Source != "" {
		filter["source"] = f.Source
	}
	if f.AssignedTo != nil {
		filter["assignedTo"] = *f.AssignedTo
	}
	if f.CampaignID != nil {
		filter["campaignId"] = *f.CampaignID
	}
	if f.Search != "" {
		regex := bson.M{"$regex": f.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"contactPerson": regex},
		}
	}
	return filter
}

// ProjectFilter selects projects within an organization
type ProjectFilter struct {
	OrganizationID primitive.ObjectID
	ClientID       *primitive.ObjectID
	SalesRepID     *primitive.ObjectID
	Status         string
	DueBefore      *time.Time
	DueAfter       *time.Time
	Search         string
}

func (f ProjectFilter) Build() bson.M {
	filter := bson.M{"organizationId": f.OrganizationID}
	if f.ClientID != nil {
		filter["clientId"] = *f.ClientID
	}
	if f.SalesRepID != nil {
		filter["salesRepId"] = *f.SalesRepID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.DueBefore != nil || f.DueAfter != nil {
		due := bson.M{}
		if f.DueAfter != nil {
			due["$gte"] = *f.DueAfter
		}
		if f.DueBefore != nil {
			due["$lt"] = *f.DueBefore
		}
		filter["dueDate"] = due
	}
	if f.Search != "" {
		filter["name"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	return filter
}

// CommissionFilter selects commissions, optionally restricted to one
// calendar month
type CommissionFilter struct {
	UserID    *primitive.ObjectID
	ProjectID *primitive.ObjectID
	Status    string
	Type      string
	From      *time.Time
	To        *time.Time
}

func (f CommissionFilter) Build() bson.M {
	filter := bson.M{}
	if f.UserID != nil {
		filter["userId"] = *f.UserID
	}
	if f.ProjectID != nil {
		filter["projectId"] = *f.ProjectID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.From != nil || f.To != nil {
		created := bson.M{}
		if f.From != nil {
			created["$gte"] = *f.From
		}
		if f.To != nil {
			created["$lt"] = *f.To
		}
		filter["createdAt"] = created
	}
	return filter
}

// ScheduleFilter selects production or installation schedules
type ScheduleFilter struct {
	OrganizationID primitive.ObjectID
	ProjectID      *primitive.ObjectID
	Status         string
	Station        string
	From           *time.Time
	To             *time.Time
	DateField      string // "startDate" for production, "scheduledDate" for installation
}

func (f ScheduleFilter) Build() bson.M {
	filter := bson.M{"organizationId": f.OrganizationID}
	if f.ProjectID != nil {
		filter["projectId"] = *f.ProjectID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Station != "" {
		filter["station"] = f.Station
	}
	if f.From != nil || f.To != nil {
		field := f.DateField
		if field == "" {
			field = "startDate"
		}
		window := bson.M{}
		if f.From != nil {
			window["$gte"] = *f.From
		}
		if f.To != nil {
			window["$lt"] = *f.To
		}
		filter[field] = window
	}
	return filter
}

// IssueFilter selects issues within an organization
type IssueFilter struct {
	OrganizationID primitive.ObjectID
	ProjectID      *primitive.ObjectID
	Severity       string
	Status         string
	Search         string
}

func (f IssueFilter) Build() bson.M {
	filter := bson.M{"organizationId": f.OrganizationID}
	if f.ProjectID != nil {
		filter["projectId"] = *f.ProjectID
	}
	if f.Severity != "" {
		filter["severity"] = f.Severity
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["title"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	return filter
}

// ProposalFilter selects proposals within an organization
type ProposalFilter struct {
	OrganizationID primitive.ObjectID
	ClientID       *primitive.ObjectID
	Status         string
}

func (f ProposalFilter) Build() bson.M {
	filter := bson.M{"organizationId": f.OrganizationID}
	if f.ClientID != nil {
		filter["clientId"] = *f.ClientID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}
