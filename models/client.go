package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a signed customer of the organization
type Client struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID primitive.ObjectID `json:"organizationId" bson:"organizationId"`
	Name           string             `json:"name" bson:"name"`
	ContactPerson  string             `json:"contactPerson,omitempty" bson:"contactPerson,omitempty"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address        string             `json:"address,omitempty" bson:"address,omitempty"`
	Industry       string             `json:"industry,omitempty" bson:"industry,omitempty"`
	Status         string             `json:"status" bson:"status"` // "active", "inactive"
	Notes          string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateClientRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	Industry      string `json:"industry,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
