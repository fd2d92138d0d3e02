package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sign types
const (
	SignTypeDigitalDisplay = "DIGITAL_DISPLAY"
	SignTypeIndoor         = "INDOOR_SIGN"
	SignTypeOutdoor        = "OUTDOOR_SIGN"
	SignTypeChannelLetters = "CHANNEL_LETTERS"
	SignTypeNeon           = "NEON"
	SignTypeLightbox       = "LIGHTBOX"
)

// Installation types
const (
	InstallTypeWallMounted  = "WALL_MOUNTED"
	InstallTypeFreestanding = "FREESTANDING"
	InstallTypePylon        = "PYLON"
	InstallTypeMonument     = "MONUMENT"
	InstallTypeSuspended    = "SUSPENDED"
)

// SignSpecification holds the physical parameters of a sign plus the
// derived power and wind-load estimates. Dimensions are in meters,
// power in watts.
type SignSpecification struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID   primitive.ObjectID `json:"organizationId" bson:"organizationId"`
	ProjectID        primitive.ObjectID `json:"projectId" bson:"projectId"`
	SignType         string             `json:"signType" bson:"signType"`
	Width            float64            `json:"width" bson:"width"`
	Height           float64            `json:"height" bson:"height"`
	PixelPitch       float64            `json:"pixelPitch,omitempty" bson:"pixelPitch,omitempty"` // mm, digital displays only
	Brightness       float64            `json:"brightness,omitempty" bson:"brightness,omitempty"` // nits
	InstallationType string             `json:"installationType,omitempty" bson:"installationType,omitempty"`
	MountingHeight   float64            `json:"mountingHeight,omitempty" bson:"mountingHeight,omitempty"` // meters above grade
	EstimatedPowerW  float64            `json:"estimatedPowerW" bson:"estimatedPowerW"`
	WindLoad         float64            `json:"windLoad" bson:"windLoad"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateSpecificationRequest struct {
	ProjectID        string  `json:"projectId" validate:"required"`
	SignType         string  `json:"signType" validate:"required"`
	Width            float64 `json:"width" validate:"required"`
	Height           float64 `json:"height" validate:"required"`
	PixelPitch       float64 `json:"pixelPitch,omitempty"`
	Brightness       float64 `json:"brightness,omitempty"`
	InstallationType string  `json:"installationType,omitempty"`
	MountingHeight   float64 `json:"mountingHeight,omitempty"`
}
