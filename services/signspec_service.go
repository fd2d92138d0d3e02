// services/signspec_service.go
package services

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signforge/signforge_backend/config"
	"github.com/signforge/signforge_backend/models"
)

const (
	wattsPerPixel      = 0.0003
	wattsPerSqMeter    = 0.05
	basePressure       = 20.0
	brightnessDivisor  = 1000.0
	brightnessWattRate = 0.1
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculatePowerConsumption estimates the power draw of a sign in
// watts. Digital displays scale with pixel count, plain signage with
// area, other illuminated types with brightness. Inputs are not
// validated; nonsense dimensions give nonsense estimates.
func CalculatePowerConsumption(signType string, width, height, pixelPitch, brightness float64) float64 {
	area := width * height

	switch signType {
	case models.SignTypeDigitalDisplay:
		if pixelPitch <= 0 {
			return 0
		}
		pixelsPerSqM := 1_000_000 / (pixelPitch * pixelPitch)
		totalPixels := area * pixelsPerSqM
		return round2(totalPixels * wattsPerPixel)
	case models.SignTypeIndoor, models.SignTypeOutdoor:
		return round2(area * wattsPerSqMeter)
	default:
		if brightness > 0 {
			return round2(brightness / brightnessDivisor * brightnessWattRate * area)
		}
	}
	return 0
}

// WindLoad estimates the wind load on a sign face. Mounting height
// raises the load linearly, the installation type sets the exposure
// factor.
func WindLoad(width, height float64, installationType string, mountingHeight float64) float64 {
	area := width * height
	heightFactor := 1.0
	if mountingHeight > 0 {
		heightFactor = 1 + mountingHeight/50
	}
	return round2(basePressure * area * heightFactor * exposureFactor(installationType))
}

// exposureFactor by installation type; unknown types get 1.0
func exposureFactor(installationType string) float64 {
	switch installationType {
	case models.InstallTypeWallMounted:
		return 0.8
	case models.InstallTypeFreestanding, models.InstallTypePylon, models.InstallTypeMonument:
		return 1.2
	case models.InstallTypeSuspended:
		return 1.5
	default:
		return 1.0
	}
}

// SignSpecService owns specification records and their derived fields
type SignSpecService struct {
	db *mongo.Client
}

// NewSignSpecService creates a new specification service
func NewSignSpecService(db *mongo.Client) *SignSpecService {
	return &SignSpecService{db: db}
}

// BuildSpecification fills the derived fields of a specification from
// a create request
func (s *SignSpecService) BuildSpecification(orgID, projectID primitive.ObjectID, req *models.CreateSpecificationRequest) models.SignSpecification {
	now := time.Now()
	return models.SignSpecification{
		ID:               primitive.NewObjectID(),
		OrganizationID:   orgID,
		ProjectID:        projectID,
		SignType:         req.SignType,
		Width:            req.Width,
		Height:           req.Height,
		PixelPitch:       req.PixelPitch,
		Brightness:       req.Brightness,
		InstallationType: req.InstallationType,
		MountingHeight:   req.MountingHeight,
		EstimatedPowerW:  CalculatePowerConsumption(req.SignType, req.Width, req.Height, req.PixelPitch, req.Brightness),
		WindLoad:         WindLoad(req.Width, req.Height, req.InstallationType, req.MountingHeight),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Recalculate refreshes both derived fields on an existing
// specification document
func (s *SignSpecService) Recalculate(ctx context.Context, specID primitive.ObjectID) error {
	coll := config.GetCollection(s.db, "signSpecifications")

	var spec models.SignSpecification
	if err := coll.FindOne(ctx, bson.M{"_id": specID}).Decode(&spec); err != nil {
		return err
	}

	_, err := coll.UpdateOne(ctx, bson.M{"_id": specID}, bson.M{"$set": bson.M{
		"estimatedPowerW": CalculatePowerConsumption(spec.SignType, spec.Width, spec.Height, spec.PixelPitch, spec.Brightness),
		"windLoad":        WindLoad(spec.Width, spec.Height, spec.InstallationType, spec.MountingHeight),
		"updatedAt":       time.Now(),
	}})
	return err
}
