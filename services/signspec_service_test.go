package services

import (
	"testing"

	"github.com/signforge/signforge_backend/models"
)

func TestCalculatePowerConsumption(t *testing.T) {
	tests := []struct {
		name       string
		signType   string
		width      float64
		height     float64
		pixelPitch float64
		brightness float64
		want       float64
	}{
		// 2m x 1m at 10mm pitch: 10,000 px/m2 * 2 m2 * 0.0003 W
		{"digital display", models.SignTypeDigitalDisplay, 2, 1, 10, 0, 6.0},
		{"digital display fine pitch", models.SignTypeDigitalDisplay, 1, 1, 5, 0, 12.0},
		{"digital display without pitch", models.SignTypeDigitalDisplay, 2, 1, 0, 0, 0},
		{"indoor sign by area", models.SignTypeIndoor, 4, 2, 0, 0, 0.4},
		{"outdoor sign by area", models.SignTypeOutdoor, 10, 5, 0, 0, 2.5},
		{"channel letters by brightness", models.SignTypeChannelLetters, 2, 1, 0, 5000, 1.0},
		{"neon without brightness", models.SignTypeNeon, 2, 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePowerConsumption(tt.signType, tt.width, tt.height, tt.pixelPitch, tt.brightness)
			if got != tt.want {
				t.Fatalf("CalculatePowerConsumption(%q, %v, %v, %v, %v) = %v, want %v",
					tt.signType, tt.width, tt.height, tt.pixelPitch, tt.brightness, got, tt.want)
			}
		})
	}
}

func TestWindLoad(t *testing.T) {
	tests := []struct {
		name             string
		width            float64
		height           float64
		installationType string
		mountingHeight   float64
		want             float64
	}{
		// 20 * 50 m2 * (1 + 20/50) * 1.5
		{"suspended at height", 10, 5, models.InstallTypeSuspended, 20, 2100},
		// 20 * 2 m2 * 1.0 * 0.8
		{"wall mounted at grade", 2, 1, models.InstallTypeWallMounted, 0, 32},
		{"pylon", 3, 2, models.InstallTypePylon, 10, 172.8},
		{"freestanding matches pylon factor", 3, 2, models.InstallTypeFreestanding, 10, 172.8},
		{"monument matches pylon factor", 3, 2, models.InstallTypeMonument, 10, 172.8},
		{"unknown type gets neutral factor", 2, 1, "BILLBOARD", 0, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WindLoad(tt.width, tt.height, tt.installationType, tt.mountingHeight)
			if got != tt.want {
				t.Fatalf("WindLoad(%v, %v, %q, %v) = %v, want %v",
					tt.width, tt.height, tt.installationType, tt.mountingHeight, got, tt.want)
			}
		})
	}
}

func TestExposureFactor(t *testing.T) {
	tests := []struct {
		installationType string
		want             float64
	}{
		{models.InstallTypeWallMounted, 0.8},
		{models.InstallTypeFreestanding, 1.2},
		{models.InstallTypePylon, 1.2},
		{models.InstallTypeMonument, 1.2},
		{models.InstallTypeSuspended, 1.5},
		{"", 1.0},
		{"ROOFTOP", 1.0},
	}

	for _, tt := range tests {
		if got := exposureFactor(tt.installationType); got != tt.want {
			t.Fatalf("exposureFactor(%q) = %v, want %v", tt.installationType, got, tt.want)
		}
	}
}
