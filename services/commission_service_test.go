package services

import (
	"errors"
	"testing"
	"time"

	"github.com/signforge/signforge_backend/models"
)

func TestCommissionRate(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		commissionType string
		want           float64
		wantErr        bool
	}{
		{"team leader self generated", models.RoleTeamLeader, models.CommissionTypeSelfGenerated, 0.40, false},
		{"team leader company provided", models.RoleTeamLeader, models.CommissionTypeCompanyProvided, 0.33, false},
		{"team leader override", models.RoleTeamLeader, models.CommissionTypeOverride, 0.10, false},
		{"sales rep self generated", models.RoleSalesRep, models.CommissionTypeSelfGenerated, 0.30, false},
		{"sales rep company provided", models.RoleSalesRep, models.CommissionTypeCompanyProvided, 0.25, false},
		{"sales rep has no override rate", models.RoleSalesRep, models.CommissionTypeOverride, 0, true},
		{"admin earns no commission", models.RoleAdmin, models.CommissionTypeSelfGenerated, 0, true},
		{"designer earns no commission", models.RoleDesigner, models.CommissionTypeSelfGenerated, 0, true},
		{"unknown type", models.RoleTeamLeader, "bonus", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CommissionRate(tt.role, tt.commissionType)
			if tt.wantErr {
				if !errors.Is(err, ErrNoCommissionRate) {
					t.Fatalf("CommissionRate(%q, %q) error = %v, want ErrNoCommissionRate", tt.role, tt.commissionType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CommissionRate(%q, %q) unexpected error: %v", tt.role, tt.commissionType, err)
			}
			if got != tt.want {
				t.Fatalf("CommissionRate(%q, %q) = %v, want %v", tt.role, tt.commissionType, got, tt.want)
			}
		})
	}
}

func TestCommissionAmount(t *testing.T) {
	tests := []struct {
		name   string
		budget float64
		rate   float64
		want   float64
	}{
		{"whole amount", 10000, 0.40, 4000},
		{"rounds to cents", 9999.99, 0.33, 3300.00},
		{"small budget", 100.50, 0.25, 25.13},
		{"zero budget", 0, 0.40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommissionAmount(tt.budget, tt.rate); got != tt.want {
				t.Fatalf("CommissionAmount(%v, %v) = %v, want %v", tt.budget, tt.rate, got, tt.want)
			}
		})
	}
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			"mid year",
			2025, 6,
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"december rolls into next year",
			2025, 12,
			time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"february in a leap year",
			2024, 2,
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthWindow(tt.year, tt.month)
			if !start.Equal(tt.wantStart) {
				t.Fatalf("MonthWindow(%d, %d) start = %v, want %v", tt.year, tt.month, start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Fatalf("MonthWindow(%d, %d) end = %v, want %v", tt.year, tt.month, end, tt.wantEnd)
			}
		})
	}
}
