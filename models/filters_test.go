package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClientFilterBuild(t *testing.T) {
	orgID := primitive.NewObjectID()

	t.Run("org scope only", func(t *testing.T) {
		filter := ClientFilter{OrganizationID: orgID}.Build()
		if len(filter) != 1 {
			t.Fatalf("expected 1 condition, got %d: %v", len(filter), filter)
		}
		if filter["organizationId"] != orgID {
			t.Fatalf("missing organization scope: %v", filter)
		}
	})

	t.Run("all fields", func(t *testing.T) {
		filter := ClientFilter{
			OrganizationID: orgID,
			Status:         "active",
			Industry:       "retail",
			Search:         "acme",
		}.Build()
		if filter["status"] != "active" {
			t.Fatalf("status not applied: %v", filter)
		}
		if filter["industry"] != "retail" {
			t.Fatalf("industry not applied: %v", filter)
		}
		or, ok := filter["$or"].(bson.A)
		if !ok || len(or) != 3 {
			t.Fatalf("search should match name, contactPerson and email: %v", filter["$or"])
		}
	})
}

func TestProjectFilterBuild(t *testing.T) {
	orgID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	after := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	filter := ProjectFilter{
		OrganizationID: orgID,
		ClientID:       &clientID,
		Status:         ProjectStatusProduction,
		DueAfter:       &after,
		DueBefore:      &before,
	}.Build()

	if filter["clientId"] != clientID {
		t.Fatalf("clientId not applied: %v", filter)
	}
	if filter["status"] != ProjectStatusProduction {
		t.Fatalf("status not applied: %v", filter)
	}
	due, ok := filter["dueDate"].(bson.M)
	if !ok {
		t.Fatalf("due window not applied: %v", filter)
	}
	if due["$gte"] != after || due["$lt"] != before {
		t.Fatalf("due window bounds wrong: %v", due)
	}
}

func TestCommissionFilterBuild(t *testing.T) {
	userID := primitive.NewObjectID()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("month window", func(t *testing.T) {
		filter := CommissionFilter{
			UserID: &userID,
			Status: CommissionStatusPending,
			From:   &from,
			To:     &to,
		}.Build()

		if filter["userId"] != userID {
			t.Fatalf("userId not applied: %v", filter)
		}
		if filter["status"] != CommissionStatusPending {
			t.Fatalf("status not applied: %v", filter)
		}
		created, ok := filter["createdAt"].(bson.M)
		if !ok {
			t.Fatalf("created window not applied: %v", filter)
		}
		if created["$gte"] != from || created["$lt"] != to {
			t.Fatalf("created window bounds wrong: %v", created)
		}
	})

	t.Run("empty filter matches everything", func(t *testing.T) {
		filter := CommissionFilter{}.Build()
		if len(filter) != 0 {
			t.Fatalf("expected empty filter, got %v", filter)
		}
	})
}

func TestScheduleFilterBuild(t *testing.T) {
	orgID := primitive.NewObjectID()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("defaults to startDate window", func(t *testing.T) {
		filter := ScheduleFilter{OrganizationID: orgID, From: &from}.Build()
		if _, ok := filter["startDate"]; !ok {
			t.Fatalf("expected startDate window: %v", filter)
		}
	})

	t.Run("installation uses scheduledDate", func(t *testing.T) {
		filter := ScheduleFilter{OrganizationID: orgID, From: &from, DateField: "scheduledDate"}.Build()
		if _, ok := filter["scheduledDate"]; !ok {
			t.Fatalf("expected scheduledDate window: %v", filter)
		}
		if _, ok := filter["startDate"]; ok {
			t.Fatalf("startDate should not be set: %v", filter)
		}
	})

	t.Run("station filter", func(t *testing.T) {
		filter := ScheduleFilter{OrganizationID: orgID, Station: StationWelding}.Build()
		if filter["station"] != StationWelding {
			t.Fatalf("station not applied: %v", filter)
		}
	})
}
