package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/signforge/signforge_backend/middleware"
	"github.com/signforge/signforge_backend/models"
)

// newTestContext builds an echo context around a JSON request. No
// database is attached; these tests cover the paths handlers take
// before touching storage.
func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// authenticate installs claims the way the JWT middleware would
func authenticate(c echo.Context, role string) (userID, orgID primitive.ObjectID) {
	userID = primitive.NewObjectID()
	orgID = primitive.NewObjectID()
	claims := &middleware.JwtCustomClaims{
		UserID:         userID.Hex(),
		Email:          "tester@example.com",
		Role:           role,
		OrganizationID: orgID.Hex(),
	}
	c.Set("user", &jwt.Token{Claims: claims})
	c.Set("userId", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("organizationId", claims.OrganizationID)
	return userID, orgID
}

func TestHandlersRejectMissingAuth(t *testing.T) {
	tests := []struct {
		name    string
		handler func(echo.Context) error
	}{
		{"get clients", NewClientController(nil).GetClients},
		{"create client", NewClientController(nil).CreateClient},
		{"get leads", NewLeadController(nil).GetLeads},
		{"convert lead", NewLeadController(nil).ConvertLead},
		{"get projects", NewProjectController(nil).GetProjects},
		{"create project", NewProjectController(nil).CreateProject},
		{"get tasks", NewTaskController(nil).GetTasks},
		{"calculate commission", NewCommissionController(nil).CalculateCommission},
		{"get commission stats", NewCommissionController(nil).GetStats},
		{"process payment", NewCommissionPaymentController(nil, nil).ProcessPayment},
		{"reverse payment", NewCommissionPaymentController(nil, nil).ReversePayment},
		{"get production schedules", NewProductionController(nil, nil).GetSchedules},
		{"get installation schedules", NewInstallationController(nil, nil).GetSchedules},
		{"job card", NewInstallationController(nil, nil).GetJobCard},
		{"get issues", NewIssueController(nil).GetIssues},
		{"create specification", NewSpecificationController(nil).CreateSpecification},
		{"get proposals", NewProposalController(nil).GetProposals},
		{"upload design", NewDesignController(nil, nil).UploadDesign},
		{"decide design", NewDesignController(nil, nil).DecideDesign},
		{"dashboard summary", NewDashboardController(nil).GetSummary},
		{"get settings", NewSettingsController(nil).GetSettings},
		{"get users", NewUserController(nil).GetUsers},
		{"get notifications", NewUserController(nil).GetNotifications},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/", "")
			if err := tt.handler(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestCreateClientValidation(t *testing.T) {
	controller := NewClientController(nil)

	t.Run("missing name", func(t *testing.T) {
		c, rec := newTestContext(http.MethodPost, "/api/clients", `{"email":"x@y.com"}`)
		authenticate(c, models.RoleAdmin)
		if err := controller.CreateClient(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestCreateProjectValidation(t *testing.T) {
	controller := NewProjectController(nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing budget", `{"name":"Storefront sign","clientId":"` + primitive.NewObjectID().Hex() + `"}`},
		{"missing client", `{"name":"Storefront sign","budget":5000}`},
		{"invalid client hex", `{"name":"Storefront sign","clientId":"not-hex","budget":5000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/projects", tt.body)
			authenticate(c, models.RoleAdmin)
			if err := controller.CreateProject(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCalculateCommissionValidation(t *testing.T) {
	controller := NewCommissionController(nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing type", `{"projectId":"` + primitive.NewObjectID().Hex() + `","userId":"` + primitive.NewObjectID().Hex() + `"}`},
		{"invalid project hex", `{"projectId":"nope","userId":"` + primitive.NewObjectID().Hex() + `","type":"self_generated"}`},
		{"invalid user hex", `{"projectId":"` + primitive.NewObjectID().Hex() + `","userId":"nope","type":"self_generated"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/commissions/calculate", tt.body)
			authenticate(c, models.RoleAdmin)
			if err := controller.CalculateCommission(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestProcessPaymentValidation(t *testing.T) {
	controller := NewCommissionPaymentController(nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing user", `{"year":2025,"month":3}`},
		{"month out of range", `{"userId":"` + primitive.NewObjectID().Hex() + `","year":2025,"month":13}`},
		{"month zero", `{"userId":"` + primitive.NewObjectID().Hex() + `","year":2025,"month":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/commission-payments/process", tt.body)
			authenticate(c, models.RoleAdmin)
			if err := controller.ProcessPayment(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCreateProductionScheduleValidation(t *testing.T) {
	controller := NewProductionController(nil, nil)
	projectID := primitive.NewObjectID().Hex()

	tests := []struct {
		name string
		body string
	}{
		{"missing station", `{"projectId":"` + projectID + `","startDate":"2025-09-01","endDate":"2025-09-03"}`},
		{"end before start", `{"projectId":"` + projectID + `","station":"cnc","startDate":"2025-09-03","endDate":"2025-09-01"}`},
		{"equal start and end", `{"projectId":"` + projectID + `","station":"cnc","startDate":"2025-09-01","endDate":"2025-09-01"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/production-schedules", tt.body)
			authenticate(c, models.RoleAdmin)
			if err := controller.CreateSchedule(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCreateSpecificationValidation(t *testing.T) {
	controller := NewSpecificationController(nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing sign type", `{"projectId":"` + primitive.NewObjectID().Hex() + `","width":2,"height":1}`},
		{"zero width", `{"projectId":"` + primitive.NewObjectID().Hex() + `","signType":"OUTDOOR_SIGN","width":0,"height":1}`},
		{"negative height", `{"projectId":"` + primitive.NewObjectID().Hex() + `","signType":"OUTDOOR_SIGN","width":2,"height":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/specifications", tt.body)
			authenticate(c, models.RoleAdmin)
			if err := controller.CreateSpecification(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestDecideDesignValidation(t *testing.T) {
	controller := NewDesignController(nil, nil)

	c, rec := newTestContext(http.MethodPut, "/api/designs/x/decision", `{"status":"maybe"}`)
	authenticate(c, models.RoleTeamLeader)
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())
	if err := controller.DecideDesign(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestInvalidObjectIDsRejected(t *testing.T) {
	tests := []struct {
		name    string
		handler func(echo.Context) error
	}{
		{"update client", NewClientController(nil).UpdateClient},
		{"delete client", NewClientController(nil).DeleteClient},
		{"update project", NewProjectController(nil).UpdateProject},
		{"delete task", NewTaskController(nil).DeleteTask},
		{"reverse payment", NewCommissionPaymentController(nil, nil).ReversePayment},
		{"job card", NewInstallationController(nil, nil).GetJobCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodDelete, "/", `{}`)
			authenticate(c, models.RoleAdmin)
			c.SetParamNames("id")
			c.SetParamValues("not-an-object-id")
			if err := tt.handler(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestStatsCacheKey(t *testing.T) {
	userID := primitive.NewObjectID()

	want := "commission:stats:" + userID.Hex() + ":2025:3"
	if got := statsCacheKey(userID.Hex(), 2025, 3); got != want {
		t.Fatalf("statsCacheKey = %q, want %q", got, want)
	}

	// Reversing a settlement invalidates the same key GetStats caches
	// under, derived from the deleted payment's fields
	payment := models.CommissionPayment{UserID: userID, Year: 2025, Month: 3}
	if got := statsCacheKey(payment.UserID.Hex(), payment.Year, payment.Month); got != want {
		t.Fatalf("reversal cache key = %q, want %q", got, want)
	}
}

func TestProposalNumberFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		number := proposalNumber()
		if !strings.HasPrefix(number, "PR-") {
			t.Fatalf("proposal number %q missing PR- prefix", number)
		}
		if len(number) != len("PR-200601-XXXXXXXX") {
			t.Fatalf("proposal number %q has unexpected length", number)
		}
		if seen[number] {
			t.Fatalf("proposal number %q generated twice", number)
		}
		seen[number] = true
	}
}
