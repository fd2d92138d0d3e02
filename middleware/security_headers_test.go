package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func applySecurityHeaders(t *testing.T, mw echo.MiddlewareFunc) http.Header {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec.Header()
}

func TestSecurityHeaders(t *testing.T) {
	h := applySecurityHeaders(t, SecurityHeaders())

	if got := h.Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q, want DENY", got)
	}
	if got := h.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := h.Get("Strict-Transport-Security"); !strings.Contains(got, "max-age=31536000") {
		t.Fatalf("Strict-Transport-Security = %q", got)
	}

	csp := h.Get("Content-Security-Policy")
	if !strings.Contains(csp, "default-src 'self'") {
		t.Fatalf("CSP missing default-src: %q", csp)
	}
	// Websocket notification stream must stay connectable
	if !strings.Contains(csp, "connect-src 'self' ws: wss:") {
		t.Fatalf("CSP missing websocket connect-src: %q", csp)
	}
	// Uploaded design thumbnails are served as images
	if !strings.Contains(csp, "img-src 'self' data: https:") {
		t.Fatalf("CSP missing img-src: %q", csp)
	}
}

func TestBuildCSP(t *testing.T) {
	tests := []struct {
		name   string
		config SecurityConfig
		want   []string
		absent []string
	}{
		{
			"defaults lock scripts down",
			SecurityConfig{},
			[]string{"script-src 'self'"},
			[]string{"connect-src", "script-src 'self' 'unsafe-inline'"},
		},
		{
			"inline js opt-in",
			SecurityConfig{AllowInlineJS: true},
			[]string{"script-src 'self' 'unsafe-inline'"},
			nil,
		},
		{
			"extra connect sources",
			SecurityConfig{ConnectSources: []string{"wss://push.example.com"}},
			[]string{"connect-src 'self' wss://push.example.com"},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csp := buildCSP(tt.config)
			for _, want := range tt.want {
				if !strings.Contains(csp, want) {
					t.Fatalf("buildCSP(%+v) = %q, missing %q", tt.config, csp, want)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(csp, absent) {
					t.Fatalf("buildCSP(%+v) = %q, should not contain %q", tt.config, csp, absent)
				}
			}
		})
	}
}
