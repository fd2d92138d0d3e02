package controllers

import (
	"net/http"
	"testing"
)

func TestIdentityWebhookSecret(t *testing.T) {
	controller := NewWebhookController(nil)

	t.Run("missing secret env rejects everything", func(t *testing.T) {
		t.Setenv("WEBHOOK_SECRET", "")
		c, rec := newTestContext(http.MethodPost, "/api/webhooks/identity", `{"event":"user.created"}`)
		c.Request().Header.Set("X-Webhook-Secret", "anything")
		if err := controller.HandleIdentityEvent(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		t.Setenv("WEBHOOK_SECRET", "correct")
		c, rec := newTestContext(http.MethodPost, "/api/webhooks/identity", `{"event":"user.created"}`)
		c.Request().Header.Set("X-Webhook-Secret", "wrong")
		if err := controller.HandleIdentityEvent(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("unknown event acknowledged without provisioning", func(t *testing.T) {
		t.Setenv("WEBHOOK_SECRET", "correct")
		c, rec := newTestContext(http.MethodPost, "/api/webhooks/identity", `{"event":"user.deleted"}`)
		c.Request().Header.Set("X-Webhook-Secret", "correct")
		if err := controller.HandleIdentityEvent(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("user.created without email rejected", func(t *testing.T) {
		t.Setenv("WEBHOOK_SECRET", "correct")
		c, rec := newTestContext(http.MethodPost, "/api/webhooks/identity", `{"event":"user.created","data":{"organizationName":"Acme Signs"}}`)
		c.Request().Header.Set("X-Webhook-Secret", "correct")
		if err := controller.HandleIdentityEvent(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
