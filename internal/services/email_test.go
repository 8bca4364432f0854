package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/telaflix/telaflix/internal/shared"
)

func TestEmailService(t *testing.T) {
	cfg := shared.EmailConfig{
		ServiceID:  "service_abc",
		TemplateID: "template_otp",
		PublicKey:  "pk_123",
		AppName:    "TELAFLIX",
	}

	t.Run("NewEmailService", func(t *testing.T) {
		t.Run("defaults app name", func(t *testing.T) {
			svc := NewEmailService(shared.EmailConfig{ServiceID: "s"})
			if svc.appName != "TELAFLIX" {
				t.Errorf("expected default app name, got %s", svc.appName)
			}
		})
	})

	t.Run("SendVerificationCode", func(t *testing.T) {
		var received emailJSRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %s", ct)
			}
			json.NewDecoder(r.Body).Decode(&received)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		svc := NewEmailService(cfg)
		svc.SetEndpoint(server.URL)

		if err := svc.SendVerificationCode(context.Background(), "ana@example.com", "482913"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if received.ServiceID != "service_abc" {
			t.Errorf("expected service_id service_abc, got %s", received.ServiceID)
		}
		if received.TemplateID != "template_otp" {
			t.Errorf("expected template_id template_otp, got %s", received.TemplateID)
		}
		if received.UserID != "pk_123" {
			t.Errorf("expected user_id pk_123, got %s", received.UserID)
		}
		if received.TemplateParams["to_email"] != "ana@example.com" {
			t.Errorf("expected to_email param, got %v", received.TemplateParams["to_email"])
		}
		if received.TemplateParams["verification_code"] != "482913" {
			t.Errorf("expected verification_code param, got %v", received.TemplateParams["verification_code"])
		}
		if received.TemplateParams["app_name"] != "TELAFLIX" {
			t.Errorf("expected app_name param, got %v", received.TemplateParams["app_name"])
		}
	})

	t.Run("SendUpdate", func(t *testing.T) {
		var received emailJSRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&received)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		svc := NewEmailService(cfg)
		svc.SetEndpoint(server.URL)

		if err := svc.SendUpdate(context.Background(), "ana@example.com", "Novidades", "Chegaram lançamentos."); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if received.TemplateParams["subject"] != "Novidades" {
			t.Errorf("expected subject param, got %v", received.TemplateParams["subject"])
		}
		if received.TemplateParams["message"] != "Chegaram lançamentos." {
			t.Errorf("expected message param, got %v", received.TemplateParams["message"])
		}
	})

	t.Run("Error Handling", func(t *testing.T) {
		t.Run("missing credentials", func(t *testing.T) {
			svc := NewEmailService(shared.EmailConfig{ServiceID: "only"})
			err := svc.SendVerificationCode(context.Background(), "ana@example.com", "111111")
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("non-200 status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			}))
			defer server.Close()

			svc := NewEmailService(cfg)
			svc.SetEndpoint(server.URL)

			err := svc.SendVerificationCode(context.Background(), "ana@example.com", "111111")
			if !errors.Is(err, shared.ErrEmailSend) {
				t.Errorf("expected ErrEmailSend, got %v", err)
			}
		})

		t.Run("transport failure", func(t *testing.T) {
			svc := NewEmailService(cfg)
			svc.SetEndpoint("http://127.0.0.1:1")

			err := svc.SendUpdate(context.Background(), "ana@example.com", "t", "m")
			if !errors.Is(err, shared.ErrEmailSend) {
				t.Errorf("expected ErrEmailSend, got %v", err)
			}
		})
	})
}
