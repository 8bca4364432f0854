// EmailJS implementation of [Mailer]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/telaflix/telaflix/internal/shared"
)

const (
	emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"
	emailReqTimeout = 10 * time.Second
)

// EmailService implements [Mailer] against the EmailJS REST API.
type EmailService struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	appName    string
	httpClient *http.Client
}

// NewEmailService creates an EmailJS mailer from configuration.
func NewEmailService(cfg shared.EmailConfig) *EmailService {
	appName := cfg.AppName
	if appName == "" {
		appName = "TELAFLIX"
	}
	return &EmailService{
		endpoint:   emailJSEndpoint,
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
		appName:    appName,
		httpClient: &http.Client{Timeout: emailReqTimeout},
	}
}

// SetEndpoint overrides the API endpoint. Used by tests.
func (e *EmailService) SetEndpoint(u string) { e.endpoint = u }

// emailJSRequest is the EmailJS send payload.
type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams map[string]any `json:"template_params"`
}

// send posts a template render request to EmailJS.
func (e *EmailService) send(ctx context.Context, params map[string]any) error {
	if e.serviceID == "" || e.templateID == "" || e.publicKey == "" {
		return fmt.Errorf("%w: EmailJS credentials", shared.ErrMissingCredentials)
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      e.serviceID,
		TemplateID:     e.templateID,
		UserID:         e.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrEmailSend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", shared.ErrEmailSend, resp.StatusCode)
	}
	return nil
}

// SendVerificationCode delivers the one-time code to the address.
func (e *EmailService) SendVerificationCode(ctx context.Context, email, code string) error {
	return e.send(ctx, map[string]any{
		"to_email":          email,
		"verification_code": code,
		"app_name":          e.appName,
	})
}

// SendUpdate delivers a product news message to the address.
func (e *EmailService) SendUpdate(ctx context.Context, email, title, message string) error {
	return e.send(ctx, map[string]any{
		"to_email": email,
		"subject":  title,
		"message":  message,
		"app_name": e.appName,
	})
}
