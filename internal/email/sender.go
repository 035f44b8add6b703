// Package email provides outbound email delivery for the application.
// A Sender renders HTML templates and delivers through either the Brevo
// transactional API or a plain SMTP connection, selected by configuration.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"softwaresur_backend/platform/config"
)

// QuoteNotification carries the data rendered into the new-quote email sent
// to the administrator address.
type QuoteNotification struct {
	TrackingID      string
	Name            string
	Email           string
	ServiceInterest string
	Message         string
	QuoteLink       string
}

// Sender delivers application emails.
type Sender interface {
	// SendQuoteNotificationEmail sends the new-quote-request notification to
	// the administrator address.
	SendQuoteNotificationEmail(ctx context.Context, toEmail string, data QuoteNotification) error
	// SendCustomEmail sends an arbitrary HTML email.
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender discards all emails. Used when email is disabled by config.
type NoopSender struct{}

func (NoopSender) SendQuoteNotificationEmail(ctx context.Context, toEmail string, data QuoteNotification) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// NewSender selects a Sender implementation from config: Brevo when an API
// key is configured, SMTP when a host is configured, Noop otherwise.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	if cfg.GetBrevoAPIKey() != "" {
		client := &http.Client{Timeout: 10 * time.Second}
		return &BrevoSender{
			apiKey:    cfg.GetBrevoAPIKey(),
			fromName:  cfg.GetEmailFromName(),
			fromEmail: cfg.GetEmailFromAddress(),
			client:    client,
		}, nil
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}

// BrevoSender implements Sender using the Brevo transactional email API.
type BrevoSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
}

type brevoEmailRequest struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

func (b *BrevoSender) SendQuoteNotificationEmail(ctx context.Context, toEmail string, data QuoteNotification) error {
	subject := fmt.Sprintf(subjectQuoteNotificationFmt, data.TrackingID)
	content, err := renderEmailTemplate("quote_notification.html", quoteNotificationEmailData{
		baseEmailData: baseEmailData{
			Title:    "Nueva Solicitud de Cotización",
			Heading:  "Nueva Solicitud de Cotización Recibida",
			CTALabel: "Ver y Responder en el Panel",
			CTAURL:   data.QuoteLink,
		},
		TrackingID:      data.TrackingID,
		Name:            data.Name,
		Email:           data.Email,
		ServiceInterest: serviceInterestOrDefault(data.ServiceInterest),
		Message:         data.Message,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return b.send(ctx, toEmail, subject, htmlContent)
}

func (b *BrevoSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	payload := brevoEmailRequest{
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	payload.Sender.Name = b.fromName
	payload.Sender.Email = b.fromEmail
	payload.To = []struct {
		Email string `json:"email"`
	}{{Email: toEmail}}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.brevo.com/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}

func serviceInterestOrDefault(value string) string {
	if value == "" {
		return "No especificado"
	}
	return value
}
