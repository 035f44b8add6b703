// Package notification delivers admin email alerts for incoming quote
// requests. Delivery is fire-and-forget: a failed or misconfigured
// notification is logged and never surfaces to the submitting customer.
package notification

import (
	"context"

	"softwaresur_backend/internal/email"
	"softwaresur_backend/internal/events"
	"softwaresur_backend/internal/scheduler"
	"softwaresur_backend/platform/config"
	"softwaresur_backend/platform/logger"
)

// Module listens for quote submissions and notifies the site admin.
type Module struct {
	sender   email.Sender
	enqueuer scheduler.NotificationEnqueuer
	cfg      config.NotificationConfig
	log      *logger.Logger
}

// NewModule creates the notification module. The enqueuer may be nil;
// without it emails are sent inline on a detached goroutine instead of
// through the job queue.
func NewModule(sender email.Sender, enqueuer scheduler.NotificationEnqueuer, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{
		sender:   sender,
		enqueuer: enqueuer,
		cfg:      cfg,
		log:      log,
	}
}

// RegisterHandlers subscribes the module to the domain event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.QuoteRequestSubmitted{}.EventName(), m)
	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.QuoteRequestSubmitted:
		return m.handleQuoteRequestSubmitted(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleQuoteRequestSubmitted(ctx context.Context, e events.QuoteRequestSubmitted) error {
	adminEmail := m.cfg.GetAdminEmail()
	if adminEmail == "" {
		m.log.Error("ADMIN_EMAIL not configured, skipping quote notification", "tracking_id", e.TrackingID)
		return nil
	}

	if m.enqueuer != nil {
		err := m.enqueuer.EnqueueQuoteNotification(ctx, scheduler.QuoteNotificationPayload{
			QuoteID:         e.QuoteID.String(),
			TrackingID:      e.TrackingID,
			Name:            e.Name,
			Email:           e.Email,
			ServiceInterest: e.ServiceInterest,
			Message:         e.Message,
		})
		if err == nil {
			return nil
		}
		// Queue unreachable; fall back to inline delivery.
		m.log.Warn("failed to enqueue quote notification, sending inline", "tracking_id", e.TrackingID, "error", err)
	}

	notification := email.QuoteNotification{
		TrackingID:      e.TrackingID,
		Name:            e.Name,
		Email:           e.Email,
		ServiceInterest: e.ServiceInterest,
		Message:         e.Message,
		QuoteLink:       scheduler.QuoteLink(m.cfg.GetAppBaseURL(), e.QuoteID.String()),
	}

	if err := m.sender.SendQuoteNotificationEmail(ctx, adminEmail, notification); err != nil {
		m.log.NotificationError(e.TrackingID, err)
	}
	return nil
}

var _ events.Handler = (*Module)(nil)
