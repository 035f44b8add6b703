package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"

	"softwaresur_backend/internal/email"
	"softwaresur_backend/platform/config"
	"softwaresur_backend/platform/logger"
)

const defaultConcurrency = 10

// WorkerConfig combines the configuration the worker needs.
type WorkerConfig interface {
	config.SchedulerConfig
	config.NotificationConfig
}

// Worker consumes queued notification tasks and delivers the emails.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender email.Sender
	cfg    WorkerConfig
	log    *logger.Logger
}

func NewWorker(cfg WorkerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: defaultConcurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		sender: sender,
		cfg:    cfg,
		log:    log,
	}

	mux.HandleFunc(TaskQuoteNotification, w.handleQuoteNotification)

	return w, nil
}

// Run blocks processing tasks until Shutdown is called.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleQuoteNotification(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQuoteNotificationPayload(task)
	if err != nil {
		return fmt.Errorf("failed to parse quote notification payload: %w", err)
	}

	adminEmail := w.cfg.GetAdminEmail()
	if adminEmail == "" {
		w.log.Error("ADMIN_EMAIL not configured, dropping quote notification", "tracking_id", payload.TrackingID)
		return nil
	}

	notification := email.QuoteNotification{
		TrackingID:      payload.TrackingID,
		Name:            payload.Name,
		Email:           payload.Email,
		ServiceInterest: payload.ServiceInterest,
		Message:         payload.Message,
		QuoteLink:       QuoteLink(w.cfg.GetAppBaseURL(), payload.QuoteID),
	}

	if err := w.sender.SendQuoteNotificationEmail(ctx, adminEmail, notification); err != nil {
		w.log.NotificationError(payload.TrackingID, err)
		return err
	}

	w.log.Info("quote notification delivered", "tracking_id", payload.TrackingID)
	return nil
}

// QuoteLink builds the deep link into the admin panel for a quote request.
func QuoteLink(baseURL, quoteID string) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/admin/quotes/" + quoteID
}
