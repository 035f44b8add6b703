package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"softwaresur_backend/internal/auth"
	"softwaresur_backend/internal/dashboard"
	"softwaresur_backend/internal/email"
	"softwaresur_backend/internal/events"
	apphttp "softwaresur_backend/internal/http"
	"softwaresur_backend/internal/http/router"
	"softwaresur_backend/internal/notification"
	"softwaresur_backend/internal/quotes"
	"softwaresur_backend/internal/scheduler"
	"softwaresur_backend/platform/config"
	"softwaresur_backend/platform/db"
	"softwaresur_backend/platform/logger"
	"softwaresur_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	notificationQueue, closeQueue := initNotificationQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, val, log)
	quotesModule := quotes.NewModule(pool, authModule.Service(), eventBus, val, log)
	dashboardModule := dashboard.NewModule(quotesModule.Service(), authModule.Service(), eventBus, log)

	notificationModule := notification.NewModule(sender, notificationQueue, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			quotesModule,
			dashboardModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initNotificationQueue wires the asynq client when Redis is configured.
// Without it, notification emails are sent inline.
func initNotificationQueue(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.NotificationEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; quote notifications will be sent inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize notification queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
