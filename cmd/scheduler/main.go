// The scheduler worker consumes queued notification tasks and delivers
// the emails. Run it alongside the API when REDIS_URL is configured.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"softwaresur_backend/internal/email"
	"softwaresur_backend/internal/scheduler"
	"softwaresur_backend/platform/config"
	"softwaresur_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler worker", "env", cfg.Env)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	worker, err := scheduler.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	done := make(chan error, 1)
	go func() {
		done <- worker.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("shutdown signal received, stopping worker")
		worker.Shutdown()
	case err := <-done:
		if err != nil {
			log.Error("worker error", "error", err)
			panic("worker error: " + err.Error())
		}
	}
}
