package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/openranks/rankings-api/config"
	"github.com/openranks/rankings-api/data"
	"github.com/openranks/rankings-api/logging"
	"github.com/openranks/rankings-api/rankingsparser"
	"github.com/openranks/rankings-api/scheduler"
	"github.com/openranks/rankings-api/server"
)

func main() {
	// Missing .env is fine, the environment may be set by the service manager
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogRetentionWeeks)

	dataContainer := data.NewDataContainer()
	parser := rankingsparser.New(cfg)

	sched := scheduler.NewScheduler(dataContainer, parser, cfg.RefreshAt)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, dataContainer)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
