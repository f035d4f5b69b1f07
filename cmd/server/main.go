package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docindex/internal/api"
	"github.com/dgallion1/docindex/internal/config"
	"github.com/dgallion1/docindex/internal/pipeline"
	"github.com/dgallion1/docindex/internal/reason"
	"github.com/dgallion1/docindex/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	indexes := store.New(cfg.IndexTTL)
	reasoner := reason.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)

	orch := pipeline.NewOrchestrator(cfg, indexes, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, reasoner, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		reasoner.Close()
	}()

	log.Info("starting docindex", "port", cfg.Port, "reasoning_enabled", reasoner.Enabled())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
