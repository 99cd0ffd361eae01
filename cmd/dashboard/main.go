package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filevault_bot/internal/dashboard"
	"filevault_bot/platform/config"
	"filevault_bot/platform/logger"
)

func main() {
	cfg, err := config.LoadDashboard()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	log.Info("starting stats dashboard",
		"env", cfg.Env,
		"addr", cfg.DashboardAddr,
		"files_db", cfg.FilesDBPath,
	)

	srv := &http.Server{
		Addr:         cfg.DashboardAddr,
		Handler:      dashboard.NewRouter(cfg, cfg.Env, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("dashboard server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("dashboard shutdown failed", "error", err)
		}
	}
	log.Info("dashboard stopped")
}
