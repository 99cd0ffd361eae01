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

	"filevault_bot/internal/adapters/storage"
	"filevault_bot/internal/adapters/telegram"
	"filevault_bot/internal/bot"
	apphttp "filevault_bot/internal/http"
	"filevault_bot/internal/metastore"
	"filevault_bot/platform/config"
	"filevault_bot/platform/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	log.Info("starting file vault bot",
		"env", cfg.Env,
		"bucket", cfg.StorageBucket,
		"region", cfg.StorageRegion,
	)

	store := metastore.Open(cfg.FilesDBPath, log)
	log.Info("metadata store loaded", "path", cfg.FilesDBPath, "files", store.Len())

	objStore, err := storage.NewMinIOClient(cfg, log)
	if err != nil {
		log.Error("failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	tg, err := telegram.NewClient(cfg, log)
	if err != nil {
		log.Error("failed to initialize telegram client", "error", err)
		os.Exit(1)
	}

	orchestrator := bot.New(tg, store, objStore, cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Startup connectivity check is informational. The bot keeps running so
	// operators can use /test after fixing credentials.
	if objStore.Probe(ctx) {
		log.Info("object storage reachable", "bucket", cfg.StorageBucket)
	} else {
		log.Warn("object storage unreachable at startup", "bucket", cfg.StorageBucket)
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      apphttp.NewRouter(cfg.Env, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("liveness server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("liveness server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		log.Info("polling for updates")
		return tg.Run(gctx, orchestrator)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("bot stopped")
}
