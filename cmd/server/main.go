package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/johncui/senses/pkg/preset"
	"github.com/johncui/senses/pkg/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := store.NewEngine(ctx, store.Options{
		DBPath:        cfg.DBPath,
		Archive:       cfg.Archive,
		QualityWindow: cfg.QualityWindow,
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("failed to init engine: %v", err)
	}
	defer engine.Close()

	presets := preset.Builtin()
	if cfg.PresetsPath != "" {
		presets, err = preset.LoadFile(cfg.PresetsPath)
		if err != nil {
			log.Fatalf("failed to load presets: %v", err)
		}
	}

	if cfg.DefaultName != "" {
		info := engine.Create(cfg.DefaultName)
		logger.Info("default session", "id", info.ID, "name", info.Name)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newRouter(engine, presets, cfg.HistoryLimit, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	}()

	logger.Info("starting senses server", "addr", cfg.ListenAddr, "db", cfg.DBPath, "archive", cfg.Archive)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
