package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manshur0590/TraceMe/internal/api"
	"github.com/manshur0590/TraceMe/internal/config"
	"github.com/manshur0590/TraceMe/internal/face"
	"github.com/manshur0590/TraceMe/internal/reference"
	"github.com/manshur0590/TraceMe/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting TraceMe API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("provider", cfg.FaceProvider),
		slog.String("reference_store", cfg.ReferenceStore),
		slog.Float64("threshold", cfg.MatchThreshold),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	faceProvider, err := face.NewFaceProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create face provider: %w", err)
	}

	store, err := reference.NewStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create reference store: %w", err)
	}
	defer store.Close()

	searchService := service.NewSearchService(faceProvider, store, logger).
		WithThreshold(cfg.MatchThreshold).
		WithMaxImageSide(cfg.MaxImageSide).
		WithEmbeddingDim(cfg.EmbeddingDim)

	router := api.NewRouter(logger, &api.Dependencies{
		Search: searchService,
		Store:  store,
	}, api.Options{
		CORSOrigins:     cfg.CORSOrigins,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	})
	router.Setup()

	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")
	if err := router.Shutdown(10 * time.Second); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")

	return nil
}
