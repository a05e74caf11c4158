// Command enroll adds a person to the registry, computing the face embedding
// with the same extractor the API uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

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
	imagePath := flag.String("image", "", "Path to the photo to enroll")
	name := flag.String("name", "", "Person name")
	photoURL := flag.String("photo-url", "", "Public URL of the reference photo")
	flag.Parse()

	if *imagePath == "" || *name == "" {
		flag.Usage()
		return errors.New("-image and -name are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	image, err := os.ReadFile(*imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

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

	search := service.NewSearchService(faceProvider, store, logger).
		WithMaxImageSide(cfg.MaxImageSide).
		WithEmbeddingDim(cfg.EmbeddingDim)
	enroll := service.NewEnrollService(search, store, logger)

	person, err := enroll.Enroll(ctx, *name, *photoURL, image)
	if err != nil {
		return err
	}

	logger.Info("enrolled",
		slog.String("id", person.ID),
		slog.String("name", person.Name),
		slog.String("store", store.Name()),
	)
	fmt.Println(person.ID)

	return nil
}
