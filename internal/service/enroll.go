package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/manshur0590/TraceMe/internal/domain"
)

// PersonWriter is the write side of the reference registry
type PersonWriter interface {
	AddPerson(ctx context.Context, person *domain.Person) error
}

// EnrollService computes embeddings for new registry entries. It shares the
// extraction path with SearchService so both sides use the same model input.
type EnrollService struct {
	search *SearchService
	writer PersonWriter
	logger *slog.Logger
}

func NewEnrollService(search *SearchService, writer PersonWriter, logger *slog.Logger) *EnrollService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrollService{search: search, writer: writer, logger: logger}
}

// Enroll extracts the first face of image and stores it under name
func (s *EnrollService) Enroll(ctx context.Context, name, photoURL string, image []byte) (*domain.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("name is required"))
	}

	embedding, err := s.search.extract(ctx, image)
	if err != nil {
		return nil, err
	}

	person := &domain.Person{
		Name:          name,
		PhotoURL:      photoURL,
		FaceEmbedding: embedding,
	}

	if err := s.writer.AddPerson(ctx, person); err != nil {
		return nil, fmt.Errorf("enroll %q: %w", name, err)
	}

	s.logger.Info("person enrolled", "person_id", person.ID, "name", person.Name, "dim", len(embedding))

	return person, nil
}
