package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manshur0590/TraceMe/internal/domain"
	"github.com/manshur0590/TraceMe/internal/imaging"
	"github.com/manshur0590/TraceMe/internal/match"
	"github.com/manshur0590/TraceMe/internal/provider"
)

// PersonStore is the read side of the reference registry
type PersonStore interface {
	ListPersons(ctx context.Context) ([]domain.Person, error)
}

type SearchService struct {
	provider     provider.FaceProvider
	store        PersonStore
	threshold    float64
	maxImageSide int
	embeddingDim int
	logger       *slog.Logger
}

func NewSearchService(faceProvider provider.FaceProvider, store PersonStore, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SearchService{
		provider:     faceProvider,
		store:        store,
		threshold:    match.DefaultThreshold,
		maxImageSide: 1920,
		logger:       logger,
	}
}

func (s *SearchService) WithThreshold(threshold float64) *SearchService {
	s.threshold = threshold
	return s
}

func (s *SearchService) WithMaxImageSide(maxSide int) *SearchService {
	s.maxImageSide = maxSide
	return s
}

// WithEmbeddingDim makes the service reject extractor output of any other
// length. Zero accepts whatever the extractor returns.
func (s *SearchService) WithEmbeddingDim(dim int) *SearchService {
	s.embeddingDim = dim
	return s
}

// Search finds the registry entry nearest to the first face in image.
// The reference set is only fetched once a face has been extracted, and no
// distance is computed when that fetch fails.
func (s *SearchService) Search(ctx context.Context, image []byte) (*domain.SearchResult, error) {
	start := time.Now()

	embedding, err := s.extract(ctx, image)
	if err != nil {
		return nil, err
	}

	persons, err := s.store.ListPersons(ctx)
	if err != nil {
		s.logger.Error("reference fetch failed", "error", err)
		return nil, domain.ErrFetchFailed.WithError(err)
	}

	best := match.Nearest(embedding, persons)

	result := &domain.SearchResult{
		Distance:       best.Distance,
		ReferenceCount: len(persons),
		SkippedCount:   best.Skipped,
	}
	if best.Found() && match.IsMatch(best.Distance, s.threshold) {
		result.Person = best.Person
		result.Matched = true
	}
	result.LatencyMs = time.Since(start).Milliseconds()

	if best.Skipped > 0 {
		s.logger.Warn("skipped references with unusable embeddings",
			"skipped", best.Skipped,
			"references", len(persons),
		)
	}

	attrs := []any{
		"references", len(persons),
		"matched", result.Matched,
		"latency_ms", result.LatencyMs,
	}
	if best.Found() {
		attrs = append(attrs, "distance", best.Distance)
	}
	if result.Matched {
		attrs = append(attrs, "person_id", result.Person.ID)
	}
	s.logger.Info("face search completed", attrs...)

	return result, nil
}

// extract normalizes the upload and returns the embedding of its first face
func (s *SearchService) extract(ctx context.Context, image []byte) ([]float64, error) {
	normalized, info, err := imaging.Normalize(image, s.maxImageSide)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("image normalized",
		"format", info.Format,
		"width", info.Width,
		"height", info.Height,
		"bytes", len(normalized),
	)

	faces, err := s.provider.ExtractFaces(ctx, normalized)
	if err != nil {
		s.logger.Error("face extraction failed", "provider", s.provider.Name(), "error", err)
		return nil, domain.ErrProviderUnavailable.WithError(err)
	}

	if len(faces) == 0 {
		return nil, domain.ErrNoFaceDetected
	}

	s.logger.Debug("faces detected", "provider", s.provider.Name(), "count", len(faces))

	embedding := faces[0].Embedding
	if len(embedding) == 0 {
		return nil, domain.ErrProviderUnavailable.WithError(fmt.Errorf("%s returned an empty embedding", s.provider.Name()))
	}
	if s.embeddingDim > 0 && len(embedding) != s.embeddingDim {
		return nil, domain.ErrProviderUnavailable.WithError(
			fmt.Errorf("%s returned %d-dim embedding, want %d", s.provider.Name(), len(embedding), s.embeddingDim))
	}

	return embedding, nil
}
