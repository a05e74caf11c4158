package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/manshur0590/TraceMe/internal/provider"
)

const (
	// EmbeddingDimension matches the ArcFace models used in production
	EmbeddingDimension = 512
	// minImageSize is the smallest payload treated as containing a face
	minImageSize = 1000
)

// Provider implements provider.FaceProvider for development and tests.
// Every image of at least minImageSize bytes contains exactly one face whose
// embedding is derived from the image hash; smaller images contain none.
type Provider struct{}

// New creates a mock provider
func New() *Provider {
	return &Provider{}
}

// Name implements provider.FaceProvider
func (p *Provider) Name() string {
	return "mock"
}

// ExtractFaces implements provider.FaceProvider
func (p *Provider) ExtractFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(image) < minImageSize {
		return []provider.DetectedFace{}, nil
	}

	return []provider.DetectedFace{
		{
			BoundingBox: provider.BoundingBox{X: 0.1, Y: 0.1, Width: 0.8, Height: 0.8},
			Confidence:  0.99,
			Embedding:   Embedding(image),
		},
	}, nil
}

// Embedding returns the deterministic unit-length embedding for image
func Embedding(image []byte) []float64 {
	hash := sha256.Sum256(image)
	embedding := make([]float64, EmbeddingDimension)
	hashLen := len(hash)

	for i := 0; i < EmbeddingDimension; i++ {
		// mix the position in so vectors do not repeat every 32 elements
		b := hash[i%hashLen] ^ byte(i/hashLen*37)
		embedding[i] = (float64(b)/255.0)*2 - 1
	}

	var norm float64
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return embedding
	}

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}

var _ provider.FaceProvider = (*Provider)(nil)
