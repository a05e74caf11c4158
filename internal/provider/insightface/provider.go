package insightface

import (
	"context"
	"fmt"

	"github.com/manshur0590/TraceMe/internal/provider"
)

// Provider implements provider.FaceProvider on top of the embedding server
type Provider struct {
	client *Client
}

// NewProvider creates a new InsightFace provider
func NewProvider(config Config) *Provider {
	return &Provider{client: NewClient(config)}
}

// Name implements provider.FaceProvider
func (p *Provider) Name() string {
	return "insightface"
}

// ExtractFaces implements provider.FaceProvider
func (p *Provider) ExtractFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	resp, err := p.client.ComputeFaceEmbeddings(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("extract faces: %w", err)
	}

	faces := make([]provider.DetectedFace, 0, len(resp.Faces))
	for _, f := range resp.Faces {
		if len(f.Embedding) == 0 {
			continue
		}
		faces = append(faces, provider.DetectedFace{
			BoundingBox: boxFromCorners(f.BBox),
			Confidence:  f.DetScore,
			Embedding:   f.Embedding,
		})
	}

	return faces, nil
}

// boxFromCorners converts [x1, y1, x2, y2] into an origin and size
func boxFromCorners(bbox []float64) provider.BoundingBox {
	if len(bbox) != 4 {
		return provider.BoundingBox{}
	}
	return provider.BoundingBox{
		X:      bbox[0],
		Y:      bbox[1],
		Width:  bbox[2] - bbox[0],
		Height: bbox[3] - bbox[1],
	}
}

var _ provider.FaceProvider = (*Provider)(nil)
