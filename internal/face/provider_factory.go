package face

import (
	"fmt"

	"github.com/manshur0590/TraceMe/internal/config"
	"github.com/manshur0590/TraceMe/internal/provider"
	"github.com/manshur0590/TraceMe/internal/provider/deepface"
	"github.com/manshur0590/TraceMe/internal/provider/insightface"
	"github.com/manshur0590/TraceMe/internal/provider/mock"
)

// ProviderType defines supported face recognition provider types
type ProviderType string

const (
	// ProviderTypeInsightFace is the InsightFace embedding server (buffalo_l)
	ProviderTypeInsightFace ProviderType = "insightface"
	// ProviderTypeDeepFace is the DeepFace API running ArcFace
	ProviderTypeDeepFace ProviderType = "deepface"
	// ProviderTypeMock is the deterministic in-process provider for dev/test
	ProviderTypeMock ProviderType = "mock"
)

// NewFaceProvider creates a FaceProvider instance based on configuration
//
// Environment variables:
//   - FACE_PROVIDER: "insightface", "deepface" or "mock" (default: "insightface")
//   - INSIGHTFACE_URL: embedding server URL (default: "http://localhost:8001")
//   - DEEPFACE_URL: DeepFace API URL (default: "http://localhost:5005")
//   - DEEPFACE_MODEL / DEEPFACE_DETECTOR: DeepFace model and detector backend
//   - PROVIDER_TIMEOUT: per-request timeout for either server
func NewFaceProvider(cfg *config.Config) (provider.FaceProvider, error) {
	switch ProviderType(cfg.FaceProvider) {
	case ProviderTypeInsightFace, "":
		return createInsightFaceProvider(cfg), nil

	case ProviderTypeDeepFace:
		return createDeepFaceProvider(cfg), nil

	case ProviderTypeMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s)",
			cfg.FaceProvider, ProviderTypeInsightFace, ProviderTypeDeepFace, ProviderTypeMock)
	}
}

func createInsightFaceProvider(cfg *config.Config) provider.FaceProvider {
	ifConfig := insightface.DefaultConfig()
	if cfg.InsightFaceURL != "" {
		ifConfig.BaseURL = cfg.InsightFaceURL
	}
	if cfg.ProviderTimeout > 0 {
		ifConfig.Timeout = cfg.ProviderTimeout
	}

	return insightface.NewProvider(ifConfig)
}

func createDeepFaceProvider(cfg *config.Config) provider.FaceProvider {
	deepfaceConfig := deepface.DefaultConfig()
	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.DeepFaceModel != "" {
		deepfaceConfig.Model = cfg.DeepFaceModel
	}
	if cfg.DeepFaceDetector != "" {
		deepfaceConfig.Detector = cfg.DeepFaceDetector
	}
	if cfg.ProviderTimeout > 0 {
		deepfaceConfig.Timeout = cfg.ProviderTimeout
	}

	return deepface.NewProvider(deepfaceConfig)
}
