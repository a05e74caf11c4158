package face

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manshur0590/TraceMe/internal/config"
	"github.com/manshur0590/TraceMe/internal/provider/deepface"
	"github.com/manshur0590/TraceMe/internal/provider/insightface"
	"github.com/manshur0590/TraceMe/internal/provider/mock"
)

func TestNewFaceProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		wantName string
		check    func(t *testing.T, p interface{})
	}{
		{
			name:     "empty provider defaults to insightface",
			cfg:      &config.Config{},
			wantName: "insightface",
			check: func(t *testing.T, p interface{}) {
				_, ok := p.(*insightface.Provider)
				assert.True(t, ok, "got %T", p)
			},
		},
		{
			name:     "explicit insightface provider",
			cfg:      &config.Config{FaceProvider: "insightface", InsightFaceURL: "http://faces:8001", ProviderTimeout: time.Second},
			wantName: "insightface",
			check: func(t *testing.T, p interface{}) {
				_, ok := p.(*insightface.Provider)
				assert.True(t, ok, "got %T", p)
			},
		},
		{
			name:     "deepface provider",
			cfg:      &config.Config{FaceProvider: "deepface", DeepFaceURL: "http://custom-host:8080", DeepFaceModel: "Facenet512"},
			wantName: "deepface",
			check: func(t *testing.T, p interface{}) {
				_, ok := p.(*deepface.Provider)
				assert.True(t, ok, "got %T", p)
			},
		},
		{
			name:     "mock provider",
			cfg:      &config.Config{FaceProvider: "mock"},
			wantName: "mock",
			check: func(t *testing.T, p interface{}) {
				_, ok := p.(*mock.Provider)
				assert.True(t, ok, "got %T", p)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewFaceProvider(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, p)

			assert.Equal(t, tt.wantName, p.Name())
			tt.check(t, p)
		})
	}
}

func TestNewFaceProvider_Unknown(t *testing.T) {
	p, err := NewFaceProvider(&config.Config{FaceProvider: "rekognition"})

	require.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "unknown provider type: rekognition")
}
