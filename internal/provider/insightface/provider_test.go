package insightface

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manshur0590/TraceMe/internal/provider"
)

func TestProvider_ExtractFaces(t *testing.T) {
	embedding := make([]float64, 512)
	embedding[3] = 0.5

	tests := []struct {
		name         string
		serverStatus int
		serverBody   string
		wantFaces    int
		wantErr      error
		validate     func(*testing.T, []provider.DetectedFace)
	}{
		{
			name:         "two faces keep detection order",
			serverStatus: http.StatusOK,
			serverBody: mustJSON(t, FaceResponse{
				FacesCount: 2,
				Model:      "buffalo_l",
				Faces: []FaceDetection{
					{FaceIndex: 0, Dim: 512, Embedding: embedding, BBox: []float64{10, 20, 110, 140}, DetScore: 0.91},
					{FaceIndex: 1, Dim: 512, Embedding: make([]float64, 512), BBox: []float64{200, 20, 260, 90}, DetScore: 0.72},
				},
			}),
			wantFaces: 2,
			validate: func(t *testing.T, faces []provider.DetectedFace) {
				assert.Equal(t, embedding, faces[0].Embedding)
				assert.Equal(t, 0.91, faces[0].Confidence)
				assert.Equal(t, provider.BoundingBox{X: 10, Y: 20, Width: 100, Height: 120}, faces[0].BoundingBox)
				assert.Equal(t, 0.72, faces[1].Confidence)
			},
		},
		{
			name:         "no faces",
			serverStatus: http.StatusOK,
			serverBody:   `{"faces_count":0,"faces":[],"model":"buffalo_l"}`,
			wantFaces:    0,
		},
		{
			name:         "malformed bbox yields empty box",
			serverStatus: http.StatusOK,
			serverBody: mustJSON(t, FaceResponse{Faces: []FaceDetection{
				{Embedding: embedding, BBox: []float64{1, 2}},
			}}),
			wantFaces: 1,
			validate: func(t *testing.T, faces []provider.DetectedFace) {
				assert.Equal(t, provider.BoundingBox{}, faces[0].BoundingBox)
			},
		},
		{
			name:         "server error",
			serverStatus: http.StatusInternalServerError,
			serverBody:   `{"detail":"model not loaded"}`,
			wantErr:      ErrServerUnavailable,
		},
		{
			name:         "invalid json",
			serverStatus: http.StatusOK,
			serverBody:   `not json`,
			wantErr:      ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/embed/face", r.URL.Path)
				assert.Equal(t, http.MethodPost, r.Method)

				file, header, err := r.FormFile("file")
				require.NoError(t, err)
				defer file.Close()
				assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
				data, _ := io.ReadAll(file)
				assert.Equal(t, []byte("jpeg bytes"), data)

				w.WriteHeader(tt.serverStatus)
				_, _ = w.Write([]byte(tt.serverBody))
			}))
			defer server.Close()

			p := NewProvider(Config{BaseURL: server.URL + "/", Timeout: 5 * time.Second})
			faces, err := p.ExtractFaces(context.Background(), []byte("jpeg bytes"))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, faces, tt.wantFaces)
			if tt.validate != nil {
				tt.validate(t, faces)
			}
		})
	}
}

func TestProvider_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewProvider(Config{BaseURL: url, Timeout: time.Second}).ExtractFaces(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerUnavailable)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.Equal(t, "insightface", NewProvider(DefaultConfig()).Name())
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
