package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manshur0590/TraceMe/internal/domain"
	"github.com/manshur0590/TraceMe/internal/imaging"
	"github.com/manshur0590/TraceMe/internal/provider/mock"
	"github.com/manshur0590/TraceMe/internal/service"
)

type memoryStore struct {
	persons []domain.Person
	err     error
	calls   int
}

func (s *memoryStore) ListPersons(ctx context.Context) ([]domain.Person, error) {
	s.calls++
	return s.persons, s.err
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// noisyPNG returns an image large enough to survive JPEG re-encoding above
// the mock provider's minimum size.
func noisyPNG(t *testing.T, seed uint8) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 96, 96))
	v := uint32(seed) + 1
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			v = v*1664525 + 1013904223
			img.Set(x, y, color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "face.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/search-face", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newTestRouter(store *memoryStore, opts Options) *Router {
	svc := service.NewSearchService(mock.New(), store, testLogger())
	r := NewRouter(testLogger(), &Dependencies{Search: svc, Store: store}, opts)
	r.Setup()
	return r
}

// registryFor builds a registry holding the exact embedding the mock
// provider derives for upload after normalization.
func registryFor(t *testing.T, upload []byte) []domain.Person {
	t.Helper()

	normalized, _, err := imaging.Normalize(upload, 1920)
	require.NoError(t, err)
	same := mock.Embedding(normalized)

	far := make([]float64, len(same))
	for i := range same {
		far[i] = -same[i]
	}

	return []domain.Person{
		{ID: "far", Name: "Far Away", FaceEmbedding: far},
		{ID: "p-1", Name: "Ana", PhotoURL: "https://cdn/ana.jpg", FaceEmbedding: same},
	}
}

func TestRouter_SearchFace(t *testing.T) {
	upload := noisyPNG(t, 1)

	t.Run("identical face returns the person at distance zero", func(t *testing.T) {
		store := &memoryStore{persons: registryFor(t, upload)}
		r := newTestRouter(store, Options{})
		defer func() { _ = r.Shutdown(time.Second) }()

		resp, err := r.App().Test(uploadRequest(t, upload), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "p-1", body["id"])
		assert.Equal(t, "Ana", body["name"])
		assert.InDelta(t, 0, body["distance"], 1e-9)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})

	t.Run("unrelated registry returns no match", func(t *testing.T) {
		store := &memoryStore{persons: registryFor(t, noisyPNG(t, 2))[1:]}
		r := newTestRouter(store, Options{})
		defer func() { _ = r.Shutdown(time.Second) }()

		resp, err := r.App().Test(uploadRequest(t, upload), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, map[string]any{"message": "No match found"}, body)
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		store := &memoryStore{err: assert.AnError}
		r := newTestRouter(store, Options{})
		defer func() { _ = r.Shutdown(time.Second) }()

		resp, err := r.App().Test(uploadRequest(t, upload), -1)
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Failed to fetch data", body["detail"])
	})

	t.Run("rate limit applies per client", func(t *testing.T) {
		store := &memoryStore{}
		r := newTestRouter(store, Options{RateLimitMax: 1, RateLimitWindow: time.Minute})
		defer func() { _ = r.Shutdown(time.Second) }()

		resp, err := r.App().Test(uploadRequest(t, upload), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		resp, err = r.App().Test(uploadRequest(t, upload), -1)
		require.NoError(t, err)
		assert.Equal(t, 429, resp.StatusCode)
		assert.Equal(t, 1, store.calls)
	})
}

func TestRouter_Probes(t *testing.T) {
	store := &memoryStore{}
	r := newTestRouter(store, Options{})
	defer func() { _ = r.Shutdown(time.Second) }()

	resp, err := r.App().Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = r.App().Test(httptest.NewRequest("GET", "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	store.err = assert.AnError
	resp, err = r.App().Test(httptest.NewRequest("GET", "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestRouter_WithoutSearch(t *testing.T) {
	r := NewRouter(testLogger(), nil, Options{})
	r.Setup()

	resp, err := r.App().Test(httptest.NewRequest("POST", "/search-face", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
