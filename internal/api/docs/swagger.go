package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
)

// SearchMatchResponse is returned when a registry entry is under the threshold
type SearchMatchResponse struct {
	ID       string  `json:"id" example:"5b7c0f2e-1111-4c53-9a39-6a3fd1c1a001"`
	Name     string  `json:"name" example:"Ana Souza"`
	PhotoURL string  `json:"photo_url" example:"https://cdn.example.org/persons/ana.jpg"`
	Distance float64 `json:"distance" example:"0.21"`
}

// SearchNoMatchResponse is returned when no entry is close enough
type SearchNoMatchResponse struct {
	Message string `json:"message" example:"No match found"`
}

// HealthResponse is returned by the probes
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Detail string `json:"detail" example:"No face detected"`
	Code   string `json:"code" example:"NO_FACE_DETECTED"`
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "TraceMe Face Search API",
		Version:     "v1.0.0",
		Description: "Search a missing-persons registry by face photo",
		Host:        "localhost:8000",
		Path:        "/",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /search-face
		endpoint.New(
			endpoint.POST,
			"/search-face",
			endpoint.WithTags("Search"),
			endpoint.WithSummary("Find the registered person closest to a face photo"),
			endpoint.WithDescription("Upload a photo in the multipart field \"file\". The first detected face is compared by cosine distance against every registry entry; the nearest one is returned when its distance is below the match threshold (0.35 by default), otherwise {\"message\": \"No match found\"}."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SearchMatchResponse{}, "200", "Match found, or SearchNoMatchResponse when nothing is close enough"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{}, "400", "Missing file part (VALIDATION_FAILED), undecodable or oversized image (INVALID_IMAGE) or No face detected (NO_FACE_DETECTED)"),
				response.New(ErrorResponse{}, "413", "Upload exceeds MAX_UPLOAD_BYTES (HTTP_ERROR)"),
				response.New(ErrorResponse{}, "429", "Rate limit exceeded, please try again later (RATE_LIMIT_EXCEEDED)"),
				response.New(ErrorResponse{}, "500", "Failed to fetch data (FETCH_FAILED)"),
				response.New(ErrorResponse{}, "502", "Face recognition provider unavailable (PROVIDER_UNAVAILABLE)"),
			}),
		),

		// GET /health
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness probe"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is up"),
			}),
		),

		// GET /ready
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness probe"),
			endpoint.WithDescription("Checks that the reference store answers with the configured credentials"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Ready to serve searches"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{}, "503", "Reference store is not reachable (NOT_READY)"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
