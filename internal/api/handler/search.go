package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/manshur0590/TraceMe/internal/domain"
)

// Upload field names, in lookup order
var imageFields = []string{"file", "image"}

// SearchService finds the registry entry closest to an uploaded face
type SearchService interface {
	Search(ctx context.Context, image []byte) (*domain.SearchResult, error)
}

type SearchHandler struct {
	service SearchService
	logger  *slog.Logger
}

func NewSearchHandler(service SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		logger:  logger,
	}
}

// MatchResponse is returned when a reference falls under the threshold
type MatchResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PhotoURL string  `json:"photo_url"`
	Distance float64 `json:"distance"`
}

// NoMatchResponse is returned when nothing is close enough
type NoMatchResponse struct {
	Message string `json:"message"`
}

const noMatchMessage = "No match found"

// SearchFace handles POST /search-face
func (h *SearchHandler) SearchFace(c *fiber.Ctx) error {
	imageBytes, err := readUpload(c)
	if err != nil {
		return err
	}

	result, err := h.service.Search(c.UserContext(), imageBytes)
	if err != nil {
		return err
	}

	if !result.Matched || result.Person == nil {
		return c.JSON(NoMatchResponse{Message: noMatchMessage})
	}

	return c.JSON(MatchResponse{
		ID:       result.Person.ID,
		Name:     result.Person.Name,
		PhotoURL: result.Person.PhotoURL,
		Distance: result.Distance,
	})
}

// readUpload returns the bytes of the first image field present in the form
func readUpload(c *fiber.Ctx) ([]byte, error) {
	var file *multipart.FileHeader
	for _, field := range imageFields {
		f, err := c.FormFile(field)
		if err == nil {
			file = f
			break
		}
	}
	if file == nil {
		return nil, domain.ErrValidationFailed.WithError(errors.New("multipart field \"file\" is required"))
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return imageBytes, nil
}
