// Package imaging decodes uploaded photographs and normalises them into a
// single JPEG representation before they are handed to a face provider.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/manshur0590/TraceMe/internal/domain"
)

const jpegQuality = 90

// MaxPixels caps the decoded size of an upload. Compressed formats can
// declare dimensions far beyond what the body limit suggests.
const MaxPixels = 50_000_000

var (
	// ErrEmptyImage is returned for zero-length uploads
	ErrEmptyImage = errors.New("empty image")
	// ErrImageTooLarge is returned when the declared dimensions exceed MaxPixels
	ErrImageTooLarge = errors.New("image dimensions too large")
)

// Info describes a decoded image
type Info struct {
	Format string
	Width  int
	Height int
}

// Normalize decodes data, shrinks it so the longest side is at most maxSide
// and re-encodes it as JPEG. Images already within bounds are re-encoded at
// their original size. A maxSide <= 0 disables resizing.
func Normalize(data []byte, maxSide int) ([]byte, Info, error) {
	if len(data) == 0 {
		return nil, Info{}, domain.ErrInvalidImage.WithError(ErrEmptyImage)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, domain.ErrInvalidImage.WithError(fmt.Errorf("decode image header: %w", err))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, Info{}, domain.ErrInvalidImage.WithError(
			fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height))
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, domain.ErrInvalidImage.WithError(fmt.Errorf("decode image: %w", err))
	}

	bounds := img.Bounds()
	info := Info{Format: format, Width: bounds.Dx(), Height: bounds.Dy()}

	if w, h, ok := fit(info.Width, info.Height, maxSide); ok {
		resized := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
		img = resized
		info.Width, info.Height = w, h
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, Info{}, fmt.Errorf("encode image: %w", err)
	}

	return buf.Bytes(), info, nil
}

// fit returns the scaled dimensions for a width x height image whose longest
// side must not exceed maxSide. ok is false when no resize is needed.
func fit(width, height, maxSide int) (int, int, bool) {
	if maxSide <= 0 || (width <= maxSide && height <= maxSide) {
		return width, height, false
	}

	if width >= height {
		h := height * maxSide / width
		if h < 1 {
			h = 1
		}
		return maxSide, h, true
	}

	w := width * maxSide / height
	if w < 1 {
		w = 1
	}
	return w, maxSide, true
}
