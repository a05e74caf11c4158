package provider

import "context"

// FaceProvider extracts identity embeddings from photographs.
// Implementations wrap a pretrained model that is used as a black box.
type FaceProvider interface {
	// ExtractFaces detects every face in the image and returns one embedding
	// per face, in the model's detection order. An image without faces
	// yields an empty slice and a nil error.
	ExtractFaces(ctx context.Context, image []byte) ([]DetectedFace, error)

	// Name identifies the provider in logs
	Name() string
}

// DetectedFace is a face found in the image together with its embedding
type DetectedFace struct {
	BoundingBox BoundingBox `json:"bounding_box"`
	Confidence  float64     `json:"confidence"`
	Embedding   []float64   `json:"-"`
}

// BoundingBox represents the face area in the image, in pixels
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the box area in square pixels
func (b BoundingBox) Area() float64 {
	return b.Width * b.Height
}
