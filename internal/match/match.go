// Package match implements the brute-force nearest-neighbour scan over the
// reference embeddings.
package match

import (
	"math"

	"github.com/manshur0590/TraceMe/internal/domain"
)

// DefaultThreshold is the cosine distance under which two ArcFace
// embeddings are considered the same person.
const DefaultThreshold = 0.35

// maxDistance is returned for inputs that cannot be compared
const maxDistance = 2.0

// CosineDistance computes 1 - cosine similarity.
// Returns a value between 0 (same direction) and 2 (opposite). Vectors of
// different length, empty vectors and zero vectors are at maxDistance.
func CosineDistance(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return maxDistance
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return maxDistance
	}

	similarity := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp to [-1, 1] to absorb floating point drift
	if similarity > 1 {
		similarity = 1
	}
	if similarity < -1 {
		similarity = -1
	}

	return 1 - similarity
}

// Candidate is the closest reference found by Nearest
type Candidate struct {
	Person   *domain.Person
	Distance float64
	// Scanned counts references compared against the query
	Scanned int
	// Skipped counts references whose embedding could not be compared
	Skipped int
}

// Found reports whether any reference was compared
func (c Candidate) Found() bool {
	return c.Person != nil
}

// Nearest scans every reference once and keeps the smallest distance.
// Comparison is strict, so on equal distances the earliest reference wins.
// References whose embedding length differs from the query are skipped.
func Nearest(query []float64, persons []domain.Person) Candidate {
	best := Candidate{Distance: math.Inf(1)}

	for i := range persons {
		emb := persons[i].FaceEmbedding
		if len(emb) == 0 || len(emb) != len(query) {
			best.Skipped++
			continue
		}

		best.Scanned++
		dist := CosineDistance(query, emb)
		if dist < best.Distance {
			best.Distance = dist
			best.Person = &persons[i]
		}
	}

	return best
}

// IsMatch applies the threshold: a match requires distance strictly below it
func IsMatch(distance, threshold float64) bool {
	return distance < threshold
}
