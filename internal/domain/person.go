package domain

// Person is a missing-persons registry entry as held by the reference store
type Person struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	PhotoURL      string    `json:"photo_url"`
	FaceEmbedding []float64 `json:"-"`
}

// SearchResult is the outcome of one search-by-face request.
// Person is nil when no reference fell under the threshold.
type SearchResult struct {
	Person         *Person
	Distance       float64
	Matched        bool
	ReferenceCount int
	SkippedCount   int
	LatencyMs      int64
}
