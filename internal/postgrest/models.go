package postgrest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/manshur0590/TraceMe/internal/domain"
)

// personRow is one record as serialised by PostgREST
type personRow struct {
	ID            rowID     `json:"id"`
	Name          string    `json:"name"`
	PhotoURL      *string   `json:"photo_url"`
	FaceEmbedding embedding `json:"face_embedding"`
}

func (r personRow) toDomain() domain.Person {
	p := domain.Person{
		ID:            r.ID.String(),
		Name:          r.Name,
		FaceEmbedding: []float64(r.FaceEmbedding),
	}
	if r.PhotoURL != nil {
		p.PhotoURL = *r.PhotoURL
	}
	return p
}

// insertRow is the body of an insert. The vector is sent as a JSON array of
// numbers, which PostgREST accepts for both vector and float8[] columns.
type insertRow struct {
	Name          string    `json:"name"`
	PhotoURL      *string   `json:"photo_url,omitempty"`
	FaceEmbedding []float64 `json:"face_embedding"`
}

func newInsertRow(p *domain.Person) insertRow {
	row := insertRow{
		Name:          p.Name,
		FaceEmbedding: p.FaceEmbedding,
	}
	if p.PhotoURL != "" {
		row.PhotoURL = &p.PhotoURL
	}
	return row
}

// rowID keeps the text form of an id that may be a JSON number or string
type rowID string

func (id *rowID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = rowID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = rowID(n.String())
	return nil
}

func (id rowID) String() string {
	return string(id)
}

// embedding accepts the two shapes a vector column can take in PostgREST
// output: a JSON array (float8[]) or pgvector text such as "[0.1,0.2]".
type embedding []float64

func (e *embedding) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		var vec pgvector.Vector
		if err := vec.Scan(s); err != nil {
			return fmt.Errorf("face_embedding: %w", err)
		}
		floats := vec.Slice()
		out := make([]float64, len(floats))
		for i, v := range floats {
			out[i] = float64(v)
		}
		*e = out
		return nil
	}

	var out []float64
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("face_embedding: %w", err)
	}
	*e = out
	return nil
}
