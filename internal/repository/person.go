package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/manshur0590/TraceMe/internal/domain"
)

// ErrPersonExists is returned when an id is inserted twice
var ErrPersonExists = errors.New("person already exists")

type PersonRepository struct {
	pool PgxPool
}

func NewPersonRepository(pool PgxPool) *PersonRepository {
	return &PersonRepository{pool: pool}
}

// List returns every registry entry. Rows come back in insertion order so
// that distance ties resolve the same way on every request.
func (r *PersonRepository) List(ctx context.Context) ([]domain.Person, error) {
	query := `
		SELECT id::text, name, COALESCE(photo_url, ''), face_embedding
		FROM missing_persons
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var persons []domain.Person
	for rows.Next() {
		var p domain.Person
		var embedding *pgvector.Vector

		if err := rows.Scan(&p.ID, &p.Name, &p.PhotoURL, &embedding); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}

		p.FaceEmbedding = fromVector(embedding)
		persons = append(persons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}

	return persons, nil
}

func (r *PersonRepository) Create(ctx context.Context, person *domain.Person) error {
	query := `
		INSERT INTO missing_persons (id, name, photo_url, face_embedding, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NOW())
	`

	if person.ID == "" {
		person.ID = uuid.New().String()
	}

	if _, err := r.pool.Exec(ctx, query,
		person.ID,
		person.Name,
		person.PhotoURL,
		toVector(person.FaceEmbedding),
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create person %s: %w", person.ID, ErrPersonExists)
		}
		return fmt.Errorf("create person: %w", err)
	}

	return nil
}

// Ping verifies database connectivity
func (r *PersonRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database unhealthy: %w", err)
	}
	return nil
}
