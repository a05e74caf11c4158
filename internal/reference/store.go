// Package reference selects where the registry of known faces is read from.
package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manshur0590/TraceMe/internal/config"
	"github.com/manshur0590/TraceMe/internal/database"
	"github.com/manshur0590/TraceMe/internal/domain"
	"github.com/manshur0590/TraceMe/internal/postgrest"
	"github.com/manshur0590/TraceMe/internal/repository"
)

// Store is the registry of persons with precomputed embeddings
type Store interface {
	// ListPersons returns every record in one read, in store order
	ListPersons(ctx context.Context) ([]domain.Person, error)
	AddPerson(ctx context.Context, person *domain.Person) error
	Ping(ctx context.Context) error
	Name() string
	Close()
}

// NewStore builds the backend named by REFERENCE_STORE
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.ReferenceStore {
	case config.StorePostgREST, "":
		return NewRESTStore(postgrest.NewClient(postgrest.Config{
			BaseURL: cfg.SupabaseURL,
			APIKey:  cfg.SupabaseKey,
			Table:   cfg.ReferenceTable,
			Timeout: cfg.ReferenceTimeout,
		})), nil

	case config.StorePostgres:
		pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
		if err != nil {
			return nil, fmt.Errorf("connect reference database: %w", err)
		}
		return NewPostgresStore(repository.NewPersonRepository(pool), pool), nil

	default:
		return nil, fmt.Errorf("unknown reference store: %s", cfg.ReferenceStore)
	}
}

// RESTStore reads the registry over PostgREST
type RESTStore struct {
	client *postgrest.Client
}

func NewRESTStore(client *postgrest.Client) *RESTStore {
	return &RESTStore{client: client}
}

func (s *RESTStore) ListPersons(ctx context.Context) ([]domain.Person, error) {
	return s.client.ListPersons(ctx)
}

func (s *RESTStore) AddPerson(ctx context.Context, person *domain.Person) error {
	return s.client.AddPerson(ctx, person)
}

func (s *RESTStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *RESTStore) Name() string {
	return config.StorePostgREST
}

func (s *RESTStore) Close() {}

// PostgresStore reads the registry straight from Postgres
type PostgresStore struct {
	repo repository.PersonRepositoryInterface
	pool *pgxpool.Pool
}

// NewPostgresStore wraps repo; pool may be nil when the caller owns it
func NewPostgresStore(repo repository.PersonRepositoryInterface, pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{repo: repo, pool: pool}
}

func (s *PostgresStore) ListPersons(ctx context.Context) ([]domain.Person, error) {
	return s.repo.List(ctx)
}

func (s *PostgresStore) AddPerson(ctx context.Context, person *domain.Person) error {
	return s.repo.Create(ctx, person)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *PostgresStore) Name() string {
	return config.StorePostgres
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
