package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/manshur0590/TraceMe/internal/domain"
)

// PgxPool is the subset of *pgxpool.Pool the repositories use; pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PersonRepositoryInterface defines operations for missing-person data access
type PersonRepositoryInterface interface {
	List(ctx context.Context) ([]domain.Person, error)
	Create(ctx context.Context, person *domain.Person) error
	Ping(ctx context.Context) error
}
