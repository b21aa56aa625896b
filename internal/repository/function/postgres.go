package function

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kailas-cloud/dimreg/internal/db"
	"github.com/kailas-cloud/dimreg/internal/db/postgres"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

const registerSQL = `
INSERT INTO functions (tenant, function_name) VALUES ($1, $2)
ON CONFLICT (tenant, function_name) DO NOTHING`

const existsSQL = `
SELECT EXISTS (SELECT 1 FROM functions WHERE tenant = $1 AND function_name = $2)`

// execer is the consumer interface for SQL storage (satisfied by *sql.DB).
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresRepo registers functions in the functions table.
type PostgresRepo struct {
	q execer
}

// NewPostgres creates a Postgres-backed function repository.
func NewPostgres(q execer) *PostgresRepo {
	return &PostgresRepo{q: q}
}

// Register is idempotent.
func (r *PostgresRepo) Register(ctx context.Context, t tenant.Tenant, name string) error {
	if _, err := r.q.ExecContext(ctx, registerSQL, t.String(), name); err != nil {
		return fmt.Errorf("register function %s: %w", name, postgres.Classify(db.OpExec, err))
	}
	return nil
}

// Exists reports whether name is registered for the tenant.
func (r *PostgresRepo) Exists(ctx context.Context, t tenant.Tenant, name string) (bool, error) {
	var ok bool
	if err := r.q.QueryRowContext(ctx, existsSQL, t.String(), name).Scan(&ok); err != nil {
		return false, fmt.Errorf("check function %s: %w", name, postgres.Classify(db.OpQuery, err))
	}
	return ok, nil
}
