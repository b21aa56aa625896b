package dimension

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kailas-cloud/dimreg/internal/db"
	"github.com/kailas-cloud/dimreg/internal/db/postgres"
	"github.com/kailas-cloud/dimreg/internal/domain"
	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

const upsertSQL = `
INSERT INTO dimensions (
    tenant, dimension, priority, schema, function_name,
    created_by, created_at, last_modified_by, last_modified_at
) VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8, $9)
ON CONFLICT (tenant, dimension) DO UPDATE SET
    priority         = EXCLUDED.priority,
    schema           = EXCLUDED.schema,
    function_name    = EXCLUDED.function_name,
    last_modified_by = EXCLUDED.last_modified_by,
    last_modified_at = EXCLUDED.last_modified_at
RETURNING dimension, priority, schema, function_name,
    created_by, created_at, last_modified_by, last_modified_at`

const listSQL = `
SELECT dimension, priority, schema, function_name,
    created_by, created_at, last_modified_by, last_modified_at
FROM dimensions
WHERE tenant = $1
ORDER BY seq`

// querier is the consumer interface for SQL storage (satisfied by *sql.DB).
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresRepo implements usecase/dimension.Repository over Postgres.
type PostgresRepo struct {
	q querier
}

// NewPostgres creates a Postgres-backed dimension repository.
func NewPostgres(q querier) *PostgresRepo {
	return &PostgresRepo{q: q}
}

// Upsert inserts or updates the dimension in one statement.
// created_* are not in the update set, so the stored values survive.
func (r *PostgresRepo) Upsert(ctx context.Context, t tenant.Tenant, d domdim.Dimension) (domdim.Dimension, error) {
	a := d.Audit()
	var out row
	err := r.q.QueryRowContext(ctx, upsertSQL,
		t.String(), d.Name(), d.Priority(), string(d.Schema()), nullableFunction(d.Function()),
		a.CreatedBy, a.CreatedAt, a.LastModifiedBy, a.LastModifiedAt,
	).Scan(out.dest()...)
	if err != nil {
		err = postgres.Classify(db.OpQuery, err)
		if errors.Is(err, db.ErrForeignKey) {
			name, _ := d.Function().Name()
			return domdim.Dimension{}, fmt.Errorf("upsert dimension %s: %w: %w", d.Name(), domain.NewFunctionNotFound(name), err)
		}
		return domdim.Dimension{}, fmt.Errorf("upsert dimension %s: %w", d.Name(), err)
	}
	return out.toDomain()
}

// List returns the tenant's dimensions in insertion order.
func (r *PostgresRepo) List(ctx context.Context, t tenant.Tenant) ([]domdim.Dimension, error) {
	rows, err := r.q.QueryContext(ctx, listSQL, t.String())
	if err != nil {
		return nil, fmt.Errorf("list dimensions: %w", postgres.Classify(db.OpQuery, err))
	}
	defer rows.Close()

	var out []domdim.Dimension
	for rows.Next() {
		var rw row
		if err := rows.Scan(rw.dest()...); err != nil {
			return nil, fmt.Errorf("scan dimension: %w", err)
		}
		d, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dimensions: %w", postgres.Classify(db.OpQuery, err))
	}
	return out, nil
}
