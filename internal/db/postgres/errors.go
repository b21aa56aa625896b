package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kailas-cloud/dimreg/internal/db"
)

const codeForeignKeyViolation = "23503"

// Classify wraps a driver error for op, surfacing foreign-key violations
// as *db.ConstraintError (errors.Is db.ErrForeignKey).
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return &db.ConstraintError{Constraint: pgErr.ConstraintName, Err: err}
	}
	return &db.Error{Op: op, Err: err}
}
