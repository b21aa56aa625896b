package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/kailas-cloud/dimreg/internal/db"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrate applies all pending migrations.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("set goose dialect: %w", err)}
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	return nil
}

// MigrationVersion returns the current schema version.
func (s *Store) MigrationVersion(ctx context.Context) (int64, error) {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("set goose dialect: %w", err)}
	}
	v, err := goose.GetDBVersionContext(ctx, s.db)
	if err != nil {
		return 0, &db.Error{Op: db.OpMigrate, Err: err}
	}
	return v, nil
}
