package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dimreg/internal/config"
	"github.com/kailas-cloud/dimreg/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/dimreg/internal/db/redis"
	dimensionrepo "github.com/kailas-cloud/dimreg/internal/repository/dimension"
	dimensionuc "github.com/kailas-cloud/dimreg/internal/usecase/dimension"
	healthuc "github.com/kailas-cloud/dimreg/internal/usecase/health"
)

// backend bundles the repository with the handles main needs for health and shutdown.
type backend struct {
	repo   dimensionuc.Repository
	pinger healthuc.DBPinger
	close  func()
}

func openBackend(
	ctx context.Context,
	dbCfg config.DatabaseConfig,
	storageCfg config.StorageConfig,
	logger *zap.Logger,
) (*backend, error) {
	timeout := time.Duration(dbCfg.ReadinessTimeout) * time.Second

	switch dbCfg.Driver {
	case config.DriverPostgres:
		store, err := postgres.Open(postgres.Config{DSN: dbCfg.DSN, MaxOpenConns: dbCfg.MaxOpenConns})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("postgres not ready: %w", err)
		}
		logger.Info("Connected to database")

		if dbCfg.RunMigrations {
			if err := migrate(ctx, store, logger); err != nil {
				store.Close()
				return nil, err
			}
		}
		return &backend{repo: dimensionrepo.NewPostgres(store.DB()), pinger: store, close: store.Close}, nil

	case config.DriverRedis, config.DriverValkey:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    dbCfg.Addrs,
			Password: dbCfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", dbCfg.Driver, err)
		}
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("%s not ready: %w", dbCfg.Driver, err)
		}
		logger.Info("Connected to database", zap.Strings("addrs", dbCfg.Addrs))
		return &backend{
			repo:   dimensionrepo.NewRedis(store, storageCfg.KeyPrefix),
			pinger: store,
			close:  store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", dbCfg.Driver)
	}
}

// runMigrations backs --migrate: apply the schema and return without serving.
// Redis and Valkey keep no schema, so there is nothing to apply.
func runMigrations(ctx context.Context, dbCfg config.DatabaseConfig, logger *zap.Logger) error {
	switch dbCfg.Driver {
	case config.DriverPostgres:
		store, err := postgres.Open(postgres.Config{DSN: dbCfg.DSN, MaxOpenConns: dbCfg.MaxOpenConns})
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer store.Close()
		if err := store.WaitForReady(ctx, time.Duration(dbCfg.ReadinessTimeout)*time.Second); err != nil {
			return fmt.Errorf("postgres not ready: %w", err)
		}
		return migrate(ctx, store, logger)
	case config.DriverRedis, config.DriverValkey:
		logger.Info("Nothing to migrate", zap.String("db_driver", dbCfg.Driver))
		return nil
	default:
		return fmt.Errorf("unknown database driver %q", dbCfg.Driver)
	}
}

func migrate(ctx context.Context, store *postgres.Store, logger *zap.Logger) error {
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	v, err := store.MigrationVersion(ctx)
	if err != nil {
		logger.Warn("Failed to read migration version", zap.Error(err))
	}
	logger.Info("Migrations applied", zap.Int64("version", v))
	return nil
}
