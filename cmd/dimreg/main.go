package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dimreg/internal/config"
	logpkg "github.com/kailas-cloud/dimreg/internal/logger"
	"github.com/kailas-cloud/dimreg/internal/metrics"
	"github.com/kailas-cloud/dimreg/internal/repository/tenantcfg"
	"github.com/kailas-cloud/dimreg/internal/schema"
	chiTransport "github.com/kailas-cloud/dimreg/internal/transport/chi"
	dimensionuc "github.com/kailas-cloud/dimreg/internal/usecase/dimension"
	healthuc "github.com/kailas-cloud/dimreg/internal/usecase/health"
	"github.com/kailas-cloud/dimreg/internal/usecase/mandatory"
	"github.com/kailas-cloud/dimreg/internal/version"
)

func main() {
	envFlag := flag.String("env", config.GetEnv(), "environment name, selects config/<env>.yaml (or set ENV)")
	configFlag := flag.String("config", "", "explicit config file path (overrides --env lookup)")
	migrateFlag := flag.Bool("migrate", false, "apply Postgres migrations and exit")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.String())
		return
	}

	env := *envFlag
	var (
		cfg config.Config
		err error
	)
	if *configFlag != "" {
		cfg, err = config.LoadFile(*configFlag)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting dimreg API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Int("tenants", len(cfg.Tenants)),
	)

	ctx := context.Background()
	if *migrateFlag {
		if err := runMigrations(ctx, cfg.Database, logger); err != nil {
			logger.Fatal("Migration failed", zap.Error(err))
		}
		return
	}

	storage, err := openBackend(ctx, cfg.Database, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer storage.close()

	metaValidator, err := newMetaValidator(cfg.Schema)
	if err != nil {
		logger.Fatal("Failed to load meta-schema", zap.Error(err))
	}

	tenants, err := tenantcfg.New(cfg.Tenants)
	if err != nil {
		logger.Fatal("Invalid tenant configuration", zap.Error(err))
	}

	metrics.RegisterDimensionMetrics()

	// Composition root
	tagger := mandatory.New(tenants)
	dimSvc := dimensionuc.New(storage.repo, metaValidator, schema.Compiler{}, tagger, clockwork.NewRealClock())
	healthSvc := healthuc.New(storage.pinger, cfg.Database.Driver)

	server := chiTransport.NewServer(dimSvc, tenants, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	if len(cfg.HTTP.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type", chiTransport.TenantHeader},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.Tokens, cfg.Auth.DefaultActor))
	r.Use(chiTransport.TenantMiddleware(tenants))
	r.Use(metrics.Middleware(tenantLabel))
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func newMetaValidator(cfg config.SchemaConfig) (*schema.MetaValidator, error) {
	if cfg.MetaSchemaPath == "" {
		return schema.NewMetaValidator(nil)
	}
	return schema.LoadMetaValidator(cfg.MetaSchemaPath)
}
