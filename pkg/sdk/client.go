package dimreg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/kailas-cloud/dimreg/internal/config"
	"github.com/kailas-cloud/dimreg/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/dimreg/internal/db/redis"
	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
	dimensionrepo "github.com/kailas-cloud/dimreg/internal/repository/dimension"
	functionrepo "github.com/kailas-cloud/dimreg/internal/repository/function"
	"github.com/kailas-cloud/dimreg/internal/repository/tenantcfg"
	"github.com/kailas-cloud/dimreg/internal/schema"
	dimensionuc "github.com/kailas-cloud/dimreg/internal/usecase/dimension"
	functionuc "github.com/kailas-cloud/dimreg/internal/usecase/function"
	healthuc "github.com/kailas-cloud/dimreg/internal/usecase/health"
	"github.com/kailas-cloud/dimreg/internal/usecase/mandatory"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "dimreg:"
	defaultMaxConcurrency   = 8
)

// Internal interfaces, swapped for mocks in tests.
type dimensionUseCase interface {
	CreateOrReplace(ctx context.Context, t tenant.Tenant, actor string, req dimensionuc.CreateRequest) (domdim.WithMandatory, error)
	List(ctx context.Context, t tenant.Tenant) ([]domdim.WithMandatory, error)
}

type functionUseCase interface {
	Register(ctx context.Context, t tenant.Tenant, name string) error
	Exists(ctx context.Context, t tenant.Tenant, name string) (bool, error)
}

type tenantResolver interface {
	Resolve(name string) (tenant.Tenant, error)
}

// store is the part of a storage backend the client owns.
type store interface {
	Ping(ctx context.Context) error
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Client is the dimreg SDK entry point.
type Client struct {
	store          store
	dimSvc         dimensionUseCase
	fnSvc          functionUseCase
	tenants        tenantResolver
	healthSvc      healthUseCase
	maxConcurrency int
	obs            *observer
}

// New creates a dimreg Client and connects to storage.
// The provided context is used for the readiness check and migrations.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:      defaultKeyPrefix,
		maxConcurrency: defaultMaxConcurrency,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("dimreg: storage required (use WithPostgres, WithRedis or WithValkey)")
	}
	if len(cfg.tenants) == 0 {
		return nil, errors.New("dimreg: at least one tenant required (use WithTenant)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	s, repos, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c, err := wireClient(s, repos, cfg, obs)
	if err != nil {
		s.Close()
		return nil, err
	}
	return c, nil
}

// repositories are the storage-specific halves of the use cases.
type repositories struct {
	dimensions dimensionuc.Repository
	functions  functionuc.Repository
}

func openStorage(ctx context.Context, cfg *clientConfig) (store, repositories, error) {
	switch cfg.driver {
	case DriverPostgres:
		s, err := postgres.Open(postgres.Config{DSN: cfg.dsn})
		if err != nil {
			return nil, repositories{}, fmt.Errorf("dimreg: create postgres store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, repositories{}, fmt.Errorf("dimreg: database not ready: %w", err)
		}
		if cfg.migrate {
			if err := s.Migrate(ctx); err != nil {
				s.Close()
				return nil, repositories{}, fmt.Errorf("dimreg: migrate: %w", err)
			}
		}
		return s, repositories{
			dimensions: dimensionrepo.NewPostgres(s.DB()),
			functions:  functionrepo.NewPostgres(s.DB()),
		}, nil

	case DriverRedis, DriverValkey:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, repositories{}, fmt.Errorf("dimreg: %s address required", cfg.driver)
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, repositories{}, fmt.Errorf("dimreg: create %s store: %w", cfg.driver, err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, repositories{}, fmt.Errorf("dimreg: database not ready: %w", err)
		}
		return s, repositories{
			dimensions: dimensionrepo.NewRedis(s, cfg.keyPrefix),
			functions:  functionrepo.NewRedis(s, cfg.keyPrefix, cfg.clock),
		}, nil

	default:
		return nil, repositories{}, fmt.Errorf("dimreg: unknown driver %q", cfg.driver)
	}
}

func wireClient(s store, repos repositories, cfg *clientConfig, obs *observer) (*Client, error) {
	tenantCfg := make(map[string]config.TenantConfig, len(cfg.tenants))
	for name, mandatoryDims := range cfg.tenants {
		tenantCfg[name] = config.TenantConfig{MandatoryDimensions: mandatoryDims}
	}
	tenants, err := tenantcfg.New(tenantCfg)
	if err != nil {
		return nil, fmt.Errorf("dimreg: %w", err)
	}

	meta, err := schema.NewMetaValidator(cfg.metaSchema)
	if err != nil {
		return nil, fmt.Errorf("dimreg: meta-schema: %w", err)
	}

	clock := cfg.clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	maxConcurrency := cfg.maxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}

	return &Client{
		store:          s,
		dimSvc:         dimensionuc.New(repos.dimensions, meta, schema.Compiler{}, mandatory.New(tenants), clock),
		fnSvc:          functionuc.New(repos.functions),
		tenants:        tenants,
		healthSvc:      healthuc.New(s, cfg.driver),
		maxConcurrency: maxConcurrency,
		obs:            obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", "", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Dimensions returns the dimension service scoped to a tenant.
// An unregistered tenant surfaces as ErrUnknownTenant on every call.
func (c *Client) Dimensions(tenantName string) *DimensionService {
	return &DimensionService{
		tenant:         tenantName,
		svc:            c.dimSvc,
		tenants:        c.tenants,
		maxConcurrency: c.maxConcurrency,
		obs:            c.obs,
	}
}

// Functions returns the function registration service scoped to a tenant.
func (c *Client) Functions(tenantName string) *FunctionService {
	return &FunctionService{
		tenant:  tenantName,
		svc:     c.fnSvc,
		tenants: c.tenants,
		obs:     c.obs,
	}
}
