package dimreg

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// Storage drivers accepted by New.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverValkey   = "valkey"
)

type clientConfig struct {
	driver   string
	dsn      string
	addrs    []string
	password string
	migrate  bool

	keyPrefix  string
	metaSchema []byte
	tenants    map[string][]string

	maxConcurrency int
	clock          clockwork.Clock

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// PostgresOption tunes the Postgres backend.
type PostgresOption func(*clientConfig)

// Migrate applies the embedded migrations when the client connects.
func Migrate() PostgresOption {
	return func(c *clientConfig) { c.migrate = true }
}

// WithPostgres stores dimensions in Postgres.
func WithPostgres(dsn string, opts ...PostgresOption) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = DriverPostgres
		c.dsn = dsn
		for _, o := range opts {
			o(c)
		}
	})
}

// WithRedis stores dimensions in Redis.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = DriverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithValkey stores dimensions in Valkey.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = DriverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the Redis/Valkey key prefix. Default: "dimreg:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithTenant registers a tenant and its mandatory dimension names.
// At least one tenant is required. Repeated calls for the same tenant replace its set.
func WithTenant(name string, mandatory ...string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.tenants == nil {
			c.tenants = make(map[string][]string)
		}
		c.tenants[name] = mandatory
	})
}

// WithMetaSchema replaces the embedded draft-07 meta-schema.
func WithMetaSchema(doc []byte) Option {
	return optionFunc(func(c *clientConfig) {
		c.metaSchema = doc
	})
}

// WithMaxConcurrency bounds the number of in-flight writes in PutMany. Default: 8.
func WithMaxConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxConcurrency = n
	})
}

// WithClock overrides the clock used for audit timestamps.
func WithClock(clock clockwork.Clock) Option {
	return optionFunc(func(c *clientConfig) {
		c.clock = clock
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
