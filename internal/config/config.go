package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverValkey   = "valkey"
)

// Config holds the dimreg service configuration.
type Config struct {
	HTTP     HTTPConfig              `yaml:"http"`
	Database DatabaseConfig          `yaml:"database"`
	Storage  StorageConfig           `yaml:"storage"`
	Schema   SchemaConfig            `yaml:"schema"`
	Auth     AuthConfig              `yaml:"auth"`
	Tenants  map[string]TenantConfig `yaml:"tenants"`
	Logging  LoggingConfig           `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig maps bearer tokens to actor identities.
// With no tokens, auth is off and every call runs as DefaultActor.
type AuthConfig struct {
	Tokens       map[string]string `yaml:"tokens"`
	DefaultActor string            `yaml:"default_actor"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"` // empty disables CORS
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // postgres, redis, valkey (default: postgres)
	DSN              string   `yaml:"dsn"`    // postgres only
	Addrs            []string `yaml:"addrs"`  // redis/valkey only
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	RunMigrations    bool     `yaml:"run_migrations"`
	MaxOpenConns     int      `yaml:"max_open_conns"`
}

// StorageConfig holds key-value storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// SchemaConfig selects the meta-schema. Empty path means the embedded default.
type SchemaConfig struct {
	MetaSchemaPath string `yaml:"meta_schema_path"`
}

// TenantConfig holds per-tenant settings.
type TenantConfig struct {
	MandatoryDimensions []string `yaml:"mandatory_dimensions"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands env variables, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "dimreg:"
	}
	if c.Auth.DefaultActor == "" {
		c.Auth.DefaultActor = "anonymous"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %q", c.Database.Driver)
		}
	case DriverRedis, DriverValkey:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("database.driver must be postgres, redis or valkey, got %q", c.Database.Driver)
	}
	if len(c.Tenants) == 0 {
		return fmt.Errorf("at least one tenant must be configured")
	}
	for name := range c.Tenants {
		if _, err := tenant.Parse(name); err != nil {
			return fmt.Errorf("tenants.%s: %w", name, err)
		}
	}
	for token, actor := range c.Auth.Tokens {
		if strings.TrimSpace(token) == "" || strings.TrimSpace(actor) == "" {
			return fmt.Errorf("auth.tokens entries need a non-empty token and actor")
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
