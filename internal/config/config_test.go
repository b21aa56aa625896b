package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverPostgres, DSN: "postgres://localhost/dimreg"},
		Tenants:  map[string]TenantConfig{"acme": {MandatoryDimensions: []string{"region"}}},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"postgres without dsn", func(c *Config) { c.Database.DSN = "" }, "database.dsn"},
		{"redis without addrs", func(c *Config) { c.Database.Driver = DriverRedis }, "database.addrs"},
		{"valkey without addrs", func(c *Config) { c.Database.Driver = DriverValkey }, "database.addrs"},
		{"no tenants", func(c *Config) { c.Tenants = nil }, "at least one tenant"},
		{"bad tenant name", func(c *Config) { c.Tenants["Acme-Prod"] = TenantConfig{} }, "tenants.Acme-Prod"},
		{"empty actor", func(c *Config) { c.Auth.Tokens = map[string]string{"t": " "} }, "auth.tokens"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected default driver postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "dimreg:" {
		t.Errorf("expected default key prefix, got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Auth.DefaultActor != "anonymous" {
		t.Errorf("expected default actor anonymous, got %q", cfg.Auth.DefaultActor)
	}
	if cfg.HTTP.ShutdownSec != 10 || cfg.Database.ReadinessTimeout != 10 || cfg.Database.MaxOpenConns != 10 {
		t.Errorf("unexpected numeric defaults: %+v %+v", cfg.HTTP, cfg.Database)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("DIMREG_TEST_DSN", "postgres://db:5432/x")
	yamlDoc := []byte(`
http:
  port: ${DIMREG_TEST_PORT:-9090}
database:
  dsn: ${DIMREG_TEST_DSN}
auth:
  tokens:
    secret: ann@example.com
tenants:
  acme:
    mandatory_dimensions: [region, tier]
`)
	cfg, err := Parse(yamlDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected default port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.DSN != "postgres://db:5432/x" {
		t.Errorf("expected DSN from env, got %q", cfg.Database.DSN)
	}
	if cfg.Auth.Tokens["secret"] != "ann@example.com" {
		t.Errorf("unexpected tokens: %v", cfg.Auth.Tokens)
	}
	if got := cfg.Tenants["acme"].MandatoryDimensions; len(got) != 2 || got[1] != "tier" {
		t.Errorf("unexpected mandatory dimensions: %v", got)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	doc := "http:\n  port: 8081\ndatabase:\n  driver: valkey\n  addrs: [\"localhost:6379\"]\ntenants:\n  dev: {}\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != DriverValkey || cfg.HTTP.Port != 8081 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("local config must load: %v", err)
	}
	if _, ok := cfg.Tenants["dev"]; !ok {
		t.Error("expected dev tenant in local config")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DIMREG_SET", "value")
	got := string(expandEnvVars([]byte("a=${DIMREG_SET} b=${DIMREG_UNSET:-fallback} c=${DIMREG_UNSET}")))
	if got != "a=value b=fallback c=" {
		t.Errorf("unexpected expansion: %q", got)
	}
}
