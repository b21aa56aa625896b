package tenantcfg

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/dimreg/internal/config"
	"github.com/kailas-cloud/dimreg/internal/domain"
)

func TestProvider(t *testing.T) {
	p, err := New(map[string]config.TenantConfig{
		"acme":   {MandatoryDimensions: []string{"region", "tier"}},
		"globex": {},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !p.MandatoryDimensions("acme").Contains("tier") {
		t.Error("tier should be mandatory for acme")
	}
	if p.MandatoryDimensions("globex").Contains("tier") {
		t.Error("globex has no mandatory dimensions")
	}
	if p.MandatoryDimensions("initech").Contains("region") {
		t.Error("unknown tenant must resolve to an empty set")
	}
}

func TestProvider_InvalidTenantName(t *testing.T) {
	if _, err := New(map[string]config.TenantConfig{"Bad Name": {}}); err == nil {
		t.Fatal("expected error")
	}
}

func TestResolve(t *testing.T) {
	p, err := New(map[string]config.TenantConfig{"acme": {}})
	if err != nil {
		t.Fatal(err)
	}

	got, err := p.Resolve("acme")
	if err != nil || got != "acme" {
		t.Fatalf("expected acme, got %q %v", got, err)
	}
	for _, name := range []string{"", "globex", "ACME"} {
		if _, err := p.Resolve(name); !errors.Is(err, domain.ErrUnknownTenant) {
			t.Errorf("Resolve(%q): expected ErrUnknownTenant, got %v", name, err)
		}
	}
}
