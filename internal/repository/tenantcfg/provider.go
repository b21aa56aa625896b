package tenantcfg

import (
	"fmt"

	"github.com/kailas-cloud/dimreg/internal/config"
	"github.com/kailas-cloud/dimreg/internal/domain"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

// Provider serves per-tenant configuration loaded once at start-up. Read-only afterwards.
type Provider struct {
	mandatory map[tenant.Tenant]tenant.MandatorySet
}

// New builds a Provider from the tenants config section.
func New(tenants map[string]config.TenantConfig) (*Provider, error) {
	p := &Provider{mandatory: make(map[tenant.Tenant]tenant.MandatorySet, len(tenants))}
	for name, tc := range tenants {
		t, err := tenant.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("tenant %q: %w", name, err)
		}
		p.mandatory[t] = tenant.NewMandatorySet(tc.MandatoryDimensions...)
	}
	return p, nil
}

// MandatoryDimensions returns the tenant's mandatory set; empty for unknown tenants.
func (p *Provider) MandatoryDimensions(t tenant.Tenant) tenant.MandatorySet {
	return p.mandatory[t]
}

// Resolve parses name and checks the tenant is configured.
func (p *Provider) Resolve(name string) (tenant.Tenant, error) {
	t, err := tenant.Parse(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnknownTenant, err)
	}
	if _, ok := p.mandatory[t]; !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownTenant, name)
	}
	return t, nil
}
