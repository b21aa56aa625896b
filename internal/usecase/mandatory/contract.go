package mandatory

import "github.com/kailas-cloud/dimreg/internal/domain/tenant"

// Provider resolves a tenant's mandatory dimension set.
// Unknown tenants resolve to an empty set.
type Provider interface {
	MandatoryDimensions(t tenant.Tenant) tenant.MandatorySet
}
