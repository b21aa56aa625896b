package mandatory

import (
	"github.com/kailas-cloud/dimreg/internal/domain/dimension"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

// Tagger derives the mandatory flag of dimensions at read time.
type Tagger struct {
	provider Provider
}

// New creates a Tagger.
func New(provider Provider) *Tagger {
	return &Tagger{provider: provider}
}

// IsMandatory reports whether name is in the tenant's mandatory set.
func (t *Tagger) IsMandatory(tn tenant.Tenant, name string) bool {
	return t.provider.MandatoryDimensions(tn).Contains(name)
}

// TagOne projects a single dimension.
func (t *Tagger) TagOne(tn tenant.Tenant, d dimension.Dimension) dimension.WithMandatory {
	return dimension.WithMandatory{Dimension: d, Mandatory: t.IsMandatory(tn, d.Name())}
}

// Tag projects dims in order, resolving the tenant's set once.
func (t *Tagger) Tag(tn tenant.Tenant, dims []dimension.Dimension) []dimension.WithMandatory {
	set := t.provider.MandatoryDimensions(tn)
	out := make([]dimension.WithMandatory, len(dims))
	for i, d := range dims {
		out[i] = dimension.WithMandatory{Dimension: d, Mandatory: set.Contains(d.Name())}
	}
	return out
}
