package dimension

import (
	"context"
	"encoding/json"

	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

// Repository defines the storage contract for dimensions.
// Upsert must be a single atomic insert-or-update keyed by (tenant, name) that keeps the
// stored created_* fields on update and returns the record as stored.
type Repository interface {
	Upsert(ctx context.Context, t tenant.Tenant, d domdim.Dimension) (domdim.Dimension, error)
	List(ctx context.Context, t tenant.Tenant) ([]domdim.Dimension, error)
}

// MetaValidator checks a candidate schema against the meta-schema.
type MetaValidator interface {
	Validate(candidate json.RawMessage) error
}

// SchemaCompiler proves a candidate schema compiles.
type SchemaCompiler interface {
	Check(candidate json.RawMessage) error
}

// Tagger derives the mandatory flag.
type Tagger interface {
	TagOne(t tenant.Tenant, d domdim.Dimension) domdim.WithMandatory
	Tag(t tenant.Tenant, dims []domdim.Dimension) []domdim.WithMandatory
}
