package function

import (
	"context"

	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

// Repository registers functions that dimensions may reference.
type Repository interface {
	Register(ctx context.Context, t tenant.Tenant, name string) error
	Exists(ctx context.Context, t tenant.Tenant, name string) (bool, error)
}
