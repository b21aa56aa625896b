package dimreg

import (
	"context"
	"fmt"
	"time"
)

// FunctionService registers the functions a tenant's dimensions may reference.
// A dimension naming an unregistered function is rejected with ErrInvalidInput.
type FunctionService struct {
	tenant  string
	svc     functionUseCase
	tenants tenantResolver
	obs     *observer
}

// Register makes name referenceable. Registering twice is a no-op.
func (s *FunctionService) Register(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("function.register", s.tenant, start, err) }()

	t, err := s.tenants.Resolve(s.tenant)
	if err != nil {
		return fmt.Errorf("resolve tenant: %w", err)
	}
	if err = s.svc.Register(ctx, t, name); err != nil {
		return fmt.Errorf("register function %s: %w", name, err)
	}
	return nil
}

// Exists reports whether name is registered.
func (s *FunctionService) Exists(ctx context.Context, name string) (_ bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("function.exists", s.tenant, start, err) }()

	t, err := s.tenants.Resolve(s.tenant)
	if err != nil {
		return false, fmt.Errorf("resolve tenant: %w", err)
	}
	ok, err := s.svc.Exists(ctx, t, name)
	if err != nil {
		return false, fmt.Errorf("check function %s: %w", name, err)
	}
	return ok, nil
}
