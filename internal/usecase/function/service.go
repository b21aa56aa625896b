package function

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dimreg/internal/domain"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
	"github.com/kailas-cloud/dimreg/internal/logger"
)

// Service registers functions for tenants.
type Service struct {
	repo Repository
}

// New creates a function service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register makes name referenceable by the tenant's dimensions. Idempotent.
func (s *Service) Register(ctx context.Context, t tenant.Tenant, name string) error {
	if err := s.repo.Register(ctx, t, name); err != nil {
		logger.FromContext(ctx).Error("failed to register function",
			zap.String("tenant", t.String()), zap.String("function", name), zap.Error(err))
		return domain.Unexpected("Something went wrong, failed to register function")
	}
	return nil
}

// Exists reports whether name is registered for the tenant.
func (s *Service) Exists(ctx context.Context, t tenant.Tenant, name string) (bool, error) {
	ok, err := s.repo.Exists(ctx, t, name)
	if err != nil {
		logger.FromContext(ctx).Error("failed to check function",
			zap.String("tenant", t.String()), zap.String("function", name), zap.Error(err))
		return false, domain.Unexpected("Something went wrong, failed to check function")
	}
	return ok, nil
}
