package dimreg

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

// DimensionService manages the dimensions of one tenant.
type DimensionService struct {
	tenant         string
	svc            dimensionUseCase
	tenants        tenantResolver
	maxConcurrency int
	obs            *observer
}

func (s *DimensionService) resolve() (tenant.Tenant, error) {
	t, err := s.tenants.Resolve(s.tenant)
	if err != nil {
		return "", fmt.Errorf("resolve tenant: %w", err)
	}
	return t, nil
}

// Put creates or replaces a dimension on behalf of actor.
// On replace the stored created_by/created_at are kept.
func (s *DimensionService) Put(ctx context.Context, actor string, req PutRequest) (_ Dimension, err error) {
	start := time.Now()
	defer func() { s.obs.observe("dimension.put", s.tenant, start, err) }()

	t, err := s.resolve()
	if err != nil {
		return Dimension{}, err
	}

	d, err := s.svc.CreateOrReplace(ctx, t, actor, req.toInternal())
	if err != nil {
		return Dimension{}, fmt.Errorf("put dimension %s: %w", req.Name, err)
	}
	return fromInternal(d), nil
}

// List returns the tenant's dimensions in insertion order.
func (s *DimensionService) List(ctx context.Context) (_ []Dimension, err error) {
	start := time.Now()
	defer func() { s.obs.observe("dimension.list", s.tenant, start, err) }()

	t, err := s.resolve()
	if err != nil {
		return nil, err
	}

	dims, err := s.svc.List(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("list dimensions: %w", err)
	}
	out := make([]Dimension, len(dims))
	for i, d := range dims {
		out[i] = fromInternal(d)
	}
	return out, nil
}

// PutMany writes reqs concurrently and reports one result per request, in input order.
// Item failures land in PutResult.Err; the returned error is set only when the
// tenant cannot be resolved or ctx is done before all writes start.
func (s *DimensionService) PutMany(ctx context.Context, actor string, reqs []PutRequest) (_ []PutResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("dimension.put_many", s.tenant, start, err) }()

	t, err := s.resolve()
	if err != nil {
		return nil, err
	}

	results := make([]PutResult, len(reqs))
	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)

	for i, req := range reqs {
		results[i].Name = req.Name
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			return results, fmt.Errorf("put many: %w", err)
		}
		g.Go(func() error {
			d, err := s.svc.CreateOrReplace(ctx, t, actor, req.toInternal())
			if err != nil {
				results[i].Err = fmt.Errorf("put dimension %s: %w", req.Name, err)
				return nil
			}
			results[i].Dimension = fromInternal(d)
			return nil
		})
	}
	_ = g.Wait() // item errors are reported per result
	return results, nil
}
