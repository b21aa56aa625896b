package dimreg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/dimreg/internal/domain"
	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
	dimensionuc "github.com/kailas-cloud/dimreg/internal/usecase/dimension"
)

// --- dimensionUseCase mock ---

type mockDimensionUC struct {
	createFn func(ctx context.Context, t tenant.Tenant, actor string, req dimensionuc.CreateRequest) (domdim.WithMandatory, error)
	listFn   func(ctx context.Context, t tenant.Tenant) ([]domdim.WithMandatory, error)
}

func (m *mockDimensionUC) CreateOrReplace(
	ctx context.Context, t tenant.Tenant, actor string, req dimensionuc.CreateRequest,
) (domdim.WithMandatory, error) {
	return m.createFn(ctx, t, actor, req)
}

func (m *mockDimensionUC) List(ctx context.Context, t tenant.Tenant) ([]domdim.WithMandatory, error) {
	return m.listFn(ctx, t)
}

// --- tenantResolver mock ---

type staticTenants map[string]bool

func (s staticTenants) Resolve(name string) (tenant.Tenant, error) {
	if !s[name] {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownTenant, name)
	}
	return tenant.Tenant(name), nil
}

// --- helpers ---

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func stored(name string, fn domdim.FunctionRef, mandatory bool) domdim.WithMandatory {
	d := domdim.Reconstruct(name, 5, json.RawMessage(`{"type":"string"}`), fn, domdim.NewAudit("ann", testTime))
	return domdim.WithMandatory{Dimension: d, Mandatory: mandatory}
}

func testService(svc dimensionUseCase) *DimensionService {
	return &DimensionService{
		tenant:         "acme",
		svc:            svc,
		tenants:        staticTenants{"acme": true},
		maxConcurrency: 4,
	}
}

// --- functionUseCase mock ---

type mockFunctionUC struct {
	registered map[string]bool
	err        error
}

func (m *mockFunctionUC) Register(_ context.Context, t tenant.Tenant, name string) error {
	if m.err != nil {
		return m.err
	}
	m.registered[t.String()+"/"+name] = true
	return nil
}

func (m *mockFunctionUC) Exists(_ context.Context, t tenant.Tenant, name string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.registered[t.String()+"/"+name], nil
}
