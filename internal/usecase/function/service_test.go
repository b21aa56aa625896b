package function

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/dimreg/internal/domain"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

type mockRepo struct {
	registerFn func(ctx context.Context, t tenant.Tenant, name string) error
	existsFn   func(ctx context.Context, t tenant.Tenant, name string) (bool, error)
}

func (m *mockRepo) Register(ctx context.Context, t tenant.Tenant, name string) error {
	return m.registerFn(ctx, t, name)
}

func (m *mockRepo) Exists(ctx context.Context, t tenant.Tenant, name string) (bool, error) {
	return m.existsFn(ctx, t, name)
}

func TestRegister(t *testing.T) {
	called := false
	svc := New(&mockRepo{registerFn: func(_ context.Context, tn tenant.Tenant, name string) error {
		called = tn == "acme" && name == "geo"
		return nil
	}})

	if err := svc.Register(context.Background(), "acme", "geo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("repository not called with tenant and name")
	}
}

func TestRegister_StorageFailureIsOpaque(t *testing.T) {
	svc := New(&mockRepo{registerFn: func(context.Context, tenant.Tenant, string) error {
		return errors.New("dial tcp 10.0.0.1:5432: connection refused")
	}})

	err := svc.Register(context.Background(), "acme", "geo")
	if !errors.Is(err, domain.ErrUnexpected) {
		t.Fatalf("expected ErrUnexpected, got %v", err)
	}
	if msg := domain.UserMessage(err); msg != "Something went wrong, failed to register function" {
		t.Errorf("storage detail leaked: %q", msg)
	}
}

func TestExists(t *testing.T) {
	svc := New(&mockRepo{existsFn: func(_ context.Context, _ tenant.Tenant, name string) (bool, error) {
		if name == "boom" {
			return false, errors.New("down")
		}
		return name == "geo", nil
	}})

	if ok, err := svc.Exists(context.Background(), "acme", "geo"); err != nil || !ok {
		t.Errorf("expected geo to exist: %v %v", ok, err)
	}
	if ok, err := svc.Exists(context.Background(), "acme", "other"); err != nil || ok {
		t.Errorf("expected other to be absent: %v %v", ok, err)
	}
	if _, err := svc.Exists(context.Background(), "acme", "boom"); !errors.Is(err, domain.ErrUnexpected) {
		t.Errorf("expected ErrUnexpected, got %v", err)
	}
}
