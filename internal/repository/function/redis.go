package function

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jonboulle/clockwork"

	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

// hashStore is the consumer interface for Redis/Valkey storage (ISP).
type hashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RedisRepo registers functions as hashes under the tenant's {tenant} hash tag.
// The dimension upsert script only checks the key exists.
type RedisRepo struct {
	store  hashStore
	prefix string
	clock  clockwork.Clock
}

// NewRedis creates a Redis-backed function repository. A nil clock means the real clock.
func NewRedis(s hashStore, prefix string, clock clockwork.Clock) *RedisRepo {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RedisRepo{store: s, prefix: prefix, clock: clock}
}

// Key is the function key for prefix, tenant and name.
func Key(prefix string, t tenant.Tenant, name string) string {
	return prefix + "{" + t.String() + "}:function:" + name
}

// Register is idempotent; a repeat refreshes registered_at.
func (r *RedisRepo) Register(ctx context.Context, t tenant.Tenant, name string) error {
	fields := map[string]string{
		"function_name": name,
		"registered_at": strconv.FormatInt(r.clock.Now().UnixMilli(), 10),
	}
	if err := r.store.HSet(ctx, Key(r.prefix, t, name), fields); err != nil {
		return fmt.Errorf("register function %s: %w", name, err)
	}
	return nil
}

// Exists reports whether name is registered for the tenant.
func (r *RedisRepo) Exists(ctx context.Context, t tenant.Tenant, name string) (bool, error) {
	ok, err := r.store.Exists(ctx, Key(r.prefix, t, name))
	if err != nil {
		return false, fmt.Errorf("check function %s: %w", name, err)
	}
	return ok, nil
}
