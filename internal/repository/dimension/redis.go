package dimension

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/dimreg/internal/db"
	"github.com/kailas-cloud/dimreg/internal/domain"
	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
	"github.com/kailas-cloud/dimreg/internal/repository/function"
)

const rejectFunctionNotFound = "FUNCTION_NOT_FOUND"

// upsertScript writes one dimension hash atomically.
//
//	KEYS: dimension hash, order list, function key
//	ARGV: name, priority, schema, has_function, function_name,
//	      created_by, created_at, last_modified_by, last_modified_at
var upsertScript = &db.Script{
	Name:       "dimension_upsert",
	Rejections: []string{rejectFunctionNotFound},
	Source: `
if ARGV[4] == '1' and redis.call('EXISTS', KEYS[3]) == 0 then
  return redis.error_reply('` + rejectFunctionNotFound + ` ' .. ARGV[5])
end
if redis.call('EXISTS', KEYS[1]) == 0 then
  redis.call('HSET', KEYS[1], 'created_by', ARGV[6], 'created_at', ARGV[7])
  redis.call('RPUSH', KEYS[2], ARGV[1])
end
redis.call('HSET', KEYS[1],
  'dimension', ARGV[1], 'priority', ARGV[2], 'schema', ARGV[3],
  'last_modified_by', ARGV[8], 'last_modified_at', ARGV[9])
if ARGV[4] == '1' then
  redis.call('HSET', KEYS[1], 'function_name', ARGV[5])
else
  redis.call('HDEL', KEYS[1], 'function_name')
end
return redis.call('HGETALL', KEYS[1])
`,
}

// kvStore is the consumer interface for Redis/Valkey storage (ISP).
type kvStore interface {
	EvalHash(ctx context.Context, script *db.Script, keys, args []string) (map[string]string, error)
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// RedisRepo implements usecase/dimension.Repository over Redis or Valkey.
// All keys of a tenant share the {tenant} hash tag so the script stays single-slot.
type RedisRepo struct {
	store  kvStore
	prefix string
}

// NewRedis creates a Redis-backed dimension repository.
func NewRedis(s kvStore, prefix string) *RedisRepo {
	return &RedisRepo{store: s, prefix: prefix}
}

func (r *RedisRepo) tenantPrefix(t tenant.Tenant) string {
	return r.prefix + "{" + t.String() + "}:"
}

func (r *RedisRepo) dimensionKey(t tenant.Tenant, name string) string {
	return r.tenantPrefix(t) + "dimension:" + name
}

func (r *RedisRepo) orderKey(t tenant.Tenant) string {
	return r.tenantPrefix(t) + "dimensions"
}

// FunctionKey is the key whose existence registers a function for the tenant.
func (r *RedisRepo) FunctionKey(t tenant.Tenant, name string) string {
	return function.Key(r.prefix, t, name)
}

// Upsert runs the upsert script.
func (r *RedisRepo) Upsert(ctx context.Context, t tenant.Tenant, d domdim.Dimension) (domdim.Dimension, error) {
	fnName, hasFn := d.Function().Name()
	hasFnArg := "0"
	if hasFn {
		hasFnArg = "1"
	}
	a := d.Audit()

	keys := []string{r.dimensionKey(t, d.Name()), r.orderKey(t), r.FunctionKey(t, fnName)}
	args := []string{
		d.Name(), strconv.Itoa(d.Priority()), string(d.Schema()), hasFnArg, fnName,
		a.CreatedBy, millis(a.CreatedAt), a.LastModifiedBy, millis(a.LastModifiedAt),
	}

	m, err := r.store.EvalHash(ctx, upsertScript, keys, args)
	if err != nil {
		var se *db.ScriptError
		if errors.As(err, &se) && se.Reason == rejectFunctionNotFound {
			return domdim.Dimension{}, fmt.Errorf("upsert dimension %s: %w", d.Name(), domain.NewFunctionNotFound(fnName))
		}
		return domdim.Dimension{}, fmt.Errorf("upsert dimension %s: %w", d.Name(), err)
	}

	stored, err := dimensionFromHash(m)
	if err != nil {
		return domdim.Dimension{}, fmt.Errorf("decode dimension %s: %w", d.Name(), err)
	}
	return stored, nil
}

// List returns the tenant's dimensions in insertion order.
func (r *RedisRepo) List(ctx context.Context, t tenant.Tenant) ([]domdim.Dimension, error) {
	names, err := r.store.LRange(ctx, r.orderKey(t), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("list dimension names: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}

	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = r.dimensionKey(t, n)
	}
	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get dimensions: %w", err)
	}

	out := make([]domdim.Dimension, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		d, err := dimensionFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("decode dimension %s: %w", names[i], err)
		}
		out = append(out, d)
	}
	return out, nil
}
