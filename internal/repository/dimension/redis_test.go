package dimension

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/dimreg/internal/db"
	"github.com/kailas-cloud/dimreg/internal/domain"
	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
)

func TestRedisUpsert_KeysAndArgs(t *testing.T) {
	var gotKeys, gotArgs []string
	var gotScript *db.Script
	kv := &mockKV{evalHashFn: func(_ context.Context, s *db.Script, keys, args []string) (map[string]string, error) {
		gotScript, gotKeys, gotArgs = s, keys, args
		m := storedHash("region")
		m[fieldFunction] = "check_region"
		return m, nil
	}}
	repo := NewRedis(kv, "dimreg:")

	got, err := repo.Upsert(context.Background(), "acme", newTestDimension("region", domdim.Function("check_region")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotScript != upsertScript {
		t.Error("expected the upsert script")
	}
	wantKeys := []string{
		"dimreg:{acme}:dimension:region",
		"dimreg:{acme}:dimensions",
		"dimreg:{acme}:function:check_region",
	}
	for i, k := range wantKeys {
		if gotKeys[i] != k {
			t.Errorf("key %d: expected %q, got %q", i, k, gotKeys[i])
		}
	}
	if gotArgs[0] != "region" || gotArgs[1] != "5" || gotArgs[2] != `{"type":"string"}` {
		t.Errorf("unexpected leading args: %v", gotArgs[:3])
	}
	if gotArgs[3] != "1" || gotArgs[4] != "check_region" {
		t.Errorf("unexpected function args: %v", gotArgs[3:5])
	}
	if gotArgs[6] != millis(modified) || gotArgs[8] != millis(modified) {
		t.Errorf("expected unix millis timestamps, got %v", gotArgs[5:])
	}

	if got.Audit().CreatedBy != "ann" || !got.Audit().CreatedAt.Equal(created) {
		t.Errorf("expected stored created_* to come back, got %+v", got.Audit())
	}
	if got.Audit().LastModifiedBy != "bob" {
		t.Errorf("expected stored last_modified_by, got %q", got.Audit().LastModifiedBy)
	}
	if name, ok := got.Function().Name(); !ok || name != "check_region" {
		t.Errorf("expected function check_region, got %v", got.Function())
	}
}

func TestRedisUpsert_NoFunction(t *testing.T) {
	var gotArgs []string
	kv := &mockKV{evalHashFn: func(_ context.Context, _ *db.Script, _, args []string) (map[string]string, error) {
		gotArgs = args
		return storedHash("color"), nil
	}}
	repo := NewRedis(kv, "dimreg:")

	got, err := repo.Upsert(context.Background(), "acme", newTestDimension("color", domdim.NoFunction()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs[3] != "0" {
		t.Errorf("expected has_function=0, got %q", gotArgs[3])
	}
	if got.Function().IsSet() {
		t.Errorf("expected no function, got %v", got.Function())
	}
}

func TestRedisUpsert_FunctionNotFound(t *testing.T) {
	kv := &mockKV{evalHashFn: func(context.Context, *db.Script, []string, []string) (map[string]string, error) {
		return nil, &db.ScriptError{Script: upsertScript.Name, Reason: rejectFunctionNotFound, Detail: "FUNCTION_NOT_FOUND nope"}
	}}
	repo := NewRedis(kv, "dimreg:")

	_, err := repo.Upsert(context.Background(), "acme", newTestDimension("color", domdim.Function("nope")))
	if !errors.Is(err, domain.ErrFunctionNotFound) {
		t.Fatalf("expected ErrFunctionNotFound, got %v", err)
	}
	var fnf *domain.FunctionNotFoundError
	if !errors.As(err, &fnf) || fnf.Function != "nope" {
		t.Errorf("expected function name nope, got %v", err)
	}
}

func TestRedisUpsert_StoreError(t *testing.T) {
	kv := &mockKV{evalHashFn: func(context.Context, *db.Script, []string, []string) (map[string]string, error) {
		return nil, &db.Error{Op: db.OpEvalSha, Err: context.DeadlineExceeded}
	}}
	repo := NewRedis(kv, "dimreg:")

	_, err := repo.Upsert(context.Background(), "acme", newTestDimension("color", domdim.NoFunction()))
	if err == nil || errors.Is(err, domain.ErrFunctionNotFound) {
		t.Fatalf("expected a plain storage error, got %v", err)
	}
}

func TestRedisUpsert_CorruptReply(t *testing.T) {
	kv := &mockKV{evalHashFn: func(context.Context, *db.Script, []string, []string) (map[string]string, error) {
		m := storedHash("color")
		m[fieldPriority] = "high"
		return m, nil
	}}
	repo := NewRedis(kv, "dimreg:")

	if _, err := repo.Upsert(context.Background(), "acme", newTestDimension("color", domdim.NoFunction())); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRedisList_InsertionOrder(t *testing.T) {
	kv := &mockKV{
		lrangeFn: func(_ context.Context, key string, start, stop int64) ([]string, error) {
			if key != "p:{acme}:dimensions" || start != 0 || stop != -1 {
				t.Errorf("unexpected LRANGE %s %d %d", key, start, stop)
			}
			return []string{"region", "color"}, nil
		},
		hgetAllMultiFn: func(_ context.Context, keys []string) ([]map[string]string, error) {
			if keys[0] != "p:{acme}:dimension:region" || keys[1] != "p:{acme}:dimension:color" {
				t.Errorf("unexpected keys: %v", keys)
			}
			return []map[string]string{storedHash("region"), storedHash("color")}, nil
		},
	}
	repo := NewRedis(kv, "p:")

	dims, err := repo.List(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dims) != 2 || dims[0].Name() != "region" || dims[1].Name() != "color" {
		t.Errorf("unexpected order: %v", dims)
	}
}

func TestRedisList_Empty(t *testing.T) {
	kv := &mockKV{hgetAllMultiFn: func(context.Context, []string) ([]map[string]string, error) {
		t.Error("HGetAllMulti must not be called for an empty tenant")
		return nil, nil
	}}
	dims, err := NewRedis(kv, "dimreg:").List(context.Background(), "acme")
	if err != nil || len(dims) != 0 {
		t.Errorf("expected empty list, got %v %v", dims, err)
	}
}

func TestRedisList_SkipsMissingHashes(t *testing.T) {
	kv := &mockKV{
		lrangeFn: func(context.Context, string, int64, int64) ([]string, error) {
			return []string{"gone", "color"}, nil
		},
		hgetAllMultiFn: func(context.Context, []string) ([]map[string]string, error) {
			return []map[string]string{{}, storedHash("color")}, nil
		},
	}
	dims, err := NewRedis(kv, "dimreg:").List(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dims) != 1 || dims[0].Name() != "color" {
		t.Errorf("unexpected dims: %v", dims)
	}
}

func TestRedisList_Error(t *testing.T) {
	kv := &mockKV{lrangeFn: func(context.Context, string, int64, int64) ([]string, error) {
		return nil, &db.Error{Op: db.OpLRange, Err: context.Canceled}
	}}
	if _, err := NewRedis(kv, "dimreg:").List(context.Background(), "acme"); err == nil {
		t.Fatal("expected error")
	}
}
