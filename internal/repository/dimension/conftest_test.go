package dimension

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kailas-cloud/dimreg/internal/db"
	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
)

// mockKV implements the consumer interface for tests.
type mockKV struct {
	evalHashFn     func(ctx context.Context, script *db.Script, keys, args []string) (map[string]string, error)
	lrangeFn       func(ctx context.Context, key string, start, stop int64) ([]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
}

func (m *mockKV) EvalHash(ctx context.Context, script *db.Script, keys, args []string) (map[string]string, error) {
	if m.evalHashFn != nil {
		return m.evalHashFn(ctx, script, keys, args)
	}
	return map[string]string{}, nil
}

func (m *mockKV) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.lrangeFn != nil {
		return m.lrangeFn(ctx, key, start, stop)
	}
	return nil, nil
}

func (m *mockKV) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

var (
	created  = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	modified = time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC)
)

func newTestDimension(name string, fn domdim.FunctionRef) domdim.Dimension {
	d, err := domdim.New(name, 5, json.RawMessage(`{"type": "string"}`), fn, domdim.Audit{
		CreatedBy:      "ann",
		CreatedAt:      modified,
		LastModifiedBy: "ann",
		LastModifiedAt: modified,
	})
	if err != nil {
		panic(err)
	}
	return d
}

func storedHash(name string) map[string]string {
	return map[string]string{
		fieldName:           name,
		fieldPriority:       "5",
		fieldSchema:         `{"type":"string"}`,
		fieldCreatedBy:      "ann",
		fieldCreatedAt:      millis(created),
		fieldLastModifiedBy: "bob",
		fieldLastModifiedAt: millis(modified),
	}
}
