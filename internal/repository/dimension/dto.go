package dimension

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
)

// Hash field names, shared by the Lua script and hydration.
const (
	fieldName           = "dimension"
	fieldPriority       = "priority"
	fieldSchema         = "schema"
	fieldFunction       = "function_name"
	fieldCreatedBy      = "created_by"
	fieldCreatedAt      = "created_at"
	fieldLastModifiedBy = "last_modified_by"
	fieldLastModifiedAt = "last_modified_at"
)

func millis(t time.Time) string { return strconv.FormatInt(t.UnixMilli(), 10) }

func parseMillis(field, s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// dimensionFromHash hydrates a Dimension from an HGETALL result map.
func dimensionFromHash(m map[string]string) (domdim.Dimension, error) {
	name := m[fieldName]
	if name == "" {
		return domdim.Dimension{}, fmt.Errorf("missing %s", fieldName)
	}
	priority, err := strconv.Atoi(m[fieldPriority])
	if err != nil {
		return domdim.Dimension{}, fmt.Errorf("invalid priority: %w", err)
	}
	createdAt, err := parseMillis(fieldCreatedAt, m[fieldCreatedAt])
	if err != nil {
		return domdim.Dimension{}, err
	}
	modifiedAt, err := parseMillis(fieldLastModifiedAt, m[fieldLastModifiedAt])
	if err != nil {
		return domdim.Dimension{}, err
	}

	fn := domdim.NoFunction()
	if v, ok := m[fieldFunction]; ok {
		fn = domdim.Function(v)
	}

	return domdim.Reconstruct(name, priority, json.RawMessage(m[fieldSchema]), fn, domdim.Audit{
		CreatedBy:      m[fieldCreatedBy],
		CreatedAt:      createdAt,
		LastModifiedBy: m[fieldLastModifiedBy],
		LastModifiedAt: modifiedAt,
	}), nil
}

// row is a dimensions table row.
type row struct {
	name           string
	priority       int
	schema         []byte
	function       sql.NullString
	createdBy      string
	createdAt      time.Time
	lastModifiedBy string
	lastModifiedAt time.Time
}

func (r *row) dest() []any {
	return []any{
		&r.name, &r.priority, &r.schema, &r.function,
		&r.createdBy, &r.createdAt, &r.lastModifiedBy, &r.lastModifiedAt,
	}
}

// toDomain hydrates a Dimension. JSONB re-renders documents, so the schema is compacted again.
func (r *row) toDomain() (domdim.Dimension, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, r.schema); err != nil {
		return domdim.Dimension{}, fmt.Errorf("invalid stored schema for %s: %w", r.name, err)
	}
	fn := domdim.NoFunction()
	if r.function.Valid {
		fn = domdim.Function(r.function.String)
	}
	return domdim.Reconstruct(r.name, r.priority, json.RawMessage(compact.Bytes()), fn, domdim.Audit{
		CreatedBy:      r.createdBy,
		CreatedAt:      r.createdAt.UTC(),
		LastModifiedBy: r.lastModifiedBy,
		LastModifiedAt: r.lastModifiedAt.UTC(),
	}), nil
}

func nullableFunction(f domdim.FunctionRef) sql.NullString {
	name, ok := f.Name()
	return sql.NullString{String: name, Valid: ok}
}
