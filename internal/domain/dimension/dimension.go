package dimension

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Audit holds who created and last modified a dimension, and when.
type Audit struct {
	CreatedBy      string
	CreatedAt      time.Time
	LastModifiedBy string
	LastModifiedAt time.Time
}

// NewAudit returns audit fields for a write by actor at now.
// On update the store keeps its own CreatedBy/CreatedAt.
func NewAudit(actor string, now time.Time) Audit {
	return Audit{
		CreatedBy:      actor,
		CreatedAt:      now,
		LastModifiedBy: actor,
		LastModifiedAt: now,
	}
}

// Dimension is a named, schema-typed axis (immutable value object).
type Dimension struct {
	name     string
	priority int
	schema   json.RawMessage
	function FunctionRef
	audit    Audit
}

// New validates and creates a Dimension.
// The schema must already have passed meta-schema and compile checks.
func New(name string, priority int, schema json.RawMessage, function FunctionRef, audit Audit) (Dimension, error) {
	if strings.TrimSpace(name) == "" {
		return Dimension{}, fmt.Errorf("dimension name is required")
	}
	if priority < math.MinInt32 || priority > math.MaxInt32 {
		return Dimension{}, fmt.Errorf("dimension priority %d is out of range (32-bit signed integer)", priority)
	}
	if len(bytes.TrimSpace(schema)) == 0 {
		return Dimension{}, fmt.Errorf("dimension schema is required")
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, schema); err != nil {
		return Dimension{}, fmt.Errorf("dimension schema is not valid JSON: %w", err)
	}
	return Dimension{
		name:     name,
		priority: priority,
		schema:   json.RawMessage(compact.Bytes()),
		function: function,
		audit:    audit,
	}, nil
}

// Reconstruct creates a Dimension without validation (storage hydration).
func Reconstruct(name string, priority int, schema json.RawMessage, function FunctionRef, audit Audit) Dimension {
	return Dimension{
		name:     name,
		priority: priority,
		schema:   schema,
		function: function,
		audit:    audit,
	}
}

// Name returns the identity key.
func (d Dimension) Name() string { return d.name }

// Priority returns the ordering weight.
func (d Dimension) Priority() int { return d.priority }

// Schema returns the compacted JSON schema.
func (d Dimension) Schema() json.RawMessage { return d.schema }

// Function returns the optional validation function reference.
func (d Dimension) Function() FunctionRef { return d.function }

// Audit returns the audit fields.
func (d Dimension) Audit() Audit { return d.audit }

// WithMandatory is a response-only projection; Mandatory is never persisted.
type WithMandatory struct {
	Dimension
	Mandatory bool
}
