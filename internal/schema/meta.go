// Package schema validates caller-supplied dimension schemas in two independent
// stages: shape validation against a fixed meta-schema, then Draft-7 compilation.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/kailas-cloud/dimreg/internal/domain"
)

//go:embed meta_schema.json
var defaultMetaSchema []byte

const metaSchemaURL = "mem://dimreg/meta-schema.json"

// MetaValidator checks candidate schemas against the process-wide meta-schema.
// It is immutable after construction and safe for concurrent use.
type MetaValidator struct {
	schema *jsonschema.Schema
}

// DefaultMetaSchema returns a copy of the embedded meta-schema document.
func DefaultMetaSchema() []byte {
	return bytes.Clone(defaultMetaSchema)
}

// NewMetaValidator compiles doc as the meta-schema. An empty doc selects the embedded default.
func NewMetaValidator(doc []byte) (*MetaValidator, error) {
	if len(bytes.TrimSpace(doc)) == 0 {
		doc = defaultMetaSchema
	}
	c := newCompiler()
	if err := c.AddResource(metaSchemaURL, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("load meta-schema: %w", err)
	}
	sch, err := c.Compile(metaSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile meta-schema: %w", err)
	}
	return &MetaValidator{schema: sch}, nil
}

// LoadMetaValidator reads the meta-schema from path, or uses the embedded default when path is empty.
func LoadMetaValidator(path string) (*MetaValidator, error) {
	if path == "" {
		return NewMetaValidator(nil)
	}
	doc, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read meta-schema %s: %w", path, err)
	}
	return NewMetaValidator(doc)
}

// Validate checks candidate against the meta-schema.
// Every failure is domain.ErrInvalidInput listing the violated constraints.
func (v *MetaValidator) Validate(candidate json.RawMessage) error {
	inst, err := decode(candidate)
	if err != nil {
		return domain.InvalidInput("schema is not valid JSON: %v", err)
	}
	if err := v.schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return domain.InvalidInput("schema validation failed: %s", strings.Join(violations(ve), "; "))
		}
		return domain.InvalidInput("schema validation failed: %v", err)
	}
	return nil
}

// violations flattens the error tree to its leaves.
func violations(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{loc + ": " + ve.Message}
	}
	var out []string
	for _, c := range ve.Causes {
		out = append(out, violations(c)...)
	}
	return out
}

func decode(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("empty document")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after document")
	}
	return v, nil
}
