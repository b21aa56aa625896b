package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/kailas-cloud/dimreg/internal/domain"
)

const (
	candidateURL  = "mem://dimreg/dimension-schema.json"
	compileFailed = "Invalid JSON schema (failed to compile)"
)

// Compile builds a Draft-7 matcher for candidate.
// The result only proves compilability; failures are domain.ErrInvalidInput.
func Compile(candidate json.RawMessage) (sch *jsonschema.Schema, err error) {
	doc, err := decode(candidate)
	if err != nil {
		return nil, domain.InvalidInput("%s: %v", compileFailed, err)
	}
	body, err := asDraft7(candidate, doc)
	if err != nil {
		return nil, domain.InvalidInput("%s: %v", compileFailed, err)
	}

	c := newCompiler()
	if err := c.AddResource(candidateURL, bytes.NewReader(body)); err != nil {
		return nil, domain.InvalidInput("%s: %v", compileFailed, err)
	}

	// the compiler panics on a few inputs its own meta-validation lets through
	defer func() {
		if r := recover(); r != nil {
			sch = nil
			err = domain.InvalidInput("%s: %v", compileFailed, r)
		}
	}()

	sch, err = c.Compile(candidateURL)
	if err != nil {
		return nil, domain.InvalidInput("%s: %s", compileFailed, diagnostic(err))
	}
	return sch, nil
}

func newCompiler() *jsonschema.Compiler {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	c.LoadURL = func(s string) (io.ReadCloser, error) {
		return nil, fmt.Errorf("external reference %q is not allowed", s)
	}
	return c
}

// asDraft7 drops a root $schema so the compiler never switches dialect:
// every candidate is compiled as Draft-7 whatever it declares.
func asDraft7(candidate json.RawMessage, doc any) ([]byte, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return candidate, nil
	}
	if _, ok := m["$schema"]; !ok {
		return candidate, nil
	}
	delete(m, "$schema")
	return json.Marshal(m)
}

// diagnostic strips the in-memory resource URL from compiler errors.
func diagnostic(err error) string {
	msg := err.Error()
	msg = strings.ReplaceAll(msg, "jsonschema "+candidateURL+" compilation failed: ", "")
	return strings.ReplaceAll(msg, candidateURL, "")
}

// Compiler proves compilability of candidate schemas.
type Compiler struct{}

// Check compiles candidate and discards the matcher.
func (Compiler) Check(candidate json.RawMessage) error {
	_, err := Compile(candidate)
	return err
}
