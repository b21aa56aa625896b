package dimension

import (
	"bytes"
	"encoding/json"
	"errors"
)

// errFunctionNameType is returned for any function_name that is neither a string nor null.
var errFunctionNameType = errors.New("Expected a string or null as the function name.") //nolint:revive,stylecheck // user-facing message

// FunctionRef is a tagged union {Named, None} for the optional validation function.
type FunctionRef struct {
	name string
	set  bool
}

// NoFunction returns the absent reference.
func NoFunction() FunctionRef { return FunctionRef{} }

// Function returns a reference to the named function.
func Function(name string) FunctionRef { return FunctionRef{name: name, set: true} }

// ParseFunctionRef normalizes a raw JSON function_name.
// Absent or null means none, a JSON string is a named function, anything else is rejected.
func ParseFunctionRef(raw json.RawMessage) (FunctionRef, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return NoFunction(), nil
	}
	if trimmed[0] != '"' {
		return FunctionRef{}, errFunctionNameType
	}
	var name string
	if err := json.Unmarshal(trimmed, &name); err != nil {
		return FunctionRef{}, errFunctionNameType
	}
	return Function(name), nil
}

// Name returns the function name and whether one is set.
func (f FunctionRef) Name() (string, bool) { return f.name, f.set }

// IsSet reports whether a function is referenced.
func (f FunctionRef) IsSet() bool { return f.set }

// String returns the function name, or "none".
func (f FunctionRef) String() string {
	if !f.set {
		return "none"
	}
	return f.name
}

// MarshalJSON encodes the reference as a string or null.
func (f FunctionRef) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.name)
}

// UnmarshalJSON accepts a string or null, mirroring MarshalJSON.
func (f *FunctionRef) UnmarshalJSON(data []byte) error {
	ref, err := ParseFunctionRef(data)
	if err != nil {
		return err
	}
	*f = ref
	return nil
}
