package tenant

import (
	"fmt"
	"regexp"
)

var nameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// Tenant partitions the dimension catalog.
type Tenant string

// Parse validates a tenant name: ^[a-z0-9_]+$, 1-64 chars.
func Parse(name string) (Tenant, error) {
	if name == "" {
		return "", fmt.Errorf("tenant is required")
	}
	if len(name) > 64 {
		return "", fmt.Errorf("tenant name too long (max 64)")
	}
	if !nameRegex.MatchString(name) {
		return "", fmt.Errorf("tenant name must be lowercase alphanumeric with underscores")
	}
	return Tenant(name), nil
}

// String returns the tenant name.
func (t Tenant) String() string { return string(t) }

// MandatorySet is a tenant's set of mandatory dimension names (read-only).
type MandatorySet map[string]struct{}

// NewMandatorySet builds a set from names.
func NewMandatorySet(names ...string) MandatorySet {
	s := make(MandatorySet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is mandatory. A nil set contains nothing.
func (s MandatorySet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}
