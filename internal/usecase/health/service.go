package health

import (
	"context"
	"time"
)

// Status is the aggregated registry health.
type Status string

const (
	// Healthy means the registry can serve reads and writes.
	Healthy Status = "ok"
	// Degraded means at least one dependency failed its check.
	Degraded Status = "degraded"
)

// CheckResult is the outcome of a single dependency check.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// pingTimeout bounds a single dependency ping so /health answers even when
// the database hangs.
const pingTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service checks the registry's storage backend.
type Service struct {
	db     DBPinger
	driver string
}

// New creates a Service. driver names the storage backend in the report.
func New(db DBPinger, driver string) *Service {
	return &Service{db: db, driver: driver}
}

// Check pings the storage backend.
func (s *Service) Check(ctx context.Context) Report {
	key := "database"
	if s.driver != "" {
		key = "database:" + s.driver
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		return Report{Status: Degraded, Checks: map[string]CheckResult{key: CheckError}}
	}
	return Report{Status: Healthy, Checks: map[string]CheckResult{key: CheckOK}}
}
