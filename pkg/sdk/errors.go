package dimreg

import "github.com/kailas-cloud/dimreg/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	// ErrInvalidInput marks a request that can never succeed as sent.
	ErrInvalidInput = domain.ErrInvalidInput
	// ErrUnexpected marks a storage failure. Its message never carries storage detail.
	ErrUnexpected = domain.ErrUnexpected
	// ErrUnknownTenant marks a tenant that was not registered with WithTenant.
	ErrUnknownTenant = domain.ErrUnknownTenant
)

// Message returns the caller-facing text of an error returned by the SDK.
func Message(err error) string {
	return domain.UserMessage(err)
}
