package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a client fault: the request can never succeed as sent.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnexpected signals a server fault. Its message never carries storage detail.
	ErrUnexpected = errors.New("unexpected error")

	// ErrFunctionNotFound signals a referential-integrity failure: the dimension
	// references a function that is not registered for the tenant.
	ErrFunctionNotFound = errors.New("function not found")
	// ErrUnknownTenant signals a tenant that is not configured.
	ErrUnknownTenant = errors.New("unknown tenant")
	// ErrUnauthorized signals a missing or invalid caller identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// InvalidInputError carries a human-actionable message for ErrInvalidInput.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Message)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// InvalidInput creates an ErrInvalidInput with a formatted message.
func InvalidInput(format string, args ...any) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// UnexpectedError carries the caller-facing message for ErrUnexpected.
type UnexpectedError struct {
	Message string
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnexpected.Error(), e.Message)
}

func (e *UnexpectedError) Unwrap() error { return ErrUnexpected }

// Unexpected creates an ErrUnexpected with a fixed, non-leaking message.
func Unexpected(message string) error {
	return &UnexpectedError{Message: message}
}

// FunctionNotFoundError wraps ErrFunctionNotFound with the missing function name.
type FunctionNotFoundError struct {
	Function string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFunctionNotFound.Error(), e.Function)
}

func (e *FunctionNotFoundError) Unwrap() error { return ErrFunctionNotFound }

// NewFunctionNotFound creates a function-not-found error.
func NewFunctionNotFound(function string) error {
	return &FunctionNotFoundError{Function: function}
}

// UserMessage returns the message a caller may see for err.
// Only typed domain errors expose their text; everything else is opaque.
func UserMessage(err error) string {
	var inv *InvalidInputError
	if errors.As(err, &inv) {
		return inv.Message
	}
	var unx *UnexpectedError
	if errors.As(err, &unx) {
		return unx.Message
	}
	switch {
	case errors.Is(err, ErrUnknownTenant):
		return ErrUnknownTenant.Error()
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized.Error()
	}
	return "internal error"
}
