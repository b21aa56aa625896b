package db

import (
	"errors"
	"fmt"
)

// Sentinel errors for database operations.
var (
	// ErrScriptRejected means a script refused the write with one of its declared rejections.
	ErrScriptRejected = errors.New("db: script rejected")
	// ErrForeignKey means a referenced row does not exist.
	ErrForeignKey = errors.New("db: foreign key violation")
)

// Op constants name the failing command for error context.
const (
	OpHGetAll = "HGETALL"
	OpHSet    = "HSET"
	OpExists  = "EXISTS"
	OpLRange  = "LRANGE"
	OpEvalSha = "EVALSHA"

	OpMigrate = "MIGRATE"
	OpQuery   = "QUERY"
	OpExec    = "EXEC"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// ScriptError is a declared script rejection.
type ScriptError struct {
	Script string
	Reason string
	Detail string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %s", e.Script, e.Detail)
}

func (e *ScriptError) Unwrap() error { return ErrScriptRejected }

// ConstraintError is a violated relational constraint.
type ConstraintError struct {
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint %s: %v", e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() []error { return []error{ErrForeignKey, e.Err} }
