package db

import (
	"context"
	"time"
)

// Store is the key-value database facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces.
type Store interface {
	Pinger
	HashStore
	ListStore
	ScriptRunner
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// ListStore provides list operations.
type ListStore interface {
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Script is a server-side Lua script executed atomically.
// Rejections lists error-reply prefixes the script uses to refuse a write;
// those come back as *ScriptError instead of a generic *Error.
type Script struct {
	Name       string
	Source     string
	Rejections []string
}

// ScriptRunner executes Lua scripts.
type ScriptRunner interface {
	EvalHash(ctx context.Context, script *Script, keys, args []string) (map[string]string, error)
}
