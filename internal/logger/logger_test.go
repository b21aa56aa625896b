package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		if _, err := NewLogger(env, ""); err != nil {
			t.Errorf("env %s: unexpected error %v", env, err)
		}
	}
	if _, err := NewLogger("staging", ""); err == nil {
		t.Error("expected error for unknown env")
	}
	if _, err := NewLogger("local", "verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
	l, err := NewLogger("prod", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zap.DebugLevel) {
		t.Error("level override not applied")
	}
}

func TestConfigFor_ProdCarriesService(t *testing.T) {
	cfg, err := configFor("prod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.InitialFields["service"] != ServiceName {
		t.Errorf("expected service field, got %v", cfg.InitialFields)
	}
	if cfg.Encoding != "json" {
		t.Errorf("expected json encoding, got %q", cfg.Encoding)
	}

	dev, err := configFor("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dev.Encoding != "console" {
		t.Errorf("expected console encoding, got %q", dev.Encoding)
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected nop logger")
	}
	fallback := zap.NewExample()
	if FromContextOr(context.Background(), fallback) != fallback {
		t.Error("expected fallback logger")
	}
}

func TestWith_EnrichesContextLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))

	ctx = With(ctx, zap.String("tenant", "acme"))
	FromContext(ctx).Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["tenant"] != "acme" {
		t.Errorf("expected tenant field, got %v", entries[0].ContextMap())
	}
}
