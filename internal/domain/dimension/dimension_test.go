package dimension

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestNew_CompactsSchema(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	d, err := New("region", 3, json.RawMessage(`{ "type" : "string",
		"enum": ["eu", "us"] }`), NoFunction(), NewAudit("ops@example.com", now))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(d.Schema()); got != `{"type":"string","enum":["eu","us"]}` {
		t.Errorf("schema not compacted: %s", got)
	}
	if d.Name() != "region" || d.Priority() != 3 {
		t.Errorf("unexpected identity: %s/%d", d.Name(), d.Priority())
	}
	a := d.Audit()
	if a.CreatedBy != "ops@example.com" || a.LastModifiedBy != "ops@example.com" {
		t.Errorf("unexpected audit actors: %+v", a)
	}
	if !a.CreatedAt.Equal(now) || !a.LastModifiedAt.Equal(now) {
		t.Errorf("unexpected audit times: %+v", a)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		dim      string
		priority int
		schema   string
	}{
		{"empty name", "", 1, `{"type":"string"}`},
		{"blank name", "   ", 1, `{"type":"string"}`},
		{"empty schema", "region", 1, ``},
		{"broken schema", "region", 1, `{"type":`},
		{"priority above int32", "region", math.MaxInt32 + 1, `{"type":"string"}`},
		{"priority below int32", "region", math.MinInt32 - 1, `{"type":"string"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.dim, tc.priority, json.RawMessage(tc.schema), NoFunction(), Audit{})
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNew_PriorityBounds(t *testing.T) {
	for _, p := range []int{-5, 0, math.MinInt32, math.MaxInt32} {
		if _, err := New("tier", p, json.RawMessage(`{"type":"integer"}`), NoFunction(), Audit{}); err != nil {
			t.Errorf("priority %d: unexpected error %v", p, err)
		}
	}
}

func TestReconstruct_KeepsFields(t *testing.T) {
	d := Reconstruct("color", 7, json.RawMessage(`{"type":"string"}`), Function("is_color"), Audit{CreatedBy: "a"})
	if name, ok := d.Function().Name(); !ok || name != "is_color" {
		t.Errorf("unexpected function: %v", d.Function())
	}
	if d.Audit().CreatedBy != "a" {
		t.Errorf("unexpected audit: %+v", d.Audit())
	}
}
