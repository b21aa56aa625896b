package mandatory

import (
	"encoding/json"
	"testing"

	"github.com/kailas-cloud/dimreg/internal/domain/dimension"
	"github.com/kailas-cloud/dimreg/internal/domain/tenant"
)

// --- Mocks ---

type mockProvider struct {
	sets  map[tenant.Tenant]tenant.MandatorySet
	calls int
}

func (m *mockProvider) MandatoryDimensions(t tenant.Tenant) tenant.MandatorySet {
	m.calls++
	return m.sets[t]
}

func makeDim(name string) dimension.Dimension {
	return dimension.Reconstruct(name, 1, json.RawMessage(`{"type":"string"}`), dimension.NoFunction(), dimension.Audit{})
}

// --- Tests ---

func TestIsMandatory(t *testing.T) {
	p := &mockProvider{sets: map[tenant.Tenant]tenant.MandatorySet{
		"acme": tenant.NewMandatorySet("region", "tier"),
	}}
	tg := New(p)

	if !tg.IsMandatory("acme", "region") {
		t.Error("region should be mandatory for acme")
	}
	if tg.IsMandatory("acme", "color") {
		t.Error("color should not be mandatory for acme")
	}
	if tg.IsMandatory("globex", "region") {
		t.Error("unknown tenant has no mandatory dimensions")
	}
}

func TestTag_PreservesOrderAndResolvesOnce(t *testing.T) {
	p := &mockProvider{sets: map[tenant.Tenant]tenant.MandatorySet{
		"acme": tenant.NewMandatorySet("region", "tier"),
	}}
	tg := New(p)

	got := tg.Tag("acme", []dimension.Dimension{makeDim("color"), makeDim("region")})
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Name() != "color" || got[0].Mandatory {
		t.Errorf("unexpected first: %s mandatory=%v", got[0].Name(), got[0].Mandatory)
	}
	if got[1].Name() != "region" || !got[1].Mandatory {
		t.Errorf("unexpected second: %s mandatory=%v", got[1].Name(), got[1].Mandatory)
	}
	if p.calls != 1 {
		t.Errorf("expected provider to be called once, got %d", p.calls)
	}
}

func TestTag_Empty(t *testing.T) {
	tg := New(&mockProvider{})
	if got := tg.Tag("acme", nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestTagOne(t *testing.T) {
	tg := New(&mockProvider{sets: map[tenant.Tenant]tenant.MandatorySet{
		"acme": tenant.NewMandatorySet("tier"),
	}})
	if wm := tg.TagOne("acme", makeDim("tier")); !wm.Mandatory {
		t.Error("tier should be mandatory")
	}
}
