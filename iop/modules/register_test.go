package modules

import (
	"testing"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/params"
)

func TestRegisterAllRegistersEveryModule(t *testing.T) {
	catalog := iop.NewCatalog()
	registry := params.NewRegistry()
	if err := RegisterAll(catalog, registry); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	for _, r := range registrations() {
		if _, ok := catalog.Lookup(r.op); !ok {
			t.Errorf("op %q missing from catalog after RegisterAll", r.op)
		}
		if _, err := registry.ParamsSize(r.op); err != nil {
			t.Errorf("op %q missing from param registry after RegisterAll: %v", r.op, err)
		}
	}
}

func TestRegisterAllProducesCanonicalOrder(t *testing.T) {
	catalog := iop.NewCatalog()
	registry := params.NewRegistry()
	if err := RegisterAll(catalog, registry); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	want := []string{
		"rawprepare", "whitebalance", "demosaic", "colorin", "colorcalib",
		"channelmixer", "exposure", "colorbalance", "filmic", "levels",
		"rgbcurve", "vignette", "crop", "clipping", "colorout",
	}
	got := catalog.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() returned %d ops, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegisterAllRejectsDuplicateRegistration(t *testing.T) {
	catalog := iop.NewCatalog()
	registry := params.NewRegistry()
	if err := RegisterAll(catalog, registry); err != nil {
		t.Fatalf("first RegisterAll: %v", err)
	}
	if err := RegisterAll(catalog, registry); err == nil {
		t.Error("a second RegisterAll against the same catalog should fail on duplicate op names")
	}
}

func TestRegisterUpgradesRegistersEveryModuleAtItsCurrentVersion(t *testing.T) {
	catalog := iop.NewCatalog()
	registry := params.NewRegistry()
	upgrades := params.NewUpgrades()
	if err := RegisterAll(catalog, registry); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if err := RegisterUpgrades(upgrades); err != nil {
		t.Fatalf("RegisterUpgrades: %v", err)
	}
	for _, r := range registrations() {
		m := r.new()
		got, err := upgrades.CurrentVersion(r.op)
		if err != nil {
			t.Errorf("CurrentVersion(%q): %v", r.op, err)
			continue
		}
		if got != m.ParamsVersion() {
			t.Errorf("CurrentVersion(%q) = %d, want %d", r.op, got, m.ParamsVersion())
		}
	}
}

func TestDefaultEnabledMatchesExpectedSubset(t *testing.T) {
	want := map[string]bool{
		"rawprepare": true,
		"demosaic":   true,
		"colorin":    true,
		"exposure":   true,
		"colorout":   true,
	}
	if len(DefaultEnabled) != len(want) {
		t.Fatalf("DefaultEnabled has %d entries, want %d", len(DefaultEnabled), len(want))
	}
	for op := range want {
		if !DefaultEnabled[op] {
			t.Errorf("expected %q to be default-enabled", op)
		}
	}
	for _, r := range registrations() {
		if want[r.op] {
			continue
		}
		if DefaultEnabled[r.op] {
			t.Errorf("%q should not be default-enabled", r.op)
		}
	}
}
