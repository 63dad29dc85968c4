package spec

import (
	"testing"
)

func TestLoadProject(t *testing.T) {
	p, err := LoadProject("../../examples/downtown")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if p.Name != "downtown" {
		t.Errorf("name = %q, want %q", p.Name, "downtown")
	}
	c := p.Config
	if c.MinDistanceBetweenPOIs != 100 {
		t.Errorf("min_distance_between_pois = %v, want 100", c.MinDistanceBetweenPOIs)
	}
	if c.BoundsSize != 1024 {
		t.Errorf("bounds_size = %v, want 1024", c.BoundsSize)
	}
	if c.SpreadMode != SpreadPoisson {
		t.Errorf("spread_mode = %q, want %q", c.SpreadMode, SpreadPoisson)
	}
	if c.RNGSeed != 42 {
		t.Errorf("rng_seed = %d, want 42", c.RNGSeed)
	}
	if c.RepositionPercentage != 0.3 {
		t.Errorf("reposition_percentage = %v, want 0.3", c.RepositionPercentage)
	}

	// Keys absent from the file keep their defaults.
	if c.TileSize != 16 {
		t.Errorf("tile_size = %v, want default 16", c.TileSize)
	}
	if c.AccessibilityThreshold != 0.95 {
		t.Errorf("accessibility_threshold = %v, want default 0.95", c.AccessibilityThreshold)
	}

	if len(p.POIs) != 12 {
		t.Fatalf("poi count = %d, want 12", len(p.POIs))
	}
	first := p.POIs[0]
	if first.ID != "poi-bakery" || first.District != "old-town" || first.Category != "cafe" {
		t.Errorf("first poi = %+v", first)
	}
	pos, ok := first.Prior()
	if !ok {
		t.Fatal("first poi should have a prior position")
	}
	if pos.X != 300 || pos.Y != 280 {
		t.Errorf("first poi prior = %v, want (300,280)", pos)
	}
	if _, ok := p.POIs[len(p.POIs)-1].Prior(); ok {
		t.Error("last poi should have no prior position")
	}
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject("/nonexistent/path")
	if err == nil {
		t.Error("expected error for missing project directory")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("config: [unterminated")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestSpreadModeValid(t *testing.T) {
	for _, m := range []SpreadMode{SpreadGrid, SpreadPoisson, SpreadHybrid} {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if SpreadMode("spiral").Valid() {
		t.Error("spiral should be invalid")
	}
}

func TestWithPosition(t *testing.T) {
	p := POI{ID: "a"}
	if _, ok := p.Prior(); ok {
		t.Fatal("fresh POI should have no prior")
	}
	q := p.WithPosition(Position{X: 3, Y: 4}.Point())
	got, ok := q.Prior()
	if !ok || got.X != 3 || got.Y != 4 {
		t.Errorf("prior = %v (%v), want (3,4)", got, ok)
	}
	if _, ok := p.Prior(); ok {
		t.Error("WithPosition must not mutate the receiver")
	}
}

func TestSecondaryThresholdDefault(t *testing.T) {
	c := DefaultConfig()
	if got := c.SecondaryThreshold(); got != 512 {
		t.Errorf("secondary threshold = %v, want 512", got)
	}
	c.SecondaryRoadThreshold = 200
	if got := c.SecondaryThreshold(); got != 200 {
		t.Errorf("secondary threshold = %v, want 200", got)
	}
}
