package layout

import (
	"strings"
	"testing"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/rng"
	"github.com/ChicagoDave/citygen/pkg/routing"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/tile"
)

func testConfig() spec.Config {
	c := spec.DefaultConfig()
	c.BoundsSize = 1024
	c.TileSize = 16
	return c
}

func downtownPOIs() []Placed {
	return []Placed{
		{ID: "poi-bakery", Category: "cafe", District: "old-town", Position: geo.Pt(300, 280)},
		{ID: "poi-bar", Category: "bar", District: "old-town", Position: geo.Pt(420, 330)},
		{ID: "poi-diner", Category: "restaurant", District: "old-town", Position: geo.Pt(250, 420)},
		{ID: "poi-museum", Category: "museum", District: "museum-mile", Position: geo.Pt(700, 250)},
		{ID: "poi-gallery", Category: "gallery", District: "museum-mile", Position: geo.Pt(820, 330)},
		{ID: "poi-market", Category: "market", District: "harbor", Position: geo.Pt(650, 760)},
		{ID: "poi-shop", Category: "shop", District: "harbor", Position: geo.Pt(790, 840)},
		{ID: "poi-hotel", Category: "hotel", Position: geo.Pt(220, 780)},
	}
}

func generate(t *testing.T, pois []Placed, cfg spec.Config, seed int64) *Layout {
	t.Helper()
	l, report := Generate(pois, cfg, rng.New(seed))
	if !report.Valid {
		t.Fatalf("layout report invalid: %v", report.Errors)
	}
	return l
}

func TestRoadCenterlinesAreWalkableRoad(t *testing.T) {
	l := generate(t, downtownPOIs(), testConfig(), 42)

	for _, r := range l.Roads {
		waypoints := make([]geo.Cell, len(r.Points))
		for i, p := range r.Points {
			waypoints[i] = l.Grid.WorldToTile(p)
		}
		for _, c := range centerline(waypoints) {
			got := l.Grid.AtCell(c)
			if got.Type != tile.Road || !got.Walkable {
				t.Fatalf("road %s tile %v is %s (walkable=%v), want walkable road", r.ID, c, got.Type, got.Walkable)
			}
		}
	}
}

func TestNoGrassBordersRoad(t *testing.T) {
	l := generate(t, downtownPOIs(), testConfig(), 42)
	g := l.Grid

	sidewalks := 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			typ := g.At(col, row).Type
			if typ == tile.Sidewalk {
				sidewalks++
			}
			if typ != tile.Grass {
				continue
			}
			for _, d := range tile.Neighbors4 {
				if g.At(col+d.Col, row+d.Row).Type == tile.Road {
					t.Fatalf("grass at (%d,%d) borders a road", col, row)
				}
			}
		}
	}
	if sidewalks == 0 {
		t.Error("expected sidewalks along roads")
	}
}

func TestEmptyCityHasOnlyArterials(t *testing.T) {
	l := generate(t, nil, testConfig(), 1)

	if len(l.Roads) != 2 {
		t.Fatalf("got %d roads, want 2 arterials", len(l.Roads))
	}
	if l.Roads[0].ID != MainHorizontal || l.Roads[1].ID != MainVertical {
		t.Errorf("roads = %s, %s", l.Roads[0].ID, l.Roads[1].ID)
	}
	if len(l.Districts) != 0 || len(l.Blocks) != 0 {
		t.Errorf("got %d districts and %d blocks, want none", len(l.Districts), len(l.Blocks))
	}
	for typ, n := range l.Grid.Counts() {
		switch typ {
		case tile.Road, tile.Sidewalk, tile.Grass:
		default:
			t.Errorf("unexpected %d %s tiles in empty city", n, typ)
		}
	}
	if l.RoadComponents != 1 {
		t.Errorf("arterials form %d components, want 1", l.RoadComponents)
	}
}

func TestLayoutIsDeterministic(t *testing.T) {
	a := generate(t, downtownPOIs(), testConfig(), 7)
	b := generate(t, downtownPOIs(), testConfig(), 7)

	if !a.Grid.Equal(b.Grid) {
		t.Fatal("same seed produced different grids")
	}
	if len(a.Blocks) != len(b.Blocks) {
		t.Fatalf("block counts differ: %d vs %d", len(a.Blocks), len(b.Blocks))
	}
	for i := range a.Blocks {
		if a.Blocks[i] != b.Blocks[i] {
			t.Errorf("block %d differs: %+v vs %+v", i, a.Blocks[i], b.Blocks[i])
		}
	}
}

func TestBlocksNeverOverwriteRoads(t *testing.T) {
	cfg := testConfig()
	pois := downtownPOIs()
	roadsOnly, _ := DefaultPipeline().Until(StageRasterRoads).Run(pois, cfg, rng.New(3))
	full := generate(t, pois, cfg, 3)

	g := roadsOnly.Grid
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.At(col, row).Type == tile.Road && full.Grid.At(col, row).Type != tile.Road {
				t.Fatalf("road tile (%d,%d) became %s", col, row, full.Grid.At(col, row).Type)
			}
		}
	}
}

func TestPOIsAreAccessible(t *testing.T) {
	l := generate(t, downtownPOIs(), testConfig(), 11)

	for _, p := range downtownPOIs() {
		c := l.Grid.WorldToTile(p.Position)
		if !l.Grid.Walkable(c.Col, c.Row) {
			t.Errorf("POI %s tile is not walkable", p.ID)
		}
		for _, d := range tile.Neighbors4 {
			n := geo.Cell{Col: c.Col + d.Col, Row: c.Row + d.Row}
			if l.Grid.InBounds(n.Col, n.Row) && !l.Grid.Walkable(n.Col, n.Row) {
				t.Errorf("POI %s neighbour %v is not walkable", p.ID, n)
			}
		}
	}
	if len(l.Unreachable) != 0 {
		t.Errorf("unexpected unreachable POIs: %v", l.Unreachable)
	}
}

func TestAccessibilityOpensBlockedTilesAsSidewalk(t *testing.T) {
	cfg := testConfig()
	before, _ := DefaultPipeline().Until(StageSidewalks).Run(downtownPOIs(), cfg, rng.New(11))
	after := generate(t, downtownPOIs(), cfg, 11)

	for _, p := range downtownPOIs() {
		c := before.Grid.WorldToTile(p.Position)
		cells := []geo.Cell{c}
		for _, d := range tile.Neighbors4 {
			cells = append(cells, geo.Cell{Col: c.Col + d.Col, Row: c.Row + d.Row})
		}
		for _, n := range cells {
			if !before.Grid.InBounds(n.Col, n.Row) || before.Grid.Walkable(n.Col, n.Row) {
				continue
			}
			if got := after.Grid.AtCell(n).Type; got != tile.Sidewalk {
				t.Errorf("POI %s tile %v = %v after forcing, want sidewalk", p.ID, n, got)
			}
		}
	}
}

func TestOffGridPOIIsFlagged(t *testing.T) {
	pois := append(downtownPOIs(), Placed{ID: "poi-lost", Position: geo.Pt(5000, 5000)})
	l, report := Generate(pois, testConfig(), rng.New(1))

	if len(l.Unreachable) != 1 || l.Unreachable[0] != "poi-lost" {
		t.Fatalf("unreachable = %v, want [poi-lost]", l.Unreachable)
	}
	found := false
	for _, w := range report.Warnings {
		if w.POI == "poi-lost" {
			found = true
		}
	}
	if !found {
		t.Error("expected a warning for poi-lost")
	}
}

func TestDistrictsAndThemes(t *testing.T) {
	cfg := testConfig()
	cfg.DistrictThemes = map[string]string{"harbor": string(ThemeUpscale)}
	l := generate(t, downtownPOIs(), cfg, 5)

	want := map[string]Theme{
		DefaultDistrict: ThemeUpscale,
		"harbor":        ThemeUpscale,
		"museum-mile":   ThemeCultural,
		"old-town":      ThemeCasual,
	}
	if len(l.Districts) != len(want) {
		t.Fatalf("got %d districts, want %d", len(l.Districts), len(want))
	}
	for i, d := range l.Districts {
		if i > 0 && l.Districts[i-1].Name >= d.Name {
			t.Errorf("districts not sorted: %s before %s", l.Districts[i-1].Name, d.Name)
		}
		if d.Theme != want[d.Name] {
			t.Errorf("district %s theme = %s, want %s", d.Name, d.Theme, want[d.Name])
		}
		hub := l.Grid.WorldToTile(d.Hub)
		if hub.Col%cfg.LocalRoadSpacingTiles != 0 || hub.Row%cfg.LocalRoadSpacingTiles != 0 {
			t.Errorf("district %s hub %v is off the lattice", d.Name, hub)
		}
	}
}

func TestThemeTieIsMixed(t *testing.T) {
	b := &build{cfg: testConfig()}
	got := b.themeOf("x", []Placed{{Category: "shop"}, {Category: "museum"}})
	if got != ThemeMixed {
		t.Errorf("tie theme = %s, want mixed", got)
	}
	if got := b.themeOf("x", []Placed{{Category: "unknown"}}); got != ThemeMixed {
		t.Errorf("no-vote theme = %s, want mixed", got)
	}
}

func TestRoadIDsAndWidths(t *testing.T) {
	cfg := testConfig()
	l := generate(t, downtownPOIs(), cfg, 2)

	seen := make(map[string]bool)
	for _, r := range l.Roads {
		if seen[r.ID] {
			t.Errorf("duplicate road id %s", r.ID)
		}
		seen[r.ID] = true
		if r.Width != float64(r.Type.widthTiles())*cfg.TileSize {
			t.Errorf("road %s width %.0f", r.ID, r.Width)
		}
		if r.Type == RoadLocal && !strings.HasPrefix(r.ID, "local_") {
			t.Errorf("local road id %s", r.ID)
		}
		if len(r.ConnectedTo) == 0 && len(l.Roads) > 1 {
			t.Errorf("road %s connects to nothing", r.ID)
		}
	}
	if l.RoadComponents != 1 {
		t.Errorf("road network has %d components, want 1", l.RoadComponents)
	}
}

func TestBlocksStayInsideLattice(t *testing.T) {
	cfg := testConfig()
	l := generate(t, downtownPOIs(), cfg, 9)
	if len(l.Blocks) == 0 {
		t.Fatal("expected blocks")
	}
	inner := cfg.LocalRoadSpacingTiles - 4
	for _, b := range l.Blocks {
		if b.Max.Col-b.Min.Col != inner || b.Max.Row-b.Min.Row != inner {
			t.Errorf("block %s spans %v-%v", b.ID, b.Min, b.Max)
		}
		if b.Bounds.Empty() {
			t.Errorf("block %s has empty bounds", b.ID)
		}
	}
}

func TestPOIsReachFromCentre(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		l := generate(t, downtownPOIs(), testConfig(), seed)
		pf := routing.NewPathfinder(l.Grid, 5)

		targets := make([]routing.Target, 0, len(downtownPOIs()))
		for _, p := range downtownPOIs() {
			targets = append(targets, routing.Target{ID: p.ID, Position: p.Position})
		}
		r := routing.ValidateReachability(pf, targets, 1)
		if !r.Validated {
			t.Errorf("seed %d: unreachable POIs %v", seed, r.Unreachable)
		}
	}
}
