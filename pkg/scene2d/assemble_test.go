package scene2d

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/ChicagoDave/citygen/pkg/generate"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

func assembleTestScene(t *testing.T) (*Scene2D, *generate.Result) {
	t.Helper()
	p, err := spec.LoadProject("../../examples/downtown")
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	res, err := generate.New(p.Config).Run(p.POIs)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return Assemble2D(p.Name, res), res
}

func TestAssemble2D(t *testing.T) {
	s, res := assembleTestScene(t)

	if s.Metadata.Name != "downtown" {
		t.Errorf("name = %q, want downtown", s.Metadata.Name)
	}
	if s.Metadata.POICount != len(res.Positions) || len(s.POIs) != len(res.Positions) {
		t.Errorf("got %d POIs (metadata %d), want %d", len(s.POIs), s.Metadata.POICount, len(res.Positions))
	}
	if s.Metadata.DistrictCount != len(s.Districts) {
		t.Errorf("district count %d, districts %d", s.Metadata.DistrictCount, len(s.Districts))
	}
	if len(s.Roads.Main) != 2 {
		t.Errorf("got %d main roads, want 2", len(s.Roads.Main))
	}
	if len(s.Blocks) != s.Summary.Total {
		t.Errorf("blocks %d, summary total %d", len(s.Blocks), s.Summary.Total)
	}
	for _, r := range s.Roads.Local {
		if len(r.Points) < 2 {
			t.Errorf("road %s has %d points", r.ID, len(r.Points))
		}
	}
}

func TestAssemble2DDistrictPOICounts(t *testing.T) {
	s, _ := assembleTestScene(t)

	perDistrict := make(map[string]int)
	for _, p := range s.POIs {
		perDistrict[p.District]++
	}
	for _, d := range s.Districts {
		if d.POICount != perDistrict[d.Name] {
			t.Errorf("district %s: poi_count %d, POIs %d", d.Name, d.POICount, perDistrict[d.Name])
		}
		if d.Radius <= 0 {
			t.Errorf("district %s: radius %v", d.Name, d.Radius)
		}
	}
}

func TestAssemble2DTileSummary(t *testing.T) {
	s, res := assembleTestScene(t)

	total := 0
	for _, n := range s.Tiles.Counts {
		total += n
	}
	if total != s.Tiles.Cols*s.Tiles.Rows {
		t.Errorf("tile counts sum to %d, want %d", total, s.Tiles.Cols*s.Tiles.Rows)
	}
	if s.Tiles.Cols != res.Layout.Grid.Cols {
		t.Errorf("cols = %d, want %d", s.Tiles.Cols, res.Layout.Grid.Cols)
	}
	if s.Tiles.WalkableFraction <= 0 || s.Tiles.WalkableFraction > 1 {
		t.Errorf("walkable fraction = %v", s.Tiles.WalkableFraction)
	}
}

func TestAssemble2DBlockSummary(t *testing.T) {
	s, _ := assembleTestScene(t)

	byType := 0
	for _, n := range s.Summary.ByType {
		byType += n
	}
	if byType != s.Summary.Total {
		t.Errorf("by_type sums to %d, want %d", byType, s.Summary.Total)
	}

	blocks, area := 0, 0.0
	for name, d := range s.Summary.ByDistrict {
		if d.Building+d.Green+d.Open != d.Blocks {
			t.Errorf("district %s: %d+%d+%d != %d", name, d.Building, d.Green, d.Open, d.Blocks)
		}
		blocks += d.Blocks
		area += d.Area
	}
	if blocks != s.Summary.Total {
		t.Errorf("by_district sums to %d, want %d", blocks, s.Summary.Total)
	}

	want := 0.0
	for _, b := range s.Blocks {
		want += b.Rect[2] * b.Rect[3]
	}
	if math.Abs(area-want) > 1e-6 {
		t.Errorf("area = %v, want %v", area, want)
	}
}

func TestScene2DJSON(t *testing.T) {
	s, _ := assembleTestScene(t)

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"metadata", "districts", "roads", "blocks", "pois", "tiles", "block_summary"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}
