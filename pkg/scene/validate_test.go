package scene

import (
	"testing"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/tile"
)

func validDocument() *Document {
	g := tile.NewGridDims(4, 4, 10)
	for col := 0; col < 4; col++ {
		g.Paint(col, 1, tile.Road)
	}
	g.Paint(3, 3, tile.Building)

	d := NewDocument()
	d.Roads = []layout.Road{{
		ID:     "main_h",
		Type:   layout.RoadMain,
		Points: []geo.Point2D{geo.Pt(5, 15), geo.Pt(35, 15)},
		Width:  10,
	}}
	d.CityBlocks = []layout.CityBlock{{ID: "block_0000", Type: layout.BlockBuilding, District: "central"}}
	d.Districts = []layout.District{{Name: "central", Members: []string{"poi-a"}}}
	d.FinalPOIPositions = []spec.Position{{ID: "poi-a", X: 5, Y: 25}}
	d.TileGrid = g.Rows2D()
	d.Groups.Districts["central"] = []string{"poi-a"}
	d.Groups.RoadTypes[layout.RoadMain] = []string{"main_h"}
	d.Groups.BlockTypes[layout.BlockBuilding] = []string{"block_0000"}
	d.Metadata = Metadata{BoundsSize: 40, TileSize: 10, Cols: 4, Rows: 4}
	return d
}

func TestValidateDocument_Valid(t *testing.T) {
	r := ValidateDocument(validDocument())
	if !r.Valid {
		t.Errorf("expected valid, got %d errors", len(r.Errors))
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
	}
}

func TestValidateDocument_Nil(t *testing.T) {
	r := ValidateDocument(nil)
	if r.Valid {
		t.Error("expected invalid for nil document")
	}
}

func TestValidateDocument_DuplicateID(t *testing.T) {
	d := validDocument()
	d.Roads = append(d.Roads, d.Roads[0])
	r := ValidateDocument(d)
	if r.Valid {
		t.Error("expected invalid for duplicate road ID")
	}
}

func TestValidateDocument_EmptyID(t *testing.T) {
	d := validDocument()
	d.FinalPOIPositions = append(d.FinalPOIPositions, spec.Position{X: 5, Y: 5})
	r := ValidateDocument(d)
	if r.Valid {
		t.Error("expected invalid for empty POI ID")
	}
}

func TestValidateDocument_OrphanedGroupReference(t *testing.T) {
	d := validDocument()
	d.Groups.Districts["central"] = append(d.Groups.Districts["central"], "nonexistent")
	r := ValidateDocument(d)
	if r.Valid {
		t.Error("expected invalid for orphaned group reference")
	}
}

func TestValidateDocument_MissingGroupMembership(t *testing.T) {
	d := validDocument()
	d.Groups.RoadTypes[layout.RoadMain] = []string{}
	r := ValidateDocument(d)
	if r.Valid {
		t.Error("expected invalid for missing group membership")
	}
}

func TestValidateDocument_GridMismatch(t *testing.T) {
	d := validDocument()
	d.Metadata.Rows = 5
	r := ValidateDocument(d)
	if r.Valid {
		t.Error("expected invalid for grid dimension mismatch")
	}
}

func TestValidateDocument_POIOnBuilding(t *testing.T) {
	d := validDocument()
	d.FinalPOIPositions[0] = spec.Position{ID: "poi-a", X: 35, Y: 35}
	r := ValidateDocument(d)
	if r.Valid {
		t.Error("expected invalid for POI on a building tile")
	}
}

func TestValidateDocument_OutOfBoundsWarning(t *testing.T) {
	d := validDocument()
	d.FinalPOIPositions[0] = spec.Position{ID: "poi-a", X: 55, Y: 5}
	r := ValidateDocument(d)
	if len(r.Warnings) == 0 {
		t.Error("expected warning for POI outside bounds")
	}
}

func TestValidateDocument_RealDocument(t *testing.T) {
	d := assembleTestDocument(t)
	r := ValidateDocument(d)
	if !r.Valid {
		t.Errorf("real document validation failed: %d errors", len(r.Errors))
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
	}
	t.Logf("validated %d roads, %d blocks: %s", len(d.Roads), len(d.CityBlocks), r.Summary)
}
