package layout

import (
	"fmt"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/snap"
	"github.com/ChicagoDave/citygen/pkg/tile"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// Share of filled outskirt tiles that become buildings rather than parks.
const fillBuildingShare = 0.7

// rasterizeRoads paints every road footprint as road tiles and then links
// the network.
func rasterizeRoads(b *build) {
	for _, r := range b.roads {
		for _, c := range b.footprint(r) {
			b.grid.Paint(c.Col, c.Row, tile.Road)
		}
	}
	b.components = BuildConnectivity(b.roads, b.footprint)
	if b.components > 1 {
		b.report.AddWarning(validation.Result{
			Level:       validation.LevelLayout,
			Message:     fmt.Sprintf("road network splits into %d disconnected components", b.components),
			ActualValue: b.components,
			Expected:    "1",
		})
	}
}

// fillOutskirts scatters buildings and parks over untagged grass, denser
// towards the map centre. An empty city stays bare.
func fillOutskirts(b *build) {
	if len(b.pois) == 0 || b.cfg.MaxFillDensity <= 0 {
		return
	}
	g := b.grid
	mid := g.Center()
	dmax := float64(max(mid.Col, mid.Row, 1))
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			t := g.At(col, row)
			if t.Type != tile.Grass || t.District != "" {
				continue
			}
			d := geo.Pt(float64(col-mid.Col), float64(row-mid.Row)).Length()
			p := b.cfg.MaxFillDensity * (1 - d/dmax)
			if !b.rng.Chance(p) {
				continue
			}
			if b.rng.Chance(fillBuildingShare) {
				g.Paint(col, row, tile.Building)
			} else {
				g.Paint(col, row, tile.Park)
			}
		}
	}
}

// paintSidewalks turns grass bordering a road into sidewalk.
func paintSidewalks(b *build) {
	g := b.grid
	var edge []geo.Cell
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.At(col, row).Type != tile.Grass {
				continue
			}
			for _, d := range tile.Neighbors4 {
				if g.At(col+d.Col, row+d.Row).Type == tile.Road {
					edge = append(edge, geo.Cell{Col: col, Row: row})
					break
				}
			}
		}
	}
	for _, c := range edge {
		g.Paint(c.Col, c.Row, tile.Sidewalk)
	}
}

// forceAccessibility guarantees every POI tile and its 4-neighbours are
// walkable and cuts a footpath from each POI to the nearest road. POIs
// that fall off the grid are reported instead.
func forceAccessibility(b *build) {
	snapper := snap.New(b.grid)
	for _, p := range b.pois {
		if snapper.EnsureAccessibility(p.Position) {
			b.carveFootpath(b.grid.WorldToTile(p.Position))
			continue
		}
		b.unreachable = append(b.unreachable, p.ID)
		b.report.AddWarning(validation.Result{
			Level:       validation.LevelAccessibility,
			Message:     fmt.Sprintf("POI %s lies outside the tile grid", p.ID),
			POI:         p.ID,
			ActualValue: p.Position,
		})
	}
}

// carveFootpath opens an L-shaped walkable path from c to the nearest road
// tile, horizontal leg first.
func (b *build) carveFootpath(c geo.Cell) {
	g := b.grid
	var road geo.Cell
	found := false
	for r := 0; r <= max(g.Cols, g.Rows) && !found; r++ {
		bestD := -1
		for _, cand := range geo.Ring(c, r) {
			if g.AtCell(cand).Type != tile.Road {
				continue
			}
			if d := cand.Manhattan(c); bestD < 0 || d < bestD {
				road, bestD, found = cand, d, true
			}
		}
	}
	if !found {
		return
	}
	corner := geo.Cell{Col: road.Col, Row: c.Row}
	for _, step := range centerline([]geo.Cell{c, corner, road}) {
		g.Open(step.Col, step.Row)
	}
}
