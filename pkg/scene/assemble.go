package scene

import (
	"time"

	"github.com/ChicagoDave/citygen/pkg/generate"
	"github.com/ChicagoDave/citygen/pkg/layout"
)

// Assemble converts a generation result into the renderer-facing document.
func Assemble(name string, res *generate.Result) *Document {
	d := NewDocument()
	l := res.Layout

	d.Districts = append(d.Districts, l.Districts...)
	d.Roads = append(d.Roads, l.Roads...)
	d.CityBlocks = append(d.CityBlocks, l.Blocks...)
	d.TileGrid = l.Grid.Rows2D()
	d.FinalPOIPositions = append(d.FinalPOIPositions, res.Positions...)
	d.Unplaced = res.Unplaced
	d.Metrics = res.Metrics

	assembleGroups(res, d)

	d.Metadata = Metadata{
		Name:        name,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Seed:        res.Config.RNGSeed,
		SpreadMode:  res.Config.SpreadMode,
		BoundsSize:  res.Config.BoundsSize,
		TileSize:    l.Grid.TileSize,
		Cols:        l.Grid.Cols,
		Rows:        l.Grid.Rows,
	}
	return d
}

func assembleGroups(res *generate.Result, d *Document) {
	placed := make(map[string]bool, len(res.Positions))
	for _, p := range res.Positions {
		placed[p.ID] = true
	}
	for _, p := range res.POIs {
		if !placed[p.ID] {
			continue
		}
		district := p.District
		if district == "" {
			district = layout.DefaultDistrict
		}
		d.Groups.Districts[district] = append(d.Groups.Districts[district], p.ID)
	}
	for _, r := range d.Roads {
		d.Groups.RoadTypes[r.Type] = append(d.Groups.RoadTypes[r.Type], r.ID)
	}
	for _, b := range d.CityBlocks {
		d.Groups.BlockTypes[b.Type] = append(d.Groups.BlockTypes[b.Type], b.ID)
	}
	for typ, n := range res.Layout.Grid.Counts() {
		d.Groups.TileCounts[typ] = n
	}
}
