package scene2d

import (
	"time"

	"github.com/ChicagoDave/citygen/pkg/generate"
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/tile"
)

// Assemble2D converts a generation result into a 2D scene suitable for SVG
// rendering. Tiles are summarised as aggregates; districts, roads, blocks
// and POIs keep their 2D coordinates.
func Assemble2D(name string, res *generate.Result) *Scene2D {
	l := res.Layout
	pois := assemblePOIs(res)
	return &Scene2D{
		Metadata: Metadata{
			Name:          name,
			BoundsSize:    res.Config.BoundsSize,
			TileSize:      l.Grid.TileSize,
			POICount:      len(pois),
			DistrictCount: len(l.Districts),
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		},
		Districts: assembleDistricts(l.Districts),
		Roads:     assembleRoads(l.Roads),
		Blocks:    assembleBlocks(l.Blocks),
		POIs:      pois,
		Tiles:     assembleTileSummary(l.Grid),
		Summary:   assembleBlockSummary(l.Blocks),
	}
}

func coords(p geo.Point2D) [2]float64 {
	return [2]float64{p.X, p.Y}
}

func assembleDistricts(districts []layout.District) []District2D {
	result := make([]District2D, 0, len(districts))
	for _, d := range districts {
		result = append(result, District2D{
			Name:     d.Name,
			Theme:    string(d.Theme),
			Center:   coords(d.Center),
			Hub:      coords(d.Hub),
			Radius:   d.Radius,
			POICount: len(d.Members),
		})
	}
	return result
}

func assembleRoads(roads []layout.Road) RoadCollection {
	rc := RoadCollection{
		Local:     []Road2D{},
		Secondary: []Road2D{},
		Main:      []Road2D{},
	}
	for _, r := range roads {
		pts := make([][2]float64, len(r.Points))
		for i, p := range r.Points {
			pts[i] = coords(p)
		}
		r2 := Road2D{ID: r.ID, Points: pts, Width: r.Width}
		switch r.Type {
		case layout.RoadMain:
			rc.Main = append(rc.Main, r2)
		case layout.RoadSecondary:
			rc.Secondary = append(rc.Secondary, r2)
		case layout.RoadLocal:
			rc.Local = append(rc.Local, r2)
		}
	}
	return rc
}

func assembleBlocks(blocks []layout.CityBlock) []Block2D {
	result := make([]Block2D, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, Block2D{
			ID:       b.ID,
			Type:     string(b.Type),
			Rect:     [4]float64{b.Bounds.Min.X, b.Bounds.Min.Y, b.Bounds.Width(), b.Bounds.Height()},
			District: b.District,
		})
	}
	return result
}

func assemblePOIs(res *generate.Result) []POI2D {
	byID := make(map[string]spec.POI, len(res.POIs))
	for _, p := range res.POIs {
		byID[p.ID] = p
	}
	result := make([]POI2D, 0, len(res.Positions))
	for _, pos := range res.Positions {
		p := byID[pos.ID]
		district := p.District
		if district == "" {
			district = layout.DefaultDistrict
		}
		result = append(result, POI2D{
			ID:       pos.ID,
			Category: p.Category,
			District: district,
			Position: coords(pos.Point()),
		})
	}
	return result
}

func assembleTileSummary(g *tile.Grid) TileSummary {
	ts := TileSummary{
		Cols:   g.Cols,
		Rows:   g.Rows,
		Counts: make(map[string]int, len(tile.Types)),
	}
	walkable := 0
	for typ, n := range g.Counts() {
		ts.Counts[typ.String()] = n
		if typ.Walkable() {
			walkable += n
		}
	}
	if total := g.Cols * g.Rows; total > 0 {
		ts.WalkableFraction = float64(walkable) / float64(total)
	}
	return ts
}

func assembleBlockSummary(blocks []layout.CityBlock) BlockSummary {
	bs := BlockSummary{
		Total:      len(blocks),
		ByType:     make(map[string]int),
		ByDistrict: make(map[string]DistrictSum),
	}
	for _, b := range blocks {
		bs.ByType[string(b.Type)]++

		sum := bs.ByDistrict[b.District]
		sum.Blocks++
		sum.Area += b.Bounds.Area()
		switch b.Type {
		case layout.BlockBuilding:
			sum.Building++
		case layout.BlockPark:
			sum.Green++
		case layout.BlockParking, layout.BlockPlaza, layout.BlockEmpty:
			sum.Open++
		}
		bs.ByDistrict[b.District] = sum
	}
	return bs
}
