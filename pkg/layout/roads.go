package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/ChicagoDave/citygen/pkg/geo"
)

// Arterial road IDs.
const (
	MainHorizontal = "main_h"
	MainVertical   = "main_v"
)

// buildRoads lays out the road network: two arterials through the map
// centre, a local lattice per district, secondary links between nearby
// hubs and a connector from every hub to the arterials.
func buildRoads(b *build) {
	g := b.grid
	mid := g.Center()

	b.addRoad(MainHorizontal, RoadMain, []geo.Cell{{Col: 0, Row: mid.Row}, {Col: g.Cols - 1, Row: mid.Row}})
	b.addRoad(MainVertical, RoadMain, []geo.Cell{{Col: mid.Col, Row: 0}, {Col: mid.Col, Row: g.Rows - 1}})

	s := b.cfg.LocalRoadSpacingTiles
	for _, d := range b.districts {
		rect := d.lattice
		if rect.empty() {
			continue
		}
		n := 0
		if rect.Max.Row > rect.Min.Row {
			for col := rect.Min.Col; col <= rect.Max.Col; col += s {
				b.addRoad(fmt.Sprintf("local_%s_%03d", d.Name, n), RoadLocal,
					[]geo.Cell{{Col: col, Row: rect.Min.Row}, {Col: col, Row: rect.Max.Row}})
				n++
			}
		}
		if rect.Max.Col > rect.Min.Col {
			for row := rect.Min.Row; row <= rect.Max.Row; row += s {
				b.addRoad(fmt.Sprintf("local_%s_%03d", d.Name, n), RoadLocal,
					[]geo.Cell{{Col: rect.Min.Col, Row: row}, {Col: rect.Max.Col, Row: row}})
				n++
			}
		}
	}

	threshold := b.cfg.SecondaryThreshold()
	for i := range b.districts {
		for j := i + 1; j < len(b.districts); j++ {
			a, c := b.districts[i], b.districts[j]
			if a.Hub.Distance(c.Hub) > threshold {
				continue
			}
			ha, hc := g.WorldToTile(a.Hub), g.WorldToTile(c.Hub)
			b.addRoad(fmt.Sprintf("secondary_%s_%s", a.Name, c.Name), RoadSecondary,
				[]geo.Cell{ha, {Col: hc.Col, Row: ha.Row}, hc})
		}
	}

	for _, d := range b.districts {
		hub := g.WorldToTile(d.Hub)
		if hub.Row == mid.Row || hub.Col == mid.Col {
			continue
		}
		end := geo.Cell{Col: hub.Col, Row: mid.Row}
		if abs(hub.Col-mid.Col) < abs(hub.Row-mid.Row) {
			end = geo.Cell{Col: mid.Col, Row: hub.Row}
		}
		b.addRoad("connector_"+d.Name, RoadSecondary, []geo.Cell{hub, end})
	}
}

// addRoad appends a road whose centreline runs through the given tile
// waypoints, recording the districts it passes through.
func (b *build) addRoad(id string, typ RoadType, waypoints []geo.Cell) {
	pts := make([]geo.Point2D, len(waypoints))
	for i, c := range waypoints {
		pts[i] = b.grid.TileToWorld(c)
	}

	touched := mapset.New[string]()
	for _, c := range centerline(waypoints) {
		for _, d := range b.districts {
			if touched.Has(d.Name) {
				continue
			}
			if d.lattice.contains(c) || b.grid.TileToWorld(c).Distance(d.Hub) <= d.Radius {
				touched.Put(d.Name)
			}
		}
	}
	districts := make([]string, 0, touched.Size())
	for _, d := range b.districts {
		if touched.Has(d.Name) {
			districts = append(districts, d.Name)
		}
	}
	sort.Strings(districts)

	b.roads = append(b.roads, Road{
		ID:        id,
		Type:      typ,
		Points:    pts,
		Width:     float64(typ.widthTiles()) * b.cfg.TileSize,
		Districts: districts,
	})
}

// centerline returns the tiles on the polyline through waypoints.
func centerline(waypoints []geo.Cell) []geo.Cell {
	if len(waypoints) == 1 {
		return []geo.Cell{waypoints[0]}
	}
	var cells []geo.Cell
	for i := 1; i < len(waypoints); i++ {
		seg := geo.Line(waypoints[i-1], waypoints[i])
		if i > 1 {
			seg = seg[1:]
		}
		cells = append(cells, seg...)
	}
	return cells
}

// footprint returns every tile a road covers once stamped to its width.
func (b *build) footprint(r Road) []geo.Cell {
	waypoints := make([]geo.Cell, len(r.Points))
	for i, p := range r.Points {
		waypoints[i] = b.grid.WorldToTile(p)
	}
	w := int(math.Round(r.Width / b.cfg.TileSize))
	if w < 1 {
		w = 1
	}
	lo, hi := -(w-1)/2, w/2

	var cells []geo.Cell
	for _, c := range centerline(waypoints) {
		for dr := lo; dr <= hi; dr++ {
			for dc := lo; dc <= hi; dc++ {
				cells = append(cells, geo.Cell{Col: c.Col + dc, Row: c.Row + dr})
			}
		}
	}
	return cells
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
