// Package snap moves raw POI coordinates onto or beside the road network of
// a rasterized layout.
package snap

import (
	"math"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/tile"
)

// Number of outward steps tried per compass direction by
// OffsetToAvoidOverlap.
const offsetAttempts = 8

// edgeEpsilon keeps clamped candidates on the last tile row and column.
const edgeEpsilon = 1e-6

// Snapper answers snapping queries against one tile grid.
type Snapper struct {
	grid *tile.Grid
}

// New returns a Snapper over g. EnsureAccessibility mutates g.
func New(g *tile.Grid) *Snapper {
	return &Snapper{grid: g}
}

// FindNearestRoad returns the centre of the walkable road or sidewalk tile
// closest to pos. It reports false when no such tile centre lies within
// maxDistance.
func (s *Snapper) FindNearestRoad(pos geo.Point2D, maxDistance float64) (geo.Point2D, bool) {
	c, ok := s.nearestRoadCell(pos, maxDistance)
	if !ok {
		return geo.Point2D{}, false
	}
	return s.grid.TileToWorld(c), true
}

// nearestRoadCell scans square rings outward from the tile under pos. A
// tile on ring r lies at least r-1 tiles from pos, so the scan stops once
// that bound exceeds the best distance so far, starting from maxDistance.
func (s *Snapper) nearestRoadCell(pos geo.Point2D, maxDistance float64) (geo.Cell, bool) {
	g := s.grid
	origin := g.WorldToTile(pos)
	limit := max(g.Cols, g.Rows) + abs(origin.Col) + abs(origin.Row)
	best, bestD, found := geo.Cell{}, maxDistance, false
	for radius := 0; radius <= limit; radius++ {
		if float64(radius-1)*g.TileSize > bestD {
			break
		}
		for _, c := range geo.Ring(origin, radius) {
			t := g.AtCell(c)
			if !t.Walkable || !t.Type.IsRoadLike() {
				continue
			}
			if d := g.TileToWorld(c).Distance(pos); d < bestD || (!found && d == bestD) {
				best, bestD, found = c, d, true
			}
		}
	}
	return best, found
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// isParcel reports whether a tile can host a POI building next to a road.
func isParcel(t tile.Tile) bool {
	if !t.Walkable {
		return true
	}
	switch t.Type {
	case tile.Grass, tile.Park:
		return true
	case tile.Road, tile.Sidewalk, tile.Building, tile.Plaza:
		return false
	}
	return false
}

// SnapToRoadAdjacentParcel finds the nearest road tile within maxDistance
// and returns the centre of the adjacent parcel closest to pos. Parcels
// farther than maxDistance from pos do not qualify; without a qualifying
// parcel the road tile itself is returned.
func (s *Snapper) SnapToRoadAdjacentParcel(pos geo.Point2D, maxDistance float64) (geo.Point2D, bool) {
	road, ok := s.nearestRoadCell(pos, maxDistance)
	if !ok {
		return geo.Point2D{}, false
	}
	g := s.grid
	best, bestD := g.TileToWorld(road), math.Inf(1)
	for _, d := range tile.Neighbors8 {
		c := geo.Cell{Col: road.Col + d.Col, Row: road.Row + d.Row}
		if !g.InBounds(c.Col, c.Row) || !isParcel(g.AtCell(c)) {
			continue
		}
		p := g.TileToWorld(c)
		if dist := p.Distance(pos); dist <= maxDistance && dist < bestD {
			best, bestD = p, dist
		}
	}
	return best, true
}

// EnsureAccessibility forces the tile under pos and its 4-neighbourhood
// walkable. It returns false when pos lies off the grid.
func (s *Snapper) EnsureAccessibility(pos geo.Point2D) bool {
	return s.grid.OpenAround(s.grid.WorldToTile(pos))
}

// compass holds unit vectors clockwise from north.
var compass = func() [8]geo.Point2D {
	var dirs [8]geo.Point2D
	for i, d := range tile.Neighbors8 {
		dirs[i] = geo.Pt(float64(d.Col), float64(d.Row)).Normalize()
	}
	return dirs
}()

// OffsetToAvoidOverlap nudges pos away from building tiles closer than
// minClearance. Each attempt moves half a tile further out along the eight
// compass directions; the first clear candidate wins. When every attempt
// overlaps, the candidate touching the fewest buildings is returned.
func (s *Snapper) OffsetToAvoidOverlap(pos geo.Point2D, minClearance float64) geo.Point2D {
	best, bestN := pos, s.Overlaps(pos, minClearance)
	if bestN == 0 {
		return pos
	}
	world := geo.Rect{Max: geo.Pt(
		float64(s.grid.Cols)*s.grid.TileSize-edgeEpsilon,
		float64(s.grid.Rows)*s.grid.TileSize-edgeEpsilon,
	)}
	for attempt := 1; attempt <= offsetAttempts; attempt++ {
		step := float64(attempt) * s.grid.TileSize / 2
		for _, dir := range compass {
			cand := world.Clamp(pos.Add(dir.Scale(step)))
			n := s.Overlaps(cand, minClearance)
			if n == 0 {
				return cand
			}
			if n < bestN {
				best, bestN = cand, n
			}
		}
	}
	return best
}

// Overlaps counts non-walkable building tiles whose area comes within
// clearance of pos.
func (s *Snapper) Overlaps(pos geo.Point2D, clearance float64) int {
	g := s.grid
	lo := g.WorldToTile(geo.Pt(pos.X-clearance, pos.Y-clearance))
	hi := g.WorldToTile(geo.Pt(pos.X+clearance, pos.Y+clearance))
	n := 0
	for row := max(lo.Row, 0); row <= min(hi.Row, g.Rows-1); row++ {
		for col := max(lo.Col, 0); col <= min(hi.Col, g.Cols-1); col++ {
			t := g.At(col, row)
			if t.Walkable || t.Type != tile.Building {
				continue
			}
			if distToTile(pos, col, row, g.TileSize) < clearance {
				n++
			}
		}
	}
	return n
}

// distToTile returns the distance from p to the nearest point of a tile.
func distToTile(p geo.Point2D, col, row int, size float64) float64 {
	minX, minY := float64(col)*size, float64(row)*size
	dx := math.Max(math.Max(minX-p.X, 0), p.X-(minX+size))
	dy := math.Max(math.Max(minY-p.Y, 0), p.Y-(minY+size))
	return math.Hypot(dx, dy)
}
