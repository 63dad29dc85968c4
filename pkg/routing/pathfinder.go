// Package routing finds walking paths across a rasterized layout.
package routing

import (
	"container/heap"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/tile"
)

// Path is the result of a path query. A failed query is a normal outcome:
// Found is false and Points is empty.
type Path struct {
	Points   []geo.Point2D `json:"points"`
	Found    bool          `json:"found"`
	Distance float64       `json:"distance"` // world units
	Cost     int           `json:"cost"`     // tile steps
}

// Pathfinder runs 4-directional A* over the walkability of a tile grid.
// It only reads the grid.
type Pathfinder struct {
	grid             *tile.Grid
	goalSearchRadius int
}

// NewPathfinder returns a Pathfinder over g. A non-walkable goal is
// replaced by the nearest walkable tile within goalSearchRadius tiles.
func NewPathfinder(g *tile.Grid, goalSearchRadius int) *Pathfinder {
	return &Pathfinder{grid: g, goalSearchRadius: goalSearchRadius}
}

type pathNode struct {
	cell   geo.Cell
	g, h   int
	seq    int // insertion order, breaks f ties
	parent *pathNode
	index  int // heap index
}

type openList []*pathNode

func (ol openList) Len() int { return len(ol) }
func (ol openList) Less(i, j int) bool {
	fi, fj := ol[i].g+ol[i].h, ol[j].g+ol[j].h
	if fi != fj {
		return fi < fj
	}
	return ol[i].seq < ol[j].seq
}
func (ol openList) Swap(i, j int) { ol[i], ol[j] = ol[j], ol[i]; ol[i].index = i; ol[j].index = j }
func (ol *openList) Push(x any)   { n := x.(*pathNode); n.index = len(*ol); *ol = append(*ol, n) }
func (ol *openList) Pop() any {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

// FindPath returns the shortest walkable path between the tiles under
// start and goal. Neighbours expand in N, E, S, W order with unit cost and
// a Manhattan heuristic, so paths are optimal and reproducible.
func (pf *Pathfinder) FindPath(start, goal geo.Point2D) Path {
	g := pf.grid
	sc, gc := g.WorldToTile(start), g.WorldToTile(goal)
	if !g.InBounds(sc.Col, sc.Row) || !g.InBounds(gc.Col, gc.Row) {
		return Path{}
	}
	if !g.Walkable(gc.Col, gc.Row) {
		alt, ok := pf.nearestWalkable(gc, pf.goalSearchRadius)
		if !ok {
			return Path{}
		}
		gc = alt
	}
	if sc == gc {
		return Path{Points: []geo.Point2D{g.TileToWorld(sc)}, Found: true}
	}

	idx := func(c geo.Cell) int { return c.Row*g.Cols + c.Col }
	best := make(map[int]int)
	closed := make(map[int]bool)

	seq := 0
	startNode := &pathNode{cell: sc, h: sc.Manhattan(gc)}
	ol := &openList{startNode}
	heap.Init(ol)
	best[idx(sc)] = 0

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.cell == gc {
			return pf.buildPath(cur)
		}
		ci := idx(cur.cell)
		if closed[ci] {
			continue
		}
		closed[ci] = true

		for _, d := range tile.Neighbors4 {
			next := geo.Cell{Col: cur.cell.Col + d.Col, Row: cur.cell.Row + d.Row}
			if !g.Walkable(next.Col, next.Row) {
				continue
			}
			ni := idx(next)
			if closed[ni] {
				continue
			}
			ng := cur.g + 1
			if prev, ok := best[ni]; ok && prev <= ng {
				continue
			}
			best[ni] = ng
			seq++
			heap.Push(ol, &pathNode{cell: next, g: ng, h: next.Manhattan(gc), seq: seq, parent: cur})
		}
	}
	return Path{}
}

func (pf *Pathfinder) buildPath(end *pathNode) Path {
	var cells []geo.Cell
	for n := end; n != nil; n = n.parent {
		cells = append(cells, n.cell)
	}
	pts := make([]geo.Point2D, len(cells))
	for i, c := range cells {
		pts[len(cells)-1-i] = pf.grid.TileToWorld(c)
	}
	return Path{
		Points:   pts,
		Found:    true,
		Cost:     end.g,
		Distance: float64(end.g) * pf.grid.TileSize,
	}
}

// nearestWalkable searches rings around c for the walkable tile closest to
// c, up to radius tiles away.
func (pf *Pathfinder) nearestWalkable(c geo.Cell, radius int) (geo.Cell, bool) {
	for r := 1; r <= radius; r++ {
		found, bestD := geo.Cell{}, -1
		for _, cand := range geo.Ring(c, r) {
			if !pf.grid.Walkable(cand.Col, cand.Row) {
				continue
			}
			if d := cand.Manhattan(c); bestD < 0 || d < bestD {
				found, bestD = cand, d
			}
		}
		if bestD >= 0 {
			return found, true
		}
	}
	return geo.Cell{}, false
}

// HasLineOfSight reports whether every tile on the Bresenham line between
// a and b is walkable.
func (pf *Pathfinder) HasLineOfSight(a, b geo.Point2D) bool {
	for _, c := range geo.Line(pf.grid.WorldToTile(a), pf.grid.WorldToTile(b)) {
		if !pf.grid.Walkable(c.Col, c.Row) {
			return false
		}
	}
	return true
}

// WalkablePositionsInRadius returns the centres of walkable tiles within
// radius of center, in row-major order.
func (pf *Pathfinder) WalkablePositionsInRadius(center geo.Point2D, radius float64) []geo.Point2D {
	g := pf.grid
	lo := g.WorldToTile(geo.Pt(center.X-radius, center.Y-radius))
	hi := g.WorldToTile(geo.Pt(center.X+radius, center.Y+radius))
	var out []geo.Point2D
	for row := max(lo.Row, 0); row <= min(hi.Row, g.Rows-1); row++ {
		for col := max(lo.Col, 0); col <= min(hi.Col, g.Cols-1); col++ {
			if !g.Walkable(col, row) {
				continue
			}
			p := g.TileToWorld(geo.Cell{Col: col, Row: row})
			if p.Distance(center) <= radius {
				out = append(out, p)
			}
		}
	}
	return out
}

// CentralWalkable returns the walkable tile nearest the grid centre.
func (pf *Pathfinder) CentralWalkable() (geo.Point2D, bool) {
	g := pf.grid
	mid := g.Center()
	if g.Walkable(mid.Col, mid.Row) {
		return g.TileToWorld(mid), true
	}
	c, ok := pf.nearestWalkable(mid, max(g.Cols, g.Rows))
	if !ok {
		return geo.Point2D{}, false
	}
	return g.TileToWorld(c), true
}
