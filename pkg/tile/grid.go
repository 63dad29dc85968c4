package tile

import (
	"math"

	"github.com/ChicagoDave/citygen/pkg/geo"
)

// Grid is a fixed-size Cols x Rows tile matrix. Dimensions never change
// after construction.
type Grid struct {
	Cols     int
	Rows     int
	TileSize float64
	tiles    []Tile
}

// NewGrid returns a grid covering a square world of worldSize units, every
// tile initialised to walkable grass.
func NewGrid(worldSize, tileSize float64) *Grid {
	n := int(math.Ceil(worldSize / tileSize))
	if n < 1 {
		n = 1
	}
	return NewGridDims(n, n, tileSize)
}

// NewGridDims returns a cols x rows grid of walkable grass.
func NewGridDims(cols, rows int, tileSize float64) *Grid {
	g := &Grid{
		Cols:     cols,
		Rows:     rows,
		TileSize: tileSize,
		tiles:    make([]Tile, cols*rows),
	}
	for i := range g.tiles {
		g.tiles[i] = Of(Grass)
	}
	return g
}

// InBounds reports whether (col, row) lies on the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.Cols && row < g.Rows
}

// At returns the tile at (col, row). Out-of-bounds reads return a
// non-walkable building tile.
func (g *Grid) At(col, row int) Tile {
	if !g.InBounds(col, row) {
		return Tile{Type: Building}
	}
	return g.tiles[row*g.Cols+col]
}

// AtCell is At for a geo.Cell.
func (g *Grid) AtCell(c geo.Cell) Tile {
	return g.At(c.Col, c.Row)
}

// Set overwrites the tile at (col, row). Out-of-bounds writes are ignored.
func (g *Grid) Set(col, row int, t Tile) {
	if !g.InBounds(col, row) {
		return
	}
	g.tiles[row*g.Cols+col] = t
}

// Paint sets the tile type at (col, row) with its default walkability,
// preserving the district tag.
func (g *Grid) Paint(col, row int, t Type) {
	if !g.InBounds(col, row) {
		return
	}
	cur := &g.tiles[row*g.Cols+col]
	cur.Type = t
	cur.Walkable = t.Walkable()
}

// Tag sets the district of the tile at (col, row).
func (g *Grid) Tag(col, row int, district string) {
	if !g.InBounds(col, row) {
		return
	}
	g.tiles[row*g.Cols+col].District = district
}

// Walkable reports whether (col, row) is on the grid and walkable.
func (g *Grid) Walkable(col, row int) bool {
	return g.At(col, row).Walkable
}

// WorldToTile converts world coordinates to tile coordinates. The result
// may be out of bounds.
func (g *Grid) WorldToTile(p geo.Point2D) geo.Cell {
	return geo.Cell{
		Col: int(math.Floor(p.X / g.TileSize)),
		Row: int(math.Floor(p.Y / g.TileSize)),
	}
}

// TileToWorld returns the world coordinates of the tile centre.
func (g *Grid) TileToWorld(c geo.Cell) geo.Point2D {
	return geo.Pt(
		(float64(c.Col)+0.5)*g.TileSize,
		(float64(c.Row)+0.5)*g.TileSize,
	)
}

// Center returns the centre cell of the grid.
func (g *Grid) Center() geo.Cell {
	return geo.Cell{Col: g.Cols / 2, Row: g.Rows / 2}
}

// Neighbors4 lists the N, E, S, W offsets. The order is part of the
// pathfinding contract.
var Neighbors4 = [4]geo.Cell{{Col: 0, Row: -1}, {Col: 1, Row: 0}, {Col: 0, Row: 1}, {Col: -1, Row: 0}}

// Neighbors8 lists the compass offsets clockwise from N.
var Neighbors8 = [8]geo.Cell{
	{Col: 0, Row: -1}, {Col: 1, Row: -1}, {Col: 1, Row: 0}, {Col: 1, Row: 1},
	{Col: 0, Row: 1}, {Col: -1, Row: 1}, {Col: -1, Row: 0}, {Col: -1, Row: -1},
}

// OpenAround forces the tile at c and its 4-neighbourhood walkable.
// Non-walkable tiles become sidewalk; walkable tiles keep their type.
// It returns false when c itself lies off the grid.
func (g *Grid) OpenAround(c geo.Cell) bool {
	if !g.InBounds(c.Col, c.Row) {
		return false
	}
	g.Open(c.Col, c.Row)
	for _, d := range Neighbors4 {
		g.Open(c.Col+d.Col, c.Row+d.Row)
	}
	return true
}

// Open makes the tile at (col, row) walkable, turning it into sidewalk
// unless it already is walkable.
func (g *Grid) Open(col, row int) {
	if !g.InBounds(col, row) {
		return
	}
	t := &g.tiles[row*g.Cols+col]
	if t.Walkable {
		return
	}
	t.Type = Sidewalk
	t.Walkable = true
}

// Rows2D returns the grid as a row-major matrix, rows first.
func (g *Grid) Rows2D() [][]Tile {
	out := make([][]Tile, g.Rows)
	for r := 0; r < g.Rows; r++ {
		row := make([]Tile, g.Cols)
		copy(row, g.tiles[r*g.Cols:(r+1)*g.Cols])
		out[r] = row
	}
	return out
}

// Counts returns how many tiles of each type the grid holds.
func (g *Grid) Counts() map[Type]int {
	counts := make(map[Type]int, len(Types))
	for _, t := range g.tiles {
		counts[t.Type]++
	}
	return counts
}

// Equal reports whether two grids have identical dimensions and tiles.
func (g *Grid) Equal(o *Grid) bool {
	if g.Cols != o.Cols || g.Rows != o.Rows || g.TileSize != o.TileSize {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i] != o.tiles[i] {
			return false
		}
	}
	return true
}
