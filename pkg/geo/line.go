package geo

// Cell is an integer grid coordinate.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Manhattan returns |dc| + |dr| between a and b.
func (a Cell) Manhattan(b Cell) int {
	return abs(a.Col-b.Col) + abs(a.Row-b.Row)
}

// Line returns the cells on the segment from -> to using Bresenham's
// algorithm, both endpoints included.
func Line(from, to Cell) []Cell {
	dx := abs(to.Col - from.Col)
	dy := -abs(to.Row - from.Row)
	sx := 1
	if from.Col > to.Col {
		sx = -1
	}
	sy := 1
	if from.Row > to.Row {
		sy = -1
	}
	err := dx + dy

	cells := make([]Cell, 0, max(dx, -dy)+1)
	c, r := from.Col, from.Row
	for {
		cells = append(cells, Cell{c, r})
		if c == to.Col && r == to.Row {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			c += sx
		}
		if e2 <= dx {
			err += dx
			r += sy
		}
	}
	return cells
}

// Ring returns the cells at Chebyshev distance radius from center, in a
// fixed order: top row left to right, bottom row left to right, then the
// left and right columns top to bottom. Radius 0 yields center alone.
func Ring(center Cell, radius int) []Cell {
	if radius == 0 {
		return []Cell{center}
	}
	cells := make([]Cell, 0, 8*radius)
	for c := center.Col - radius; c <= center.Col+radius; c++ {
		cells = append(cells, Cell{c, center.Row - radius})
	}
	for c := center.Col - radius; c <= center.Col+radius; c++ {
		cells = append(cells, Cell{c, center.Row + radius})
	}
	for r := center.Row - radius + 1; r <= center.Row+radius-1; r++ {
		cells = append(cells, Cell{center.Col - radius, r})
		cells = append(cells, Cell{center.Col + radius, r})
	}
	return cells
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
