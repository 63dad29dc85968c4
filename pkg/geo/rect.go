package geo

import "math"

// Rect is an axis-aligned rectangle. Min is inclusive, Max is exclusive for
// containment tests.
type Rect struct {
	Min Point2D `json:"min"`
	Max Point2D `json:"max"`
}

// Square returns the rectangle [0,size) x [0,size).
func Square(size float64) Rect {
	return Rect{Max: Pt(size, size)}
}

// Width returns the extent along X.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the extent along Y.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Area returns Width * Height, or 0 for an inverted rectangle.
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Center returns the rectangle midpoint.
func (r Rect) Center() Point2D {
	return MidPoint(r.Min, r.Max)
}

// Contains reports whether p lies inside r (closed on the max edge, so that
// points exactly on the boundary of the world still count).
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Clamp returns p moved inside r.
func (r Rect) Clamp(p Point2D) Point2D {
	return Point2D{
		X: math.Min(math.Max(p.X, r.Min.X), r.Max.X),
		Y: math.Min(math.Max(p.Y, r.Min.Y), r.Max.Y),
	}
}

// EdgeClearance returns the distance from p to the nearest edge of r.
// Points outside r report a negative clearance.
func (r Rect) EdgeClearance(p Point2D) float64 {
	return math.Min(
		math.Min(p.X-r.Min.X, r.Max.X-p.X),
		math.Min(p.Y-r.Min.Y, r.Max.Y-p.Y),
	)
}

// Quadrant identifies one of the four quarters of a rectangle.
type Quadrant int

const (
	QuadrantNW Quadrant = iota
	QuadrantNE
	QuadrantSW
	QuadrantSE
)

func (q Quadrant) String() string {
	switch q {
	case QuadrantNW:
		return "NW"
	case QuadrantNE:
		return "NE"
	case QuadrantSW:
		return "SW"
	case QuadrantSE:
		return "SE"
	}
	return "?"
}

// QuadrantOf returns the quadrant of r that p falls in. Points on the centre
// lines belong to the east/south side.
func (r Rect) QuadrantOf(p Point2D) Quadrant {
	c := r.Center()
	q := QuadrantNW
	if p.X >= c.X {
		q++
	}
	if p.Y >= c.Y {
		q += 2
	}
	return q
}
