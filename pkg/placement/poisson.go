package placement

import (
	"math"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/rng"
)

// Poisson runs Bridson-style Poisson-disc sampling and returns up to need
// new points, each at least opts.MinDistance from every other new point and
// from every seed inside the bounds. Seeds start on the active list. When
// the bounds cannot pack need points the result is shorter; the caller
// decides what to do with the shortfall.
func Poisson(need int, seeds []geo.Point2D, opts Options, r *rng.LCG) []geo.Point2D {
	if need <= 0 {
		return nil
	}
	radius := opts.MinDistance
	attempts := opts.PoissonAttempts
	if attempts <= 0 {
		attempts = 30
	}
	b := opts.Bounds
	bg := newBackground(b, radius/math.Sqrt2)

	var active []int
	add := func(p geo.Point2D) {
		active = append(active, bg.insert(p))
	}
	for _, s := range seeds {
		if b.Contains(s) {
			add(s)
		}
	}

	var out []geo.Point2D
	if len(active) == 0 {
		p := geo.Pt(r.Range(b.Min.X, b.Max.X), r.Range(b.Min.Y, b.Max.Y))
		add(p)
		out = append(out, p)
	}

	for len(active) > 0 && len(out) < need {
		ai := r.Intn(len(active))
		base := bg.points[active[ai]]

		placed := false
		for a := 0; a < attempts; a++ {
			angle := r.Float64() * 2 * math.Pi
			dist := radius * (1 + r.Float64())
			cand := base.Polar(dist, angle)
			if !b.Contains(cand) || !bg.clear(cand, radius) {
				continue
			}
			add(cand)
			out = append(out, cand)
			placed = true
			break
		}
		if !placed {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}
	return out
}

// background is the uniform acceleration grid for neighbour lookups. Cells
// hold point indices; seeds may violate spacing among themselves, so a
// cell can hold more than one point.
type background struct {
	bounds geo.Rect
	cell   float64
	cols   int
	rows   int
	cells  [][]int
	points []geo.Point2D
}

func newBackground(b geo.Rect, cell float64) *background {
	cols := max(1, int(math.Ceil(b.Width()/cell)))
	rows := max(1, int(math.Ceil(b.Height()/cell)))
	return &background{
		bounds: b,
		cell:   cell,
		cols:   cols,
		rows:   rows,
		cells:  make([][]int, cols*rows),
	}
}

func (bg *background) locate(p geo.Point2D) (int, int) {
	cx := int((p.X - bg.bounds.Min.X) / bg.cell)
	cy := int((p.Y - bg.bounds.Min.Y) / bg.cell)
	return min(max(cx, 0), bg.cols-1), min(max(cy, 0), bg.rows-1)
}

func (bg *background) insert(p geo.Point2D) int {
	idx := len(bg.points)
	bg.points = append(bg.points, p)
	cx, cy := bg.locate(p)
	k := cy*bg.cols + cx
	bg.cells[k] = append(bg.cells[k], idx)
	return idx
}

// clear reports whether no stored point lies closer than radius to p. With
// cell = radius/sqrt(2) any such point is at most two cells away.
func (bg *background) clear(p geo.Point2D, radius float64) bool {
	cx, cy := bg.locate(p)
	for y := max(cy-2, 0); y <= min(cy+2, bg.rows-1); y++ {
		for x := max(cx-2, 0); x <= min(cx+2, bg.cols-1); x++ {
			for _, idx := range bg.cells[y*bg.cols+x] {
				if bg.points[idx].Distance(p) < radius {
					return false
				}
			}
		}
	}
	return true
}
