package geo

import (
	"math"
	"testing"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func chebyshev(a, b Cell) int {
	return max(abs(a.Col-b.Col), abs(a.Row-b.Row))
}

// --- Point2D tests ---

func TestPointDistance(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(3, 4)
	if !approxEqual(a.Distance(b), 5.0, tolerance) {
		t.Errorf("expected distance 5.0, got %f", a.Distance(b))
	}
}

func TestPointPolar(t *testing.T) {
	p := Pt(10, 10).Polar(5, math.Pi/2)
	if !approxEqual(p.X, 10, tolerance) || !approxEqual(p.Y, 15, tolerance) {
		t.Errorf("expected (10,15), got (%f,%f)", p.X, p.Y)
	}
}

func TestPointNormalize(t *testing.T) {
	p := Pt(3, 4)
	n := p.Normalize()
	if !approxEqual(n.Length(), 1.0, tolerance) {
		t.Errorf("expected unit length, got %f", n.Length())
	}
	if z := Origin.Normalize(); z != Origin {
		t.Errorf("expected zero vector, got %v", z)
	}
}

func TestPointLerp(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(10, 10)
	mid := a.Lerp(b, 0.5)
	if !approxEqual(mid.X, 5, tolerance) || !approxEqual(mid.Y, 5, tolerance) {
		t.Errorf("expected (5,5), got (%f,%f)", mid.X, mid.Y)
	}
}

func TestCentroid(t *testing.T) {
	c := Centroid([]Point2D{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)})
	if !approxEqual(c.X, 5, tolerance) || !approxEqual(c.Y, 5, tolerance) {
		t.Errorf("expected centroid (5,5), got (%f,%f)", c.X, c.Y)
	}
	if Centroid(nil) != Origin {
		t.Error("empty centroid should be the origin")
	}
}

// --- Rect tests ---

func TestRectContainsAndClamp(t *testing.T) {
	r := Square(100)
	if !r.Contains(Pt(100, 100)) {
		t.Error("max corner should be contained")
	}
	if r.Contains(Pt(-0.1, 50)) {
		t.Error("(-0.1,50) should be outside")
	}
	c := r.Clamp(Pt(150, -20))
	if c != Pt(100, 0) {
		t.Errorf("clamp = %v, want (100,0)", c)
	}
}

func TestRectEdgeClearance(t *testing.T) {
	r := Square(100)
	if got := r.EdgeClearance(Pt(10, 50)); !approxEqual(got, 10, tolerance) {
		t.Errorf("clearance = %f, want 10", got)
	}
	if got := r.EdgeClearance(Pt(-5, 50)); got >= 0 {
		t.Errorf("outside point clearance = %f, want negative", got)
	}
}

func TestQuadrantOf(t *testing.T) {
	r := Square(100)
	cases := []struct {
		p    Point2D
		want Quadrant
	}{
		{Pt(10, 10), QuadrantNW},
		{Pt(90, 10), QuadrantNE},
		{Pt(10, 90), QuadrantSW},
		{Pt(90, 90), QuadrantSE},
		{Pt(50, 50), QuadrantSE},
	}
	for _, c := range cases {
		if got := r.QuadrantOf(c.p); got != c.want {
			t.Errorf("QuadrantOf(%v) = %s, want %s", c.p, got, c.want)
		}
	}
}

// --- Line tests ---

func TestLineHorizontal(t *testing.T) {
	cells := Line(Cell{0, 2}, Cell{4, 2})
	if len(cells) != 5 {
		t.Fatalf("expected 5 cells, got %d", len(cells))
	}
	for i, c := range cells {
		if c.Col != i || c.Row != 2 {
			t.Errorf("cell %d = %v, want (%d,2)", i, c, i)
		}
	}
}

func TestLineDiagonalEndpoints(t *testing.T) {
	cells := Line(Cell{5, 5}, Cell{1, 2})
	if cells[0] != (Cell{5, 5}) {
		t.Errorf("first cell = %v, want (5,5)", cells[0])
	}
	if last := cells[len(cells)-1]; last != (Cell{1, 2}) {
		t.Errorf("last cell = %v, want (1,2)", last)
	}
	for i := 1; i < len(cells); i++ {
		if chebyshev(cells[i], cells[i-1]) != 1 {
			t.Errorf("cells %v and %v are not adjacent", cells[i-1], cells[i])
		}
	}
}

func TestRing(t *testing.T) {
	if got := Ring(Cell{3, 3}, 0); len(got) != 1 || got[0] != (Cell{3, 3}) {
		t.Errorf("ring 0 = %v, want [(3,3)]", got)
	}
	ring := Ring(Cell{3, 3}, 2)
	if len(ring) != 16 {
		t.Fatalf("ring 2 has %d cells, want 16", len(ring))
	}
	seen := map[Cell]bool{}
	for _, c := range ring {
		if chebyshev(c, Cell{3, 3}) != 2 {
			t.Errorf("cell %v not on ring 2", c)
		}
		if seen[c] {
			t.Errorf("duplicate cell %v", c)
		}
		seen[c] = true
	}
}

func TestManhattan(t *testing.T) {
	if d := (Cell{1, 1}).Manhattan(Cell{4, -3}); d != 7 {
		t.Errorf("manhattan = %d, want 7", d)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    Point2D
		wantErr bool
	}{
		{"10,20", Pt(10, 20), false},
		{" 1.5 , -2 ", Pt(1.5, -2), false},
		{"10", Point2D{}, true},
		{"a,2", Point2D{}, true},
		{"1,b", Point2D{}, true},
	}
	for _, tt := range tests {
		got, err := ParsePoint(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePoint(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if s := Pt(1.5, 20).String(); s != "1.5,20" {
		t.Errorf("String() = %q", s)
	}
}
