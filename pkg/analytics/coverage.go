package analytics

import (
	"fmt"
	"strings"

	"github.com/ChicagoDave/citygen/pkg/geo"
)

// QuadrantCoverage counts points per quadrant of the bounds.
type QuadrantCoverage struct {
	Counts    [4]int `json:"counts"` // indexed by geo.Quadrant: NW, NE, SW, SE
	Minimum   int    `json:"minimum"`
	Satisfied bool   `json:"satisfied"`
}

// Coverage counts pts per quadrant of bounds and checks every quadrant
// holds at least minimum points. Points outside bounds are ignored.
func Coverage(pts []geo.Point2D, bounds geo.Rect, minimum int) QuadrantCoverage {
	qc := QuadrantCoverage{Minimum: minimum}
	for _, p := range pts {
		if !bounds.Contains(p) {
			continue
		}
		qc.Counts[bounds.QuadrantOf(p)]++
	}
	qc.Satisfied = true
	for _, n := range qc.Counts {
		if n < minimum {
			qc.Satisfied = false
		}
	}
	return qc
}

// Deficit returns how many points are missing across all quadrants.
func (qc QuadrantCoverage) Deficit() int {
	missing := 0
	for _, n := range qc.Counts {
		if n < qc.Minimum {
			missing += qc.Minimum - n
		}
	}
	return missing
}

func (qc QuadrantCoverage) String() string {
	parts := make([]string, 4)
	for q := geo.QuadrantNW; q <= geo.QuadrantSE; q++ {
		parts[q] = fmt.Sprintf("%s=%d", q, qc.Counts[q])
	}
	return fmt.Sprintf("%s (min %d)", strings.Join(parts, " "), qc.Minimum)
}
