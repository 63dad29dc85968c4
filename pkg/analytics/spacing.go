// Package analytics computes spacing and coverage metrics over POI positions.
package analytics

import (
	"math"

	"github.com/ChicagoDave/citygen/pkg/geo"
)

// Spacing summarises nearest-neighbour distances of a point set against a
// target spacing.
type Spacing struct {
	Count       int     `json:"count"`
	Target      float64 `json:"target"`
	Min         float64 `json:"min"`
	Avg         float64 `json:"avg"`
	Max         float64 `json:"max"`
	MetFraction float64 `json:"met_fraction"` // share of points whose nearest neighbour is >= Target
}

// NearestNeighborDistances returns, for each point, the distance to its
// closest other point. A single point reports +Inf.
func NearestNeighborDistances(pts []geo.Point2D) []float64 {
	out := make([]float64, len(pts))
	for i := range pts {
		best := math.Inf(1)
		for j := range pts {
			if i == j {
				continue
			}
			if d := pts[i].Distance(pts[j]); d < best {
				best = d
			}
		}
		out[i] = best
	}
	return out
}

// SpacingStats computes nearest-neighbour spacing statistics. With fewer
// than two points every statistic is zero and MetFraction is 1.
func SpacingStats(pts []geo.Point2D, target float64) Spacing {
	s := Spacing{Count: len(pts), Target: target}
	if len(pts) < 2 {
		s.MetFraction = 1
		return s
	}

	nn := NearestNeighborDistances(pts)
	s.Min = math.Inf(1)
	met := 0
	sum := 0.0
	for _, d := range nn {
		sum += d
		s.Min = math.Min(s.Min, d)
		s.Max = math.Max(s.Max, d)
		if d >= target {
			met++
		}
	}
	s.Avg = sum / float64(len(nn))
	s.MetFraction = float64(met) / float64(len(nn))
	return s
}

// NeedsRepositioning reports whether spacing falls short of acceptRatio of
// the target. Repositioning is skipped when even the closest pair of points
// is at least acceptRatio x Target apart. Fewer than two points never need
// it.
func NeedsRepositioning(s Spacing, acceptRatio float64) bool {
	if s.Count < 2 {
		return false
	}
	return s.Min < acceptRatio*s.Target
}

// Pairwise summarises the distances between every pair of points.
type Pairwise struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

// PairwiseStats computes min, mean and max over all point pairs. With fewer
// than two points every statistic is zero.
func PairwiseStats(pts []geo.Point2D) Pairwise {
	var p Pairwise
	if len(pts) < 2 {
		return p
	}
	p.Min = math.Inf(1)
	sum, n := 0.0, 0
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			d := pts[i].Distance(pts[j])
			p.Min = math.Min(p.Min, d)
			p.Max = math.Max(p.Max, d)
			sum += d
			n++
		}
	}
	p.Avg = sum / float64(n)
	return p
}

// LocalDensity counts, for each point, the other points within radius.
func LocalDensity(pts []geo.Point2D, radius float64) []int {
	out := make([]int, len(pts))
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if pts[i].Distance(pts[j]) < radius {
				out[i]++
				out[j]++
			}
		}
	}
	return out
}
