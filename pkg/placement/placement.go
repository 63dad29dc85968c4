// Package placement computes POI coordinates that respect a minimum spacing
// inside square bounds. All randomness comes from the caller's rng.LCG, so
// identical inputs always produce identical positions.
package placement

import (
	"math"
	"sort"

	"github.com/ChicagoDave/citygen/pkg/analytics"
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/rng"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// densityRadiusFactor scales MinDistance into the neighbourhood radius used
// to rank POIs for repositioning.
const densityRadiusFactor = 1.5

// Candidate is one POI as seen by the solver.
type Candidate struct {
	ID       string
	Prior    geo.Point2D
	HasPrior bool
}

// Options configures a Solve call.
type Options struct {
	MinDistance          float64
	Bounds               geo.Rect
	Mode                 spec.SpreadMode
	QuadrantMinimum      int
	JitterAmount         float64
	RepositionPercentage float64
	HybridIterations     int
	PoissonAttempts      int
}

// OptionsFromConfig maps a generation config onto solver options.
func OptionsFromConfig(c spec.Config) Options {
	o := Options{
		MinDistance:          c.MinDistanceBetweenPOIs,
		Bounds:               c.Bounds(),
		Mode:                 c.SpreadMode,
		QuadrantMinimum:      c.QuadrantMinimum,
		JitterAmount:         c.GridJitterAmount,
		RepositionPercentage: c.RepositionPercentage,
		HybridIterations:     c.HybridIterations,
		PoissonAttempts:      c.PoissonAttempts,
	}
	if o.PoissonAttempts == 0 {
		o.PoissonAttempts = 30
	}
	return o
}

// Result is the outcome of Solve. Positions and Placed are indexed like the
// input candidates.
type Result struct {
	Positions []geo.Point2D
	Placed    []bool
	Moved     []int // indices that received a new position, ascending
	Requested int   // how many candidates were selected to move
	Shortfall int   // movers the algorithm could not place
	Coverage  analytics.QuadrantCoverage
}

// PlacedPoints returns the positions of every placed candidate, in input
// order.
func (r Result) PlacedPoints() []geo.Point2D {
	pts := make([]geo.Point2D, 0, len(r.Positions))
	for i, p := range r.Positions {
		if r.Placed[i] {
			pts = append(pts, p)
		}
	}
	return pts
}

// Solve selects which candidates to move and computes their new positions
// with the configured spread mode. Candidates that are not selected keep
// their prior coordinates and act as fixed obstacles.
func Solve(cands []Candidate, opts Options, r *rng.LCG) Result {
	n := len(cands)
	res := Result{
		Positions: make([]geo.Point2D, n),
		Placed:    make([]bool, n),
	}

	movers := SelectForRepositioning(cands, opts.MinDistance, opts.RepositionPercentage)
	moving := make([]bool, n)
	for _, i := range movers {
		moving[i] = true
	}
	res.Requested = len(movers)

	var kept []geo.Point2D
	for i, c := range cands {
		if moving[i] {
			continue
		}
		res.Positions[i] = c.Prior
		res.Placed[i] = true
		kept = append(kept, c.Prior)
	}

	switch opts.Mode {
	case spec.SpreadPoisson:
		pts := Poisson(len(movers), kept, opts, r)
		for k, i := range movers {
			if k < len(pts) {
				res.Positions[i] = pts[k]
				res.Placed[i] = true
				res.Moved = append(res.Moved, i)
				continue
			}
			res.Shortfall++
			if cands[i].HasPrior {
				res.Positions[i] = cands[i].Prior
				res.Placed[i] = true
			}
		}
	case spec.SpreadHybrid:
		slots := GridJitter(n, opts, r)
		assign(&res, movers, slots, kept)
		Refine(res.Positions, moving, opts, r)
	default:
		slots := GridJitter(n, opts, r)
		assign(&res, movers, slots, kept)
	}

	res.Coverage = analytics.Coverage(res.PlacedPoints(), opts.Bounds, opts.QuadrantMinimum)
	return res
}

// SelectForRepositioning returns, in ascending order, the indices of the
// candidates that should move. Candidates without a prior always move; the
// rest of the ceil(n * pct) quota goes to the densest candidates, where
// density is the number of other priors within 1.5 * minDistance.
func SelectForRepositioning(cands []Candidate, minDistance, pct float64) []int {
	n := len(cands)
	quota := int(math.Ceil(float64(n)*pct - 1e-9))
	quota = max(0, min(quota, n))

	var must, withPrior []int
	var priors []geo.Point2D
	for i, c := range cands {
		if c.HasPrior {
			withPrior = append(withPrior, i)
			priors = append(priors, c.Prior)
		} else {
			must = append(must, i)
		}
	}

	selected := append([]int(nil), must...)
	if extra := quota - len(must); extra > 0 {
		density := analytics.LocalDensity(priors, minDistance*densityRadiusFactor)
		order := make([]int, len(withPrior))
		for k := range order {
			order[k] = k
		}
		sort.SliceStable(order, func(a, b int) bool {
			return density[order[a]] > density[order[b]]
		})
		for _, k := range order[:min(extra, len(order))] {
			selected = append(selected, withPrior[k])
		}
	}
	sort.Ints(selected)
	return selected
}

// assign hands grid slots to movers. Each mover, in index order, takes the
// free slot whose minimum distance to already occupied points is largest;
// ties go to the lower slot index.
func assign(res *Result, movers []int, slots []geo.Point2D, kept []geo.Point2D) {
	occupied := append([]geo.Point2D(nil), kept...)
	used := make([]bool, len(slots))
	for _, i := range movers {
		best, bestScore := -1, math.Inf(-1)
		for s, p := range slots {
			if used[s] {
				continue
			}
			score := math.Inf(1)
			for _, o := range occupied {
				score = math.Min(score, p.Distance(o))
			}
			if score > bestScore {
				best, bestScore = s, score
			}
		}
		if best < 0 {
			res.Shortfall++
			continue
		}
		used[best] = true
		occupied = append(occupied, slots[best])
		res.Positions[i] = slots[best]
		res.Placed[i] = true
		res.Moved = append(res.Moved, i)
	}
}
