package placement

import (
	"math"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/rng"
)

const (
	perturbationsPerIteration = 6
	spacingPenalty            = 1000.0
	spacingRewardCap          = 2.0
	edgeWeight                = 2.0
)

// Refine runs bounded local search over the movable points of pos. Each
// iteration tries a few random perturbations per movable point and keeps
// one only when it raises that point's score. The step shrinks linearly
// over the iterations. The result is a local optimum at best.
func Refine(pos []geo.Point2D, movable []bool, opts Options, r *rng.LCG) {
	iters := opts.HybridIterations
	if iters <= 0 {
		return
	}
	step0 := opts.MinDistance * 0.25
	for it := 0; it < iters; it++ {
		step := step0 * (1 - float64(it)/float64(iters))
		for i := range pos {
			if !movable[i] {
				continue
			}
			cur := pointScore(pos, i, pos[i], opts)
			for k := 0; k < perturbationsPerIteration; k++ {
				cand := pos[i].Add(geo.Pt(r.Range(-step, step), r.Range(-step, step)))
				if !opts.Bounds.Contains(cand) {
					continue
				}
				if s := pointScore(pos, i, cand, opts); s > cur {
					pos[i], cur = cand, s
				}
			}
		}
	}
}

// pointScore rates placing point i at p against every other point: a heavy
// penalty for each pair closer than MinDistance, a capped reward for wider
// spacing, and a reward for clearance from the bounds edge. Only pairs
// involving i change when i moves, so comparing pointScore values compares
// total layout scores.
func pointScore(pos []geo.Point2D, i int, p geo.Point2D, opts Options) float64 {
	minD := opts.MinDistance
	score := 0.0
	for j, q := range pos {
		if j == i {
			continue
		}
		d := p.Distance(q)
		if d < minD {
			score -= spacingPenalty * (1 + (minD-d)/minD)
			continue
		}
		score += math.Min(d/minD, spacingRewardCap)
	}
	clearance := opts.Bounds.EdgeClearance(p)
	score += edgeWeight * math.Min(clearance/(minD/2), 1)
	return score
}
