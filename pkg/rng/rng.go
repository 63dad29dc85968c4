// Package rng provides the seeded pseudo-random source used by a single
// generation pass. A generator is never shared between passes.
package rng

import "math"

// Numerical Recipes LCG constants; the modulus is 2^32 via uint32 overflow.
const (
	multiplier uint32 = 1664525
	increment  uint32 = 1013904223
)

// LCG is a 32-bit linear congruential generator. The zero value is a valid
// generator seeded with 0.
type LCG struct {
	seed  int64
	state uint32
	draws uint64
}

// New returns a generator seeded with seed.
func New(seed int64) *LCG {
	return &LCG{seed: seed, state: uint32(seed) ^ uint32(seed>>32)}
}

// Seed returns the seed the generator was created with.
func (g *LCG) Seed() int64 { return g.seed }

// Draws returns how many values have been drawn so far.
func (g *LCG) Draws() uint64 { return g.draws }

func (g *LCG) next() uint32 {
	g.state = g.state*multiplier + increment
	g.draws++
	return g.state
}

// Float64 returns a value in [0, 1).
func (g *LCG) Float64() float64 {
	return float64(g.next()) / (math.MaxUint32 + 1.0)
}

// Range returns a value in [lo, hi).
func (g *LCG) Range(lo, hi float64) float64 {
	return lo + g.Float64()*(hi-lo)
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (g *LCG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with non-positive n")
	}
	return int(g.Float64() * float64(n))
}

// Chance returns true with probability p.
func (g *LCG) Chance(p float64) bool {
	return g.Float64() < p
}

// Weighted picks an index from weights with probability proportional to
// its weight. Non-positive weights are never picked; if every weight is
// non-positive the first index is returned.
func (g *LCG) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	x := g.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if x < w {
			return i
		}
		x -= w
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}
