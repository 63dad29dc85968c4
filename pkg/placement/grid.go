package placement

import (
	"math"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/rng"
)

// GridJitter partitions the bounds into ceil(sqrt(n)) columns and
// ceil(n/cols) rows and places one point per cell, in row-major order, at
// the cell centre plus a random offset. The offset per axis is bounded by
// min((cell - minDistance)/2, jitter), so jitter alone never pulls two
// neighbouring points closer than minDistance.
func GridJitter(n int, opts Options, r *rng.LCG) []geo.Point2D {
	if n <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))
	b := opts.Bounds
	cellW := b.Width() / float64(cols)
	cellH := b.Height() / float64(rows)

	maxJitter := math.Min((math.Min(cellW, cellH)-opts.MinDistance)/2, opts.JitterAmount)
	if maxJitter < 0 {
		maxJitter = 0
	}

	pts := make([]geo.Point2D, n)
	for i := range pts {
		c, row := i%cols, i/cols
		center := geo.Pt(
			b.Min.X+(float64(c)+0.5)*cellW,
			b.Min.Y+(float64(row)+0.5)*cellH,
		)
		pts[i] = center.Add(geo.Pt(
			r.Range(-maxJitter, maxJitter),
			r.Range(-maxJitter, maxJitter),
		))
	}
	return pts
}
