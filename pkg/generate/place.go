package generate

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/ChicagoDave/citygen/pkg/analytics"
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/placement"
	"github.com/ChicagoDave/citygen/pkg/rng"
	"github.com/ChicagoDave/citygen/pkg/snap"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// NeedsRepositioning reports whether placement has to run at all. It can
// be skipped only when every POI has a prior position and the closest pair
// is already at least spacing_accept_ratio of the target spacing apart.
func NeedsRepositioning(pois []spec.POI, cfg spec.Config) bool {
	priors := make([]geo.Point2D, 0, len(pois))
	for _, p := range pois {
		pt, ok := p.Prior()
		if !ok {
			return true
		}
		priors = append(priors, pt)
	}
	stats := analytics.SpacingStats(priors, cfg.MinDistanceBetweenPOIs)
	return analytics.NeedsRepositioning(stats, cfg.SpacingAcceptRatio)
}

// place runs the spacing solver when needed and returns the working
// position of every POI. placed[i] is false for POIs left without one.
func (g *Generator) place(pois []spec.POI, r *rng.LCG, res *Result) ([]geo.Point2D, []bool) {
	cfg := g.cfg
	positions := make([]geo.Point2D, len(pois))
	placed := make([]bool, len(pois))

	if !NeedsRepositioning(pois, cfg) {
		for i, p := range pois {
			positions[i], placed[i] = p.Prior()
		}
		res.Metrics.QuadrantCoverage = analytics.Coverage(positions, cfg.Bounds(), cfg.QuadrantMinimum)
		g.log.Info("spacing already acceptable, keeping prior positions", "pois", len(pois))
		g.checkCoverage(res)
		return positions, placed
	}

	cands := make([]placement.Candidate, len(pois))
	for i, p := range pois {
		prior, ok := p.Prior()
		cands[i] = placement.Candidate{ID: p.ID, Prior: prior, HasPrior: ok}
	}
	opts := placement.OptionsFromConfig(cfg)

	attempts := 1
	if cfg.EnforceQuadrantCoverage {
		attempts += max(cfg.QuadrantRetries, 0)
	}
	var sol placement.Result
	for attempt := 1; attempt <= attempts; attempt++ {
		sol = placement.Solve(cands, opts, r)
		if sol.Coverage.Satisfied {
			break
		}
		if attempt < attempts {
			g.log.Info("quadrant coverage not met, retrying placement",
				"attempt", attempt, "coverage", sol.Coverage.String())
		}
	}

	res.Metrics.Repositioned = true
	res.Metrics.RepositionedCount = len(sol.Moved)
	res.Metrics.PackingShortfall = sol.Shortfall
	res.Metrics.QuadrantCoverage = sol.Coverage
	g.checkCoverage(res)

	if sol.Shortfall > 0 {
		g.log.Warn("packing shortfall", "requested", sol.Requested, "missing", sol.Shortfall, "mode", opts.Mode)
		res.Report.AddWarning(validation.Result{
			Level:       validation.LevelPlacement,
			Message:     fmt.Sprintf("could only place %d of %d POIs", sol.Requested-sol.Shortfall, sol.Requested),
			ConfigPath:  "config.spread_mode",
			ActualValue: sol.Shortfall,
			Suggestions: []string{"lower min_distance_between_pois", "switch spread_mode to grid"},
		})
	}
	return sol.Positions, sol.Placed
}

// checkCoverage records a quadrant-coverage shortfall. It never fails the
// pass.
func (g *Generator) checkCoverage(res *Result) {
	qc := res.Metrics.QuadrantCoverage
	if qc.Satisfied {
		return
	}
	g.log.Warn("quadrant coverage below minimum", "coverage", qc.String(), "enforced", g.cfg.EnforceQuadrantCoverage)
	res.Report.AddWarning(validation.Result{
		Level:       validation.LevelPlacement,
		Message:     "quadrant coverage below minimum: " + qc.String(),
		ConfigPath:  "config.quadrant_minimum",
		ActualValue: qc.Deficit(),
	})
}

// SnapPOIs moves every placed POI onto the parcel beside its nearest road
// in the provisional layout. POIs with no road in reach, or whose parcel
// another POI already took, are only nudged off buildings instead.
func (g *Generator) SnapPOIs(provisional *layout.Layout, pois []spec.POI, positions []geo.Point2D, placed []bool) []geo.Point2D {
	cfg := g.cfg
	s := snap.New(provisional.Grid)
	bounds := cfg.Bounds()
	taken := mapset.New[geo.Cell]()
	out := make([]geo.Point2D, len(positions))
	var fallback []string

	for i, pos := range positions {
		out[i] = pos
		if !placed[i] {
			continue
		}
		snapped, ok := s.SnapToRoadAdjacentParcel(pos, cfg.MaxSnapDistance)
		cell := provisional.Grid.WorldToTile(snapped)
		if !ok || taken.Has(cell) || !bounds.Contains(snapped) {
			snapped = bounds.Clamp(s.OffsetToAvoidOverlap(pos, cfg.TileSize/2))
			cell = provisional.Grid.WorldToTile(snapped)
			fallback = append(fallback, pois[i].ID)
		}
		taken.Put(cell)
		out[i] = snapped
	}
	if len(fallback) > 0 {
		g.log.Info("snapping fell back to offsets", "pois", strings.Join(fallback, ","))
	}
	return out
}

// toPlaced pairs POI metadata with working positions for the layout.
func toPlaced(pois []spec.POI, positions []geo.Point2D, placed []bool) []layout.Placed {
	out := make([]layout.Placed, 0, len(pois))
	for i, p := range pois {
		if !placed[i] {
			continue
		}
		out = append(out, layout.Placed{
			ID:       p.ID,
			Category: p.Category,
			District: p.District,
			Position: positions[i],
		})
	}
	return out
}
