// Package generate runs a full city generation pass: placement, a
// provisional layout, road snapping, the final layout and accessibility
// validation.
package generate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ChicagoDave/citygen/pkg/analytics"
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/rng"
	"github.com/ChicagoDave/citygen/pkg/routing"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// ErrInvalidConfig is the sentinel every ConfigurationError unwraps to.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigurationError rejects a generation pass before it starts.
type ConfigurationError struct {
	Report *validation.Report
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, e.Report.FirstError())
}

func (e *ConfigurationError) Unwrap() error { return ErrInvalidConfig }

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for progress and advisory findings.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// Generator runs generation passes for one configuration. Each Run owns a
// fresh random source seeded from the config, so a Generator can be reused
// and runs never share mutable state.
type Generator struct {
	cfg spec.Config
	log *slog.Logger
}

// New returns a Generator for cfg.
func New(cfg spec.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Config returns the generator's configuration.
func (g *Generator) Config() spec.Config { return g.cfg }

// Metrics summarises a generation pass.
type Metrics struct {
	RepositionedCount      int                        `json:"repositioned_count"`
	AverageSpacing         float64                    `json:"average_spacing"` // pairwise
	MinSpacing             float64                    `json:"min_spacing"`     // pairwise
	MaxSpacing             float64                    `json:"max_spacing"`     // pairwise
	NearestNeighborAvg     float64                    `json:"nearest_neighbor_avg"`
	TargetSpacing          float64                    `json:"target_spacing"`
	AccessibilityValidated bool                       `json:"accessibility_validated"`
	ReachableRatio         float64                    `json:"reachable_ratio"`
	PackingShortfall       int                        `json:"packing_shortfall"`
	QuadrantCoverage       analytics.QuadrantCoverage `json:"quadrant_coverage"`
	Repositioned           bool                       `json:"repositioned"`
}

// Result is everything a pass produces.
type Result struct {
	Config       spec.Config
	POIs         []spec.POI      // input records carrying their final positions
	Positions    []spec.Position // final positions of placed POIs, input order
	Unplaced     []string        // POIs left without any position
	Provisional  *layout.Layout
	Layout       *layout.Layout
	Reachability routing.Reachability
	Report       *validation.Report
	Metrics      Metrics
}

// Pathfinder returns a pathfinder over the final layout.
func (r *Result) Pathfinder() *routing.Pathfinder {
	return routing.NewPathfinder(r.Layout.Grid, r.Config.GoalSearchRadius)
}

// Run executes one generation pass over pois. Only an invalid
// configuration returns an error; every other problem is recorded in the
// result's report.
func (g *Generator) Run(pois []spec.POI) (*Result, error) {
	cfg := g.cfg
	report := validation.ValidateConfig(cfg, pois)
	if !report.Valid {
		return nil, &ConfigurationError{Report: report}
	}
	r := rng.New(cfg.RNGSeed)

	res := &Result{Config: cfg, Report: report}
	positions, placed := g.place(pois, r, res)

	// Phase one: a provisional layout supplies the road network to snap to.
	provisional, _ := layout.Generate(toPlaced(pois, positions, placed), cfg, r)
	res.Provisional = provisional
	positions = g.SnapPOIs(provisional, pois, positions, placed)

	// Phase two: the final layout is rebuilt from the snapped positions.
	final, layoutReport := layout.Generate(toPlaced(pois, positions, placed), cfg, r)
	res.Layout = final
	report.Merge(layoutReport)

	targets := make([]routing.Target, 0, len(pois))
	for i, p := range pois {
		if placed[i] {
			targets = append(targets, routing.Target{ID: p.ID, Position: positions[i]})
		}
	}
	res.Reachability = routing.ValidateReachability(res.Pathfinder(), targets, cfg.AccessibilityThreshold)
	if !res.Reachability.Validated {
		g.log.Warn("accessibility below threshold",
			"reachable", res.Reachability.Reachable,
			"total", res.Reachability.Total,
			"threshold", cfg.AccessibilityThreshold)
		report.AddWarning(validation.Result{
			Level: validation.LevelAccessibility,
			Message: fmt.Sprintf("only %d of %d POIs reachable from the centre",
				res.Reachability.Reachable, res.Reachability.Total),
			ActualValue: res.Reachability.Ratio,
			Expected:    fmt.Sprintf(">= %.2f", cfg.AccessibilityThreshold),
			Suggestions: []string{"increase max_snap_distance", "lower max_fill_density"},
		})
	}
	for _, id := range res.Reachability.Unreachable {
		report.AddWarning(validation.Result{
			Level:   validation.LevelAccessibility,
			Message: fmt.Sprintf("POI %s is unreachable", id),
			POI:     id,
		})
	}

	spots := make([]geo.Point2D, 0, len(pois))
	for i, p := range pois {
		if !placed[i] {
			res.Unplaced = append(res.Unplaced, p.ID)
			res.POIs = append(res.POIs, p)
			continue
		}
		res.POIs = append(res.POIs, p.WithPosition(positions[i]))
		res.Positions = append(res.Positions, spec.Position{ID: p.ID, X: positions[i].X, Y: positions[i].Y})
		spots = append(spots, positions[i])
	}

	pairs := analytics.PairwiseStats(spots)
	res.Metrics.AverageSpacing = pairs.Avg
	res.Metrics.MinSpacing = pairs.Min
	res.Metrics.MaxSpacing = pairs.Max
	res.Metrics.NearestNeighborAvg = analytics.SpacingStats(spots, cfg.MinDistanceBetweenPOIs).Avg
	res.Metrics.TargetSpacing = cfg.MinDistanceBetweenPOIs
	res.Metrics.AccessibilityValidated = res.Reachability.Validated
	res.Metrics.ReachableRatio = res.Reachability.Ratio

	g.log.Info("generation complete",
		"pois", len(pois),
		"repositioned", res.Metrics.RepositionedCount,
		"roads", len(final.Roads),
		"reachable_ratio", res.Reachability.Ratio,
		"seed", r.Seed(),
		"draws", r.Draws())
	return res, nil
}
