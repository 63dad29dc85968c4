package validation

import (
	"fmt"
	"math"
	"sort"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

// maxGridTiles bounds the tile grid side so a misconfigured tile size
// cannot allocate an enormous grid.
const maxGridTiles = 2048

// ValidateConfig performs schema validation on a generation config and its
// POI list. Any error here is a configuration error that halts generation.
func ValidateConfig(c spec.Config, pois []spec.POI) *Report {
	r := NewReport()

	validateSpacing(c, r)
	validateBounds(c, r)
	validateMode(c, r)
	validateFractions(c, r)
	validateLayoutKnobs(c, r)
	validatePOIs(pois, r)
	validatePacking(c, len(pois), r)

	return r
}

func validateSpacing(c spec.Config, r *Report) {
	if c.MinDistanceBetweenPOIs <= 0 || math.IsNaN(c.MinDistanceBetweenPOIs) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "min_distance_between_pois must be greater than 0",
			ConfigPath:  "config.min_distance_between_pois",
			ActualValue: c.MinDistanceBetweenPOIs,
			Expected:    "> 0",
		})
	}
	if c.GridJitterAmount < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "grid_jitter_amount must be non-negative",
			ConfigPath:  "config.grid_jitter_amount",
			ActualValue: c.GridJitterAmount,
			Expected:    ">= 0",
		})
	}
	if c.MaxSnapDistance < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "max_snap_distance must be non-negative",
			ConfigPath:  "config.max_snap_distance",
			ActualValue: c.MaxSnapDistance,
			Expected:    ">= 0",
		})
	}
}

func validateBounds(c spec.Config, r *Report) {
	if c.BoundsSize <= 0 || math.IsNaN(c.BoundsSize) || math.IsInf(c.BoundsSize, 0) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "bounds_size must describe a non-empty area",
			ConfigPath:  "config.bounds_size",
			ActualValue: c.BoundsSize,
			Expected:    "> 0",
		})
		return
	}
	if c.TileSize <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "tile_size must be greater than 0",
			ConfigPath:  "config.tile_size",
			ActualValue: c.TileSize,
			Expected:    "> 0",
		})
		return
	}
	if tiles := c.BoundsSize / c.TileSize; tiles > maxGridTiles {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("bounds_size / tile_size gives %.0f tiles per side (max %d)", tiles, maxGridTiles),
			ConfigPath:  "config.tile_size",
			ActualValue: c.TileSize,
			Suggestions: []string{"Increase tile_size or reduce bounds_size"},
		})
	}
	if c.MinDistanceBetweenPOIs > c.BoundsSize {
		r.AddWarning(Result{
			Level:        LevelSchema,
			Message:      "min_distance_between_pois exceeds bounds_size; at most one POI can satisfy it",
			ConfigPath:   "config.min_distance_between_pois",
			ActualValue:  c.MinDistanceBetweenPOIs,
			ConflictWith: "config.bounds_size",
		})
	}
}

func validateMode(c spec.Config, r *Report) {
	if !c.SpreadMode.Valid() {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown spread_mode %q", c.SpreadMode),
			ConfigPath:  "config.spread_mode",
			ActualValue: string(c.SpreadMode),
			Expected:    "grid | poisson | hybrid",
		})
	}
}

func validateFractions(c spec.Config, r *Report) {
	fractions := []struct {
		path  string
		value float64
	}{
		{"config.reposition_percentage", c.RepositionPercentage},
		{"config.max_fill_density", c.MaxFillDensity},
		{"config.accessibility_threshold", c.AccessibilityThreshold},
		{"config.spacing_accept_ratio", c.SpacingAcceptRatio},
	}
	for _, f := range fractions {
		if f.value < 0 || f.value > 1 || math.IsNaN(f.value) {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must be within [0, 1]", f.path),
				ConfigPath:  f.path,
				ActualValue: f.value,
				Expected:    "0..1",
			})
		}
	}
}

func validateLayoutKnobs(c spec.Config, r *Report) {
	if c.QuadrantMinimum < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "quadrant_minimum must be non-negative",
			ConfigPath:  "config.quadrant_minimum",
			ActualValue: c.QuadrantMinimum,
			Expected:    ">= 0",
		})
	}
	if c.LocalRoadSpacingTiles < 4 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "local_road_spacing_tiles must be at least 4",
			ConfigPath:  "config.local_road_spacing_tiles",
			ActualValue: c.LocalRoadSpacingTiles,
			Expected:    ">= 4",
		})
	}
	counts := []struct {
		path  string
		value int
	}{
		{"config.hybrid_iterations", c.HybridIterations},
		{"config.poisson_attempts", c.PoissonAttempts},
		{"config.goal_search_radius", c.GoalSearchRadius},
		{"config.quadrant_retries", c.QuadrantRetries},
	}
	for _, n := range counts {
		if n.value < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must be non-negative", n.path),
				ConfigPath:  n.path,
				ActualValue: n.value,
				Expected:    ">= 0",
			})
		}
	}
	if c.DistrictRadiusPerPOI <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "district_radius_per_poi must be greater than 0",
			ConfigPath:  "config.district_radius_per_poi",
			ActualValue: c.DistrictRadiusPerPOI,
			Expected:    "> 0",
		})
	}
	names := make([]string, 0, len(c.DistrictThemes))
	for name := range c.DistrictThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		theme := c.DistrictThemes[name]
		switch theme {
		case "commercial", "cultural", "upscale", "casual", "mixed":
		default:
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("district %q has unknown theme %q", name, theme),
				ConfigPath:  "config.district_themes." + name,
				ActualValue: theme,
				Expected:    "commercial | cultural | upscale | casual | mixed",
			})
		}
	}
}

func validatePOIs(pois []spec.POI, r *Report) {
	seen := make(map[string]int, len(pois))
	for i, p := range pois {
		if p.ID == "" {
			r.AddError(Result{
				Level:      LevelSchema,
				Message:    fmt.Sprintf("pois[%d] has an empty id", i),
				ConfigPath: fmt.Sprintf("pois[%d].id", i),
			})
			continue
		}
		if prev, ok := seen[p.ID]; ok {
			r.AddError(Result{
				Level:        LevelSchema,
				Message:      fmt.Sprintf("duplicate poi id %q", p.ID),
				ConfigPath:   fmt.Sprintf("pois[%d].id", i),
				POI:          p.ID,
				ConflictWith: fmt.Sprintf("pois[%d].id", prev),
			})
			continue
		}
		seen[p.ID] = i
		if (p.X == nil) != (p.Y == nil) {
			r.AddWarning(Result{
				Level:      LevelSchema,
				Message:    fmt.Sprintf("poi %q has only one prior coordinate; it will be placed from scratch", p.ID),
				ConfigPath: fmt.Sprintf("pois[%d]", i),
				POI:        p.ID,
			})
		}
	}
}

// validatePacking warns when the bounds cannot hold every POI at the
// requested spacing. Hexagonal packing of discs of diameter d in area A
// holds roughly A / (d^2 * sqrt(3)/2) points.
func validatePacking(c spec.Config, n int, r *Report) {
	if n == 0 || r.HasError("config.min_distance_between_pois") || r.HasError("config.bounds_size") {
		return
	}
	d := c.MinDistanceBetweenPOIs
	capacity := int(math.Floor(c.BoundsSize*c.BoundsSize/(d*d*math.Sqrt(3)/2))) + 1
	if n > capacity {
		r.AddWarning(Result{
			Level:       LevelPlacement,
			Message:     fmt.Sprintf("%d POIs exceed the estimated packing capacity %d at spacing %.0f", n, capacity, d),
			ConfigPath:  "config.min_distance_between_pois",
			ActualValue: n,
			Expected:    fmt.Sprintf("<= %d", capacity),
			Suggestions: []string{
				"Reduce min_distance_between_pois",
				"Increase bounds_size",
				"Accept a packing shortfall under spread_mode poisson",
			},
		})
	}
}
