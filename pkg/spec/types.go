package spec

import "github.com/ChicagoDave/citygen/pkg/geo"

// Project is the top-level contents of a project's city.yaml.
type Project struct {
	Name   string `yaml:"name" json:"name"`
	Config Config `yaml:"config" json:"config"`
	POIs   []POI  `yaml:"pois" json:"pois"`
}

// SpreadMode selects the point placement algorithm.
type SpreadMode string

const (
	SpreadGrid    SpreadMode = "grid"
	SpreadPoisson SpreadMode = "poisson"
	SpreadHybrid  SpreadMode = "hybrid"
)

// Valid reports whether m is a known spread mode.
func (m SpreadMode) Valid() bool {
	switch m {
	case SpreadGrid, SpreadPoisson, SpreadHybrid:
		return true
	}
	return false
}

// Config holds every tunable of a generation pass.
type Config struct {
	MinDistanceBetweenPOIs float64    `yaml:"min_distance_between_pois" json:"min_distance_between_pois"`
	BoundsSize             float64    `yaml:"bounds_size" json:"bounds_size"`
	SpreadMode             SpreadMode `yaml:"spread_mode" json:"spread_mode"`
	RNGSeed                int64      `yaml:"rng_seed" json:"rng_seed"`
	QuadrantMinimum        int        `yaml:"quadrant_minimum" json:"quadrant_minimum"`
	GridJitterAmount       float64    `yaml:"grid_jitter_amount" json:"grid_jitter_amount"`
	MaxSnapDistance        float64    `yaml:"max_snap_distance" json:"max_snap_distance"`
	RepositionPercentage   float64    `yaml:"reposition_percentage" json:"reposition_percentage"`

	TileSize                float64           `yaml:"tile_size" json:"tile_size"`
	LocalRoadSpacingTiles   int               `yaml:"local_road_spacing_tiles" json:"local_road_spacing_tiles"`
	SecondaryRoadThreshold  float64           `yaml:"secondary_road_threshold" json:"secondary_road_threshold"`
	DistrictRadiusPerPOI    float64           `yaml:"district_radius_per_poi" json:"district_radius_per_poi"`
	MaxFillDensity          float64           `yaml:"max_fill_density" json:"max_fill_density"`
	AccessibilityThreshold  float64           `yaml:"accessibility_threshold" json:"accessibility_threshold"`
	SpacingAcceptRatio      float64           `yaml:"spacing_accept_ratio" json:"spacing_accept_ratio"`
	EnforceQuadrantCoverage bool              `yaml:"enforce_quadrant_coverage" json:"enforce_quadrant_coverage"`
	QuadrantRetries         int               `yaml:"quadrant_retries" json:"quadrant_retries"`
	HybridIterations        int               `yaml:"hybrid_iterations" json:"hybrid_iterations"`
	PoissonAttempts         int               `yaml:"poisson_attempts" json:"poisson_attempts"`
	GoalSearchRadius        int               `yaml:"goal_search_radius" json:"goal_search_radius"`
	DistrictThemes          map[string]string `yaml:"district_themes,omitempty" json:"district_themes,omitempty"`
}

// Bounds returns the square world rectangle.
func (c Config) Bounds() geo.Rect {
	return geo.Square(c.BoundsSize)
}

// SecondaryThreshold returns the distance below which two district centres
// get a secondary road, defaulting to half the bounds.
func (c Config) SecondaryThreshold() float64 {
	if c.SecondaryRoadThreshold > 0 {
		return c.SecondaryRoadThreshold
	}
	return c.BoundsSize / 2
}

// POI is an input point-of-interest record. X and Y carry the prior
// position when one is known.
type POI struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Category string   `yaml:"category" json:"category"`
	District string   `yaml:"district" json:"district"`
	X        *float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y        *float64 `yaml:"y,omitempty" json:"y,omitempty"`
}

// Prior returns the POI's prior position, if it has one.
func (p POI) Prior() (geo.Point2D, bool) {
	if p.X == nil || p.Y == nil {
		return geo.Point2D{}, false
	}
	return geo.Pt(*p.X, *p.Y), true
}

// WithPosition returns a copy of p carrying pos as its prior position.
func (p POI) WithPosition(pos geo.Point2D) POI {
	x, y := pos.X, pos.Y
	p.X, p.Y = &x, &y
	return p
}

// Position is one entry of a POI position snapshot.
type Position struct {
	ID string  `yaml:"id" json:"id"`
	X  float64 `yaml:"x" json:"x"`
	Y  float64 `yaml:"y" json:"y"`
}

// Point returns the position as a geo.Point2D.
func (p Position) Point() geo.Point2D {
	return geo.Pt(p.X, p.Y)
}
