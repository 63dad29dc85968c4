package layout

import (
	"fmt"

	"github.com/ChicagoDave/citygen/pkg/rng"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/tile"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// build is the mutable state threaded through the pipeline stages. Each
// stage reads what earlier stages produced and adds its own part.
type build struct {
	cfg    spec.Config
	rng    *rng.LCG
	pois   []Placed
	grid   *tile.Grid
	report *validation.Report

	districts   []District
	roads       []Road
	blocks      []CityBlock
	unreachable []string
	components  int
}

// Stage is one ordered step of layout generation.
type Stage struct {
	Name string
	Run  func(b *build)
}

// Pipeline is an ordered list of stages.
type Pipeline []Stage

// Stage names, in the order DefaultPipeline runs them.
const (
	StageDistricts     = "districts"
	StageRoads         = "roads"
	StageRasterRoads   = "raster_roads"
	StageBlocks        = "blocks"
	StageFill          = "fill"
	StageSidewalks     = "sidewalks"
	StageAccessibility = "accessibility"
)

// DefaultPipeline returns the full generation pipeline. Roads rasterize
// before blocks, blocks never overwrite road tiles, and POI accessibility
// forcing always runs last.
func DefaultPipeline() Pipeline {
	return Pipeline{
		{StageDistricts, buildDistricts},
		{StageRoads, buildRoads},
		{StageRasterRoads, rasterizeRoads},
		{StageBlocks, buildBlocks},
		{StageFill, fillOutskirts},
		{StageSidewalks, paintSidewalks},
		{StageAccessibility, forceAccessibility},
	}
}

// Until returns the prefix of p up to and including the named stage.
func (p Pipeline) Until(name string) Pipeline {
	for i, s := range p {
		if s.Name == name {
			return p[:i+1]
		}
	}
	return p
}

// Generate builds a layout around pois with the default pipeline.
func Generate(pois []Placed, cfg spec.Config, r *rng.LCG) (*Layout, *validation.Report) {
	return DefaultPipeline().Run(pois, cfg, r)
}

// Run executes the stages in order on a fresh grid. The grid, roads, blocks
// and districts are always rebuilt from scratch.
func (p Pipeline) Run(pois []Placed, cfg spec.Config, r *rng.LCG) (*Layout, *validation.Report) {
	b := &build{
		cfg:    cfg,
		rng:    r,
		pois:   pois,
		grid:   tile.NewGrid(cfg.BoundsSize, cfg.TileSize),
		report: validation.NewReport(),
	}
	for _, s := range p {
		s.Run(b)
	}

	b.report.AddInfo(validation.Result{
		Level: validation.LevelLayout,
		Message: fmt.Sprintf("layout %dx%d tiles: %d districts, %d roads, %d blocks",
			b.grid.Cols, b.grid.Rows, len(b.districts), len(b.roads), len(b.blocks)),
	})

	return &Layout{
		Grid:           b.grid,
		Districts:      b.districts,
		Roads:          b.roads,
		Blocks:         b.blocks,
		Unreachable:    b.unreachable,
		RoadComponents: b.components,
	}, b.report
}
