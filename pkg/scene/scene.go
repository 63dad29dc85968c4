package scene

import (
	"github.com/ChicagoDave/citygen/pkg/generate"
	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/tile"
)

// Document is the complete generation output handed to a renderer.
type Document struct {
	Metadata          Metadata           `json:"metadata"`
	Districts         []layout.District  `json:"districts"`
	Roads             []layout.Road      `json:"roads"`
	CityBlocks        []layout.CityBlock `json:"city_blocks"`
	TileGrid          [][]tile.Tile      `json:"tile_grid"`
	FinalPOIPositions []spec.Position    `json:"final_poi_positions"`
	Unplaced          []string           `json:"unplaced,omitempty"`
	Metrics           generate.Metrics   `json:"metrics"`
	Groups            Groups             `json:"groups"`
}

// Metadata holds document-level information.
type Metadata struct {
	Name        string          `json:"name,omitempty"`
	GeneratedAt string          `json:"generated_at"`
	Seed        int64           `json:"seed"`
	SpreadMode  spec.SpreadMode `json:"spread_mode"`
	BoundsSize  float64         `json:"bounds_size"`
	TileSize    float64         `json:"tile_size"`
	Cols        int             `json:"cols"`
	Rows        int             `json:"rows"`
}

// Groups indexes document IDs by various axes for fast filtering.
type Groups struct {
	Districts  map[string][]string           `json:"districts"` // POI ids per district
	RoadTypes  map[layout.RoadType][]string  `json:"road_types"`
	BlockTypes map[layout.BlockType][]string `json:"block_types"`
	TileCounts map[tile.Type]int             `json:"tile_counts"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		Districts:         []layout.District{},
		Roads:             []layout.Road{},
		CityBlocks:        []layout.CityBlock{},
		TileGrid:          [][]tile.Tile{},
		FinalPOIPositions: []spec.Position{},
		Groups: Groups{
			Districts:  make(map[string][]string),
			RoadTypes:  make(map[layout.RoadType][]string),
			BlockTypes: make(map[layout.BlockType][]string),
			TileCounts: make(map[tile.Type]int),
		},
	}
}
