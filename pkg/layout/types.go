package layout

import (
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/tile"
)

// Theme flavours the block mix of a district.
type Theme string

const (
	ThemeCommercial Theme = "commercial"
	ThemeCultural   Theme = "cultural"
	ThemeUpscale    Theme = "upscale"
	ThemeCasual     Theme = "casual"
	ThemeMixed      Theme = "mixed"
)

// District is a named cluster of POIs.
type District struct {
	Name    string      `json:"name"`
	Center  geo.Point2D `json:"center"` // centroid of member positions
	Hub     geo.Point2D `json:"hub"`    // centre snapped onto the road lattice
	Radius  float64     `json:"radius"`
	Theme   Theme       `json:"theme"`
	Members []string    `json:"members"`

	lattice cellRect
}

// RoadType ranks roads.
type RoadType string

const (
	RoadMain      RoadType = "main"
	RoadSecondary RoadType = "secondary"
	RoadLocal     RoadType = "local"
)

// widthTiles returns how many tiles wide a road of type t is painted.
func (t RoadType) widthTiles() int {
	switch t {
	case RoadMain:
		return 3
	case RoadSecondary:
		return 2
	case RoadLocal:
		return 1
	}
	return 1
}

// Road is a polyline in world coordinates.
type Road struct {
	ID          string        `json:"id"`
	Type        RoadType      `json:"type"`
	Points      []geo.Point2D `json:"points"`
	Width       float64       `json:"width"`
	Districts   []string      `json:"districts"`
	ConnectedTo []string      `json:"connected_to,omitempty"`
}

// BlockType is the land use drawn for a city block.
type BlockType string

const (
	BlockBuilding BlockType = "building"
	BlockPark     BlockType = "park"
	BlockParking  BlockType = "parking"
	BlockPlaza    BlockType = "plaza"
	BlockEmpty    BlockType = "empty"
)

// blockTypes fixes the order used for weighted draws.
var blockTypes = []BlockType{BlockBuilding, BlockPark, BlockParking, BlockPlaza, BlockEmpty}

// TileType returns the tile a block of type t paints.
func (t BlockType) TileType() tile.Type {
	switch t {
	case BlockBuilding:
		return tile.Building
	case BlockPark:
		return tile.Park
	case BlockParking, BlockPlaza:
		return tile.Plaza
	case BlockEmpty:
		return tile.Grass
	}
	return tile.Grass
}

// CityBlock is a rectangular parcel between roads. Min and Max are
// inclusive tile coordinates; Bounds is the same area in world units.
type CityBlock struct {
	ID       string    `json:"id"`
	Type     BlockType `json:"type"`
	Min      geo.Cell  `json:"min"`
	Max      geo.Cell  `json:"max"`
	Bounds   geo.Rect  `json:"bounds"`
	Walkable bool      `json:"walkable"`
	District string    `json:"district"`
}

// Placed is a POI with the position the layout is built around.
type Placed struct {
	ID       string      `json:"id"`
	Category string      `json:"category"`
	District string      `json:"district"`
	Position geo.Point2D `json:"position"`
}

// Layout is the complete output of one generation pass.
type Layout struct {
	Grid           *tile.Grid  `json:"-"`
	Districts      []District  `json:"districts"`
	Roads          []Road      `json:"roads"`
	Blocks         []CityBlock `json:"city_blocks"`
	Unreachable    []string    `json:"unreachable,omitempty"`
	RoadComponents int         `json:"road_components"`
}

// cellRect is an inclusive rectangle of tiles.
type cellRect struct {
	Min, Max geo.Cell
}

func (r cellRect) empty() bool {
	return r.Max.Col < r.Min.Col || r.Max.Row < r.Min.Row
}

func (r cellRect) contains(c geo.Cell) bool {
	return c.Col >= r.Min.Col && c.Col <= r.Max.Col && c.Row >= r.Min.Row && c.Row <= r.Max.Row
}
