package scene2d

// Scene2D is a compact vector view of a layout for an SVG top-down
// renderer. The tile grid is summarised rather than shipped.
type Scene2D struct {
	Metadata  Metadata       `json:"metadata"`
	Districts []District2D   `json:"districts"`
	Roads     RoadCollection `json:"roads"`
	Blocks    []Block2D      `json:"blocks"`
	POIs      []POI2D        `json:"pois"`
	Tiles     TileSummary    `json:"tiles"`
	Summary   BlockSummary   `json:"block_summary"`
}

// Metadata holds city-level summary data.
type Metadata struct {
	Name          string  `json:"name,omitempty"`
	BoundsSize    float64 `json:"bounds_size"`
	TileSize      float64 `json:"tile_size"`
	POICount      int     `json:"poi_count"`
	DistrictCount int     `json:"district_count"`
	GeneratedAt   string  `json:"generated_at"`
}

// District2D describes a district footprint.
type District2D struct {
	Name     string     `json:"name"`
	Theme    string     `json:"theme"`
	Center   [2]float64 `json:"center"`
	Hub      [2]float64 `json:"hub"`
	Radius   float64    `json:"radius"`
	POICount int        `json:"poi_count"`
}

// RoadCollection groups roads by rank, drawn bottom to top.
type RoadCollection struct {
	Local     []Road2D `json:"local"`
	Secondary []Road2D `json:"secondary"`
	Main      []Road2D `json:"main"`
}

// Road2D is a road polyline.
type Road2D struct {
	ID     string       `json:"id"`
	Points [][2]float64 `json:"points"`
	Width  float64      `json:"width"`
}

// Block2D is a city block rectangle: x, y, width, height.
type Block2D struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Rect     [4]float64 `json:"rect"`
	District string     `json:"district"`
}

// POI2D is a placed point of interest.
type POI2D struct {
	ID       string     `json:"id"`
	Category string     `json:"category,omitempty"`
	District string     `json:"district"`
	Position [2]float64 `json:"position"`
}

// TileSummary holds aggregate tile data.
type TileSummary struct {
	Cols             int            `json:"cols"`
	Rows             int            `json:"rows"`
	Counts           map[string]int `json:"counts"`
	WalkableFraction float64        `json:"walkable_fraction"`
}

// BlockSummary holds aggregate block data.
type BlockSummary struct {
	Total      int                    `json:"total"`
	ByType     map[string]int         `json:"by_type"`
	ByDistrict map[string]DistrictSum `json:"by_district"`
}

// DistrictSum is the block aggregate for one district.
type DistrictSum struct {
	Blocks   int     `json:"blocks"`
	Building int     `json:"building"`
	Green    int     `json:"green"` // parks
	Open     int     `json:"open"`  // parking, plaza and empty lots
	Area     float64 `json:"area"`
}
