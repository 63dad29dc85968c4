// Package tile holds the walkability grid shared by layout, snapping and
// pathfinding.
package tile

import "fmt"

// Type is the closed set of tile kinds.
type Type uint8

const (
	Grass Type = iota
	Road
	Sidewalk
	Building
	Park
	Plaza
)

// Types lists every Type in declaration order.
var Types = []Type{Grass, Road, Sidewalk, Building, Park, Plaza}

func (t Type) String() string {
	switch t {
	case Grass:
		return "grass"
	case Road:
		return "road"
	case Sidewalk:
		return "sidewalk"
	case Building:
		return "building"
	case Park:
		return "park"
	case Plaza:
		return "plaza"
	}
	return fmt.Sprintf("tile.Type(%d)", uint8(t))
}

// Walkable returns the default walkability of a freshly painted tile.
func (t Type) Walkable() bool {
	switch t {
	case Road, Sidewalk, Park, Plaza, Grass:
		return true
	case Building:
		return false
	}
	return false
}

// IsRoadLike reports whether t counts as part of the street network for
// snapping purposes.
func (t Type) IsRoadLike() bool {
	switch t {
	case Road, Sidewalk:
		return true
	case Grass, Building, Park, Plaza:
		return false
	}
	return false
}

// MarshalText encodes the type by name.
func (t Type) MarshalText() ([]byte, error) {
	for _, known := range Types {
		if known == t {
			return []byte(t.String()), nil
		}
	}
	return nil, fmt.Errorf("unknown tile type %d", uint8(t))
}

// UnmarshalText decodes a type name.
func (t *Type) UnmarshalText(b []byte) error {
	s := string(b)
	for _, known := range Types {
		if known.String() == s {
			*t = known
			return nil
		}
	}
	return fmt.Errorf("unknown tile type %q", s)
}

// Tile is one cell of the grid.
type Tile struct {
	Walkable bool   `json:"walkable"`
	Type     Type   `json:"type"`
	District string `json:"district,omitempty"`
}

// Of returns a tile of type t with its default walkability.
func Of(t Type) Tile {
	return Tile{Walkable: t.Walkable(), Type: t}
}
