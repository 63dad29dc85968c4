package scene

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/citygen/pkg/validation"
)

// ValidateDocument performs structural validation on an output document.
// It checks ID integrity, group index consistency, grid dimensions and
// that POIs sit inside the bounds on walkable tiles.
func ValidateDocument(d *Document) *validation.Report {
	r := validation.NewReport()

	if d == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelLayout,
			Message: "document is nil",
		})
		return r
	}

	validateIDs(d, r)
	validateGroupIndices(d, r)
	validateGroupMembership(d, r)
	validateTileGrid(d, r)
	validatePositions(d, r)

	return r
}

func checkUnique(r *validation.Report, kind string, ids []string) {
	seen := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelLayout,
				Message:     fmt.Sprintf("%s at index %d has empty ID", kind, i),
				ConfigPath:  fmt.Sprintf("%s[%d].id", kind, i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[id]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelLayout,
				Message:     fmt.Sprintf("duplicate %s ID %q at indices %d and %d", kind, id, prev, i),
				ConfigPath:  fmt.Sprintf("%s[%d].id", kind, i),
				ActualValue: id,
			})
		}
		seen[id] = i
	}
}

func validateIDs(d *Document, r *validation.Report) {
	roads := make([]string, len(d.Roads))
	for i, x := range d.Roads {
		roads[i] = x.ID
	}
	blocks := make([]string, len(d.CityBlocks))
	for i, x := range d.CityBlocks {
		blocks[i] = x.ID
	}
	districts := make([]string, len(d.Districts))
	for i, x := range d.Districts {
		districts[i] = x.Name
	}
	pois := make([]string, len(d.FinalPOIPositions))
	for i, x := range d.FinalPOIPositions {
		pois[i] = x.ID
	}
	checkUnique(r, "roads", roads)
	checkUnique(r, "city_blocks", blocks)
	checkUnique(r, "districts", districts)
	checkUnique(r, "final_poi_positions", pois)
}

func validateGroupIndices(d *Document, r *validation.Report) {
	known := func(ids []string) map[string]bool {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		return m
	}
	var roadIDs, blockIDs, poiIDs []string
	for _, x := range d.Roads {
		roadIDs = append(roadIDs, x.ID)
	}
	for _, x := range d.CityBlocks {
		blockIDs = append(blockIDs, x.ID)
	}
	for _, x := range d.FinalPOIPositions {
		poiIDs = append(poiIDs, x.ID)
	}

	checkGroup := func(groupType, groupName string, ids []string, valid map[string]bool) {
		for _, id := range ids {
			if !valid[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelLayout,
					Message:     fmt.Sprintf("group %s.%s references non-existent entry %q", groupType, groupName, id),
					ConfigPath:  fmt.Sprintf("groups.%s.%s", groupType, groupName),
					ActualValue: id,
					Expected:    "existing ID",
				})
			}
		}
	}

	roads, blocks, pois := known(roadIDs), known(blockIDs), known(poiIDs)
	for name, ids := range d.Groups.Districts {
		checkGroup("districts", name, ids, pois)
	}
	for name, ids := range d.Groups.RoadTypes {
		checkGroup("road_types", string(name), ids, roads)
	}
	for name, ids := range d.Groups.BlockTypes {
		checkGroup("block_types", string(name), ids, blocks)
	}
}

func validateGroupMembership(d *Document, r *validation.Report) {
	roadMembers := make(map[string]string)
	for typ, ids := range d.Groups.RoadTypes {
		for _, id := range ids {
			roadMembers[id] = string(typ)
		}
	}
	for _, x := range d.Roads {
		if got, ok := roadMembers[x.ID]; !ok || got != string(x.Type) {
			r.AddError(validation.Result{
				Level:       validation.LevelLayout,
				Message:     fmt.Sprintf("road %q has type %q but is not in road_types group", x.ID, x.Type),
				ConfigPath:  fmt.Sprintf("groups.road_types.%s", x.Type),
				ActualValue: x.ID,
			})
		}
	}

	blockMembers := make(map[string]string)
	for typ, ids := range d.Groups.BlockTypes {
		for _, id := range ids {
			blockMembers[id] = string(typ)
		}
	}
	for _, x := range d.CityBlocks {
		if got, ok := blockMembers[x.ID]; !ok || got != string(x.Type) {
			r.AddError(validation.Result{
				Level:       validation.LevelLayout,
				Message:     fmt.Sprintf("block %q has type %q but is not in block_types group", x.ID, x.Type),
				ConfigPath:  fmt.Sprintf("groups.block_types.%s", x.Type),
				ActualValue: x.ID,
			})
		}
	}
}

func validateTileGrid(d *Document, r *validation.Report) {
	m := d.Metadata
	if len(d.TileGrid) != m.Rows {
		r.AddError(validation.Result{
			Level:       validation.LevelLayout,
			Message:     fmt.Sprintf("tile grid has %d rows, metadata says %d", len(d.TileGrid), m.Rows),
			ConfigPath:  "tile_grid",
			ActualValue: len(d.TileGrid),
		})
		return
	}
	for i, row := range d.TileGrid {
		if len(row) != m.Cols {
			r.AddError(validation.Result{
				Level:       validation.LevelLayout,
				Message:     fmt.Sprintf("tile grid row %d has %d tiles, metadata says %d", i, len(row), m.Cols),
				ConfigPath:  fmt.Sprintf("tile_grid[%d]", i),
				ActualValue: len(row),
			})
			return
		}
		for j, t := range row {
			if t.Walkable != t.Type.Walkable() {
				r.AddWarning(validation.Result{
					Level:       validation.LevelLayout,
					Message:     fmt.Sprintf("tile (%d,%d) is %s but walkable=%v", j, i, t.Type, t.Walkable),
					ConfigPath:  fmt.Sprintf("tile_grid[%d][%d]", i, j),
					ActualValue: t.Walkable,
				})
			}
		}
	}
}

func validatePositions(d *Document, r *validation.Report) {
	m := d.Metadata
	tolerance := 1e-6
	for _, p := range d.FinalPOIPositions {
		if p.X < -tolerance || p.Y < -tolerance || p.X > m.BoundsSize+tolerance || p.Y > m.BoundsSize+tolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelPlacement,
				Message:     fmt.Sprintf("POI %q at (%.1f, %.1f) outside bounds [0, %.1f]", p.ID, p.X, p.Y, m.BoundsSize),
				POI:         p.ID,
				ActualValue: fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y),
			})
			continue
		}
		if m.TileSize <= 0 {
			continue
		}
		col, row := int(math.Floor(p.X/m.TileSize)), int(math.Floor(p.Y/m.TileSize))
		if row < 0 || row >= len(d.TileGrid) || col < 0 || col >= len(d.TileGrid[row]) {
			continue
		}
		if !d.TileGrid[row][col].Walkable {
			r.AddError(validation.Result{
				Level:       validation.LevelAccessibility,
				Message:     fmt.Sprintf("POI %q sits on a non-walkable %s tile", p.ID, d.TileGrid[row][col].Type),
				POI:         p.ID,
				ActualValue: d.TileGrid[row][col].Type.String(),
				Expected:    "walkable tile",
			})
		}
	}
}
