package layout

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// DefaultDistrict names POIs that do not declare a district.
const DefaultDistrict = "central"

// categoryThemes maps POI categories to the theme they pull a district
// towards. Unlisted categories vote for nothing.
var categoryThemes = map[string]Theme{
	"shop":        ThemeCommercial,
	"retail":      ThemeCommercial,
	"store":       ThemeCommercial,
	"market":      ThemeCommercial,
	"museum":      ThemeCultural,
	"gallery":     ThemeCultural,
	"theater":     ThemeCultural,
	"library":     ThemeCultural,
	"hotel":       ThemeUpscale,
	"spa":         ThemeUpscale,
	"fine_dining": ThemeUpscale,
	"cafe":        ThemeCasual,
	"bar":         ThemeCasual,
	"restaurant":  ThemeCasual,
	"fast_food":   ThemeCasual,
	"arcade":      ThemeCasual,
}

// ThemeFor returns the theme a single category votes for.
func ThemeFor(category string) (Theme, bool) {
	t, ok := categoryThemes[strings.ToLower(category)]
	return t, ok
}

// buildDistricts groups POIs by district name, places each hub on the local
// road lattice and tags the tiles it covers.
func buildDistricts(b *build) {
	groups := make(map[string][]Placed)
	for _, p := range b.pois {
		name := p.District
		if name == "" {
			name = DefaultDistrict
		}
		groups[name] = append(groups[name], p)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	spacing := b.cfg.LocalRoadSpacingTiles
	for _, name := range names {
		members := groups[name]
		pts := make([]geo.Point2D, len(members))
		ids := make([]string, len(members))
		for i, m := range members {
			pts[i] = m.Position
			ids[i] = m.ID
		}
		sort.Strings(ids)

		center := geo.Centroid(pts)
		radius := math.Max(
			float64(len(members))*b.cfg.DistrictRadiusPerPOI,
			float64(2*spacing)*b.cfg.TileSize,
		)
		hubCell := b.latticeCell(center)

		d := District{
			Name:    name,
			Center:  center,
			Hub:     b.grid.TileToWorld(hubCell),
			Radius:  radius,
			Theme:   b.themeOf(name, members),
			Members: ids,
			lattice: b.latticeRect(hubCell, radius),
		}
		b.tagDistrict(d)
		b.districts = append(b.districts, d)
	}

	if len(b.districts) > 0 {
		b.report.AddInfo(validation.Result{
			Level:   validation.LevelLayout,
			Message: fmt.Sprintf("%d districts: %s", len(names), strings.Join(names, ", ")),
		})
	}
}

// latticeMax returns the largest lattice index that still lies on an axis
// of n tiles.
func latticeMax(n, spacing int) int {
	return ((n - 1) / spacing) * spacing
}

// latticeCell snaps p to the nearest local-road lattice intersection on the
// grid.
func (b *build) latticeCell(p geo.Point2D) geo.Cell {
	s := b.cfg.LocalRoadSpacingTiles
	c := b.grid.WorldToTile(p)
	snap := func(v, n int) int {
		v = int(math.Round(float64(v)/float64(s))) * s
		return min(max(v, 0), latticeMax(n, s))
	}
	return geo.Cell{Col: snap(c.Col, b.grid.Cols), Row: snap(c.Row, b.grid.Rows)}
}

// latticeRect returns the lattice-aligned tile rectangle covering a
// district of the given radius around hub.
func (b *build) latticeRect(hub geo.Cell, radius float64) cellRect {
	s := b.cfg.LocalRoadSpacingTiles
	k := int(math.Ceil(radius/b.cfg.TileSize/float64(s))) * s
	return cellRect{
		Min: geo.Cell{Col: max(hub.Col-k, 0), Row: max(hub.Row-k, 0)},
		Max: geo.Cell{
			Col: min(hub.Col+k, latticeMax(b.grid.Cols, s)),
			Row: min(hub.Row+k, latticeMax(b.grid.Rows, s)),
		},
	}
}

// themeOf picks a district theme: an explicit override wins, otherwise the
// majority vote of member categories. Ties and no votes yield mixed.
func (b *build) themeOf(name string, members []Placed) Theme {
	if t, ok := b.cfg.DistrictThemes[name]; ok && t != "" {
		return Theme(t)
	}
	votes := make(map[Theme]int)
	for _, m := range members {
		if t, ok := ThemeFor(m.Category); ok {
			votes[t]++
		}
	}
	best, bestN, tie := ThemeMixed, 0, false
	for _, t := range []Theme{ThemeCommercial, ThemeCultural, ThemeUpscale, ThemeCasual} {
		switch n := votes[t]; {
		case n > bestN:
			best, bestN, tie = t, n, false
		case n == bestN && n > 0:
			tie = true
		}
	}
	if tie {
		return ThemeMixed
	}
	return best
}

// tagDistrict marks untagged tiles inside the district lattice. Earlier
// districts keep tiles where lattices overlap.
func (b *build) tagDistrict(d District) {
	for row := d.lattice.Min.Row; row <= d.lattice.Max.Row; row++ {
		for col := d.lattice.Min.Col; col <= d.lattice.Max.Col; col++ {
			if b.grid.At(col, row).District == "" {
				b.grid.Tag(col, row, d.Name)
			}
		}
	}
}

// districtAt returns the district owning a tile, if any.
func (b *build) districtAt(c geo.Cell) *District {
	name := b.grid.AtCell(c).District
	if name == "" {
		return nil
	}
	for i := range b.districts {
		if b.districts[i].Name == name {
			return &b.districts[i]
		}
	}
	return nil
}
