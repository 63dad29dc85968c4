package layout

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/tile"
)

// themeWeights gives the block-type mix per theme, in blockTypes order.
var themeWeights = map[Theme][]float64{
	ThemeCommercial: {0.60, 0.10, 0.20, 0.10, 0.00},
	ThemeCultural:   {0.40, 0.25, 0.05, 0.30, 0.00},
	ThemeUpscale:    {0.50, 0.30, 0.10, 0.10, 0.00},
	ThemeCasual:     {0.50, 0.15, 0.15, 0.10, 0.10},
	ThemeMixed:      {0.45, 0.20, 0.15, 0.10, 0.10},
}

// weightsFor returns the block mix for theme, falling back to mixed.
func weightsFor(theme Theme) []float64 {
	if w, ok := themeWeights[theme]; ok {
		return w
	}
	return themeWeights[ThemeMixed]
}

// buildBlocks carves each district lattice cell into a block, leaving a
// one-tile margin next to the bounding roads, and paints it. Road tiles are
// never overwritten. A lattice cell shared by two districts is built once.
func buildBlocks(b *build) {
	s := b.cfg.LocalRoadSpacingTiles
	seen := mapset.New[geo.Cell]()
	for _, d := range b.districts {
		rect := d.lattice
		for r0 := rect.Min.Row; r0+s <= rect.Max.Row; r0 += s {
			for c0 := rect.Min.Col; c0+s <= rect.Max.Col; c0 += s {
				origin := geo.Cell{Col: c0, Row: r0}
				if seen.Has(origin) {
					continue
				}
				seen.Put(origin)
				b.addBlock(d, geo.Cell{Col: c0 + 2, Row: r0 + 2}, geo.Cell{Col: c0 + s - 2, Row: r0 + s - 2})
			}
		}
	}
}

func (b *build) addBlock(d District, lo, hi geo.Cell) {
	typ := blockTypes[b.rng.Weighted(weightsFor(d.Theme))]
	ts := b.cfg.TileSize
	blk := CityBlock{
		ID:   fmt.Sprintf("block_%04d", len(b.blocks)),
		Type: typ,
		Min:  lo,
		Max:  hi,
		Bounds: geo.Rect{
			Min: geo.Pt(float64(lo.Col)*ts, float64(lo.Row)*ts),
			Max: geo.Pt(float64(hi.Col+1)*ts, float64(hi.Row+1)*ts),
		},
		Walkable: typ.TileType().Walkable(),
		District: d.Name,
	}

	paint := typ.TileType()
	for row := lo.Row; row <= hi.Row; row++ {
		for col := lo.Col; col <= hi.Col; col++ {
			if b.grid.At(col, row).Type == tile.Road || !b.grid.InBounds(col, row) {
				continue
			}
			b.grid.Paint(col, row, paint)
		}
	}
	b.blocks = append(b.blocks, blk)
}
