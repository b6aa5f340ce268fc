// Package render draws the finished map — terrain, rail, roads, and
// settlement markers — to a PNG image.
package render

import (
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/talgya/openroads/internal/settlement"
	"github.com/talgya/openroads/internal/terrain"
	"github.com/talgya/openroads/internal/tile"
)

// Scheme defines how map features are colored.
type Scheme struct {
	Water      color.Color
	Shore      color.Color
	Clear      color.Color
	Trees      color.Color
	Rail       color.Color
	Road       color.Color
	Other      color.Color
	Settlement color.Color
}

// DefaultScheme returns a reasonable default color scheme.
func DefaultScheme() *Scheme {
	return &Scheme{
		Water:      colornames.Steelblue,
		Shore:      colornames.Khaki,
		Clear:      colornames.Darkseagreen,
		Trees:      colornames.Forestgreen,
		Rail:       colornames.Darkgray,
		Road:       colornames.Dimgray,
		Other:      colornames.Lightgray,
		Settlement: colornames.Crimson,
	}
}

// WritePNG renders the map at the given pixels-per-tile scale and saves it
// to path.
func WritePNG(path string, m *terrain.Map, reg *settlement.Registry, scale int) error {
	if scale < 1 {
		scale = 1
	}
	size := m.Bounds()
	ctx := gg.NewContext(size.W*scale, size.H*scale)
	scheme := DefaultScheme()

	for i := 0; i < size.Tiles(); i++ {
		t := tile.Index(i)
		x, y := size.XY(t)
		ctx.SetColor(tileColor(m, t, scheme))
		ctx.DrawRectangle(float64(x*scale), float64(y*scale), float64(scale), float64(scale))
		ctx.Fill()
	}

	// Settlement markers on top, slightly larger than a tile.
	r := float64(scale) * 1.5
	for _, s := range reg.List() {
		x, y := size.XY(s.Coord)
		ctx.SetColor(scheme.Settlement)
		ctx.DrawCircle(float64(x*scale)+float64(scale)/2, float64(y*scale)+float64(scale)/2, r)
		ctx.Fill()
	}

	return ctx.SavePNG(path)
}

func tileColor(m *terrain.Map, t tile.Index, scheme *Scheme) color.Color {
	switch m.Category(t) {
	case terrain.CatWater:
		if m.IsWaterWet(t) {
			return scheme.Water
		}
		return scheme.Shore
	case terrain.CatClear:
		return scheme.Clear
	case terrain.CatTrees:
		return scheme.Trees
	case terrain.CatRail:
		return scheme.Rail
	case terrain.CatRoad:
		return scheme.Road
	default:
		return scheme.Other
	}
}
