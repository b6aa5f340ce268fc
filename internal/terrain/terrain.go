// Package terrain provides the tile map: per-tile classification, height and
// slope, road/rail/water state, and the single mutation the road core is
// allowed to perform (WriteRoadTile).
package terrain

import (
	"fmt"

	"github.com/talgya/openroads/internal/tile"
)

// Category classifies what occupies a tile.
type Category uint8

const (
	CatClear Category = iota // open natural terrain
	CatTrees
	CatRoad
	CatRail
	CatWater
	CatTunnelBridge
	CatStation
	CatOther
	CatInvalid // off-map
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CatClear:
		return "clear"
	case CatTrees:
		return "trees"
	case CatRoad:
		return "road"
	case CatRail:
		return "rail"
	case CatWater:
		return "water"
	case CatTunnelBridge:
		return "tunnelbridge"
	case CatStation:
		return "station"
	case CatOther:
		return "other"
	default:
		return "invalid"
	}
}

// RoadKind distinguishes the vehicular road lane set from the tram lane set
// on a single tile.
type RoadKind uint8

const (
	KindRoad RoadKind = iota
	KindTram
)

// Owner is the authority a built structure belongs to.
type Owner uint8

const (
	OwnerNone Owner = iota
	OwnerTown
	OwnerPlayer
)

// Tile is the full state of one map cell.
type Tile struct {
	Category Category
	Height   int
	Slope    tile.Slope

	// Road state, one mask per lane kind. Meaningful for CatRoad and for
	// composite tiles (CatTunnelBridge, CatStation) whose heads carry stubs.
	Road tile.RoadMask
	Tram tile.RoadMask

	// PlainRoad marks a CatRoad tile as a normal road piece rather than a
	// depot or other road variant. Only plain road accepts unconditional
	// connections.
	PlainRoad bool

	// Rail state: the axis of a straight track, if the tile is CatRail with
	// a plain straight piece.
	RailAxis     tile.Axis
	RailStraight bool

	// Wet distinguishes open water from dry shore cells within CatWater.
	Wet bool

	Owner  Owner
	TownID uint64
}

// Map is the world terrain grid.
type Map struct {
	Size  tile.Size
	tiles []Tile
}

// NewMap creates a map of the given dimensions filled with flat clear tiles
// at height zero.
func NewMap(size tile.Size) *Map {
	return &Map{
		Size:  size,
		tiles: make([]Tile, size.Tiles()),
	}
}

// Bounds returns the map dimensions.
func (m *Map) Bounds() tile.Size {
	return m.Size
}

// At returns a pointer to the tile at t, or nil when t is off-map.
func (m *Map) At(t tile.Index) *Tile {
	if !m.Size.Contains(t) {
		return nil
	}
	return &m.tiles[t]
}

// IsValid reports whether t lies on the map.
func (m *Map) IsValid(t tile.Index) bool {
	return m.Size.Contains(t)
}

// Category returns the tile classification, CatInvalid off-map.
func (m *Map) Category(t tile.Index) Category {
	tl := m.At(t)
	if tl == nil {
		return CatInvalid
	}
	return tl.Category
}

// SlopeAndHeight returns the shape classifier and height of a tile.
// Off-map tiles are steep at height zero.
func (m *Map) SlopeAndHeight(t tile.Index) (tile.Slope, int) {
	tl := m.At(t)
	if tl == nil {
		return tile.SlopeSteep, 0
	}
	return tl.Slope, tl.Height
}

// RoadMask returns the road stub mask of the given lane kind at t.
func (m *Map) RoadMask(t tile.Index, kind RoadKind) tile.RoadMask {
	tl := m.At(t)
	if tl == nil {
		return tile.MaskNone
	}
	if kind == KindTram {
		return tl.Tram
	}
	return tl.Road
}

// IsPlainRoad reports whether t carries a normal road piece (as opposed to
// a depot or other composite road variant).
func (m *Map) IsPlainRoad(t tile.Index) bool {
	tl := m.At(t)
	return tl != nil && tl.Category == CatRoad && tl.PlainRoad
}

// RailAxis returns the axis of a straight rail track at t. The second
// return is false when the tile has no plain straight track.
func (m *Map) RailAxis(t tile.Index) (tile.Axis, bool) {
	tl := m.At(t)
	if tl == nil || tl.Category != CatRail || !tl.RailStraight {
		return tile.AxisX, false
	}
	return tl.RailAxis, true
}

// IsWaterWet reports whether a CatWater tile is actually covered by water.
// Shore cells are classified as water but stay dry.
func (m *Map) IsWaterWet(t tile.Index) bool {
	tl := m.At(t)
	return tl != nil && tl.Category == CatWater && tl.Wet
}

// WriteRoadTile creates a plain road tile at t with the given stub mask, or
// widens an existing road tile by OR-merging the mask into it. Merging never
// clears bits, so repeated writes of the same path are idempotent.
func (m *Map) WriteRoadTile(t tile.Index, mask tile.RoadMask, owner Owner, townID uint64) error {
	tl := m.At(t)
	if tl == nil {
		return fmt.Errorf("write road tile %d: off-map", t)
	}
	if tl.Category == CatRoad {
		tl.Road |= mask
		return nil
	}
	tl.Category = CatRoad
	tl.PlainRoad = true
	tl.Road = mask
	tl.Tram = tile.MaskNone
	tl.Owner = owner
	tl.TownID = townID
	return nil
}

// RoadTileCount returns the number of road tiles on the map.
func (m *Map) RoadTileCount() int {
	n := 0
	for i := range m.tiles {
		if m.tiles[i].Category == CatRoad {
			n++
		}
	}
	return n
}

// CategoryCounts returns a summary of category distribution, for logging.
func (m *Map) CategoryCounts() map[Category]int {
	counts := make(map[Category]int)
	for i := range m.tiles {
		counts[m.tiles[i].Category]++
	}
	return counts
}
