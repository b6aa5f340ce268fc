// Package tile provides the square grid primitives: tile indices, compass
// directions, road bit masks, and slope classification.
package tile

import "fmt"

// Index identifies a tile on the map as a flat grid index.
// It decomposes invertibly into (x, y) given the map Size.
type Index int32

// None is the invalid tile index, returned by failed lookups and steps.
const None Index = -1

// Size describes the map dimensions and converts between indices and
// (x, y) coordinates.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Index converts (x, y) to a flat tile index. Coordinates outside the map
// yield None.
func (s Size) Index(x, y int) Index {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return None
	}
	return Index(y*s.W + x)
}

// XY decomposes a tile index into its (x, y) coordinates.
func (s Size) XY(t Index) (int, int) {
	return int(t) % s.W, int(t) / s.W
}

// Contains reports whether t is a valid index on this map.
func (s Size) Contains(t Index) bool {
	return t >= 0 && int(t) < s.W*s.H
}

// Step returns the tile one unit away from t in direction d, or None if
// that would leave the map.
func (s Size) Step(t Index, d Direction) Index {
	x, y := s.XY(t)
	dx, dy := d.Offset()
	return s.Index(x+dx, y+dy)
}

// Manhattan returns the Manhattan distance between two tiles.
func (s Size) Manhattan(a, b Index) int {
	ax, ay := s.XY(a)
	bx, by := s.XY(b)
	return abs(ax-bx) + abs(ay-by)
}

// Tiles returns the total number of tiles on the map.
func (s Size) Tiles() int { return s.W * s.H }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is one of the four axis-aligned compass directions.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West

	// NumDirections is the count of compass directions.
	NumDirections = 4
)

// Directions lists all four compass directions in a fixed iteration order.
var Directions = [NumDirections]Direction{North, East, South, West}

// Offset returns the (dx, dy) grid step for the direction. Y grows south.
func (d Direction) Offset() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

// Mirror returns the opposite compass direction.
func (d Direction) Mirror() Direction {
	return (d + 2) % NumDirections
}

// Axis returns the movement axis of the direction.
func (d Direction) Axis() Axis {
	if d == East || d == West {
		return AxisX
	}
	return AxisY
}

// Bit returns the single-direction road mask for d.
func (d Direction) Bit() RoadMask {
	return RoadMask(1 << d)
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// DirectionBetween returns the direction that steps from a to its grid
// neighbor b. The second return is false when the tiles are not adjacent.
func DirectionBetween(s Size, a, b Index) (Direction, bool) {
	ax, ay := s.XY(a)
	bx, by := s.XY(b)
	switch {
	case bx == ax && by == ay-1:
		return North, true
	case bx == ax+1 && by == ay:
		return East, true
	case bx == ax && by == ay+1:
		return South, true
	case bx == ax-1 && by == ay:
		return West, true
	default:
		return North, false
	}
}

// Axis is a movement axis on the grid.
type Axis uint8

const (
	AxisX Axis = iota // east-west
	AxisY             // north-south
)

// Other returns the perpendicular axis.
func (a Axis) Other() Axis { return a ^ 1 }

// RoadMask is a 4-bit set of the directions a tile carries a road stub in.
type RoadMask uint8

// MaskNone is the empty road mask.
const MaskNone RoadMask = 0

// MaskAll has a road stub in every direction.
const MaskAll RoadMask = 0x0F

// Has reports whether the mask has a stub toward direction d.
func (m RoadMask) Has(d Direction) bool {
	return m&d.Bit() != 0
}

// With returns the mask with the stub toward d set.
func (m RoadMask) With(d Direction) RoadMask {
	return m | d.Bit()
}

// Without returns the mask with the stub toward d cleared.
func (m RoadMask) Without(d Direction) RoadMask {
	return m &^ d.Bit()
}

// Mirror flips every stub to its opposite direction. A mask pointing at a
// neighbor, mirrored, is the mask the neighbor needs to point back.
func (m RoadMask) Mirror() RoadMask {
	return ((m << 2) | (m >> 2)) & MaskAll
}

// Count returns the number of directions set in the mask.
func (m RoadMask) Count() int {
	n := 0
	for _, d := range Directions {
		if m.Has(d) {
			n++
		}
	}
	return n
}

// String implements fmt.Stringer, e.g. "N|S".
func (m RoadMask) String() string {
	if m == MaskNone {
		return "none"
	}
	letters := [NumDirections]byte{'N', 'E', 'S', 'W'}
	out := make([]byte, 0, 7)
	for _, d := range Directions {
		if !m.Has(d) {
			continue
		}
		if len(out) > 0 {
			out = append(out, '|')
		}
		out = append(out, letters[d])
	}
	return string(out)
}

// Slope classifies the shape of a tile's surface. Roads may run across
// flat tiles and single-direction ramps only.
type Slope uint8

const (
	SlopeFlat Slope = iota
	SlopeInclinedN // ramp rising toward the north
	SlopeInclinedE
	SlopeInclinedS
	SlopeInclinedW
	SlopeSteep // any other shape; unbuildable
)

// InclinedToward returns the inclined slope rising toward direction d.
func InclinedToward(d Direction) Slope {
	return SlopeInclinedN + Slope(d)
}

// IsInclined reports whether the slope is a single-direction ramp.
func (sl Slope) IsInclined() bool {
	return sl >= SlopeInclinedN && sl <= SlopeInclinedW
}

// String implements fmt.Stringer.
func (sl Slope) String() string {
	switch sl {
	case SlopeFlat:
		return "flat"
	case SlopeInclinedN:
		return "inclined-n"
	case SlopeInclinedE:
		return "inclined-e"
	case SlopeInclinedS:
		return "inclined-s"
	case SlopeInclinedW:
		return "inclined-w"
	default:
		return "steep"
	}
}

// Hash mixes a tile index into a well-distributed 32-bit value. Used by the
// search engine's bucket tables; only the low bits are taken, so the mix
// constant matters more than the width.
func Hash(t Index) uint32 {
	h := uint32(t) * 0x9E3779B1
	h ^= h >> 16
	return h * 0x85EBCA77
}
