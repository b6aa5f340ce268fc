// Package roads grows the road network connecting settlements: a validator
// for planned per-tile connections, a materializer that commits found paths
// to terrain, and the pass loop that drives repeated searches until every
// settlement is linked.
package roads

import (
	"github.com/talgya/openroads/internal/terrain"
	"github.com/talgya/openroads/internal/tile"
)

// Terrain is the read-only query surface the road core consumes.
// *terrain.Map satisfies it; tests substitute synthetic maps.
type Terrain interface {
	Bounds() tile.Size
	IsValid(t tile.Index) bool
	SlopeAndHeight(t tile.Index) (tile.Slope, int)
	Category(t tile.Index) terrain.Category
	RoadMask(t tile.Index, kind terrain.RoadKind) tile.RoadMask
	IsPlainRoad(t tile.Index) bool
	RailAxis(t tile.Index) (tile.Axis, bool)
	IsWaterWet(t tile.Index) bool
}

// TerrainWriter adds the single mutation the materializer performs.
type TerrainWriter interface {
	Terrain
	WriteRoadTile(t tile.Index, mask tile.RoadMask, owner terrain.Owner, townID uint64) error
}

// Validator prunes planned road connections that cannot legally join their
// neighbor tile. It is a pure function of current terrain state.
type Validator struct {
	t Terrain
}

// NewValidator creates a validator over the given terrain.
func NewValidator(t Terrain) *Validator {
	return &Validator{t: t}
}

// Prune removes from mask every direction whose neighbor cannot accept a
// road connection from t, and returns what survives.
func (v *Validator) Prune(t tile.Index, mask tile.RoadMask) tile.RoadMask {
	if !v.t.IsValid(t) {
		return tile.MaskNone
	}
	size := v.t.Bounds()
	for _, d := range tile.Directions {
		if !mask.Has(d) {
			continue
		}
		if !v.connective(size.Step(t, d), d) {
			mask = mask.Without(d)
		}
	}
	return mask
}

// connective reports whether the neighbor tile accepts a road arriving in
// direction d.
func (v *Validator) connective(neighbor tile.Index, d tile.Direction) bool {
	if neighbor == tile.None {
		return false
	}
	switch v.t.Category(neighbor) {
	// Always connective.
	case terrain.CatClear, terrain.CatTrees:
		return true

	// Conditionally connective: plain road always joins; composite tiles
	// (bridge or tunnel heads, stations, road variants) only when their own
	// road or tram stubs reach back toward us.
	case terrain.CatRoad, terrain.CatTunnelBridge, terrain.CatStation:
		if v.t.IsPlainRoad(neighbor) {
			return true
		}
		reach := v.t.RoadMask(neighbor, terrain.KindRoad) | v.t.RoadMask(neighbor, terrain.KindTram)
		return reach&d.Mirror().Bit() != 0

	// Rail admits a level crossing: a straight track exactly perpendicular
	// to the approach, on flat ground.
	case terrain.CatRail:
		return v.isPossibleCrossing(neighbor, d.Axis())

	// Water connects only on dry shore cells.
	case terrain.CatWater:
		return !v.t.IsWaterWet(neighbor)

	default:
		return false
	}
}

// isPossibleCrossing reports whether the rail tile can host a level crossing
// for a road approaching along the given axis.
func (v *Validator) isPossibleCrossing(t tile.Index, approach tile.Axis) bool {
	axis, straight := v.t.RailAxis(t)
	if !straight || axis != approach.Other() {
		return false
	}
	slope, _ := v.t.SlopeAndHeight(t)
	return slope == tile.SlopeFlat
}

// buildableBetween reports whether a road can run between two adjacent
// tiles given their slopes: the far end must be flat or a ramp, and a
// continuing ramp must actually change height unless one end is flat.
func buildableBetween(t Terrain, begin, end tile.Index) bool {
	slopeBegin, heightBegin := t.SlopeAndHeight(begin)
	slopeEnd, heightEnd := t.SlopeAndHeight(end)

	if slopeEnd != tile.SlopeFlat && !slopeEnd.IsInclined() {
		return false
	}
	return (slopeEnd == slopeBegin && heightEnd != heightBegin) ||
		slopeEnd == tile.SlopeFlat ||
		slopeBegin == tile.SlopeFlat
}
