package roads

import (
	"fmt"

	"github.com/talgya/openroads/internal/search"
	"github.com/talgya/openroads/internal/settlement"
	"github.com/talgya/openroads/internal/terrain"
	"github.com/talgya/openroads/internal/tile"
)

// Locator resolves the settlement a new road tile should be attributed to.
// *settlement.Registry satisfies it.
type Locator interface {
	ClosestTo(t tile.Index) settlement.ID
}

// Materializer writes a found path into the terrain as road tiles owned by
// the neutral town authority.
type Materializer struct {
	t       TerrainWriter
	locator Locator
}

// NewMaterializer creates a materializer over the given terrain and
// settlement locator.
func NewMaterializer(t TerrainWriter, locator Locator) *Materializer {
	return &Materializer{t: t, locator: locator}
}

// Commit walks the parent chain from the terminal node back to the start
// and writes each tile's road mask: the union of the directions toward its
// path neighbors. Endpoints only receive the bits actually present in the
// chain. Existing road tiles are widened, never rewritten, so committing
// the same path twice leaves the terrain unchanged.
func (ma *Materializer) Commit(node search.Node) error {
	size := ma.t.Bounds()
	chain := node.Tiles() // goal first

	for i, t := range chain {
		mask := tile.MaskNone
		if i > 0 {
			d, ok := tile.DirectionBetween(size, t, chain[i-1])
			if !ok {
				return fmt.Errorf("commit path: tiles %d and %d not adjacent", t, chain[i-1])
			}
			mask = mask.With(d)
		}
		if i < len(chain)-1 {
			d, ok := tile.DirectionBetween(size, t, chain[i+1])
			if !ok {
				return fmt.Errorf("commit path: tiles %d and %d not adjacent", t, chain[i+1])
			}
			mask = mask.With(d)
		}
		if mask == tile.MaskNone {
			continue // single-tile path
		}
		if err := ma.t.WriteRoadTile(t, mask, terrain.OwnerTown, ma.locator.ClosestTo(t)); err != nil {
			return fmt.Errorf("commit path: %w", err)
		}
	}
	return nil
}
