package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/openroads/internal/tile"
)

func TestQueriesOffMap(t *testing.T) {
	m := NewMap(tile.Size{W: 4, H: 4})

	assert.Equal(t, CatInvalid, m.Category(tile.None))
	assert.Equal(t, CatInvalid, m.Category(tile.Index(99)))
	sl, h := m.SlopeAndHeight(tile.None)
	assert.Equal(t, tile.SlopeSteep, sl)
	assert.Equal(t, 0, h)
	assert.Equal(t, tile.MaskNone, m.RoadMask(tile.None, KindRoad))
	assert.False(t, m.IsWaterWet(tile.None))
	assert.False(t, m.IsValid(tile.None))
}

func TestWriteRoadTileCreatesAndMerges(t *testing.T) {
	m := NewMap(tile.Size{W: 4, H: 4})
	at := m.Size.Index(1, 1)

	require.NoError(t, m.WriteRoadTile(at, tile.North.Bit(), OwnerTown, 3))
	assert.Equal(t, CatRoad, m.Category(at))
	assert.True(t, m.IsPlainRoad(at))
	assert.Equal(t, tile.North.Bit(), m.RoadMask(at, KindRoad))
	assert.Equal(t, uint64(3), m.At(at).TownID)

	// Widening merges bits and keeps the original attribution.
	require.NoError(t, m.WriteRoadTile(at, tile.East.Bit(), OwnerTown, 9))
	assert.Equal(t, tile.North.Bit()|tile.East.Bit(), m.RoadMask(at, KindRoad))
	assert.Equal(t, uint64(3), m.At(at).TownID)

	// Re-writing the same mask changes nothing.
	require.NoError(t, m.WriteRoadTile(at, tile.East.Bit(), OwnerTown, 9))
	assert.Equal(t, tile.North.Bit()|tile.East.Bit(), m.RoadMask(at, KindRoad))
	assert.Equal(t, 1, m.RoadTileCount())
}

func TestWriteRoadTileOffMap(t *testing.T) {
	m := NewMap(tile.Size{W: 4, H: 4})
	assert.Error(t, m.WriteRoadTile(tile.None, tile.MaskAll, OwnerTown, 1))
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := SmallTestConfig()
	a := Generate(cfg)
	b := Generate(cfg)

	require.Equal(t, a.Bounds(), b.Bounds())
	for i := 0; i < a.Size.Tiles(); i++ {
		ti := tile.Index(i)
		assert.Equal(t, a.Category(ti), b.Category(ti), "tile %d", ti)
		sa, ha := a.SlopeAndHeight(ti)
		sb, hb := b.SlopeAndHeight(ti)
		assert.Equal(t, sa, sb, "tile %d", ti)
		assert.Equal(t, ha, hb, "tile %d", ti)
	}
}

func TestGenerateShoresAreDry(t *testing.T) {
	m := Generate(SmallTestConfig())

	shores := 0
	for i := 0; i < m.Size.Tiles(); i++ {
		ti := tile.Index(i)
		if m.Category(ti) != CatWater || m.IsWaterWet(ti) {
			continue
		}
		shores++
		// Every dry shore cell borders open water.
		wetNeighbor := false
		for _, d := range tile.Directions {
			n := m.Size.Step(ti, d)
			if n != tile.None && m.IsWaterWet(n) {
				wetNeighbor = true
				break
			}
		}
		assert.True(t, wetNeighbor, "shore tile %d has no wet neighbor", ti)
	}
	assert.Greater(t, shores, 0, "expected some shoreline on an island map")
}

func TestGenerateRailIsStraightAndFlat(t *testing.T) {
	m := Generate(SmallTestConfig())

	for i := 0; i < m.Size.Tiles(); i++ {
		ti := tile.Index(i)
		if m.Category(ti) != CatRail {
			continue
		}
		axis, straight := m.RailAxis(ti)
		assert.True(t, straight)
		assert.Equal(t, tile.AxisX, axis)
		sl, _ := m.SlopeAndHeight(ti)
		assert.Equal(t, tile.SlopeFlat, sl)
	}
}

func TestLayRailLinesCoversFlatLand(t *testing.T) {
	// On an all-flat clear map a rail line spans the full width.
	cfg := SmallTestConfig()
	m := NewMap(tile.Size{W: cfg.Width, H: cfg.Height})
	layRailLines(m, cfg, cfg.Seed)

	rails := 0
	for i := 0; i < m.Size.Tiles(); i++ {
		if m.Category(tile.Index(i)) == CatRail {
			rails++
		}
	}
	assert.Equal(t, cfg.Width*cfg.RailLines, rails)
}
