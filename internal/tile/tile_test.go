package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeIndexRoundTrip(t *testing.T) {
	s := Size{W: 7, H: 5}
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			idx := s.Index(x, y)
			require.NotEqual(t, None, idx)
			gx, gy := s.XY(idx)
			assert.Equal(t, x, gx)
			assert.Equal(t, y, gy)
		}
	}
}

func TestSizeIndexOutOfBounds(t *testing.T) {
	s := Size{W: 4, H: 4}
	assert.Equal(t, None, s.Index(-1, 0))
	assert.Equal(t, None, s.Index(0, -1))
	assert.Equal(t, None, s.Index(4, 0))
	assert.Equal(t, None, s.Index(0, 4))
	assert.False(t, s.Contains(None))
	assert.False(t, s.Contains(Index(16)))
	assert.True(t, s.Contains(Index(15)))
}

func TestStepLeavesMap(t *testing.T) {
	s := Size{W: 3, H: 3}
	assert.Equal(t, None, s.Step(s.Index(0, 0), North))
	assert.Equal(t, None, s.Step(s.Index(0, 0), West))
	assert.Equal(t, None, s.Step(s.Index(2, 2), South))
	assert.Equal(t, None, s.Step(s.Index(2, 2), East))
	assert.Equal(t, s.Index(1, 0), s.Step(s.Index(1, 1), North))
}

func TestDirectionMirror(t *testing.T) {
	assert.Equal(t, South, North.Mirror())
	assert.Equal(t, North, South.Mirror())
	assert.Equal(t, West, East.Mirror())
	assert.Equal(t, East, West.Mirror())
}

// For every adjacent pair, the direction from a to b mirrors the direction
// from b to a.
func TestDirectionBetweenMirrors(t *testing.T) {
	s := Size{W: 5, H: 5}
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			a := s.Index(x, y)
			for _, d := range Directions {
				b := s.Step(a, d)
				if b == None {
					continue
				}
				ab, ok := DirectionBetween(s, a, b)
				require.True(t, ok)
				ba, ok := DirectionBetween(s, b, a)
				require.True(t, ok)
				assert.Equal(t, ab.Mirror(), ba, "a=%d b=%d", a, b)
				assert.Equal(t, d, ab)
			}
		}
	}
}

func TestDirectionBetweenNonAdjacent(t *testing.T) {
	s := Size{W: 5, H: 5}
	_, ok := DirectionBetween(s, s.Index(0, 0), s.Index(2, 0))
	assert.False(t, ok)
	_, ok = DirectionBetween(s, s.Index(0, 0), s.Index(1, 1))
	assert.False(t, ok)
	_, ok = DirectionBetween(s, s.Index(1, 1), s.Index(1, 1))
	assert.False(t, ok)
}

func TestRoadMaskMirror(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d.Mirror().Bit(), d.Bit().Mirror())
	}
	assert.Equal(t, MaskAll, MaskAll.Mirror())
	assert.Equal(t, MaskNone, MaskNone.Mirror())
	assert.Equal(t, North.Bit()|East.Bit(), (South.Bit() | West.Bit()).Mirror())
}

func TestRoadMaskOps(t *testing.T) {
	m := MaskNone.With(North).With(East)
	assert.True(t, m.Has(North))
	assert.True(t, m.Has(East))
	assert.False(t, m.Has(South))
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, "N|E", m.String())

	m = m.Without(North)
	assert.False(t, m.Has(North))
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, "none", MaskNone.String())
}

func TestManhattan(t *testing.T) {
	s := Size{W: 10, H: 10}
	assert.Equal(t, 0, s.Manhattan(s.Index(3, 3), s.Index(3, 3)))
	assert.Equal(t, 1, s.Manhattan(s.Index(3, 3), s.Index(3, 4)))
	assert.Equal(t, 14, s.Manhattan(s.Index(1, 2), s.Index(8, 9)))
	assert.Equal(t, s.Manhattan(s.Index(0, 0), s.Index(9, 9)), s.Manhattan(s.Index(9, 9), s.Index(0, 0)))
}

func TestSlopeClassifiers(t *testing.T) {
	assert.False(t, SlopeFlat.IsInclined())
	assert.False(t, SlopeSteep.IsInclined())
	for _, d := range Directions {
		sl := InclinedToward(d)
		assert.True(t, sl.IsInclined(), sl.String())
	}
	assert.Equal(t, SlopeInclinedN, InclinedToward(North))
	assert.Equal(t, SlopeInclinedW, InclinedToward(West))
}

func TestDirectionAxis(t *testing.T) {
	assert.Equal(t, AxisY, North.Axis())
	assert.Equal(t, AxisY, South.Axis())
	assert.Equal(t, AxisX, East.Axis())
	assert.Equal(t, AxisX, West.Axis())
	assert.Equal(t, AxisY, AxisX.Other())
	assert.Equal(t, AxisX, AxisY.Other())
}
