// Terrain generation using layered simplex noise. Produces an elevation
// field quantized to height levels, derives water/shore/trees, classifies
// per-tile slopes, and lays a few straight rail lines across the land.
package terrain

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/openroads/internal/tile"
)

// GenConfig holds terrain generation parameters.
type GenConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"` // 0 = random

	SeaLevel  float64 `yaml:"sea_level"`  // elevation threshold for water (0.0-1.0)
	TreeLevel float64 `yaml:"tree_level"` // moisture threshold for trees (0.0-1.0)

	HeightLevels int `yaml:"height_levels"` // quantization steps above sea level
	RailLines    int `yaml:"rail_lines"`    // straight rail lines to lay
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:        192,
		Height:       192,
		SeaLevel:     0.30,
		TreeLevel:    0.58,
		HeightLevels: 8,
		RailLines:    2,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:        32,
		Height:       32,
		Seed:         42,
		SeaLevel:     0.25,
		TreeLevel:    0.60,
		HeightLevels: 5,
		RailLines:    1,
	}
}

// Generate creates a complete terrain map from the configuration. The same
// seed always produces the same map.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)

	size := tile.Size{W: cfg.Width, H: cfg.Height}
	m := NewMap(size)

	// Elevation and moisture per tile, with a radial falloff pushing the map
	// border underwater so the landmass reads as an island.
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			fx := float64(x)
			fy := float64(y)
			elev := octaveNoise(elevNoise, fx, fy, 4, 0.02, 0.5)
			moist := octaveNoise(moistNoise, fx, fy, 3, 0.03, 0.5)

			nx := fx/float64(cfg.Width)*2 - 1
			ny := fy/float64(cfg.Height)*2 - 1
			edge := 1.0 - (nx*nx+ny*ny)*0.55
			if edge < 0 {
				edge = 0
			}
			elev *= edge

			tl := m.At(size.Index(x, y))
			if elev < cfg.SeaLevel {
				tl.Category = CatWater
				tl.Wet = true
				tl.Height = 0
				continue
			}

			// Quantize land elevation above sea level into discrete levels.
			frac := (elev - cfg.SeaLevel) / (1.0 - cfg.SeaLevel)
			tl.Height = 1 + int(frac*float64(cfg.HeightLevels-1))
			if moist > cfg.TreeLevel {
				tl.Category = CatTrees
			} else {
				tl.Category = CatClear
			}
		}
	}

	markShores(m)
	classifySlopes(m)
	layRailLines(m, cfg, seed)

	return m
}

// markShores turns land cells bordering open water into dry shore cells:
// still classified as water, but not wet, so roads may reach them.
func markShores(m *Map) {
	var shores []tile.Index
	for i := 0; i < m.Size.Tiles(); i++ {
		t := tile.Index(i)
		tl := m.At(t)
		if tl.Category == CatWater {
			continue
		}
		if tl.Height > 1 {
			continue
		}
		for _, d := range tile.Directions {
			n := m.Size.Step(t, d)
			if n != tile.None && m.IsWaterWet(n) {
				shores = append(shores, t)
				break
			}
		}
	}
	for _, t := range shores {
		tl := m.At(t)
		tl.Category = CatWater
		tl.Wet = false
	}
}

// classifySlopes derives each land tile's slope from the quantized height
// field: flat when it matches all neighbors, a ramp when exactly one
// neighbor sits one level higher, steep otherwise.
func classifySlopes(m *Map) {
	for i := 0; i < m.Size.Tiles(); i++ {
		t := tile.Index(i)
		tl := m.At(t)
		if tl.Category == CatWater && tl.Wet {
			tl.Slope = tile.SlopeFlat
			continue
		}
		tl.Slope = slopeAt(m, t)
	}
}

func slopeAt(m *Map, t tile.Index) tile.Slope {
	h := m.At(t).Height
	var ups, downs []tile.Direction
	for _, d := range tile.Directions {
		n := m.Size.Step(t, d)
		if n == tile.None {
			continue
		}
		dh := m.At(n).Height - h
		switch {
		case dh > 0:
			ups = append(ups, d)
		case dh < 0:
			downs = append(downs, d)
		}
	}
	if len(ups) == 0 && len(downs) == 0 {
		return tile.SlopeFlat
	}
	// A ramp has exactly one uphill neighbor, one level up, with any drop
	// confined to the opposite side.
	if len(ups) == 1 {
		d := ups[0]
		n := m.Size.Step(t, d)
		if m.At(n).Height == h+1 && (len(downs) == 0 || (len(downs) == 1 && downs[0] == d.Mirror())) {
			return tile.InclinedToward(d)
		}
	}
	if len(ups) == 0 && len(downs) == 1 {
		// One level drop on a single side reads as a ramp rising away from it.
		n := m.Size.Step(t, downs[0])
		if m.At(n).Height == h-1 {
			return tile.InclinedToward(downs[0].Mirror())
		}
	}
	return tile.SlopeSteep
}

// layRailLines places a handful of straight east-west rail tracks across
// flat land, so generated worlds exercise level crossings.
func layRailLines(m *Map, cfg GenConfig, seed int64) {
	if cfg.RailLines <= 0 {
		return
	}
	rng := rand.New(rand.NewSource(seed + 2))
	for line := 0; line < cfg.RailLines; line++ {
		y := cfg.Height/4 + rng.Intn(cfg.Height/2)
		for x := 0; x < cfg.Width; x++ {
			t := m.Size.Index(x, y)
			tl := m.At(t)
			if tl.Slope != tile.SlopeFlat {
				continue
			}
			if tl.Category != CatClear && tl.Category != CatTrees {
				continue
			}
			tl.Category = CatRail
			tl.RailStraight = true
			tl.RailAxis = tile.AxisX
		}
	}
}

// octaveNoise layers multiple noise frequencies into fractal terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
