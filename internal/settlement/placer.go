// Settlement placement — scores tiles for desirability and seeds villages,
// towns, and cities with minimum spacing between them.
package settlement

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/talgya/openroads/internal/terrain"
	"github.com/talgya/openroads/internal/tile"
)

// Size categorizes settlement scale.
type Size uint8

const (
	SizeVillage Size = iota
	SizeTown
	SizeCity
)

// PlaceConfig tunes settlement placement.
type PlaceConfig struct {
	Cities   int `yaml:"cities"`
	Towns    int `yaml:"towns"`
	Villages int `yaml:"villages"`

	MinCityDist    int `yaml:"min_city_dist"`
	MinTownDist    int `yaml:"min_town_dist"`
	MinVillageDist int `yaml:"min_village_dist"`
}

// DefaultPlaceConfig returns a reasonable placement configuration.
func DefaultPlaceConfig() PlaceConfig {
	return PlaceConfig{
		Cities:         3,
		Towns:          8,
		Villages:       16,
		MinCityDist:    40,
		MinTownDist:    20,
		MinVillageDist: 10,
	}
}

// Place seeds settlements across the map and returns a registry over them.
// Placement is deterministic for a given map and seed.
func Place(m *terrain.Map, cfg PlaceConfig, seed int64) *Registry {
	rng := rand.New(rand.NewSource(seed + 200))

	type scored struct {
		coord tile.Index
		score float64
	}
	var candidates []scored

	for i := 0; i < m.Size.Tiles(); i++ {
		t := tile.Index(i)
		s := placementScore(m, t)
		if s > 0 {
			candidates = append(candidates, scored{t, s})
		}
	}

	// Best locations first; equal scores fall back to tile order so the
	// result does not depend on sort internals.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].coord < candidates[j].coord
	})

	var placed []*Settlement
	place := func(want int, size Size, minDist int) {
		n := 0
		for _, c := range candidates {
			if n >= want {
				break
			}
			if tooClose(m.Size, c.coord, placed, minDist) {
				continue
			}
			placed = append(placed, &Settlement{
				ID:         ID(len(placed) + 1),
				Coord:      c.coord,
				Population: populationFor(size, rng),
			})
			n++
		}
	}

	place(cfg.Cities, SizeCity, cfg.MinCityDist)
	place(cfg.Towns, SizeTown, cfg.MinTownDist)
	place(cfg.Villages, SizeVillage, cfg.MinVillageDist)

	names := generateNames(rng, len(placed))
	for i := range placed {
		placed[i].Name = names[i]
	}

	return NewRegistry(m.Size, placed)
}

// placementScore evaluates how desirable a tile is for a settlement.
// Prefers flat open land with water access nearby.
func placementScore(m *terrain.Map, t tile.Index) float64 {
	if m.Category(t) != terrain.CatClear {
		return 0
	}
	sl, _ := m.SlopeAndHeight(t)
	if sl != tile.SlopeFlat {
		return 0
	}

	score := 3.0
	for _, d := range tile.Directions {
		n := m.Size.Step(t, d)
		if n == tile.None {
			return 0 // keep settlements off the map border
		}
		switch m.Category(n) {
		case terrain.CatWater:
			if !m.IsWaterWet(n) {
				score += 1.0 // harbor potential on dry shore
			}
		case terrain.CatClear:
			score += 0.5
		case terrain.CatTrees:
			score += 0.25
		}
	}
	return score
}

func tooClose(size tile.Size, coord tile.Index, existing []*Settlement, minDist int) bool {
	for _, s := range existing {
		if size.Manhattan(coord, s.Coord) < minDist {
			return true
		}
	}
	return false
}

// populationFor returns an initial population for a settlement size.
func populationFor(size Size, rng *rand.Rand) uint32 {
	switch size {
	case SizeCity:
		return 2000 + uint32(rng.Intn(3000))
	case SizeTown:
		return 200 + uint32(rng.Intn(800))
	default:
		return 20 + uint32(rng.Intn(80))
	}
}

// generateNames produces procedural settlement names by combining syllables.
func generateNames(rng *rand.Rand, count int) []string {
	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
	}
	suffixes := []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "crest", "vale", "port",
		"town", "bury", "marsh", "well", "brook", "cliff", "moor",
		"ridge", "watch", "fall", "rest", "point", "reach", "helm",
	}

	used := make(map[string]bool)
	names := make([]string, 0, count)

	// The syllable pool holds well under a thousand combinations, so a
	// request larger than it would never drain. Bound the draws and fall
	// back to numbered variants once the pool is effectively exhausted.
	maxDraws := 20 * len(prefixes) * len(suffixes)
	for draws := 0; len(names) < count && draws < maxDraws; draws++ {
		name := prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
		if !used[name] {
			used[name] = true
			names = append(names, name)
		}
	}
	for i := 2; len(names) < count; i++ {
		name := fmt.Sprintf("%s%s %d",
			prefixes[rng.Intn(len(prefixes))], suffixes[rng.Intn(len(suffixes))], i)
		names = append(names, name)
	}

	return names
}
