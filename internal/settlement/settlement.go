// Package settlement provides the settlement registry: placement on the
// terrain map, deterministic ordering, and nearest-settlement lookup.
package settlement

import (
	"sort"

	"github.com/talgya/openroads/internal/tile"
)

// ID uniquely identifies a settlement.
type ID = uint64

// Settlement is a population center on the map.
type Settlement struct {
	ID         ID         `json:"id"`
	Name       string     `json:"name"`
	Coord      tile.Index `json:"coord"`
	Population uint32     `json:"population"`

	// Connected is set once any built road path starts or ends here.
	Connected bool `json:"connected"`
}

// Registry holds every settlement on the map.
type Registry struct {
	size tile.Size
	all  []*Settlement
}

// NewRegistry creates a registry over the given settlements.
func NewRegistry(size tile.Size, all []*Settlement) *Registry {
	return &Registry{size: size, all: all}
}

// List returns all settlements in registration order.
func (r *Registry) List() []*Settlement {
	return r.all
}

// Len returns the number of registered settlements.
func (r *Registry) Len() int { return len(r.all) }

// ClosestTo returns the ID of the settlement nearest to t by Manhattan
// distance, ties broken by lowest ID. Returns 0 when the registry is empty.
func (r *Registry) ClosestTo(t tile.Index) ID {
	var best *Settlement
	bestDist := 0
	for _, s := range r.all {
		d := r.size.Manhattan(s.Coord, t)
		if best == nil || d < bestDist || (d == bestDist && s.ID < best.ID) {
			best = s
			bestDist = d
		}
	}
	if best == nil {
		return 0
	}
	return best.ID
}

// ByPopulation sorts settlements by ascending population, ties broken by
// ascending ID. The ordering is total, so it is independent of input order.
func ByPopulation(list []*Settlement) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Population != list[j].Population {
			return list[i].Population < list[j].Population
		}
		return list[i].ID < list[j].ID
	})
}

// ByDistanceTo sorts settlements by ascending Manhattan distance to the
// anchor tile, ties broken by ascending ID.
func ByDistanceTo(size tile.Size, anchor tile.Index, list []*Settlement) {
	sort.SliceStable(list, func(i, j int) bool {
		di := size.Manhattan(anchor, list[i].Coord)
		dj := size.Manhattan(anchor, list[j].Coord)
		if di != dj {
			return di < dj
		}
		return list[i].ID < list[j].ID
	})
}
