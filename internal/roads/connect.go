package roads

import (
	"log/slog"

	"github.com/talgya/openroads/internal/search"
	"github.com/talgya/openroads/internal/settlement"
	"github.com/talgya/openroads/internal/terrain"
	"github.com/talgya/openroads/internal/tile"
)

// ConnectConfig tunes the network growth loop.
type ConnectConfig struct {
	// MaxPasses caps the number of retry passes over unconnected
	// settlements, converting pathological inputs into a best-effort report
	// instead of a hang.
	MaxPasses int `yaml:"max_passes"`
}

// DefaultConnectConfig returns the default growth parameters.
func DefaultConnectConfig() ConnectConfig {
	return ConnectConfig{MaxPasses: 16}
}

// Report summarizes one ConnectAll run.
type Report struct {
	Passes      int
	PathsBuilt  int
	Connected   int
	Skipped     int
	Unconnected []*settlement.Settlement
}

// Connector grows the road network until every settlement is connected to
// at least one other, or no further progress is possible.
type Connector struct {
	t   TerrainWriter
	reg *settlement.Registry
	cfg ConnectConfig

	validator    *Validator
	materializer *Materializer
}

// NewConnector wires the validator and materializer over the given terrain
// and settlement registry.
func NewConnector(t TerrainWriter, reg *settlement.Registry, cfg ConnectConfig) *Connector {
	if cfg.MaxPasses <= 0 {
		cfg.MaxPasses = DefaultConnectConfig().MaxPasses
	}
	return &Connector{
		t:            t,
		reg:          reg,
		cfg:          cfg,
		validator:    NewValidator(t),
		materializer: NewMaterializer(t, reg),
	}
}

// ConnectAll runs growth passes until the unconnected set empties, a pass
// makes no progress, or the pass cap is reached. Each pass anchors on the
// lowest-population unconnected settlement and attempts the others in
// ascending distance order; failed targets are retried next pass. The
// ordering is total (population then ID, distance then ID), so the result
// is independent of registry input order.
func (c *Connector) ConnectAll() Report {
	var report Report

	var candidates []*settlement.Settlement
	for _, s := range c.reg.List() {
		if !c.validStart(s.Coord) {
			slog.Warn("settlement unsuitable for road connection, skipping",
				"settlement", s.Name, "id", s.ID, "coord", s.Coord)
			report.Skipped++
			continue
		}
		candidates = append(candidates, s)
	}
	unconnected := append([]*settlement.Settlement(nil), candidates...)

	for len(unconnected) > 1 {
		if report.Passes >= c.cfg.MaxPasses {
			slog.Warn("road growth pass cap reached",
				"passes", report.Passes, "unconnected", len(unconnected))
			break
		}
		report.Passes++

		working := append([]*settlement.Settlement(nil), unconnected...)
		settlement.ByPopulation(working)

		anchor := working[0]
		rest := working[1:]
		settlement.ByDistanceTo(c.t.Bounds(), anchor.Coord, rest)

		progress := false
		unconnected = unconnected[:0]
		for _, target := range rest {
			if c.connect(anchor, target) {
				report.PathsBuilt++
				progress = true
				anchor.Connected = true
				target.Connected = true
			} else {
				slog.Debug("no buildable path, deferring to next pass",
					"from", anchor.Name, "to", target.Name)
				unconnected = append(unconnected, target)
			}
		}

		if !progress && len(unconnected) > 0 {
			slog.Warn("road growth pass made no progress, stopping",
				"pass", report.Passes, "anchor", anchor.Name,
				"unconnected", len(unconnected))
			break
		}
	}

	// Each pass consumes its anchor whether or not it connected, so the
	// residual working set alone understates failures. Derive the
	// unconnected list from the flags instead.
	for _, s := range candidates {
		if s.Connected {
			report.Connected++
		} else {
			report.Unconnected = append(report.Unconnected, s)
		}
	}
	return report
}

// connect searches for a buildable path from anchor to target and commits
// it on success.
func (c *Connector) connect(anchor, target *settlement.Settlement) bool {
	size := c.t.Bounds()
	goal := target.Coord

	var committed bool
	engine := search.New(search.Config{
		Cost: func(from, to tile.Index) int {
			return 1
		},
		Estimate: func(t tile.Index) int {
			return size.Manhattan(t, goal)
		},
		Neighbors: c.neighbors,
		IsGoal: func(t tile.Index) bool {
			return t == goal
		},
		Found: func(n search.Node) {
			if err := c.materializer.Commit(n); err != nil {
				slog.Error("path commit failed",
					"from", anchor.Name, "to", target.Name, "error", err)
				return
			}
			committed = true
		},
	})
	engine.AddStart(anchor.Coord, 0)

	return engine.Run() == search.Found && committed
}

// neighbors enumerates the tiles a road may legally extend to from t:
// on-map, slope-compatible, open terrain or existing road, and accepted by
// the connectivity validator.
func (c *Connector) neighbors(t tile.Index) []tile.Index {
	size := c.t.Bounds()
	out := make([]tile.Index, 0, tile.NumDirections)
	for _, d := range tile.Directions {
		n := size.Step(t, d)
		if n == tile.None || !buildableBetween(c.t, t, n) {
			continue
		}
		switch c.t.Category(n) {
		case terrain.CatClear, terrain.CatTrees, terrain.CatRoad:
		default:
			continue
		}
		if c.validator.Prune(t, d.Bit()) == tile.MaskNone {
			continue
		}
		out = append(out, n)
	}
	return out
}

// validStart reports whether a settlement coordinate can anchor or receive
// a road search.
func (c *Connector) validStart(t tile.Index) bool {
	if !c.t.IsValid(t) {
		return false
	}
	switch c.t.Category(t) {
	case terrain.CatClear, terrain.CatTrees, terrain.CatRoad:
		return true
	default:
		return false
	}
}
