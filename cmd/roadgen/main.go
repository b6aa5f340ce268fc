// Command roadgen generates a terrain map, places settlements, grows the
// connecting road network, and writes the results to a PNG and a SQLite
// database.
package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/talgya/openroads/internal/config"
	"github.com/talgya/openroads/internal/persistence"
	"github.com/talgya/openroads/internal/render"
	"github.com/talgya/openroads/internal/roads"
	"github.com/talgya/openroads/internal/settlement"
	"github.com/talgya/openroads/internal/terrain"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: $ROADGEN_CONFIG or built-in defaults)")
	seed := flag.Int64("seed", 0, "world seed (overrides config; 0 = from config or random)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if cfg.World.Seed == 0 {
		cfg.World.Seed = rand.Int63()
	}

	// ── Terrain ───────────────────────────────────────────────────────
	slog.Info("generating terrain",
		"width", cfg.World.Width, "height", cfg.World.Height, "seed", cfg.World.Seed)
	m := terrain.Generate(cfg.World)
	for cat, n := range m.CategoryCounts() {
		slog.Debug("terrain", "category", cat.String(), "count", n)
	}

	// ── Settlements ───────────────────────────────────────────────────
	reg := settlement.Place(m, cfg.Settlements, cfg.World.Seed)
	slog.Info("settlements placed", "count", reg.Len())
	for _, s := range reg.List() {
		x, y := m.Bounds().XY(s.Coord)
		slog.Debug("settlement", "name", s.Name, "x", x, "y", y, "population", s.Population)
	}

	// ── Road network ──────────────────────────────────────────────────
	connector := roads.NewConnector(m, reg, cfg.Roads)
	report := connector.ConnectAll()

	slog.Info("road network grown",
		"passes", report.Passes,
		"paths", report.PathsBuilt,
		"connected", report.Connected,
		"skipped", report.Skipped,
		"road_tiles", humanize.Comma(int64(m.RoadTileCount())),
	)
	for _, s := range report.Unconnected {
		slog.Warn("settlement left unconnected", "name", s.Name, "id", s.ID)
	}

	// ── Outputs ───────────────────────────────────────────────────────
	if cfg.Output.MapPNG != "" {
		os.MkdirAll(filepath.Dir(cfg.Output.MapPNG), 0755)
		if err := render.WritePNG(cfg.Output.MapPNG, m, reg, cfg.Output.PNGScale); err != nil {
			slog.Error("failed to render map", "error", err)
			os.Exit(1)
		}
		slog.Info("map rendered", "path", cfg.Output.MapPNG)
	}

	if cfg.Output.Database != "" {
		os.MkdirAll(filepath.Dir(cfg.Output.Database), 0755)
		db, err := persistence.Open(cfg.Output.Database)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		runID, err := db.SaveRun(m, reg, persistence.RunSummary{
			Seed:      cfg.World.Seed,
			Connected: report.Connected,
			Passes:    report.Passes,
		})
		if err != nil {
			slog.Error("failed to save run", "error", err)
			os.Exit(1)
		}
		slog.Info("run saved", "id", runID, "path", cfg.Output.Database)
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
