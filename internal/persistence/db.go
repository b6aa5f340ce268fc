// Package persistence provides SQLite-based storage of generation runs:
// the settlements placed and the road network built for each.
package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/openroads/internal/settlement"
	"github.com/talgya/openroads/internal/terrain"
	"github.com/talgya/openroads/internal/tile"
)

// DB wraps a SQLite connection for run persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		settlements INTEGER NOT NULL,
		connected INTEGER NOT NULL,
		road_tiles INTEGER NOT NULL,
		passes INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settlements (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		population INTEGER NOT NULL,
		connected INTEGER NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS road_tiles (
		run_id TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		mask INTEGER NOT NULL,
		PRIMARY KEY (run_id, x, y)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunSummary records the headline numbers of one generation run.
type RunSummary struct {
	Seed      int64
	Connected int
	Passes    int
}

// SaveRun stores a completed generation run and returns its assigned ID.
func (db *DB) SaveRun(m *terrain.Map, reg *settlement.Registry, sum RunSummary) (string, error) {
	runID := uuid.NewString()

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	size := m.Bounds()
	_, err = tx.Exec(
		`INSERT INTO runs (id, seed, width, height, settlements, connected, road_tiles, passes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, sum.Seed, size.W, size.H,
		reg.Len(), sum.Connected, m.RoadTileCount(), sum.Passes,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, s := range reg.List() {
		x, y := size.XY(s.Coord)
		_, err = tx.Exec(
			`INSERT INTO settlements (run_id, id, name, x, y, population, connected)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, s.ID, s.Name, x, y, s.Population, s.Connected,
		)
		if err != nil {
			return "", fmt.Errorf("insert settlement %d: %w", s.ID, err)
		}
	}

	for i := 0; i < size.Tiles(); i++ {
		t := tile.Index(i)
		if m.Category(t) != terrain.CatRoad {
			continue
		}
		x, y := size.XY(t)
		_, err = tx.Exec(
			`INSERT INTO road_tiles (run_id, x, y, mask) VALUES (?, ?, ?, ?)`,
			runID, x, y, uint8(m.RoadMask(t, terrain.KindRoad)),
		)
		if err != nil {
			return "", fmt.Errorf("insert road tile (%d,%d): %w", x, y, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}
