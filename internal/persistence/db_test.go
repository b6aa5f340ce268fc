package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/openroads/internal/settlement"
	"github.com/talgya/openroads/internal/terrain"
	"github.com/talgya/openroads/internal/tile"
)

func TestSaveRunRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	m := terrain.NewMap(tile.Size{W: 8, H: 8})
	require.NoError(t, m.WriteRoadTile(m.Size.Index(2, 2), tile.East.Bit(), terrain.OwnerTown, 1))
	require.NoError(t, m.WriteRoadTile(m.Size.Index(3, 2), tile.West.Bit(), terrain.OwnerTown, 1))

	reg := settlement.NewRegistry(m.Size, []*settlement.Settlement{
		{ID: 1, Name: "Ironford", Coord: m.Size.Index(2, 2), Population: 120, Connected: true},
		{ID: 2, Name: "Oakdale", Coord: m.Size.Index(6, 6), Population: 40},
	})

	runID, err := db.SaveRun(m, reg, RunSummary{Seed: 99, Connected: 1, Passes: 2})
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	var runs, settlements, roadTiles int
	require.NoError(t, db.conn.Get(&runs, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID))
	require.NoError(t, db.conn.Get(&settlements, `SELECT COUNT(*) FROM settlements WHERE run_id = ?`, runID))
	require.NoError(t, db.conn.Get(&roadTiles, `SELECT COUNT(*) FROM road_tiles WHERE run_id = ?`, runID))

	assert.Equal(t, 1, runs)
	assert.Equal(t, 2, settlements)
	assert.Equal(t, 2, roadTiles)

	var mask uint8
	require.NoError(t, db.conn.Get(&mask, `SELECT mask FROM road_tiles WHERE run_id = ? AND x = 2 AND y = 2`, runID))
	assert.Equal(t, uint8(tile.East.Bit()), mask)
}
