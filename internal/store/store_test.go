package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"starmaker/internal/game"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "save.db"), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadWithoutSave(t *testing.T) {
	db := openTestDB(t)
	state, err := db.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, state)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	in := game.NewGameState("Ada Vale", "Nova", "pop")
	in.Artist.Money = 42_000
	in.Songs = append(in.Songs, game.Song{ID: "s1", Title: "Echoes", Type: game.SongTypeSingle, Quality: 60})
	in.Fanbase.Total = 1_234
	require.NoError(t, db.Save(ctx, in))

	out, err := db.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Equal(t, in.Artist, out.Artist)
	require.Equal(t, in.Songs, out.Songs)
	require.Equal(t, in.Fanbase, out.Fanbase)
	require.Equal(t, game.SchemaVersion, out.SchemaVersion)
	require.NotZero(t, out.LastSaved)
}

func TestSaveOverwritesSingleSlot(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := game.NewGameState("Ada Vale", "Nova", "pop")
	require.NoError(t, db.Save(ctx, first))

	second := game.NewGameState("Ben Ochoa", "Vant", "rock")
	require.NoError(t, db.Save(ctx, second))

	out, err := db.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "Vant", out.Artist.StageName)

	var n int
	require.NoError(t, db.conn.Get(&n, `SELECT COUNT(*) FROM save_slots`))
	require.Equal(t, 1, n)
}

func TestMalformedSaveCountsAsNoSave(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO save_slots (key, payload, saved_at) VALUES (?, ?, ?)`,
		"starmaker", "{not json", 0)
	require.NoError(t, err)

	state, err := db.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, state)
}

func TestLoadMigratesOldSchema(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// Pre-version save: no schemaVersion, no soundFidelity.
	payload := `{"artist":{"name":"Ada Vale","stageName":"Nova","money":9000,"energy":80,"maxEnergy":100}}`
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO save_slots (key, payload, saved_at) VALUES (?, ?, ?)`,
		"starmaker", payload, 0)
	require.NoError(t, err)

	state, err := db.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Equal(t, game.SchemaVersion, state.SchemaVersion)
	require.Equal(t, game.StarterSoundQuality, state.Studio.SoundFidelity)
	require.NotNil(t, state.Fanbase.Demographics.AgeGroups)
	require.EqualValues(t, 9_000, state.Artist.Money)
}

func TestClear(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Save(ctx, game.NewGameState("Ada Vale", "Nova", "pop")))
	require.NoError(t, db.Clear(ctx))

	state, err := db.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, state)
}
