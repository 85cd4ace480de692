// Package store persists the game snapshot in a local SQLite file.
// One fixed key, one JSON blob, full replace on every save.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"starmaker/internal/game"
)

const saveKey = "starmaker"

// SQLite implements game.Store on a local database file.
type SQLite struct {
	conn *sqlx.DB
	log  *slog.Logger
}

// Open opens or creates the database at path.
func Open(path string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db := &SQLite{conn: conn, log: logger}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *SQLite) Close() error {
	return db.conn.Close()
}

func (db *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS save_slots (
		key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		saved_at INTEGER NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Load returns the stored snapshot, or (nil, nil) when no save exists.
// A blob that fails to decode counts as no save: the player gets a
// fresh install, not an error.
func (db *SQLite) Load(ctx context.Context) (*game.GameState, error) {
	var payload string
	err := db.conn.QueryRowxContext(ctx, `SELECT payload FROM save_slots WHERE key = ?`, saveKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load save: %w", err)
	}

	var state game.GameState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		db.log.Warn("malformed save discarded", "err", err)
		return nil, nil
	}
	game.Migrate(&state)
	return &state, nil
}

// Save overwrites the single save slot. The snapshot is stamped with
// the current schema version and save time before writing.
func (db *SQLite) Save(ctx context.Context, state *game.GameState) error {
	now := time.Now()
	state.SchemaVersion = game.SchemaVersion
	state.LastSaved = now.UnixMilli()

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO save_slots (key, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`, saveKey, string(payload), now.UnixMilli())
	if err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return tx.Commit()
}

// Clear deletes the save slot. Used only by the reset action.
func (db *SQLite) Clear(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM save_slots WHERE key = ?`, saveKey); err != nil {
		return fmt.Errorf("clear save: %w", err)
	}
	return nil
}
