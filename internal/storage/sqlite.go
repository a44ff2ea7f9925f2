// Package storage provides SQLite-based persistence for saved sessions and
// the best-score ledger. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/session"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveInfo describes a saved session without decoding its blob.
type SaveInfo struct {
	GameID    string
	RunID     string
	UpdatedAt time.Time
}

// ResultEntry is one finished run in the play history.
type ResultEntry struct {
	ID         int64
	GameID     string
	Difficulty string
	Score      int
	Millis     int64
	Moves      int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			game_id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			blob TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			time_ms INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_game ON results(game_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS best_scores (
			game_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			best_score INTEGER NOT NULL DEFAULT 0,
			best_time_ms INTEGER NOT NULL DEFAULT 0,
			best_moves INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (game_id, difficulty)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession upserts the snapshot blob for a game. One save slot exists
// per game; the run id ties the record to the run that wrote it.
func (s *Store) SaveSession(gameID, runID, blob string) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (game_id, run_id, blob, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
		   run_id = excluded.run_id,
		   blob = excluded.blob,
		   updated_at = CURRENT_TIMESTAMP`,
		gameID, runID, blob,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// LoadSession returns the saved blob for a game, with ok=false when no
// save exists.
func (s *Store) LoadSession(gameID string) (string, bool, error) {
	var blob string
	err := s.db.QueryRow(
		"SELECT blob FROM saves WHERE game_id = ?",
		gameID,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot load session: %w", err)
	}
	return blob, true, nil
}

// ClearSession deletes the save slot for a game. Deleting a missing slot
// is not an error.
func (s *Store) ClearSession(gameID string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear session: %w", err)
	}
	return nil
}

// Saves lists every saved session slot, keyed by game id.
func (s *Store) Saves() (map[string]SaveInfo, error) {
	rows, err := s.db.Query("SELECT game_id, run_id, updated_at FROM saves")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	infos := make(map[string]SaveInfo)
	for rows.Next() {
		var info SaveInfo
		var updatedAt any
		if err := rows.Scan(&info.GameID, &info.RunID, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updatedAt)
		infos[info.GameID] = info
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// RecordResult appends a finished run to the play history and folds it
// into the best-score ledger. Ledger fields only ever improve: a result
// that is not strictly better on a given mark leaves that mark untouched.
func (s *Store) RecordResult(gameID string, level config.Level, res session.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO results (game_id, difficulty, score, time_ms, moves)
		 VALUES (?, ?, ?, ?, ?)`,
		gameID, level.String(), res.Score, res.Millis, res.Moves,
	); err != nil {
		return fmt.Errorf("storage: cannot record result: %w", err)
	}

	var cur session.Best
	err = tx.QueryRow(
		`SELECT best_score, best_time_ms, best_moves
		 FROM best_scores
		 WHERE game_id = ? AND difficulty = ?`,
		gameID, level.String(),
	).Scan(&cur.Score, &cur.Millis, &cur.Moves)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("storage: cannot read ledger: %w", err)
	}

	merged := cur.Absorb(res)
	if _, err := tx.Exec(
		`INSERT INTO best_scores (game_id, difficulty, best_score, best_time_ms, best_moves, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id, difficulty) DO UPDATE SET
		   best_score = excluded.best_score,
		   best_time_ms = excluded.best_time_ms,
		   best_moves = excluded.best_moves,
		   updated_at = CURRENT_TIMESTAMP`,
		gameID, level.String(), merged.Score, merged.Millis, merged.Moves,
	); err != nil {
		return fmt.Errorf("storage: cannot update ledger: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return nil
}

// Bests returns the ledger entries for a game keyed by difficulty.
// Difficulties are absent until a first run finishes at them.
func (s *Store) Bests(gameID string) (map[config.Level]session.Best, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, best_score, best_time_ms, best_moves
		 FROM best_scores
		 WHERE game_id = ?`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query ledger: %w", err)
	}
	defer rows.Close()

	bests := make(map[config.Level]session.Best)
	for rows.Next() {
		var difficulty string
		var b session.Best
		if err := rows.Scan(&difficulty, &b.Score, &b.Millis, &b.Moves); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		level, err := config.ParseLevel(difficulty)
		if err != nil {
			// Rows written by a build with different difficulty names
			// are skipped rather than failing the whole scoreboard.
			continue
		}
		bests[level] = b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return bests, nil
}

// RecentResults retrieves the most recent finished runs for a game,
// newest first.
func (s *Store) RecentResults(gameID string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, difficulty, score, time_ms, moves, created_at
		 FROM results
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Difficulty, &e.Score, &e.Millis, &e.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes the ledger entries and play history for a game.
func (s *Store) ClearScores(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM best_scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear ledger: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM results WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// ResetAll wipes every save, ledger entry, and history row.
func (s *Store) ResetAll() error {
	_, err := s.db.Exec(`
		DELETE FROM saves;
		DELETE FROM results;
		DELETE FROM best_scores;
	`)
	if err != nil {
		return fmt.Errorf("storage: cannot reset: %w", err)
	}
	return nil
}

// parseTime handles the driver returning datetimes as either time.Time or
// the SQLite text representation.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Ensure Store satisfies the session loop's persistence surface.
var _ session.Store = (*Store)(nil)
