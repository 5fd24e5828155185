// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ledsnake/internal/machine"
)

// GameID is the game identifier recorded with every run.
const GameID = "snake"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a single finished game.
type Run struct {
	ID        string
	GameID    string
	Seed      uint32
	Apples    int
	Length    int
	Ticks     uint64
	Reason    string
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns the wall-clock length of the run.
func (r Run) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
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
// Timestamps are stored as unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			apples INTEGER NOT NULL DEFAULT 0,
			length INTEGER NOT NULL DEFAULT 1,
			ticks INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, apples DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(game_id, ended_at DESC);
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

// SaveRun records a finished run. A run without an ID gets a new one.
// Returns the stored ID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.GameID == "" {
		r.GameID = GameID
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, game_id, seed, apples, length, ticks, reason, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, int64(r.Seed), r.Apples, r.Length, int64(r.Ticks), r.Reason,
		r.StartedAt.UnixMilli(), r.EndedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

// RecordRun saves a machine run summary. It has the shape of a
// machine.OnGameOver hook once errors are handled by the caller.
func (s *Store) RecordRun(sum machine.RunSummary) error {
	_, err := s.SaveRun(Run{
		ID:        sum.ID.String(),
		GameID:    GameID,
		Seed:      sum.Seed,
		Apples:    sum.Apples,
		Length:    sum.Length,
		Ticks:     sum.Ticks,
		Reason:    sum.Reason,
		StartedAt: sum.StartedAt,
		EndedAt:   sum.EndedAt,
	})
	return err
}

const runColumns = `id, game_id, seed, apples, length, ticks, reason, started_at, ended_at`

// TopRuns retrieves the N runs with the most apples.
// Ties are broken by the earlier finish.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY apples DESC, ended_at ASC
		 LIMIT ?`,
		GameID, limit,
	)
}

// RecentRuns retrieves the most recently finished runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		GameID, limit,
	)
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r              Run
			seed, ticks    int64
			started, ended int64
		)
		if err := rows.Scan(&r.ID, &r.GameID, &seed, &r.Apples, &r.Length, &ticks, &r.Reason, &started, &ended); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Seed = uint32(seed)
		r.Ticks = uint64(ticks)
		r.StartedAt = time.UnixMilli(started)
		r.EndedAt = time.UnixMilli(ended)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the most apples eaten in one run.
// Returns 0 if no runs exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(apples) FROM runs WHERE game_id = ?",
		GameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes the whole run history.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", GameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs        int
	HighScore   int
	AvgApples   float64
	TotalApples int64
	TotalTicks  int64
	ByReason    map[string]int
	LastPlayed  time.Time
}

// GetStats retrieves aggregated statistics.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{ByReason: make(map[string]int)}

	var last sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(apples), 0), COALESCE(AVG(apples), 0),
		        COALESCE(SUM(apples), 0), COALESCE(SUM(ticks), 0), MAX(ended_at)
		 FROM runs WHERE game_id = ?`,
		GameID,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgApples, &stats.TotalApples, &stats.TotalTicks, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if last.Valid {
		stats.LastPlayed = time.UnixMilli(last.Int64)
	}

	rows, err := s.db.Query(
		`SELECT reason, COUNT(*) FROM runs WHERE game_id = ? GROUP BY reason`,
		GameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get reason stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			reason string
			n      int
		)
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.ByReason[reason] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
