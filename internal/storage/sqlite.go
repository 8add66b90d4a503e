// Package storage persists arena results: per-mode best scores in a YAML
// document and the full run history in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a single finished round.
type Run struct {
	ID        int64
	RunID     string // UUID, generated on save when empty
	Mode      string
	Score     int
	AIScore   int
	Level     int
	Reason    string // Game over cause: wall, self, obstacle, opponent
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
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

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			ai_score INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, score DESC);
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

// SaveRun records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.Level <= 0 {
		run.Level = 1
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, mode, score, ai_score, level, reason)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Mode, run.Score, run.AIScore, run.Level, run.Reason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, run_id, mode, score, ai_score, level, reason, created_at`

// TopScores retrieves the top N runs for the given mode.
// Results are ordered by score descending.
func (s *Store) TopScores(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all modes.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// scanRuns reads and closes a result set of runColumns.
func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Mode, &r.Score, &r.AIScore, &r.Level, &r.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTimestamp handles the driver returning either time.Time or text.
func parseTimestamp(v any) time.Time {
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

// ClearScores deletes all runs for the given mode.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a mode.
type GameStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestLevel  int
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific mode.
func (s *Store) GetGameStats(mode string) (*GameStats, error) {
	stats := &GameStats{Mode: mode}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(level), 0)
		 FROM runs WHERE mode = ?`,
		mode,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BestLevel)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE mode = ? ORDER BY id DESC LIMIT 1`,
		mode,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for every mode that has been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(level), MAX(created_at)
		 FROM runs
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.Mode, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &gs.BestLevel, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTimestamp(lastPlayed)
		stats[gs.Mode] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
