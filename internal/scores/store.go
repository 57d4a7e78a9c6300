package scores

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/MeKo-Tech/huequiz/internal/quiz"

	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultLimit caps listings when the caller passes a non-positive limit.
const DefaultLimit = 20

// Store reads and writes game results.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open opens (creating if needed) the score database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			played_at INTEGER NOT NULL,
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			given TEXT NOT NULL,
			guess TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			difficulty INTEGER NOT NULL,
			max_difficulty INTEGER NOT NULL,
			right_count INTEGER NOT NULL,
			wrong_count INTEGER NOT NULL,
			answered INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS results_played_at ON results (played_at);
		CREATE INDEX IF NOT EXISTS results_mode ON results (mode, right_count);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Record inserts a result and returns its id.
func (s *Store) Record(ctx context.Context, r Result) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (played_at, player, mode, given, guess, elapsed_ms,
			difficulty, max_difficulty, right_count, wrong_count, answered)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.PlayedAt.UnixMilli(), r.Player, string(r.Mode), r.Given, r.Guess, r.Elapsed.Milliseconds(),
		r.Difficulty, r.MaxDifficulty, r.Right, r.Wrong, r.Answered,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read result id: %w", err)
	}
	return id, nil
}

const selectColumns = `SELECT id, played_at, player, mode, given, guess, elapsed_ms,
	difficulty, max_difficulty, right_count, wrong_count, answered FROM results`

// Recent lists the latest results, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	return s.query(ctx, selectColumns+" ORDER BY played_at DESC, id DESC LIMIT ?", normalizeLimit(limit))
}

// Best lists the top results of a mode: most right answers, then fastest.
func (s *Store) Best(ctx context.Context, mode quiz.Mode, limit int) ([]Result, error) {
	return s.query(ctx,
		selectColumns+" WHERE mode = ? ORDER BY right_count DESC, elapsed_ms ASC, id ASC LIMIT ?",
		string(mode), normalizeLimit(limit))
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r         Result
			playedAt  int64
			elapsedMS int64
			mode      string
		)
		if err := rows.Scan(&r.ID, &playedAt, &r.Player, &mode, &r.Given, &r.Guess, &elapsedMS,
			&r.Difficulty, &r.MaxDifficulty, &r.Right, &r.Wrong, &r.Answered); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.PlayedAt = time.UnixMilli(playedAt)
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.Mode = quiz.Mode(mode)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}
	return out, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// Close closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
