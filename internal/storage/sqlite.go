// Package storage provides SQLite-based persistence for finished match results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only outcomes are recorded; games themselves are never saved or resumed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/match"
	"github.com/vovakirdan/wallrow/internal/state"
)

// Store manages the SQLite database connection for the result ledger.
type Store struct {
	db *sql.DB
}

// Result is one finished match.
type Result struct {
	ID        string // UUID assigned on save
	Preset    string
	Rows      int
	Cols      int
	WinLen    int
	Walls     int
	Seed      int64
	PlayerX   string
	PlayerO   string
	Winner    string // "X", "O" or "" for draws
	Offender  string // Disqualified side, if any
	Reason    string // match.EndReason string form
	DQ        string // Disqualifying move result, if any
	Moves     int
	CreatedAt time.Time
}

// NewResult builds a ledger entry from a finished match. v supplies the
// board shape and the walls left on it.
func NewResult(preset string, seed int64, v state.View, o match.Outcome) Result {
	r := Result{
		Preset:  preset,
		Rows:    v.Rows(),
		Cols:    v.Cols(),
		WinLen:  v.WinLen(),
		Seed:    seed,
		PlayerX: o.Players[field.PlayerX],
		PlayerO: o.Players[field.PlayerO],
		Reason:  o.Reason.String(),
		Moves:   o.Moves,
	}
	for y := 0; y < v.Rows(); y++ {
		for x := 0; x < v.Cols(); x++ {
			if v.Get(x, y) == field.Wall {
				r.Walls++
			}
		}
	}
	if o.Winner.IsPlayer() {
		r.Winner = o.Winner.String()
	}
	if o.Reason == match.ReasonDQ {
		r.Offender = o.Offender.String()
		r.DQ = o.DQ.String()
	}
	return r
}

// StrategyStats aggregates results per strategy name across both sides.
type StrategyStats struct {
	Strategy string
	Games    int
	Wins     int
	Losses   int
	Draws    int
	DQs      int
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
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			preset TEXT NOT NULL,
			board_rows INTEGER NOT NULL,
			board_cols INTEGER NOT NULL,
			win_len INTEGER NOT NULL,
			walls INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			player_x TEXT NOT NULL,
			player_o TEXT NOT NULL,
			winner TEXT NOT NULL DEFAULT '',
			offender TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL,
			dq TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_results_player_x ON results(player_x);
		CREATE INDEX IF NOT EXISTS idx_results_player_o ON results(player_o);
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

// SaveResult records a finished match and returns its ID.
// A new UUID is assigned when r.ID is empty.
func (s *Store) SaveResult(r Result) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return "", fmt.Errorf("storage: bad result id %q: %w", r.ID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO results
		 (id, preset, board_rows, board_cols, win_len, walls, seed, player_x, player_o, winner, offender, reason, dq, moves)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Preset, r.Rows, r.Cols, r.WinLen, r.Walls, r.Seed,
		r.PlayerX, r.PlayerO, r.Winner, r.Offender, r.Reason, r.DQ, r.Moves,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}
	return r.ID, nil
}

const resultColumns = `id, preset, board_rows, board_cols, win_len, walls, seed, player_x, player_o,
		        winner, offender, reason, dq, moves, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (Result, error) {
	var r Result
	var createdAt any
	err := sc.Scan(
		&r.ID, &r.Preset, &r.Rows, &r.Cols, &r.WinLen, &r.Walls, &r.Seed,
		&r.PlayerX, &r.PlayerO, &r.Winner, &r.Offender, &r.Reason, &r.DQ, &r.Moves,
		&createdAt,
	)
	r.CreatedAt = parseTime(createdAt)
	return r, err
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ResultByID retrieves a result by its ID. Returns nil if not found.
func (s *Store) ResultByID(id string) (*Result, error) {
	r, err := scanResult(s.db.QueryRow(
		`SELECT `+resultColumns+` FROM results WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	return &r, nil
}

// RecentResults retrieves the most recent results, newest first.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// StrategyStats aggregates wins, losses, draws and disqualifications per
// strategy, counting both sides. Sorted by wins, then name.
func (s *Store) StrategyStats() ([]StrategyStats, error) {
	rows, err := s.db.Query(
		`SELECT strategy,
		        COUNT(*),
		        SUM(CASE WHEN winner = side THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner != '' AND winner != side THEN 1 ELSE 0 END),
		        SUM(CASE WHEN reason = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN offender = side THEN 1 ELSE 0 END)
		 FROM (
		        SELECT player_x AS strategy, 'X' AS side, winner, offender, reason FROM results
		        UNION ALL
		        SELECT player_o AS strategy, 'O' AS side, winner, offender, reason FROM results
		 )
		 GROUP BY strategy
		 ORDER BY 3 DESC, strategy`,
		match.ReasonDraw.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get strategy stats: %w", err)
	}
	defer rows.Close()

	var stats []StrategyStats
	for rows.Next() {
		var st StrategyStats
		if err := rows.Scan(&st.Strategy, &st.Games, &st.Wins, &st.Losses, &st.Draws, &st.DQs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearResults deletes every result and returns how many were removed.
func (s *Store) ClearResults() (int64, error) {
	res, err := s.db.Exec("DELETE FROM results")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared results: %w", err)
	}
	return n, nil
}
