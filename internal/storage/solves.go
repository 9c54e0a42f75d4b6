package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSolveNotFound is returned when a solve ID has no row.
var ErrSolveNotFound = errors.New("storage: solve not found")

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Solve represents a solve session in the database.
type Solve struct {
	SolveID       string
	N, D          int
	Seed          int64
	ScrambleTurns int
	StartedAt     time.Time
	EndedAt       *time.Time
	DurationMs    *int64
	TurnCount     *int
	Solved        bool
}

// Summary aggregates the solves of one puzzle shape.
type Summary struct {
	N, D      int
	Attempts  int
	Solved    int
	BestTurns *int
	BestMs    *int64
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create creates a new solve and returns its ID.
func (r *SolveRepository) Create(n, d int, seed int64, scrambleTurns int) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, n, d, seed, scramble_turns, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, n, d, seed, scrambleTurns, startedAt.Format(timeLayout))

	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	return id, nil
}

// Finish marks a solve as over, solved or abandoned.
func (r *SolveRepository) Finish(solveID string, turnCount int, solved bool) error {
	endedAt := time.Now().UTC()

	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM solves WHERE solve_id = ?", solveID).Scan(&startedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrSolveNotFound, solveID)
	}
	if err != nil {
		return fmt.Errorf("failed to get solve start time: %w", err)
	}

	startedAt, err := time.Parse(timeLayout, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	_, err = r.db.Exec(`
		UPDATE solves
		SET ended_at = ?, duration_ms = ?, turn_count = ?, solved = ?
		WHERE solve_id = ?
	`, endedAt.Format(timeLayout), endedAt.Sub(startedAt).Milliseconds(), turnCount, solved, solveID)

	if err != nil {
		return fmt.Errorf("failed to finish solve: %w", err)
	}

	return nil
}

const solveColumns = `solve_id, n, d, seed, scramble_turns, started_at, ended_at, duration_ms, turn_count, solved`

type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (Solve, error) {
	var s Solve
	var startedAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(
		&s.SolveID, &s.N, &s.D, &s.Seed, &s.ScrambleTurns,
		&startedAtStr, &endedAtStr, &s.DurationMs, &s.TurnCount, &s.Solved,
	)
	if err != nil {
		return s, err
	}

	s.StartedAt, _ = time.Parse(timeLayout, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(timeLayout, endedAtStr.String)
		s.EndedAt = &t
	}
	return s, nil
}

// Get retrieves a solve by ID.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	row := r.db.QueryRow(`SELECT `+solveColumns+` FROM solves WHERE solve_id = ?`, solveID)
	s, err := scanSolve(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSolveNotFound, solveID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return &s, nil
}

// List retrieves recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT `+solveColumns+`
		FROM solves
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, s)
	}

	return solves, rows.Err()
}

// Summaries aggregates finished solves per puzzle shape.
func (r *SolveRepository) Summaries() ([]Summary, error) {
	rows, err := r.db.Query(`
		SELECT n, d, COUNT(*), SUM(solved),
			MIN(CASE WHEN solved = 1 THEN turn_count END),
			MIN(CASE WHEN solved = 1 THEN duration_ms END)
		FROM solves
		WHERE ended_at IS NOT NULL
		GROUP BY n, d
		ORDER BY d, n
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize solves: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.N, &s.D, &s.Attempts, &s.Solved, &s.BestTurns, &s.BestMs); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete deletes a solve and its turns.
func (r *SolveRepository) Delete(solveID string) error {
	_, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}
