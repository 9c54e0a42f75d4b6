package storage

import (
	"fmt"

	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

// TurnRecord represents a turn in the database.
type TurnRecord struct {
	TurnID    int64
	SolveID   string
	TurnIndex int
	TsMs      int64
	Notation  string
	Whole     bool
}

// TurnRepository provides CRUD operations for turns.
type TurnRepository struct {
	db *DB
}

// NewTurnRepository creates a new turn repository.
func NewTurnRepository(db *DB) *TurnRepository {
	return &TurnRepository{db: db}
}

// Create stores one turn of a solve and returns its ID.
func (r *TurnRepository) Create(solveID string, turnIndex int, tsMs int64, t puzzle.Turn) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO turns (solve_id, turn_index, ts_ms, notation, whole)
		VALUES (?, ?, ?, ?, ?)
	`, solveID, turnIndex, tsMs, t.Notation(), t.Whole)

	if err != nil {
		return 0, fmt.Errorf("failed to create turn: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get turn ID: %w", err)
	}

	return id, nil
}

// GetBySolve retrieves all turns of a solve in order.
func (r *TurnRepository) GetBySolve(solveID string) ([]TurnRecord, error) {
	rows, err := r.db.Query(`
		SELECT turn_id, solve_id, turn_index, ts_ms, notation, whole
		FROM turns
		WHERE solve_id = ?
		ORDER BY turn_index, turn_id
	`, solveID)

	if err != nil {
		return nil, fmt.Errorf("failed to get turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var t TurnRecord
		if err := rows.Scan(&t.TurnID, &t.SolveID, &t.TurnIndex, &t.TsMs, &t.Notation, &t.Whole); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}

	return turns, rows.Err()
}

// Count returns the number of turns stored for a solve.
func (r *TurnRepository) Count(solveID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM turns WHERE solve_id = ?", solveID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get turn count: %w", err)
	}
	return count, nil
}
