package storage

import (
	"time"

	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

// Recorder writes the solve in progress for a single session.
type Recorder struct {
	solves  *SolveRepository
	turns   *TurnRepository
	started time.Time
}

// NewRecorder creates a recorder backed by db.
func NewRecorder(db *DB) *Recorder {
	return &Recorder{
		solves: NewSolveRepository(db),
		turns:  NewTurnRepository(db),
	}
}

// Start opens a new solve record.
func (r *Recorder) Start(n, d int, seed int64, scrambleTurns int) (string, error) {
	r.started = time.Now()
	return r.solves.Create(n, d, seed, scrambleTurns)
}

// Turn stores the index-th turn of the solve.
func (r *Recorder) Turn(solveID string, index int, t puzzle.Turn) error {
	_, err := r.turns.Create(solveID, index, time.Since(r.started).Milliseconds(), t)
	return err
}

// Finish closes the solve record.
func (r *Recorder) Finish(solveID string, turns int, solved bool) error {
	return r.solves.Finish(solveID, turns, solved)
}
