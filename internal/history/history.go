// Package history keeps the linear undo/redo log of applied turns.
package history

import "github.com/SeamusWaldron/hypercube/internal/puzzle"

// History is a stack of applied turns with a cursor. Turns below the
// cursor are applied; turns at or above it can be redone.
type History struct {
	turns  []puzzle.Turn
	cursor int
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Record appends t after dropping any redo tail.
func (h *History) Record(t puzzle.Turn) {
	h.turns = append(h.turns[:h.cursor], t)
	h.cursor++
}

// Undo steps the cursor back and returns the turn that undoes the last
// applied one. ok is false at the bottom of the stack.
func (h *History) Undo() (inverse puzzle.Turn, ok bool) {
	if h.cursor == 0 {
		return puzzle.Turn{}, false
	}
	h.cursor--
	return h.turns[h.cursor].Inverse(), true
}

// Redo steps the cursor forward and returns the turn to reapply. ok is
// false at the top of the stack.
func (h *History) Redo() (turn puzzle.Turn, ok bool) {
	if h.cursor == len(h.turns) {
		return puzzle.Turn{}, false
	}
	h.cursor++
	return h.turns[h.cursor-1], true
}

// Clear drops every entry.
func (h *History) Clear() {
	h.turns = h.turns[:0]
	h.cursor = 0
}

// Len returns the number of applied turns.
func (h *History) Len() int {
	return h.cursor
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.turns)
}
