package history

import (
	"math/rand/v2"
	"testing"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

var rTurn = puzzle.Turn{A: 1, B: 2, Dir: puzzle.Forward, Selector: puzzle.Selector{Axis: 0, Pole: axes.Pos, Depth: 1}}
var uTurn = puzzle.Turn{A: 2, B: 0, Dir: puzzle.Forward, Selector: puzzle.Selector{Axis: 1, Pole: axes.Pos, Depth: 1}}

func TestUndoRedoAtBoundariesAreNoOps(t *testing.T) {
	h := New()
	if _, ok := h.Undo(); ok {
		t.Error("Undo on empty history should report false")
	}
	if _, ok := h.Redo(); ok {
		t.Error("Redo on empty history should report false")
	}

	h.Record(rTurn)
	if _, ok := h.Redo(); ok {
		t.Error("Redo at the top should report false")
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}

func TestUndoReturnsInverse(t *testing.T) {
	h := New()
	h.Record(rTurn)
	inv, ok := h.Undo()
	if !ok || inv != rTurn.Inverse() {
		t.Errorf("Undo = %v, %v; want %v", inv, ok, rTurn.Inverse())
	}
	redo, ok := h.Redo()
	if !ok || redo != rTurn {
		t.Errorf("Redo = %v, %v; want %v", redo, ok, rTurn)
	}
}

func TestRecordTruncatesRedoTail(t *testing.T) {
	h := New()
	h.Record(rTurn)
	h.Record(uTurn)
	h.Undo()
	h.Undo()
	h.Record(uTurn)

	if h.CanRedo() {
		t.Error("recording after undo should drop the redo tail")
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
	inv, ok := h.Undo()
	if !ok || inv != uTurn.Inverse() {
		t.Errorf("Undo = %v, %v; want %v", inv, ok, uTurn.Inverse())
	}
}

func TestUndoRestoresPuzzle_RedoReproduces(t *testing.T) {
	p, err := puzzle.New(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	h := New()
	rng := rand.New(rand.NewPCG(3, 9))

	var states []*puzzle.Puzzle
	for i := 0; i < 30; i++ {
		states = append(states, p.Clone())
		turn, err := p.RandomTurn(rng)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := p.Apply(turn); err != nil {
			t.Fatal(err)
		}
		h.Record(turn)
	}
	final := p.Clone()

	for i := len(states) - 1; i >= 0; i-- {
		inv, ok := h.Undo()
		if !ok {
			t.Fatalf("Undo %d reported false", i)
		}
		if _, err := p.Apply(inv); err != nil {
			t.Fatal(err)
		}
		if !p.Equal(states[i]) {
			t.Fatalf("undo %d did not restore the prior state", i)
		}
	}
	if !p.Solved() {
		t.Error("undoing everything should give back the solved puzzle")
	}

	for h.CanRedo() {
		turn, _ := h.Redo()
		if _, err := p.Apply(turn); err != nil {
			t.Fatal(err)
		}
	}
	if !p.Equal(final) {
		t.Error("redoing everything should reproduce the final state")
	}
}
