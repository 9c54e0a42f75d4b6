package input

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

func newMachine(t *testing.T, n, d int) *Machine {
	t.Helper()
	reg, err := axes.New(d)
	if err != nil {
		t.Fatal(err)
	}
	return New(reg, n)
}

// press feeds keys and returns every emitted turn.
func press(m *Machine, keys string) []puzzle.Turn {
	var out []puzzle.Turn
	for _, r := range keys {
		if res := m.Press(r); res.Turn != nil {
			out = append(out, *res.Turn)
		}
	}
	return out
}

func sel(axis int, pole axes.Pole, depth int) puzzle.Selector {
	return puzzle.Selector{Axis: axis, Pole: pole, Depth: depth}
}

func expectTurns(t *testing.T, got []puzzle.Turn, want ...puzzle.Turn) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d turns %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("turn %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestThreeKey_SelectorThenTwoAxes(t *testing.T) {
	m := newMachine(t, 3, 3)

	// f selects R, j and l name U and F.
	got := press(m, "fjl")
	expectTurns(t, got, puzzle.Turn{A: 1, B: 2, Dir: puzzle.Forward, Selector: sel(0, axes.Pos, 1)})
	if m.State() != AwaitingSecondAxis {
		t.Errorf("state = %v, want chaining in %v", m.State(), AwaitingSecondAxis)
	}
}

func TestThreeKey_Chains(t *testing.T) {
	m := newMachine(t, 3, 3)

	got := press(m, "fjlj")
	expectTurns(t, got,
		puzzle.Turn{A: 1, B: 2, Dir: puzzle.Forward, Selector: sel(0, axes.Pos, 1)},
		puzzle.Turn{A: 2, B: 1, Dir: puzzle.Forward, Selector: sel(0, axes.Pos, 1)},
	)
}

func TestThreeKey_RejectsSelectorAxisAndRepeats(t *testing.T) {
	m := newMachine(t, 3, 3)

	m.Press('f')
	res := m.Press('k') // axis of the selector
	if !res.Alert || !errors.Is(res.Err, ErrRejectedAxis) {
		t.Errorf("selector axis: got %+v, want alert", res)
	}
	if m.State() != AwaitingFirstAxis {
		t.Errorf("state = %v after rejected key", m.State())
	}

	m.Press('j')
	res = m.Press('j')
	if !res.Alert || res.Turn != nil {
		t.Errorf("repeated axis: got %+v, want alert without turn", res)
	}
	if m.State() != AwaitingSecondAxis {
		t.Errorf("state = %v after rejected key", m.State())
	}
}

func TestThreeKey_DepthAppliesOnce(t *testing.T) {
	m := newMachine(t, 3, 3)

	got := press(m, "2fjl")
	expectTurns(t, got, puzzle.Turn{A: 1, B: 2, Dir: puzzle.Forward, Selector: sel(0, axes.Pos, 2)})
	if m.Depth() != 1 {
		t.Errorf("pending depth = %d after turn, want 1", m.Depth())
	}

	press(m, string(EscapeKey))
	got = press(m, "fjl")
	expectTurns(t, got, puzzle.Turn{A: 1, B: 2, Dir: puzzle.Forward, Selector: sel(0, axes.Pos, 1)})
}

func TestDigitAboveLayerCountIsIgnored(t *testing.T) {
	m := newMachine(t, 3, 3)
	if res := m.Press('4'); res.Handled {
		t.Error("depth 4 on a 3-layer puzzle should be ignored")
	}
	if m.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.Depth())
	}
}

func TestDigitAbortsSequence(t *testing.T) {
	m := newMachine(t, 3, 3)
	press(m, "fj3")
	if m.State() != Idle || m.Depth() != 3 || m.Keys() != "3" {
		t.Errorf("state=%v depth=%d keys=%q, want idle/3/\"3\"", m.State(), m.Depth(), m.Keys())
	}
}

func TestSelectorAbortsSequence(t *testing.T) {
	m := newMachine(t, 3, 3)
	got := press(m, "fjsjl")
	expectTurns(t, got, puzzle.Turn{A: 1, B: 2, Dir: puzzle.Forward, Selector: sel(0, axes.Neg, 1)})
}

func TestEscapeReturnsToIdle(t *testing.T) {
	m := newMachine(t, 3, 3)
	m.Press('2')
	m.Press('f')
	m.Press('j')

	res := m.Press(EscapeKey)
	if !res.ClearMessage {
		t.Error("escape should clear the message")
	}
	if m.State() != Idle || m.Keys() != "" || m.Depth() != 1 {
		t.Errorf("state=%v keys=%q depth=%d after escape", m.State(), m.Keys(), m.Depth())
	}
}

func TestThreeKey_WholePuzzleRotation(t *testing.T) {
	m := newMachine(t, 3, 3)
	got := press(m, "xkj")
	expectTurns(t, got, puzzle.Turn{A: 0, B: 1, Dir: puzzle.Forward, Whole: true})
}

func TestThreeKey_SideKeys(t *testing.T) {
	m := newMachine(t, 3, 3)
	if _, err := m.ToggleAxisMode(); err != nil {
		t.Fatal(err)
	}

	// i names U, o names B: U onto B is the backward U/F rotation.
	got := press(m, "fio")
	expectTurns(t, got, puzzle.Turn{A: 1, B: 2, Dir: puzzle.Backward, Selector: sel(0, axes.Pos, 1)})
}

func TestSideKeysNeedSmallDimension(t *testing.T) {
	m := newMachine(t, 3, 7)
	if _, err := m.ToggleAxisMode(); !errors.Is(err, ErrSideKeysUnavailable) {
		t.Errorf("err = %v, want ErrSideKeysUnavailable", err)
	}
	if m.AxisMode() != AxisKeys {
		t.Errorf("mode = %v, want axis", m.AxisMode())
	}
}

func TestFixedKeyNeedsThreeLayersAndAxes(t *testing.T) {
	for _, size := range []struct{ n, d int }{{2, 4}, {3, 2}} {
		m := newMachine(t, size.n, size.d)
		if _, err := m.ToggleSystem(); !errors.Is(err, ErrFixedKeyUnavailable) {
			t.Errorf("%d^%d: err = %v, want ErrFixedKeyUnavailable", size.n, size.d, err)
		}
	}
}

func TestFixedKey_ThreeDimensions(t *testing.T) {
	m := newMachine(t, 3, 3)
	if err := m.SetSystem(FixedKey); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		key  rune
		want puzzle.Turn
	}{
		{'f', puzzle.Turn{A: 1, B: 2, Dir: puzzle.Forward, Selector: sel(0, axes.Pos, 1)}},
		{'s', puzzle.Turn{A: 1, B: 2, Dir: puzzle.Backward, Selector: sel(0, axes.Neg, 1)}},
		{'e', puzzle.Turn{A: 0, B: 2, Dir: puzzle.Backward, Selector: sel(1, axes.Pos, 1)}},
		{'r', puzzle.Turn{A: 0, B: 1, Dir: puzzle.Forward, Selector: sel(2, axes.Pos, 1)}},
		// Side keys select the same side and turn it the other way.
		{'l', puzzle.Turn{A: 1, B: 2, Dir: puzzle.Backward, Selector: sel(0, axes.Pos, 1)}},
	}
	for _, tt := range tests {
		res := m.Press(tt.key)
		if res.Turn == nil {
			t.Fatalf("%q: no turn", tt.key)
		}
		if *res.Turn != tt.want {
			t.Errorf("%q: turn %+v, want %+v", tt.key, *res.Turn, tt.want)
		}
		if m.State() != Idle {
			t.Errorf("%q: state = %v, want idle", tt.key, m.State())
		}
	}
}

func TestFixedKey_FourDimensions(t *testing.T) {
	m := newMachine(t, 3, 4)
	if err := m.SetSystem(FixedKey); err != nil {
		t.Fatal(err)
	}

	// R with U held: plane (F, O).
	got := press(m, "fj")
	expectTurns(t, got, puzzle.Turn{A: 2, B: 3, Dir: puzzle.Forward, Selector: sel(0, axes.Pos, 1)})

	// The selector stays; F held turns U toward O.
	got = press(m, "l")
	expectTurns(t, got, puzzle.Turn{A: 1, B: 3, Dir: puzzle.Forward, Selector: sel(0, axes.Pos, 1)})

	// U with R held turns F toward O; the axis order plays no part.
	got = press(m, "ek")
	expectTurns(t, got, puzzle.Turn{A: 2, B: 3, Dir: puzzle.Forward, Selector: sel(1, axes.Pos, 1)})

	// U with F held turns R toward O.
	got = press(m, "el")
	expectTurns(t, got, puzzle.Turn{A: 0, B: 3, Dir: puzzle.Forward, Selector: sel(1, axes.Pos, 1)})

	// L flips the sign.
	got = press(m, "sj")
	expectTurns(t, got, puzzle.Turn{A: 2, B: 3, Dir: puzzle.Backward, Selector: sel(0, axes.Neg, 1)})
}

func TestFixedKey_SixDimensionsNegates(t *testing.T) {
	m := newMachine(t, 3, 6)
	if err := m.SetSystem(FixedKey); err != nil {
		t.Fatal(err)
	}

	// Six axes give fifteen swaps, so all-positive poles turn backward.
	got := press(m, "fjli")
	expectTurns(t, got, puzzle.Turn{A: 4, B: 5, Dir: puzzle.Backward, Selector: sel(0, axes.Pos, 1)})
}

func TestFixedKey_SidePoleSign(t *testing.T) {
	m := newMachine(t, 3, 4)
	if err := m.SetSystem(FixedKey); err != nil {
		t.Fatal(err)
	}
	if err := m.SetAxisMode(SideKeys); err != nil {
		t.Fatal(err)
	}

	// ',' names D: the - pole flips the direction.
	got := press(m, "f,")
	expectTurns(t, got, puzzle.Turn{A: 2, B: 3, Dir: puzzle.Backward, Selector: sel(0, axes.Pos, 1)})
}

func TestFixedKey_DuplicateClearsAccumulation(t *testing.T) {
	m := newMachine(t, 3, 5)
	if err := m.SetSystem(FixedKey); err != nil {
		t.Fatal(err)
	}

	m.Press('f')
	res := m.Press('k')
	if !res.Alert || !errors.Is(res.Err, ErrDuplicateAxis) {
		t.Fatalf("selector axis: got %+v, want duplicate alert", res)
	}
	m.Press('j')
	res = m.Press('j')
	if !res.Alert || res.Turn != nil {
		t.Fatalf("repeated axis: got %+v, want duplicate alert", res)
	}
	if m.Keys() != "f" {
		t.Errorf("keys = %q, want only the selector", m.Keys())
	}

	// Accumulation starts over: U then F leaves (O, A).
	got := press(m, "jl")
	expectTurns(t, got, puzzle.Turn{A: 3, B: 4, Dir: puzzle.Forward, Selector: sel(0, axes.Pos, 1)})
}

func TestFixedKey_WholePuzzle(t *testing.T) {
	m := newMachine(t, 3, 4)
	if err := m.SetSystem(FixedKey); err != nil {
		t.Fatal(err)
	}
	got := press(m, "xfj")
	expectTurns(t, got, puzzle.Turn{A: 2, B: 3, Dir: puzzle.Forward, Whole: true})
}

func TestToggleSystemAborts(t *testing.T) {
	m := newMachine(t, 3, 4)
	press(m, "2fj")
	if _, err := m.ToggleSystem(); err != nil {
		t.Fatal(err)
	}
	if m.System() != FixedKey || m.State() != Idle || m.Depth() != 1 {
		t.Errorf("system=%v state=%v depth=%d", m.System(), m.State(), m.Depth())
	}
	if s, _ := m.ToggleSystem(); s != ThreeKey {
		t.Errorf("second toggle = %v, want three-key", s)
	}
}

func TestEmittedTurnsAreValid(t *testing.T) {
	for _, d := range []int{3, 4, 5, 6} {
		p, err := puzzle.New(3, d)
		if err != nil {
			t.Fatal(err)
		}
		m := newMachine(t, 3, d)
		if err := m.SetSystem(FixedKey); err != nil {
			t.Fatal(err)
		}
		reg, _ := axes.New(d)
		for _, ax := range reg.Axes() {
			m.Abort()
			m.Press(ax.Pos.SelectKey)
			for _, other := range reg.Axes() {
				res := m.Press(other.AxisKey)
				if res.Turn == nil {
					continue
				}
				if _, err := p.Apply(*res.Turn); err != nil {
					t.Errorf("d=%d: emitted %v: %v", d, *res.Turn, err)
				}
			}
		}
	}
}
