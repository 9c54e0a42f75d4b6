// Package input turns a stream of keypresses into turns.
//
// Two turn systems are supported. In three-key mode a selector key picks
// the slab, then two axis keys name the plane: the first is carried onto
// the second. Further axis keys chain from the last one. In fixed-key mode
// the selector is followed by d-3 axis keys that stay fixed; the two axes
// left over form the plane, and the direction follows from the order and
// poles of the keys.
//
// Axis keys come in two flavours: axis keybinds name an axis (always the
// + pole) and side keybinds name a facet.
package input

import (
	"fmt"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

// State is the position of the machine within a key sequence.
type State int

const (
	Idle State = iota
	AwaitingFirstAxis
	AwaitingSecondAxis
	AccumulatingFixedAxes
)

func (s State) String() string {
	switch s {
	case AwaitingFirstAxis:
		return "awaiting-first-axis"
	case AwaitingSecondAxis:
		return "awaiting-second-axis"
	case AccumulatingFixedAxes:
		return "accumulating-fixed-axes"
	default:
		return "idle"
	}
}

// System is the turn system in use.
type System int

const (
	ThreeKey System = iota
	FixedKey
)

func (s System) String() string {
	if s == FixedKey {
		return "fixed-key"
	}
	return "three-key"
}

// AxisMode selects how axis keys are read.
type AxisMode int

const (
	AxisKeys AxisMode = iota
	SideKeys
)

func (m AxisMode) String() string {
	if m == SideKeys {
		return "side"
	}
	return "axis"
}

// Key is a classified keypress.
type Key struct {
	Rune  rune
	Kind  Kind
	Digit int
	Facet axes.Facet
}

// Result is the outcome of one keypress.
type Result struct {
	Turn         *puzzle.Turn
	Handled      bool
	Alert        bool
	Err          error
	ClearMessage bool
}

// Machine is the keypress interpreter for one puzzle shape.
type Machine struct {
	reg    *axes.Registry
	n      int
	system System
	mode   AxisMode

	state  State
	depth  int
	whole  bool
	flip   bool
	sel    puzzle.Selector
	first  axes.Facet
	fixed  []axes.Facet
	keys   []rune
	prefix int // len(keys) once the selector is captured
}

// New creates an idle machine in three-key, axis keybind mode.
func New(reg *axes.Registry, n int) *Machine {
	return &Machine{reg: reg, n: n, depth: 1}
}

// Press feeds one key through the transition table. Keys with no
// transition from the current state are ignored.
func (m *Machine) Press(r rune) Result {
	k := m.classify(r)
	if k.Kind == KindNone {
		return Result{}
	}
	do, ok := transitions[trigger{m.system, m.state, k.Kind}]
	if !ok {
		return Result{}
	}
	return do(m, k)
}

func (m *Machine) classify(r rune) Key {
	k := Key{Rune: r}
	switch {
	case r == EscapeKey:
		k.Kind = KindEscape
	case r >= '1' && r <= '9':
		if d := int(r - '0'); d <= m.n {
			k.Kind = KindDigit
			k.Digit = d
		}
	case r == RotateKey:
		k.Kind = KindRotate
	default:
		if f, ok := m.reg.FacetBySelectKey(r); ok {
			k.Kind = KindSelector
			k.Facet = f
			return k
		}
		if m.system == FixedKey && m.reg.Dim() == 3 {
			if f, ok := m.reg.FacetBySideKey(r); ok {
				k.Kind = KindFlipSelector
				k.Facet = f
			}
			return k
		}
		if m.mode == SideKeys {
			if f, ok := m.reg.FacetBySideKey(r); ok {
				k.Kind = KindAxis
				k.Facet = f
			}
		} else if i, ok := m.reg.AxisByKey(r); ok {
			k.Kind = KindAxis
			k.Facet = axes.NewFacet(i, axes.Pos)
		}
	}
	return k
}

// Abort drops any partial sequence and the pending depth.
func (m *Machine) Abort() {
	m.state = Idle
	m.depth = 1
	m.whole = false
	m.flip = false
	m.sel = puzzle.Selector{}
	m.fixed = m.fixed[:0]
	m.keys = m.keys[:0]
	m.prefix = 0
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// System returns the active turn system.
func (m *Machine) System() System { return m.system }

// AxisMode returns the active axis keybind mode.
func (m *Machine) AxisMode() AxisMode { return m.mode }

// Depth returns the pending depth.
func (m *Machine) Depth() int { return m.depth }

// Keys returns the keys of the sequence in progress.
func (m *Machine) Keys() string { return string(m.keys) }

// SetSystem switches the turn system and aborts any partial sequence.
func (m *Machine) SetSystem(s System) error {
	if s == FixedKey && (m.n < 3 || m.reg.Dim() < 3) {
		return ErrFixedKeyUnavailable
	}
	m.Abort()
	m.system = s
	return nil
}

// ToggleSystem flips between three-key and fixed-key.
func (m *Machine) ToggleSystem() (System, error) {
	next := FixedKey
	if m.system == FixedKey {
		next = ThreeKey
	}
	if err := m.SetSystem(next); err != nil {
		return m.system, err
	}
	return next, nil
}

// SetAxisMode switches between axis and side keybinds.
func (m *Machine) SetAxisMode(mode AxisMode) error {
	if mode == SideKeys && !m.reg.HasSideKeys() {
		return ErrSideKeysUnavailable
	}
	m.Abort()
	m.mode = mode
	return nil
}

// ToggleAxisMode flips between axis and side keybinds.
func (m *Machine) ToggleAxisMode() (AxisMode, error) {
	next := SideKeys
	if m.mode == SideKeys {
		next = AxisKeys
	}
	if err := m.SetAxisMode(next); err != nil {
		return m.mode, err
	}
	return next, nil
}

func (m *Machine) setDepth(k Key) Result {
	m.Abort()
	m.depth = k.Digit
	m.keys = append(m.keys, k.Rune)
	return Result{Handled: true}
}

func (m *Machine) escape(Key) Result {
	m.Abort()
	return Result{Handled: true, ClearMessage: true}
}

func (m *Machine) capture(k Key) {
	if m.state != Idle {
		m.Abort()
	}
	m.sel = puzzle.Selector{Axis: k.Facet.Axis(), Pole: k.Facet.Pole(), Depth: m.depth}
	m.keys = append(m.keys, k.Rune)
	m.prefix = len(m.keys)
}

func (m *Machine) rewind() {
	m.keys = m.keys[:m.prefix]
}

func (m *Machine) selectSide(k Key) Result {
	m.capture(k)
	m.whole = false
	m.state = AwaitingFirstAxis
	return Result{Handled: true}
}

func (m *Machine) selectWhole(k Key) Result {
	m.Abort()
	m.whole = true
	m.keys = append(m.keys, k.Rune)
	m.prefix = len(m.keys)
	m.state = AwaitingFirstAxis
	return Result{Handled: true}
}

func (m *Machine) firstAxis(k Key) Result {
	if !m.whole && k.Facet.Axis() == m.sel.Axis {
		return Result{Handled: true, Alert: true, Err: ErrRejectedAxis}
	}
	m.first = k.Facet
	m.keys = append(m.keys, k.Rune)
	m.state = AwaitingSecondAxis
	return Result{Handled: true}
}

func (m *Machine) secondAxis(k Key) Result {
	to := k.Facet
	if to.Axis() == m.first.Axis() || (!m.whole && to.Axis() == m.sel.Axis) {
		return Result{Handled: true, Alert: true, Err: ErrRejectedAxis}
	}

	var t puzzle.Turn
	if m.whole {
		t = puzzle.Rotation(m.first, to)
	} else {
		t = puzzle.SideTurn(m.sel, m.first, to)
	}

	m.first = to
	m.depth = 1
	m.rewind()
	m.keys = append(m.keys, k.Rune)
	return Result{Turn: &t, Handled: true}
}

func (m *Machine) selectFixed(k Key) Result {
	whole := m.whole && m.state == Idle
	m.capture(k)
	m.whole = whole
	m.flip = k.Kind == KindFlipSelector
	m.fixed = m.fixed[:0]
	m.state = AccumulatingFixedAxes
	if m.reg.Dim() > 3 {
		return Result{Handled: true}
	}
	t := m.fixedTurn()
	m.Abort()
	return Result{Turn: &t, Handled: true}
}

func (m *Machine) markWhole(k Key) Result {
	m.whole = true
	m.keys = append(m.keys, k.Rune)
	if m.state == AccumulatingFixedAxes {
		m.prefix = len(m.keys)
	}
	return Result{Handled: true}
}

func (m *Machine) fixedAxis(k Key) Result {
	axis := k.Facet.Axis()
	dup := axis == m.sel.Axis
	for _, f := range m.fixed {
		dup = dup || f.Axis() == axis
	}
	if dup {
		m.fixed = m.fixed[:0]
		m.rewind()
		return Result{Handled: true, Alert: true, Err: ErrDuplicateAxis}
	}

	m.fixed = append(m.fixed, k.Facet)
	m.keys = append(m.keys, k.Rune)
	if len(m.fixed) < m.reg.Dim()-3 {
		return Result{Handled: true}
	}

	t := m.fixedTurn()
	m.fixed = m.fixed[:0]
	m.depth = 1
	m.rewind()
	return Result{Turn: &t, Handled: true}
}

// fixedTurn builds the turn for the selector and the fixed axes held so
// far. The plane is made of the two axes left over, in ascending order.
// Above three dimensions the direction is the product of the pressed pole
// signs, negated when d(d-1)/2 is odd.
func (m *Machine) fixedTurn() puzzle.Turn {
	d := m.reg.Dim()
	used := make([]bool, d)
	perm := make([]int, 0, d)

	sign := m.sel.Pole.Sign()
	perm = append(perm, m.sel.Axis)
	used[m.sel.Axis] = true
	for _, f := range m.fixed {
		perm = append(perm, f.Axis())
		used[f.Axis()] = true
		sign *= f.Pole().Sign()
	}
	for i := 0; i < d; i++ {
		if !used[i] {
			perm = append(perm, i)
		}
	}
	switch {
	case d == 3:
		// Each side turns toward the next axis in cyclic order.
		if m.sel.Axis == 1 {
			sign = -sign
		}
		if m.flip {
			sign = -sign
		}
	case d*(d-1)/2%2 == 1:
		sign = -sign
	}

	t := puzzle.Turn{
		A:        perm[d-2],
		B:        perm[d-1],
		Dir:      puzzle.Direction(sign),
		Selector: m.sel,
	}
	if m.whole {
		t.Whole = true
		t.Selector = puzzle.Selector{}
	}
	return t
}

// ParseSystem reads a turn system name as printed by System.String.
func ParseSystem(name string) (System, error) {
	switch name {
	case "", ThreeKey.String():
		return ThreeKey, nil
	case FixedKey.String():
		return FixedKey, nil
	}
	return ThreeKey, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// ParseAxisMode reads an axis mode name as printed by AxisMode.String.
func ParseAxisMode(name string) (AxisMode, error) {
	switch name {
	case "", AxisKeys.String():
		return AxisKeys, nil
	case SideKeys.String():
		return SideKeys, nil
	}
	return AxisKeys, fmt.Errorf("%w: %q", ErrUnknownName, name)
}
