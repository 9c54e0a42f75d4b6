package puzzle

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/hypercube/internal/axes"
)

// Direction is the sense of a quarter rotation.
type Direction int8

const (
	// Forward carries +A onto +B.
	Forward Direction = 1
	// Backward carries +A onto -B.
	Backward Direction = -1
)

// Selector chooses the slab a turn moves: the Depth outermost layers of
// the given pole of Axis.
type Selector struct {
	Axis  int
	Pole  axes.Pole
	Depth int
}

// Facet returns the facet the selector is anchored to.
func (s Selector) Facet() axes.Facet {
	return axes.NewFacet(s.Axis, s.Pole)
}

// Range returns the inclusive layer range the selector covers on an
// n-layer axis.
func (s Selector) Range(n int) (lo, hi int) {
	if s.Pole == axes.Neg {
		return 0, s.Depth - 1
	}
	return n - s.Depth, n - 1
}

// Turn is one generalized quarter rotation in the plane of axes A and B.
// When Whole is set the selector is ignored and every piece moves.
type Turn struct {
	A, B     int
	Dir      Direction
	Selector Selector
	Whole    bool
}

// SideTurn builds a sliced turn that carries facet from onto facet to.
func SideTurn(sel Selector, from, to axes.Facet) Turn {
	return Turn{
		A:        from.Axis(),
		B:        to.Axis(),
		Dir:      Direction(from.Pole().Sign() * to.Pole().Sign()),
		Selector: sel,
	}
}

// Rotation builds a whole-puzzle rotation that carries facet from onto to.
func Rotation(from, to axes.Facet) Turn {
	t := SideTurn(Selector{}, from, to)
	t.Whole = true
	return t
}

// Inverse returns the turn that undoes t.
func (t Turn) Inverse() Turn {
	inv := t
	inv.Dir = -t.Dir
	return inv
}

// Validate checks t against a puzzle with n layers in d dimensions.
func (t Turn) Validate(n, d int) error {
	if t.Dir != Forward && t.Dir != Backward {
		return fmt.Errorf("%w: direction %d", ErrInvalidTurn, t.Dir)
	}
	if t.A < 0 || t.A >= d || t.B < 0 || t.B >= d || t.A == t.B {
		return fmt.Errorf("%w: bad plane (%d, %d)", ErrInvalidTurn, t.A, t.B)
	}
	if t.Whole {
		return nil
	}
	sel := t.Selector
	if sel.Axis < 0 || sel.Axis >= d || sel.Axis == t.A || sel.Axis == t.B {
		return fmt.Errorf("%w: selector axis %d, plane (%d, %d)", ErrInvalidSelector, sel.Axis, t.A, t.B)
	}
	if sel.Depth < 1 || sel.Depth > n {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrDepthOutOfRange, sel.Depth, n)
	}
	return nil
}

// Notation returns a compact text form, e.g. "R2:U>F" or "*:U>F'".
func (t Turn) Notation() string {
	var sb strings.Builder
	if t.Whole {
		sb.WriteString("*")
	} else {
		sb.WriteString(t.Selector.Facet().String())
		if t.Selector.Depth > 1 {
			fmt.Fprintf(&sb, "%d", t.Selector.Depth)
		}
	}
	sb.WriteString(":")
	sb.WriteString(axes.NewFacet(t.A, axes.Pos).String())
	sb.WriteString(">")
	sb.WriteString(axes.NewFacet(t.B, axes.Pos).String())
	if t.Dir == Backward {
		sb.WriteString("'")
	}
	return sb.String()
}

func (t Turn) String() string {
	return t.Notation()
}

// AppliedTurn reports the outcome of Apply.
type AppliedTurn struct {
	Turn  Turn
	Moved int // pieces in the slab
}

// Apply performs t. An invalid turn leaves the puzzle untouched.
func (p *Puzzle) Apply(t Turn) (AppliedTurn, error) {
	if err := t.Validate(p.n, p.d); err != nil {
		return AppliedTurn{}, err
	}

	var moved []int32
	if t.Whole {
		moved = append(moved, p.slots...)
	} else {
		lo, hi := t.Selector.Range(p.n)
		moved = p.slab(t.Selector.Axis, lo, hi)
	}

	dir := int(t.Dir)
	last := int8(p.n - 1)
	for _, idx := range moved {
		piece := &p.pieces[idx]
		a, b := piece.Pos[t.A], piece.Pos[t.B]
		if dir > 0 {
			piece.Pos[t.A], piece.Pos[t.B] = last-b, a
		} else {
			piece.Pos[t.A], piece.Pos[t.B] = b, last-a
		}
		piece.Frame = piece.Frame.Rotate(t.A, t.B, dir)
	}
	// The slab maps onto itself, so the slots can be rewritten in place.
	for _, idx := range moved {
		p.slots[p.slotOf(p.pieces[idx].Pos)] = idx
	}

	return AppliedTurn{Turn: t, Moved: len(moved)}, nil
}

// slab collects the pieces whose coordinate on axis lies in [lo, hi].
func (p *Puzzle) slab(axis, lo, hi int) []int32 {
	stride := 1
	for i := 0; i < axis; i++ {
		stride *= p.n
	}
	outer := len(p.slots) / (stride * p.n)

	out := make([]int32, 0, outer*(hi-lo+1)*stride)
	for o := 0; o < outer; o++ {
		base := o * stride * p.n
		for layer := lo; layer <= hi; layer++ {
			start := base + layer*stride
			out = append(out, p.slots[start:start+stride]...)
		}
	}
	return out
}

// ApplyAll performs turns in order and stops at the first error.
func (p *Puzzle) ApplyAll(turns []Turn) error {
	for i, t := range turns {
		if _, err := p.Apply(t); err != nil {
			return fmt.Errorf("turn %d (%s): %w", i, t, err)
		}
	}
	return nil
}
