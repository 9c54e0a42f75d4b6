// Package puzzle provides the piece model and turn engine of an n^d
// hypercube puzzle.
package puzzle

import (
	"fmt"

	"github.com/SeamusWaldron/hypercube/internal/axes"
)

const (
	// MinLayers is the smallest supported layer count.
	MinLayers = 2
	// MaxLayers is the largest supported layer count.
	MaxLayers = 19
	// MaxPieces caps n^d so the puzzle fits in memory.
	MaxPieces = 1 << 22
)

// Puzzle is an n^d hypercube puzzle. It owns all of its pieces; the slot
// table maps every position to exactly one piece at all times.
type Puzzle struct {
	n, d   int
	pieces []Piece
	slots  []int32 // slot index -> piece index
}

// New creates a solved puzzle with n layers in d dimensions.
func New(n, d int) (*Puzzle, error) {
	if d < 1 || d > axes.MaxDim {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidDimension, d, axes.MaxDim)
	}
	if n < MinLayers || n > MaxLayers {
		return nil, fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidLayers, n, MinLayers, MaxLayers)
	}
	total := 1
	for i := 0; i < d; i++ {
		total *= n
		if total > MaxPieces {
			return nil, fmt.Errorf("%w: %d^%d pieces", ErrTooLarge, n, d)
		}
	}

	p := &Puzzle{
		n:      n,
		d:      d,
		pieces: make([]Piece, total),
		slots:  make([]int32, total),
	}
	p.Reset()
	return p, nil
}

// Reset restores every piece to its home slot and frame.
func (p *Puzzle) Reset() {
	frame := IdentityFrame(p.d)
	for i := range p.pieces {
		pos := p.posOf(i)
		p.pieces[i] = Piece{
			Home:     pos,
			Pos:      pos,
			Frame:    frame,
			Stickers: p.homeStickers(pos),
		}
		p.slots[i] = int32(i)
	}
}

// homeStickers lists one sticker per facet that pos touches.
func (p *Puzzle) homeStickers(pos Pos) []Sticker {
	var out []Sticker
	for axis := 0; axis < p.d; axis++ {
		if int(pos[axis]) == p.n-1 {
			out = append(out, Sticker{Origin: axes.NewFacet(axis, axes.Pos)})
		}
		if pos[axis] == 0 {
			out = append(out, Sticker{Origin: axes.NewFacet(axis, axes.Neg)})
		}
	}
	return out
}

// N returns the layer count.
func (p *Puzzle) N() int { return p.n }

// D returns the dimension.
func (p *Puzzle) D() int { return p.d }

// Len returns the number of pieces, n^d.
func (p *Puzzle) Len() int { return len(p.pieces) }

// slotOf returns the slot index of pos: sum of pos[i]*n^i.
func (p *Puzzle) slotOf(pos Pos) int {
	idx := 0
	for i := p.d - 1; i >= 0; i-- {
		idx = idx*p.n + int(pos[i])
	}
	return idx
}

// posOf is the inverse of slotOf.
func (p *Puzzle) posOf(slot int) Pos {
	var pos Pos
	for i := 0; i < p.d; i++ {
		pos[i] = int8(slot % p.n)
		slot /= p.n
	}
	return pos
}

// Valid reports whether pos lies inside the puzzle.
func (p *Puzzle) Valid(pos Pos) bool {
	for i, c := range pos {
		if i < p.d && (c < 0 || int(c) >= p.n) {
			return false
		}
		if i >= p.d && c != 0 {
			return false
		}
	}
	return true
}

// At returns the piece currently occupying pos. The piece is a copy;
// mutating it does not affect the puzzle.
func (p *Puzzle) At(pos Pos) (Piece, bool) {
	if !p.Valid(pos) {
		return Piece{}, false
	}
	return p.pieces[p.slots[p.slotOf(pos)]], true
}

// ColorAt returns the color of the sticker at pos facing f.
func (p *Puzzle) ColorAt(pos Pos, f axes.Facet) (axes.Facet, bool) {
	if !p.Valid(pos) {
		return 0, false
	}
	piece := &p.pieces[p.slots[p.slotOf(pos)]]
	s, ok := piece.StickerOn(f)
	if !ok {
		return 0, false
	}
	return s.Origin, true
}

// ColorsAt returns the sticker colors of the piece at pos.
func (p *Puzzle) ColorsAt(pos Pos) axes.Set {
	if !p.Valid(pos) {
		return 0
	}
	return p.pieces[p.slots[p.slotOf(pos)]].Colors()
}

// Pieces calls fn for every piece in slot order.
func (p *Puzzle) Pieces(fn func(Piece)) {
	for _, idx := range p.slots {
		fn(p.pieces[idx])
	}
}

// Solved reports whether every facet shows a single color.
//
// The check looks at the stickers themselves rather than the piece frames,
// so a whole-puzzle rotation of a solved puzzle stays solved.
func (p *Puzzle) Solved() bool {
	var seen [2 * axes.MaxDim]int8
	for i := range seen {
		seen[i] = -1
	}
	for i := range p.pieces {
		piece := &p.pieces[i]
		for _, s := range piece.Stickers {
			f := piece.Facet(s)
			switch seen[f] {
			case -1:
				seen[f] = int8(s.Origin)
			case int8(s.Origin):
			default:
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the puzzle.
func (p *Puzzle) Clone() *Puzzle {
	out := &Puzzle{
		n:      p.n,
		d:      p.d,
		pieces: make([]Piece, len(p.pieces)),
		slots:  make([]int32, len(p.slots)),
	}
	copy(out.pieces, p.pieces)
	copy(out.slots, p.slots)
	return out
}

// Equal reports whether both puzzles have the same pieces in the same
// slots and frames.
func (p *Puzzle) Equal(other *Puzzle) bool {
	if p.n != other.n || p.d != other.d {
		return false
	}
	for i := range p.pieces {
		a, b := &p.pieces[i], &other.pieces[i]
		if a.Pos != b.Pos || a.Frame != b.Frame {
			return false
		}
	}
	return true
}

// Debug returns a short summary string.
func (p *Puzzle) Debug() string {
	return fmt.Sprintf("%d^%d puzzle, %d pieces, solved: %v", p.n, p.d, len(p.pieces), p.Solved())
}
