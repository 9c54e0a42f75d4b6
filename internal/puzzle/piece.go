package puzzle

import "github.com/SeamusWaldron/hypercube/internal/axes"

// Pos is a position vector of layer coordinates, one per axis.
// Coordinates beyond the puzzle dimension are zero.
type Pos [axes.MaxDim]int8

// Sticker is a colored marker on a piece. Origin is the facet it sat on
// when the puzzle was solved, which is also its color.
type Sticker struct {
	Origin axes.Facet
}

// Piece is one of the n^d units of the puzzle.
type Piece struct {
	Home     Pos
	Pos      Pos
	Frame    Frame
	Stickers []Sticker
}

// Facet returns the facet sticker s currently faces.
func (p *Piece) Facet(s Sticker) axes.Facet {
	return p.Frame.Apply(s.Origin)
}

// StickerOn returns the sticker currently facing f, if any.
func (p *Piece) StickerOn(f axes.Facet) (Sticker, bool) {
	for _, s := range p.Stickers {
		if p.Facet(s) == f {
			return s, true
		}
	}
	return Sticker{}, false
}

// Colors returns the set of sticker colors the piece carries.
func (p *Piece) Colors() axes.Set {
	var set axes.Set
	for _, s := range p.Stickers {
		set = set.Add(s.Origin)
	}
	return set
}
