// Package layout projects the pieces and stickers of an n^d puzzle onto a
// flat 2-D grid.
//
// The layout of dimension d is built from the layout of dimension d-1: one
// copy per layer along the new axis, plus a cap at each end that holds only
// the stickers on that axis's facets. Odd dimensions are laid out side by
// side, even ones stacked. Layouts depend only on (n, d, compact) and are
// memoized.
package layout

import (
	"fmt"
	"sync"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

// Gap tables indexed by dimension.
var (
	gaps        = [axes.MaxDim + 1]int{0, 1, 0, 2, 1, 10, 4, 40, 18, 100, 40}
	compactGaps = [axes.MaxDim + 1]int{0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0}
)

// Point is a screen cell.
type Point struct {
	X, Y int
}

// Cell is what a screen point shows: a piece body, or the sticker of the
// piece at Pos that faces Facet.
type Cell struct {
	Pos     puzzle.Pos
	Sticker bool
	Facet   axes.Facet
}

// Hint marks a face-center cell where the renderer can print a key. Core
// hints mark the very center of the puzzle.
type Hint struct {
	Core  bool
	Facet axes.Facet
}

type sticker struct {
	pos   puzzle.Pos
	facet axes.Facet
}

// Layout is the flat projection of one puzzle shape.
type Layout struct {
	N, D    int
	Compact bool
	Width   int
	Height  int
	Cells   map[Point]Cell
	Hints   map[Point]Hint

	bodies   map[puzzle.Pos]Point
	stickers map[sticker]Point
}

type key struct {
	n, d    int
	compact bool
}

var (
	cacheMu sync.Mutex
	cache   = map[key]*Layout{}
)

// For returns the layout of an n^d puzzle, building it on first use.
func For(n, d int, compact bool) (*Layout, error) {
	if d < 1 || d > axes.MaxDim {
		return nil, fmt.Errorf("%w: %d", puzzle.ErrInvalidDimension, d)
	}
	if n < puzzle.MinLayers || n > puzzle.MaxLayers {
		return nil, fmt.Errorf("%w: %d", puzzle.ErrInvalidLayers, n)
	}

	k := key{n, d, compact}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if l, ok := cache[k]; ok {
		return l, nil
	}
	l := build(n, d, compact)
	cache[k] = l
	return l, nil
}

func build(n, d int, compact bool) *Layout {
	g := makeGrid(n, d, compact).moveRight(1)

	l := &Layout{
		N:        n,
		D:        d,
		Compact:  compact,
		Width:    g.width,
		Height:   g.height,
		Cells:    make(map[Point]Cell, len(g.points)),
		Hints:    make(map[Point]Hint, len(g.hints)),
		bodies:   make(map[puzzle.Pos]Point),
		stickers: make(map[sticker]Point),
	}
	for _, p := range g.points {
		pt := Point{p.x, p.y}
		cell := toCell(p.coords, n)
		l.Cells[pt] = cell
		if cell.Sticker {
			l.stickers[sticker{cell.Pos, cell.Facet}] = pt
		} else {
			l.bodies[cell.Pos] = pt
		}
	}
	for _, h := range g.hints {
		l.Hints[Point{h.x, h.y}] = Hint{Core: h.core, Facet: h.facet}
	}
	return l
}

// toCell converts doubled coordinates (layer i maps to 2i-(n-1), facets to
// ±n) into a layer position and optional facet.
func toCell(coords []int16, n int) Cell {
	var c Cell
	for axis, v := range coords {
		switch {
		case int(v) == n:
			c.Sticker = true
			c.Facet = axes.NewFacet(axis, axes.Pos)
			c.Pos[axis] = int8(n - 1)
		case int(v) == -n:
			c.Sticker = true
			c.Facet = axes.NewFacet(axis, axes.Neg)
			c.Pos[axis] = 0
		default:
			c.Pos[axis] = int8((int(v) + n - 1) / 2)
		}
	}
	return c
}

// Project returns the screen point of the body of the piece slot at pos.
func (l *Layout) Project(pos puzzle.Pos) (Point, bool) {
	pt, ok := l.bodies[pos]
	return pt, ok
}

// ProjectSticker returns the screen point of the sticker at pos facing f.
func (l *Layout) ProjectSticker(pos puzzle.Pos, f axes.Facet) (Point, bool) {
	pt, ok := l.stickers[sticker{pos, f}]
	return pt, ok
}

// Len returns the number of drawn cells.
func (l *Layout) Len() int {
	return len(l.Cells)
}
