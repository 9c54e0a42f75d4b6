package layout

import "github.com/SeamusWaldron/hypercube/internal/axes"

// point is a grid cell labelled with doubled coordinates: layer i of n maps
// to 2i-(n-1), and the facets of an axis sit at ±n.
type point struct {
	x, y   int
	coords []int16
}

type hint struct {
	x, y  int
	core  bool
	facet axes.Facet
}

// grid is the layout under construction.
type grid struct {
	width, height int
	points        []point
	hints         []hint
}

func makeGrid(n, d int, compact bool) grid {
	if d == 0 {
		g := grid{width: 1, height: 1, points: []point{{}}}
		if n > 2 {
			g.hints = []hint{{core: true}}
		}
		return g
	}

	gap := gaps[d]
	if compact {
		gap = compactGaps[d]
	}
	lower := makeGrid(n, d-1, compact)

	layers := []int{-n}
	for i := -n + 1; i < n; i += 2 {
		layers = append(layers, i)
	}
	layers = append(layers, n)

	row := make([]grid, 0, len(layers))
	for _, i := range layers {
		sub := lower.pushAll(int16(i)).clean(n)
		if i == n || i == -n {
			if d%2 == 1 {
				sub = sub.squishHoriz()
			} else {
				sub = sub.squishVert()
			}
		}
		sub.hints = keepHints(lower.hints, i, n, d)
		row = append(row, sub)
	}

	if d%2 == 1 {
		return concat(row, gap, true)
	}
	for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
		row[i], row[j] = row[j], row[i]
	}
	return concat(row, gap, false)
}

// keepHints decides which hints of the lower layout survive in layer i.
// The layers next to each cap turn the core hint into a hint for that
// cap's facet; the middle layers keep what they have.
func keepHints(hints []hint, i, n, d int) []hint {
	var out []hint
	for _, h := range hints {
		switch {
		case i == -n+1:
			if h.core {
				out = append(out, hint{x: h.x, y: h.y, facet: axes.NewFacet(d-1, axes.Neg)})
			}
		case i == n-1:
			if h.core {
				out = append(out, hint{x: h.x, y: h.y, facet: axes.NewFacet(d-1, axes.Pos)})
			}
		case i == 0 || i == 1:
			out = append(out, h)
		}
	}
	return out
}

// pushAll appends coordinate c to every point.
func (g grid) pushAll(c int16) grid {
	out := grid{width: g.width, height: g.height, points: make([]point, len(g.points))}
	for i, p := range g.points {
		coords := make([]int16, len(p.coords)+1)
		copy(coords, p.coords)
		coords[len(p.coords)] = c
		out.points[i] = point{x: p.x, y: p.y, coords: coords}
	}
	return out
}

// clean drops points that touch more than one facet; those would be
// stickers on a ridge, which no piece shows.
func (g grid) clean(n int) grid {
	kept := g.points[:0:0]
	for _, p := range g.points {
		extreme := 0
		for _, c := range p.coords {
			if int(c) == n || int(c) == -n {
				extreme++
			}
		}
		if extreme <= 1 {
			kept = append(kept, p)
		}
	}
	g.points = kept
	return g
}

func (g grid) moveRight(shift int) grid {
	out := grid{width: g.width + shift, height: g.height}
	out.points = make([]point, len(g.points))
	for i, p := range g.points {
		p.x += shift
		out.points[i] = p
	}
	out.hints = make([]hint, len(g.hints))
	for i, h := range g.hints {
		h.x += shift
		out.hints[i] = h
	}
	return out
}

func (g grid) moveDown(shift int) grid {
	out := grid{width: g.width, height: g.height + shift}
	out.points = make([]point, len(g.points))
	for i, p := range g.points {
		p.y += shift
		out.points[i] = p
	}
	out.hints = make([]hint, len(g.hints))
	for i, h := range g.hints {
		h.y += shift
		out.hints[i] = h
	}
	return out
}

func (g grid) squishHoriz() grid {
	if len(g.points) == 0 {
		g.width = 0
		return g
	}
	lo, hi := g.points[0].x, g.points[0].x
	for _, p := range g.points {
		lo = min(lo, p.x)
		hi = max(hi, p.x)
	}
	out := g.moveRight(-lo)
	out.width = hi - lo + 1
	return out
}

func (g grid) squishVert() grid {
	if len(g.points) == 0 {
		g.height = 0
		return g
	}
	lo, hi := g.points[0].y, g.points[0].y
	for _, p := range g.points {
		lo = min(lo, p.y)
		hi = max(hi, p.y)
	}
	out := g.moveDown(-lo)
	out.height = hi - lo + 1
	return out
}

func (g *grid) union(other grid) {
	g.points = append(g.points, other.points...)
	g.hints = append(g.hints, other.hints...)
	g.width = max(g.width, other.width)
	g.height = max(g.height, other.height)
}

// concat joins grids left to right (horiz) or top to bottom with gap
// empty cells between neighbours.
func concat(grids []grid, gap int, horiz bool) grid {
	out := grids[0]
	for _, g := range grids[1:] {
		if horiz {
			out.union(g.moveRight(out.width + gap))
		} else {
			out.union(g.moveDown(out.height + gap))
		}
	}
	return out
}
