// Package axes describes the axes and facets of a hypercube puzzle.
//
// Axes are ordered R/L, U/D, F/B, O/I, A/P, Γ/Δ, Θ/Λ, Ξ/Π, Σ/Φ, Ψ/Ω. Each
// axis has a positive and a negative pole, and each pole is bound to one
// facet with its own label, color and keys.
package axes

import "fmt"

// MaxDim is the largest supported puzzle dimension.
const MaxDim = 10

// MaxSideModeDim is the largest dimension that has room for side keybinds.
const MaxSideModeDim = 6

// Pole selects one end of an axis.
type Pole uint8

const (
	Pos Pole = 0 // + pole, layer n-1
	Neg Pole = 1 // - pole, layer 0
)

func (p Pole) String() string {
	if p == Neg {
		return "-"
	}
	return "+"
}

// Sign returns +1 for Pos and -1 for Neg.
func (p Pole) Sign() int {
	if p == Neg {
		return -1
	}
	return 1
}

// Opposite returns the other pole.
func (p Pole) Opposite() Pole {
	return p ^ 1
}

// Facet identifies one of the 2d boundary faces. A facet also serves as
// the color of every sticker that starts on it.
//
// Encoding: axis*2 + pole.
type Facet uint8

// NewFacet returns the facet at the given pole of axis.
func NewFacet(axis int, pole Pole) Facet {
	return Facet(axis*2) | Facet(pole)
}

// Axis returns the axis the facet lies on.
func (f Facet) Axis() int {
	return int(f >> 1)
}

// Pole returns which end of its axis the facet is.
func (f Facet) Pole() Pole {
	return Pole(f & 1)
}

// Opposite returns the facet across the puzzle.
func (f Facet) Opposite() Facet {
	return f ^ 1
}

// Name returns the facet's label glyph.
func (f Facet) Name() rune {
	if f.Axis() >= MaxDim {
		return '?'
	}
	if f.Pole() == Neg {
		return negNames[f.Axis()]
	}
	return posNames[f.Axis()]
}

func (f Facet) String() string {
	return string(f.Name())
}

// Set is a bitset of facets. 2*MaxDim facets fit in 32 bits.
type Set uint32

// Add returns s with f included.
func (s Set) Add(f Facet) Set {
	return s | 1<<f
}

// Has reports whether f is in s.
func (s Set) Has(f Facet) bool {
	return s&(1<<f) != 0
}

// Subset reports whether every facet of s is in other.
func (s Set) Subset(other Set) bool {
	return s&other == s
}

// Disjoint reports whether s and other share no facet.
func (s Set) Disjoint(other Set) bool {
	return s&other == 0
}

// Facets lists the members of s in ascending order.
func (s Set) Facets() []Facet {
	var out []Facet
	for f := Facet(0); f < 2*MaxDim; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Side describes one pole of an axis.
type Side struct {
	Facet     Facet
	Name      rune
	Color     string // hex, "#rrggbb"
	SelectKey rune   // selects this side as the turning slab
	SideKey   rune   // names this side in side keybind mode; 0 if none
}

// Axis describes one axis and its two sides.
type Axis struct {
	Index   int
	Pos     Side
	Neg     Side
	AxisKey rune // names this axis in axis keybind mode
}

// Side returns the side at pole p.
func (a Axis) Side(p Pole) Side {
	if p == Neg {
		return a.Neg
	}
	return a.Pos
}

// Registry is the static axis table for a puzzle of dimension d.
type Registry struct {
	axes   []Axis
	byName map[rune]Facet
	bySel  map[rune]Facet
	byAxis map[rune]int
	bySide map[rune]Facet
}

// New builds the registry for dimension d.
func New(d int) (*Registry, error) {
	if d < 1 || d > MaxDim {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidDimension, d, MaxDim)
	}

	r := &Registry{
		axes:   make([]Axis, d),
		byName: make(map[rune]Facet, 2*d),
		bySel:  make(map[rune]Facet, 2*d),
		byAxis: make(map[rune]int, d),
		bySide: make(map[rune]Facet, 2*d),
	}

	for i := 0; i < d; i++ {
		ax := Axis{
			Index:   i,
			AxisKey: axisKeys[i],
			Pos: Side{
				Facet:     NewFacet(i, Pos),
				Name:      posNames[i],
				Color:     posColors[i],
				SelectKey: posKeys[i],
			},
			Neg: Side{
				Facet:     NewFacet(i, Neg),
				Name:      negNames[i],
				Color:     negColors[i],
				SelectKey: negKeys[i],
			},
		}
		if d <= MaxSideModeDim {
			ax.Pos.SideKey = posSideKeys[i]
			ax.Neg.SideKey = negSideKeys[i]
			r.bySide[ax.Pos.SideKey] = ax.Pos.Facet
			r.bySide[ax.Neg.SideKey] = ax.Neg.Facet
		}
		r.axes[i] = ax

		r.byName[ax.Pos.Name] = ax.Pos.Facet
		r.byName[ax.Neg.Name] = ax.Neg.Facet
		r.bySel[ax.Pos.SelectKey] = ax.Pos.Facet
		r.bySel[ax.Neg.SelectKey] = ax.Neg.Facet
		r.byAxis[ax.AxisKey] = i
	}

	return r, nil
}

// Dim returns the number of axes.
func (r *Registry) Dim() int {
	return len(r.axes)
}

// Axes returns the axis table.
func (r *Registry) Axes() []Axis {
	return r.axes
}

// Axis returns axis i.
func (r *Registry) Axis(i int) Axis {
	return r.axes[i]
}

// Side returns the side description for facet f.
func (r *Registry) Side(f Facet) Side {
	return r.axes[f.Axis()].Side(f.Pole())
}

// Facets lists all 2d facets in encoding order.
func (r *Registry) Facets() []Facet {
	out := make([]Facet, 0, 2*len(r.axes))
	for i := range r.axes {
		out = append(out, NewFacet(i, Pos), NewFacet(i, Neg))
	}
	return out
}

// FacetByName looks up a facet by its label glyph.
func (r *Registry) FacetByName(name rune) (Facet, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// FacetBySelectKey looks up the facet a selector key chooses.
func (r *Registry) FacetBySelectKey(key rune) (Facet, bool) {
	f, ok := r.bySel[key]
	return f, ok
}

// AxisByKey looks up the axis an axis-mode key names.
func (r *Registry) AxisByKey(key rune) (int, bool) {
	i, ok := r.byAxis[key]
	return i, ok
}

// FacetBySideKey looks up the facet a side-mode key names.
func (r *Registry) FacetBySideKey(key rune) (Facet, bool) {
	f, ok := r.bySide[key]
	return f, ok
}

// HasSideKeys reports whether side keybind mode is available.
func (r *Registry) HasSideKeys() bool {
	return len(r.axes) <= MaxSideModeDim
}
