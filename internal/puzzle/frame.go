package puzzle

import "github.com/SeamusWaldron/hypercube/internal/axes"

// Frame is a signed permutation of the puzzle axes. Entry i holds the
// current direction of home axis i as ±(axis+1); zero entries are unused.
type Frame [axes.MaxDim]int8

// IdentityFrame returns the frame of an unturned piece in d dimensions.
func IdentityFrame(d int) Frame {
	var f Frame
	for i := 0; i < d; i++ {
		f[i] = int8(i + 1)
	}
	return f
}

// Apply returns the facet a sticker that started on home now faces.
func (f Frame) Apply(home axes.Facet) axes.Facet {
	t := f[home.Axis()]
	pole := home.Pole()
	if t < 0 {
		t = -t
		pole = pole.Opposite()
	}
	return axes.NewFacet(int(t)-1, pole)
}

// Rotate composes the frame with a quarter rotation in plane (a, b).
// dir > 0 carries +a onto +b and +b onto -a.
func (f Frame) Rotate(a, b, dir int) Frame {
	out := f
	for i, t := range f {
		if t == 0 {
			continue
		}
		sign := int8(1)
		ax := int(t) - 1
		if t < 0 {
			sign = -1
			ax = int(-t) - 1
		}
		switch ax {
		case a:
			out[i] = sign * int8(dir) * int8(b+1)
		case b:
			out[i] = -sign * int8(dir) * int8(a+1)
		}
	}
	return out
}
