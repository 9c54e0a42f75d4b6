package axes

import "errors"

// ErrInvalidDimension is returned for dimensions outside [1, MaxDim].
var ErrInvalidDimension = errors.New("axes: invalid dimension")

var (
	posNames = [MaxDim]rune{'R', 'U', 'F', 'O', 'A', 'Γ', 'Θ', 'Ξ', 'Σ', 'Ψ'}
	negNames = [MaxDim]rune{'L', 'D', 'B', 'I', 'P', 'Δ', 'Λ', 'Π', 'Φ', 'Ω'}

	// Selector keys sit on the left hand.
	posKeys = [MaxDim]rune{'f', 'e', 'r', 't', 'v', 'y', 'n', 'q', ',', '/'}
	negKeys = [MaxDim]rune{'s', 'd', 'w', 'g', 'c', 'h', 'b', 'a', 'm', '.'}

	// Axis and side keys sit on the right hand.
	axisKeys    = [MaxDim]rune{'k', 'j', 'l', 'i', 'u', 'o', 'p', ';', '[', '\''}
	posSideKeys = [MaxSideModeDim]rune{'l', 'i', 'j', '.', 'p', '['}
	negSideKeys = [MaxSideModeDim]rune{'u', ',', 'o', 'k', 'm', ';'}

	posColors = [MaxDim]string{
		"#ff0000", "#ffffff", "#00ff00", "#ff00ff", "#0aaa85",
		"#774811", "#f49fef", "#b29867", "#9cf542", "#078517",
	}
	negColors = [MaxDim]string{
		"#ff8000", "#ffff00", "#0080ff", "#8f10ea", "#7daa0a",
		"#6d4564", "#d4a94e", "#b27967", "#42d4f5", "#2f2fbd",
	}
)
