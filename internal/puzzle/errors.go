package puzzle

import (
	"errors"
	"fmt"
)

// Sentinel errors for the puzzle package.
var (
	// Construction errors
	ErrInvalidDimension = errors.New("puzzle: invalid dimension")
	ErrInvalidLayers    = errors.New("puzzle: invalid layer count")
	ErrTooLarge         = errors.New("puzzle: too many pieces")

	// Turn errors. Both specific errors wrap ErrInvalidTurn.
	ErrInvalidTurn     = errors.New("puzzle: invalid turn")
	ErrInvalidSelector = fmt.Errorf("%w: rotation plane must not contain the selector axis", ErrInvalidTurn)
	ErrDepthOutOfRange = fmt.Errorf("%w: depth out of range", ErrInvalidTurn)
	ErrNoSlicedTurns   = errors.New("puzzle: sliced turns need at least 3 dimensions")
)
