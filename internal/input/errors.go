package input

import "errors"

var (
	ErrFixedKeyUnavailable = errors.New("input: fixed-key mode needs at least 3 layers and 3 dimensions")
	ErrSideKeysUnavailable = errors.New("input: side keybinds need at most 6 dimensions")
	ErrRejectedAxis        = errors.New("input: axis cannot be used here")
	ErrDuplicateAxis       = errors.New("input: axis already used in this turn")
	ErrUnknownName         = errors.New("input: unknown mode name")
)
