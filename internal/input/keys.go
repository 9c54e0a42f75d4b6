package input

// Special keys are delivered as private runes so the whole key stream is
// a plain sequence of runes.
const (
	EscapeKey    rune = '⎋'
	BackspaceKey rune = '⌫'
	EnterKey     rune = '\n'
)

// Fixed global bindings.
const (
	RotateKey     rune = 'x'
	ScrambleKey   rune = '='
	ResetKey      rune = '-'
	SystemKey     rune = '\\'
	AxisModeKey   rune = '|'
	UndoKey       rune = 'z'
	RedoKey       rune = 'Z'
	NextFilterKey rune = 'K'
	PrevFilterKey rune = 'J'
	LiveFilterKey rune = 'F'
)

// Kind classifies a key for the transition table.
type Kind int

const (
	KindNone Kind = iota
	KindDigit
	KindSelector
	KindFlipSelector // d=3 fixed-key: select a side and turn it backwards
	KindRotate
	KindAxis
	KindEscape
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindSelector:
		return "selector"
	case KindFlipSelector:
		return "flip-selector"
	case KindRotate:
		return "rotate"
	case KindAxis:
		return "axis"
	case KindEscape:
		return "escape"
	default:
		return "none"
	}
}
