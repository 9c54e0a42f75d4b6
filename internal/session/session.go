// Package session runs one interactive puzzle. A Session owns the puzzle,
// the key interpreter, the undo history and the filters, and turns every
// key press into state changes and a status line for the renderer.
package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/filter"
	"github.com/SeamusWaldron/hypercube/internal/history"
	"github.com/SeamusWaldron/hypercube/internal/input"
	"github.com/SeamusWaldron/hypercube/internal/keylog"
	"github.com/SeamusWaldron/hypercube/internal/layout"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

// DamageRepeat is how many times in a row the scramble or reset key must
// be pressed before it acts.
const DamageRepeat = 5

// Recorder stores solve statistics. A solve starts at a scramble and ends
// when the puzzle is solved, reset or scrambled again.
type Recorder interface {
	Start(n, d int, seed int64, scrambleTurns int) (string, error)
	Turn(solveID string, index int, t puzzle.Turn) error
	Finish(solveID string, turns int, solved bool) error
}

// Session is the state of one interactive puzzle.
type Session struct {
	reg     *axes.Registry
	puzzle  *puzzle.Puzzle
	layout  *layout.Layout
	machine *input.Machine
	history *history.History

	rng           *rand.Rand
	seed          uint64
	scrambleTurns int

	log      *keylog.Logger
	recorder Recorder

	filters    []filter.Filter
	filterIdx  int
	live       bool
	liveText   []rune
	pending    filter.Filter
	useLive    bool
	liveFilter filter.Filter

	message     string
	alert       bool
	damageKey   rune
	damageCount int

	solveID    string
	solveTurns int
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New creates a session on a solved n^d puzzle.
func New(n, d int, opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.seeded {
		cfg.seed = uint64(time.Now().UnixNano())
	}

	p, err := puzzle.New(n, d)
	if err != nil {
		return nil, err
	}
	reg, err := axes.New(d)
	if err != nil {
		return nil, err
	}
	l, err := layout.For(n, d, cfg.compact)
	if err != nil {
		return nil, err
	}

	s := &Session{
		reg:           reg,
		puzzle:        p,
		layout:        l,
		machine:       input.New(reg, n),
		history:       history.New(),
		rng:           newRand(cfg.seed),
		seed:          cfg.seed,
		scrambleTurns: cfg.scrambleTurns,
		log:           keylog.Discard(),
		recorder:      cfg.recorder,
		filters:       cfg.filters,
	}

	if err := s.machine.SetSystem(cfg.system); err != nil {
		s.message = "fixed-key needs at least 3 layers and 3 dimensions"
		s.log.Diagnostic("startup: %v", err)
	}
	if err := s.machine.SetAxisMode(cfg.axisMode); err != nil {
		s.message = "not enough room for side keybinds"
		s.log.Diagnostic("startup: %v", err)
	}
	return s, nil
}

// FromHeader creates a session matching a key log header, for replay.
func FromHeader(h keylog.Header, opts ...Option) (*Session, error) {
	system, err := input.ParseSystem(h.TurnSystem)
	if err != nil {
		return nil, err
	}
	mode, err := input.ParseAxisMode(h.AxisMode)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithSeed(h.Seed),
		WithCompact(h.Compact),
		WithScrambleTurns(h.ScrambleTurns),
		WithTurnSystem(system),
		WithAxisMode(mode),
	}
	return New(h.N, h.D, append(base, opts...)...)
}

// Header describes the session for a key log.
func (s *Session) Header() keylog.Header {
	return keylog.Header{
		N:             s.puzzle.N(),
		D:             s.puzzle.D(),
		Seed:          s.seed,
		ScrambleTurns: s.scrambleTurns,
		TurnSystem:    s.machine.System().String(),
		AxisMode:      s.machine.AxisMode().String(),
		Compact:       s.layout.Compact,
	}
}

// SetKeyLog redirects key, turn and diagnostic events to log.
func (s *Session) SetKeyLog(log *keylog.Logger) {
	if log == nil {
		log = keylog.Discard()
	}
	s.log = log
}

// Notify shows msg on the status line until the next key press.
func (s *Session) Notify(msg string) {
	s.message = msg
}

// Press handles one key.
func (s *Session) Press(r rune) {
	s.log.Key(r)
	s.message = ""
	s.alert = false

	if s.guardDamage(r) {
		return
	}
	if r == input.EscapeKey {
		s.flush()
		s.live = false
		return
	}
	if s.live {
		s.pressLive(r)
		return
	}

	switch r {
	case input.LiveFilterKey:
		s.flush()
		s.live = true
		s.pending = filter.All
	case input.SystemKey:
		sys, err := s.machine.ToggleSystem()
		if err != nil {
			s.message = "fixed-key needs at least 3 layers and 3 dimensions"
			return
		}
		s.message = "set keybinds to " + sys.String()
	case input.AxisModeKey:
		mode, err := s.machine.ToggleAxisMode()
		if err != nil {
			s.message = "not enough room for side keybinds"
			return
		}
		s.message = "set axis mode to " + mode.String()
	case input.UndoKey:
		s.flush()
		s.undo()
	case input.RedoKey:
		s.flush()
		s.redo()
	case input.NextFilterKey:
		s.cycleFilter(1)
	case input.PrevFilterKey:
		s.cycleFilter(-1)
	default:
		s.pressTurnKey(r)
	}
}

// PressAll feeds every key in order.
func (s *Session) PressAll(keys []rune) {
	for _, r := range keys {
		s.Press(r)
	}
}

func (s *Session) flush() {
	s.machine.Abort()
	s.liveText = s.liveText[:0]
}

// guardDamage counts consecutive presses of the scramble and reset keys.
// It reports whether r was one of them.
func (s *Session) guardDamage(r rune) bool {
	if r != input.ScrambleKey && r != input.ResetKey {
		s.damageCount = 0
		return false
	}
	if s.damageCount > 0 && s.damageKey == r {
		s.damageCount++
	} else {
		s.damageKey = r
		s.damageCount = 1
	}
	if s.damageCount < DamageRepeat {
		return true
	}

	s.damageCount = 0
	s.flush()
	s.live = false
	if r == input.ScrambleKey {
		s.scramble()
	} else {
		s.reset()
	}
	return true
}

func (s *Session) scramble() {
	if s.puzzle.D() < 3 {
		s.message = "scrambling needs at least 3 dimensions"
		return
	}
	s.finishSolve(false)
	s.puzzle.Reset()
	s.history.Clear()
	turns, err := s.puzzle.Scramble(s.scrambleTurns, s.rng)
	if err != nil {
		s.log.Diagnostic("scramble: %v", err)
		s.message = "could not scramble"
		return
	}
	s.message = fmt.Sprintf("scrambled with %d turns", len(turns))
	s.startSolve()
}

func (s *Session) reset() {
	s.finishSolve(false)
	s.puzzle.Reset()
	s.history.Clear()
	s.message = "puzzle reset"
}

func (s *Session) pressTurnKey(r rune) {
	res := s.machine.Press(r)
	if res.Err != nil {
		s.log.Diagnostic("key %q: %v", r, res.Err)
	}
	if res.Alert {
		s.alert = true
	}
	if res.Turn != nil {
		s.perform(*res.Turn)
	}
}

// perform applies t and records it in the history.
func (s *Session) perform(t puzzle.Turn) bool {
	if !s.apply(t) {
		return false
	}
	s.history.Record(t)
	return true
}

// apply turns the puzzle. Invalid turns are discarded with a diagnostic.
func (s *Session) apply(t puzzle.Turn) bool {
	if _, err := s.puzzle.Apply(t); err != nil {
		s.alert = true
		s.log.Diagnostic("discarded %s: %v", t, err)
		return false
	}
	s.log.Turn(t)
	s.recordTurn(t)
	if s.puzzle.Solved() {
		s.message = "solved!"
		s.finishSolve(true)
	}
	return true
}

func (s *Session) undo() {
	inv, ok := s.history.Undo()
	if !ok {
		s.message = "nothing to undo"
		return
	}
	s.apply(inv)
}

func (s *Session) redo() {
	t, ok := s.history.Redo()
	if !ok {
		s.message = "nothing to redo"
		return
	}
	s.apply(t)
}

func (s *Session) startSolve() {
	if s.recorder == nil {
		return
	}
	id, err := s.recorder.Start(s.puzzle.N(), s.puzzle.D(), int64(s.seed), s.scrambleTurns)
	if err != nil {
		s.recordFailed(err)
		return
	}
	s.solveID = id
	s.solveTurns = 0
}

func (s *Session) recordTurn(t puzzle.Turn) {
	if s.solveID == "" {
		return
	}
	if err := s.recorder.Turn(s.solveID, s.solveTurns, t); err != nil {
		s.recordFailed(err)
		return
	}
	s.solveTurns++
}

func (s *Session) finishSolve(solved bool) {
	if s.solveID == "" {
		return
	}
	id := s.solveID
	s.solveID = ""
	if err := s.recorder.Finish(id, s.solveTurns, solved); err != nil {
		s.recordFailed(err)
	}
}

// recordFailed stops recording for the rest of the session.
func (s *Session) recordFailed(err error) {
	s.log.Diagnostic("solve record: %v", err)
	s.message = "could not record solve"
	s.recorder = nil
	s.solveID = ""
}

// End closes the solve in progress, if any, as unsolved.
func (s *Session) End() {
	s.finishSolve(false)
}

// Puzzle returns the puzzle. Callers must not turn it directly.
func (s *Session) Puzzle() *puzzle.Puzzle { return s.puzzle }

// Layout returns the screen layout.
func (s *Session) Layout() *layout.Layout { return s.layout }

// Registry returns the axis table.
func (s *Session) Registry() *axes.Registry { return s.reg }

// Machine returns the key interpreter.
func (s *Session) Machine() *input.Machine { return s.machine }

// Seed returns the scramble seed.
func (s *Session) Seed() uint64 { return s.seed }

// Turns returns the number of turns on the undo stack.
func (s *Session) Turns() int { return s.history.Len() }

// CanUndo reports whether z has a turn to take back.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Z has a turn to reapply.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Alert reports whether the last key was rejected.
func (s *Session) Alert() bool { return s.alert }

// Recording reports whether a solve record is open.
func (s *Session) Recording() bool { return s.solveID != "" }

// Status returns the status line: the last message, or the keys pressed
// so far.
func (s *Session) Status() string {
	if s.message != "" {
		return s.message
	}
	if s.live {
		return "live filter: " + string(s.liveText)
	}
	return s.machine.Keys()
}

// HintKey returns the key to print on a face-center hint cell: selector
// keys while no side is selected, axis or side keys after.
func (s *Session) HintKey(h layout.Hint) (rune, bool) {
	if h.Core {
		return 0, false
	}
	side := s.reg.Side(h.Facet)
	if s.machine.State() == input.Idle || (s.machine.System() == input.FixedKey && s.reg.Dim() == 3) {
		return side.SelectKey, true
	}
	if s.machine.AxisMode() == input.SideKeys {
		return side.SideKey, side.SideKey != 0
	}
	if h.Facet.Pole() == axes.Neg {
		return 0, false
	}
	return s.reg.Axis(h.Facet.Axis()).AxisKey, true
}
