package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/filter"
	"github.com/SeamusWaldron/hypercube/internal/input"
	"github.com/SeamusWaldron/hypercube/internal/keylog"
	"github.com/SeamusWaldron/hypercube/internal/session"
	"github.com/SeamusWaldron/hypercube/internal/storage"
)

// ErrNoTerminal is returned when the puzzle is started without a terminal.
var ErrNoTerminal = errors.New("hypercube needs an interactive terminal")

// flashDuration is how long piece bodies flash after a rejected key.
const flashDuration = 150 * time.Millisecond

var (
	compact     bool
	boxes       bool
	filtersGlob string
	seed        uint64
	noRecord    bool
	noLog       bool
)

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&compact, "compact", false, "Use the compact layout")
	f.BoolVar(&boxes, "boxes", false, "Draw stickers as filled squares")
	f.StringVar(&filtersGlob, "filters", "", "Filter files to load (glob, ** allowed)")
	f.Uint64Var(&seed, "seed", 0, "Scramble seed (default: from the clock)")
	f.BoolVar(&noRecord, "no-record", false, "Do not record solves in the database")
	f.BoolVar(&noLog, "no-log", false, "Do not write a key log")
}

func runPlay(cmd *cobra.Command, args []string) error {
	n, d, err := parseSize(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyPlayFlags(cmd, &cfg)

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	var extra []session.Option
	if cmd.Flags().Changed("seed") {
		extra = append(extra, session.WithSeed(seed))
	}
	g, err := newGame(n, d, cfg, extra...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newPlayModel(g.session, cfg.Boxes), tea.WithAltScreen())
	_, runErr := p.Run()
	logPath := g.log.Path()
	if err := g.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	if logPath != "" {
		fmt.Printf("Key log saved to: %s\n", logPath)
	}
	return nil
}

func applyPlayFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("compact") {
		cfg.Compact = compact
	}
	if flags.Changed("boxes") {
		cfg.Boxes = boxes
	}
	if flags.Changed("filters") {
		cfg.Filters = filtersGlob
	}
	if noRecord {
		cfg.Record = false
	}
	if noLog {
		cfg.KeyLog = false
	}
}

// game is a session together with the files it writes to.
type game struct {
	session *session.Session
	log     *keylog.Logger
	db      *storage.DB
}

// newGame builds a session from the configuration. Filter, database and
// key log problems are shown on the status line; only a bad puzzle shape
// is an error.
func newGame(n, d int, cfg config.Config, extra ...session.Option) (*game, error) {
	reg, err := axes.New(d)
	if err != nil {
		return nil, &ConfigError{Arg: "dimension", Value: fmt.Sprint(d), Err: err}
	}
	system, err := input.ParseSystem(cfg.TurnSystem)
	if err != nil {
		return nil, err
	}
	mode, err := input.ParseAxisMode(cfg.AxisMode)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithCompact(cfg.Compact),
		session.WithScrambleTurns(cfg.ScrambleTurns),
		session.WithTurnSystem(system),
		session.WithAxisMode(mode),
	}

	var notes []string
	var diags []error
	if cfg.Filters != "" {
		filters, err := filter.Load(cfg.Filters, reg)
		if err != nil {
			notes = append(notes, firstLine(err.Error()))
			diags = append(diags, err)
		}
		opts = append(opts, session.WithFilters(filters))
	}

	g := &game{log: keylog.Discard()}
	if cfg.Record {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			notes = append(notes, "solve records disabled")
			diags = append(diags, err)
		} else {
			g.db = db
			opts = append(opts, session.WithRecorder(storage.NewRecorder(db)))
		}
	}

	s, err := session.New(n, d, append(opts, extra...)...)
	if err != nil {
		g.Close()
		return nil, &ConfigError{Arg: "puzzle size", Value: fmt.Sprintf("%d^%d", n, d), Err: err}
	}
	g.session = s

	if cfg.KeyLog {
		log, err := keylog.Create(cfg.LogDir, s.Header())
		if err != nil {
			notes = append(notes, "key log disabled")
		} else {
			g.log = log
			s.SetKeyLog(log)
		}
	}
	for _, err := range diags {
		g.log.Diagnostic("startup: %v", err)
	}

	if len(notes) > 0 {
		if st := s.Status(); st != "" {
			notes = append(notes, st)
		}
		s.Notify(strings.Join(notes, "; "))
	}
	return g, nil
}

// Close ends the solve in progress and closes the key log and database.
func (g *game) Close() error {
	if g.session != nil {
		g.session.End()
	}
	var errs []error
	if err := g.log.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close key log: %w", err))
	}
	if g.db != nil {
		if err := g.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " (and more)"
	}
	return s
}

// keyMap lists the global bindings shown in the help footer. Turn keys
// depend on the dimension and are drawn on the board instead.
type keyMap struct {
	Undo     key.Binding
	Redo     key.Binding
	Scramble key.Binding
	Reset    key.Binding
	Filters  key.Binding
	Live     key.Binding
	System   key.Binding
	AxisMode key.Binding
	Rotate   key.Binding
	Escape   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Undo:     key.NewBinding(key.WithKeys(string(input.UndoKey)), key.WithHelp("z", "undo")),
		Redo:     key.NewBinding(key.WithKeys(string(input.RedoKey)), key.WithHelp("Z", "redo")),
		Scramble: key.NewBinding(key.WithKeys(string(input.ScrambleKey)), key.WithHelp("=====", "scramble")),
		Reset:    key.NewBinding(key.WithKeys(string(input.ResetKey)), key.WithHelp("-----", "reset")),
		Filters: key.NewBinding(
			key.WithKeys(string(input.NextFilterKey), string(input.PrevFilterKey)),
			key.WithHelp("K/J", "next/prev filter"),
		),
		Live:     key.NewBinding(key.WithKeys(string(input.LiveFilterKey)), key.WithHelp("F", "live filter")),
		System:   key.NewBinding(key.WithKeys(string(input.SystemKey)), key.WithHelp(`\`, "three-key/fixed-key")),
		AxisMode: key.NewBinding(key.WithKeys(string(input.AxisModeKey)), key.WithHelp("|", "axis/side keys")),
		Rotate:   key.NewBinding(key.WithKeys(string(input.RotateKey)), key.WithHelp("x", "whole puzzle")),
		Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.Redo, k.Scramble, k.Escape, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Undo, k.Redo, k.Rotate, k.Escape},
		{k.Scramble, k.Reset, k.System, k.AxisMode},
		{k.Filters, k.Live, k.Help, k.Quit},
	}
}

// keyRunes converts a key message into the runes a session reads.
func keyRunes(msg tea.KeyMsg) []rune {
	switch msg.Type {
	case tea.KeyEsc:
		return []rune{input.EscapeKey}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []rune{input.BackspaceKey}
	case tea.KeyEnter:
		return []rune{input.EnterKey}
	case tea.KeySpace:
		return []rune{' '}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		return msg.Runes
	}
	return nil
}

type flashOffMsg struct{ seq int }

// playModel is the bubbletea model for an interactive session.
type playModel struct {
	session *session.Session
	board   *boardRenderer
	keys    keyMap
	help    help.Model

	flash    bool
	flashSeq int
	width    int
	height   int
}

func newPlayModel(s *session.Session, boxes bool) *playModel {
	m := &playModel{
		session: s,
		board:   newBoardRenderer(s.Registry(), boxes),
		keys:    newKeyMap(),
		help:    help.New(),
	}
	m.syncKeys()
	return m
}

// syncKeys hides undo and redo from the help footer when they would do
// nothing.
func (m *playModel) syncKeys() {
	m.keys.Undo.SetEnabled(m.session.CanUndo())
	m.keys.Redo.SetEnabled(m.session.CanRedo())
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		for _, r := range keyRunes(msg) {
			m.session.Press(r)
		}
		m.syncKeys()
		if m.session.Alert() {
			m.flash = true
			m.flashSeq++
			seq := m.flashSeq
			return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
				return flashOffMsg{seq: seq}
			})
		}

	case flashOffMsg:
		if msg.seq == m.flashSeq {
			m.flash = false
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *playModel) View() string {
	s := m.session
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("hypercube %d^%d", s.Puzzle().N(), s.Puzzle().D())))
	info := fmt.Sprintf("  %s · %s keys · %d turns", s.Machine().System(), s.Machine().AxisMode(), s.Turns())
	if s.Recording() {
		info += " · recording"
	}
	b.WriteString(infoStyle.Render(info))
	b.WriteString("\n\n")

	b.WriteString(m.board.Render(s, m.flash))
	b.WriteString("\n")

	status := s.Status()
	switch {
	case s.Alert():
		b.WriteString(errorStyle.Render(status))
	case s.Puzzle().Solved() && status == "solved!":
		b.WriteString(solvedStyle.Render(status))
	default:
		b.WriteString(statusStyle.Render(status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
