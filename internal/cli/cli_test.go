package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/input"
	"github.com/SeamusWaldron/hypercube/internal/keylog"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
	"github.com/SeamusWaldron/hypercube/internal/session"
	"github.com/SeamusWaldron/hypercube/internal/storage"
)

func TestParseSize(t *testing.T) {
	n, d, err := parseSize([]string{"3", "4"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 4, d)

	tests := []struct {
		name string
		args []string
		arg  string
		want error
	}{
		{"layers not a number", []string{"three", "3"}, "layer count", nil},
		{"one layer", []string{"1", "3"}, "layer count", puzzle.ErrInvalidLayers},
		{"too many layers", []string{"20", "3"}, "layer count", puzzle.ErrInvalidLayers},
		{"dimension not a number", []string{"3", "x"}, "dimension", nil},
		{"dimension zero", []string{"3", "0"}, "dimension", puzzle.ErrInvalidDimension},
		{"dimension eleven", []string{"3", "11"}, "dimension", puzzle.ErrInvalidDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseSize(tt.args)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.arg, cfgErr.Arg)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestKeyRunes(t *testing.T) {
	assert.Equal(t, []rune{input.EscapeKey}, keyRunes(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, []rune{input.BackspaceKey}, keyRunes(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.Equal(t, []rune{input.EnterKey}, keyRunes(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, []rune("fj"), keyRunes(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fj")}))
	assert.Nil(t, keyRunes(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f"), Alt: true}))
	assert.Nil(t, keyRunes(tea.KeyMsg{Type: tea.KeyUp}))
}

func TestFirstMismatch(t *testing.T) {
	assert.Equal(t, -1, firstMismatch(nil, nil))
	assert.Equal(t, -1, firstMismatch([]string{"a", "b"}, []string{"a", "b"}))
	assert.Equal(t, 1, firstMismatch([]string{"a", "b"}, []string{"a", "c"}))
	assert.Equal(t, 2, firstMismatch([]string{"a", "b"}, []string{"a", "b", "c"}))
	assert.Equal(t, 0, firstMismatch([]string{"a"}, nil))
}

func testConfig(t *testing.T) config.Config {
	cfg := config.Default(t.TempDir())
	cfg.ScrambleTurns = 20
	return cfg
}

func TestNewGame_RecordsAndLogs(t *testing.T) {
	cfg := testConfig(t)

	g, err := newGame(3, 3, cfg, session.WithSeed(1))
	require.NoError(t, err)

	g.session.PressAll([]rune("====="))
	assert.True(t, g.session.Recording())
	logPath := g.log.Path()
	require.NotEmpty(t, logPath)
	require.NoError(t, g.Close())
	assert.False(t, g.session.Recording())

	log, err := keylog.Load(logPath)
	require.NoError(t, err)
	assert.Equal(t, 3, log.Header.N)
	assert.Equal(t, 3, log.Header.D)
	assert.Equal(t, uint64(1), log.Header.Seed)
	assert.Equal(t, []rune("====="), log.Keys())

	db, err := storage.Open(cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()
	solves, err := storage.NewSolveRepository(db).List(10)
	require.NoError(t, err)
	require.Len(t, solves, 1)
	assert.False(t, solves[0].Solved)
	assert.NotNil(t, solves[0].EndedAt)
}

func TestNewGame_NoRecordNoLog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Record = false
	cfg.KeyLog = false

	g, err := newGame(2, 3, cfg)
	require.NoError(t, err)
	g.session.PressAll([]rune("====="))
	assert.False(t, g.session.Recording())
	assert.Empty(t, g.log.Path())
	assert.NoError(t, g.Close())
}

func TestNewGame_MissingFilters(t *testing.T) {
	cfg := testConfig(t)
	cfg.Record = false
	cfg.KeyLog = false
	cfg.Filters = filepath.Join(t.TempDir(), "*.txt")

	g, err := newGame(3, 3, cfg)
	require.NoError(t, err)
	defer g.Close()

	assert.Contains(t, g.session.Status(), "no files match")
	assert.Equal(t, "", g.session.Filter().String())
}

func TestNewGame_TooLarge(t *testing.T) {
	cfg := testConfig(t)
	cfg.Record = false
	cfg.KeyLog = false

	_, err := newGame(19, 10, cfg)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, puzzle.ErrTooLarge)
}

func recordedLog(t *testing.T, keys string) (*session.Session, *keylog.Log) {
	t.Helper()
	s, err := session.New(3, 3, session.WithSeed(7), session.WithScrambleTurns(20))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger, err := keylog.NewWriter(&buf, s.Header())
	require.NoError(t, err)
	s.SetKeyLog(logger)
	s.PressAll([]rune(keys))

	log, err := keylog.Read(&buf)
	require.NoError(t, err)
	return s, log
}

func TestReplayLog_Matches(t *testing.T) {
	s, log := recordedLog(t, "=====fjlzZ")

	res, err := replayLog(log)
	require.NoError(t, err)
	assert.Equal(t, -1, res.Mismatch)
	assert.Equal(t, 10, res.Keys)
	assert.Len(t, res.Got, 3)
	assert.True(t, res.Session.Puzzle().Equal(s.Puzzle()))
}

func TestReplayLog_DetectsMismatch(t *testing.T) {
	_, log := recordedLog(t, "fjl")
	for i := range log.Events {
		if log.Events[i].EventType == keylog.EventTurn {
			log.Events[i].Turn = "bogus"
			break
		}
	}

	res, err := replayLog(log)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Mismatch)

	var out bytes.Buffer
	printReplay(&out, log, res)
	assert.Contains(t, out.String(), "turn 1 differs")
}

func TestBoardRenderer_DrawsEverySticker(t *testing.T) {
	s, err := session.New(3, 3, session.WithSeed(1))
	require.NoError(t, err)

	out := newBoardRenderer(s.Registry(), true).Render(s, false)
	assert.Equal(t, s.Layout().Height, strings.Count(out, "\n"))
	// 2d * n^(d-1) stickers
	assert.Equal(t, 54, strings.Count(out, string(boxGlyph)))
}

func TestBoardRenderer_Flash(t *testing.T) {
	s, err := session.New(3, 2, session.WithSeed(1))
	require.NoError(t, err)

	r := newBoardRenderer(s.Registry(), true)
	assert.NotContains(t, r.Render(s, false), string(alertGlyph))
	assert.Contains(t, r.Render(s, true), string(alertGlyph))
}

func TestPlayModel_UndoRedoHelp(t *testing.T) {
	s, err := session.New(3, 3, session.WithSeed(1))
	require.NoError(t, err)
	m := newPlayModel(s, false)
	assert.False(t, m.keys.Undo.Enabled())
	assert.False(t, m.keys.Redo.Enabled())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fjl")})
	assert.True(t, m.keys.Undo.Enabled())
	assert.False(t, m.keys.Redo.Enabled())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	assert.False(t, m.keys.Undo.Enabled())
	assert.True(t, m.keys.Redo.Enabled())
	assert.Contains(t, m.View(), "redo")
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")
	var out bytes.Buffer

	require.NoError(t, initConfig(&out, path, false))
	assert.Contains(t, out.String(), path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(filepath.Dir(path)), cfg)

	assert.ErrorIs(t, initConfig(&out, path, false), ErrConfigExists)
	assert.NoError(t, initConfig(&out, path, true))

	out.Reset()
	require.NoError(t, showConfig(&out, cfg))
	assert.Contains(t, out.String(), "db_path: "+cfg.DBPath)
	assert.Contains(t, out.String(), "turn_system: three-key")
}

func TestExportTurns(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "export.db"))
	require.NoError(t, err)
	defer db.Close()

	rec := storage.NewRecorder(db)
	id, err := rec.Start(3, 3, 1, 20)
	require.NoError(t, err)

	sel := puzzle.Selector{Axis: 0, Pole: axes.Pos, Depth: 1}
	t1 := puzzle.SideTurn(sel, axes.NewFacet(1, axes.Pos), axes.NewFacet(2, axes.Pos))
	t2 := puzzle.Rotation(axes.NewFacet(0, axes.Pos), axes.NewFacet(1, axes.Pos))
	require.NoError(t, rec.Turn(id, 0, t1))
	require.NoError(t, rec.Turn(id, 1, t2))

	txt, count, err := exportTurns(db, id, "txt")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, t1.Notation()+" "+t2.Notation(), txt)

	js, _, err := exportTurns(db, id, "json")
	require.NoError(t, err)
	var turns []turnJSON
	require.NoError(t, json.Unmarshal([]byte(js), &turns))
	require.Len(t, turns, 2)
	assert.True(t, turns[1].Whole)

	_, _, err = exportTurns(db, id, "csv")
	assert.Error(t, err)
	_, _, err = exportTurns(db, "missing", "txt")
	assert.Error(t, err)
}

func TestPrintStats(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	defer db.Close()

	var out bytes.Buffer
	require.NoError(t, printStats(&out, db, 10))
	assert.Contains(t, out.String(), "No solves recorded yet")

	rec := storage.NewRecorder(db)
	id, err := rec.Start(3, 4, 1, 20)
	require.NoError(t, err)
	require.NoError(t, rec.Finish(id, 12, true))

	openID, err := rec.Start(3, 3, 2, 20)
	require.NoError(t, err)
	sel := puzzle.Selector{Axis: 0, Pole: axes.Pos, Depth: 1}
	require.NoError(t, rec.Turn(openID, 0, puzzle.SideTurn(sel, axes.NewFacet(1, axes.Pos), axes.NewFacet(2, axes.Pos))))

	out.Reset()
	require.NoError(t, printStats(&out, db, 10))
	assert.Contains(t, out.String(), "3^4")
	assert.Contains(t, out.String(), id)
	assert.Contains(t, out.String(), "1+")

	out.Reset()
	require.NoError(t, deleteSolve(&out, db, openID))
	assert.Contains(t, out.String(), "Deleted solve "+openID)
	_, err = storage.NewSolveRepository(db).Get(openID)
	assert.ErrorIs(t, err, storage.ErrSolveNotFound)
	assert.ErrorIs(t, deleteSolve(&out, db, openID), storage.ErrSolveNotFound)
}

func TestPrintSolve(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "show.db"))
	require.NoError(t, err)
	defer db.Close()

	rec := storage.NewRecorder(db)
	id, err := rec.Start(3, 3, 5, 20)
	require.NoError(t, err)
	sel := puzzle.Selector{Axis: 1, Pole: axes.Neg, Depth: 1}
	turn := puzzle.SideTurn(sel, axes.NewFacet(0, axes.Pos), axes.NewFacet(2, axes.Pos))
	for i := 0; i < 4; i++ {
		require.NoError(t, rec.Turn(id, i, turn))
	}
	require.NoError(t, rec.Finish(id, 4, true))

	var out bytes.Buffer
	require.NoError(t, printSolve(&out, db, id))
	assert.Contains(t, out.String(), "Solve Details")
	assert.Contains(t, out.String(), "Turns:          4 (0 rotations)")
	assert.Contains(t, out.String(), "Repeated sequences")

	assert.ErrorIs(t, printSolve(&out, db, "missing"), storage.ErrSolveNotFound)
}
