package keylog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

func TestWriteThenRead(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter(&buf, Header{N: 3, D: 4, Seed: 42, Compact: true})
	require.NoError(t, err)

	l.Key('f')
	l.Key('⎋')
	l.Turn(puzzle.SideTurn(puzzle.Selector{Axis: 0, Depth: 2}, axes.NewFacet(1, axes.Pos), axes.NewFacet(2, axes.Pos)))
	l.Diagnostic("rejected %q", 'k')
	require.NoError(t, l.Err())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)

	log, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, Version, log.Header.Version)
	assert.Equal(t, 3, log.Header.N)
	assert.Equal(t, 4, log.Header.D)
	assert.Equal(t, uint64(42), log.Header.Seed)
	assert.True(t, log.Header.Compact)

	assert.Equal(t, []rune{'f', '⎋'}, log.Keys())
	assert.Equal(t, []string{"R2:U>F"}, log.Turns())
	require.Len(t, log.Events, 4)
	assert.Equal(t, EventDiagnostic, log.Events[3].EventType)
	assert.Equal(t, `rejected 'k'`, log.Events[3].Description)
}

func TestCreateAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, err := Create(dir, Header{N: 2, D: 3})
	require.NoError(t, err)
	l.Key('x')
	path := l.Path()
	require.NoError(t, l.Close())

	assert.Equal(t, dir, filepath.Dir(path))
	log, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []rune{'x'}, log.Keys())
}

func TestDiscardDropsEverything(t *testing.T) {
	l := Discard()
	l.Key('f')
	l.Diagnostic("ignored")
	assert.NoError(t, l.Err())
	assert.NoError(t, l.Close())
	assert.Equal(t, "", l.Path())

	var nilLogger *Logger
	nilLogger.Key('f')
	assert.NoError(t, nilLogger.Close())
}

func TestReadRejectsMissingHeader(t *testing.T) {
	_, err := Read(strings.NewReader(`{"event_type":"key_press","key":"f"}` + "\n"))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = Load(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
