// Package keylog writes the per-session event log: a JSONL file whose first
// line is a header describing the puzzle, followed by one line per key
// press, applied turn and diagnostic. Feeding the logged keys back through
// a session with the same header reproduces the session.
package keylog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

// Version is written to every header.
const Version = "1.0"

// ErrNoHeader is returned when a log does not start with a header line.
var ErrNoHeader = errors.New("keylog: missing header")

// EventType identifies the type of logged event
type EventType string

const (
	EventKey        EventType = "key_press"
	EventTurn       EventType = "turn"
	EventDiagnostic EventType = "diagnostic"
)

// Header describes the session a log belongs to.
type Header struct {
	Type          string    `json:"type"`
	Version       string    `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	N             int       `json:"n"`
	D             int       `json:"d"`
	Seed          uint64    `json:"seed"`
	ScrambleTurns int       `json:"scramble_turns,omitempty"`
	TurnSystem    string    `json:"turn_system,omitempty"`
	AxisMode      string    `json:"axis_mode,omitempty"`
	Compact       bool      `json:"compact,omitempty"`
}

// Event is a single logged event
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	ElapsedMs   int64     `json:"elapsed_ms"`
	EventType   EventType `json:"event_type"`
	Key         string    `json:"key,omitempty"`
	Turn        string    `json:"turn,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Log is a parsed key log.
type Log struct {
	Header Header
	Events []Event
}

// Keys returns the logged key presses in order.
func (l *Log) Keys() []rune {
	var out []rune
	for _, e := range l.Events {
		if e.EventType == EventKey {
			out = append(out, []rune(e.Key)...)
		}
	}
	return out
}

// Turns returns the notation of every logged turn in order.
func (l *Log) Turns() []string {
	var out []string
	for _, e := range l.Events {
		if e.EventType == EventTurn {
			out = append(out, e.Turn)
		}
	}
	return out
}

// Logger appends events to a key log. The zero Logger and the one returned
// by Discard drop everything.
type Logger struct {
	w         io.Writer
	file      *os.File
	startTime time.Time
	err       error
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return &Logger{}
}

// Create opens a new log file in dir and writes the header.
func Create(dir string, h Header) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("session_%s.jsonl", time.Now().Format("20060102_150405.000"))
	file, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l, err := NewWriter(file, h)
	if err != nil {
		file.Close()
		return nil, err
	}
	l.file = file
	return l, nil
}

// NewWriter writes the header to w and returns a logger appending to it.
func NewWriter(w io.Writer, h Header) (*Logger, error) {
	l := &Logger{w: w, startTime: time.Now()}
	h.Type = "header"
	h.Version = Version
	if h.CreatedAt.IsZero() {
		h.CreatedAt = l.startTime
	}
	if err := l.writeJSON(h); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return l, nil
}

// Key logs a key press.
func (l *Logger) Key(r rune) {
	l.log(Event{EventType: EventKey, Key: string(r)})
}

// Turn logs an applied turn.
func (l *Logger) Turn(t puzzle.Turn) {
	l.log(Event{EventType: EventTurn, Turn: t.Notation()})
}

// Diagnostic logs a rejected input or any other non-fatal problem.
func (l *Logger) Diagnostic(format string, args ...any) {
	l.log(Event{EventType: EventDiagnostic, Description: fmt.Sprintf(format, args...)})
}

func (l *Logger) log(e Event) {
	if l == nil || l.w == nil {
		return
	}
	e.Timestamp = time.Now()
	e.ElapsedMs = time.Since(l.startTime).Milliseconds()
	if err := l.writeJSON(e); err != nil && l.err == nil {
		l.err = err
	}
}

func (l *Logger) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = l.w.Write(append(data, '\n'))
	return err
}

// Err returns the first write error, if any.
func (l *Logger) Err() error {
	if l == nil {
		return nil
	}
	return l.err
}

// Close closes the log file
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Path returns the log file path, or "" when not writing to a file.
func (l *Logger) Path() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Load reads a key log from a JSONL file.
func Load(path string) (*Log, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read parses a key log.
func Read(r io.Reader) (*Log, error) {
	log := &Log{}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if lineNum == 1 {
			if err := json.Unmarshal(line, &log.Header); err != nil {
				return nil, fmt.Errorf("failed to parse header: %w", err)
			}
			if log.Header.Type != "header" {
				return nil, ErrNoHeader
			}
			continue
		}
		if len(line) == 0 {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
		}
		log.Events = append(log.Events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	if lineNum == 0 {
		return nil, ErrNoHeader
	}

	return log, nil
}
