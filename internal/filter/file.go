package filter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/SeamusWaldron/hypercube/internal/axes"
)

// Sentinel errors for the filter package.
var (
	ErrSyntax       = errors.New("filter: syntax error")
	ErrUnknownFacet = errors.New("filter: unknown facet")
	ErrEmptyLine    = errors.New("filter: empty line")
	ErrNoFiles      = errors.New("filter: no files match")
)

// ParseError reports a filter line that was skipped.
type ParseError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %q: %v", e.File, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Read parses one filter per line. Lines that fail to parse are skipped;
// the returned error joins a *ParseError for each of them. Filters that did
// parse are returned even when err is non-nil.
func Read(r io.Reader, name string, reg *axes.Registry) ([]Filter, error) {
	var filters []Filter
	var errs []error

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			errs = append(errs, &ParseError{File: name, Line: lineNum, Err: ErrEmptyLine})
			continue
		}
		f, err := Parse(line, reg)
		if err != nil {
			errs = append(errs, &ParseError{File: name, Line: lineNum, Text: line, Err: err})
			continue
		}
		filters = append(filters, f)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("failed to read %s: %w", name, err))
	}

	return filters, errors.Join(errs...)
}

// LoadFile reads the filters in path.
func LoadFile(path string, reg *axes.Registry) ([]Filter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open filter file: %w", err)
	}
	defer file.Close()

	return Read(file, path, reg)
}

// Load reads every file matching pattern, which may use ** globs. A plain
// path matches itself. Files are read in lexical order.
func Load(pattern string, reg *axes.Registry) ([]Filter, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad filter pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, pattern)
	}
	sort.Strings(paths)

	var filters []Filter
	var errs []error
	for _, path := range paths {
		fs, err := LoadFile(path, reg)
		filters = append(filters, fs...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return filters, errors.Join(errs...)
}
