package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/layout"
	"github.com/SeamusWaldron/hypercube/internal/session"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	hiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("236"))

	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	hintStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231"))
)

// Glyphs
const (
	bodyGlyph   = '·'
	hiddenGlyph = '·'
	alertGlyph  = '+'
	boxGlyph    = '■'
)

// paint identifies the style of a board cell. Non-negative values are the
// facet whose color a sticker shows.
type paint int

const (
	paintNone paint = -1 - iota
	paintBody
	paintHidden
	paintAlert
	paintHint
)

// boardRenderer draws the flat projection of a session's puzzle.
type boardRenderer struct {
	boxes    bool
	stickers map[axes.Facet]lipgloss.Style
}

func newBoardRenderer(reg *axes.Registry, boxes bool) *boardRenderer {
	r := &boardRenderer{
		boxes:    boxes,
		stickers: make(map[axes.Facet]lipgloss.Style),
	}
	for _, f := range reg.Facets() {
		r.stickers[f] = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(reg.Side(f).Color))
	}
	return r
}

// Render returns the board, one line per layout row. Runs of cells with
// the same paint are styled together.
func (r *boardRenderer) Render(s *session.Session, flash bool) string {
	l := s.Layout()
	var b strings.Builder
	run := make([]rune, 0, l.Width)

	for y := 0; y < l.Height; y++ {
		run = run[:0]
		current := paintNone
		for x := 0; x < l.Width; x++ {
			g, p := r.cell(s, layout.Point{X: x, Y: y}, flash)
			if p != current && len(run) > 0 {
				b.WriteString(r.style(current, string(run)))
				run = run[:0]
			}
			current = p
			run = append(run, g)
		}
		b.WriteString(r.style(current, strings.TrimRight(string(run), " ")))
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *boardRenderer) style(p paint, text string) string {
	switch p {
	case paintNone:
		return text
	case paintBody:
		return bodyStyle.Render(text)
	case paintHidden:
		return hiddenStyle.Render(text)
	case paintAlert:
		return alertStyle.Render(text)
	case paintHint:
		return hintStyle.Render(text)
	}
	return r.stickers[axes.Facet(p)].Render(text)
}

// cell returns the glyph and paint of the screen point pt.
func (r *boardRenderer) cell(s *session.Session, pt layout.Point, flash bool) (rune, paint) {
	l := s.Layout()
	c, ok := l.Cells[pt]
	if !ok {
		return ' ', paintNone
	}
	visible := s.Visible(c.Pos)

	if c.Sticker {
		side, ok := s.Sticker(c.Pos, c.Facet)
		switch {
		case !ok:
			return ' ', paintNone
		case !visible:
			return hiddenGlyph, paintHidden
		case r.boxes:
			return boxGlyph, paint(side.Facet)
		}
		return side.Name, paint(side.Facet)
	}

	if h, ok := l.Hints[pt]; ok {
		if k, ok := s.HintKey(h); ok {
			return k, paintHint
		}
	}
	switch {
	case !visible:
		return ' ', paintNone
	case flash:
		return alertGlyph, paintAlert
	}
	return bodyGlyph, paintBody
}
