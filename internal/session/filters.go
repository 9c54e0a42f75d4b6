package session

import (
	"fmt"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/filter"
	"github.com/SeamusWaldron/hypercube/internal/input"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

// Filter returns the filter in effect: the one being typed in live filter
// mode, the last live filter applied, or the selected loaded filter.
func (s *Session) Filter() filter.Filter {
	switch {
	case s.live:
		return s.pending
	case s.useLive:
		return s.liveFilter
	case len(s.filters) > 0:
		return s.filters[s.filterIdx]
	}
	return filter.All
}

// Visible reports whether the piece at pos passes the current filter.
func (s *Session) Visible(pos puzzle.Pos) bool {
	return s.Filter().Visible(s.puzzle.ColorsAt(pos))
}

// Live reports whether live filter mode is active.
func (s *Session) Live() bool { return s.live }

func (s *Session) cycleFilter(step int) {
	s.flush()
	if len(s.filters) == 0 {
		s.message = "no filters loaded"
		return
	}
	n := len(s.filters)
	s.filterIdx = ((s.filterIdx+step)%n + n) % n
	s.useLive = false

	label := "next"
	if step < 0 {
		label = "previous"
	}
	s.message = fmt.Sprintf("%s filter (%d/%d): %s", label, s.filterIdx+1, n, s.filters[s.filterIdx])
}

// pressLive edits the live filter text. Selector keys type the name of
// their facet.
func (s *Session) pressLive(r rune) {
	switch {
	case r == '+' || r == '!':
		s.liveText = append(s.liveText, r)
	case r == input.BackspaceKey:
		if len(s.liveText) > 0 {
			s.liveText = s.liveText[:len(s.liveText)-1]
		}
	case r == input.EnterKey:
		f, err := filter.Parse(string(s.liveText), s.reg)
		if err != nil {
			s.message = err.Error()
			s.alert = true
			return
		}
		s.liveFilter = f
		s.useLive = true
		s.live = false
		s.flush()
		return
	default:
		name, ok := s.facetName(r)
		if !ok {
			return
		}
		s.liveText = append(s.liveText, name)
	}

	if f, err := filter.Parse(string(s.liveText), s.reg); err == nil {
		s.pending = f
	}
}

func (s *Session) facetName(r rune) (rune, bool) {
	if f, ok := s.reg.FacetBySelectKey(r); ok {
		return f.Name(), true
	}
	if _, ok := s.reg.FacetByName(r); ok {
		return r, true
	}
	return 0, false
}

// Sticker returns the side whose color the sticker at pos facing f shows.
func (s *Session) Sticker(pos puzzle.Pos, f axes.Facet) (axes.Side, bool) {
	origin, ok := s.puzzle.ColorAt(pos, f)
	if !ok {
		return axes.Side{}, false
	}
	return s.reg.Side(origin), true
}
