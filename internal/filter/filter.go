// Package filter parses and evaluates piece visibility filters.
//
// A filter such as "F!U+FB" is a disjunction of terms. Each term names
// colors a piece must carry, optionally followed by "!" and colors it must
// not carry. A piece is visible when any term matches it.
package filter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/SeamusWaldron/hypercube/internal/axes"
)

// Term is one conjunction of a filter.
type Term struct {
	Include axes.Set
	Exclude axes.Set
}

// Matches reports whether a piece with the given sticker colors satisfies t.
func (t Term) Matches(colors axes.Set) bool {
	return t.Include.Subset(colors) && t.Exclude.Disjoint(colors)
}

// Filter is a disjunction of terms. The zero Filter shows every piece.
type Filter struct {
	Text  string
	Terms []Term
}

// All is the filter that shows every piece.
var All = Filter{}

// Visible reports whether a piece with the given colors passes f.
func (f Filter) Visible(colors axes.Set) bool {
	if len(f.Terms) == 0 {
		return true
	}
	for _, t := range f.Terms {
		if t.Matches(colors) {
			return true
		}
	}
	return false
}

// String returns the text the filter was parsed from.
func (f Filter) String() string {
	return f.Text
}

// Parse reads a filter, resolving facet names through reg.
func Parse(text string, reg *axes.Registry) (Filter, error) {
	f := Filter{Text: text}
	for _, part := range strings.Split(text, "+") {
		halves := strings.Split(strings.TrimSpace(part), "!")
		if len(halves) > 2 {
			return Filter{}, fmt.Errorf("%w: too many '!' in %q", ErrSyntax, part)
		}

		var term Term
		var err error
		if term.Include, err = parseFacets(halves[0], reg); err != nil {
			return Filter{}, err
		}
		if len(halves) == 2 {
			if term.Exclude, err = parseFacets(halves[1], reg); err != nil {
				return Filter{}, err
			}
		}
		f.Terms = append(f.Terms, term)
	}
	return f, nil
}

func parseFacets(s string, reg *axes.Registry) (axes.Set, error) {
	var set axes.Set
	for _, ch := range s {
		if unicode.IsSpace(ch) {
			continue
		}
		facet, ok := reg.FacetByName(ch)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownFacet, ch)
		}
		set = set.Add(facet)
	}
	return set, nil
}
