package session

import (
	"github.com/SeamusWaldron/hypercube/internal/filter"
	"github.com/SeamusWaldron/hypercube/internal/input"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

// Option configures a Session.
type Option func(*config)

type config struct {
	compact       bool
	seed          uint64
	seeded        bool
	scrambleTurns int
	filters       []filter.Filter
	system        input.System
	axisMode      input.AxisMode
	recorder      Recorder
}

func defaultConfig() *config {
	return &config{
		scrambleTurns: puzzle.DefaultScrambleTurns,
		system:        input.ThreeKey,
		axisMode:      input.AxisKeys,
	}
}

// WithCompact selects the compact layout.
func WithCompact(enabled bool) Option {
	return func(c *config) {
		c.compact = enabled
	}
}

// WithSeed fixes the scramble seed. Without it the seed is taken from the
// clock; Seed reports the one in use.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithScrambleTurns sets how many turns a scramble applies.
func WithScrambleTurns(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.scrambleTurns = n
		}
	}
}

// WithFilters loads the filters cycled with K and J.
func WithFilters(filters []filter.Filter) Option {
	return func(c *config) {
		c.filters = filters
	}
}

// WithTurnSystem picks the initial turn system. Fixed-key falls back to
// three-key on puzzles that cannot use it.
func WithTurnSystem(s input.System) Option {
	return func(c *config) {
		c.system = s
	}
}

// WithAxisMode picks the initial axis keybind mode.
func WithAxisMode(m input.AxisMode) Option {
	return func(c *config) {
		c.axisMode = m
	}
}

// WithRecorder stores solve statistics through r.
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}
