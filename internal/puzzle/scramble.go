package puzzle

import "github.com/SeamusWaldron/hypercube/internal/axes"

// DefaultScrambleTurns is the number of turns a scramble applies.
const DefaultScrambleTurns = 5000

// Rand is the random source a scramble draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// RandomTurn draws a sliced turn uniformly: three distinct axes, a random
// pole and direction, and a depth in [1, n-1].
func (p *Puzzle) RandomTurn(rng Rand) (Turn, error) {
	if p.d < 3 {
		return Turn{}, ErrNoSlicedTurns
	}
	c := rng.IntN(p.d)
	a := rng.IntN(p.d - 1)
	if a >= c {
		a++
	}
	b := rng.IntN(p.d - 2)
	for _, used := range sortedPair(a, c) {
		if b >= used {
			b++
		}
	}

	dir := Forward
	if rng.IntN(2) == 1 {
		dir = Backward
	}
	return Turn{
		A:   a,
		B:   b,
		Dir: dir,
		Selector: Selector{
			Axis:  c,
			Pole:  axes.Pole(rng.IntN(2)),
			Depth: 1 + rng.IntN(p.n-1),
		},
	}, nil
}

func sortedPair(x, y int) [2]int {
	if x > y {
		return [2]int{y, x}
	}
	return [2]int{x, y}
}

// Scramble applies count random sliced turns and returns them.
func (p *Puzzle) Scramble(count int, rng Rand) ([]Turn, error) {
	if p.d < 3 {
		return nil, ErrNoSlicedTurns
	}
	turns := make([]Turn, 0, count)
	for i := 0; i < count; i++ {
		t, err := p.RandomTurn(rng)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	if err := p.ApplyAll(turns); err != nil {
		return nil, err
	}
	return turns, nil
}
