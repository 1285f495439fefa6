// Package dice supplies the injectable randomness source used by the rules
// engine. Every die consumed during resolution comes from a single ordered
// stream so a fixed seed (or a scripted roller) replays identically.
package dice

import (
	"math/rand"
	"time"
)

// Roller produces uniformly distributed die results and tiebreak flips.
type Roller interface {
	// D6 returns a single die result in 1..6.
	D6() int
	// Flip returns a uniform coin flip, used only for exact initiative ties.
	Flip() bool
}

// Source is a seeded Roller backed by math/rand.
type Source struct {
	r *rand.Rand
}

// NewSource returns a Roller seeded with the given value.
func NewSource(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSource returns a Roller seeded from the wall clock.
func NewTimeSource() *Source {
	return NewSource(time.Now().UnixNano())
}

func (s *Source) D6() int    { return 1 + s.r.Intn(6) }
func (s *Source) Flip() bool { return s.r.Intn(2) == 0 }

// Sum2D6 rolls two dice and returns the individual results plus their sum.
func Sum2D6(r Roller) (first, second, total int) {
	first = r.D6()
	second = r.D6()
	return first, second, first + second
}

// Script replays a fixed die sequence, cycling when exhausted. Flips
// consume from a separate boolean sequence (defaulting to false) so die
// scripts in tests stay aligned regardless of tie breaks.
type Script struct {
	Rolls []int
	Flips []bool

	rollIdx int
	flipIdx int
}

func (s *Script) D6() int {
	if len(s.Rolls) == 0 {
		return 1
	}
	v := s.Rolls[s.rollIdx%len(s.Rolls)]
	s.rollIdx++
	return v
}

func (s *Script) Flip() bool {
	if len(s.Flips) == 0 {
		return false
	}
	v := s.Flips[s.flipIdx%len(s.Flips)]
	s.flipIdx++
	return v
}
