// Package rng provides the single seeded random stream a generation run
// draws every decision from
package rng

import (
	"math/rand"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-rando/internal/errors"
)

var _ dice.Roller = (*Source)(nil)

// Source is a deterministic random stream. The position counts draws so a
// run can report how much of the stream it consumed.
type Source struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a stream from a seed
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)), // #nosec G404 -- reproducible seeds are the point
	}
}

// Seed returns the seed the stream started from
func (s *Source) Seed() int64 {
	return s.seed
}

// Position returns the number of draws made so far
func (s *Source) Position() int64 {
	return s.pos
}

// Next returns a value in [0, n). n must be positive.
func (s *Source) Next(n int) int {
	s.pos++
	return s.src.Intn(n)
}

// Chance returns true with probability 1/n
func (s *Source) Chance(n int) bool {
	return s.Next(n) == 0
}

// Roll returns a value in [1, size]
func (s *Source) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}
	return s.Next(size) + 1, nil
}

// RollN rolls count dice of the given size
func (s *Source) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("die count must not be negative: %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Pick returns a random element. The slice must not be empty.
func Pick[T any](s *Source, items []T) T {
	return items[s.Next(len(items))]
}

// Take removes and returns a random element, preserving the order of the
// rest
func Take[T any](s *Source, items []T) (T, []T) {
	i := s.Next(len(items))
	item := items[i]
	return item, append(items[:i:i], items[i+1:]...)
}

// Shuffle returns the items in a random order by repeatedly taking a random
// element. The input is left untouched.
func Shuffle[T any](s *Source, items []T) []T {
	rest := append([]T(nil), items...)
	out := make([]T, 0, len(items))
	for len(rest) > 0 {
		var item T
		item, rest = Take(s, rest)
		out = append(out, item)
	}
	return out
}
