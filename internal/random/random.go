// Package random provides the deterministic Mulberry32 stream every puzzle
// generator draws from.
//
// Same seed and same call order produce the same floats on every platform;
// nothing in this package falls back to time or global state.
package random

import "math"

// State is the 32-bit Mulberry32 state. It is a plain value: copying it forks
// the stream.
type State uint32

// maxDerivedSeed bounds seeds produced by DeriveSeed.
const maxDerivedSeed = math.MaxInt32

// Source is anything that yields floats in [0,1). *Stream and *math/rand.Rand
// both satisfy it.
type Source interface {
	Float64() float64
}

// Next advances s by one step and returns the new state with its draw.
func Next(s State) (State, float64) {
	s += 0x6D2B79F5
	t := uint32(s)
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return s, float64(t^(t>>14)) / 4294967296.0
}

// Stream is a single-owner handle over Next. Do not share one between goroutines.
type Stream struct {
	state State
}

// New returns a stream seeded with the low 32 bits of seed.
func New(seed int64) *Stream {
	return &Stream{state: State(uint32(seed))}
}

// FromState resumes a stream at a previously captured state.
func FromState(s State) *Stream {
	return &Stream{state: s}
}

// Float64 returns the next draw in [0,1).
func (s *Stream) Float64() float64 {
	var v float64
	s.state, v = Next(s.state)
	return v
}

// State returns the current state, suitable for FromState.
func (s *Stream) State() State { return s.state }

// DeriveSeed advances a fresh stream from seed index steps and scales the
// following draw into [0, MaxInt32).
func DeriveSeed(seed int64, index int) int64 {
	st := State(uint32(seed))
	for i := 0; i < index; i++ {
		st, _ = Next(st)
	}
	_, v := Next(st)
	return int64(math.Floor(v * maxDerivedSeed))
}

// LevelStream returns the stream for the index-th level or run under root.
func LevelStream(root int64, index int) *Stream {
	return New(DeriveSeed(root, index))
}

// IntN returns an int in [0,n). n must be positive.
func IntN(src Source, n int) int {
	return int(math.Floor(src.Float64() * float64(n)))
}

// IntRange returns an int in [lo,hi], both inclusive.
func IntRange(src Source, lo, hi int) int {
	return lo + IntN(src, hi-lo+1)
}

// Pick returns a uniformly drawn element of xs. xs must not be empty.
func Pick[T any](src Source, xs []T) T {
	return xs[IntN(src, len(xs))]
}

// Shuffle returns a Fisher–Yates permutation of xs; xs itself is untouched.
func Shuffle[T any](xs []T, src Source) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	for i := len(out) - 1; i > 0; i-- {
		j := IntN(src, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
