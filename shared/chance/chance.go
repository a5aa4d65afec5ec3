// Package chance supplies the random rolls the simulation makes: dodge and
// block chances, heavy attack picks, patrol targets and cooldown jitter.
package chance

import "math/rand"

// Source produces uniformly distributed values. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewSeeded returns a Source backed by math/rand with a fixed seed.
func NewSeeded(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Roll reports whether an event with probability p happens.
func Roll(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Range returns a value in [lo, hi).
func Range(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}

// Sequence replays fixed values in order and wraps around. It makes AI rolls
// deterministic in tests and replays.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence returns a Sequence over values. With no values it always
// returns 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
