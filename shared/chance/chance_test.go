package chance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRollEdges(t *testing.T) {
	src := NewSequence(0.5)
	assert.False(t, Roll(src, 0))
	assert.True(t, Roll(src, 1))
	assert.True(t, Roll(src, 0.6))
	assert.False(t, Roll(src, 0.4))
}

func TestRangeStaysInBounds(t *testing.T) {
	src := NewSeeded(7)
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Float64Range(-10, 10).Draw(t, "lo")
		span := rapid.Float64Range(0.5, 10).Draw(t, "span")
		v := Range(src, lo, lo+span)
		if v < lo || v > lo+span {
			t.Fatalf("%v outside [%v, %v)", v, lo, lo+span)
		}
	})
}

func TestRangeEmpty(t *testing.T) {
	assert.Equal(t, 3.0, Range(NewSequence(0.7), 3, 3))
	assert.Equal(t, 3.0, Range(NewSequence(0.7), 3, 1))
}

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(0.1, 0.9)
	assert.Equal(t, []float64{0.1, 0.9, 0.1}, []float64{s.Float64(), s.Float64(), s.Float64()})
	assert.Equal(t, 0.0, NewSequence().Float64())
}
