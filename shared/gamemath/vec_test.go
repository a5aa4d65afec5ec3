package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalizeFallsBackOnDegenerateInput(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
	}{
		{"zero", Zero},
		{"tiny", V(1e-9, 0, -1e-9)},
		{"nan", V(math.NaN(), 0, 1)},
		{"inf", V(math.Inf(1), 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Forward, tt.in.Normalize(Forward))
		})
	}
}

func TestNormalizeIsUnitOrFallback(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := V(
			rapid.Float64Range(-1e3, 1e3).Draw(t, "x"),
			rapid.Float64Range(-1e3, 1e3).Draw(t, "y"),
			rapid.Float64Range(-1e3, 1e3).Draw(t, "z"),
		)
		n := v.Normalize(Forward)
		if n == Forward {
			return
		}
		if math.Abs(n.Length()-1) > 1e-9 {
			t.Fatalf("normalized length %v for %v", n.Length(), v)
		}
	})
}

func TestFacingVectorAndYawAgree(t *testing.T) {
	for _, yaw := range []float64{0, 45, 90, -90, 135, 179} {
		f := FacingVector(yaw)
		assert.InDelta(t, 1, f.Length(), 1e-9)
		assert.InDelta(t, yaw, YawOf(f), 1e-9)
	}
	assert.InDelta(t, 1, FacingVector(90).X, 1e-9)
}

func TestAngleDiffWraps(t *testing.T) {
	assert.InDelta(t, 20, AngleDiff(170, -170), 1e-9)
	assert.InDelta(t, 90, AngleDiff(0, 450), 1e-9)
	assert.InDelta(t, 0, AngleDiff(30, 30), 1e-9)
}

func TestRightOfForwardIsPositiveX(t *testing.T) {
	r := RightOf(Forward)
	assert.InDelta(t, 1, r.X, 1e-9)
	assert.InDelta(t, 0, r.Z, 1e-9)
}

func TestCountDownFloorsAtZero(t *testing.T) {
	assert.Equal(t, 0.0, CountDown(0.1, 0.5))
	assert.InDelta(t, 0.4, CountDown(0.5, 0.1), 1e-12)
}
