package systems

import (
	"testing"

	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/stretchr/testify/assert"
)

func TestHitStopFreezesSimulationTime(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	frame := frameOf(tw.w)
	fx := EffectsOf(tw.w)
	RequestHitStop(fx, 0.04)

	var frozen []bool
	for i := 0; i < 4; i++ {
		UpdateClock(tw.w)
		frozen = append(frozen, frame.Frozen)
		if frame.Frozen {
			assert.Zero(t, frame.Delta)
		}
	}

	assert.Equal(t, []bool{true, true, true, false}, frozen)
	assert.Equal(t, uint64(4), frame.Frame)
	assert.InDelta(t, frameDT, frame.Delta, 1e-12)
	assert.InDelta(t, frameDT, frame.Elapsed, 1e-12)
}

func TestResetKeepsLiveHitStop(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	fx := EffectsOf(tw.w)
	RequestHitStop(fx, 0.05)
	RequestShake(fx, 0.2)

	fx.Reset()

	assert.Zero(t, fx.HitStopRequest)
	assert.Zero(t, fx.Shake)
	assert.InDelta(t, 0.05, fx.HitStopTimer, 1e-12)
}

func TestSnapshotCapturesPlayer(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))

	UpdatePlayerSnapshot(tw.w)
	assert.False(t, SnapshotOf(tw.w).Valid)

	p := tw.player(gamemath.Vec3{X: 4}, 90)
	playerSwings(t, tw, p)
	UpdatePlayerSnapshot(tw.w)

	snap := SnapshotOf(tw.w)
	assert.True(t, snap.Valid)
	assert.True(t, snap.Alive)
	assert.True(t, snap.Attacking)
	assert.Equal(t, gamemath.Vec3{X: 4}, snap.Position)
	assert.InDelta(t, 1, snap.Facing.X, 1e-9)
}
