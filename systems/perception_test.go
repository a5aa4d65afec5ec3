package systems

import (
	"math"
	"testing"

	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestCanSee(t *testing.T) {
	rules := config.Default().Perception
	wall := []components.Obstacle{{Position: gamemath.Vec3{Z: 10}, Radius: 2}}

	tests := []struct {
		name      string
		target    gamemath.Vec3
		obstacles []components.Obstacle
		want      bool
	}{
		{"straight ahead", gamemath.Vec3{Z: 20}, nil, true},
		{"beyond view distance", gamemath.Vec3{Z: 41}, nil, false},
		{"inside the cone", gamemath.Vec3{X: 10, Z: 10}, nil, true},
		{"outside the cone", gamemath.Vec3{X: 10, Z: 2}, nil, false},
		{"behind", gamemath.Vec3{Z: -5}, nil, false},
		{"behind a wall", gamemath.Vec3{Z: 20}, wall, false},
		{"wall off to the side", gamemath.Vec3{X: 10, Z: 10}, wall, true},
		{"at the wall face", gamemath.Vec3{Z: 8.5}, wall, true},
		{"same spot", gamemath.Vec3{}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanSee(gamemath.Vec3{}, gamemath.Forward, tt.target, tt.obstacles, rules)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRayBoxEntryDistance(t *testing.T) {
	ob := components.Obstacle{Position: gamemath.Vec3{Z: 10}, Radius: 2}

	d, hit := rayBox(gamemath.Vec3{}, gamemath.Forward, ob)
	require.True(t, hit)
	assert.InDelta(t, 8, d, 1e-9)

	_, hit = rayBox(gamemath.Vec3{X: 5}, gamemath.Forward, ob)
	assert.False(t, hit)

	d, hit = rayBox(gamemath.Vec3{Z: 10}, gamemath.Forward, ob)
	require.True(t, hit)
	assert.Zero(t, d, "a ray from inside hits at once")
}

func TestUpdatePerceptionWritesSightAndDistance(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	tw.player(gamemath.Vec3{}, 0)
	facing := tw.enemy(t, "grunt", gamemath.Vec3{Z: 20}, 180)
	turned := tw.enemy(t, "grunt", gamemath.Vec3{X: 20}, 90)

	UpdatePlayerSnapshot(tw.w)
	UpdatePerception(tw.w)

	assert.True(t, components.Enemy.Get(facing).SeesPlayer)
	assert.InDelta(t, 20, components.Enemy.Get(facing).DistanceToPlayer, 1e-9)
	assert.False(t, components.Enemy.Get(turned).SeesPlayer)
	assert.InDelta(t, 20, components.Enemy.Get(turned).DistanceToPlayer, 1e-9)
}

func TestDeadPlayerIsInvisible(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	e := tw.enemy(t, "grunt", gamemath.Vec3{Z: 10}, 180)
	components.Player.Get(p).Dead = true

	UpdatePlayerSnapshot(tw.w)
	UpdatePerception(tw.w)

	assert.False(t, components.Enemy.Get(e).SeesPlayer)
	assert.True(t, math.IsInf(components.Enemy.Get(e).DistanceToPlayer, 1))
}

func TestParallelPerceptionMatchesSequential(t *testing.T) {
	build := func(parallel bool) (*testWorld, []*donburi.Entry) {
		tw := newTestWorld(t, chance.NewSequence(0.5))
		runtimeOf(tw.w).ParallelPerception = parallel
		tw.player(gamemath.Vec3{}, 0)
		tw.obstacle(gamemath.Vec3{X: 12, Z: 12}, 3)
		var enemies []*donburi.Entry
		for i := 0; i < 40; i++ {
			angle := float64(i) * 2 * math.Pi / 40
			dist := 10 + float64(i%5)*8
			pos := gamemath.Vec3{X: math.Sin(angle) * dist, Z: math.Cos(angle) * dist}
			facing := gamemath.YawOf(pos.Scale(-1)) + float64(i%3)*50
			enemies = append(enemies, tw.enemy(t, "grunt", pos, facing))
		}
		UpdatePlayerSnapshot(tw.w)
		UpdatePerception(tw.w)
		return tw, enemies
	}

	_, seq := build(false)
	_, par := build(true)
	require.Len(t, par, len(seq))
	seen := 0
	for i := range seq {
		a, b := components.Enemy.Get(seq[i]), components.Enemy.Get(par[i])
		assert.Equal(t, a.SeesPlayer, b.SeesPlayer, "enemy %d", i)
		assert.Equal(t, a.DistanceToPlayer, b.DistanceToPlayer, "enemy %d", i)
		if a.SeesPlayer {
			seen++
		}
	}
	assert.Positive(t, seen)
	assert.Less(t, seen, len(seq))
}
