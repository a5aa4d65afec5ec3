package systems

import (
	"testing"

	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playerFrame runs the player's part of a frame and latches input.
func playerFrame(tw *testWorld) {
	UpdatePlayer(tw.w)
	UpdateActions(tw.w)
	UpdateInputLatch(tw.w)
}

func TestHoldingAttackChargesHeavy(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	action := components.Action.Get(p)

	press(p, config.ActionAttack, true)
	for i := 0; i < 60; i++ {
		playerFrame(tw)
	}
	require.True(t, action.Charging)
	assert.Greater(t, action.ChargeTimer, tw.rules.Player.ChargeTime)
	assert.True(t, action.IsIdle(), "nothing swings while charging")

	press(p, config.ActionAttack, false)
	UpdatePlayer(tw.w)

	require.True(t, action.IsAttacking())
	assert.Equal(t, config.AttackHeavy, action.Attack.Kind)
	assert.False(t, action.Charging)
	assert.Contains(t, EffectsOf(tw.w).Sounds, config.SoundHeavySwing)
}

func TestTappingAttackSwingsLight(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	action := components.Action.Get(p)

	press(p, config.ActionAttack, true)
	playerFrame(tw)
	press(p, config.ActionAttack, false)
	UpdatePlayer(tw.w)

	require.True(t, action.IsAttacking())
	assert.Equal(t, config.AttackLight1, action.Attack.Kind)
	assert.Equal(t, 1, action.ComboStep)
	assert.InDelta(t, 145-22, components.Resources.Get(p).Stamina, 1e-9)
}

func TestMovementFollowsAim(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	input := components.Input.Get(p)
	input.AimYaw = 90
	input.Move = gamemath.Vec3{Z: 1}

	UpdatePlayer(tw.w)

	physics := components.Physics.Get(p)
	assert.InDelta(t, 90, physics.Facing, 1e-9)
	assert.InDelta(t, tw.rules.Player.WalkSpeed, physics.Desired.X, 1e-9)
	assert.InDelta(t, 0, physics.Desired.Z, 1e-9)
}

func TestSprintDrainsStamina(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	input := components.Input.Get(p)
	input.Move = gamemath.Vec3{Z: 1}
	press(p, config.ActionSprint, true)

	UpdatePlayer(tw.w)

	pc := tw.rules.Player
	assert.True(t, components.Player.Get(p).Sprinting)
	assert.InDelta(t, pc.WalkSpeed*pc.SprintMultiplier, components.Physics.Get(p).Desired.Z, 1e-9)
	assert.InDelta(t, pc.MaxStamina-pc.SprintCost*frameDT, components.Resources.Get(p).Stamina, 1e-9)
}

func TestDodgeInputRollsAlongMove(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	components.Input.Get(p).Move = gamemath.Vec3{X: 1}
	press(p, config.ActionDodge, true)

	UpdatePlayer(tw.w)

	action := components.Action.Get(p)
	require.True(t, action.IsDodging())
	assert.InDelta(t, 1, action.DodgeDirection.X, 1e-9)
	assert.Contains(t, EffectsOf(tw.w).Sounds, config.SoundDodge)
}

func TestJumpNeedsGround(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	physics := components.Physics.Get(p)
	press(p, config.ActionJump, true)

	UpdatePlayer(tw.w)
	assert.InDelta(t, tw.rules.Player.JumpSpeed, physics.VelocityY, 1e-9)
	assert.False(t, physics.OnGround)

	latch(p)
	press(p, config.ActionJump, false)
	UpdatePlayer(tw.w)
	latch(p)
	press(p, config.ActionJump, true)
	UpdatePlayer(tw.w)
	assert.InDelta(t, tw.rules.Player.MaxStamina-tw.rules.Player.JumpCost, components.Resources.Get(p).Stamina, 1e-9, "no second jump in the air")
}

func TestStaggeredPlayerIgnoresInput(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	action := components.Action.Get(p)
	EnterStagger(action, 1, config.CauseFlinch)
	components.Input.Get(p).Move = gamemath.Vec3{Z: 1}
	press(p, config.ActionDodge, true)

	UpdatePlayer(tw.w)

	assert.True(t, action.IsStaggered())
	assert.Equal(t, gamemath.Zero, components.Physics.Get(p).Desired)
}

func TestHealInputDrinksFlask(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	components.Resources.Get(p).Health = 100
	press(p, config.ActionHeal, true)

	UpdatePlayer(tw.w)

	assert.True(t, components.Action.Get(p).IsHealing())
	assert.Equal(t, tw.rules.Heal.Flasks-1, components.Player.Get(p).Flasks)
}

func TestLockOnAcquireToggleAndRevalidate(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	near := tw.enemy(t, "grunt", gamemath.Vec3{X: -3, Z: 20}, 180)
	tw.enemy(t, "grunt", gamemath.Vec3{X: 30, Z: 10}, 180)
	player := components.Player.Get(p)

	press(p, config.ActionLockOn, true)
	playerFrame(tw)
	require.NotNil(t, player.LockTarget)
	assert.Equal(t, near.Entity(), player.LockTarget.Entity())
	want := gamemath.YawOf(gamemath.Vec3{X: -3, Z: 20})
	assert.InDelta(t, want, components.Physics.Get(p).Facing, 1e-9, "locked players face their target")

	components.Resources.Get(near).Health = 0
	press(p, config.ActionLockOn, false)
	playerFrame(tw)
	assert.Nil(t, player.LockTarget, "dead targets are dropped")

	press(p, config.ActionLockOn, true)
	playerFrame(tw)
	require.NotNil(t, player.LockTarget)
	press(p, config.ActionLockOn, false)
	playerFrame(tw)
	press(p, config.ActionLockOn, true)
	playerFrame(tw)
	assert.Nil(t, player.LockTarget, "pressing again releases the lock")
}

func TestLockOnBreaksOutOfRange(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	e := tw.enemy(t, "grunt", gamemath.Vec3{Z: 20}, 180)
	player := components.Player.Get(p)

	press(p, config.ActionLockOn, true)
	playerFrame(tw)
	require.NotNil(t, player.LockTarget)

	components.Physics.Get(e).Position = gamemath.Vec3{Z: 61}
	assert.Nil(t, LockTarget(player, components.Physics.Get(p), tw.rules.LockOn))
	assert.Nil(t, player.LockTarget)
}

func TestFlickSwitchesTarget(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	ahead := tw.enemy(t, "grunt", gamemath.Vec3{Z: 20}, 180)
	right := tw.enemy(t, "grunt", gamemath.Vec3{X: 15, Z: 20}, 180)
	player := components.Player.Get(p)
	input := components.Input.Get(p)

	press(p, config.ActionLockOn, true)
	playerFrame(tw)
	require.Equal(t, ahead.Entity(), player.LockTarget.Entity())

	input.Flick = 1
	playerFrame(tw)
	require.Equal(t, right.Entity(), player.LockTarget.Entity())
	assert.Greater(t, player.SwitchCooldown, 0.0)

	input.Flick = 1
	playerFrame(tw)
	assert.Equal(t, right.Entity(), player.LockTarget.Entity(), "switching waits out the cooldown")

	player.SwitchCooldown = 0
	input.Flick = 1
	playerFrame(tw)
	assert.Equal(t, ahead.Entity(), player.LockTarget.Entity(), "the order wraps around")
}

func TestSwitchNeedsTwoCandidates(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	only := tw.enemy(t, "grunt", gamemath.Vec3{Z: 20}, 180)

	next := SwitchTarget(tw.w, components.Physics.Get(p), only, 0, 1, tw.rules.LockOn)
	assert.Nil(t, next)
}

func TestDeadPlayerStops(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	components.Player.Get(p).Dead = true
	components.Physics.Get(p).Desired = gamemath.Vec3{Z: 5}
	components.Input.Get(p).Move = gamemath.Vec3{Z: 1}

	UpdatePlayer(tw.w)

	assert.Equal(t, gamemath.Zero, components.Physics.Get(p).Desired)
}
