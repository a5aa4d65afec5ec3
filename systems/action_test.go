package systems

import (
	"testing"

	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func freshActor(c *config.Config) (*components.ActionData, *components.ResourcesData) {
	res := components.NewResources(c.Player.MaxHealth, c.Player.MaxStamina, c.Player.MaxPoise, c.Player.StaminaRegen)
	return &components.ActionData{}, &res
}

// finish runs the current action to completion.
func finish(a *components.ActionData, r *components.ResourcesData, comboReset float64) config.ActionState {
	return AdvanceAction(a, r, a.Timer+0.01, comboReset)
}

func TestComboChainWrapsAndResets(t *testing.T) {
	c := config.Default()
	a, r := freshActor(c)
	reset := c.Player.ComboResetTime

	var steps []int
	var kinds []config.AttackKind
	for i := 0; i < 4; i++ {
		require.True(t, TryStartComboAttack(a, r, c.Player.Light))
		steps = append(steps, a.ComboStep)
		kinds = append(kinds, a.Attack.Kind)
		assert.Equal(t, config.ActionAttacking, finish(a, r, reset))
		assert.InDelta(t, reset, a.ComboResetTimer, 1e-9)
	}
	assert.Equal(t, []int{1, 2, 3, 1}, steps)
	assert.Equal(t, []config.AttackKind{config.AttackLight1, config.AttackLight2, config.AttackLight3, config.AttackLight1}, kinds)

	AdvanceAction(a, r, reset+0.1, reset)
	assert.Zero(t, a.ComboStep, "the chain lapses")
	assert.Equal(t, 1, NextComboStep(a))
}

func TestHeavyAttackBreaksCombo(t *testing.T) {
	c := config.Default()
	a, r := freshActor(c)
	reset := c.Player.ComboResetTime

	require.True(t, TryStartComboAttack(a, r, c.Player.Light))
	finish(a, r, reset)
	require.Equal(t, 2, NextComboStep(a))

	require.True(t, TryStartHeavyAttack(a, r, c.Player.Heavy))
	assert.Equal(t, config.AttackHeavy, a.Attack.Kind)
	finish(a, r, reset)
	assert.Zero(t, a.ComboResetTimer)
	assert.Equal(t, 1, NextComboStep(a))
}

func TestAttackNeedsStamina(t *testing.T) {
	c := config.Default()
	a, r := freshActor(c)
	r.Stamina = 10

	assert.False(t, TryStartAttack(a, r, c.Player.Light[0]))
	assert.True(t, a.IsIdle())
	assert.InDelta(t, 10, r.Stamina, 1e-9)
}

func TestActionsNeedAnIdleLivingActor(t *testing.T) {
	c := config.Default()

	a, r := freshActor(c)
	EnterStagger(a, 1, config.CauseFlinch)
	assert.False(t, CanAct(a, r))
	assert.False(t, TryStartBlock(a, r, c.Block))
	assert.False(t, TryStartParry(a, r, c.Parry))

	a, r = freshActor(c)
	r.Health = 0
	assert.False(t, CanAct(a, r))
	assert.False(t, TryStartAttack(a, r, c.Player.Light[0]))
	assert.InDelta(t, c.Player.MaxStamina, r.Stamina, 1e-9)
}

func TestStartedActionsAreExclusive(t *testing.T) {
	c := config.Default()
	rapid.Check(t, func(rt *rapid.T) {
		a, r := freshActor(c)
		p := &components.PhysicsData{}
		player := &components.PlayerData{Flasks: 2}
		r.Health = rapid.IntRange(1, c.Player.MaxHealth).Draw(rt, "health")

		ops := rapid.SliceOfN(rapid.IntRange(0, 7), 1, 40).Draw(rt, "ops")
		for _, op := range ops {
			wasFree := CanAct(a, r)
			started := false
			switch op {
			case 0:
				started = TryStartComboAttack(a, r, c.Player.Light)
			case 1:
				started = TryStartHeavyAttack(a, r, c.Player.Heavy)
			case 2:
				started = TryStartDodge(a, r, p, gamemath.Vec3{X: 1}, c.Dodge)
			case 3:
				started = TryStartBlock(a, r, c.Block)
			case 4:
				started = TryStartParry(a, r, c.Parry)
			case 5:
				started = TryStartHeal(a, r, player, c.Heal)
			case 6:
				EnterStagger(a, 0.3, config.CauseFlinch)
			case 7:
				AdvanceAction(a, r, 0.1, c.Player.ComboResetTime)
			}
			if started && !wasFree {
				rt.Fatalf("op %d started while %v", op, a.State)
			}
			if r.Stamina < 0 || r.Stamina > r.MaxStamina {
				rt.Fatalf("stamina %v out of range", r.Stamina)
			}
			if r.Health < 0 || r.Health > r.MaxHealth {
				rt.Fatalf("health %v out of range", r.Health)
			}
		}
	})
}

func TestDodgeCoversItsDistance(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	physics := components.Physics.Get(p)
	action := components.Action.Get(p)
	res := components.Resources.Get(p)

	require.True(t, TryStartDodge(action, res, physics, gamemath.Vec3{X: 1}, tw.rules.Dodge))
	assert.InDelta(t, tw.rules.Player.MaxStamina-tw.rules.Dodge.Cost, res.Stamina, 1e-9)

	frames := 0
	for action.IsDodging() && frames < 60 {
		UpdateActions(tw.w)
		frames++
	}
	require.False(t, action.IsDodging())
	assert.Equal(t, 14, frames)
	assert.InDelta(t, tw.rules.Dodge.Distance, physics.Position.X, 1e-4)
	assert.InDelta(t, 0, physics.Position.Z, 1e-9)
	assert.True(t, action.Invulnerable(), "i-frames outlast the roll")
}

func TestDodgeWithoutDirectionRollsBack(t *testing.T) {
	c := config.Default()
	a, r := freshActor(c)
	p := &components.PhysicsData{Facing: 90}

	require.True(t, TryStartDodge(a, r, p, gamemath.Zero, c.Dodge))
	assert.InDelta(t, -1, a.DodgeDirection.X, 1e-9)
	assert.InDelta(t, 0, a.DodgeDirection.Z, 1e-9)
}

func TestDodgeIsBlockedByObstacle(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	tw.obstacle(gamemath.Vec3{X: 8}, 2)
	p := tw.player(gamemath.Vec3{}, 0)
	physics := components.Physics.Get(p)
	action := components.Action.Get(p)

	require.True(t, TryStartDodge(action, components.Resources.Get(p), physics, gamemath.Vec3{X: 1}, tw.rules.Dodge))
	for action.IsDodging() {
		UpdateActions(tw.w)
	}
	assert.Less(t, physics.Position.X, 8-2-physics.Radius+1e-9)
}

func TestHealArrivesWhenFinished(t *testing.T) {
	c := config.Default()
	a, r := freshActor(c)
	player := &components.PlayerData{Flasks: c.Heal.Flasks}
	r.Health = 200

	require.True(t, TryStartHeal(a, r, player, c.Heal))
	assert.Equal(t, c.Heal.Flasks-1, player.Flasks)
	assert.Equal(t, 200, r.Health)

	assert.Equal(t, config.ActionHealing, finish(a, r, 0))
	assert.Equal(t, 200+c.Heal.Amount, r.Health)
}

func TestStaggerWastesHeal(t *testing.T) {
	c := config.Default()
	a, r := freshActor(c)
	player := &components.PlayerData{Flasks: 1}
	r.Health = 200

	require.True(t, TryStartHeal(a, r, player, c.Heal))
	EnterStagger(a, 0.2, config.CauseFlinch)
	assert.Equal(t, config.ActionStaggered, finish(a, r, 0))

	assert.Equal(t, 200, r.Health)
	assert.Zero(t, player.Flasks)
	assert.False(t, TryStartHeal(a, r, player, c.Heal), "no flasks left")
}

func TestHealRefusedAtFullHealth(t *testing.T) {
	c := config.Default()
	a, r := freshActor(c)
	player := &components.PlayerData{Flasks: 2}

	assert.False(t, TryStartHeal(a, r, player, c.Heal))
	assert.Equal(t, 2, player.Flasks)
}

func TestSwingFollowsCurve(t *testing.T) {
	c := config.Default()
	a, r := freshActor(c)
	require.True(t, TryStartAttack(a, r, c.Player.Light[0]))

	AdvanceAction(a, r, a.Duration/2, 0)
	seg := c.Player.Light[0].Swing[0]
	assert.InDelta(t, (seg.YawFrom+seg.YawTo)/2, a.SwingYaw, 1e-9)
	assert.InDelta(t, (seg.PitchFrom+seg.PitchTo)/2, a.SwingPitch, 1e-9)
}
