package systems

import (
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
)

// decision is everything one enemy decides against on one frame.
type decision struct {
	w     donburi.World
	rules *config.Config
	src   chance.Source
	dt    float64

	enemy   *components.EnemyData
	kind    *config.EnemyKind
	physics *components.PhysicsData
	action  *components.ActionData
	res     *components.ResourcesData

	player   components.PlayerSnapshotData
	toPlayer gamemath.Vec3 // unit
	dist     float64
	dot      float64 // facing against toPlayer
}

func (d *decision) canAct() bool {
	return CanAct(d.action, d.res)
}

// behavior is the kind-specific part of the decision list. Kinds pick one by
// id in their data.
type behavior interface {
	// dodgeDirection adjusts the reactive dodge, which defaults to straight
	// away from the player.
	dodgeDirection(d *decision, away gamemath.Vec3) gamemath.Vec3
	// special runs the kind's signature move and reports whether it started
	// an action.
	special(d *decision) bool
	// engage returns the chase movement direction and speed multiplier.
	engage(d *decision) (gamemath.Vec3, float64)
	// attack starts a regular attack when the gates allow it.
	attack(d *decision) bool
}

var behaviors = map[config.BehaviorID]behavior{
	config.BehaviorGrunt: grunt{},
	config.BehaviorTank:  tank{},
	config.BehaviorAgile: agile{},
	config.BehaviorBoss:  boss{},
}

func behaviorFor(id config.BehaviorID) behavior {
	if b, ok := behaviors[id]; ok {
		return b
	}
	return grunt{}
}

type grunt struct{}

func (grunt) dodgeDirection(_ *decision, away gamemath.Vec3) gamemath.Vec3 { return away }
func (grunt) special(*decision) bool                                       { return false }
func (grunt) engage(d *decision) (gamemath.Vec3, float64)                  { return blendApproach(d) }
func (grunt) attack(d *decision) bool                                      { return tryAttack(d, 0) }

// tank raises its guard against incoming swings and mixes in heavy attacks.
type tank struct{ grunt }

func (tank) special(d *decision) bool {
	ai := d.rules.AI
	if !d.player.Attacking || d.dist >= d.rules.Combat.AttackRange+ai.BlockReachBonus {
		return false
	}
	if !d.canAct() || !d.res.CanAfford(d.rules.Block.Cost) {
		return false
	}
	if !chance.Roll(d.src, d.kind.BlockChance) {
		return false
	}
	return TryStartBlock(d.action, d.res, d.rules.Block)
}

func (tank) attack(d *decision) bool {
	return tryAttack(d, d.kind.HeavyChance)
}

// agile rolls to the side to flank instead of straight back.
type agile struct{ grunt }

func (agile) dodgeDirection(d *decision, away gamemath.Vec3) gamemath.Vec3 {
	if !chance.Roll(d.src, d.kind.FlankChance) {
		return away
	}
	side := gamemath.RightOf(away)
	if chance.Roll(d.src, 0.5) {
		side = side.Scale(-1)
	}
	return away.Add(side).Normalize(away)
}

// boss runs its scripted combo and never falls back to regular attacks.
type boss struct{ grunt }

func (boss) special(d *decision) bool {
	ai := d.rules.AI
	steps := len(d.kind.Combo)
	if steps == 0 || d.enemy.ComboDelayTimer > 0 {
		return false
	}
	if d.dist > d.rules.Combat.AttackRange+ai.ComboReachBonus || d.dot <= ai.ComboDot {
		return false
	}
	step := d.enemy.ComboStep%steps + 1
	if !TryStartAttack(d.action, d.res, d.kind.ComboAttack(ai, step)) {
		return false
	}
	d.enemy.ComboStep = step
	sound := config.SoundSwing
	if step == steps {
		d.enemy.ComboDelayTimer = d.kind.ComboPause
		sound = config.SoundHeavySwing
	}
	RequestSound(EffectsOf(d.w), sound)
	return true
}

func (boss) engage(d *decision) (gamemath.Vec3, float64) {
	strafe := gamemath.RightOf(d.toPlayer).Scale(d.enemy.StrafeSide * d.kind.Strafe)
	dir := d.toPlayer.Scale(d.kind.ForwardFar).Add(strafe).Normalize(d.toPlayer)
	return dir, d.kind.EngageSpeed
}

func (boss) attack(*decision) bool { return false }

// blendApproach mixes closing in with circling the player. Near the player
// the forward share drops so the enemy circles instead of crowding.
func blendApproach(d *decision) (gamemath.Vec3, float64) {
	ai := d.rules.AI
	if d.dist > ai.CombatRange {
		return d.toPlayer, 1
	}
	forward := d.kind.ForwardNear
	if d.dist > d.rules.Combat.AttackRange+ai.NearBonus {
		forward = d.kind.ForwardFar
	}
	strafe := gamemath.RightOf(d.toPlayer).Scale(d.enemy.StrafeSide * d.kind.Strafe)
	dir := d.toPlayer.Scale(forward).Add(strafe)
	if dir.FlatLength() <= 0.01 {
		return gamemath.Zero, 0
	}
	return dir.Normalize(d.toPlayer), ai.StrafeSpeed * d.kind.EngageSpeed
}

// tryAttack starts a light attack, or a heavy one on a heavyChance roll when
// stamina allows.
func tryAttack(d *decision, heavyChance float64) bool {
	ai := d.rules.AI
	if d.dist > d.rules.Combat.AttackRange+ai.ReachBonus || d.dot <= ai.AttackDot {
		return false
	}
	if d.enemy.AttackCooldown > 0 || !d.canAct() || !d.res.CanAfford(ai.AttackCost) {
		return false
	}

	heavy := chance.Roll(d.src, heavyChance) && d.res.CanAfford(ai.HeavyCost)
	var profile config.AttackProfile
	if heavy {
		profile = d.kind.HeavyAttack(ai)
	} else {
		variant := min(int(d.src.Float64()*3), 2)
		profile = d.kind.LightAttack(ai, variant)
	}
	if !TryStartAttack(d.action, d.res, profile) {
		return false
	}

	cooldown := d.kind.Cooldown + chance.Range(d.src, 0, ai.CooldownJitter)
	sound := config.SoundSwing
	if heavy {
		cooldown += ai.HeavyCooldownExtra
		sound = config.SoundHeavySwing
	}
	d.enemy.AttackCooldown = cooldown
	RequestSound(EffectsOf(d.w), sound)
	return true
}
