package systems

import (
	"math"

	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/automoto/ashfall/tags"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// UpdateEnemies runs awareness and the decision list for every enemy against
// the player snapshot taken at the start of the frame. The list goes top
// down: reactive dodge, the kind's special, movement, then a regular attack.
func UpdateEnemies(w donburi.World) {
	rules := rulesOf(w)
	src := randOf(w)
	dt := frameOf(w).Delta
	player := *SnapshotOf(w)
	log := loggerOf(w)

	tags.Enemy.Each(w, func(e *donburi.Entry) {
		if e.HasComponent(components.Defeated) {
			return
		}
		d := &decision{
			w:       w,
			rules:   rules,
			src:     src,
			dt:      dt,
			enemy:   components.Enemy.Get(e),
			physics: components.Physics.Get(e),
			action:  components.Action.Get(e),
			res:     components.Resources.Get(e),
			player:  player,
		}
		d.kind = d.enemy.Kind

		before := d.enemy.AIState
		state := DesiredAwareness(d.enemy, d.action, d.physics.Position, player.Position, rules.AI, dt)
		if SetAwareness(d.enemy, state) {
			log.Debug("awareness changed",
				zap.String("kind", d.kind.ID),
				zap.String("from", string(before)),
				zap.String("to", string(d.enemy.AIState)),
			)
		}
		decide(d)
	})
}

func decide(d *decision) {
	enemy := d.enemy
	ai := d.rules.AI

	enemy.AttackCooldown = gamemath.CountDown(enemy.AttackCooldown, d.dt)
	if d.action.IsIdle() {
		enemy.ComboDelayTimer = gamemath.CountDown(enemy.ComboDelayTimer, d.dt)
	}

	if d.action.IsStaggered() {
		d.physics.Desired = gamemath.Zero
		return
	}

	if !d.player.Valid || !d.player.Alive {
		patrol(d, enemy.Home, enemy.PatrolRadius)
		return
	}

	toPlayer := d.player.Position.Sub(d.physics.Position).Flat()
	d.dist = toPlayer.FlatLength()
	d.toPlayer = toPlayer.Normalize(d.physics.FacingVector())

	engaged := enemy.AIState != config.AIPatrol && d.dist < ai.CombatRange
	if engaged {
		enemy.StrafeTimer -= d.dt
		if enemy.StrafeTimer <= 0 {
			enemy.StrafeSide = -enemy.StrafeSide
			enemy.StrafeTimer = chance.Range(d.src, ai.StrafeFlipMin, ai.StrafeFlipMax)
		}
	}

	// enemies keep tracking the player through their own swings
	if enemy.AIState == config.AIChase && d.dist > 0.5 {
		d.physics.Face(d.toPlayer)
	}
	d.dot = d.physics.FacingVector().Dot(d.toPlayer)

	b := behaviorFor(d.kind.Behavior)

	if tryDodge(d, b) {
		d.physics.Desired = gamemath.Zero
		return
	}
	started := b.special(d)

	switch enemy.AIState {
	case config.AIPatrol:
		patrol(d, enemy.Home, enemy.PatrolRadius)
	case config.AISearch:
		patrol(d, enemy.LastKnownPlayer, ai.SearchRadius)
	case config.AIAlert:
		toward := enemy.LastKnownPlayer.Sub(d.physics.Position).Flat()
		dir := toward.Normalize(gamemath.Zero)
		d.physics.Face(dir)
		steer(d, dir, 1)
	default:
		dir, speed := b.engage(d)
		steer(d, dir, speed)
	}

	if !started && enemy.AIState == config.AIChase {
		b.attack(d)
	}
	if d.action.IsAttacking() {
		d.physics.Desired = gamemath.Zero
	}
}

// steer sets the desired velocity along dir at the kind's speed times mult.
func steer(d *decision, dir gamemath.Vec3, mult float64) {
	speed := d.rules.Movement.EnemySpeed * d.kind.Speed * mult
	if d.res.Exhausted() {
		speed *= d.rules.Player.ExhaustedMultiplier
	}
	d.physics.Desired = dir.Flat().Scale(speed)
}

// patrol wanders between random points around centre. A new point is picked
// when the timer runs out or the current one is reached.
func patrol(d *decision, centre gamemath.Vec3, radius float64) {
	ai := d.rules.AI
	enemy := d.enemy

	enemy.PatrolTimer -= d.dt
	if enemy.PatrolTimer <= 0 || gamemath.FlatDistance(d.physics.Position, enemy.PatrolTarget) < ai.PatrolArrive {
		angle := chance.Range(d.src, 0, 2*math.Pi)
		r := chance.Range(d.src, 0, radius)
		enemy.PatrolTarget = centre.Add(gamemath.Vec3{X: math.Cos(angle) * r, Z: math.Sin(angle) * r})
		enemy.PatrolTimer = chance.Range(d.src, ai.PatrolMin, ai.PatrolMax)
	}

	toTarget := enemy.PatrolTarget.Sub(d.physics.Position).Flat()
	if toTarget.FlatLength() <= 1 {
		d.physics.Desired = gamemath.Zero
		return
	}
	dir := toTarget.Normalize(gamemath.Zero)
	d.physics.Face(dir)
	steer(d, dir, ai.PatrolSpeed)
}

// tryDodge rolls the enemy's dodge chance against a player swing nearby.
func tryDodge(d *decision, b behavior) bool {
	ai := d.rules.AI
	if !d.player.Attacking || d.dist >= ai.ThreatRange {
		return false
	}
	if !d.canAct() || !d.res.CanAfford(ai.DodgeCost) {
		return false
	}
	if !chance.Roll(d.src, d.enemy.DodgeChance) {
		return false
	}

	away := d.toPlayer.Scale(-1)
	dir := b.dodgeDirection(d, away)

	rules := d.rules.Dodge
	rules.Cost = ai.DodgeCost
	rules.Distance = ai.DodgeDistance
	rules.RegenDelay = d.rules.Player.RegenDelay
	if !TryStartDodge(d.action, d.res, d.physics, dir, rules) {
		return false
	}
	RequestSound(EffectsOf(d.w), config.SoundDodge)
	return true
}
