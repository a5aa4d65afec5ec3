package systems

import (
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/automoto/ashfall/tags"
	"github.com/yohamta/donburi"
)

// HitOutcome is what a confirmed swing did.
type HitOutcome int

const (
	HitIgnored HitOutcome = iota
	HitLanded
	HitParried
)

// HitResult is the outcome of one swing against one defender. Event is only
// meaningful when Outcome is HitLanded.
type HitResult struct {
	Outcome HitOutcome
	Event   components.HitEvent
}

// Combatant bundles the components hit resolution reads and writes. Player
// is nil for enemies and Enemy is nil for the player.
type Combatant struct {
	Entry     *donburi.Entry
	Physics   *components.PhysicsData
	Resources *components.ResourcesData
	Action    *components.ActionData
	Player    *components.PlayerData
	Enemy     *components.EnemyData
}

// CombatantOf reads the hit-relevant components of an actor entry.
func CombatantOf(e *donburi.Entry) Combatant {
	c := Combatant{
		Entry:     e,
		Physics:   components.Physics.Get(e),
		Resources: components.Resources.Get(e),
		Action:    components.Action.Get(e),
	}
	if e.HasComponent(components.Player) {
		c.Player = components.Player.Get(e)
	}
	if e.HasComponent(components.Enemy) {
		c.Enemy = components.Enemy.Get(e)
	}
	return c
}

func (c Combatant) defense(rules *config.Config) config.DefenseConfig {
	if c.Player != nil {
		return rules.Player.Defense
	}
	return rules.AI.Defense
}

// InReach is the range and facing-cone test. It is not swept: a target that
// is inside the cone on a given frame is hit on that frame.
func InReach(rules config.CombatConfig, attacker, target *components.PhysicsData, profile config.AttackProfile) bool {
	if gamemath.FlatDistance(attacker.Position, target.Position) > rules.AttackRange+profile.RangeSlack {
		return false
	}
	facing := attacker.FacingVector()
	dir := gamemath.FlatDirection(attacker.Position, target.Position, facing)
	return facing.Dot(dir) >= profile.MinDot
}

// ResolveHit decides what a swing that is in reach does to the defender.
// Parries take effect immediately on the attacker; landed hits come back as
// an event for the resource phase.
func ResolveHit(rules *config.Config, attacker, defender Combatant, profile config.AttackProfile, progress float64) HitResult {
	back := defender.Physics.FacingVector().Scale(-1)
	dir := gamemath.FlatDirection(attacker.Physics.Position, defender.Physics.Position, back)
	da := defender.Action

	blocked := da.IsBlocking() && !profile.Heavy

	if da.InPerfectParry(rules.Parry.PerfectWindow) {
		EnterStagger(attacker.Action, rules.Parry.StunDuration, config.CauseParried)
		attacker.Physics.Velocity = attacker.Physics.Velocity.Add(dir.Scale(-rules.Parry.Knockback))
		if defender.Player != nil {
			defender.Player.RiposteTimer = rules.Parry.RiposteWindow
		}
		return HitResult{Outcome: HitParried}
	}

	if da.Invulnerable() {
		return HitResult{Outcome: HitIgnored}
	}

	damageMult, poiseMult, knockMult := 1.0, 1.0, 1.0

	toAttacker := dir.Scale(-1)
	critical := defender.Physics.FacingVector().Dot(toAttacker) < rules.Combat.BackstabDot || da.StunnedByParry()
	if critical {
		damageMult *= profile.Critical.Damage
		poiseMult *= profile.Critical.Poise
		knockMult *= profile.Critical.Knockback
	}

	if defender.Resources.Exhausted() {
		poiseMult *= rules.Combat.ExhaustedPoiseMultiplier
	}

	severity := profile.Severity
	if critical {
		severity = config.SeverityCritical
	}
	if blocked {
		damageMult *= rules.Combat.BlockDamageMultiplier
		poiseMult *= rules.Combat.BlockPoiseMultiplier
		da.State = config.ActionIdle
		da.Timer = 0
		da.Duration = 0
		severity = config.SeverityBlocked
	}

	scale := profile.Scale
	event := components.HitEvent{
		Attacker:         attacker.Entry,
		AttackerPosition: attacker.Physics.Position,
		Direction:        dir,
		Damage:           int(profile.DamageAt(progress) * scale.Damage * damageMult),
		PoiseDamage:      profile.PoiseDamage * scale.Poise * poiseMult,
		Knockback:        profile.Knockback,
		KnockbackScale:   scale.Knockback * knockMult,
		Severity:         severity,
		Heavy:            profile.Heavy,
		Critical:         critical,
		Blocked:          blocked,
	}

	da.HitInvulnTimer = max(da.HitInvulnTimer, defender.defense(rules).HitInvuln)
	return HitResult{Outcome: HitLanded, Event: event}
}

// UpdateHits tests every active swing against its targets and queues the
// landed hits on the defenders. A swing connects with each defender at most
// once; a defender it slid past while invulnerable can still be caught later
// in the active window.
func UpdateHits(w donburi.World) {
	rules := rulesOf(w)
	playerEntry, ok := PlayerEntry(w)
	if !ok {
		return
	}
	player := CombatantOf(playerEntry)
	if !player.Resources.Alive() || player.Player.Dead {
		return
	}

	if player.Action.IsAttacking() {
		profile := player.Action.Attack
		progress := player.Action.Progress()
		if profile.Active(progress) {
			tags.Enemy.Each(w, func(e *donburi.Entry) {
				if e.HasComponent(components.Defeated) {
					return
				}
				enemy := CombatantOf(e)
				if !enemy.Resources.Alive() || !InReach(rules.Combat, player.Physics, enemy.Physics, profile) {
					return
				}
				resolveSwing(w, rules, player, enemy, profile, progress)
			})
		}
	}

	tags.Enemy.Each(w, func(e *donburi.Entry) {
		if e.HasComponent(components.Defeated) {
			return
		}
		enemy := CombatantOf(e)
		if !enemy.Action.IsAttacking() || !enemy.Resources.Alive() {
			return
		}
		profile := enemy.Action.Attack
		progress := enemy.Action.Progress()
		if !profile.Active(progress) || !InReach(rules.Combat, enemy.Physics, player.Physics, profile) {
			return
		}
		if enemy.Action.StruckBySwing(playerEntry.Entity()) {
			return
		}
		checkPerfectDodge(w, rules, player)
		resolveSwing(w, rules, enemy, player, profile, progress)
	})
}

func resolveSwing(w donburi.World, rules *config.Config, attacker, defender Combatant, profile config.AttackProfile, progress float64) {
	swing := attacker.Action
	if swing.StruckBySwing(defender.Entry.Entity()) {
		return
	}
	result := ResolveHit(rules, attacker, defender, profile, progress)
	switch result.Outcome {
	case HitParried:
		swing.SwingHits = append(swing.SwingHits, defender.Entry.Entity())
		RequestSeverity(w, attacker.Physics.Position, config.SeverityParry)
	case HitLanded:
		swing.SwingHits = append(swing.SwingHits, defender.Entry.Entity())
		queue := components.DamageQueue.Get(defender.Entry)
		queue.Events = append(queue.Events, result.Event)
	}
}

// checkPerfectDodge rewards a player whose roll is in its closing window
// while an enemy swing would have connected. It pays out once per roll.
func checkPerfectDodge(w donburi.World, rules *config.Config, player Combatant) {
	a := player.Action
	if !a.IsDodging() || a.PerfectDodgeSpent || player.Player.PerfectDodgeTimer > 0 {
		return
	}
	if a.Timer >= rules.Dodge.PerfectWindow {
		return
	}
	a.PerfectDodgeSpent = true
	player.Player.PerfectDodgeTimer = rules.Dodge.PerfectTimer
	player.Resources.Refund(rules.Dodge.PerfectRefund)
	RequestSeverity(w, player.Physics.Position, config.SeverityPerfectDodge)
}
