package systems

import (
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// HitReport is what applying a hit did to the defender.
type HitReport struct {
	Severity config.Severity
	Broken   bool
	Died     bool
}

// ApplyHit commits a resolved hit to the defender: health, knockback, poise
// and the enemy's reaction to being struck.
func ApplyHit(rules *config.Config, defender Combatant, ev components.HitEvent) HitReport {
	r := defender.Resources
	a := defender.Action
	p := defender.Physics
	report := HitReport{Severity: ev.Severity}
	if !r.Alive() {
		return report
	}

	r.Damage(ev.Damage)
	p.Velocity = p.Velocity.Add(ev.Direction.Scale(ev.Knockback * ev.KnockbackScale))

	// a stagger from a break or a parry absorbs further poise damage
	if !a.PoiseLocked() && r.DamagePoise(ev.PoiseDamage) {
		defense := defender.defense(rules)
		EnterStagger(a, defense.BreakStagger, config.CausePoiseBreak)
		p.Velocity = p.Velocity.Add(ev.Direction.Scale(defense.BreakKnockback))
		report.Broken = true
		report.Severity = config.SeverityBreak
	}

	if !r.Alive() {
		report.Died = true
		if defender.Player != nil {
			defender.Player.Dead = true
		}
		return report
	}

	if defender.Enemy != nil {
		reactToHit(rules, defender, ev, report.Broken)
	}
	return report
}

func reactToHit(rules *config.Config, defender Combatant, ev components.HitEvent, broken bool) {
	enemy := defender.Enemy
	a := defender.Action

	enemy.AlertTimer = max(enemy.AlertTimer, rules.Combat.AlertOnHit)
	enemy.LastKnownPlayer = ev.AttackerPosition
	defender.Physics.Face(ev.AttackerPosition.Sub(defender.Physics.Position))
	if !a.IsStaggered() {
		SetAwareness(enemy, config.AIChase)
	}

	kind := enemy.Kind
	switch {
	case broken, ev.Blocked, a.IsStaggered(), kind.Unflinching:
		return
	case kind.ResistLightFlinch && !ev.Heavy && !ev.Critical:
		return
	}
	flinch := rules.Combat.FlinchLight
	if ev.Heavy {
		flinch = rules.Combat.FlinchHeavy
	}
	EnterStagger(a, flinch, config.CauseFlinch)
}

// UpdateCombat applies the hits queued this frame, regenerates stamina and
// starts the defeat lifecycle for enemies that ran out of health.
func UpdateCombat(w donburi.World) {
	rules := rulesOf(w)
	dt := frameOf(w).Delta
	fx := EffectsOf(w)

	var defeated []*donburi.Entry
	eachActor(w, func(e *donburi.Entry) {
		c := CombatantOf(e)
		queue := components.DamageQueue.Get(e)
		for _, ev := range queue.Events {
			report := ApplyHit(rules, c, ev)
			RequestSeverity(w, c.Physics.Position, report.Severity)
			if !report.Died {
				continue
			}
			if c.Enemy != nil {
				defeated = append(defeated, e)
				break
			}
			RequestSound(fx, config.SoundDeath)
			loggerOf(w).Debug("player died", zap.Uint64("frame", frameOf(w).Frame))
			break
		}
		queue.Events = queue.Events[:0]

		c.Resources.Regen(dt)
		c.Resources.Clamp()
	})

	for _, e := range defeated {
		defeat(w, rules, e)
	}
}

func defeat(w donburi.World, rules *config.Config, e *donburi.Entry) {
	fx := EffectsOf(w)
	enemy := components.Enemy.Get(e)
	pos := components.Physics.Get(e).Position

	donburi.Add(e, components.Defeated, &components.DefeatedData{Timer: rules.Combat.DefeatLinger})
	fx.Defeats = append(fx.Defeats, components.DefeatEvent{
		Kind:     enemy.Kind.ID,
		Reward:   enemy.Kind.Reward,
		Position: pos,
	})
	RequestBurst(fx, pos, config.ColorBlood, rules.Combat.DeathParticle)
	RequestSound(fx, config.SoundEnemyDeath)

	loggerOf(w).Debug("enemy defeated",
		zap.String("kind", enemy.Kind.ID),
		zap.Int("reward", enemy.Kind.Reward),
		zap.Float64("x", pos.X),
		zap.Float64("z", pos.Z),
	)
}

// UpdateDefeated lets defeated enemies linger for the death effect and then
// removes them from the world and the collision space.
func UpdateDefeated(w donburi.World) {
	dt := frameOf(w).Delta
	_, space := arenaOf(w)

	var expired []*donburi.Entry
	components.Defeated.Each(w, func(e *donburi.Entry) {
		d := components.Defeated.Get(e)
		d.Timer = gamemath.CountDown(d.Timer, dt)
		if d.Timer == 0 {
			expired = append(expired, e)
		}
	})

	for _, e := range expired {
		if space != nil && e.HasComponent(components.Object) {
			if obj := components.Object.Get(e); obj.Object != nil {
				space.Remove(obj.Object)
			}
		}
		w.Remove(e.Entity())
	}
}
