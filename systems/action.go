package systems

import (
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	restSwingYaw   = 30.0
	restSwingPitch = -30.0
	swingRelaxRate = 14.0
)

// CanAct reports whether the actor is free to commit to a new action. Every
// TryStart helper checks it first and silently refuses otherwise.
func CanAct(a *components.ActionData, r *components.ResourcesData) bool {
	return a.IsIdle() && r.Alive()
}

// TryStartAttack commits to profile if the actor can act and afford it.
func TryStartAttack(a *components.ActionData, r *components.ResourcesData, profile config.AttackProfile) bool {
	if !CanAct(a, r) || !r.CanAfford(profile.StaminaCost) {
		return false
	}
	r.Spend(profile.StaminaCost, profile.RegenDelay)

	a.State = config.ActionAttacking
	a.Duration = profile.Duration
	a.Timer = profile.Duration
	a.Attack = profile
	a.SwingHits = a.SwingHits[:0]
	a.Charging = false
	a.ChargeTimer = 0
	return true
}

// NextComboStep is the light attack step that follows the current one. The
// chain wraps 1, 2, 3, 1 while the reset window is open and restarts at 1
// once it lapses.
func NextComboStep(a *components.ActionData) int {
	if a.ComboStep > 0 && a.ComboResetTimer > 0 {
		return a.ComboStep%3 + 1
	}
	return 1
}

// TryStartComboAttack starts the next light attack of the chain.
func TryStartComboAttack(a *components.ActionData, r *components.ResourcesData, light [3]config.AttackProfile) bool {
	step := NextComboStep(a)
	if !TryStartAttack(a, r, light[step-1]) {
		return false
	}
	a.ComboStep = step
	a.ComboResetTimer = 0
	return true
}

// TryStartHeavyAttack starts a heavy attack, which always breaks the chain.
func TryStartHeavyAttack(a *components.ActionData, r *components.ResourcesData, heavy config.AttackProfile) bool {
	if !TryStartAttack(a, r, heavy) {
		return false
	}
	a.ComboStep = 0
	a.ComboResetTimer = 0
	return true
}

// TryStartDodge rolls along dir. A direction too short to normalize rolls
// backwards from the actor's facing. The roll covers rules.Distance with an
// eased curve and grants i-frames for its length plus the buffer.
func TryStartDodge(a *components.ActionData, r *components.ResourcesData, p *components.PhysicsData, dir gamemath.Vec3, rules config.DodgeConfig) bool {
	if !CanAct(a, r) || !r.CanAfford(rules.Cost) {
		return false
	}
	r.Spend(rules.Cost, rules.RegenDelay)

	back := p.FacingVector().Scale(-1)
	dir = dir.Flat().Normalize(back)

	a.State = config.ActionDodging
	a.Duration = rules.Duration
	a.Timer = rules.Duration
	a.DodgeStart = p.Position
	a.DodgeDirection = dir
	a.DodgeDistance = rules.Distance
	a.DodgeTween = gween.New(0, 1, float32(rules.Duration), ease.OutCubic)
	a.DodgeProgress = 0
	a.PerfectDodgeSpent = false
	a.Charging = false
	a.ChargeTimer = 0
	a.HitInvulnTimer = max(a.HitInvulnTimer, rules.Duration+rules.InvulnBuffer)

	p.Velocity = dir.Scale(rules.Distance / rules.Duration)
	return true
}

// TryStartBlock raises a guard that absorbs one non-heavy hit.
func TryStartBlock(a *components.ActionData, r *components.ResourcesData, rules config.BlockConfig) bool {
	if !CanAct(a, r) || !r.CanAfford(rules.Cost) {
		return false
	}
	r.Spend(rules.Cost, rules.RegenDelay)
	startTimed(a, config.ActionBlocking, rules.Duration)
	return true
}

// TryStartParry opens a parry. Only its final PerfectWindow deflects.
func TryStartParry(a *components.ActionData, r *components.ResourcesData, rules config.ParryConfig) bool {
	if !CanAct(a, r) || !r.CanAfford(rules.Cost) {
		return false
	}
	r.Spend(rules.Cost, rules.RegenDelay)
	startTimed(a, config.ActionParrying, rules.Duration)
	return true
}

// TryStartHeal drinks a flask. The flask is gone immediately; the health
// arrives when the heal finishes, and a stagger in between wastes it.
func TryStartHeal(a *components.ActionData, r *components.ResourcesData, player *components.PlayerData, rules config.HealConfig) bool {
	if !CanAct(a, r) || player.Flasks <= 0 || r.Health >= r.MaxHealth {
		return false
	}
	player.Flasks--
	startTimed(a, config.ActionHealing, rules.Duration)
	a.HealAmount = rules.Amount
	return true
}

func startTimed(a *components.ActionData, state config.ActionState, duration float64) {
	a.State = state
	a.Duration = duration
	a.Timer = duration
	a.Charging = false
	a.ChargeTimer = 0
}

// EnterStagger interrupts whatever the actor was doing.
func EnterStagger(a *components.ActionData, duration float64, cause config.StaggerCause) {
	a.State = config.ActionStaggered
	a.Duration = duration
	a.Timer = duration
	a.StaggerCause = cause
	a.Attack = config.AttackProfile{}
	a.Charging = false
	a.ChargeTimer = 0
	a.HealAmount = 0
	a.DodgeTween = nil
}

// AdvanceAction runs every action timer forward by dt and returns the state
// that finished this frame, or ActionIdle when nothing did.
func AdvanceAction(a *components.ActionData, r *components.ResourcesData, dt, comboReset float64) config.ActionState {
	a.HitInvulnTimer = gamemath.CountDown(a.HitInvulnTimer, dt)
	if a.Charging {
		a.ChargeTimer += dt
	}

	if a.IsIdle() {
		if a.ComboResetTimer > 0 {
			a.ComboResetTimer = gamemath.CountDown(a.ComboResetTimer, dt)
			if a.ComboResetTimer == 0 {
				a.ComboStep = 0
			}
		}
		relaxSwing(a, dt)
		return config.ActionIdle
	}

	a.Timer -= dt
	if a.IsAttacking() {
		followSwing(a)
	} else if !a.IsStaggered() {
		relaxSwing(a, dt)
	}
	if a.Timer > 0 {
		return config.ActionIdle
	}

	finished := a.State
	switch finished {
	case config.ActionAttacking:
		if !a.Attack.Heavy && a.ComboStep > 0 {
			a.ComboResetTimer = comboReset
		}
		a.Attack = config.AttackProfile{}
	case config.ActionHealing:
		r.Heal(a.HealAmount)
		a.HealAmount = 0
	case config.ActionDodging:
		a.DodgeTween = nil
	case config.ActionStaggered:
		a.StaggerCause = config.CauseNone
	}
	a.State = config.ActionIdle
	a.Timer = 0
	a.Duration = 0
	return finished
}

// followSwing poses the weapon along the attack's swing curve. Segments
// share the progress evenly.
func followSwing(a *components.ActionData) {
	segs := a.Attack.Swing
	if len(segs) == 0 {
		return
	}
	pos := a.Progress() * float64(len(segs))
	i := int(pos)
	if i >= len(segs) {
		i = len(segs) - 1
	}
	t := pos - float64(i)
	a.SwingYaw = gamemath.Lerp(segs[i].YawFrom, segs[i].YawTo, t)
	a.SwingPitch = gamemath.Lerp(segs[i].PitchFrom, segs[i].PitchTo, t)
}

func relaxSwing(a *components.ActionData, dt float64) {
	t := gamemath.Clamp(swingRelaxRate*dt, 0, 1)
	a.SwingYaw = gamemath.Lerp(a.SwingYaw, restSwingYaw, t)
	a.SwingPitch = gamemath.Lerp(a.SwingPitch, restSwingPitch, t)
}
