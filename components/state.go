package components

import (
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// ActionData is the per-actor action state machine. State holds the one
// committed action; Timer counts down its remaining time.
type ActionData struct {
	State    config.ActionState
	Timer    float64
	Duration float64

	// Attacking
	Attack          config.AttackProfile
	SwingHits       []donburi.Entity // defenders the current swing already connected with
	ComboStep       int
	ComboResetTimer float64
	Charging        bool
	ChargeTimer     float64

	// Dodging
	DodgeStart        gamemath.Vec3
	DodgeDirection    gamemath.Vec3
	DodgeDistance     float64
	DodgeTween        *gween.Tween
	DodgeProgress     float64
	PerfectDodgeSpent bool

	// Healing
	HealAmount int

	// Staggered
	StaggerCause config.StaggerCause

	HitInvulnTimer float64

	// Weapon pose for presentation
	SwingYaw   float64
	SwingPitch float64
}

func (a *ActionData) Is(s config.ActionState) bool {
	return a.State == s
}

func (a *ActionData) IsIdle() bool      { return a.State == config.ActionIdle }
func (a *ActionData) IsAttacking() bool { return a.State == config.ActionAttacking }
func (a *ActionData) IsDodging() bool   { return a.State == config.ActionDodging }
func (a *ActionData) IsBlocking() bool  { return a.State == config.ActionBlocking }
func (a *ActionData) IsParrying() bool  { return a.State == config.ActionParrying }
func (a *ActionData) IsHealing() bool   { return a.State == config.ActionHealing }
func (a *ActionData) IsStaggered() bool { return a.State == config.ActionStaggered }

// StaggerTimer is the remaining stagger time, zero when not staggered.
func (a *ActionData) StaggerTimer() float64 {
	if a.State != config.ActionStaggered {
		return 0
	}
	return a.Timer
}

// StunnedByParry reports a stagger caused by having been parried.
func (a *ActionData) StunnedByParry() bool {
	return a.State == config.ActionStaggered && a.StaggerCause == config.CauseParried
}

// PoiseLocked reports a stagger during which poise damage is not taken.
func (a *ActionData) PoiseLocked() bool {
	return a.State == config.ActionStaggered &&
		(a.StaggerCause == config.CausePoiseBreak || a.StaggerCause == config.CauseParried)
}

// InPerfectParry reports whether the parry timer is inside the final window.
func (a *ActionData) InPerfectParry(window float64) bool {
	return a.State == config.ActionParrying && a.Timer > 0 && a.Timer <= window
}

// Progress is the fraction of the current action already elapsed.
func (a *ActionData) Progress() float64 {
	if a.Duration <= 0 {
		return 1
	}
	return gamemath.Clamp(1-a.Timer/a.Duration, 0, 1)
}

// StruckBySwing reports whether the current swing already connected with e.
func (a *ActionData) StruckBySwing(e donburi.Entity) bool {
	for _, hit := range a.SwingHits {
		if hit == e {
			return true
		}
	}
	return false
}

// Invulnerable reports active i-frames or post-hit grace.
func (a *ActionData) Invulnerable() bool {
	return a.HitInvulnTimer > 0
}

var Action = donburi.NewComponentType[ActionData]()
