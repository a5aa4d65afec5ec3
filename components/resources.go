package components

import "github.com/yohamta/donburi"

// ResourcesData holds the gauges every actor spends and loses. Every method
// leaves all three gauges inside [0, max].
type ResourcesData struct {
	Health    int
	MaxHealth int

	Stamina           float64
	MaxStamina        float64
	StaminaRegenRate  float64 // per second
	StaminaRegenDelay float64 // seconds before regen resumes

	Poise    float64
	MaxPoise float64
}

// NewResources returns full gauges.
func NewResources(health int, stamina, poise, regenRate float64) ResourcesData {
	return ResourcesData{
		Health:           health,
		MaxHealth:        health,
		Stamina:          stamina,
		MaxStamina:       stamina,
		StaminaRegenRate: regenRate,
		Poise:            poise,
		MaxPoise:         poise,
	}
}

func (r *ResourcesData) Alive() bool {
	return r.Health > 0
}

func (r *ResourcesData) Exhausted() bool {
	return r.Stamina <= 0
}

// Damage lowers health by amount. Negative amounts are ignored.
func (r *ResourcesData) Damage(amount int) {
	if amount <= 0 {
		return
	}
	r.Health -= amount
	r.Clamp()
}

// Heal raises health by amount. Negative amounts are ignored.
func (r *ResourcesData) Heal(amount int) {
	if amount <= 0 {
		return
	}
	r.Health += amount
	r.Clamp()
}

// CanAfford reports whether cost can be paid in full.
func (r *ResourcesData) CanAfford(cost float64) bool {
	return r.Stamina >= cost
}

// Spend takes cost from stamina and restarts the regen delay. Callers check
// CanAfford first; Spend itself floors at zero.
func (r *ResourcesData) Spend(cost, delay float64) {
	if cost > 0 {
		r.Stamina -= cost
	}
	r.StaminaRegenDelay = delay
	r.Clamp()
}

// Refund returns stamina, as a perfect dodge does.
func (r *ResourcesData) Refund(amount float64) {
	if amount <= 0 {
		return
	}
	r.Stamina += amount
	r.Clamp()
}

// DamagePoise lowers poise and reports a break. A broken gauge is refilled
// to max immediately.
func (r *ResourcesData) DamagePoise(amount float64) (broken bool) {
	if amount <= 0 {
		return false
	}
	r.Poise -= amount
	if r.Poise <= 0 {
		r.Poise = r.MaxPoise
		return true
	}
	return false
}

// Regen counts down the regen delay, then refills stamina at the regen rate.
func (r *ResourcesData) Regen(dt float64) {
	if dt <= 0 {
		return
	}
	if r.StaminaRegenDelay > 0 {
		r.StaminaRegenDelay -= dt
		if r.StaminaRegenDelay > 0 {
			return
		}
		dt = -r.StaminaRegenDelay
		r.StaminaRegenDelay = 0
	}
	r.Stamina += r.StaminaRegenRate * dt
	r.Clamp()
}

// Clamp forces every gauge back into range.
func (r *ResourcesData) Clamp() {
	if r.MaxHealth < 0 {
		r.MaxHealth = 0
	}
	if r.Health < 0 {
		r.Health = 0
	}
	if r.Health > r.MaxHealth {
		r.Health = r.MaxHealth
	}
	r.Stamina = clampGauge(r.Stamina, r.MaxStamina)
	r.Poise = clampGauge(r.Poise, r.MaxPoise)
	if r.StaminaRegenDelay < 0 {
		r.StaminaRegenDelay = 0
	}
}

func clampGauge(v, max float64) float64 {
	if max < 0 {
		max = 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

var Resources = donburi.NewComponentType[ResourcesData]()
