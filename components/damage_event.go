package components

import (
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
)

// HitEvent is a resolved hit waiting for the resource phase.
type HitEvent struct {
	Attacker         *donburi.Entry
	AttackerPosition gamemath.Vec3
	Direction        gamemath.Vec3 // attacker to defender, unit length
	Damage           int
	PoiseDamage      float64
	Knockback        float64
	KnockbackScale   float64
	Severity         config.Severity
	Heavy            bool
	Critical         bool
	Blocked          bool
}

// DamageQueueData collects the hits an actor received this frame.
type DamageQueueData struct {
	Events []HitEvent
}

var DamageQueue = donburi.NewComponentType[DamageQueueData]()
