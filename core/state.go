package core

import (
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/automoto/ashfall/shared/leveldata"
)

// ActorState is the read-only view of one actor after a Step.
type ActorState struct {
	Position gamemath.Vec3
	Facing   float64
	Radius   float64

	Health     int
	MaxHealth  int
	Stamina    float64
	MaxStamina float64
	Poise      float64
	MaxPoise   float64

	Action       config.ActionState
	Attack       config.AttackKind
	Progress     float64
	Invulnerable bool
	SwingYaw     float64
	SwingPitch   float64
}

// PlayerState adds the player's own bookkeeping.
type PlayerState struct {
	ActorState
	Flasks     int
	Dead       bool
	Sprinting  bool
	LockTarget int // index into State.Enemies, -1 when unlocked

	// Seconds left on the perfect-dodge slowdown and the riposte bonus.
	PerfectDodgeTimer float64
	RiposteTimer      float64
}

// EnemyState adds what the outer game shows about an enemy.
type EnemyState struct {
	ActorState
	Kind     string
	Name     string
	AI       config.AIState
	Defeated bool
}

// State is a copy of the world taken between Steps. Holding on to it never
// aliases simulation memory.
type State struct {
	Frame      uint64
	Elapsed    float64
	Frozen     bool
	Wave       int
	HalfExtent float64
	Obstacles  []leveldata.Obstacle
	Player     PlayerState
	HasPlayer  bool
	Enemies    []EnemyState
}

// Alive counts enemies still in the fight.
func (s State) Alive() int {
	n := 0
	for _, e := range s.Enemies {
		if !e.Defeated {
			n++
		}
	}
	return n
}
