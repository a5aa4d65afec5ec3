package components

import (
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/looplab/fsm"
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	Kind *config.EnemyKind // immutable after spawn

	// Awareness
	Awareness       *fsm.FSM
	AIState         config.AIState
	AlertTimer      float64
	LastKnownPlayer gamemath.Vec3

	// Perception, written by the sight sweep each frame
	SeesPlayer       bool
	DistanceToPlayer float64

	// Patrol
	Home         gamemath.Vec3
	PatrolTarget gamemath.Vec3
	PatrolTimer  float64
	PatrolRadius float64

	// Engagement
	StrafeSide     float64 // +1 circles right, -1 left
	StrafeTimer    float64
	AttackCooldown float64
	DodgeChance    float64

	// Scripted combo
	ComboStep       int
	ComboDelayTimer float64
}

var Enemy = donburi.NewComponentType[EnemyData]()
