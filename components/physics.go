package components

import (
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
)

type PhysicsData struct {
	Position  gamemath.Vec3
	Velocity  gamemath.Vec3
	Desired   gamemath.Vec3 // horizontal velocity the controller wants
	VelocityY float64
	OnGround  bool

	Facing float64 // yaw in degrees
	Radius float64

	Responsiveness float64 // velocity catch-up rate per second
	BlockedDamping float64 // velocity kept after bumping an obstacle
}

// FacingVector is the unit heading of the actor.
func (p *PhysicsData) FacingVector() gamemath.Vec3 {
	return gamemath.FacingVector(p.Facing)
}

// Face turns the actor toward dir. A degenerate dir keeps the current facing.
func (p *PhysicsData) Face(dir gamemath.Vec3) {
	if dir.FlatLength() < gamemath.Epsilon {
		return
	}
	p.Facing = gamemath.YawOf(dir)
}

var Physics = donburi.NewComponentType[PhysicsData]()
