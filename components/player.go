package components

import (
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Flasks int
	Dead   bool

	LockTarget     *donburi.Entry // revalidated on every use
	SwitchCooldown float64

	Sprinting         bool
	PerfectDodgeTimer float64
	RiposteTimer      float64
}

var Player = donburi.NewComponentType[PlayerData]()

// PlayerSnapshotData is the view of the player every enemy decides against
// for the whole frame.
type PlayerSnapshotData struct {
	Valid     bool
	Alive     bool
	Position  gamemath.Vec3
	Facing    gamemath.Vec3
	Attacking bool
	Dodging   bool
}

var PlayerSnapshot = donburi.NewComponentType[PlayerSnapshotData]()
