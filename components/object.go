package components

import (
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type ObjectData struct {
	*resolv.Object
}

// Place centres the collision box on pos. Space coordinates are world X and
// Z shifted by origin.
func (o ObjectData) Place(pos gamemath.Vec3, origin float64) {
	o.X = pos.X + origin - o.W/2
	o.Y = pos.Z + origin - o.H/2
	o.Update()
}

// Centre converts the box back to a world position on the ground plane.
func (o ObjectData) Centre(origin float64) gamemath.Vec3 {
	return gamemath.Vec3{X: o.X + o.W/2 - origin, Z: o.Y + o.H/2 - origin}
}

var Object = donburi.NewComponentType[ObjectData]()

var Space = donburi.NewComponentType[resolv.Space]()
