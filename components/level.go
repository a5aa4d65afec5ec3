package components

import (
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Obstacle is a static blocker with a circular footprint for movement and a
// square one for sight.
type Obstacle struct {
	Position gamemath.Vec3
	Radius   float64
}

// ArenaData is the static layout the current wave plays in.
type ArenaData struct {
	Obstacles  []Obstacle
	HalfExtent float64
	Origin     float64 // world-to-space offset for the collision space
}

var Arena = donburi.NewComponentType[ArenaData]()
