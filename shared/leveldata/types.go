// Package leveldata parses Tiled arenas into plain data. It has no
// dependencies on ebitengine, donburi, or resolv.
package leveldata

import "github.com/automoto/ashfall/shared/gamemath"

// Object groups an arena file may contain.
const (
	GroupObstacles   = "Obstacles"
	GroupPlayerSpawn = "PlayerSpawn"
	GroupEnemySpawn  = "EnemySpawn"
)

// DefaultObstacleRadius is used for point obstacles without a radius
// property, in world units.
const DefaultObstacleRadius = 5.0

// Arena is the static layout of a fight: where the walls are and where
// actors start. Positions are world units on the ground plane with the
// arena centre at the origin.
type Arena struct {
	HalfExtent   float64
	Obstacles    []Obstacle
	PlayerSpawn  gamemath.Vec3
	PlayerFacing float64
	EnemySpawns  []EnemySpawn
}

// Obstacle is a blocker with a circular footprint.
type Obstacle struct {
	Position gamemath.Vec3
	Radius   float64
}

// EnemySpawn places one enemy of Kind.
type EnemySpawn struct {
	Position gamemath.Vec3
	Facing   float64
	Kind     string
}

// Open returns an arena with no obstacles and the player at the centre.
func Open(halfExtent float64) *Arena {
	return &Arena{HalfExtent: halfExtent}
}
