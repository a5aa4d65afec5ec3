package factory

import (
	"math"

	"github.com/automoto/ashfall/archetypes"
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateSpace builds the collision space covering a square arena of the
// given half extent plus padding on every side.
func CreateSpace(w donburi.World, halfExtent, padding float64, cellSize int) *donburi.Entry {
	if cellSize <= 0 {
		cellSize = 8
	}
	origin := halfExtent + padding
	size := int(math.Ceil(origin * 2))

	space := archetypes.Space.Spawn(w)
	components.Space.Set(space, resolv.NewSpace(size, size, cellSize, cellSize))
	components.Arena.SetValue(space, components.ArenaData{
		HalfExtent: halfExtent,
		Origin:     origin,
	})
	return space
}

// CreateObstacle adds a static blocker to the arena and its space.
func CreateObstacle(w donburi.World, ob components.Obstacle) *donburi.Entry {
	obstacle := archetypes.Obstacle.Spawn(w)

	size := ob.Radius * 2
	obj := resolv.NewObject(0, 0, size, size, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = ob
	components.Object.SetValue(obstacle, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(w); ok {
		arena := components.Arena.Get(spaceEntry)
		arena.Obstacles = append(arena.Obstacles, ob)
		components.Space.Get(spaceEntry).Add(obj)
		components.ObjectData{Object: obj}.Place(ob.Position, arena.Origin)
	}

	return obstacle
}
