package archetypes

import (
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Object,
		components.Physics,
		components.Resources,
		components.Action,
		components.DamageQueue,
		components.Input,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Object,
		components.Physics,
		components.Resources,
		components.Action,
		components.DamageQueue,
	)
	Obstacle = newArchetype(
		tags.Obstacle,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
		components.Arena,
	)
	Clock = newArchetype(
		components.Frame,
		components.Runtime,
		components.Effects,
		components.PlayerSnapshot,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
