package factory

import (
	"github.com/automoto/ashfall/archetypes"
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/automoto/ashfall/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateClock spawns the per-world singletons: frame clock, runtime, effects
// and the player snapshot.
func CreateClock(w donburi.World, runtime components.RuntimeData) *donburi.Entry {
	clock := archetypes.Clock.Spawn(w)
	components.Runtime.SetValue(clock, runtime)
	return clock
}

func CreatePlayer(w donburi.World, c *config.Config, pos gamemath.Vec3, facing float64) *donburi.Entry {
	player := archetypes.Player.Spawn(w)

	components.Player.SetValue(player, components.PlayerData{
		Flasks: c.Heal.Flasks,
	})
	components.Physics.SetValue(player, components.PhysicsData{
		Position:       pos,
		Facing:         facing,
		Radius:         c.Player.Radius,
		OnGround:       true,
		Responsiveness: c.Player.Responsiveness,
		BlockedDamping: c.Player.BlockedDamping,
	})
	res := components.NewResources(c.Player.MaxHealth, c.Player.MaxStamina, c.Player.MaxPoise, c.Player.StaminaRegen)
	components.Resources.SetValue(player, res)
	components.Input.SetValue(player, components.InputData{AimYaw: facing})

	attachObject(w, player, pos, c.Player.Radius, tags.ResolvPlayer)
	return player
}

// CreateEnemy spawns an enemy of kind. The kind is shared, never copied into
// mutable state, so later table reloads cannot reach a live enemy.
func CreateEnemy(w donburi.World, c *config.Config, kind *config.EnemyKind, pos gamemath.Vec3, facing float64, src chance.Source) *donburi.Entry {
	enemy := archetypes.Enemy.Spawn(w)

	radius := c.Movement.ActorRadius * kind.Scale
	initial := config.AIPatrol
	if kind.AlwaysChase {
		initial = config.AIChase
	}

	strafe := 1.0
	if chance.Roll(src, 0.5) {
		strafe = -1
	}

	components.Enemy.SetValue(enemy, components.EnemyData{
		Kind:         kind,
		Awareness:    components.NewAwareness(initial),
		AIState:      initial,
		Home:         pos,
		PatrolTarget: pos,
		PatrolTimer:  chance.Range(src, c.AI.PatrolMin, c.AI.PatrolMax),
		PatrolRadius: chance.Range(src, c.AI.PatrolRadiusMin, c.AI.PatrolRadiusMax) * kind.PatrolScale,
		StrafeSide:   strafe,
		StrafeTimer:  chance.Range(src, c.AI.StrafeFlipMin, c.AI.StrafeFlipMax),
		DodgeChance:  kind.DodgeChance,
	})
	components.Physics.SetValue(enemy, components.PhysicsData{
		Position:       pos,
		Facing:         facing,
		Radius:         radius,
		OnGround:       true,
		Responsiveness: c.AI.Responsiveness,
		BlockedDamping: c.AI.BlockedDamping,
	})
	stamina := kind.Stamina
	if stamina <= config.Epsilon {
		stamina = c.AI.MaxStamina
	}
	components.Resources.SetValue(enemy, components.NewResources(kind.Health, stamina, kind.Poise, c.AI.StaminaRegen))

	attachObject(w, enemy, pos, radius, tags.ResolvEnemy)
	return enemy
}

func attachObject(w donburi.World, e *donburi.Entry, pos gamemath.Vec3, radius float64, tag string) {
	size := radius * 2
	obj := resolv.NewObject(0, 0, size, size, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = e
	components.Object.SetValue(e, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(w); ok {
		components.Space.Get(spaceEntry).Add(obj)
		components.ObjectData{Object: obj}.Place(pos, components.Arena.Get(spaceEntry).Origin)
	}
}
