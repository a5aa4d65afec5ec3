package systems

import (
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/automoto/ashfall/tags"
	"github.com/yohamta/donburi"
)

// eachActor visits the player and then every enemy still in the fight.
func eachActor(w donburi.World, fn func(e *donburi.Entry)) {
	tags.Player.Each(w, fn)
	tags.Enemy.Each(w, func(e *donburi.Entry) {
		if e.HasComponent(components.Defeated) {
			return
		}
		fn(e)
	})
}

// UpdateActions moves every actor and then advances its action timers.
// Movement goes first so a dodge tween reaches its end on the same frame
// the dodge expires.
func UpdateActions(w donburi.World) {
	dt := frameOf(w).Delta
	rules := rulesOf(w)
	arena, _ := arenaOf(w)

	eachActor(w, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		action := components.Action.Get(e)
		res := components.Resources.Get(e)

		rate := physics.Responsiveness
		comboReset := 0.0
		if e.HasComponent(tags.Player) {
			comboReset = rules.Player.ComboResetTime
		} else if action.IsStaggered() {
			rate = rules.AI.StaggerDecay
		}

		moveActor(e, physics, action, arena, rules.Movement, rate, dt)
		AdvanceAction(action, res, dt, comboReset)
	})
}

func moveActor(e *donburi.Entry, p *components.PhysicsData, a *components.ActionData, arena *components.ArenaData, m config.MovementConfig, rate, dt float64) {
	if a.IsDodging() && a.DodgeTween != nil {
		current, _ := a.DodgeTween.Update(float32(dt))
		progress := float64(current)
		step := a.DodgeDirection.Scale((progress - a.DodgeProgress) * a.DodgeDistance)
		a.DodgeProgress = progress
		translate(e, p, arena, step)
	} else {
		p.Velocity = gamemath.DecayToward(p.Velocity, p.Desired, rate, dt)
		if !translate(e, p, arena, p.Velocity.Scale(dt)) {
			p.Velocity = p.Velocity.Scale(p.BlockedDamping)
		}
	}

	p.VelocityY += m.Gravity * dt
	p.Position.Y += p.VelocityY * dt
	p.OnGround = false
	if p.Position.Y <= 0 {
		p.Position.Y = 0
		p.VelocityY = 0
		p.OnGround = true
	}
}

// translate moves the actor by delta on the ground plane unless the new spot
// is inside an obstacle. It reports whether the move happened.
func translate(e *donburi.Entry, p *components.PhysicsData, arena *components.ArenaData, delta gamemath.Vec3) bool {
	delta = delta.Flat()
	if delta.FlatLength() < gamemath.Epsilon {
		return true
	}
	candidate := p.Position.Add(delta)
	if arena != nil {
		if Blocked(e, arena, candidate, p.Radius, delta) {
			return false
		}
		limit := arena.HalfExtent - p.Radius
		candidate.X = gamemath.Clamp(candidate.X, -limit, limit)
		candidate.Z = gamemath.Clamp(candidate.Z, -limit, limit)
	}
	p.Position.X = candidate.X
	p.Position.Z = candidate.Z

	if e.HasComponent(components.Object) {
		if obj := components.Object.Get(e); obj.Object != nil && arena != nil {
			obj.Place(p.Position, arena.Origin)
		}
	}
	return true
}

// Blocked reports whether an actor of radius standing at pos overlaps an
// obstacle footprint. When the actor has a collision object in the arena
// space, resolv narrows the candidates to nearby solids first.
func Blocked(e *donburi.Entry, arena *components.ArenaData, pos gamemath.Vec3, radius float64, delta gamemath.Vec3) bool {
	if e != nil && e.HasComponent(components.Object) {
		if obj := components.Object.Get(e); obj.Object != nil && obj.Space != nil {
			check := obj.Check(delta.X, delta.Z, tags.ResolvSolid)
			if check == nil {
				return false
			}
			for _, o := range check.ObjectsByTags(tags.ResolvSolid) {
				if ob, ok := o.Data.(components.Obstacle); ok && overlaps(ob, pos, radius) {
					return true
				}
			}
			return false
		}
	}
	for _, ob := range arena.Obstacles {
		if overlaps(ob, pos, radius) {
			return true
		}
	}
	return false
}

func overlaps(ob components.Obstacle, pos gamemath.Vec3, radius float64) bool {
	return gamemath.FlatDistance(ob.Position, pos) < ob.Radius+radius
}
