package systems

import (
	"math"
	"sort"

	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/automoto/ashfall/tags"
	"github.com/yohamta/donburi"
)

// lockable reports whether e can be (or stay) the player's target.
func lockable(e *donburi.Entry, from gamemath.Vec3, within float64) bool {
	if e == nil || !e.Valid() || !e.HasComponent(tags.Enemy) || e.HasComponent(components.Defeated) {
		return false
	}
	if !components.Resources.Get(e).Alive() {
		return false
	}
	return gamemath.FlatDistance(from, components.Physics.Get(e).Position) <= within
}

// LockTarget returns the player's current target after revalidating it. A
// target that died, left the world or moved out of range is dropped.
func LockTarget(player *components.PlayerData, physics *components.PhysicsData, rules config.LockOnConfig) *donburi.Entry {
	if player.LockTarget == nil {
		return nil
	}
	if !lockable(player.LockTarget, physics.Position, rules.BreakRange) {
		player.LockTarget = nil
		return nil
	}
	return player.LockTarget
}

// AcquireTarget picks the enemy that best matches where the player is
// looking: close and near the aim scores low.
func AcquireTarget(w donburi.World, physics *components.PhysicsData, aimYaw float64, rules config.LockOnConfig) *donburi.Entry {
	var best *donburi.Entry
	bestScore := math.Inf(1)
	tags.Enemy.Each(w, func(e *donburi.Entry) {
		if !lockable(e, physics.Position, rules.AcquireRange) {
			return
		}
		pos := components.Physics.Get(e).Position
		dist := gamemath.FlatDistance(physics.Position, pos)
		angle := gamemath.AngleDiff(gamemath.YawOf(pos.Sub(physics.Position)), aimYaw) * math.Pi / 180
		score := dist*rules.DistanceWeight + angle*rules.AngleWeight
		if score < bestScore {
			best, bestScore = e, score
		}
	})
	return best
}

// SwitchTarget moves the lock one target to the right (flick > 0) or left
// (flick < 0) of the current one, ordered by bearing from the aim. The order
// wraps around. It returns nil when there is nothing to switch to.
func SwitchTarget(w donburi.World, physics *components.PhysicsData, current *donburi.Entry, aimYaw float64, flick int, rules config.LockOnConfig) *donburi.Entry {
	type candidate struct {
		bearing float64
		entry   *donburi.Entry
	}
	var cands []candidate
	tags.Enemy.Each(w, func(e *donburi.Entry) {
		if !lockable(e, physics.Position, rules.SwitchRange) {
			return
		}
		yaw := gamemath.YawOf(components.Physics.Get(e).Position.Sub(physics.Position))
		cands = append(cands, candidate{bearing: wrapDegrees(yaw - aimYaw), entry: e})
	})
	if len(cands) < 2 {
		return nil
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].bearing < cands[j].bearing })

	for i, c := range cands {
		if c.entry.Entity() != current.Entity() {
			continue
		}
		step := 1
		if flick < 0 {
			step = -1
		}
		return cands[(i+step+len(cands))%len(cands)].entry
	}
	return nil
}

// wrapDegrees maps an angle to [-180, 180).
func wrapDegrees(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}
