package systems

import (
	"math"

	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/automoto/ashfall/tags"
	"github.com/yohamta/donburi"
	"golang.org/x/sync/errgroup"
)

// CanSee reports whether an enemy at from, facing along facing, can see
// target. Distance, view cone and a clear line past every obstacle must all
// hold.
func CanSee(from, facing, target gamemath.Vec3, obstacles []components.Obstacle, rules config.PerceptionConfig) bool {
	toTarget := target.Sub(from).Flat()
	dist := toTarget.FlatLength()
	if dist > rules.ViewDistance {
		return false
	}
	if dist < gamemath.Epsilon {
		return true
	}
	dir := toTarget.Scale(1 / dist)
	if facing.Flat().Normalize(gamemath.Forward).Dot(dir) < math.Cos(rules.HalfAngle*math.Pi/180) {
		return false
	}
	for _, ob := range obstacles {
		if t, hit := rayBox(from, dir, ob); hit && t < dist-rules.RayTolerance {
			return false
		}
	}
	return true
}

// rayBox intersects a ray on the ground plane with the obstacle's square
// footprint and returns the entry distance. A ray starting inside the box
// hits at zero.
func rayBox(origin, dir gamemath.Vec3, ob components.Obstacle) (float64, bool) {
	tmin, tmax := 0.0, math.Inf(1)
	slabs := [2][4]float64{
		{origin.X, dir.X, ob.Position.X - ob.Radius, ob.Position.X + ob.Radius},
		{origin.Z, dir.Z, ob.Position.Z - ob.Radius, ob.Position.Z + ob.Radius},
	}
	for _, s := range slabs {
		o, d, lo, hi := s[0], s[1], s[2], s[3]
		if math.Abs(d) < gamemath.Epsilon {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// UpdatePerception refreshes what every enemy sees of the player snapshot.
// Above the configured enemy count the sweep fans out across goroutines;
// each one writes only its own enemy, and all of them finish before the AI
// phase reads the results.
func UpdatePerception(w donburi.World) {
	snap := SnapshotOf(w)
	rt := runtimeOf(w)
	rules := rt.Config.Perception

	var obstacles []components.Obstacle
	if arena, _ := arenaOf(w); arena != nil {
		obstacles = arena.Obstacles
	}

	// component pointers are collected up front so the workers never touch
	// the entity store
	type viewer struct {
		enemy   *components.EnemyData
		physics *components.PhysicsData
	}
	var enemies []viewer
	tags.Enemy.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(components.Defeated) {
			enemies = append(enemies, viewer{components.Enemy.Get(e), components.Physics.Get(e)})
		}
	})

	player := *snap
	sweep := func(v viewer) {
		if !player.Valid || !player.Alive {
			v.enemy.SeesPlayer = false
			v.enemy.DistanceToPlayer = math.Inf(1)
			return
		}
		v.enemy.DistanceToPlayer = gamemath.FlatDistance(v.physics.Position, player.Position)
		v.enemy.SeesPlayer = CanSee(v.physics.Position, v.physics.FacingVector(), player.Position, obstacles, rules)
	}

	if !rt.ParallelPerception || len(enemies) <= rules.ParallelThreshold {
		for _, v := range enemies {
			sweep(v)
		}
		return
	}

	var g errgroup.Group
	for _, v := range enemies {
		g.Go(func() error {
			sweep(v)
			return nil
		})
	}
	_ = g.Wait()
}
