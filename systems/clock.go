package systems

import (
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
)

// UpdateClock turns the wall time fed in by the caller into simulation time.
// While a hit-stop is live the freeze decays with real time and the frame
// delta is zero.
func UpdateClock(w donburi.World) {
	frame := frameOf(w)
	fx := EffectsOf(w)

	frame.Frame++
	if fx.HitStopTimer > 0 {
		fx.HitStopTimer = gamemath.CountDown(fx.HitStopTimer, frame.RealDelta)
		frame.Delta = 0
		frame.Frozen = true
		return
	}

	frame.Frozen = false
	frame.Delta = frame.RealDelta
	frame.Elapsed += frame.Delta
}

// UpdatePlayerSnapshot records the player view every enemy decides against
// for the rest of the frame.
func UpdatePlayerSnapshot(w donburi.World) {
	snap := SnapshotOf(w)
	player, ok := PlayerEntry(w)
	if !ok {
		*snap = components.PlayerSnapshotData{}
		return
	}

	physics := components.Physics.Get(player)
	action := components.Action.Get(player)
	res := components.Resources.Get(player)
	data := components.Player.Get(player)

	*snap = components.PlayerSnapshotData{
		Valid:     true,
		Alive:     res.Alive() && !data.Dead,
		Position:  physics.Position,
		Facing:    physics.FacingVector(),
		Attacking: action.IsAttacking(),
		Dodging:   action.IsDodging(),
	}
}
