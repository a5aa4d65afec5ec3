package main

import (
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/core"
	"github.com/automoto/ashfall/shared/gamemath"
)

const (
	scriptAttackReach = 6.0
	scriptSprintRange = 25.0
	scriptDodgeRange  = 8.0
	scriptHealBelow   = 0.35
	scriptSwingEvery  = 20
)

// scriptedPlayer is a crude bot for headless runs: it walks at the nearest
// enemy, taps attack in reach, rolls away from incoming swings and drinks
// when hurt.
type scriptedPlayer struct{}

func (scriptedPlayer) Next(frame uint64, s core.State) core.Intent {
	var in core.Intent
	if !s.HasPlayer || s.Player.Dead {
		return in
	}
	p := s.Player
	in.AimYaw = p.Facing

	target, ok := nearestEnemy(s)
	if !ok {
		return in
	}
	dist := gamemath.FlatDistance(p.Position, target.Position)
	in.AimYaw = gamemath.YawOf(target.Position.Sub(p.Position))

	switch {
	case p.MaxHealth > 0 && float64(p.Health) < float64(p.MaxHealth)*scriptHealBelow && p.Flasks > 0:
		in = in.Hold(config.ActionHeal)
	case target.Action == config.ActionAttacking && dist < scriptDodgeRange:
		in.Move = gamemath.Vec3{Z: -1}
		in = in.Hold(config.ActionDodge)
	case dist > scriptAttackReach:
		in.Move = gamemath.Vec3{Z: 1}
		if dist > scriptSprintRange {
			in = in.Hold(config.ActionSprint)
		}
	case frame%scriptSwingEvery == 0:
		in = in.Hold(config.ActionAttack)
	}
	return in
}

func nearestEnemy(s core.State) (core.EnemyState, bool) {
	best, found := core.EnemyState{}, false
	bestDist := 0.0
	for _, e := range s.Enemies {
		if e.Defeated {
			continue
		}
		d := gamemath.FlatDistance(s.Player.Position, e.Position)
		if !found || d < bestDist {
			best, bestDist, found = e, d, true
		}
	}
	return best, found
}
