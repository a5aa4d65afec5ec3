package systems

import (
	"github.com/automoto/ashfall/components"
	cfg "github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
)

// lockFacingMin keeps the facing steady when the player stands on top of
// the target.
const lockFacingMin = 0.6

func UpdatePlayer(w donburi.World) {
	entry, ok := PlayerEntry(w)
	if !ok {
		return
	}
	rules := rulesOf(w)
	dt := frameOf(w).Delta

	player := components.Player.Get(entry)
	input := components.Input.Get(entry)
	physics := components.Physics.Get(entry)
	action := components.Action.Get(entry)
	res := components.Resources.Get(entry)

	player.PerfectDodgeTimer = gamemath.CountDown(player.PerfectDodgeTimer, dt)
	player.RiposteTimer = gamemath.CountDown(player.RiposteTimer, dt)
	player.SwitchCooldown = gamemath.CountDown(player.SwitchCooldown, dt)

	if player.Dead || !res.Alive() {
		player.LockTarget = nil
		player.Sprinting = false
		physics.Desired = gamemath.Zero
		return
	}

	target := updateLockOn(w, rules, player, input, physics)

	// staggered actors ignore input entirely
	if action.IsStaggered() {
		player.Sprinting = false
		physics.Desired = gamemath.Zero
		return
	}

	forward := gamemath.FacingVector(input.AimYaw)
	if target != nil {
		toTarget := components.Physics.Get(target).Position.Sub(physics.Position).Flat()
		if toTarget.FlatLength() > lockFacingMin {
			physics.Face(toTarget)
			forward = toTarget.Normalize(forward)
		}
	} else {
		physics.Facing = input.AimYaw
	}

	move := forward.Scale(input.Move.Z).Add(gamemath.RightOf(forward).Scale(input.Move.X))
	if move.FlatLength() > 1 {
		move = move.Normalize(gamemath.Zero)
	}
	hasMove := move.FlatLength() > gamemath.Epsilon

	controlMovement(rules, player, input, physics, action, res, move, hasMove, dt)
	controlActions(w, rules, player, input, physics, action, res, move)
}

func updateLockOn(w donburi.World, rules *cfg.Config, player *components.PlayerData, input *components.InputData, physics *components.PhysicsData) *donburi.Entry {
	target := LockTarget(player, physics, rules.LockOn)

	if GetAction(input, cfg.ActionLockOn).JustPressed {
		if target != nil {
			player.LockTarget = nil
		} else {
			player.LockTarget = AcquireTarget(w, physics, input.AimYaw, rules.LockOn)
		}
		target = player.LockTarget
	}

	if target != nil && input.Flick != 0 && player.SwitchCooldown <= 0 {
		if next := SwitchTarget(w, physics, target, input.AimYaw, input.Flick, rules.LockOn); next != nil {
			player.LockTarget = next
			player.SwitchCooldown = rules.LockOn.SwitchCooldown
			target = next
		}
	}
	return target
}

func controlMovement(rules *cfg.Config, player *components.PlayerData, input *components.InputData, physics *components.PhysicsData, action *components.ActionData, res *components.ResourcesData, move gamemath.Vec3, hasMove bool, dt float64) {
	pc := rules.Player
	speed := pc.WalkSpeed

	player.Sprinting = GetAction(input, cfg.ActionSprint).Pressed && hasMove && action.IsIdle() && !res.Exhausted()
	if player.Sprinting {
		speed *= pc.SprintMultiplier
		res.Spend(pc.SprintCost*dt, pc.RegenDelay)
	}
	if res.Exhausted() {
		speed *= pc.ExhaustedMultiplier
	}
	if !action.IsIdle() {
		speed *= pc.ActingMultiplier
	}
	physics.Desired = move.Scale(speed)
}

func controlActions(w donburi.World, rules *cfg.Config, player *components.PlayerData, input *components.InputData, physics *components.PhysicsData, action *components.ActionData, res *components.ResourcesData, move gamemath.Vec3) {
	pc := rules.Player
	fx := EffectsOf(w)

	// Holding attack charges a heavy; releasing decides which swing comes out.
	attack := GetAction(input, cfg.ActionAttack)
	if attack.JustPressed && CanAct(action, res) && res.CanAfford(pc.Light[0].StaminaCost) {
		action.Charging = true
		action.ChargeTimer = 0
	}
	if attack.JustReleased && action.Charging {
		action.Charging = false
		switch {
		case action.ChargeTimer >= pc.ChargeTime && TryStartHeavyAttack(action, res, pc.Heavy):
			RequestSound(fx, cfg.SoundHeavySwing)
		case TryStartComboAttack(action, res, pc.Light):
			RequestSound(fx, cfg.SoundSwing)
		}
	}

	switch {
	case GetAction(input, cfg.ActionDodge).JustPressed:
		if TryStartDodge(action, res, physics, move, rules.Dodge) {
			RequestSound(fx, cfg.SoundDodge)
		}
	case GetAction(input, cfg.ActionParry).JustPressed:
		TryStartParry(action, res, rules.Parry)
	case GetAction(input, cfg.ActionBlock).JustPressed:
		TryStartBlock(action, res, rules.Block)
	case GetAction(input, cfg.ActionHeal).JustPressed:
		if TryStartHeal(action, res, player, rules.Heal) {
			RequestSound(fx, cfg.SoundHeal)
		}
	case GetAction(input, cfg.ActionJump).JustPressed:
		if physics.OnGround && CanAct(action, res) && res.CanAfford(pc.JumpCost) {
			res.Spend(pc.JumpCost, pc.RegenDelay)
			physics.VelocityY = pc.JumpSpeed
			physics.OnGround = false
			RequestSound(fx, cfg.SoundJump)
		}
	}
}
