package systems

import (
	"context"

	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
)

// DesiredAwareness works out which awareness state the enemy should be in
// this frame. It also refreshes the alert timer and the last known player
// position, which is why it needs dt and the player position.
func DesiredAwareness(enemy *components.EnemyData, a *components.ActionData, pos, player gamemath.Vec3, rules config.AIConfig, dt float64) config.AIState {
	if a.IsStaggered() {
		return config.AIStaggered
	}
	if enemy.SeesPlayer || enemy.Kind.AlwaysChase {
		enemy.LastKnownPlayer = player
		enemy.AlertTimer = rules.AlertDuration
		return config.AIChase
	}
	if enemy.AlertTimer > 0 {
		enemy.AlertTimer = gamemath.CountDown(enemy.AlertTimer, dt)
		if gamemath.FlatDistance(pos, enemy.LastKnownPlayer) < rules.SearchRadius {
			return config.AISearch
		}
		return config.AIAlert
	}
	return config.AIPatrol
}

// SetAwareness moves the enemy's awareness machine toward s. Transitions the
// machine does not allow leave the state unchanged. It reports whether the
// state changed.
func SetAwareness(enemy *components.EnemyData, s config.AIState) bool {
	if enemy.Awareness == nil {
		changed := enemy.AIState != s
		enemy.AIState = s
		return changed
	}
	// NoTransitionError and InvalidEventError both mean "stay put"
	err := enemy.Awareness.Event(context.Background(), components.AwarenessEvent(s))
	enemy.AIState = config.AIState(enemy.Awareness.Current())
	return err == nil
}
