package systems

import (
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// Singletons live on the clock entry created by factory.CreateClock. The
// accessors below panic if it is missing, which only happens when a system
// runs against a world that was never initialised.

func clockEntry(w donburi.World) *donburi.Entry {
	e, ok := components.Frame.First(w)
	if !ok {
		panic("systems: world has no clock entry")
	}
	return e
}

func frameOf(w donburi.World) *components.FrameData {
	return components.Frame.Get(clockEntry(w))
}

func runtimeOf(w donburi.World) *components.RuntimeData {
	return components.Runtime.Get(clockEntry(w))
}

func rulesOf(w donburi.World) *config.Config {
	return runtimeOf(w).Config
}

func randOf(w donburi.World) chance.Source {
	return runtimeOf(w).Rand
}

func loggerOf(w donburi.World) *zap.Logger {
	if l := runtimeOf(w).Logger; l != nil {
		return l
	}
	return zap.NewNop()
}

// EffectsOf returns the effect requests accumulated this frame.
func EffectsOf(w donburi.World) *components.EffectsData {
	return components.Effects.Get(clockEntry(w))
}

// SnapshotOf returns the player snapshot taken at the start of the frame.
func SnapshotOf(w donburi.World) *components.PlayerSnapshotData {
	return components.PlayerSnapshot.Get(clockEntry(w))
}

// arenaOf returns the arena layout and its collision space, or nil when the
// world has no arena.
func arenaOf(w donburi.World) (*components.ArenaData, *resolv.Space) {
	e, ok := components.Space.First(w)
	if !ok {
		return nil, nil
	}
	return components.Arena.Get(e), components.Space.Get(e)
}

// PlayerEntry returns the live player entry.
func PlayerEntry(w donburi.World) (*donburi.Entry, bool) {
	e, ok := tags.Player.First(w)
	if !ok || !e.Valid() {
		return nil, false
	}
	return e, true
}
