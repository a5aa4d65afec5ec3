package systems

import (
	"testing"

	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/automoto/ashfall/systems/factory"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

const frameDT = 1.0 / 60

type testWorld struct {
	w     donburi.World
	rules *config.Config
}

// newTestWorld builds an empty arena whose AI rolls come from src.
func newTestWorld(t *testing.T, src chance.Source) *testWorld {
	t.Helper()
	w := donburi.NewWorld()
	c := config.Default()
	factory.CreateClock(w, components.RuntimeData{
		Config: c,
		Rand:   src,
		Logger: zap.NewNop(),
	})
	factory.CreateSpace(w, c.Arena.HalfExtent, c.Arena.BoundaryPadding, c.Arena.CellSize)
	frameOf(w).RealDelta = frameDT
	frameOf(w).Delta = frameDT
	return &testWorld{w: w, rules: c}
}

func (tw *testWorld) player(pos gamemath.Vec3, facing float64) *donburi.Entry {
	return factory.CreatePlayer(tw.w, tw.rules, pos, facing)
}

func (tw *testWorld) enemy(t *testing.T, kind string, pos gamemath.Vec3, facing float64) *donburi.Entry {
	t.Helper()
	k, err := tw.rules.Kinds.Lookup(kind)
	require.NoError(t, err)
	return factory.CreateEnemy(tw.w, tw.rules, k, pos, facing, chance.NewSeeded(7))
}

func (tw *testWorld) obstacle(pos gamemath.Vec3, radius float64) {
	factory.CreateObstacle(tw.w, components.Obstacle{Position: pos, Radius: radius})
}

// press sets a button for the next frame, keeping last frame's sample.
func press(e *donburi.Entry, id config.ActionID, down bool) {
	input := components.Input.Get(e)
	input.Current[id] = down
}

// latch moves the current buttons into the previous sample.
func latch(e *donburi.Entry) {
	input := components.Input.Get(e)
	input.Previous = input.Current
}
