package systems

import (
	"testing"

	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/stretchr/testify/assert"
)

func TestEdge(t *testing.T) {
	tests := []struct {
		name              string
		current, previous bool
		want              components.ButtonState
	}{
		{"up", false, false, components.ButtonState{}},
		{"pressed this frame", true, false, components.ButtonState{Pressed: true, JustPressed: true}},
		{"held", true, true, components.ButtonState{Pressed: true}},
		{"released this frame", false, true, components.ButtonState{JustReleased: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Edge(tt.current, tt.previous))
		})
	}
}

func TestInputLatchClearsEdgesAndFlick(t *testing.T) {
	tw := newTestWorld(t, chance.NewSequence(0.5))
	p := tw.player(gamemath.Vec3{}, 0)
	input := components.Input.Get(p)

	press(p, config.ActionDodge, true)
	input.Flick = -1
	assert.True(t, GetAction(input, config.ActionDodge).JustPressed)

	UpdateInputLatch(tw.w)
	assert.False(t, GetAction(input, config.ActionDodge).JustPressed)
	assert.True(t, GetAction(input, config.ActionDodge).Pressed)
	assert.Zero(t, input.Flick)

	press(p, config.ActionDodge, false)
	assert.True(t, GetAction(input, config.ActionDodge).JustReleased)
}
