package systems

import (
	"github.com/automoto/ashfall/components"
	cfg "github.com/automoto/ashfall/config"
	"github.com/yohamta/donburi"
)

// Edge derives the temporal state of a button from two consecutive samples.
func Edge(current, previous bool) components.ButtonState {
	return components.ButtonState{
		Pressed:      current,
		JustPressed:  current && !previous,
		JustReleased: !current && previous,
	}
}

// GetAction returns the ButtonState for an action by comparing frames.
func GetAction(input *components.InputData, id cfg.ActionID) components.ButtonState {
	return Edge(input.Current[id], input.Previous[id])
}

// UpdateInputLatch remembers this frame's buttons so the next frame can see
// edges. It must run last, and not at all while the clock is frozen, so a
// press made during a hit-stop still reads as JustPressed afterwards.
func UpdateInputLatch(w donburi.World) {
	components.Input.Each(w, func(e *donburi.Entry) {
		input := components.Input.Get(e)
		input.Previous = input.Current
		input.Flick = 0
	})
}
