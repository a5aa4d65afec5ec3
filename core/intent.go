package core

import (
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
)

// Intent is one frame of player input: which buttons are held, the move
// stick relative to the aim, the aim yaw and a lock-on switch flick. Edges
// are derived inside the World, so callers only report levels.
type Intent struct {
	Buttons [config.ActionCount]bool
	Move    gamemath.Vec3 // X strafes right, Z moves forward
	AimYaw  float64
	Flick   int
}

// Hold returns a copy of in with the given buttons held.
func (in Intent) Hold(ids ...config.ActionID) Intent {
	for _, id := range ids {
		if id > config.ActionNone && id < config.ActionCount {
			in.Buttons[id] = true
		}
	}
	return in
}

// IntentSource supplies the intent for each frame of a GameLoop.
type IntentSource interface {
	Next(frame uint64, state State) Intent
}

// IntentFunc adapts a function to IntentSource.
type IntentFunc func(frame uint64, state State) Intent

func (f IntentFunc) Next(frame uint64, state State) Intent {
	return f(frame, state)
}
