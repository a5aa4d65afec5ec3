package components

import (
	cfg "github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
)

// ButtonState represents the temporal state of an action
type ButtonState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for all
// actions. JustPressed/JustReleased are computed on demand by comparing
// frames, never stored.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool

	Move   gamemath.Vec3 // X strafes right, Z moves forward, relative to aim
	AimYaw float64
	Flick  int // -1 or +1 to switch lock-on target
}

var Input = donburi.NewComponentType[InputData]()
