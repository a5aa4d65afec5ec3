package components

import (
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
)

type HitEffect struct {
	Position gamemath.Vec3
	Severity config.Severity
}

type ParticleBurst struct {
	Position gamemath.Vec3
	Color    config.ColorCategory
	Count    int
}

// DefeatEvent reports an enemy defeat so the outer game can grant its reward.
type DefeatEvent struct {
	Kind     string
	Reward   int
	Position gamemath.Vec3
}

// EffectsData accumulates feedback requests for the frame. Shake and
// hit-stop keep the largest request, never the sum.
type EffectsData struct {
	HitStopTimer   float64 // live freeze, decays with real time
	HitStopRequest float64
	Shake          float64

	HitEffects []HitEffect
	Bursts     []ParticleBurst
	Sounds     []config.SoundID
	Defeats    []DefeatEvent
}

// Reset clears the per-frame requests. The live hit-stop timer survives.
func (e *EffectsData) Reset() {
	e.HitStopRequest = 0
	e.Shake = 0
	e.HitEffects = e.HitEffects[:0]
	e.Bursts = e.Bursts[:0]
	e.Sounds = e.Sounds[:0]
	e.Defeats = e.Defeats[:0]
}

var Effects = donburi.NewComponentType[EffectsData]()
