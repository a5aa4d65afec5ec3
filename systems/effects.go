package systems

import (
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/yohamta/donburi"
)

// RequestHitStop freezes the simulation for at least d seconds. Overlapping
// requests keep the longest, never the sum.
func RequestHitStop(fx *components.EffectsData, d float64) {
	if d <= 0 {
		return
	}
	fx.HitStopTimer = max(fx.HitStopTimer, d)
	fx.HitStopRequest = max(fx.HitStopRequest, d)
}

// RequestShake asks for a screen shake of at least mag.
func RequestShake(fx *components.EffectsData, mag float64) {
	fx.Shake = max(fx.Shake, mag)
}

func RequestBurst(fx *components.EffectsData, pos gamemath.Vec3, color config.ColorCategory, count int) {
	if count <= 0 {
		return
	}
	fx.Bursts = append(fx.Bursts, components.ParticleBurst{Position: pos, Color: color, Count: count})
}

func RequestSound(fx *components.EffectsData, sound config.SoundID) {
	if sound == config.SoundNone {
		return
	}
	fx.Sounds = append(fx.Sounds, sound)
}

// RequestSeverity emits the whole feedback tier for a hit at pos.
func RequestSeverity(w donburi.World, pos gamemath.Vec3, s config.Severity) {
	fx := EffectsOf(w)
	tier := rulesOf(w).SeverityFor(s)

	fx.HitEffects = append(fx.HitEffects, components.HitEffect{Position: pos, Severity: s})
	RequestHitStop(fx, tier.HitStop)
	RequestShake(fx, tier.Shake)
	RequestBurst(fx, pos, tier.Color, tier.Particles)
	RequestSound(fx, tier.Sound)
}
