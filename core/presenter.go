package core

import (
	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/gamemath"
)

// DefeatEvent reports a beaten enemy and the reward the outer game grants.
type DefeatEvent = components.DefeatEvent

// Presenter receives the feedback a World asks for once per Step. The
// simulation never renders, plays audio or shakes anything itself.
type Presenter interface {
	RequestHitEffect(pos gamemath.Vec3, severity config.Severity)
	RequestParticleBurst(pos gamemath.Vec3, color config.ColorCategory, count int)
	RequestSound(sound config.SoundID)
	RequestScreenShake(magnitude float64)
	RequestHitStop(duration float64)
	EnemyDefeated(ev DefeatEvent)
}

// NopPresenter drops every request.
type NopPresenter struct{}

func (NopPresenter) RequestHitEffect(gamemath.Vec3, config.Severity)               {}
func (NopPresenter) RequestParticleBurst(gamemath.Vec3, config.ColorCategory, int) {}
func (NopPresenter) RequestSound(config.SoundID)                                   {}
func (NopPresenter) RequestScreenShake(float64)                                    {}
func (NopPresenter) RequestHitStop(float64)                                        {}
func (NopPresenter) EnemyDefeated(DefeatEvent)                                     {}

// RecordingPresenter keeps every request it receives. It is not safe for
// concurrent use.
type RecordingPresenter struct {
	HitEffects []components.HitEffect
	Bursts     []components.ParticleBurst
	Sounds     []config.SoundID
	Shakes     []float64
	HitStops   []float64
	Defeats    []DefeatEvent
}

func (r *RecordingPresenter) RequestHitEffect(pos gamemath.Vec3, severity config.Severity) {
	r.HitEffects = append(r.HitEffects, components.HitEffect{Position: pos, Severity: severity})
}

func (r *RecordingPresenter) RequestParticleBurst(pos gamemath.Vec3, color config.ColorCategory, count int) {
	r.Bursts = append(r.Bursts, components.ParticleBurst{Position: pos, Color: color, Count: count})
}

func (r *RecordingPresenter) RequestSound(sound config.SoundID) {
	r.Sounds = append(r.Sounds, sound)
}

func (r *RecordingPresenter) RequestScreenShake(magnitude float64) {
	r.Shakes = append(r.Shakes, magnitude)
}

func (r *RecordingPresenter) RequestHitStop(duration float64) {
	r.HitStops = append(r.HitStops, duration)
}

func (r *RecordingPresenter) EnemyDefeated(ev DefeatEvent) {
	r.Defeats = append(r.Defeats, ev)
}

// Reward is the sum of every defeat reward recorded so far.
func (r *RecordingPresenter) Reward() int {
	total := 0
	for _, d := range r.Defeats {
		total += d.Reward
	}
	return total
}

// Reset forgets everything recorded.
func (r *RecordingPresenter) Reset() {
	*r = RecordingPresenter{}
}

// flush hands the frame's requests to p and clears them.
func flush(fx *components.EffectsData, p Presenter) {
	for _, h := range fx.HitEffects {
		p.RequestHitEffect(h.Position, h.Severity)
	}
	for _, b := range fx.Bursts {
		p.RequestParticleBurst(b.Position, b.Color, b.Count)
	}
	for _, s := range fx.Sounds {
		p.RequestSound(s)
	}
	if fx.Shake > 0 {
		p.RequestScreenShake(fx.Shake)
	}
	if fx.HitStopRequest > 0 {
		p.RequestHitStop(fx.HitStopRequest)
	}
	for _, d := range fx.Defeats {
		p.EnemyDefeated(d)
	}
	fx.Reset()
}
