package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeavyDamageScalesByThird(t *testing.T) {
	heavy := Default().Player.Heavy
	assert.InDelta(t, 92*0.8, heavy.DamageAt(0.1), 1e-9)
	assert.InDelta(t, 92*1.0, heavy.DamageAt(0.5), 1e-9)
	assert.InDelta(t, 92*1.25, heavy.DamageAt(0.9), 1e-9)
	assert.InDelta(t, 92*1.25, heavy.DamageAt(1.0), 1e-9)
	assert.InDelta(t, 92*0.8, heavy.DamageAt(-0.2), 1e-9)
}

func TestLightDamageIsFlat(t *testing.T) {
	light := Default().Player.Light[0]
	assert.Equal(t, 62.0, light.DamageAt(0.1))
	assert.Equal(t, 62.0, light.DamageAt(0.9))
}

func TestActiveWindow(t *testing.T) {
	p := AttackProfile{HitStart: 0.2, HitEnd: 0.8}
	assert.False(t, p.Active(0.1))
	assert.True(t, p.Active(0.2))
	assert.True(t, p.Active(0.5))
	assert.False(t, p.Active(0.81))
}

func TestWaveClampsIndex(t *testing.T) {
	cfg := Default()
	assert.Equal(t, cfg.Waves[0], cfg.Wave(-3))
	assert.Equal(t, cfg.Waves[len(cfg.Waves)-1], cfg.Wave(99))
	assert.Empty(t, (&Config{}).Wave(0).Entries)
}

func TestEveryWaveKindExists(t *testing.T) {
	cfg := Default()
	for i, w := range cfg.Waves {
		for _, e := range w.Entries {
			_, err := cfg.Kinds.Lookup(e.Kind)
			assert.NoError(t, err, "wave %d", i)
		}
	}
}

func TestSeverityTiersAreConfigured(t *testing.T) {
	cfg := Default()
	for s := SeverityBlocked; s <= SeverityPerfectDodge; s++ {
		_, ok := cfg.Severity[s]
		assert.True(t, ok, s.String())
	}
	assert.Equal(t, SeverityConfig{}, cfg.SeverityFor(SeverityNone))
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "staggered", ActionStaggered.String())
	assert.Equal(t, "unknown", ActionState(42).String())
	assert.Equal(t, "heavy", AttackHeavy.String())
	assert.Equal(t, AttackLight2, LightAttack(2))
	assert.Equal(t, AttackLight1, LightAttack(7))
	assert.True(t, BehaviorBoss.Valid())
	assert.False(t, BehaviorID("dragon").Valid())
}
