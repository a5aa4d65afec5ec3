package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKindsLoad(t *testing.T) {
	kinds := DefaultKinds()
	assert.Equal(t, []string{"agile", "boss", "grunt", "tank"}, kinds.IDs())

	grunt, err := kinds.Lookup("grunt")
	require.NoError(t, err)
	assert.Equal(t, "grunt", grunt.ID)
	assert.Equal(t, BehaviorGrunt, grunt.Behavior)
	assert.Equal(t, 180, grunt.Health)
	assert.Equal(t, 31.0, grunt.Damage)
	assert.Equal(t, 36.0, grunt.PoiseDamage)

	boss, err := kinds.Lookup("boss")
	require.NoError(t, err)
	require.Len(t, boss.Combo, 5)
	assert.True(t, boss.Combo[4].Finisher)
	assert.Equal(t, 2.1, boss.Combo[4].Scale.Damage)
}

func TestLookupUnknownKind(t *testing.T) {
	_, err := DefaultKinds().Lookup("dragon")
	assert.ErrorContains(t, err, `"dragon"`)
}

func TestParseKindsClampsDegenerateTimings(t *testing.T) {
	kinds, err := ParseKinds([]byte(`
kinds:
  sloppy:
    behavior: grunt
    health: 10
    poise: 5
    cooldown: 0
    attack_duration: -1
    speed: 0
`))
	require.NoError(t, err)
	k := kinds["sloppy"]
	assert.Equal(t, "sloppy", k.Name)
	assert.Equal(t, Epsilon, k.Cooldown)
	assert.Equal(t, Epsilon, k.AttackDuration)
	assert.Equal(t, Epsilon, k.Speed)
	assert.Equal(t, Epsilon, k.Stamina)
	assert.Equal(t, 1.0, k.EngageSpeed)
	assert.Equal(t, 1.0, k.PatrolScale)
}

func TestParseKindsRejectsBrokenKinds(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", `kinds: {}`, "no kinds"},
		{"unknown behavior", "kinds:\n  x: {behavior: dragon, health: 1, poise: 1}", "unknown behavior"},
		{"no health", "kinds:\n  x: {behavior: grunt, health: 0, poise: 1}", "health"},
		{"no poise", "kinds:\n  x: {behavior: grunt, health: 1, poise: 0}", "poise"},
		{"bad chance", "kinds:\n  x: {behavior: grunt, health: 1, poise: 1, dodge_chance: 1.5}", "dodge_chance"},
		{"boss without combo", "kinds:\n  x: {behavior: boss, health: 1, poise: 1}", "combo"},
		{"not yaml", "kinds: [", "parsing kinds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKinds([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadKindsFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"kinds.yaml": {Data: []byte("kinds:\n  x: {behavior: tank, health: 3, poise: 2, block_chance: 1}")},
	}
	kinds, err := LoadKinds(fsys, "kinds.yaml")
	require.NoError(t, err)
	assert.Equal(t, BehaviorTank, kinds["x"].Behavior)

	_, err = LoadKinds(fsys, "missing.yaml")
	assert.ErrorContains(t, err, "missing.yaml")
}

func TestLoadKindsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.yaml")
	require.NoError(t, os.WriteFile(path, defaultKindsYAML, 0o600))
	kinds, err := LoadKindsFile(path)
	require.NoError(t, err)
	assert.Len(t, kinds, 4)
}

func TestKindAttackProfiles(t *testing.T) {
	cfg := Default()
	tank := cfg.Kinds["tank"]

	light := tank.LightAttack(cfg.AI, 2)
	assert.Equal(t, AttackLight3, light.Kind)
	assert.Equal(t, tank.AttackDuration, light.Duration)
	assert.Equal(t, One, light.Scale)
	assert.False(t, light.Heavy)

	heavy := tank.HeavyAttack(cfg.AI)
	assert.True(t, heavy.Heavy)
	assert.InDelta(t, tank.AttackDuration*1.75, heavy.Duration, 1e-9)
	assert.Equal(t, cfg.AI.HeavyScale, heavy.Scale)
	assert.Equal(t, cfg.AI.HeavyCost, heavy.StaminaCost)

	boss := cfg.Kinds["boss"]
	third := boss.ComboAttack(cfg.AI, 3)
	assert.Equal(t, 3, third.Step)
	assert.Equal(t, 0.3, third.MinDot)
	assert.Equal(t, 3.0, third.RangeSlack)
	assert.Equal(t, 0.85, third.HitEnd)
	assert.Equal(t, SeverityHeavy, third.Severity)
	assert.Equal(t, SeverityCritical, boss.ComboAttack(cfg.AI, 5).Severity)
	assert.Equal(t, 1, boss.ComboAttack(cfg.AI, 9).Step)
}
