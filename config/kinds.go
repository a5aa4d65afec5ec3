package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed kinds.yaml
var defaultKindsYAML []byte

// ComboStep is one scripted swing of a multi-step combo.
type ComboStep struct {
	Duration   float64        `yaml:"duration"`
	Scale      Multipliers    `yaml:"scale"`
	RangeSlack float64        `yaml:"range_slack"`
	MinDot     float64        `yaml:"min_dot"`
	HitStart   float64        `yaml:"hit_start"`
	HitEnd     float64        `yaml:"hit_end"`
	Finisher   bool           `yaml:"finisher"`
	Swing      []SwingSegment `yaml:"swing"`
}

// EnemyKind is the immutable per-kind data an enemy copies at spawn.
type EnemyKind struct {
	ID       string     `yaml:"-"`
	Name     string     `yaml:"name"`
	Behavior BehaviorID `yaml:"behavior"`

	Health  int     `yaml:"health"`
	Poise   float64 `yaml:"poise"`
	Stamina float64 `yaml:"stamina"`
	Speed   float64 `yaml:"speed"` // multiplier on the base enemy speed
	Scale   float64 `yaml:"scale"`

	Damage         float64 `yaml:"damage"`
	PoiseDamage    float64 `yaml:"poise_damage"`
	AttackDuration float64 `yaml:"attack_duration"`
	Cooldown       float64 `yaml:"cooldown"`

	DodgeChance float64 `yaml:"dodge_chance"`
	HeavyChance float64 `yaml:"heavy_chance"`
	BlockChance float64 `yaml:"block_chance"`
	FlankChance float64 `yaml:"flank_chance"`

	ForwardFar  float64 `yaml:"forward_far"`
	ForwardNear float64 `yaml:"forward_near"`
	Strafe      float64 `yaml:"strafe"`
	EngageSpeed float64 `yaml:"engage_speed"`

	PatrolScale       float64 `yaml:"patrol_scale"`
	Reward            int     `yaml:"reward"`
	Unflinching       bool    `yaml:"unflinching"`
	ResistLightFlinch bool    `yaml:"resist_light_flinch"`
	AlwaysChase       bool    `yaml:"always_chase"`

	Combo      []ComboStep `yaml:"combo"`
	ComboPause float64     `yaml:"combo_pause"`
}

// KindTable maps kind ids to their data.
type KindTable map[string]*EnemyKind

type kindFile struct {
	Kinds map[string]*EnemyKind `yaml:"kinds"`
}

// DefaultKinds returns the built-in kind table.
func DefaultKinds() KindTable {
	kinds, err := ParseKinds(defaultKindsYAML)
	if err != nil {
		panic(fmt.Sprintf("config: built-in kind table: %v", err))
	}
	return kinds
}

// LoadKinds reads a kind table from fsys.
func LoadKinds(fsys fs.FS, path string) (KindTable, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading kind table %s: %w", path, err)
	}
	kinds, err := ParseKinds(data)
	if err != nil {
		return nil, fmt.Errorf("kind table %s: %w", path, err)
	}
	return kinds, nil
}

// LoadKindsFile reads a kind table from a path on disk.
func LoadKindsFile(path string) (KindTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading kind table %s: %w", path, err)
	}
	kinds, err := ParseKinds(data)
	if err != nil {
		return nil, fmt.Errorf("kind table %s: %w", path, err)
	}
	return kinds, nil
}

// ParseKinds decodes, validates and normalizes a YAML kind table.
func ParseKinds(data []byte) (KindTable, error) {
	var f kindFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing kinds: %w", err)
	}
	if len(f.Kinds) == 0 {
		return nil, errors.New("no kinds defined")
	}
	kinds := make(KindTable, len(f.Kinds))
	for id, k := range f.Kinds {
		if k == nil {
			return nil, fmt.Errorf("kind %q: empty definition", id)
		}
		k.ID = id
		if k.Name == "" {
			k.Name = id
		}
		if err := k.Validate(); err != nil {
			return nil, err
		}
		k.Normalize()
		kinds[id] = k
	}
	return kinds, nil
}

// IDs returns the kind ids in sorted order.
func (t KindTable) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the kind for id.
func (t KindTable) Lookup(id string) (*EnemyKind, error) {
	k, ok := t[id]
	if !ok {
		return nil, fmt.Errorf("unknown enemy kind %q", id)
	}
	return k, nil
}

// Validate reports structural problems that no clamp can repair.
func (k *EnemyKind) Validate() error {
	if !k.Behavior.Valid() {
		return fmt.Errorf("kind %q: unknown behavior %q", k.ID, k.Behavior)
	}
	if k.Health <= 0 {
		return fmt.Errorf("kind %q: health must be > 0, got %d", k.ID, k.Health)
	}
	if k.Poise <= 0 {
		return fmt.Errorf("kind %q: poise must be > 0, got %v", k.ID, k.Poise)
	}
	for name, p := range map[string]float64{
		"dodge_chance": k.DodgeChance,
		"heavy_chance": k.HeavyChance,
		"block_chance": k.BlockChance,
		"flank_chance": k.FlankChance,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("kind %q: %s must be within [0, 1], got %v", k.ID, name, p)
		}
	}
	if k.Behavior == BehaviorBoss && len(k.Combo) == 0 {
		return fmt.Errorf("kind %q: boss behavior requires combo steps", k.ID)
	}
	for i, s := range k.Combo {
		if s.HitEnd != 0 && s.HitStart >= s.HitEnd {
			return fmt.Errorf("kind %q: combo step %d hit window [%v, %v] is empty", k.ID, i+1, s.HitStart, s.HitEnd)
		}
	}
	return nil
}

// Normalize clamps timings, speeds and scales to at least Epsilon and fills
// unset multipliers.
func (k *EnemyKind) Normalize() {
	k.Stamina = atLeast(k.Stamina, Epsilon)
	k.Speed = atLeast(k.Speed, Epsilon)
	k.Scale = atLeast(k.Scale, Epsilon)
	k.AttackDuration = atLeast(k.AttackDuration, Epsilon)
	k.Cooldown = atLeast(k.Cooldown, Epsilon)
	k.ComboPause = atLeast(k.ComboPause, Epsilon)
	if k.EngageSpeed <= 0 {
		k.EngageSpeed = 1
	}
	if k.PatrolScale <= 0 {
		k.PatrolScale = 1
	}
	for i := range k.Combo {
		s := &k.Combo[i]
		s.Duration = atLeast(s.Duration, Epsilon)
		if s.Scale == (Multipliers{}) {
			s.Scale = One
		}
		if s.HitEnd == 0 {
			s.HitEnd = 1
		}
	}
}

func atLeast(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

// LightAttack builds the kind's light attack. variant picks one of the three
// swing curves and does not change damage.
func (k *EnemyKind) LightAttack(ai AIConfig, variant int) AttackProfile {
	if variant < 0 || variant > 2 {
		variant = 0
	}
	return AttackProfile{
		Kind:        LightAttack(variant + 1),
		Duration:    k.AttackDuration,
		Damage:      k.Damage,
		PoiseDamage: k.PoiseDamage,
		Knockback:   ai.Knockback,
		Scale:       One,
		Critical:    ai.Critical,
		RangeSlack:  ai.RangeSlack,
		MinDot:      ai.MinDot,
		HitStart:    ai.HitStart,
		HitEnd:      ai.HitEnd,
		StaminaCost: ai.AttackCost,
		RegenDelay:  ai.LightRegenDelay,
		Severity:    SeverityLight,
		Swing:       ai.LightSwings[variant],
	}
}

// HeavyAttack builds the kind's heavy attack.
func (k *EnemyKind) HeavyAttack(ai AIConfig) AttackProfile {
	p := k.LightAttack(ai, 0)
	p.Kind = AttackHeavy
	p.Heavy = true
	p.Duration = k.AttackDuration * ai.HeavyDuration
	p.Scale = ai.HeavyScale
	p.StaminaCost = ai.HeavyCost
	p.RegenDelay = ai.HeavyRegenDelay
	p.Severity = SeverityHeavy
	p.Swing = ai.HeavySwing
	return p
}

// ComboAttack builds step (1-based) of the kind's scripted combo.
func (k *EnemyKind) ComboAttack(ai AIConfig, step int) AttackProfile {
	if len(k.Combo) == 0 {
		return k.LightAttack(ai, 0)
	}
	if step < 1 || step > len(k.Combo) {
		step = 1
	}
	s := k.Combo[step-1]
	p := k.LightAttack(ai, 0)
	p.Kind = AttackCombo
	p.Step = step
	p.Duration = s.Duration
	p.Scale = s.Scale
	p.RangeSlack = s.RangeSlack
	p.MinDot = s.MinDot
	p.HitStart = s.HitStart
	p.HitEnd = s.HitEnd
	p.StaminaCost = ai.ComboCost
	p.RegenDelay = ai.ComboRegenDelay
	p.Severity = SeverityHeavy
	if s.Finisher {
		p.Severity = SeverityCritical
	}
	p.Swing = s.Swing
	return p
}
