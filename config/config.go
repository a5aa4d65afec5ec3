package config

// Epsilon is the smallest duration, cooldown or speed a table may carry.
// Misconfigured values are clamped to it at load time.
const Epsilon = 1e-3

// Config holds every tuning table a World runs on. Each World owns its own
// copy; nothing here is mutated once a World has been initialised.
type Config struct {
	Player     PlayerConfig
	Dodge      DodgeConfig
	Parry      ParryConfig
	Block      BlockConfig
	Heal       HealConfig
	Combat     CombatConfig
	Severity   map[Severity]SeverityConfig
	Perception PerceptionConfig
	AI         AIConfig
	Movement   MovementConfig
	LockOn     LockOnConfig
	Arena      ArenaConfig
	Waves      []Wave
	Kinds      KindTable
}

// SwingSegment is one leg of a weapon swing curve. Segments split the attack
// progress evenly. Swing angles are presentation only, never hit geometry.
type SwingSegment struct {
	YawFrom   float64 `yaml:"yaw_from"`
	YawTo     float64 `yaml:"yaw_to"`
	PitchFrom float64 `yaml:"pitch_from"`
	PitchTo   float64 `yaml:"pitch_to"`
}

// Multipliers scale an attack's damage, poise damage and knockback.
type Multipliers struct {
	Damage    float64 `yaml:"damage"`
	Poise     float64 `yaml:"poise"`
	Knockback float64 `yaml:"knockback"`
}

// One is the identity scaling.
var One = Multipliers{Damage: 1, Poise: 1, Knockback: 1}

// AttackProfile describes a single attack variant from windup to recovery.
type AttackProfile struct {
	Kind        AttackKind
	Step        int // combo step for scripted combos, 0 otherwise
	Heavy       bool
	Duration    float64
	Damage      float64
	PoiseDamage float64
	Knockback   float64
	Scale       Multipliers
	Critical    Multipliers // backstab and riposte
	Thirds      []float64   // damage multiplier per third of progress; empty means flat
	RangeSlack  float64
	MinDot      float64
	HitStart    float64 // active window as a fraction of progress
	HitEnd      float64
	StaminaCost float64
	RegenDelay  float64
	Severity    Severity
	Swing       []SwingSegment
}

// DamageAt returns the base damage for the given attack progress.
func (p AttackProfile) DamageAt(progress float64) float64 {
	if len(p.Thirds) == 0 {
		return p.Damage
	}
	i := int(progress * float64(len(p.Thirds)))
	if i < 0 {
		i = 0
	}
	if i >= len(p.Thirds) {
		i = len(p.Thirds) - 1
	}
	return p.Damage * p.Thirds[i]
}

// Active reports whether progress falls inside the hit window.
func (p AttackProfile) Active(progress float64) bool {
	return progress >= p.HitStart && progress <= p.HitEnd
}

// DefenseConfig is how an actor reacts when it is on the receiving end.
type DefenseConfig struct {
	HitInvuln      float64 // post-hit grace
	BreakStagger   float64 // stagger after a poise break
	BreakKnockback float64 // extra impulse on poise break
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Resources
	MaxHealth    int
	MaxStamina   float64
	MaxPoise     float64
	StaminaRegen float64
	RegenDelay   float64

	// Movement
	WalkSpeed           float64
	SprintMultiplier    float64
	SprintCost          float64 // per second
	ExhaustedMultiplier float64
	ActingMultiplier    float64
	Responsiveness      float64
	BlockedDamping      float64
	Radius              float64
	JumpSpeed           float64
	JumpCost            float64

	// Attacks
	ChargeTime     float64
	ComboResetTime float64
	Light          [3]AttackProfile
	Heavy          AttackProfile

	Defense DefenseConfig
}

// DodgeConfig covers the dodge roll shared by player and enemies.
type DodgeConfig struct {
	Duration      float64
	Distance      float64
	Cost          float64
	RegenDelay    float64
	InvulnBuffer  float64 // i-frames past the end of the roll
	PerfectWindow float64 // final part of the roll that can trigger a perfect dodge
	PerfectRefund float64
	PerfectTimer  float64
}

// ParryConfig covers parry timing and its punish.
type ParryConfig struct {
	Duration      float64
	Cost          float64
	RegenDelay    float64
	PerfectWindow float64 // final part of the parry timer
	StunDuration  float64
	Knockback     float64
	RiposteWindow float64
}

// BlockConfig covers the guard window.
type BlockConfig struct {
	Duration   float64
	Cost       float64
	RegenDelay float64
}

// HealConfig covers flask use.
type HealConfig struct {
	Flasks   int
	Amount   int
	Duration float64
}

// CombatConfig contains hit resolution rules shared by every attacker.
type CombatConfig struct {
	AttackRange              float64
	BackstabDot              float64
	ExhaustedPoiseMultiplier float64
	BlockDamageMultiplier    float64
	BlockPoiseMultiplier     float64

	// Enemy reactions
	FlinchLight   float64
	FlinchHeavy   float64
	AlertOnHit    float64
	DefeatLinger  float64
	DeathParticle int
}

// SeverityConfig is the feedback attached to a severity tier.
type SeverityConfig struct {
	HitStop   float64
	Shake     float64
	Particles int
	Color     ColorCategory
	Sound     SoundID
}

// PerceptionConfig controls enemy sight.
type PerceptionConfig struct {
	ViewDistance      float64
	HalfAngle         float64 // degrees
	RayTolerance      float64
	ParallelThreshold int // enemy count above which sight checks fan out
}

// AIConfig contains enemy decision constants shared by all kinds.
type AIConfig struct {
	MaxStamina     float64
	StaminaRegen   float64
	Responsiveness float64
	BlockedDamping float64
	StaggerDecay   float64
	Defense        DefenseConfig

	// Reactive dodge
	ThreatRange   float64
	DodgeCost     float64
	DodgeDistance float64

	// Attacks
	ReachBonus          float64
	AttackDot           float64
	AttackCost          float64
	HeavyCost           float64
	HeavyDuration       float64 // multiplier on the kind's attack duration
	HeavyScale          Multipliers
	LightRegenDelay     float64
	HeavyRegenDelay     float64
	HeavyCooldownExtra  float64
	CooldownJitter      float64
	Knockback           float64
	RangeSlack          float64
	MinDot              float64
	HitStart            float64
	HitEnd              float64
	Critical            Multipliers
	LightSwings         [3][]SwingSegment
	HeavySwing          []SwingSegment
	ComboCost           float64
	ComboRegenDelay     float64
	ComboReachBonus     float64
	ComboDot            float64

	// Tank block
	BlockReachBonus float64

	// Awareness and movement
	AlertDuration   float64
	SearchRadius    float64
	CombatRange     float64
	NearBonus       float64 // within attack range plus this, enemies circle more than they close
	StrafeFlipMin   float64
	StrafeFlipMax   float64
	StrafeSpeed     float64
	PatrolMin       float64
	PatrolMax       float64
	PatrolArrive    float64
	PatrolSpeed     float64
	PatrolRadiusMin float64
	PatrolRadiusMax float64
}

// MovementConfig holds world-level movement constants.
type MovementConfig struct {
	EnemySpeed     float64
	Gravity        float64
	ObstacleRadius float64
	ActorRadius    float64
}

// LockOnConfig tunes target acquisition.
type LockOnConfig struct {
	AcquireRange   float64
	SwitchRange    float64
	BreakRange     float64
	DistanceWeight float64
	AngleWeight    float64 // per radian of aim error
	SwitchCooldown float64
}

// ArenaConfig sizes the collision space.
type ArenaConfig struct {
	HalfExtent      float64
	CellSize        int
	SpawnRadius     float64
	PixelsPerUnit   float64
	BoundaryPadding float64
}

// WaveEntry spawns Count enemies of Kind.
type WaveEntry struct {
	Kind  string
	Count int
}

// Wave is one round of enemies.
type Wave struct {
	Entries []WaveEntry
}

// Default returns the built-in tuning.
func Default() *Config {
	c := &Config{}

	lightSwing := [3][]SwingSegment{
		{{YawFrom: 30, YawTo: -60, PitchFrom: -30, PitchTo: 10}},
		{{YawFrom: -60, YawTo: 70, PitchFrom: 10, PitchTo: -20}},
		{{YawFrom: 0, YawTo: 0, PitchFrom: -80, PitchTo: 60}},
	}
	heavySwing := []SwingSegment{
		{YawFrom: 20, YawTo: 40, PitchFrom: -30, PitchTo: -110},
		{YawFrom: 40, YawTo: 0, PitchFrom: -110, PitchTo: 70},
		{YawFrom: 0, YawTo: -10, PitchFrom: 70, PitchTo: 80},
	}
	playerCritical := Multipliers{Damage: 2.6, Poise: 2.3, Knockback: 2.1}

	light := func(kind AttackKind, minDot float64, swing []SwingSegment) AttackProfile {
		return AttackProfile{
			Kind:        kind,
			Duration:    0.42,
			Damage:      62,
			PoiseDamage: 28,
			Knockback:   14,
			Scale:       One,
			Critical:    playerCritical,
			RangeSlack:  1.4,
			MinDot:      minDot,
			HitStart:    0.18,
			HitEnd:      0.82,
			StaminaCost: 22,
			RegenDelay:  0.8,
			Severity:    SeverityLight,
			Swing:       swing,
		}
	}

	c.Player = PlayerConfig{
		MaxHealth:    420,
		MaxStamina:   145,
		MaxPoise:     120,
		StaminaRegen: 38,
		RegenDelay:   0.8,

		WalkSpeed:           7.4,
		SprintMultiplier:    1.85,
		SprintCost:          14,
		ExhaustedMultiplier: 0.45,
		ActingMultiplier:    0.38,
		Responsiveness:      22,
		BlockedDamping:      0.15,
		Radius:              1.8,
		JumpSpeed:           14,
		JumpCost:            5,

		ChargeTime:     0.85,
		ComboResetTime: 1.1,
		Light: [3]AttackProfile{
			light(AttackLight1, 0.35, lightSwing[0]),
			// the second swing sweeps wide enough to catch targets behind
			light(AttackLight2, -0.45, lightSwing[1]),
			light(AttackLight3, 0.35, lightSwing[2]),
		},
		Heavy: AttackProfile{
			Kind:        AttackHeavy,
			Heavy:       true,
			Duration:    1.05,
			Damage:      92,
			PoiseDamage: 68,
			Knockback:   14,
			Scale:       One,
			Critical:    playerCritical,
			Thirds:      []float64{0.8, 1.0, 1.25},
			RangeSlack:  1.4,
			MinDot:      0.35,
			HitStart:    0.18,
			HitEnd:      0.82,
			StaminaCost: 52,
			RegenDelay:  0.8 * 1.4,
			Severity:    SeverityHeavy,
			Swing:       heavySwing,
		},

		Defense: DefenseConfig{
			HitInvuln:      0.5,
			BreakStagger:   1.5,
			BreakKnockback: 24,
		},
	}

	c.Dodge = DodgeConfig{
		Duration:      0.22,
		Distance:      13,
		Cost:          18,
		RegenDelay:    0.8 * 0.6,
		InvulnBuffer:  0.15,
		PerfectWindow: 0.10,
		PerfectRefund: 24,
		PerfectTimer:  1.5,
	}

	c.Parry = ParryConfig{
		Duration:      0.38,
		Cost:          28,
		RegenDelay:    0.8,
		PerfectWindow: 0.12,
		StunDuration:  2.8,
		Knockback:     28,
		RiposteWindow: 1.8,
	}

	c.Block = BlockConfig{
		Duration:   0.7,
		Cost:       22,
		RegenDelay: 0.8,
	}

	c.Heal = HealConfig{
		Flasks:   4,
		Amount:   135,
		Duration: 1.35,
	}

	c.Combat = CombatConfig{
		AttackRange:              6.2,
		BackstabDot:              -0.75,
		ExhaustedPoiseMultiplier: 1.7,
		BlockDamageMultiplier:    0.4,
		BlockPoiseMultiplier:     0.55,

		FlinchLight:   0.22,
		FlinchHeavy:   0.35,
		AlertOnHit:    15,
		DefeatLinger:  1.5,
		DeathParticle: 30,
	}

	c.Severity = map[Severity]SeverityConfig{
		SeverityBlocked:      {HitStop: 0.02, Shake: 0.10, Particles: 8, Color: ColorSpark, Sound: SoundBlock},
		SeverityLight:        {HitStop: 0.03, Shake: 0.18, Particles: 12, Color: ColorBlood, Sound: SoundHit},
		SeverityHeavy:        {HitStop: 0.05, Shake: 0.28, Particles: 12, Color: ColorBlood, Sound: SoundHeavyHit},
		SeverityCritical:     {HitStop: 0.06, Shake: 0.35, Particles: 24, Color: ColorEmber, Sound: SoundCritical},
		SeverityBreak:        {HitStop: 0.07, Shake: 0.42, Particles: 24, Color: ColorGold, Sound: SoundPoiseBreak},
		SeverityParry:        {HitStop: 0.06, Shake: 0.32, Particles: 24, Color: ColorSpark, Sound: SoundParry},
		SeverityPerfectDodge: {HitStop: 0.04, Particles: 10, Color: ColorGhost, Sound: SoundPerfectDodge},
	}

	c.Perception = PerceptionConfig{
		ViewDistance:      40,
		HalfAngle:         65,
		RayTolerance:      0.8,
		ParallelThreshold: 32,
	}

	c.AI = AIConfig{
		MaxStamina:     145,
		StaminaRegen:   32,
		Responsiveness: 12,
		BlockedDamping: 0.05,
		StaggerDecay:   10,
		Defense: DefenseConfig{
			HitInvuln:      0.4,
			BreakStagger:   2.4,
			BreakKnockback: 26,
		},

		ThreatRange:   9,
		DodgeCost:     32,
		DodgeDistance: 12.5,

		ReachBonus:         1.8,
		AttackDot:          0.55,
		AttackCost:         26,
		HeavyCost:          48,
		HeavyDuration:      1.75,
		HeavyScale:         Multipliers{Damage: 1.75, Poise: 1.85, Knockback: 1.5},
		LightRegenDelay:    0.8,
		HeavyRegenDelay:    1.4,
		HeavyCooldownExtra: 1.3,
		CooldownJitter:     1.5,
		Knockback:          12,
		RangeSlack:         1.2,
		MinDot:             0.6,
		HitStart:           0.2,
		HitEnd:             0.8,
		Critical:           Multipliers{Damage: 2.1, Poise: 2.1, Knockback: 1.8},
		LightSwings:        lightSwing,
		HeavySwing:         heavySwing,
		ComboCost:          30,
		ComboRegenDelay:    1.2,
		ComboReachBonus:    5,
		ComboDot:           0.5,

		BlockReachBonus: 3,

		AlertDuration:   12,
		SearchRadius:    8,
		CombatRange:     45,
		NearBonus:       3,
		StrafeFlipMin:   3,
		StrafeFlipMax:   7,
		StrafeSpeed:     0.85,
		PatrolMin:       6,
		PatrolMax:       14,
		PatrolArrive:    6,
		PatrolSpeed:     0.55,
		PatrolRadiusMin: 16,
		PatrolRadiusMax: 32,
	}

	c.Movement = MovementConfig{
		EnemySpeed:     7.9,
		Gravity:        -32,
		ObstacleRadius: 5,
		ActorRadius:    1.8,
	}

	c.LockOn = LockOnConfig{
		AcquireRange:   45,
		SwitchRange:    55,
		BreakRange:     60,
		DistanceWeight: 0.6,
		AngleWeight:    30,
		SwitchCooldown: 0.35,
	}

	c.Arena = ArenaConfig{
		HalfExtent:      80,
		CellSize:        8,
		SpawnRadius:     55,
		PixelsPerUnit:   2,
		BoundaryPadding: 8,
	}

	c.Waves = []Wave{
		{Entries: []WaveEntry{{Kind: "grunt", Count: 3}}},
		{Entries: []WaveEntry{{Kind: "grunt", Count: 3}, {Kind: "agile", Count: 2}}},
		{Entries: []WaveEntry{{Kind: "grunt", Count: 2}, {Kind: "tank", Count: 2}, {Kind: "agile", Count: 2}}},
		{Entries: []WaveEntry{{Kind: "boss", Count: 1}, {Kind: "grunt", Count: 2}}},
	}

	c.Kinds = DefaultKinds()

	return c
}

// Wave returns the wave at index, repeating the last wave past the end of
// the table.
func (c *Config) Wave(index int) Wave {
	if len(c.Waves) == 0 {
		return Wave{}
	}
	if index < 0 {
		index = 0
	}
	if index >= len(c.Waves) {
		index = len(c.Waves) - 1
	}
	return c.Waves[index]
}

// SeverityFor returns the feedback tier, or the zero value for unknown tiers.
func (c *Config) SeverityFor(s Severity) SeverityConfig {
	return c.Severity[s]
}
