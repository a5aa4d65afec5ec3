package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	// Combat sounds
	SoundSwing
	SoundHeavySwing
	SoundHit
	SoundHeavyHit
	SoundBlock
	SoundParry
	SoundCritical
	SoundPoiseBreak
	SoundDeath
	SoundEnemyDeath
	// Movement sounds
	SoundDodge
	SoundPerfectDodge
	SoundJump
	// Items
	SoundHeal
)

// ColorCategory names a particle palette. Presentation picks the actual colours.
type ColorCategory int

const (
	ColorBlood ColorCategory = iota
	ColorSpark
	ColorGold
	ColorEmber
	ColorGhost
	ColorHeal
)
