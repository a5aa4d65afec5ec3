package config

// ActionID represents a logical player action fed in as an intent.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionAttack
	ActionDodge
	ActionBlock
	ActionParry
	ActionHeal
	ActionJump
	ActionSprint
	ActionLockOn
	ActionCount // Must be last - used for array sizing
)
