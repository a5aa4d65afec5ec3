package config

// ActionState is the single action an actor is committed to. Keeping it in
// one field makes the exclusive states exclusive by construction.
type ActionState int

const (
	ActionIdle ActionState = iota
	ActionAttacking
	ActionDodging
	ActionBlocking
	ActionParrying
	ActionHealing
	ActionStaggered
)

var actionStateNames = [...]string{"idle", "attacking", "dodging", "blocking", "parrying", "healing", "staggered"}

func (s ActionState) String() string {
	if s < 0 || int(s) >= len(actionStateNames) {
		return "unknown"
	}
	return actionStateNames[s]
}

// StaggerCause records why an actor is staggered.
type StaggerCause int

const (
	CauseNone StaggerCause = iota
	CausePoiseBreak
	CauseParried
	CauseFlinch
)

// AttackKind selects swing timing and damage.
type AttackKind int

const (
	AttackNone AttackKind = iota
	AttackLight1
	AttackLight2
	AttackLight3
	AttackHeavy
	AttackCombo
)

var attackKindNames = [...]string{"none", "light-1", "light-2", "light-3", "heavy", "combo"}

func (k AttackKind) String() string {
	if k < 0 || int(k) >= len(attackKindNames) {
		return "unknown"
	}
	return attackKindNames[k]
}

// LightAttack returns the light attack for a combo step in 1..3.
func LightAttack(step int) AttackKind {
	switch step {
	case 2:
		return AttackLight2
	case 3:
		return AttackLight3
	default:
		return AttackLight1
	}
}

// AIState is an enemy's awareness of the player. The values double as
// looplab/fsm state names.
type AIState string

const (
	AIPatrol    AIState = "patrol"
	AIAlert     AIState = "alert"
	AIChase     AIState = "chase"
	AISearch    AIState = "search"
	AIStaggered AIState = "staggered"
)

// BehaviorID selects the decision strategy for an enemy kind.
type BehaviorID string

const (
	BehaviorGrunt BehaviorID = "grunt"
	BehaviorTank  BehaviorID = "tank"
	BehaviorAgile BehaviorID = "agile"
	BehaviorBoss  BehaviorID = "boss"
)

// Valid reports whether b names a known behavior.
func (b BehaviorID) Valid() bool {
	switch b {
	case BehaviorGrunt, BehaviorTank, BehaviorAgile, BehaviorBoss:
		return true
	}
	return false
}

// Severity grades a resolved hit for feedback requests.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityBlocked
	SeverityLight
	SeverityHeavy
	SeverityCritical
	SeverityBreak
	SeverityParry
	SeverityPerfectDodge
)

var severityNames = [...]string{"none", "blocked", "light", "heavy", "critical", "break", "parry", "perfect-dodge"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}
