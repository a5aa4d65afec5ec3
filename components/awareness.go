package components

import (
	"github.com/automoto/ashfall/config"
	"github.com/looplab/fsm"
)

// Awareness events are named after the state they lead to.
const (
	EventPatrol  = "to_patrol"
	EventAlert   = "to_alert"
	EventChase   = "to_chase"
	EventSearch  = "to_search"
	EventStagger = "to_staggered"
)

// NewAwareness builds the legal awareness transitions for an enemy. A
// patrolling enemy has to spot the player before it can search for them.
func NewAwareness(initial config.AIState) *fsm.FSM {
	patrol := string(config.AIPatrol)
	alert := string(config.AIAlert)
	chase := string(config.AIChase)
	search := string(config.AISearch)
	staggered := string(config.AIStaggered)

	return fsm.NewFSM(
		string(initial),
		fsm.Events{
			{Name: EventPatrol, Src: []string{alert, chase, search, staggered}, Dst: patrol},
			{Name: EventAlert, Src: []string{chase, search, staggered}, Dst: alert},
			{Name: EventChase, Src: []string{patrol, alert, search, staggered}, Dst: chase},
			{Name: EventSearch, Src: []string{alert, chase, staggered}, Dst: search},
			{Name: EventStagger, Src: []string{patrol, alert, chase, search}, Dst: staggered},
		},
		fsm.Callbacks{},
	)
}

// AwarenessEvent returns the event that leads to s.
func AwarenessEvent(s config.AIState) string {
	return "to_" + string(s)
}
