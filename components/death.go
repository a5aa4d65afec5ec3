package components

import "github.com/yohamta/donburi"

// DefeatedData marks an enemy that has been beaten. It stops interacting and
// is removed from the world when Timer runs out.
type DefeatedData struct {
	Timer float64
}

var Defeated = donburi.NewComponentType[DefeatedData]()
