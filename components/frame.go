package components

import (
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// FrameData is the clock for the current step.
type FrameData struct {
	RealDelta float64 // wall time fed in by the caller
	Delta     float64 // simulation time, zero during hit-stop
	Frozen    bool
	Frame     uint64
	Elapsed   float64
}

var Frame = donburi.NewComponentType[FrameData]()

// RuntimeData carries the per-world collaborators systems need.
type RuntimeData struct {
	Config             *config.Config
	Rand               chance.Source
	Logger             *zap.Logger
	ParallelPerception bool
}

var Runtime = donburi.NewComponentType[RuntimeData]()
