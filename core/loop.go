package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// GameLoop drives a World at a fixed tick rate without any window. In
// realtime mode it paces itself with a ticker; otherwise it steps as fast as
// it can, which is what tests and batch runs want.
type GameLoop struct {
	world    *World
	intents  IntentSource
	tickRate int
	log      *zap.Logger

	realtime  bool
	maxFrames uint64
	onFrame   func(frame uint64, state State) bool

	frames uint64
}

// LoopOption configures a GameLoop.
type LoopOption func(*GameLoop)

// Realtime paces the loop against the wall clock.
func Realtime() LoopOption {
	return func(g *GameLoop) { g.realtime = true }
}

// MaxFrames stops the loop after n frames. Zero runs until cancelled.
func MaxFrames(n uint64) LoopOption {
	return func(g *GameLoop) { g.maxFrames = n }
}

// OnFrame is called after every step. Returning false stops the loop.
func OnFrame(fn func(frame uint64, state State) bool) LoopOption {
	return func(g *GameLoop) { g.onFrame = fn }
}

func LoopLogger(l *zap.Logger) LoopOption {
	return func(g *GameLoop) {
		if l != nil {
			g.log = l
		}
	}
}

func NewGameLoop(world *World, intents IntentSource, tickRate int, opts ...LoopOption) *GameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	if intents == nil {
		intents = IntentFunc(func(uint64, State) Intent { return Intent{} })
	}
	g := &GameLoop{
		world:    world,
		intents:  intents,
		tickRate: tickRate,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Frames is the number of steps run so far.
func (g *GameLoop) Frames() uint64 { return g.frames }

// Run steps the world until ctx is done, the frame limit is reached or the
// frame hook asks to stop. It returns ctx.Err() only when cancelled.
func (g *GameLoop) Run(ctx context.Context) error {
	dt := 1.0 / float64(g.tickRate)

	var tick <-chan time.Time
	if g.realtime {
		ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	g.log.Info("game loop started", zap.Int("tick_rate", g.tickRate), zap.Bool("realtime", g.realtime))
	defer func() {
		g.log.Info("game loop stopped", zap.Uint64("frames", g.frames))
	}()

	state := g.world.State()
	for {
		if g.maxFrames > 0 && g.frames >= g.maxFrames {
			return nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		g.world.Step(dt, g.intents.Next(g.frames, state))
		g.frames++
		state = g.world.State()

		if g.onFrame != nil && !g.onFrame(g.frames, state) {
			return nil
		}
	}
}
