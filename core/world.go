package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/ashfall/components"
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/automoto/ashfall/shared/leveldata"
	"github.com/automoto/ashfall/systems"
	"github.com/automoto/ashfall/systems/factory"
	"github.com/automoto/ashfall/tags"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// ErrNotInitialised is returned by calls that need a live world.
var ErrNotInitialised = errors.New("world is not initialised")

const (
	ringJitter   = 30.0 // degrees either side of an even ring slot
	ringAttempts = 8
)

// World is one combat simulation. It owns its entity store, tuning tables
// and random source; nothing is shared between Worlds, so several can run
// side by side.
type World struct {
	id        uuid.UUID
	cfg       *config.Config
	src       chance.Source
	log       *zap.Logger
	presenter Presenter
	parallel  bool

	world donburi.World
	arena *leveldata.Arena
	wave  int

	pending      [config.ActionCount]bool
	pendingFlick int
}

// Option configures a World.
type Option func(*World)

func WithPresenter(p Presenter) Option {
	return func(w *World) {
		if p != nil {
			w.presenter = p
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithSource injects the random source every AI roll draws from.
func WithSource(src chance.Source) Option {
	return func(w *World) {
		if src != nil {
			w.src = src
		}
	}
}

// WithParallelPerception fans the sight sweep out across goroutines once
// enough enemies are alive.
func WithParallelPerception(on bool) Option {
	return func(w *World) {
		w.parallel = on
	}
}

// NewWorld returns an empty World. A nil cfg uses config.Default. Call Init
// before stepping it.
func NewWorld(cfg *config.Config, opts ...Option) *World {
	if cfg == nil {
		cfg = config.Default()
	}
	w := &World{
		id:        uuid.New(),
		cfg:       cfg,
		src:       chance.NewSeeded(1),
		log:       zap.NewNop(),
		presenter: NopPresenter{},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(zap.Stringer("world", w.id))
	return w
}

func (w *World) ID() uuid.UUID { return w.id }

func (w *World) Config() *config.Config { return w.cfg }

// Wave is the index of the wave the world was last initialised with.
func (w *World) Wave() int { return w.wave }

// SetKinds swaps in a new enemy kind table for subsequent Inits. Enemies
// already spawned keep the kinds they were created from.
func (w *World) SetKinds(kinds config.KindTable) {
	next := *w.cfg
	next.Kinds = kinds
	w.cfg = &next
	w.log.Debug("kind table replaced", zap.Strings("kinds", kinds.IDs()))
}

// Init rebuilds the world from scratch for the given arena and wave. A nil
// arena is an open square of the configured size. Unknown enemy kinds are
// reported before anything is built.
func (w *World) Init(arena *leveldata.Arena, wave int) error {
	if arena == nil {
		arena = leveldata.Open(w.cfg.Arena.HalfExtent)
	}
	if err := arena.Validate(); err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	if wave < 0 {
		wave = 0
	}

	useSpawns := wave == 0 && len(arena.EnemySpawns) > 0
	kinds, err := w.waveKinds(arena, wave, useSpawns)
	if err != nil {
		return err
	}

	world := donburi.NewWorld()
	factory.CreateClock(world, components.RuntimeData{
		Config:             w.cfg,
		Rand:               w.src,
		Logger:             w.log,
		ParallelPerception: w.parallel,
	})
	factory.CreateSpace(world, arena.HalfExtent, w.cfg.Arena.BoundaryPadding, w.cfg.Arena.CellSize)
	for _, ob := range arena.Obstacles {
		factory.CreateObstacle(world, components.Obstacle{Position: ob.Position, Radius: ob.Radius})
	}
	factory.CreatePlayer(world, w.cfg, arena.PlayerSpawn, arena.PlayerFacing)

	w.world = world
	w.arena = arena
	w.wave = wave
	w.pending = [config.ActionCount]bool{}
	w.pendingFlick = 0

	if useSpawns {
		for i, sp := range arena.EnemySpawns {
			factory.CreateEnemy(world, w.cfg, kinds[i], sp.Position, sp.Facing, w.src)
		}
	} else {
		w.spawnRing(kinds)
	}

	w.log.Info("world initialised",
		zap.Int("wave", wave),
		zap.Int("enemies", len(kinds)),
		zap.Int("obstacles", len(arena.Obstacles)),
		zap.Bool("map_spawns", useSpawns),
	)
	return nil
}

func (w *World) waveKinds(arena *leveldata.Arena, wave int, useSpawns bool) ([]*config.EnemyKind, error) {
	var kinds []*config.EnemyKind
	if useSpawns {
		for _, sp := range arena.EnemySpawns {
			k, err := w.cfg.Kinds.Lookup(sp.Kind)
			if err != nil {
				return nil, fmt.Errorf("arena spawn: %w", err)
			}
			kinds = append(kinds, k)
		}
		return kinds, nil
	}
	for _, entry := range w.cfg.Wave(wave).Entries {
		k, err := w.cfg.Kinds.Lookup(entry.Kind)
		if err != nil {
			return nil, fmt.Errorf("wave %d: %w", wave, err)
		}
		for i := 0; i < entry.Count; i++ {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

// spawnRing spreads kinds evenly around the player spawn, jittering each
// slot and stepping off obstacles. Everyone faces the player.
func (w *World) spawnRing(kinds []*config.EnemyKind) {
	if len(kinds) == 0 {
		return
	}
	centre := w.arena.PlayerSpawn
	slot := 360.0 / float64(len(kinds))
	for i, k := range kinds {
		radius := w.cfg.Movement.ActorRadius * k.Scale
		limit := math.Max(w.arena.HalfExtent-radius, 0)

		var pos gamemath.Vec3
		for attempt := 0; attempt < ringAttempts; attempt++ {
			yaw := slot*float64(i) + chance.Range(w.src, -ringJitter, ringJitter)
			pos = centre.Add(gamemath.FacingVector(yaw).Scale(w.cfg.Arena.SpawnRadius))
			pos.X = gamemath.Clamp(pos.X, -limit, limit)
			pos.Z = gamemath.Clamp(pos.Z, -limit, limit)
			if w.clearOfObstacles(pos, radius) {
				break
			}
		}
		facing := gamemath.YawOf(centre.Sub(pos))
		factory.CreateEnemy(w.world, w.cfg, k, pos, facing, w.src)
	}
	w.log.Debug("wave spawned", zap.Int("wave", w.wave), zap.Int("count", len(kinds)))
}

func (w *World) clearOfObstacles(pos gamemath.Vec3, radius float64) bool {
	for _, ob := range w.arena.Obstacles {
		if gamemath.FlatDistance(pos, ob.Position) < ob.Radius+radius {
			return false
		}
	}
	return true
}

// SpawnEnemy adds one enemy of kind to the running world.
func (w *World) SpawnEnemy(kind string, pos gamemath.Vec3, facing float64) error {
	if w.world == nil {
		return ErrNotInitialised
	}
	k, err := w.cfg.Kinds.Lookup(kind)
	if err != nil {
		return err
	}
	factory.CreateEnemy(w.world, w.cfg, k, pos, facing, w.src)
	return nil
}

// Step advances the simulation by dt seconds of wall time. During a
// hit-stop only the freeze timer moves; button presses made meanwhile are
// held and delivered on the first live frame.
func (w *World) Step(dt float64, in Intent) {
	if w.world == nil {
		return
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	clock, ok := components.Frame.First(w.world)
	if !ok {
		return
	}
	components.Frame.Get(clock).RealDelta = dt
	systems.UpdateClock(w.world)

	frozen := components.Frame.Get(clock).Frozen
	w.applyIntent(in, frozen)

	if !frozen {
		systems.UpdatePlayerSnapshot(w.world)
		systems.UpdatePerception(w.world)
		systems.UpdateEnemies(w.world)
		systems.UpdatePlayer(w.world)
		systems.UpdateActions(w.world)
		systems.UpdateHits(w.world)
		systems.UpdateCombat(w.world)
		systems.UpdateDefeated(w.world)
		systems.UpdateInputLatch(w.world)
	}

	flush(systems.EffectsOf(w.world), w.presenter)
}

func (w *World) applyIntent(in Intent, frozen bool) {
	player, ok := systems.PlayerEntry(w.world)
	if !ok {
		return
	}
	input := components.Input.Get(player)
	input.Move = in.Move
	input.AimYaw = in.AimYaw

	if frozen {
		for i, down := range in.Buttons {
			w.pending[i] = w.pending[i] || down
		}
		if in.Flick != 0 {
			w.pendingFlick = in.Flick
		}
		return
	}

	for i, down := range in.Buttons {
		input.Current[i] = down || w.pending[i]
	}
	input.Flick = in.Flick
	if input.Flick == 0 {
		input.Flick = w.pendingFlick
	}
	w.pending = [config.ActionCount]bool{}
	w.pendingFlick = 0
}

// Teardown drops every entity. Step is a no-op until the next Init.
func (w *World) Teardown() {
	if w.world == nil {
		return
	}
	w.world = nil
	w.arena = nil
	w.log.Info("world torn down", zap.Int("wave", w.wave))
}

// PlayerDead reports a player who has run out of health, or no player at all.
func (w *World) PlayerDead() bool {
	if w.world == nil {
		return false
	}
	p, ok := systems.PlayerEntry(w.world)
	if !ok {
		return true
	}
	return components.Player.Get(p).Dead || !components.Resources.Get(p).Alive()
}

// WaveCleared reports that every enemy of the wave has been defeated.
func (w *World) WaveCleared() bool {
	if w.world == nil {
		return false
	}
	cleared := true
	tags.Enemy.Each(w.world, func(e *donburi.Entry) {
		if !e.HasComponent(components.Defeated) {
			cleared = false
		}
	})
	return cleared
}

// State copies out what an outer game needs to draw and drive the world.
func (w *World) State() State {
	if w.world == nil {
		return State{Wave: w.wave}
	}
	s := State{Wave: w.wave}
	if clock, ok := components.Frame.First(w.world); ok {
		f := components.Frame.Get(clock)
		s.Frame, s.Elapsed, s.Frozen = f.Frame, f.Elapsed, f.Frozen
	}
	if w.arena != nil {
		s.HalfExtent = w.arena.HalfExtent
		s.Obstacles = append([]leveldata.Obstacle(nil), w.arena.Obstacles...)
	}

	var lock donburi.Entity
	locked := false
	if p, ok := systems.PlayerEntry(w.world); ok {
		data := components.Player.Get(p)
		s.HasPlayer = true
		s.Player = PlayerState{
			ActorState:        actorState(p),
			Flasks:            data.Flasks,
			Dead:              data.Dead,
			Sprinting:         data.Sprinting,
			LockTarget:        -1,
			PerfectDodgeTimer: data.PerfectDodgeTimer,
			RiposteTimer:      data.RiposteTimer,
		}
		if data.LockTarget != nil && data.LockTarget.Valid() {
			lock, locked = data.LockTarget.Entity(), true
		}
	}

	tags.Enemy.Each(w.world, func(e *donburi.Entry) {
		enemy := components.Enemy.Get(e)
		es := EnemyState{
			ActorState: actorState(e),
			AI:         enemy.AIState,
			Defeated:   e.HasComponent(components.Defeated),
		}
		if enemy.Kind != nil {
			es.Kind, es.Name = enemy.Kind.ID, enemy.Kind.Name
		}
		if locked && e.Entity() == lock {
			s.Player.LockTarget = len(s.Enemies)
		}
		s.Enemies = append(s.Enemies, es)
	})
	return s
}

func actorState(e *donburi.Entry) ActorState {
	physics := components.Physics.Get(e)
	res := components.Resources.Get(e)
	action := components.Action.Get(e)
	return ActorState{
		Position:     physics.Position,
		Facing:       physics.Facing,
		Radius:       physics.Radius,
		Health:       res.Health,
		MaxHealth:    res.MaxHealth,
		Stamina:      res.Stamina,
		MaxStamina:   res.MaxStamina,
		Poise:        res.Poise,
		MaxPoise:     res.MaxPoise,
		Action:       action.State,
		Attack:       action.Attack.Kind,
		Progress:     action.Progress(),
		Invulnerable: action.Invulnerable(),
		SwingYaw:     action.SwingYaw,
		SwingPitch:   action.SwingPitch,
	}
}
