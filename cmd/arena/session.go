package main

import (
	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/core"
	"github.com/automoto/ashfall/shared/leveldata"
	"go.uber.org/zap"
)

const (
	respawnDelay  = 2.0
	nextWaveDelay = 1.5
)

// tally counts rewards on their way to the real presenter.
type tally struct {
	core.Presenter
	reward  int
	defeats int
}

func (t *tally) EnemyDefeated(ev core.DefeatEvent) {
	t.reward += ev.Reward
	t.defeats++
	t.Presenter.EnemyDefeated(ev)
}

// session is the outer game around one World: it respawns the player,
// advances waves and feeds in reloaded kind tables.
type session struct {
	world   *core.World
	arena   *leveldata.Arena
	score   *tally
	records *recordStore
	kinds   *config.KindWatcher
	log     *zap.Logger

	respawnDelay  float64
	nextWaveDelay float64

	waiting  float64
	deaths   int
	bestWave int
}

func newSession(world *core.World, arena *leveldata.Arena, score *tally, log *zap.Logger) *session {
	return &session{
		world:         world,
		arena:         arena,
		score:         score,
		log:           log,
		respawnDelay:  respawnDelay,
		nextWaveDelay: nextWaveDelay,
	}
}

func (s *session) start(wave int) error {
	s.bestWave = wave
	return s.world.Init(s.arena, wave)
}

// step runs one frame for the windowed viewer.
func (s *session) step(dt float64, in core.Intent) bool {
	s.world.Step(dt, in)
	return s.afterFrame(dt)
}

// afterFrame runs the lifecycle between Steps. It returns false when the
// session cannot continue.
func (s *session) afterFrame(dt float64) bool {
	s.drainKinds()

	switch {
	case s.world.PlayerDead():
		s.waiting += dt
		if s.waiting < s.respawnDelay {
			return true
		}
		s.deaths++
		s.log.Info("player died, respawning", zap.Int("wave", s.world.Wave()), zap.Int("deaths", s.deaths))
		return s.restart(s.world.Wave())

	case s.world.WaveCleared():
		s.waiting += dt
		if s.waiting < s.nextWaveDelay {
			return true
		}
		next := s.world.Wave() + 1
		if next > s.bestWave {
			s.bestWave = next
		}
		s.log.Info("wave cleared", zap.Int("wave", s.world.Wave()), zap.Int("reward", s.score.reward))
		s.saveRecord()
		return s.restart(next)
	}

	s.waiting = 0
	return true
}

func (s *session) restart(wave int) bool {
	s.waiting = 0
	if err := s.world.Init(s.arena, wave); err != nil {
		s.log.Error("cannot start wave", zap.Int("wave", wave), zap.Error(err))
		return false
	}
	return true
}

func (s *session) drainKinds() {
	if s.kinds == nil {
		return
	}
	for {
		select {
		case kinds, ok := <-s.kinds.Tables:
			if !ok {
				s.kinds = nil
				return
			}
			s.world.SetKinds(kinds)
			s.log.Info("kind table reloaded", zap.Int("kinds", len(kinds)))
		case err, ok := <-s.kinds.Errors:
			if !ok {
				s.kinds = nil
				return
			}
			s.log.Warn("kind table reload failed", zap.Error(err))
		default:
			return
		}
	}
}

func (s *session) saveRecord() {
	saved, err := s.records.Offer(Records{BestWave: s.bestWave, BestReward: s.score.reward})
	if err != nil {
		s.log.Warn("could not save records", zap.Error(err))
		return
	}
	if saved {
		s.log.Info("new best", zap.Int("wave", s.bestWave), zap.Int("reward", s.score.reward))
	}
}
