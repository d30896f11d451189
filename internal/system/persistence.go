package system

import (
	"context"
	"time"

	coresys "github.com/l1jgo/skills/internal/core/system"
	"github.com/l1jgo/skills/internal/skills"
	"github.com/l1jgo/skills/internal/world"
	"go.uber.org/zap"
)

// ProfileStore saves skill profiles. persist.SkillRepo implements it.
type ProfileStore interface {
	SaveProfile(ctx context.Context, p *skills.Profile) error
}

// PersistenceSystem periodically saves dirty skill profiles of online
// players. Phase 4 (Persist).
type PersistenceSystem struct {
	world     *world.State
	store     ProfileStore
	log       *zap.Logger
	tickCount int
	interval  int // save every N ticks
}

func NewPersistenceSystem(ws *world.State, store ProfileStore, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	return &PersistenceSystem{
		world:    ws,
		store:    store,
		log:      log,
		interval: intervalTicks,
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.savePlayers(true)
}

// SaveAllPlayers persists every online player immediately, ignoring dirty
// flags. Called on graceful shutdown.
func (s *PersistenceSystem) SaveAllPlayers() int {
	return s.savePlayers(false)
}

// savePlayers persists profiles and clears the dirty flag of each one that
// saved. A failed save stays dirty and is retried next interval.
func (s *PersistenceSystem) savePlayers(dirtyOnly bool) int {
	count := 0
	s.world.AllPlayers(func(p *world.PlayerInfo) {
		if dirtyOnly && !p.Profile.Dirty() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.store.SaveProfile(ctx, p.Profile); err != nil {
			s.log.Error("save skill profile failed", zap.String("player", p.Name), zap.Error(err))
			return
		}
		p.Profile.ClearDirty()
		count++
	})
	if count > 0 {
		s.log.Debug("skill profiles saved", zap.Int("count", count))
	}
	return count
}
