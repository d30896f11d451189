package system

import (
	"time"

	"github.com/l1jgo/skills/internal/core/ecs"
	coresys "github.com/l1jgo/skills/internal/core/system"
	"go.uber.org/zap"
)

// CleanupSystem destroys entities queued during the tick: dead mobs, spent
// arrows, logged out players. A tracker poll that runs after this sees the
// lookup fail. Phase 5 (Cleanup).
type CleanupSystem struct {
	world     *ecs.World
	log       *zap.Logger
	destroyed uint64
}

func NewCleanupSystem(world *ecs.World, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: world, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	n := s.world.FlushDestroyQueue()
	if n == 0 {
		return
	}
	s.destroyed += uint64(n)
	s.log.Debug("entities destroyed", zap.Int("count", n), zap.Uint64("total", s.destroyed))
}

// Destroyed returns how many entities have been destroyed since start.
func (s *CleanupSystem) Destroyed() uint64 { return s.destroyed }
