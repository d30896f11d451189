package system

import (
	"time"

	"github.com/l1jgo/skills/internal/core/ecs"
	coresys "github.com/l1jgo/skills/internal/core/system"
)

// LifetimeSystem advances every loaded entity's ticks-lived counter once per
// tick. It runs after the scheduler so a tracker poll never sees a sample
// taken in the same tick twice. Phase 3 (PostUpdate).
type LifetimeSystem struct {
	world *ecs.World
}

func NewLifetimeSystem(world *ecs.World) *LifetimeSystem {
	return &LifetimeSystem{world: world}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *LifetimeSystem) Update(_ time.Duration) {
	s.world.Advance()
}
