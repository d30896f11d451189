package handler

import (
	"github.com/l1jgo/skills/internal/config"
	"github.com/l1jgo/skills/internal/core/event"
	"github.com/l1jgo/skills/internal/skills"
	"github.com/l1jgo/skills/internal/tracker"
	"github.com/l1jgo/skills/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all event handlers.
type Deps struct {
	Config  *config.Config
	Log     *zap.Logger
	World   *world.State
	Skills  *skills.Deps
	Tracker *tracker.Registry
}

// RegisterAll subscribes the skill listeners to the bus. They must be
// registered before the world's damage sink so they see damage first.
func RegisterAll(bus *event.Bus, deps *Deps) {
	event.Subscribe(bus, func(ev *event.EntityDamaged) { OnEntityDamaged(ev, deps) })
	event.Subscribe(bus, func(ev *event.ProjectileHit) { OnProjectileHit(ev, deps) })
	event.Subscribe(bus, func(ev *event.EntityDied) { OnEntityDied(ev, deps) })
	event.Subscribe(bus, deps.World.ApplyDamage)
}

// AttachSkills builds the skill managers for a player entering the world.
func AttachSkills(p *world.PlayerInfo, deps *Deps) {
	p.Acrobatics = skills.NewAcrobaticsManager(p, deps.Skills)
	p.Archery = skills.NewArcheryManager(p, deps.Skills)
}
