package main

import (
	"context"
	"fmt"

	"github.com/l1jgo/skills/internal/core/event"
	"github.com/l1jgo/skills/internal/handler"
	"github.com/l1jgo/skills/internal/skills"
	"github.com/l1jgo/skills/internal/world"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	demoFallEvery  = 40  // ticks between acrobat falls
	demoShotEvery  = 20  // ticks between arrows at the mob
	demoDuelEvery  = 200 // ticks between arrows at the acrobat
	demoMobHealth  = 40
	demoFallDamage = 12
	demoArrowDmg   = 6
)

// demoDriver plays two scripted players against each other and a mob so the
// skill listeners run without a client connection.
type demoDriver struct {
	deps    *handler.Deps
	bus     *event.Bus
	archer  *world.PlayerInfo
	acrobat *world.PlayerInfo
	mob     *world.MobInfo
}

func newDemoDriver(ctx context.Context, deps *handler.Deps, store profileStore, bus *event.Bus, lang language.Tag) (*demoDriver, error) {
	origin := skills.Location{World: "world", X: 0, Y: 64, Z: 0}
	d := &demoDriver{deps: deps, bus: bus}

	for _, pl := range []struct {
		name string
		dst  **world.PlayerInfo
		loc  skills.Location
	}{
		{"archer", &d.archer, origin},
		{"acrobat", &d.acrobat, skills.Location{World: "world", X: 12, Y: 64, Z: 5}},
	} {
		profile, err := store.LoadProfile(ctx, pl.name)
		if err != nil {
			return nil, fmt.Errorf("load profile %s: %w", pl.name, err)
		}
		if profile.Level(skills.Acrobatics) == 0 && profile.Level(skills.Archery) == 0 {
			profile.SetLevel(skills.Acrobatics, 250)
			profile.SetLevel(skills.Archery, 250)
		}
		p := deps.World.AddPlayer(profile, pl.loc, lang)
		p.GrantAll()
		handler.AttachSkills(p, deps)
		*pl.dst = p
	}

	event.Subscribe(bus, func(ev *event.FakeDamage) {
		deps.Log.Debug("bonus damage",
			zap.Uint64("target", uint64(ev.Target)),
			zap.Float64("damage", ev.Damage))
	})
	event.Subscribe(bus, func(ev *event.PlayerRespawned) {
		if p, ok := deps.World.Player(ev.Player); ok {
			deps.Log.Info("player respawned", zap.String("player", p.Name))
		}
	})

	d.spawnMob()
	deps.Log.Info("demo players online", zap.Int("players", deps.World.PlayerCount()))
	return d, nil
}

func (d *demoDriver) spawnMob() {
	d.mob = d.deps.World.SpawnMob(skills.Location{World: "world", X: 20, Y: 64, Z: -8}, demoMobHealth)
}

// step emits this tick's scripted events. They are dispatched next tick.
func (d *demoDriver) step(tick uint64) {
	if _, alive := d.deps.World.Mob(d.mob.Entity); !alive {
		d.spawnMob()
	}

	if tick%demoFallEvery == 0 {
		event.Emit(d.bus, &event.EntityDamaged{
			Target: d.acrobat.Entity,
			Cause:  skills.CauseFall,
			Damage: demoFallDamage,
		})
	}
	if tick%demoShotEvery == 0 {
		d.shoot(d.mob)
	}
	if tick%demoDuelEvery == 0 {
		d.shoot(d.acrobat)
	}
}

func (d *demoDriver) shoot(target skills.Target) {
	arrow := d.deps.World.SpawnArrow()
	event.Emit(d.bus, &event.ProjectileHit{
		Shooter:    d.archer.Entity,
		Target:     target.ID(),
		Projectile: arrow,
		FiredFrom:  d.archer.Loc,
		Damage:     demoArrowDmg,
	})
	event.Emit(d.bus, &event.EntityDamaged{
		Target:  target.ID(),
		Damager: skills.Damager{Kind: skills.DamagerPlayer, Entity: d.archer.Entity},
		Cause:   skills.CauseProjectile,
		Damage:  demoArrowDmg,
	})
}
