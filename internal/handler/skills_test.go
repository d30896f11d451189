package handler

import (
	"testing"
	"time"

	"github.com/l1jgo/skills/internal/config"
	"github.com/l1jgo/skills/internal/core/ecs"
	"github.com/l1jgo/skills/internal/core/event"
	coresys "github.com/l1jgo/skills/internal/core/system"
	"github.com/l1jgo/skills/internal/data"
	"github.com/l1jgo/skills/internal/skills"
	"github.com/l1jgo/skills/internal/system"
	"github.com/l1jgo/skills/internal/tracker"
	"github.com/l1jgo/skills/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// zeroRoller makes every ability with a positive chance fire.
type zeroRoller struct{}

func (zeroRoller) IntN(int) int { return 0 }

type harness struct {
	deps   *Deps
	bus    *event.Bus
	ecs    *ecs.World
	sched  *coresys.Scheduler
	runner *coresys.Runner
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := zap.NewNop()
	cfg := config.Defaults()
	cfg.Skills.TrackerPollTicks = 4

	w := ecs.NewWorld()
	bus := event.NewBus()
	ws := world.NewState(w, bus, nil, log)
	sched := coresys.NewScheduler()
	reg := tracker.NewRegistry(sched, ws, cfg.Skills.TrackerPollTicks, log)

	h := &harness{
		bus:   bus,
		ecs:   w,
		sched: sched,
		deps: &Deps{
			Config: cfg,
			Log:    log,
			World:  ws,
			Skills: &skills.Deps{
				Config:  cfg,
				Table:   data.DefaultSkillTable(),
				Combat:  ws,
				Rewards: skills.NewProgression(ws, nil, 1, log),
				Arrows:  reg,
				Rand:    zeroRoller{},
				Now:     func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
				Log:     log,
			},
			Tracker: reg,
		},
	}
	RegisterAll(bus, h.deps)

	h.runner = coresys.NewRunner()
	h.runner.Register(system.NewDispatchSystem(bus))
	h.runner.Register(sched)
	h.runner.Register(system.NewLifetimeSystem(w))
	h.runner.Register(system.NewCleanupSystem(w, log))
	return h
}

func (h *harness) addPlayer(name string, level int, loc skills.Location) *world.PlayerInfo {
	profile := skills.NewProfile(name)
	profile.SetLevel(skills.Acrobatics, level)
	profile.SetLevel(skills.Archery, level)
	p := h.deps.World.AddPlayer(profile, loc, language.English)
	p.GrantAll()
	AttachSkills(p, h.deps)
	return p
}

func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.runner.Tick(50 * time.Millisecond)
	}
}

var spawn = skills.Location{World: "world", X: 0, Y: 64, Z: 0}

func TestOnEntityDamaged_Fall(t *testing.T) {
	tests := []struct {
		name      string
		damage    float64
		perms     bool
		want      float64
		cancelled bool
	}{
		{"rolled", 12, true, 5, false},
		{"fully absorbed", 6, true, 0, true},
		{"no permission", 12, false, 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			p := h.addPlayer("acrobat", 1000, spawn)
			if !tt.perms {
				p.Perms = map[skills.Permission]bool{}
			}

			ev := &event.EntityDamaged{Target: p.Entity, Cause: skills.CauseFall, Damage: tt.damage}
			OnEntityDamaged(ev, h.deps)

			assert.InDelta(t, tt.want, ev.Damage, 1e-9)
			assert.Equal(t, tt.cancelled, ev.Cancelled)
		})
	}
}

func TestOnEntityDamaged_RollAwardsXP(t *testing.T) {
	h := newHarness(t)
	p := h.addPlayer("acrobat", 1000, spawn)

	OnEntityDamaged(&event.EntityDamaged{Target: p.Entity, Cause: skills.CauseFall, Damage: 12}, h.deps)

	// 12 damage * roll XP modifier 80
	assert.InDelta(t, 960, p.Profile.XP(skills.Acrobatics), 1e-9)
	assert.True(t, p.Profile.Dirty())
	assert.Contains(t, p.Inbox, "**Rolled**")
}

func TestOnEntityDamaged_Dodge(t *testing.T) {
	h := newHarness(t)
	p := h.addPlayer("acrobat", 1000, spawn)
	mob := h.deps.World.SpawnMob(spawn, 20)

	ev := &event.EntityDamaged{
		Target:  p.Entity,
		Damager: skills.Damager{Kind: skills.DamagerMob, Entity: mob.Entity},
		Cause:   skills.CauseEntityAttack,
		Damage:  10,
	}
	OnEntityDamaged(ev, h.deps)

	assert.InDelta(t, 5, ev.Damage, 1e-9)
	assert.InDelta(t, 1200, p.Profile.XP(skills.Acrobatics), 1e-9)
}

func TestOnEntityDamaged_OwnPetNotDodged(t *testing.T) {
	h := newHarness(t)
	p := h.addPlayer("acrobat", 1000, spawn)
	pet := h.deps.World.SpawnMob(spawn, 20)
	pet.Tamed, pet.Owner = true, p.Entity

	ev := &event.EntityDamaged{
		Target:  p.Entity,
		Damager: skills.Damager{Kind: skills.DamagerTamed, Entity: pet.Entity, Owner: p.Entity},
		Cause:   skills.CauseEntityAttack,
		Damage:  10,
	}
	OnEntityDamaged(ev, h.deps)

	assert.InDelta(t, 10, ev.Damage, 1e-9)
}

func TestOnEntityDamaged_MobTargetIgnored(t *testing.T) {
	h := newHarness(t)
	mob := h.deps.World.SpawnMob(spawn, 20)

	ev := &event.EntityDamaged{Target: mob.Entity, Cause: skills.CauseFall, Damage: 12}
	OnEntityDamaged(ev, h.deps)

	assert.InDelta(t, 12, ev.Damage, 1e-9)
}

func TestOnProjectileHit_Mob(t *testing.T) {
	h := newHarness(t)
	archer := h.addPlayer("archer", 1000, spawn)
	mob := h.deps.World.SpawnMob(skills.Location{World: "world", X: 20, Y: 64, Z: -8}, 40)

	OnProjectileHit(&event.ProjectileHit{
		Shooter:   archer.Entity,
		Target:    mob.Entity,
		FiredFrom: archer.Loc,
		Damage:    6,
	}, h.deps)

	// skill shot: 6 * 200% capped at 9
	assert.InDelta(t, 31, mob.HP, 1e-9)
	assert.Equal(t, 1, h.deps.Tracker.ArrowCount(mob.Entity))
	// distance XP: (20² + 8²) * 0.025
	assert.InDelta(t, 11.6, archer.Profile.XP(skills.Archery), 1e-9)
}

func TestOnProjectileHit_InfiniteArrowNotTracked(t *testing.T) {
	h := newHarness(t)
	archer := h.addPlayer("archer", 1000, spawn)
	mob := h.deps.World.SpawnMob(spawn, 40)

	OnProjectileHit(&event.ProjectileHit{
		Shooter:  archer.Entity,
		Target:   mob.Entity,
		Damage:   6,
		Infinite: true,
	}, h.deps)

	assert.Zero(t, h.deps.Tracker.Len())
}

func TestOnProjectileHit_DazesPlayer(t *testing.T) {
	h := newHarness(t)
	archer := h.addPlayer("archer", 1000, spawn)
	victim := h.addPlayer("victim", 0, skills.Location{World: "world", X: 5, Y: 64, Z: 0})

	OnProjectileHit(&event.ProjectileHit{
		Shooter:   archer.Entity,
		Target:    victim.Entity,
		FiredFrom: archer.Loc,
		Damage:    6,
	}, h.deps)

	require.Len(t, victim.Effects, 1)
	assert.Equal(t, skills.EffectConfusion, victim.Effects[0].Type)
	assert.InDelta(t, 90, float64(victim.Loc.Pitch), 1e-9)
	// skill shot 9 plus daze 4
	assert.InDelta(t, 7, victim.HP, 1e-9)
	assert.Contains(t, victim.Inbox, "Touched Fuzzy. Felt Dizzy.")
	assert.Contains(t, archer.Inbox, "Target was Dazed")
}

func TestOnProjectileHit_PVPDisabled(t *testing.T) {
	h := newHarness(t)
	h.deps.Config.Skills.Archery.PVP = false
	archer := h.addPlayer("archer", 1000, spawn)
	victim := h.addPlayer("victim", 0, spawn)

	OnProjectileHit(&event.ProjectileHit{Shooter: archer.Entity, Target: victim.Entity, Damage: 6}, h.deps)

	assert.InDelta(t, 20, victim.HP, 1e-9)
	assert.Empty(t, victim.Effects)
	assert.Zero(t, h.deps.Tracker.Len())
}

func TestArrowsDropOnDeath(t *testing.T) {
	h := newHarness(t)
	archer := h.addPlayer("archer", 1000, spawn)
	mob := h.deps.World.SpawnMob(skills.Location{World: "world", X: 3, Y: 64, Z: 3}, 10)

	event.Emit(h.bus, &event.ProjectileHit{Shooter: archer.Entity, Target: mob.Entity, FiredFrom: archer.Loc, Damage: 6})
	h.tick(1)
	require.Equal(t, 1, h.deps.Tracker.ArrowCount(mob.Entity))
	require.Equal(t, 1, h.sched.Pending())

	event.Emit(h.bus, &event.EntityDamaged{
		Target:  mob.Entity,
		Damager: skills.Damager{Kind: skills.DamagerPlayer, Entity: archer.Entity},
		Cause:   skills.CauseProjectile,
		Damage:  6,
	})
	h.tick(1) // mob dies, EntityDied queued
	_, alive := h.deps.World.Mob(mob.Entity)
	require.False(t, alive)

	h.tick(1) // EntityDied dispatched
	assert.Zero(t, h.deps.Tracker.Len())
	assert.Zero(t, h.sched.Pending())
	ground := h.deps.World.GroundItems()
	require.Len(t, ground, 1)
	assert.Equal(t, skills.ItemArrow, ground[0].Item)
	assert.Equal(t, 1, ground[0].Count)
}

func TestTrackedEntityForgottenWhenFrozen(t *testing.T) {
	h := newHarness(t)
	archer := h.addPlayer("archer", 1000, spawn)
	mob := h.deps.World.SpawnMob(spawn, 100)

	OnProjectileHit(&event.ProjectileHit{Shooter: archer.Entity, Target: mob.Entity, Damage: 1}, h.deps)
	require.Equal(t, 1, h.deps.Tracker.Len())

	h.tick(8)
	assert.Equal(t, 1, h.deps.Tracker.Len(), "entity still simulated")

	h.ecs.SetFrozen(mob.Entity, true)
	h.tick(8)
	assert.Zero(t, h.deps.Tracker.Len())
	assert.Zero(t, h.sched.Pending())
}

func TestKillingShotStillRunsArchery(t *testing.T) {
	for i := 0; i < 20; i++ {
		h := newHarness(t)
		archer := h.addPlayer("archer", 1000, spawn)
		mob := h.deps.World.SpawnMob(skills.Location{World: "world", X: 10, Y: 64, Z: 0}, 6)

		// the host emits the archery hit first, then the base damage
		event.Emit(h.bus, &event.ProjectileHit{Shooter: archer.Entity, Target: mob.Entity, FiredFrom: archer.Loc, Damage: 6})
		event.Emit(h.bus, &event.EntityDamaged{
			Target:  mob.Entity,
			Damager: skills.Damager{Kind: skills.DamagerPlayer, Entity: archer.Entity},
			Cause:   skills.CauseProjectile,
			Damage:  6,
		})
		h.tick(2)

		_, alive := h.deps.World.Mob(mob.Entity)
		require.False(t, alive, "run %d", i)
		// distance XP: 10² * 0.025
		assert.InDelta(t, 2.5, archer.Profile.XP(skills.Archery), 1e-9, "run %d", i)
		ground := h.deps.World.GroundItems()
		require.Len(t, ground, 1, "run %d", i)
		assert.Equal(t, 1, ground[0].Count)
		assert.Zero(t, h.deps.Tracker.Len())
	}
}
