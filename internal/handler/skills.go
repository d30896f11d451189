package handler

import (
	"github.com/l1jgo/skills/internal/core/event"
	"github.com/l1jgo/skills/internal/skills"
	"github.com/l1jgo/skills/internal/world"
	"go.uber.org/zap"
)

// OnEntityDamaged applies Roll to falls and Dodge to attacks on players.
func OnEntityDamaged(ev *event.EntityDamaged, deps *Deps) {
	if ev.Cancelled || ev.Damage <= 0 {
		return
	}
	p, ok := deps.World.Player(ev.Target)
	if !ok {
		return // mobs have no skills
	}

	switch ev.Cause {
	case skills.CauseFall:
		if !p.Acrobatics.CanRoll() {
			return
		}
		out := p.Acrobatics.RollCheck(ev.Damage)
		ev.Damage = out.Damage
		if ev.Damage == 0 {
			ev.Cancelled = true
		}
	case skills.CauseEntityAttack, skills.CauseProjectile, skills.CauseLightning:
		if !p.Acrobatics.CanDodge(ev.Damager) {
			return
		}
		ev.Damage = p.Acrobatics.DodgeCheck(ev.Damage).Damage
	}
}

// OnProjectileHit runs the shooter's archery abilities against the target.
func OnProjectileHit(ev *event.ProjectileHit, deps *Deps) {
	shooter, ok := deps.World.Player(ev.Shooter)
	if !ok {
		return // mob archers have no skills
	}
	target, ok := deps.World.Target(ev.Target)
	if !ok {
		deps.Log.Warn("projectile target vanished",
			zap.String("shooter", shooter.Name),
			zap.Uint64("target", uint64(ev.Target)))
		return
	}
	if !shooter.Archery.ShouldProcess(damagerOf(target)) {
		return
	}

	if shooter.Archery.CanSkillShot() {
		shooter.Archery.SkillShot(target, ev.Damage, ev.Projectile)
	}
	if defender, isPlayer := target.(*world.PlayerInfo); isPlayer && shooter.Archery.CanDaze(target) {
		shooter.Archery.Daze(defender, ev.Projectile)
	}
	if !ev.Infinite && shooter.Archery.CanTrackArrows() {
		shooter.Archery.TrackArrows(target)
	}
	shooter.Archery.DistanceXPBonus(target, ev.FiredFrom)
}

// OnEntityDied drops the arrows tracked in a dead entity.
func OnEntityDied(ev *event.EntityDied, deps *Deps) {
	n := deps.Tracker.RetrieveArrows(ev.Entity)
	if n == 0 {
		return
	}
	deps.World.DropItems(ev.Location, skills.ItemArrow, n)
	deps.Log.Debug("arrows retrieved",
		zap.Uint64("entity", uint64(ev.Entity)),
		zap.Int("count", n))
}

// damagerOf classifies a target for the PvP/PvE switches.
func damagerOf(t skills.Target) skills.Damager {
	switch v := t.(type) {
	case *world.PlayerInfo:
		return skills.Damager{Kind: skills.DamagerPlayer, Entity: v.Entity}
	case *world.MobInfo:
		if v.Tamed {
			return skills.Damager{Kind: skills.DamagerTamed, Entity: v.Entity, Owner: v.Owner}
		}
		return skills.Damager{Kind: skills.DamagerMob, Entity: v.Entity}
	}
	return skills.Damager{}
}
