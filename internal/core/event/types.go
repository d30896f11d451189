package event

import (
	"github.com/l1jgo/skills/internal/core/ecs"
	"github.com/l1jgo/skills/internal/skills"
)

// EntityDamaged is emitted by the host before damage is applied. Listeners
// may lower Damage or set Cancelled; the world applies what is left.
type EntityDamaged struct {
	Target    ecs.EntityID
	Damager   skills.Damager
	Cause     skills.DamageCause
	Damage    float64
	Cancelled bool
}

// ProjectileHit is emitted when an arrow fired by Shooter strikes Target.
// FiredFrom is the shooter's location at launch.
type ProjectileHit struct {
	Shooter    ecs.EntityID
	Target     ecs.EntityID
	Projectile ecs.EntityID
	FiredFrom  skills.Location
	Damage     float64
	Infinite   bool // fired from an Infinity bow, cannot be retrieved
}

// FakeDamage records a synthetic secondary damage computation (skill shot,
// daze) layered on top of an already processed hit.
type FakeDamage struct {
	Source ecs.EntityID
	Target ecs.EntityID
	Cause  skills.DamageCause
	Damage float64
}

// EntityDied is emitted when a mob or player reaches zero health.
type EntityDied struct {
	Entity   ecs.EntityID
	Location skills.Location
}

// PlayerRespawned is emitted after a dead player re-enters the world.
type PlayerRespawned struct {
	Player ecs.EntityID
}
