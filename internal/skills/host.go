package skills

import (
	"time"

	"github.com/l1jgo/skills/internal/core/ecs"
)

// SkillType identifies a skill with its own level and XP.
type SkillType int

const (
	Acrobatics SkillType = iota
	Archery
	skillCount
)

func (s SkillType) String() string {
	switch s {
	case Acrobatics:
		return "acrobatics"
	case Archery:
		return "archery"
	}
	return "unknown"
}

// AllSkills lists every skill type in storage order.
func AllSkills() []SkillType { return []SkillType{Acrobatics, Archery} }

// ParseSkillType is the inverse of SkillType.String.
func ParseSkillType(name string) (SkillType, bool) {
	for _, s := range AllSkills() {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// DamageCause mirrors the host's reason for a damage event.
type DamageCause int

const (
	CauseEntityAttack DamageCause = iota
	CauseProjectile
	CauseFall
	CauseLightning
)

// DamagerKind classifies whoever dealt damage, for PvP/PvE gating.
type DamagerKind int

const (
	DamagerNone DamagerKind = iota
	DamagerMob
	DamagerPlayer
	DamagerTamed
	DamagerLightning
)

// Damager describes the source of an attack.
type Damager struct {
	Kind   DamagerKind
	Entity ecs.EntityID
	Owner  ecs.EntityID // tamer of a DamagerTamed
}

// Permission names a capability the host grants to a player.
type Permission string

const (
	PermDodge          Permission = "skills.acrobatics.dodge"
	PermRoll           Permission = "skills.acrobatics.roll"
	PermGracefulRoll   Permission = "skills.acrobatics.gracefulroll"
	PermDaze           Permission = "skills.archery.daze"
	PermBonusDamage    Permission = "skills.archery.skillshot"
	PermArrowRetrieval Permission = "skills.archery.trackarrows"
)

// Items referenced by ability checks.
const (
	ItemEnderPearl = "ENDER_PEARL"
	ItemArrow      = "ARROW"
)

// EffectType is a host status effect.
type EffectType int

const (
	EffectConfusion EffectType = iota
)

// Effect is a timed status effect request.
type Effect struct {
	Type      EffectType
	Ticks     int
	Amplifier int
}

// Target is any entity an ability can act on.
type Target interface {
	ID() ecs.EntityID
	Location() Location
	IsPlayer() bool
}

// Actor is the player-facing capability surface the managers read from.
// Implementations are owned by the host; every call happens on the game loop.
type Actor interface {
	Target
	SkillLevel(skill SkillType) int
	Health() float64
	IsSneaking() bool
	InsideVehicle() bool
	ItemInHand() string
	BootsHaveFeatherFalling() bool
	HasPermission(perm Permission) bool
	IsLucky(skill SkillType) bool
	ChatNotifications() bool
	RespawnTime() time.Time
	SendMessage(key string, args ...any)
}

// Combat is the host's combat/world mutation surface.
type Combat interface {
	// FakeDamage runs a synthetic secondary damage event and returns the
	// damage that was actually dealt.
	FakeDamage(source, target ecs.EntityID, cause DamageCause, damage float64) float64
	Teleport(id ecs.EntityID, loc Location)
	AddEffect(id ecs.EntityID, eff Effect)
}

// RewardSink accepts XP for an actor. Fire and forget.
type RewardSink interface {
	ApplyXPGain(actor Actor, skill SkillType, xp float64)
}

// ArrowTracker counts arrows stuck in a target for later retrieval.
type ArrowTracker interface {
	Increment(target ecs.EntityID)
}

// Roller is the random source. IntN returns a value in [0, n).
type Roller interface {
	IntN(n int) int
}
