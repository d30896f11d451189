package skills

import (
	"math"

	"github.com/l1jgo/skills/internal/core/ecs"
	"github.com/l1jgo/skills/internal/data"
	"go.uber.org/zap"
)

// Notification keys sent by Archery.
const (
	MsgTouchedFuzzy = "Combat.TouchedFuzzy"
	MsgTargetDazed  = "Combat.TargetDazed"
)

// Daze confusion lasts ten seconds.
const (
	dazeEffectTicks     = 20 * 10
	dazeEffectAmplifier = 10
)

// ArcheryManager evaluates the archery abilities for one shooter.
type ArcheryManager struct {
	skillManager
}

func NewArcheryManager(actor Actor, deps *Deps) *ArcheryManager {
	return &ArcheryManager{
		skillManager: skillManager{actor: actor, skill: Archery, deps: deps},
	}
}

func (m *ArcheryManager) table() *data.ArcheryInfo { return &m.deps.Table.Archery }

// CanDaze only applies to player targets.
func (m *ArcheryManager) CanDaze(target Target) bool {
	return target.IsPlayer() && m.actor.HasPermission(PermDaze)
}

func (m *ArcheryManager) CanSkillShot() bool {
	return m.level() >= m.table().SkillShot.IncreaseLevel && m.actor.HasPermission(PermBonusDamage)
}

func (m *ArcheryManager) CanTrackArrows() bool {
	return m.actor.HasPermission(PermArrowRetrieval)
}

// ShouldProcess applies the archery PvP/PvE switches to a hit on target.
func (m *ArcheryManager) ShouldProcess(target Damager) bool {
	return m.shouldProcess(target)
}

// DistanceXPBonus awards XP for hitting a target far from where the arrow was
// fired. Locations in different worlds are incomparable and earn nothing.
func (m *ArcheryManager) DistanceXPBonus(target Target, firedFrom Location) float64 {
	targetLoc := target.Location()
	if firedFrom.World != targetLoc.World {
		return 0
	}
	xp := firedFrom.DistanceSquared(targetLoc) * m.table().DistanceXPMultiplier
	m.applyXPGain(xp)
	return xp
}

// TrackArrows counts the arrow for retrieval when the target dies.
func (m *ArcheryManager) TrackArrows(target Target) bool {
	if m.deps.Arrows == nil || !m.activated(m.table().Retrieve) {
		return false
	}
	m.deps.Arrows.Increment(target.ID())
	return true
}

// Daze spins the defender's view, confuses them, and deals bonus damage.
// It returns the bonus damage dealt, zero when Daze did not fire.
func (m *ArcheryManager) Daze(defender Actor, arrow ecs.EntityID) float64 {
	daze := m.table().Daze
	if !m.activated(daze.Curve) {
		return 0
	}

	loc := defender.Location()
	loc.Pitch = float32(90 - m.deps.roller().IntN(181))
	m.deps.Combat.Teleport(defender.ID(), loc)
	m.deps.Combat.AddEffect(defender.ID(), Effect{
		Type:      EffectConfusion,
		Ticks:     dazeEffectTicks,
		Amplifier: dazeEffectAmplifier,
	})

	if defender.ChatNotifications() {
		defender.SendMessage(MsgTouchedFuzzy)
	}
	m.notify(MsgTargetDazed)

	m.deps.Log.Debug("daze",
		zap.Uint64("shooter", uint64(m.actor.ID())),
		zap.Uint64("defender", uint64(defender.ID())))

	return m.deps.Combat.FakeDamage(arrow, defender.ID(), CauseProjectile, daze.Modifier)
}

// SkillShotBonus is the deterministic bonus for a hit of damage at level.
// The percentage grows one step per IncreaseLevel levels.
func SkillShotBonus(info data.SkillShotInfo, damage float64, level int) float64 {
	if info.IncreaseLevel <= 0 || level < 0 {
		return 0
	}
	steps := level / info.IncreaseLevel
	percent := math.Min(float64(steps)*info.IncreasePercentage, info.MaxBonusPercentage)
	return math.Min(damage*percent, info.MaxBonusDamage)
}

// SkillShot deals the skill shot bonus as a synthetic damage event so other
// combat modifiers recompute against it. It returns the damage dealt.
func (m *ArcheryManager) SkillShot(target Target, damage float64, arrow ecs.EntityID) float64 {
	bonus := SkillShotBonus(m.table().SkillShot, damage, m.level())
	if bonus <= 0 {
		return 0
	}
	return m.deps.Combat.FakeDamage(arrow, target.ID(), CauseProjectile, bonus)
}
