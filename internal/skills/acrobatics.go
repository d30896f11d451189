package skills

import (
	"github.com/l1jgo/skills/internal/data"
	"go.uber.org/zap"
)

// Notification keys sent by Acrobatics.
const (
	MsgDodge        = "Acrobatics.Combat.Proc"
	MsgRoll         = "Acrobatics.Roll.Text"
	MsgGracefulRoll = "Acrobatics.Ability.Proc"
)

// AcrobaticsManager evaluates Dodge and Roll for one player. It lives as long
// as the player is in the world because exploit prevention is path dependent.
type AcrobaticsManager struct {
	skillManager
	exploit exploitGuard
}

func NewAcrobaticsManager(actor Actor, deps *Deps) *AcrobaticsManager {
	return &AcrobaticsManager{
		skillManager: skillManager{actor: actor, skill: Acrobatics, deps: deps},
	}
}

func (m *AcrobaticsManager) table() *data.AcrobaticsInfo { return &m.deps.Table.Acrobatics }

// CanRoll reports whether a fall may be rolled: no ender pearl in hand, no
// suspected exploit, and the roll permission. Note that it advances the
// exploit counter.
func (m *AcrobaticsManager) CanRoll() bool {
	return m.actor.ItemInHand() != ItemEnderPearl && !m.ExploitPrevention() && m.actor.HasPermission(PermRoll)
}

// CanDodge reports whether damage from d may be dodged.
func (m *AcrobaticsManager) CanDodge(d Damager) bool {
	if !m.actor.HasPermission(PermDodge) {
		return false
	}
	if d.Kind == DamagerLightning && m.table().Dodge.LightningDisabled {
		return false
	}
	if d.Kind == DamagerTamed && d.Owner == m.actor.ID() {
		return false // own pet
	}
	return m.shouldProcess(d)
}

// DodgeCheck halves (by the configured modifier) an incoming hit when Dodge
// fires. A dodge that would still be fatal is not attempted.
func (m *AcrobaticsManager) DodgeCheck(damage float64) Outcome {
	dodge := m.table().Dodge
	modified := m.deps.formulas().DodgeDamage(damage, dodge.DamageModifier)

	if m.isFatal(modified) || !m.activated(dodge.Curve) {
		return Outcome{Damage: damage}
	}

	m.notify(MsgDodge)

	// XP is withheld right after a respawn. Kept for parity; the connection
	// between respawning and dodge rewards is unclear.
	var xp float64
	if m.deps.now().Sub(m.actor.RespawnTime()) >= m.deps.Config.Skills.RespawnCooldown {
		xp = damage * dodge.XPModifier
		m.applyXPGain(xp)
	}
	m.deps.Log.Debug("dodge",
		zap.Uint64("actor", uint64(m.actor.ID())),
		zap.Float64("damage", damage),
		zap.Float64("modified", modified))

	return Outcome{Damage: modified, XP: xp, Activated: true}
}

// RollCheck reduces fall damage when Roll fires. Sneaking players with the
// graceful roll permission use the stricter graceful curve instead.
// The fall location is recorded whatever the result.
func (m *AcrobaticsManager) RollCheck(damage float64) Outcome {
	m.exploit.recordFall(m.actor.Location())

	if m.actor.IsSneaking() && m.actor.HasPermission(PermGracefulRoll) {
		return m.gracefulRollCheck(damage)
	}
	return m.roll(damage, m.table().Roll, MsgRoll)
}

func (m *AcrobaticsManager) gracefulRollCheck(damage float64) Outcome {
	return m.roll(damage, m.table().GracefulRoll, MsgGracefulRoll)
}

func (m *AcrobaticsManager) roll(damage float64, info data.RollInfo, msg string) Outcome {
	modified := m.deps.formulas().RollDamage(damage, info.Threshold)

	if !m.isFatal(modified) && m.activated(info.Curve) {
		m.actor.SendMessage(msg)
		xp := m.rollXP(damage, true)
		m.applyXPGain(xp)
		return Outcome{Damage: modified, XP: xp, Activated: true}
	}

	if !m.isFatal(damage) {
		xp := m.rollXP(damage, false)
		m.applyXPGain(xp)
		return Outcome{Damage: damage, XP: xp}
	}
	return Outcome{Damage: damage}
}

// ExploitPrevention reports whether the player looks like they are farming
// fall damage from one spot (or from a vehicle).
func (m *AcrobaticsManager) ExploitPrevention() bool {
	ep := m.deps.Config.ExploitPrevention
	if !ep.Enabled {
		return false
	}
	if m.actor.InsideVehicle() {
		return true
	}
	return m.exploit.check(m.actor.Location(), ep.Radius, ep.MaxTries)
}

// FallTries exposes the exploit counter for diagnostics.
func (m *AcrobaticsManager) FallTries() int { return m.exploit.tries }

// isFatal reports whether damage would leave the actor below one health.
func (m *AcrobaticsManager) isFatal(damage float64) bool {
	return m.actor.Health()-damage < 1
}

func (m *AcrobaticsManager) rollXP(damage float64, rolled bool) float64 {
	t := m.table()
	modifier := t.FallXPModifier
	if rolled {
		modifier = t.RollXPModifier
	}
	xp := damage * modifier
	if m.actor.BootsHaveFeatherFalling() {
		xp *= t.FeatherFallXPModifier
	}
	return xp
}
