package skills

import (
	"time"

	"github.com/l1jgo/skills/internal/config"
	"github.com/l1jgo/skills/internal/data"
	"go.uber.org/zap"
)

// Deps holds the collaborators shared by every skill manager.
type Deps struct {
	Config   *config.Config
	Table    *data.SkillTable
	Formulas Formulas
	Combat   Combat
	Rewards  RewardSink
	Arrows   ArrowTracker
	Rand     Roller
	Now      func() time.Time
	Log      *zap.Logger
}

func (d *Deps) roller() Roller {
	if d.Rand != nil {
		return d.Rand
	}
	return DefaultRoller
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) formulas() Formulas {
	if d.Formulas != nil {
		return d.Formulas
	}
	return Builtin{}
}

// Outcome is the result of one ability evaluation. Damage equals the input
// when the ability did not activate. XP is what was handed to the reward sink.
type Outcome struct {
	Damage    float64
	XP        float64
	Activated bool
}

// skillManager is the per-actor, per-skill state shared by the managers.
type skillManager struct {
	actor Actor
	skill SkillType
	deps  *Deps
}

func (m *skillManager) level() int {
	return m.actor.SkillLevel(m.skill)
}

// activationChance is the roll denominator. Lucky players draw from a
// smaller range while the chance keeps the base scale, so every chance rises
// by a third.
func (m *skillManager) activationChance() int {
	if m.actor.IsLucky(m.skill) {
		return m.deps.Config.Skills.LuckyActivationChance
	}
	return m.deps.Config.Skills.ActivationChance
}

func (m *skillManager) activated(curve data.Curve) bool {
	base := m.deps.Config.Skills.ActivationChance
	return ActivationSuccessful(m.level(), base, m.activationChance(), curve, m.deps.roller())
}

func (m *skillManager) applyXPGain(xp float64) {
	if xp <= 0 || m.deps.Rewards == nil {
		return
	}
	m.deps.Rewards.ApplyXPGain(m.actor, m.skill, xp)
}

func (m *skillManager) notify(key string) {
	if m.actor.ChatNotifications() {
		m.actor.SendMessage(key)
	}
}

// shouldProcess gates a skill by whether the other party is a player (or a
// player's pet) and the skill's PvP/PvE switches.
func (m *skillManager) shouldProcess(d Damager) bool {
	toggle := m.deps.Config.Skills.Acrobatics
	if m.skill == Archery {
		toggle = m.deps.Config.Skills.Archery
	}
	switch d.Kind {
	case DamagerPlayer, DamagerTamed:
		return toggle.PVP
	default:
		return toggle.PVE
	}
}
