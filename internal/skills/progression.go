package skills

import (
	"github.com/l1jgo/skills/internal/core/ecs"
	"go.uber.org/zap"
)

// MsgLevelUp is sent with (skill name, levels gained, new level).
const MsgLevelUp = "Skills.LevelUp"

// Profile is a player's persistent skill state.
type Profile struct {
	Name   string
	levels [skillCount]int
	xp     [skillCount]float64
	dirty  bool
}

func NewProfile(name string) *Profile {
	return &Profile{Name: name}
}

func (p *Profile) Level(s SkillType) int  { return p.levels[s] }
func (p *Profile) XP(s SkillType) float64 { return p.xp[s] }
func (p *Profile) Dirty() bool            { return p.dirty }
func (p *Profile) ClearDirty()            { p.dirty = false }

// Restore sets stored values without marking the profile dirty.
func (p *Profile) Restore(s SkillType, level int, xp float64) {
	p.levels[s] = level
	p.xp[s] = xp
}

func (p *Profile) SetLevel(s SkillType, level int) {
	p.levels[s] = max(level, 0)
	p.dirty = true
}

// AddXP accumulates xp and levels up while the pool covers the next level.
// It returns the number of levels gained.
func (p *Profile) AddXP(s SkillType, xp float64, curve LevelCurve) int {
	p.xp[s] += xp
	p.dirty = true
	gained := 0
	for {
		need := curve.XPToLevel(p.levels[s])
		if need <= 0 || p.xp[s] < need {
			return gained
		}
		p.xp[s] -= need
		p.levels[s]++
		gained++
	}
}

// Profiles resolves the profile of an in-world player.
type Profiles interface {
	Profile(id ecs.EntityID) (*Profile, bool)
}

// Progression is the RewardSink that turns XP into levels.
type Progression struct {
	profiles Profiles
	curve    LevelCurve
	rate     float64
	log      *zap.Logger
}

func NewProgression(profiles Profiles, curve LevelCurve, rate float64, log *zap.Logger) *Progression {
	if curve == nil {
		curve = Builtin{}
	}
	return &Progression{profiles: profiles, curve: curve, rate: rate, log: log}
}

func (g *Progression) ApplyXPGain(actor Actor, skill SkillType, xp float64) {
	p, ok := g.profiles.Profile(actor.ID())
	if !ok {
		g.log.Warn("xp for unknown player",
			zap.Uint64("actor", uint64(actor.ID())),
			zap.Stringer("skill", skill))
		return
	}
	gained := p.AddXP(skill, xp*g.rate, g.curve)
	if gained > 0 {
		actor.SendMessage(MsgLevelUp, skill.String(), gained, p.Level(skill))
		g.log.Info("skill level up",
			zap.String("player", p.Name),
			zap.Stringer("skill", skill),
			zap.Int("level", p.Level(skill)))
	}
}
