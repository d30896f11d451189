package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Curve is the linear-then-flat activation ramp of a probabilistic ability.
// MaxChance is a probability in [0,1] reached at MaxBonusLevel.
type Curve struct {
	MaxChance     float64
	MaxBonusLevel int
}

type DodgeInfo struct {
	Curve
	DamageModifier    float64 // incoming damage is divided by this
	XPModifier        float64
	LightningDisabled bool
}

type RollInfo struct {
	Curve
	Threshold float64 // damage absorbed by a successful roll
}

type AcrobaticsInfo struct {
	Dodge                 DodgeInfo
	Roll                  RollInfo
	GracefulRoll          RollInfo
	RollXPModifier        float64
	FallXPModifier        float64
	FeatherFallXPModifier float64
}

type SkillShotInfo struct {
	IncreaseLevel      int
	IncreasePercentage float64
	MaxBonusPercentage float64
	MaxBonusDamage     float64
}

type DazeInfo struct {
	Curve
	Modifier float64 // bonus damage dealt by a daze
}

type ArcheryInfo struct {
	SkillShot            SkillShotInfo
	Daze                 DazeInfo
	Retrieve             Curve
	DistanceXPMultiplier float64
}

// SkillTable holds the numeric tunables of every ability.
type SkillTable struct {
	Acrobatics AcrobaticsInfo
	Archery    ArcheryInfo
}

// DefaultSkillTable returns the stock tunables, used when no YAML file is
// configured and as the base the YAML file overlays.
func DefaultSkillTable() *SkillTable {
	return &SkillTable{
		Acrobatics: AcrobaticsInfo{
			Dodge: DodgeInfo{
				Curve:          Curve{MaxChance: 0.20, MaxBonusLevel: 800},
				DamageModifier: 2.0,
				XPModifier:     120,
			},
			Roll: RollInfo{
				Curve:     Curve{MaxChance: 1.0, MaxBonusLevel: 1000},
				Threshold: 7.0,
			},
			GracefulRoll: RollInfo{
				Curve:     Curve{MaxChance: 1.0, MaxBonusLevel: 500},
				Threshold: 14.0,
			},
			RollXPModifier:        80,
			FallXPModifier:        120,
			FeatherFallXPModifier: 2.0,
		},
		Archery: ArcheryInfo{
			SkillShot: SkillShotInfo{
				IncreaseLevel:      50,
				IncreasePercentage: 0.1,
				MaxBonusPercentage: 2.0,
				MaxBonusDamage:     9.0,
			},
			Daze: DazeInfo{
				Curve:    Curve{MaxChance: 0.50, MaxBonusLevel: 1000},
				Modifier: 4.0,
			},
			Retrieve:             Curve{MaxChance: 1.0, MaxBonusLevel: 1000},
			DistanceXPMultiplier: 0.025,
		},
	}
}

// --- YAML loading ---

type curveEntry struct {
	MaxChance     *float64 `yaml:"max_chance"`
	MaxBonusLevel *int     `yaml:"max_bonus_level"`
}

type acrobaticsEntry struct {
	Dodge struct {
		curveEntry        `yaml:",inline"`
		DamageModifier    *float64 `yaml:"damage_modifier"`
		XPModifier        *float64 `yaml:"xp_modifier"`
		LightningDisabled *bool    `yaml:"lightning_disabled"`
	} `yaml:"dodge"`
	Roll struct {
		curveEntry `yaml:",inline"`
		Threshold  *float64 `yaml:"damage_threshold"`
		XPModifier *float64 `yaml:"xp_modifier"`
	} `yaml:"roll"`
	GracefulRoll struct {
		curveEntry `yaml:",inline"`
		Threshold  *float64 `yaml:"damage_threshold"`
	} `yaml:"graceful_roll"`
	FallXPModifier        *float64 `yaml:"fall_xp_modifier"`
	FeatherFallXPModifier *float64 `yaml:"feather_fall_xp_modifier"`
}

type archeryEntry struct {
	SkillShot struct {
		IncreaseLevel      *int     `yaml:"increase_level"`
		IncreasePercentage *float64 `yaml:"increase_percentage"`
		MaxBonusPercentage *float64 `yaml:"max_bonus_percentage"`
		MaxBonusDamage     *float64 `yaml:"max_bonus_damage"`
	} `yaml:"skill_shot"`
	Daze struct {
		curveEntry `yaml:",inline"`
		Modifier   *float64 `yaml:"bonus_damage"`
	} `yaml:"daze"`
	Retrieve             curveEntry `yaml:"retrieve"`
	DistanceXPMultiplier *float64   `yaml:"distance_xp_multiplier"`
}

type skillTableFile struct {
	Acrobatics acrobaticsEntry `yaml:"acrobatics"`
	Archery    archeryEntry    `yaml:"archery"`
}

// LoadSkillTable loads ability tunables from YAML. Keys absent from the file
// keep their DefaultSkillTable value.
func LoadSkillTable(path string) (*SkillTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skills: %w", err)
	}
	var f skillTableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse skills: %w", err)
	}

	t := DefaultSkillTable()
	acro := &t.Acrobatics
	f.Acrobatics.Dodge.apply(&acro.Dodge.Curve)
	set(&acro.Dodge.DamageModifier, f.Acrobatics.Dodge.DamageModifier)
	set(&acro.Dodge.XPModifier, f.Acrobatics.Dodge.XPModifier)
	set(&acro.Dodge.LightningDisabled, f.Acrobatics.Dodge.LightningDisabled)
	f.Acrobatics.Roll.apply(&acro.Roll.Curve)
	set(&acro.Roll.Threshold, f.Acrobatics.Roll.Threshold)
	set(&acro.RollXPModifier, f.Acrobatics.Roll.XPModifier)
	f.Acrobatics.GracefulRoll.apply(&acro.GracefulRoll.Curve)
	set(&acro.GracefulRoll.Threshold, f.Acrobatics.GracefulRoll.Threshold)
	set(&acro.FallXPModifier, f.Acrobatics.FallXPModifier)
	set(&acro.FeatherFallXPModifier, f.Acrobatics.FeatherFallXPModifier)

	arch := &t.Archery
	set(&arch.SkillShot.IncreaseLevel, f.Archery.SkillShot.IncreaseLevel)
	set(&arch.SkillShot.IncreasePercentage, f.Archery.SkillShot.IncreasePercentage)
	set(&arch.SkillShot.MaxBonusPercentage, f.Archery.SkillShot.MaxBonusPercentage)
	set(&arch.SkillShot.MaxBonusDamage, f.Archery.SkillShot.MaxBonusDamage)
	f.Archery.Daze.apply(&arch.Daze.Curve)
	set(&arch.Daze.Modifier, f.Archery.Daze.Modifier)
	f.Archery.Retrieve.apply(&arch.Retrieve)
	set(&arch.DistanceXPMultiplier, f.Archery.DistanceXPMultiplier)

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("skills %s: %w", path, err)
	}
	return t, nil
}

func (e curveEntry) apply(c *Curve) {
	set(&c.MaxChance, e.MaxChance)
	set(&c.MaxBonusLevel, e.MaxBonusLevel)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate rejects tunables that would divide by zero or exceed certainty.
func (t *SkillTable) Validate() error {
	curves := map[string]Curve{
		"acrobatics.dodge":         t.Acrobatics.Dodge.Curve,
		"acrobatics.roll":          t.Acrobatics.Roll.Curve,
		"acrobatics.graceful_roll": t.Acrobatics.GracefulRoll.Curve,
		"archery.daze":             t.Archery.Daze.Curve,
		"archery.retrieve":         t.Archery.Retrieve,
	}
	for name, c := range curves {
		if c.MaxBonusLevel <= 0 {
			return fmt.Errorf("%s: max_bonus_level must be positive", name)
		}
		if c.MaxChance < 0 || c.MaxChance > 1 {
			return fmt.Errorf("%s: max_chance %.3f outside [0,1]", name, c.MaxChance)
		}
	}
	if t.Acrobatics.Dodge.DamageModifier <= 0 {
		return fmt.Errorf("acrobatics.dodge: damage_modifier must be positive")
	}
	if t.Archery.SkillShot.IncreaseLevel <= 0 {
		return fmt.Errorf("archery.skill_shot: increase_level must be positive")
	}
	return nil
}
