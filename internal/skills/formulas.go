package skills

import "math"

// Formulas computes ability magnitudes. The scripting engine implements it to
// let operators override the curves in Lua.
type Formulas interface {
	DodgeDamage(damage, modifier float64) float64
	RollDamage(damage, threshold float64) float64
}

// LevelCurve returns the XP needed to advance from level to level+1.
type LevelCurve interface {
	XPToLevel(level int) float64
}

// Builtin holds the stock formulas.
type Builtin struct{}

// DodgeDamage divides the hit by modifier but never below one point.
func (Builtin) DodgeDamage(damage, modifier float64) float64 {
	return math.Max(damage/modifier, 1.0)
}

// RollDamage subtracts the roll threshold, floored at zero.
func (Builtin) RollDamage(damage, threshold float64) float64 {
	return math.Max(damage-threshold, 0)
}

func (Builtin) XPToLevel(level int) float64 {
	return 1020 + 20*float64(level)
}
