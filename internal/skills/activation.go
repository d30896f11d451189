package skills

import (
	"math/rand"

	"github.com/l1jgo/skills/internal/data"
)

// ActivationChance returns the probability that an ability fires at level.
// It ramps linearly up to maxBonusLevel and stays at maxChance above it.
func ActivationChance(level int, maxChance float64, maxBonusLevel int) float64 {
	if maxBonusLevel <= 0 {
		return 0
	}
	return maxChance * float64(clampLevel(level, maxBonusLevel)) / float64(maxBonusLevel)
}

// ActivationSuccessful expresses the chance in units of scale and succeeds
// when it is strictly greater than IntN(denominator). scale is the base
// activation chance; a denominator below it (the lucky perk) widens the odds.
// The chance is scaled before the division so exact boundaries (e.g. 2500 of
// 10000) are not lost to rounding.
func ActivationSuccessful(level, scale, denominator int, curve data.Curve, rng Roller) bool {
	if scale <= 0 || denominator <= 0 || curve.MaxBonusLevel <= 0 {
		return false
	}
	scaled := curve.MaxChance * float64(scale) * float64(clampLevel(level, curve.MaxBonusLevel)) / float64(curve.MaxBonusLevel)
	return scaled > float64(rng.IntN(denominator))
}

func clampLevel(level, maxBonusLevel int) int {
	if level < 0 {
		return 0
	}
	return min(level, maxBonusLevel)
}

// globalRand adapts math/rand's shared source to Roller.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

// DefaultRoller is the process-wide random source.
var DefaultRoller Roller = globalRand{}
