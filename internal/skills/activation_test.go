package skills

import (
	"testing"

	"github.com/l1jgo/skills/internal/data"
	"github.com/stretchr/testify/assert"
)

func TestActivationChance_MonotonicAndCapped(t *testing.T) {
	const maxChance, bonusLevel = 0.5, 1000
	prev := -1.0
	for level := 0; level <= 2*bonusLevel; level += 7 {
		c := ActivationChance(level, maxChance, bonusLevel)
		assert.GreaterOrEqual(t, c, prev, "level %d", level)
		if level >= bonusLevel {
			assert.Equal(t, maxChance, c, "level %d", level)
		}
		prev = c
	}
	assert.Equal(t, 0.0, ActivationChance(-5, maxChance, bonusLevel))
	assert.Equal(t, 0.0, ActivationChance(10, maxChance, 0))
}

func TestActivationSuccessful_Boundary(t *testing.T) {
	curve := data.Curve{MaxChance: 0.5, MaxBonusLevel: 1000}

	tests := []struct {
		draw int
		want bool
	}{
		{0, true},
		{2499, true},
		{2500, false},
		{9999, false},
	}
	for _, tt := range tests {
		rng := &seqRoller{draws: []int{tt.draw}}
		assert.Equal(t, tt.want, ActivationSuccessful(500, 10000, 10000, curve, rng), "draw %d", tt.draw)
	}
}

func TestActivationSuccessful_Degenerate(t *testing.T) {
	rng := &seqRoller{draws: []int{0}}
	assert.False(t, ActivationSuccessful(100, 100, 0, data.Curve{MaxChance: 1, MaxBonusLevel: 10}, rng))
	assert.False(t, ActivationSuccessful(100, 100, 100, data.Curve{MaxChance: 1}, rng))
	assert.Zero(t, rng.calls, "degenerate inputs must not consume a draw")

	assert.False(t, ActivationSuccessful(0, 100, 100, data.Curve{MaxChance: 1, MaxBonusLevel: 10}, &seqRoller{draws: []int{0}}),
		"level zero never activates")
}

// successes counts the draws in [0, denominator) that activate.
func successes(level, scale, denominator int, curve data.Curve) int {
	n := 0
	for d := 0; d < denominator; d++ {
		if ActivationSuccessful(level, scale, denominator, curve, &seqRoller{draws: []int{d}}) {
			n++
		}
	}
	return n
}

func TestActivationSuccessful_LuckyDenominatorRaisesOdds(t *testing.T) {
	curve := data.Curve{MaxChance: 0.2, MaxBonusLevel: 800}

	base := successes(800, 100, 100, curve)
	lucky := successes(800, 100, 75, curve)

	assert.Equal(t, 20, base)
	assert.Equal(t, 20, lucky)
	assert.InDelta(t, 0.20, float64(base)/100, 1e-9)
	assert.Greater(t, float64(lucky)/75, float64(base)/100)
	assert.InDelta(t, 4.0/3, (float64(lucky)/75)/(float64(base)/100), 1e-9)
}

func TestDefaultRoller_InRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := DefaultRoller.IntN(3)
		assert.True(t, v >= 0 && v < 3)
	}
}
