package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/dice/dicetest"
)

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", r.String())
}

func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{4}}
	assert.Panics(t, func() { _ = r.String() })
}

func TestParse_ValidForms(t *testing.T) {
	cases := map[string]dice.Expression{
		"d20":      {Raw: "d20", Count: 1, Sides: 20},
		"2d6":      {Raw: "2d6", Count: 2, Sides: 6},
		"2d6+3":    {Raw: "2d6+3", Count: 2, Sides: 6, Modifier: 3},
		"4d8-2":    {Raw: "4d8-2", Count: 4, Sides: 8, Modifier: -2},
		"4d6kh3":   {Raw: "4d6kh3", Count: 4, Sides: 6, KeepHighest: 3},
		"4D6KH3+1": {Raw: "4D6KH3+1", Count: 4, Sides: 6, KeepHighest: 3, Modifier: 1},
	}
	for in, want := range cases {
		got, err := dice.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "6", "0d6", "2d1", "2d6kh2", "2d6kh0", "xd6", "2d6+"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, in)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("bogus") })
}

func TestRoll_KeepHighest(t *testing.T) {
	src := &dicetest.Seq{Ints: []int{0, 5, 2, 3}}
	r := dice.Roll(dice.MustParse("4d6kh3"), src)
	assert.Equal(t, []int{6, 4, 3}, r.Dice)
	assert.Equal(t, 13, r.Total())
}

func TestRoll_Property_Bounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		mod := rapid.IntRange(-10, 10).Draw(rt, "mod")
		expr := dice.MustParse(fmt.Sprintf("%dd%d%+d", count, sides, mod))
		seed := rapid.Int64().Draw(rt, "seed")

		r := dice.Roll(expr, dice.NewSeededSource(seed))
		require.Len(rt, r.Dice, count)
		assert.GreaterOrEqual(rt, r.Total(), count+mod)
		assert.LessOrEqual(rt, r.Total(), count*sides+mod)
	})
}

func TestCryptoSource_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
		f := src.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
}

func TestSeededSource_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		a, b := dice.NewSeededSource(seed), dice.NewSeededSource(seed)
		for i := 0; i < 50; i++ {
			assert.Equal(rt, a.Intn(100), b.Intn(100))
			assert.Equal(rt, a.Float64(), b.Float64())
		}
		assert.Equal(rt, int64(100), a.Position())
		assert.Equal(rt, seed, a.Seed())
	})
}

func TestRandomSeed_NonZero(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.NotZero(t, dice.RandomSeed())
	}
}

func TestBernoulli_Extremes(t *testing.T) {
	src := dice.NewSeededSource(1)
	for i := 0; i < 200; i++ {
		assert.True(t, dice.Bernoulli(src, 1.0))
		assert.False(t, dice.Bernoulli(src, 0.0))
	}
}

func TestRange_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+50).Draw(rt, "hi")
		v := dice.Range(dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")), lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestWeightedIndex_PicksByWeight(t *testing.T) {
	assert.Equal(t, -1, dice.WeightedIndex(dicetest.Fixed{}, nil))
	assert.Equal(t, -1, dice.WeightedIndex(dicetest.Fixed{}, []float64{0, -1}))
	assert.Equal(t, 1, dice.WeightedIndex(dicetest.Fixed{Float: 0.0}, []float64{0, 2, 3}))
	assert.Equal(t, 2, dice.WeightedIndex(dicetest.Fixed{Float: 0.5}, []float64{0, 2, 3}))
	assert.Equal(t, 2, dice.WeightedIndex(dicetest.Fixed{Float: 0.999}, []float64{1, 0, 3, 0}))
}

func TestWeightedIndex_NeverPicksZeroWeight(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		weights := rapid.SliceOfN(rapid.Float64Range(0, 5), 1, 8).Draw(rt, "weights")
		idx := dice.WeightedIndex(dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")), weights)
		if idx >= 0 {
			assert.Greater(rt, weights[idx], 0.0)
		}
	})
}

func TestRoller_LogsRolls(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := dice.NewLoggedRoller(dicetest.Fixed{Int: 2, Float: 0.1}, zap.New(core))

	res, err := r.RollExpr("2d6+1")
	require.NoError(t, err)
	assert.Equal(t, 7, res.Total())
	assert.True(t, r.Chance("test", 0.5))

	require.Equal(t, 2, logs.Len())
	assert.True(t, strings.HasPrefix(logs.All()[0].Message, "dice roll"))
	assert.Equal(t, "chance", logs.All()[1].Message)
}
