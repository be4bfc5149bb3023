package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicequest/internal/game/dice"
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

func TestRollResult_String_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		expr := rapid.StringMatching(`[0-9]+d[0-9]+[+-][0-9]+`).Draw(rt, "expression")
		faces := rapid.SliceOfN(rapid.IntRange(1, 20), 1, 10).Draw(rt, "dice")
		modifier := rapid.IntRange(-100, 100).Draw(rt, "modifier")

		r := dice.RollResult{Expression: expr, Dice: faces, Modifier: modifier}
		s := r.String()
		assert.True(rt, strings.HasPrefix(s, expr))
		assert.True(rt, strings.HasSuffix(s, fmt.Sprintf("= %d", r.Total())))
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		count int
		sides int
		mod   int
	}{
		{"d6", 1, 6, 0},
		{"1d6", 1, 6, 0},
		{"1d100", 1, 100, 0},
		{"2d6+3", 2, 6, 3},
		{"4D8-2", 4, 8, -2},
	}
	for _, tc := range tests {
		e, err := dice.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.count, e.Count, tc.in)
		assert.Equal(t, tc.sides, e.Sides, tc.in)
		assert.Equal(t, tc.mod, e.Modifier, tc.in)
		assert.Equal(t, tc.in, e.Raw)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "6", "0d6", "1d1", "xd6", "1dx", "1d6+x"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "expected error for %q", in)
	}
}

func TestExpression_MinMax(t *testing.T) {
	e := dice.MustParse("2d6+3")
	assert.Equal(t, 5, e.Min())
	assert.Equal(t, 15, e.Max())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("bogus") })
}

func TestRoll_Property_WithinBounds(t *testing.T) {
	src := dice.NewSeededSource(7)
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 5).Draw(rt, "count")
		sides := rapid.IntRange(2, 100).Draw(rt, "sides")
		e := dice.MustParse(fmt.Sprintf("%dd%d", count, sides))
		r := dice.Roll(e, src)
		require.Len(rt, r.Dice, count)
		assert.GreaterOrEqual(rt, r.Total(), e.Min())
		assert.LessOrEqual(rt, r.Total(), e.Max())
	})
}

func TestRollExpr_ParseError(t *testing.T) {
	_, err := dice.RollExpr("nope", dice.NewCryptoSource())
	assert.Error(t, err)
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 200; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

func TestScriptedSource_ReplaysFaces(t *testing.T) {
	src := dice.NewScriptedSource(42, 1, 100)
	assert.Equal(t, 41, src.Intn(100))
	assert.Equal(t, 0, src.Intn(6))
	assert.Equal(t, 1, src.Remaining())
	assert.Panics(t, func() { src.Intn(6) }, "face 100 cannot come from a d6")
}

func TestScriptedSource_PanicsWhenExhausted(t *testing.T) {
	src := dice.NewScriptedSource()
	assert.Panics(t, func() { src.Intn(6) })
}

func TestRoller_Percentile(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewScriptedSource(1, 100, 57), zap.NewNop())
	assert.Equal(t, 1, r.Percentile("test"))
	assert.Equal(t, 100, r.Percentile("test"))
	assert.Equal(t, 57, r.Percentile("test"))
}

func TestRoller_Check(t *testing.T) {
	tests := []struct {
		chance float64
		face   int
		want   bool
	}{
		{0.5, 50, true},
		{0.5, 51, false},
		{0.1, 10, true},
		{0.1, 11, false},
		{1.0, 100, true},
		{0.0, 1, false},
	}
	for _, tc := range tests {
		r := dice.NewLoggedRoller(dice.NewScriptedSource(tc.face), zap.NewNop())
		assert.Equal(t, tc.want, r.Check(tc.chance, "test"), "chance=%v face=%d", tc.chance, tc.face)
	}
}

func TestRoller_Check_AlwaysConsumesADraw(t *testing.T) {
	src := dice.NewScriptedSource(100, 1)
	r := dice.NewLoggedRoller(src, zap.NewNop())
	assert.True(t, r.Check(1.0, "guaranteed"))
	assert.Equal(t, 1, src.Remaining())
}
