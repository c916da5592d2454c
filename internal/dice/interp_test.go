package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicebox/internal/dice"
)

const trials = 200

// inRange executes the notation repeatedly and asserts every result lands in
// [lo, hi].
func inRange(t *testing.T, text string, lo, hi int32) {
	t.Helper()
	r := dice.Compile(text)
	src := dice.NewSeededSource(42)
	for i := 0; i < trials; i++ {
		got := dice.Execute(r, src)
		require.GreaterOrEqual(t, got, lo, "%q produced %d below %d", text, got, lo)
		require.LessOrEqual(t, got, hi, "%q produced %d above %d", text, got, hi)
	}
}

// TestExecute_EmptyRule verifies an empty instruction sequence yields 0.
func TestExecute_EmptyRule(t *testing.T) {
	src := dice.NewSeededSource(1)
	assert.Equal(t, int32(0), dice.Execute(dice.Compile(""), src))
	assert.Equal(t, int32(0), dice.Execute(dice.Compile("not dice at all"), src))
}

// TestExecute_Literals verifies plain literal terms and chained arithmetic.
func TestExecute_Literals(t *testing.T) {
	src := dice.NewSeededSource(1)
	cases := map[string]int32{
		"42":            42,
		"-3":            -3,
		"+4":            4,
		"2+3":           5,
		"10-4":          6,
		"2*3":           6,
		"7/2":           3,
		"+4 -3 *100 /8": 12, // ((0+4-3)*100)/8, strictly left to right
		"1+2*3":         9,  // no precedence: (1+2)*3
	}
	for text, want := range cases {
		r := dice.Compile(text)
		assert.Equal(t, want, dice.Execute(r, src), "result of %q", text)
	}
}

// TestExecute_ConcreteScenarios covers the always-true evaluations.
func TestExecute_ConcreteScenarios(t *testing.T) {
	src := dice.NewSeededSource(7)
	for i := 0; i < trials; i++ {
		assert.Equal(t, int32(1), dice.Execute(dice.Compile("1d1"), src), `"1d1" is always 1`)
		assert.Equal(t, int32(0), dice.Execute(dice.Compile("0:0"), src), `"0:0" is always 0`)
		assert.Equal(t, int32(10), dice.Execute(dice.Compile("10:10"), src), `"10:10" is always 10`)
	}
}

// TestExecute_Ranges covers the bounded evaluations from the notation table.
func TestExecute_Ranges(t *testing.T) {
	inRange(t, "2d6", 2, 12)
	inRange(t, "1d20+7", 8, 27)
	inRange(t, "3>4d6", 3, 18)
	inRange(t, "2<5d6", 2, 12)
	inRange(t, "10:20", 10, 20)
	inRange(t, ":20", 0, 20)
	inRange(t, "d6", 1, 6)
	inRange(t, "3d6", 3, 18)
}

// TestExecute_ImplicitCount verifies "d6" and "!6" roll exactly one die.
func TestExecute_ImplicitCount(t *testing.T) {
	inRange(t, "d6", 1, 6)
	src := dice.NewSeededSource(3)
	r := dice.Compile("!1")
	for i := 0; i < trials; i++ {
		assert.Equal(t, int32(1), dice.Execute(r, src), "one exploding 1-sided die is the guard value 1")
	}
}

// TestExecute_ExplodingRange verifies exploding rolls never fall below the
// plain-dice minimum.
func TestExecute_ExplodingRange(t *testing.T) {
	r := dice.Compile("3!6")
	src := dice.NewSeededSource(11)
	for i := 0; i < trials; i++ {
		got := dice.Execute(r, src)
		require.GreaterOrEqual(t, got, int32(3), "3 exploding d6 must sum at least 3")
	}
}

// TestExecute_NestedRange verifies "a:b:c" draws its outer upper bound from
// [b, c] and the result from [a, upper].
func TestExecute_NestedRange(t *testing.T) {
	inRange(t, "1:2:4", 1, 4)
	inRange(t, "0:0:0", 0, 0)
}

// TestExecute_DiceBoundedRange verifies "a:NdS" style ranges stay within
// [a, N*S].
func TestExecute_DiceBoundedRange(t *testing.T) {
	inRange(t, "1:2d6", 1, 12)
	inRange(t, "0:1!1", 0, 1)
}

// TestExecute_DegenerateRange verifies the documented policy for
// upper < lower: the range collapses to its lower bound.
func TestExecute_DegenerateRange(t *testing.T) {
	src := dice.NewSeededSource(5)
	r := dice.Compile("20:10")
	for i := 0; i < trials; i++ {
		assert.Equal(t, int32(20), dice.Execute(r, src), "degenerate range must collapse to the lower bound")
	}
}

// TestExecute_DivisionByZero verifies that dividing by a zero-valued term is
// the one unrecovered fault and panics.
func TestExecute_DivisionByZero(t *testing.T) {
	src := dice.NewSeededSource(1)
	r := dice.Compile("4/0")
	assert.Panics(t, func() { dice.Execute(r, src) })
}

// TestExecute_LeadingOperators verifies the implicit leading '+' and an
// explicit leading '-' acting as the first term's combiner.
func TestExecute_LeadingOperators(t *testing.T) {
	src := dice.NewSeededSource(1)
	assert.Equal(t, int32(5), dice.Execute(dice.Compile("5"), src))
	assert.Equal(t, int32(-5), dice.Execute(dice.Compile("-5"), src))
	assert.Equal(t, int32(0), dice.Execute(dice.Compile("*5"), src), "leading '*' multiplies the zero total")
}

// TestExecute_Deterministic verifies that two equally seeded sources replay
// the same roll sequence.
func TestExecute_Deterministic(t *testing.T) {
	r := dice.Compile("3>4d6 + 2!8 - 1d20")
	a := dice.NewSeededSource(99)
	b := dice.NewSeededSource(99)
	for i := 0; i < trials; i++ {
		require.Equal(t, dice.Execute(r, a), dice.Execute(r, b), "seeded sources must replay identically")
	}
}

// TestExecute_RangeBounds_Property checks NdS stays in [N, N*S] for random
// dice counts and sides.
func TestExecute_RangeBounds_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.Int32Range(1, 20).Draw(rt, "n")
		sides := rapid.Int32Range(1, 100).Draw(rt, "sides")
		seed := rapid.Int64().Draw(rt, "seed")

		src := dice.NewSeededSource(seed)
		got := dice.RollDice(n, sides, src)
		assert.GreaterOrEqual(rt, got, n)
		assert.LessOrEqual(rt, got, n*sides)
	})
}
