package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicebox/internal/dice"
)

// TestCompile_RoundTripText verifies that a compiled Rule stores its source
// notation verbatim.
func TestCompile_RoundTripText(t *testing.T) {
	for _, text := range []string{"3d6", "1d20+7", "3>4d6", "10:20", "3!6", "42"} {
		r := dice.Compile(text)
		assert.Equal(t, text, r.Text(), "Text() must round-trip the source notation")
	}
}

// TestCompile_Idempotent verifies that compiling the same notation twice
// produces instruction-equal Rules with identical hashes.
func TestCompile_Idempotent(t *testing.T) {
	texts := []string{"3d6+2", "3>4d6 - 1", "2<5!8", "10:20:30", "d6", "!6", ":20"}
	for _, text := range texts {
		a := dice.Compile(text)
		b := dice.Compile(text)
		assert.True(t, a.Equal(b), "recompiling %q must yield equal instructions", text)
		assert.Equal(t, a.Hash(), b.Hash(), "equal Rules must hash identically for %q", text)
	}
}

// TestCompile_EqualityIgnoresSourceText verifies that Rule equality covers
// only the instruction sequence: different spellings of the same program
// compare equal.
func TestCompile_EqualityIgnoresSourceText(t *testing.T) {
	a := dice.Compile("3d6 + 2")
	b := dice.Compile("3D6+2")
	require.NotEqual(t, a.Text(), b.Text())
	assert.True(t, a.Equal(b), "whitespace and letter case must not affect instructions")
	assert.Equal(t, a.Hash(), b.Hash())
}

// TestCompile_TermCounts verifies the scanner splits notation into the
// expected number of terms.
func TestCompile_TermCounts(t *testing.T) {
	cases := map[string]int{
		"":             0,
		"   ":          0,
		"3d6":          1,
		"1d20+7":       2,
		"+4 -3 *100 /8": 4,
		"3d6+2d4-1":    3,
		"xyz":          0,
	}
	for text, want := range cases {
		r := dice.Compile(text)
		assert.Equal(t, want, r.Len(), "term count for %q", text)
	}
}

// TestCompile_DiscardsTrailingPartialTerm verifies that scanning stops at
// the first term that captured no value group and discards it.
func TestCompile_DiscardsTrailingPartialTerm(t *testing.T) {
	cases := map[string]int{
		"3d6+":     1, // bare trailing operator
		"3d6+d":    1, // mainmode with no endliteral
		"3d6 junk": 1,
		"2d8-3extra": 2,
	}
	for text, want := range cases {
		r := dice.Compile(text)
		assert.Equal(t, want, r.Len(), "instruction count for %q", text)
	}
}

// TestCompile_ImplicitCountDefaults verifies that "d6" and "!6" compile to
// the same instructions as "1d6" and "1!6" do not — the implicit count lands
// in a different field — yet evaluate identically (covered in interp tests).
// Here we check the compiled shape is stable and distinct from a zero-count
// roll.
func TestCompile_ImplicitCountDefaults(t *testing.T) {
	bare := dice.Compile("d6")
	zero := dice.Compile("0d6")
	assert.False(t, bare.Equal(zero), "bare d6 must not compile to a zero-count roll")

	bang := dice.Compile("!6")
	zeroBang := dice.Compile("0!6")
	assert.False(t, bang.Equal(zeroBang), "bare !6 must not compile to a zero-count roll")
}

// TestCompile_RangeLowerBoundDefault verifies that ":20" compiles equal to
// "0:20".
func TestCompile_RangeLowerBoundDefault(t *testing.T) {
	a := dice.Compile(":20")
	b := dice.Compile("0:20")
	assert.True(t, a.Equal(b), "':20' must default the lower bound to 0")
}

// TestRule_Append verifies the append semantics: compiling into a non-empty
// Rule is equivalent to compiling the concatenation joined by '+'.
func TestRule_Append(t *testing.T) {
	r := dice.Compile("2d6")
	r.Append("1d4")

	whole := dice.Compile("2d6+1d4")
	assert.True(t, r.Equal(whole), "Append must behave like '+' concatenation")
	assert.Equal(t, "2d6+1d4", r.Text())
}

// TestRule_AppendWithExplicitOperator verifies that an appended term keeps
// its own operator when it wrote one.
func TestRule_AppendWithExplicitOperator(t *testing.T) {
	r := dice.Compile("2d6")
	r.Append("-1d4")

	whole := dice.Compile("2d6-1d4")
	assert.True(t, r.Equal(whole))
}

// TestRule_ResetText verifies in-place recompilation.
func TestRule_ResetText(t *testing.T) {
	r := dice.Compile("3d6")
	r.ResetText("1d20+7")

	fresh := dice.Compile("1d20+7")
	assert.True(t, r.Equal(fresh), "ResetText must fully replace the program")
	assert.Equal(t, "1d20+7", r.Text())
	assert.Equal(t, 2, r.Len())
}

// TestCompile_CaseAndWhitespace verifies case-insensitive letters and
// unbounded internal whitespace.
func TestCompile_CaseAndWhitespace(t *testing.T) {
	variants := []string{"3d6+2", "3D6+2", " 3 d 6 + 2 ", "3\td6\n+\t2"}
	base := dice.Compile(variants[0])
	for _, text := range variants[1:] {
		r := dice.Compile(text)
		assert.True(t, base.Equal(r), "%q must compile like %q", text, variants[0])
	}
}

// TestCompile_NegativeLiterals verifies that a literal may carry its own
// sign independent of the term operator.
func TestCompile_NegativeLiterals(t *testing.T) {
	src := dice.NewSeededSource(1)
	r := dice.Compile("1d1 * -3")
	assert.Equal(t, int32(-3), dice.Execute(r, src))
}

// TestCompile_NeverErrors property: Compile accepts arbitrary strings
// without panicking and always yields a text round-trip.
func TestCompile_NeverErrors(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")
		r := dice.Compile(text)
		assert.Equal(rt, text, r.Text())
		assert.GreaterOrEqual(rt, r.Len(), 0)
	})
}

// TestCompile_IdempotentShape_Property verifies the idempotent-shape
// property over random well-formed notation.
func TestCompile_IdempotentShape_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[0-9]{0,2}(d|!)[0-9]{1,2}([+*/-][0-9]{1,2})?`).Draw(rt, "notation")
		a := dice.Compile(text)
		b := dice.Compile(text)
		assert.True(rt, a.Equal(b), "compile must be deterministic for %q", text)
		assert.Equal(rt, a.Hash(), b.Hash())
	})
}
