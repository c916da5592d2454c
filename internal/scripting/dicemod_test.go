package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicebox/internal/dice"
	"github.com/cory-johannsen/dicebox/internal/scripting"
)

func newDiceState(t testing.TB) *lua.LState {
	t.Helper()
	L := scripting.NewSandboxedState(0)
	t.Cleanup(L.Close)
	roller := dice.NewRoller(dice.NewSeededSource(42), zap.NewNop())
	scripting.RegisterDice(L, roller)
	return L
}

func TestRegisterDice_RollWithinBounds(t *testing.T) {
	L := newDiceState(t)
	err := L.DoString(`
		for i = 1, 50 do
			local v = dice.roll("2d6")
			assert(v >= 2 and v <= 12, "2d6 out of range: " .. v)
		end
	`)
	assert.NoError(t, err)
}

func TestRegisterDice_RollConstant(t *testing.T) {
	L := newDiceState(t)
	require.NoError(t, L.DoString(`result = dice.roll("1d1+4")`))
	assert.Equal(t, lua.LNumber(5), L.GetGlobal("result"))
}

func TestRegisterDice_BestAtLeastWorst(t *testing.T) {
	L := newDiceState(t)
	err := L.DoString(`
		for i = 1, 50 do
			local b = dice.best(3, 4, 6)
			local w = dice.worst(3, 4, 6)
			assert(b >= 3 and b <= 18, "best out of range: " .. b)
			assert(w >= 3 and w <= 18, "worst out of range: " .. w)
		end
	`)
	assert.NoError(t, err)
}

func TestRegisterDice_RangeInclusive(t *testing.T) {
	L := newDiceState(t)
	err := L.DoString(`
		for i = 1, 100 do
			local v = dice.range(10, 20)
			assert(v >= 10 and v <= 20, "range out of bounds: " .. v)
		end
	`)
	assert.NoError(t, err)
}

func TestRegisterDice_RangeDegenerate(t *testing.T) {
	L := newDiceState(t)
	require.NoError(t, L.DoString(`result = dice.range(20, 10)`))
	assert.Equal(t, lua.LNumber(20), L.GetGlobal("result"))
}

func TestRegisterDice_RollBadArgType_Errors(t *testing.T) {
	L := newDiceState(t)
	err := L.DoString(`dice.roll({})`)
	assert.Error(t, err)
}

func TestProperty_LuaRangeMatchesBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lower := rapid.Int32Range(-100, 100).Draw(rt, "lower")
		upper := rapid.Int32Range(lower, lower+200).Draw(rt, "upper")
		L := scripting.NewSandboxedState(0)
		defer L.Close()
		roller := dice.NewRoller(dice.NewCryptoSource(), zap.NewNop())
		scripting.RegisterDice(L, roller)
		L.SetGlobal("lo", lua.LNumber(lower))
		L.SetGlobal("hi", lua.LNumber(upper))
		if err := L.DoString(`result = dice.range(lo, hi)`); err != nil {
			rt.Fatalf("dice.range failed: %v", err)
		}
		got := int32(L.GetGlobal("result").(lua.LNumber))
		if got < lower || got > upper {
			rt.Fatalf("dice.range(%d, %d) = %d out of bounds", lower, upper, got)
		}
	})
}
