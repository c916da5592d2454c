package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/dicebox/internal/dice"
)

// RegisterDice registers the dice.* Lua table into L, backed by roller.
// Exposed functions:
//
//	dice.roll(notation)          -> total
//	dice.best(keep, count, sides)  -> total of the keep highest dice
//	dice.worst(keep, count, sides) -> total of the keep lowest dice
//	dice.range(lower, upper)       -> uniform value in [lower, upper]
//
// Precondition: L must be from NewSandboxedState; roller must be non-nil.
// Postcondition: the dice global is defined in L.
func RegisterDice(L *lua.LState, roller *dice.Roller) {
	mod := L.NewTable()

	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		notation := L.CheckString(1)
		L.Push(lua.LNumber(roller.Roll(notation)))
		return 1
	}))

	L.SetField(mod, "best", L.NewFunction(func(L *lua.LState) int {
		keep := int32(L.CheckInt(1))
		count := int32(L.CheckInt(2))
		sides := int32(L.CheckInt(3))
		L.Push(lua.LNumber(roller.BestOf(keep, count, sides)))
		return 1
	}))

	L.SetField(mod, "worst", L.NewFunction(func(L *lua.LState) int {
		keep := int32(L.CheckInt(1))
		count := int32(L.CheckInt(2))
		sides := int32(L.CheckInt(3))
		L.Push(lua.LNumber(roller.WorstOf(keep, count, sides)))
		return 1
	}))

	L.SetField(mod, "range", L.NewFunction(func(L *lua.LState) int {
		lower := int32(L.CheckInt(1))
		upper := int32(L.CheckInt(2))
		L.Push(lua.LNumber(roller.Range(lower, upper)))
		return 1
	}))

	L.SetGlobal("dice", mod)
}
