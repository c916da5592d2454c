// Package dice provides the dice-notation engine: a compiler from the compact
// roll-notation mini-language (e.g. "3d6+2", "3>4d6", "10:20", "2!8") into a
// reusable Rule, and an interpreter that executes a Rule against a pluggable
// randomness Source.
//
// Notation is evaluated strictly left to right with no operator precedence;
// "1d20 * -3" multiplies the running total by negative three rather than
// applying a unary minus.
package dice

// Op combines an instruction's computed value into the running total.
type Op int8

// Arithmetic combiners, applied in encounter order.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the notation character for the operator.
func (o Op) String() string {
	switch o {
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "+"
	}
}

// SelectMode is the intermediate mode of a notation term: how the term's
// first two numbers relate before the main roll mode is applied.
type SelectMode int8

const (
	// SelectNone means the term has no intermediate group.
	SelectNone SelectMode = iota
	// SelectBest keeps the highest StartN dice of a pool of MidN ('>').
	SelectBest
	// SelectWorst keeps the lowest StartN dice of a pool of MidN ('<').
	SelectWorst
	// SelectRange makes [StartN, MidN] an inclusive uniform range (':').
	SelectRange
)

// RollMode is the main mode of a notation term.
type RollMode int8

const (
	// RollModeNone means the term is a literal or a simple range.
	RollModeNone RollMode = iota
	// RollModeDice sums uniform dice with EndN sides ('d').
	RollModeDice
	// RollModeExploding sums exploding dice with EndN sides ('!').
	RollModeExploding
	// RollModeRange draws the upper bound of the range at random (':').
	RollModeRange
)

// Instruction is one compiled notation term. Each instruction is
// independently interpretable; instructions interact only through the
// running total that Op folds their results into.
//
// The meaning of StartN, MidN, and EndN depends on SelectMode and RollMode:
// for "3>4d6" they are keep-count, pool-size, and sides; for "10:20" they
// are the range bounds; for a plain "3d6" the dice count is StartN+MidN so
// that the implicit count of a bare "d6" (stored in MidN) lands correctly.
type Instruction struct {
	Op         Op
	StartN     int32
	SelectMode SelectMode
	MidN       int32
	RollMode   RollMode
	EndN       int32
}
