package dice

// Execute runs the Rule's instructions against src and returns the result.
// An empty Rule yields 0. A scratch pool is allocated only if the Rule uses
// best-of/worst-of selection; callers executing in a loop should prefer
// ExecuteWith with a reused pool.
//
// Division by zero (a "/0" term, or a divisor term that rolled 0) is the one
// unrecovered fault: it panics with the runtime's integer-divide error and
// is intentionally not caught, since silently zeroing would hide notation
// authoring bugs.
func Execute(r *Rule, src Source) int32 {
	var pool IntSeq
	return ExecuteWith(r, src, &pool)
}

// ExecuteWith is Execute with a caller-supplied scratch pool. The pool's
// contents on return are the last selection's sorted die values.
//
// Precondition: r, src, and pool must be non-nil.
func ExecuteWith(r *Rule, src Source, pool *IntSeq) int32 {
	var total int32
	for i := range r.instrs {
		in := &r.instrs[i]
		cur := evalInstruction(in, src, pool)
		switch in.Op {
		case OpSub:
			total -= cur
		case OpMul:
			total *= cur
		case OpDiv:
			total /= cur
		default:
			total += cur
		}
	}
	return total
}

// evalInstruction computes a single instruction's value. Dispatch follows
// the two mode dimensions; every combination the grammar can produce has a
// defined meaning here.
func evalInstruction(in *Instruction, src Source, pool *IntSeq) int32 {
	switch in.RollMode {
	case RollModeDice:
		switch in.SelectMode {
		case SelectBest:
			return BestOfDice(in.StartN, in.MidN, in.EndN, src, pool)
		case SelectWorst:
			return WorstOfDice(in.StartN, in.MidN, in.EndN, src, pool)
		case SelectRange:
			return RollRange(in.StartN, RollDice(in.MidN, in.EndN, src), src)
		default:
			// StartN+MidN is the dice count: exactly one of the two is
			// set, MidN holding the implicit 1 of a bare "d6".
			return RollDice(in.StartN+in.MidN, in.EndN, src)
		}
	case RollModeExploding:
		switch in.SelectMode {
		case SelectBest:
			return BestOfExploding(in.StartN, in.MidN, in.EndN, src, pool)
		case SelectWorst:
			return WorstOfExploding(in.StartN, in.MidN, in.EndN, src, pool)
		case SelectRange:
			return RollRange(in.StartN, RollExploding(in.MidN, in.EndN, src), src)
		default:
			return RollExploding(in.StartN+in.MidN, in.EndN, src)
		}
	case RollModeRange:
		if in.SelectMode == SelectRange {
			// Nested range: the outer upper bound is itself random.
			return RollRange(in.StartN, RollRange(in.MidN, in.EndN, src), src)
		}
		return RollRange(in.StartN, in.EndN, src)
	default:
		if in.SelectMode == SelectRange {
			return RollRange(in.StartN, in.MidN, src)
		}
		return in.StartN
	}
}
