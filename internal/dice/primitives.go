package dice

// RollDice returns the sum of n independent uniform dice in [1, sides].
//
// Precondition: sides > 0. The degenerate sides <= 0 case is deliberately
// unguarded and faults in the Source (see Source.Intn); n <= 0 yields 0.
// Postcondition: for n, sides > 0 the result is in [n, n*sides].
func RollDice(n, sides int32, src Source) int32 {
	var total int32
	for i := int32(0); i < n; i++ {
		total += src.Intn(sides) + 1
	}
	return total
}

// RollExploding returns the sum of n exploding dice in [1, sides]: each die
// that lands on its maximum face is rerolled and the new value added,
// repeating for as long as the maximum keeps appearing.
//
// When sides <= 1 every roll would be the maximum and the loop would never
// terminate, so the call short-circuits and returns n.
// Postcondition: for sides > 1 the result is >= n.
func RollExploding(n, sides int32, src Source) int32 {
	if sides <= 1 {
		return n
	}
	var total int32
	for i := int32(0); i < n; i++ {
		for {
			v := src.Intn(sides) + 1
			total += v
			if v != sides {
				break
			}
		}
	}
	return total
}

// RollRange returns a uniform random value in the inclusive range
// [lower, upper]. When upper < lower the width is non-positive and
// IntnSigned draws 0, collapsing the range to lower.
func RollRange(lower, upper int32, src Source) int32 {
	return lower + src.IntnSigned(upper-lower+1)
}

// BestOf sorts pool ascending in place and returns the sum of its highest n
// entries. n is clamped to [0, pool.Len()].
func BestOf(n int32, pool *IntSeq) int32 {
	return sumSelected(n, pool, true)
}

// WorstOf sorts pool ascending in place and returns the sum of its lowest n
// entries. n is clamped to [0, pool.Len()].
func WorstOf(n int32, pool *IntSeq) int32 {
	return sumSelected(n, pool, false)
}

func sumSelected(n int32, pool *IntSeq, best bool) int32 {
	size := int32(pool.Len())
	if n > size {
		n = size
	}
	if n <= 0 {
		return 0
	}
	pool.Sort()
	var total int32
	if best {
		for i := size - n; i < size; i++ {
			total += pool.Get(int(i))
		}
	} else {
		for i := int32(0); i < n; i++ {
			total += pool.Get(int(i))
		}
	}
	return total
}

// BestOfDice rolls count dice with the given sides into pool and returns the
// sum of the best keep results. The pool is cleared first; its contents
// after return are the sorted individual die values.
func BestOfDice(keep, count, sides int32, src Source, pool *IntSeq) int32 {
	fillPool(count, sides, src, pool, false)
	return BestOf(keep, pool)
}

// WorstOfDice rolls count dice with the given sides into pool and returns
// the sum of the worst keep results.
func WorstOfDice(keep, count, sides int32, src Source, pool *IntSeq) int32 {
	fillPool(count, sides, src, pool, false)
	return WorstOf(keep, pool)
}

// BestOfExploding rolls count exploding dice into pool and returns the sum
// of the best keep results; each die explodes before the pool is sorted.
func BestOfExploding(keep, count, sides int32, src Source, pool *IntSeq) int32 {
	fillPool(count, sides, src, pool, true)
	return BestOf(keep, pool)
}

// WorstOfExploding rolls count exploding dice into pool and returns the sum
// of the worst keep results.
func WorstOfExploding(keep, count, sides int32, src Source, pool *IntSeq) int32 {
	fillPool(count, sides, src, pool, true)
	return WorstOf(keep, pool)
}

func fillPool(count, sides int32, src Source, pool *IntSeq, exploding bool) {
	pool.Clear()
	for i := int32(0); i < count; i++ {
		if exploding {
			pool.Append(RollExploding(1, sides, src))
		} else {
			pool.Append(RollDice(1, sides, src))
		}
	}
}
