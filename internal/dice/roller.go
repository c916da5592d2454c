package dice

import (
	"sync"

	"go.uber.org/zap"
)

// Roller is a convenience facade over the compiler and interpreter. It owns
// a scratch Rule and a scratch pool so that repeated rolls allocate nothing;
// a mutex serialises access to the shared scratch, making a single Roller
// safe for concurrent use. Every roll is logged at debug level.
type Roller struct {
	mu      sync.Mutex
	src     Source
	scratch Rule
	pool    IntSeq
	logger  *zap.Logger
}

// NewRoller creates a Roller drawing randomness from src.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll compiles text into the Roller's scratch Rule and executes it
// immediately. The compiled form is not retained between calls; callers
// rolling the same notation repeatedly should Compile once and use RollRule.
func (r *Roller) Roll(text string) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scratch.ResetText(text)
	total := ExecuteWith(&r.scratch, r.src, &r.pool)
	r.logger.Debug("dice roll",
		zap.String("notation", text),
		zap.Int32("total", total),
	)
	return total
}

// RollRule executes a pre-compiled Rule against the Roller's source.
//
// Precondition: rule must be non-nil.
func (r *Roller) RollRule(rule *Rule) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := ExecuteWith(rule, r.src, &r.pool)
	r.logger.Debug("dice roll",
		zap.String("notation", rule.Text()),
		zap.Int32("total", total),
	)
	return total
}

// BestOf rolls count dice with the given sides and returns the sum of the
// highest keep results.
func (r *Roller) BestOf(keep, count, sides int32) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := BestOfDice(keep, count, sides, r.src, &r.pool)
	r.logger.Debug("best-of roll",
		zap.Int32("keep", keep),
		zap.Int32("count", count),
		zap.Int32("sides", sides),
		zap.Int32("total", total),
	)
	return total
}

// Range draws a uniform value between lower and upper inclusive. A
// degenerate range with upper < lower collapses to lower.
func (r *Roller) Range(lower, upper int32) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := RollRange(lower, upper, r.src)
	r.logger.Debug("range roll",
		zap.Int32("lower", lower),
		zap.Int32("upper", upper),
		zap.Int32("total", total),
	)
	return total
}

// WorstOf rolls count dice with the given sides and returns the sum of the
// lowest keep results.
func (r *Roller) WorstOf(keep, count, sides int32) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := WorstOfDice(keep, count, sides, r.src, &r.pool)
	r.logger.Debug("worst-of roll",
		zap.Int32("keep", keep),
		zap.Int32("count", count),
		zap.Int32("sides", sides),
		zap.Int32("total", total),
	)
	return total
}
