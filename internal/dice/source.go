package dice

import (
	"crypto/rand"
	"math/big"
)

// Source is the randomness provider for the dice engine. Exactly two
// operations are required: a strict bounded draw and a tolerant one used for
// range widths that may collapse to zero or go negative after subtraction.
//
// The engine holds a reference to, not ownership of, its Source; a Source's
// internal state visibly advances with every draw, so callers relying on
// reproducible sequences must control the Source's lifetime themselves.
type Source interface {
	// Intn returns a uniform random int32 in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int32) int32

	// IntnSigned behaves like Intn but tolerates n <= 0, returning 0.
	// This is the engine's single deterministic policy for degenerate
	// ranges: a range whose upper bound is below its lower bound
	// collapses to the lower bound.
	IntnSigned(n int32) int32
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: all values produced are cryptographically secure and uniformly
// distributed in [0, n) for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand. It is safe for
// concurrent use.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int32 in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int32) int32 {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int32(val.Int64())
}

// IntnSigned returns a uniform random int32 in [0, n), or 0 when n <= 0.
func (c *cryptoSource) IntnSigned(n int32) int32 {
	if n <= 0 {
		return 0
	}
	return c.Intn(n)
}
