package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/dicebox/internal/dice"
)

// TestIntSeq_Basics exercises append, index access, length, and sum.
func TestIntSeq_Basics(t *testing.T) {
	var s dice.IntSeq
	assert.Equal(t, 0, s.Len())

	s.Append(3)
	s.Append(-1)
	s.Append(7)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, int32(-1), s.Get(1))
	assert.Equal(t, int32(9), s.Sum())

	s.Set(1, 5)
	assert.Equal(t, int32(5), s.Get(1))
	assert.Equal(t, int32(15), s.Sum())
}

// TestIntSeq_Sort verifies ascending in-place ordering.
func TestIntSeq_Sort(t *testing.T) {
	var s dice.IntSeq
	for _, v := range []int32{4, -2, 9, 0, 4} {
		s.Append(v)
	}
	s.Sort()
	assert.Equal(t, []int32{-2, 0, 4, 4, 9}, s.Values())
}

// TestIntSeq_ClearKeepsNothingVisible verifies Clear empties the sequence
// while the backing array remains reusable.
func TestIntSeq_ClearKeepsNothingVisible(t *testing.T) {
	var s dice.IntSeq
	s.Append(1)
	s.Append(2)
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, int32(0), s.Sum())

	s.Append(8)
	assert.Equal(t, []int32{8}, s.Values())
}
