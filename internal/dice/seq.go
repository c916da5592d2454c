package dice

import "slices"

// IntSeq is a growable, indexable sequence of 32-bit integers. The engine
// uses it as the scratch pool for best-of/worst-of selection; callers may
// reuse one sequence across many rolls to avoid allocation.
//
// The zero value is an empty sequence ready for use. IntSeq is not safe for
// concurrent use.
type IntSeq struct {
	vals []int32
}

// Append adds v to the end of the sequence.
func (s *IntSeq) Append(v int32) {
	s.vals = append(s.vals, v)
}

// Get returns the element at index i.
//
// Precondition: 0 <= i < Len().
func (s *IntSeq) Get(i int) int32 {
	return s.vals[i]
}

// Set replaces the element at index i with v.
//
// Precondition: 0 <= i < Len().
func (s *IntSeq) Set(i int, v int32) {
	s.vals[i] = v
}

// Len returns the number of elements in the sequence.
func (s *IntSeq) Len() int {
	return len(s.vals)
}

// Clear empties the sequence while retaining its backing capacity.
func (s *IntSeq) Clear() {
	s.vals = s.vals[:0]
}

// Sort orders the sequence ascending in place.
func (s *IntSeq) Sort() {
	slices.Sort(s.vals)
}

// Sum returns the sum of all elements.
func (s *IntSeq) Sum() int32 {
	var total int32
	for _, v := range s.vals {
		total += v
	}
	return total
}

// Values returns the backing slice. Mutating the returned slice mutates the
// sequence; callers needing isolation must copy.
func (s *IntSeq) Values() []int32 {
	return s.vals
}
