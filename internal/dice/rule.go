package dice

// Rule is a compiled notation string: the original source text plus the flat
// instruction sequence it compiled to. A Rule may be compiled once and
// executed many times; Reset and ResetText recompile in place so a scratch
// Rule can be reused without reallocation.
//
// A Rule is immutable for the duration of an execution and may be shared
// read-only across goroutines provided each supplies its own Source and
// scratch pool.
type Rule struct {
	text   string
	instrs []Instruction
}

// Compile compiles a notation string into a new Rule.
//
// Compilation never fails: unrecognised trailing text simply stops being
// tokenized, and malformed numeric groups contribute zero-valued no-ops.
func Compile(text string) *Rule {
	r := &Rule{}
	r.ResetText(text)
	return r
}

// Append compiles more notation into the Rule. Appending to a non-empty Rule
// is equivalent to having compiled "<existing>+<text>": the first appended
// term combines with an implicit '+' unless it wrote its own operator.
func (r *Rule) Append(text string) {
	if r.text == "" {
		r.text = text
	} else {
		r.text += "+" + text
	}
	compileInto(r, text)
}

// Reset clears the Rule, retaining the instruction backing array.
func (r *Rule) Reset() {
	r.text = ""
	r.instrs = r.instrs[:0]
}

// ResetText clears the Rule and recompiles it from text in place.
func (r *Rule) ResetText(text string) {
	r.Reset()
	r.Append(text)
}

// Text returns the source notation the Rule was compiled from.
func (r *Rule) Text() string {
	return r.text
}

// Len returns the number of compiled instructions.
func (r *Rule) Len() int {
	return len(r.instrs)
}

// Equal reports whether two Rules compiled to identical instruction
// sequences. Source text is excluded: two Rules with different spelling but
// the same instructions are equal.
func (r *Rule) Equal(o *Rule) bool {
	if r.Len() != o.Len() {
		return false
	}
	for i := range r.instrs {
		if r.instrs[i] != o.instrs[i] {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit FNV-1a hash of the instruction sequence. Like Equal,
// it ignores the source text, so Equal Rules hash identically.
func (r *Rule) Hash() uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			h ^= v & 0xff
			h *= prime
			v >>= 8
		}
	}
	for i := range r.instrs {
		in := &r.instrs[i]
		mix(uint64(uint8(in.Op)) | uint64(uint8(in.SelectMode))<<8 | uint64(uint8(in.RollMode))<<16)
		mix(uint64(uint32(in.StartN)))
		mix(uint64(uint32(in.MidN)))
		mix(uint64(uint32(in.EndN)))
	}
	return h
}
