package dice

// The notation scanner. Grammar, per term (letters case-insensitive,
// unbounded whitespace between tokens):
//
//	term         := operator? literal? (intermediate midliteral)? (mainmode endliteral)?
//	operator     := '+' | '-' | '*' | '/'
//	literal      := '-'? digit+
//	intermediate := '>' | '<' | ':'
//	midliteral   := digit+
//	mainmode     := 'd' | '!' | ':'
//	endliteral   := digit+
//
// A notation string is a run of consecutive terms. Scanning stops at the
// first term that captured none of literal, midliteral, or endliteral; that
// trailing partial term (a bare operator, or garbage) is discarded. There is
// no error path: anything unparseable just stops contributing instructions.

type scanner struct {
	src string
	pos int
}

// compileInto appends the instructions for text onto r.instrs.
func compileInto(r *Rule, text string) {
	s := scanner{src: text}
	var in Instruction
	for s.term(&in) {
		r.instrs = append(r.instrs, in)
	}
}

// term scans one notation term into in, reporting whether any of its value
// groups captured. Defaulting rules:
//
//  1. A term without a written operator combines with '+', so the very first
//     value is added rather than left floating.
//  2. A bare "d6" or "!6" stores the implicit dice count 1 in MidN, not
//     StartN; the interpreter's dice count is StartN+MidN.
//  3. ":20" leaves StartN at 0, the default lower bound.
func (s *scanner) term(in *Instruction) bool {
	*in = Instruction{Op: OpAdd}
	captured := false

	s.skipSpace()
	if op, ok := s.operator(); ok {
		in.Op = op
	}

	s.skipSpace()
	startSeen := false
	if v, ok := s.literal(); ok {
		in.StartN = v
		startSeen = true
		captured = true
	}

	s.skipSpace()
	if s.selectGroup(in) {
		captured = true
	}

	s.skipSpace()
	if s.rollGroup(in) {
		captured = true
	}

	if !captured {
		return false
	}

	if !startSeen && in.SelectMode == SelectNone &&
		(in.RollMode == RollModeDice || in.RollMode == RollModeExploding) {
		in.MidN = 1
	}
	return true
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) operator() (Op, bool) {
	if s.pos >= len(s.src) {
		return OpAdd, false
	}
	var op Op
	switch s.src[s.pos] {
	case '+':
		op = OpAdd
	case '-':
		op = OpSub
	case '*':
		op = OpMul
	case '/':
		op = OpDiv
	default:
		return OpAdd, false
	}
	s.pos++
	return op, true
}

// literal scans an optionally negative decimal integer. On failure the
// scanner position is unchanged (a lone '-' is left for nothing; the term
// simply fails to capture).
func (s *scanner) literal() (int32, bool) {
	start := s.pos
	neg := false
	if s.pos < len(s.src) && s.src[s.pos] == '-' {
		neg = true
		s.pos++
	}
	v, ok := s.digits()
	if !ok {
		s.pos = start
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// digits is the fast-path decimal parser: it folds consecutive ASCII digits
// with no overflow checks beyond native int32 width.
func (s *scanner) digits() (int32, bool) {
	start := s.pos
	var v int32
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int32(c-'0')
		s.pos++
	}
	if s.pos == start {
		return 0, false
	}
	return v, true
}

// selectGroup scans "intermediate midliteral". The group only captures as a
// whole: an intermediate marker without a following number is rolled back.
func (s *scanner) selectGroup(in *Instruction) bool {
	start := s.pos
	if s.pos >= len(s.src) {
		return false
	}
	var m SelectMode
	switch s.src[s.pos] {
	case '>':
		m = SelectBest
	case '<':
		m = SelectWorst
	case ':':
		m = SelectRange
	default:
		return false
	}
	s.pos++
	s.skipSpace()
	v, ok := s.digits()
	if !ok {
		s.pos = start
		return false
	}
	in.SelectMode = m
	in.MidN = v
	return true
}

// rollGroup scans "mainmode endliteral", with the same all-or-nothing
// capture as selectGroup.
func (s *scanner) rollGroup(in *Instruction) bool {
	start := s.pos
	if s.pos >= len(s.src) {
		return false
	}
	var m RollMode
	switch s.src[s.pos] {
	case 'd', 'D':
		m = RollModeDice
	case '!':
		m = RollModeExploding
	case ':':
		m = RollModeRange
	default:
		return false
	}
	s.pos++
	s.skipSpace()
	v, ok := s.digits()
	if !ok {
		s.pos = start
		return false
	}
	in.RollMode = m
	in.EndN = v
	return true
}
