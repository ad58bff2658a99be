package asm

// expr.go implements the recursive-descent expression evaluator described by the reference
// assembler's expression.c. Precedence, low to high:
//
//	b_expression := b_term   ( '|' b_term )*
//	b_term       := expr     ( '&' expr   )*
//	expr         := term     ( ('+'|'-') term )*
//	term         := signed   ( ('*'|'/') factor )*
//	signed       := ['+'|'-'] factor
//	factor       := '(' b_expression ')' | symbol | '.' | char_literal | number
//
// All operators are left-associative. Only the outermost (bitwise-OR) production uses the
// 50-entry number stack that the specification calls out: it is what makes a 50-level nested
// parenthesised OR-expression the exact boundary of acceptance (§8's boundary test), since every
// parenthesised sub-expression re-enters b_expression and each entry consumes one stack slot for
// the duration of its own fold loop. The inner productions fold using a local accumulator, which
// is sufficient in Go (unlike the reference's single global C array) because each recursive call
// already owns its own stack frame.

import (
	"strings"
)

const numberStackSize = 50

// Evaluator parses and evaluates nanocore integer expressions against a symbol table and a
// location counter snapshot.
type Evaluator struct {
	symbols *SymbolTable
	lc      uint32

	src string
	pos int

	stack [numberStackSize]int32
	sp    int
}

// NewEvaluator creates an evaluator for src, starting at offset 0, resolving symbols against
// symbols and reading '.' as lc.
func NewEvaluator(symbols *SymbolTable, lc uint32, src string) *Evaluator {
	return &Evaluator{symbols: symbols, lc: lc, src: src}
}

// Pos returns the evaluator's current cursor offset into its source string, for caret diagnostics.
func (e *Evaluator) Pos() int { return e.pos }

// Remaining returns the unconsumed tail of the evaluator's source.
func (e *Evaluator) Remaining() string { return e.src[e.pos:] }

// Evaluate parses one expression starting at the cursor and returns its value.
func (e *Evaluator) Evaluate() (int32, error) {
	return e.bExpression()
}

func (e *Evaluator) pushNum(v int32) error {
	if e.sp >= len(e.stack) {
		return ErrNumberStackFull
	}

	e.stack[e.sp] = v
	e.sp++

	return nil
}

func (e *Evaluator) popNum() (int32, error) {
	if e.sp == 0 {
		return 0, ErrNumberStackEmpty
	}

	e.sp--

	return e.stack[e.sp], nil
}

func (e *Evaluator) eof() bool { return e.pos >= len(e.src) }

func (e *Evaluator) peek() byte {
	if e.eof() {
		return 0
	}

	return e.src[e.pos]
}

func (e *Evaluator) skipSpaces() {
	for !e.eof() && e.src[e.pos] == ' ' {
		e.pos++
	}
}

// skipOneSpace consumes a single trailing space after a symbol or number factor, mimicking the
// reference evaluator's behaviour.
func (e *Evaluator) skipOneSpace() {
	if e.peek() == ' ' {
		e.pos++
	}
}

func (e *Evaluator) bExpression() (int32, error) {
	left, err := e.bTerm()
	if err != nil {
		return 0, err
	}

	if err := e.pushNum(left); err != nil {
		return 0, err
	}

	defer func() { _, _ = e.popNum() }()

	for {
		e.skipSpaces()

		if e.peek() != '|' {
			break
		}

		e.pos++

		right, err := e.bTerm()
		if err != nil {
			return 0, err
		}

		top, err := e.popNum()
		if err != nil {
			return 0, err
		}

		left = top | right
		if err := e.pushNum(left); err != nil {
			return 0, err
		}
	}

	return left, nil
}

func (e *Evaluator) bTerm() (int32, error) {
	left, err := e.expression()
	if err != nil {
		return 0, err
	}

	for {
		e.skipSpaces()

		if e.peek() != '&' {
			break
		}

		e.pos++

		right, err := e.expression()
		if err != nil {
			return 0, err
		}

		left &= right
	}

	return left, nil
}

func (e *Evaluator) expression() (int32, error) {
	left, err := e.term()
	if err != nil {
		return 0, err
	}

	for {
		e.skipSpaces()

		switch e.peek() {
		case '+':
			e.pos++

			right, err := e.term()
			if err != nil {
				return 0, err
			}

			left += right
		case '-':
			e.pos++

			right, err := e.term()
			if err != nil {
				return 0, err
			}

			left -= right
		default:
			return left, nil
		}
	}
}

func (e *Evaluator) term() (int32, error) {
	left, err := e.signedFactor()
	if err != nil {
		return 0, err
	}

	for {
		e.skipSpaces()

		switch e.peek() {
		case '*':
			e.pos++

			right, err := e.factor()
			if err != nil {
				return 0, err
			}

			left *= right
		case '/':
			e.pos++

			right, err := e.factor()
			if err != nil {
				return 0, err
			}

			if right == 0 {
				return 0, ErrDivisionByZero
			}

			left /= right
		default:
			return left, nil
		}
	}
}

func (e *Evaluator) signedFactor() (int32, error) {
	e.skipSpaces()

	neg := false

	switch e.peek() {
	case '+':
		e.pos++
	case '-':
		neg = true
		e.pos++
	}

	v, err := e.factor()
	if err != nil {
		return 0, err
	}

	if neg {
		v = -v
	}

	return v, nil
}

func (e *Evaluator) factor() (int32, error) {
	e.skipSpaces()

	switch {
	case e.eof():
		return 0, ErrUnexpectedEndOfStatement
	case e.peek() == '(':
		e.pos++

		v, err := e.bExpression()
		if err != nil {
			return 0, err
		}

		e.skipSpaces()

		if e.peek() != ')' {
			return 0, ErrRightParenExpected
		}

		e.pos++

		return v, nil
	case e.peek() == '.':
		e.pos++

		return int32(e.lc), nil
	case e.peek() == '\'':
		return e.charLiteral()
	case isIdentStart(e.peek()):
		return e.symbolFactor()
	default:
		return e.number()
	}
}

func (e *Evaluator) symbolFactor() (int32, error) {
	start := e.pos
	for !e.eof() && isIdentChar(e.src[e.pos]) {
		e.pos++
	}

	name := e.src[start:e.pos]

	e.skipOneSpace()

	val, ok := e.symbols.Lookup(name)
	if !ok {
		return 0, ErrUnknownSymbol
	}

	return int32(val), nil
}

// charLiteral parses a single-quoted character constant. The terminating ' is not consumed, per
// §4.2: the value is the 8-bit ASCII code of the (possibly escaped) character.
func (e *Evaluator) charLiteral() (int32, error) {
	e.pos++ // consume opening '

	if e.eof() {
		return 0, ErrUnexpectedEndOfStatement
	}

	c := e.src[e.pos]

	if c == '\\' {
		e.pos++

		if e.eof() {
			return 0, ErrUnexpectedEndOfStatement
		}

		esc := e.src[e.pos]
		e.pos++

		v, ok := charEscapes[esc]
		if !ok {
			return 0, ErrInvalidCharacter
		}

		return int32(v), nil
	}

	if c < '!' || c > '~' {
		return 0, ErrInvalidCharacter
	}

	e.pos++

	return int32(c), nil
}

var charEscapes = map[byte]byte{
	'B': '\b',
	'F': '\f',
	'N': '\n',
	'R': '\r',
	'T': '\t',
	'\\': '\\',
	'"':  '"',
}

func (e *Evaluator) number() (int32, error) {
	switch {
	case e.peek() == '%':
		e.pos++
		return e.digits(2, isBinDigit)
	case e.peek() == '$':
		e.pos++
		return e.digits(16, isHexDigit)
	case e.hasPrefix("0B"):
		e.pos += 2
		return e.digits(2, isBinDigit)
	case e.hasPrefix("0X"):
		e.pos += 2
		return e.digits(16, isHexDigit)
	case isDecDigit(e.peek()):
		return e.digits(10, isDecDigit)
	default:
		return 0, ErrInvalidCharacter
	}
}

func (e *Evaluator) hasPrefix(p string) bool {
	return strings.HasPrefix(e.src[e.pos:], p)
}

func (e *Evaluator) digits(base int32, valid func(byte) bool) (int32, error) {
	start := e.pos

	for !e.eof() && valid(e.src[e.pos]) {
		e.pos++
	}

	if e.pos == start {
		return 0, ErrInvalidCharacter
	}

	text := e.src[start:e.pos]

	e.skipOneSpace()

	var v int32

	for i := 0; i < len(text); i++ {
		v = v*base + int32(digitValue(text[i]))
	}

	return v, nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}

func isDecDigit(c byte) bool { return c >= '0' && c <= '9' }
func isBinDigit(c byte) bool { return c == '0' || c == '1' }
func isHexDigit(c byte) bool {
	return isDecDigit(c) || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool { return c >= 'A' && c <= 'Z' }

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDecDigit(c) || c == '_'
}
