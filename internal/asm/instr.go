package asm

// instr.go implements the addressing-mode prefix parser, addressing-mode selection and code
// generation for the 21 nanocore instruction mnemonics. Per §9 of the specification's design
// notes, this is a compile-time constant table of tagged variants (one per addressing mode) with
// an exhaustive match in the emitter, rather than the one-Go-type-per-mnemonic style the teacher
// uses for the (much larger, register-oriented) LC-3 instruction set -- nanocore's single-operand,
// register-less ISA is a better fit for a data table, and the specification's own design notes
// call for exactly that rewrite.

import (
	"strings"
)

// AddressingMode represents how an instruction's sole operand addresses its value.
type AddressingMode uint8

//go:generate go run golang.org/x/tools/cmd/stringer -type AddressingMode -output addressingmode_string.go

// Addressing modes, per §3 and §6 of the specification.
const (
	Implied AddressingMode = iota
	Immediate
	DirectPage
	DirectPageIndirect
	Absolute
)

// Variant is one opcode encoding of a mnemonic: its opcode byte, addressing mode, operand count
// and total instruction length in bytes.
type Variant struct {
	Opcode   byte
	Mode     AddressingMode
	Operands int
	Length   int
}

// instructionSet is the normative opcode table from §6 of the specification.
var instructionSet = map[string][]Variant{
	"ADD": {{0x10, Immediate, 1, 2}, {0x00, DirectPage, 1, 2}},
	"AND": {{0x12, Immediate, 1, 2}, {0x04, DirectPage, 1, 2}},
	"BCC": {{0x17, Absolute, 1, 3}},
	"BCS": {{0x18, Absolute, 1, 3}},
	"BZC": {{0x1A, Absolute, 1, 3}},
	"BZS": {{0x1B, Absolute, 1, 3}},
	"CLC": {{0x0B, Implied, 0, 1}},
	"DDP": {{0x09, Implied, 0, 1}},
	"IDP": {{0x0A, Implied, 0, 1}},
	"JMP": {{0x16, Absolute, 1, 3}},
	"JSR": {{0x1C, Absolute, 1, 3}},
	"LDA": {{0x15, Immediate, 1, 2}, {0x07, DirectPage, 1, 2}, {0x1E, DirectPageIndirect, 1, 3}, {0x0E, Absolute, 1, 3}},
	"LDP": {{0x19, Immediate, 1, 2}, {0x02, Absolute, 1, 3}},
	"ORA": {{0x13, Immediate, 1, 2}, {0x05, DirectPage, 1, 2}},
	"ROL": {{0x03, Implied, 0, 1}},
	"ROR": {{0x0D, Implied, 0, 1}},
	"RTS": {{0x1D, Implied, 0, 1}},
	"SEC": {{0x0C, Implied, 0, 1}},
	"STA": {{0x08, DirectPage, 1, 2}, {0x1F, DirectPageIndirect, 1, 3}, {0x0F, Absolute, 1, 3}},
	"SUB": {{0x11, Immediate, 1, 2}, {0x01, DirectPage, 1, 2}},
	"XOR": {{0x14, Immediate, 1, 2}, {0x06, DirectPage, 1, 2}},
}

// isMnemonic reports whether name names an instruction.
func isMnemonic(name string) bool {
	_, ok := instructionSet[name]
	return ok
}

// operandSyntax describes the syntactic shape of an instruction's operand, determined without
// evaluating any expression: the addressing mode and, for DirectPageIndirect, the inner text with
// its disambiguating outer parenthesis already stripped.
type operandSyntax struct {
	mode AddressingMode
	text string // operand text: '#' and DirectPageIndirect parens stripped; DirectPage brackets kept
}

// classifyOperand determines the addressing mode of operand text, which is the statement with the
// mnemonic removed and both ends trimmed. This mirrors §4.6 step 2.
//
// The direct-page-indirect form `(expr)` and a parenthesised grouping used for Absolute mode are
// syntactically identical at the character level: both start with '(' and both may be the whole,
// trailing-')' operand (e.g. "(5)" and "(1+2)"). The specification's literal rule ("a ( at the
// start of an operand is direct-page-indirect only if the statement's final character is )") is
// necessary but not sufficient -- by itself it would make "(1+2)" direct-page-indirect too, which
// contradicts §8 scenario 5 where "LDA (1+2)" must assemble as Absolute. The rule implemented here,
// which does reproduce that scenario, additionally requires the parenthesised content to be a
// single factor with no top-level operator: "(5)" qualifies (direct-page-indirect, value 5); "(1+2)"
// does not (its content has a top-level '+'), so it falls through to Absolute and is evaluated as
// an ordinary grouped expression, which itself uses the same parentheses via the <factor> grammar
// rule. This resolution is recorded in DESIGN.md.
func classifyOperand(operand string) operandSyntax {
	trimmed := strings.TrimSpace(operand)

	switch {
	case strings.HasPrefix(trimmed, "#"):
		return operandSyntax{mode: Immediate, text: trimmed[1:]}
	case strings.HasPrefix(trimmed, "["):
		return operandSyntax{mode: DirectPage, text: trimmed}
	case strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")"):
		inner := trimmed[1 : len(trimmed)-1]
		if !hasTopLevelOperator(inner) {
			return operandSyntax{mode: DirectPageIndirect, text: inner}
		}

		return operandSyntax{mode: Absolute, text: trimmed}
	default:
		return operandSyntax{mode: Absolute, text: trimmed}
	}
}

// hasTopLevelOperator reports whether s contains a binary operator outside of any nested
// parenthesis and outside of a character literal.
func hasTopLevelOperator(s string) bool {
	depth := 0
	inChar := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case inChar:
			inChar = false
		case c == '\'':
			inChar = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && i > 0 && strings.IndexByte("+-*/&|", c) >= 0:
			return true
		}
	}

	return false
}

// findVariant looks up the variant of mnemonic matching mode and operand count.
func findVariant(mnemonic string, mode AddressingMode, operands int) (Variant, error) {
	variants := instructionSet[mnemonic]

	for _, v := range variants {
		if v.Operands == operands && (operands == 0 || v.Mode == mode) {
			return v, nil
		}
	}

	for _, v := range variants {
		if v.Operands == operands {
			return Variant{}, ErrTypeNotSupported
		}
	}

	return Variant{}, ErrIncorrectOperandCount
}

// operandRange returns the inclusive value range permitted for mode.
func operandRange(mode AddressingMode) (lo, hi int64) {
	switch mode {
	case Immediate, DirectPage:
		return 0, 255
	default:
		return 0, 65535
	}
}

// bracketed strips a single layer of '[' ']' from a DirectPage operand, per §4.6 step 2.
func bracketed(text string) (string, error) {
	trimmed := strings.TrimSpace(text)

	if !strings.HasPrefix(trimmed, "[") {
		return "", ErrRightBracketExpected
	}

	if !strings.HasSuffix(trimmed, "]") {
		return "", ErrRightBracketExpected
	}

	return trimmed[1 : len(trimmed)-1], nil
}

// executeInstruction implements §4.6 in full: addressing-mode selection, variant lookup, range
// checking and (on pass two) byte emission. lineLC is the location counter at the start of the
// line, used as the '.' value for any operand expression.
func (a *Assembler) executeInstruction(lineLC uint32, mnemonic, operandText string) ([]byte, error) {
	variants := instructionSet[mnemonic]

	if len(variants) == 1 && variants[0].Operands == 0 {
		if strings.TrimSpace(operandText) != "" {
			return nil, ErrEndOfStatementExpected
		}

		return a.emitInstruction(variants[0], 0)
	}

	if strings.TrimSpace(operandText) == "" {
		return nil, ErrUnexpectedEndOfStatement
	}

	syntax := classifyOperand(operandText)

	exprText := syntax.text

	if syntax.mode == DirectPage {
		inner, err := bracketed(syntax.text)
		if err != nil {
			return nil, err
		}

		exprText = inner
	}

	variant, err := findVariant(mnemonic, syntax.mode, 1)
	if err != nil {
		return nil, err
	}

	if a.Pass == PassOne {
		return make([]byte, variant.Length), nil
	}

	v, err := evaluateOperand(a.Symbols, lineLC, exprText)
	if err != nil {
		return nil, err
	}

	lo, hi := operandRange(syntax.mode)
	if int64(v) < lo || int64(v) > hi {
		return nil, ErrInvalidValue
	}

	return a.emitInstruction(variant, v)
}

// emitInstruction produces the byte slice for variant with operand value v (ignored when
// variant.Length == 1). On pass one it returns a length-only placeholder.
func (a *Assembler) emitInstruction(variant Variant, v int32) ([]byte, error) {
	if a.Pass == PassOne {
		return make([]byte, variant.Length), nil
	}

	out := make([]byte, variant.Length)
	out[0] = variant.Opcode

	switch variant.Length {
	case 2:
		out[1] = byte(v)
	case 3:
		out[1] = byte(v)
		out[2] = byte(v >> 8)
	}

	return out, nil
}

// evaluateOperand evaluates expr in full, distinguishing a trailing comma (a second operand, which
// nanocore instructions never accept) from any other trailing garbage.
func evaluateOperand(symbols *SymbolTable, lc uint32, expr string) (int32, error) {
	ev := NewEvaluator(symbols, lc, expr)

	v, err := ev.Evaluate()
	if err != nil {
		return 0, err
	}

	ev.skipSpaces()

	if !ev.eof() {
		if ev.peek() == ',' {
			return 0, ErrTooManyOperands
		}

		return 0, ErrEndOfStatementExpected
	}

	return v, nil
}
