package asm

// dispatch.go implements the statement dispatcher of §4.4: classify the head token of a statement
// and route to the matching directive or instruction handler.

import "strings"

// directiveNames are the three directives recognised by their head token, ahead of the instruction
// mnemonics. EQU follows a symbol rather than heading the statement and is handled separately.
var directiveNames = map[string]bool{
	"BYTE": true,
	"END":  true,
	"ORG":  true,
}

// splitHead splits s at its first run of whitespace, returning the leading token and the
// (untrimmed) remainder. Both s and the returned head are already upper-cased by the line
// splitter.
func splitHead(s string) (head, rest string) {
	s = strings.TrimLeft(s, " ")

	i := strings.IndexByte(s, ' ')
	if i < 0 {
		return s, ""
	}

	return s[:i], s[i+1:]
}

// validateSymbolName reports whether name is a legal symbol per §3: 1-255 upper-case letters,
// digits or underscores, the first character a letter. ErrLetterExpected is returned when the
// leading character itself is the problem, matching the reference's LetterExpectedSyntaxError;
// any other malformed character or length yields ErrInvalidCharacter.
func validateSymbolName(name string) error {
	if len(name) == 0 || len(name) > maxLabelLength {
		return ErrInvalidCharacter
	}

	if !isIdentStart(name[0]) {
		return ErrLetterExpected
	}

	for i := 1; i < len(name); i++ {
		if !isIdentChar(name[i]) {
			return ErrInvalidCharacter
		}
	}

	return nil
}

// validSymbolName reports whether name is a legal symbol per §3.
func validSymbolName(name string) bool {
	return validateSymbolName(name) == nil
}

// dispatchStatement classifies stmt's head token and executes the matching handler. lineLC is the
// location counter at the start of the line (before this statement's own emission), used as the
// operand-expression '.' value. It returns the bytes the statement emits (on pass one, a
// zero-filled slice of the same length; nil for statements that never emit) and whether the END
// directive was reached.
func (a *Assembler) dispatchStatement(lineLC uint32, stmt string, hasLabel bool) (emitted []byte, done bool, err error) {
	if stmt == "" {
		return nil, false, nil
	}

	head, rest := splitHead(stmt)

	switch {
	case head == "ORG":
		return nil, false, a.directiveOrg(lineLC, rest)
	case head == "BYTE":
		b, err := a.directiveByte(lineLC, rest)
		return b, false, err
	case head == "END":
		if hasLabel {
			return nil, true, ErrEndDirectiveNotAlone
		}

		return nil, true, a.directiveEnd(rest)
	case isMnemonic(head):
		b, err := a.executeInstruction(lineLC, head, rest)
		return b, false, err
	default:
		symbol, tail := splitHead(stmt)
		next, value := splitHead(tail)

		if next != "EQU" {
			return nil, false, ErrExpectedEquAfterSymbol
		}

		if hasLabel {
			return nil, false, ErrLabelOnEquLine
		}

		if err := validateSymbolName(symbol); err != nil {
			return nil, false, err
		}

		return nil, false, a.directiveEqu(lineLC, symbol, value)
	}
}
