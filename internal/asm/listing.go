package asm

// listing.go implements the fixed-column listing formatter of §4.9: one row per pass-two
// statement, continuation rows for BYTE items that emit more than three bytes, a header and an
// optional symbol-table appendix. Grounded on the teacher's own internal/encoding column-width
// conventions, adapted to the specification's exact field widths.

import (
	"fmt"
	"strings"
	"time"
)

const (
	lineNumberFieldWidth = 7
	lcFieldWidth         = 6
	objectCodeFieldWidth = 10
	mnemonicFieldWidth   = 5
	listingWidth         = 80
	crlf                 = "\r\n"
)

// Listing accumulates the text of one pass-two listing.
type Listing struct {
	buf                  strings.Builder
	largestSymbolLength  int
	largestOperandLength int
}

// NewListing creates a listing sized for the given column widths, taken from pass one's tally.
func NewListing(largestSymbolLength, largestOperandLength int) *Listing {
	return &Listing{
		largestSymbolLength:  largestSymbolLength,
		largestOperandLength: largestOperandLength,
	}
}

// WriteHeader emits the title, filename/version/timestamp line, column headings and rule.
func (l *Listing) WriteHeader(sourceName string, now time.Time) {
	title := "NANOCORE ASSEMBLER LISTING"
	pad := (listingWidth - len(title)) / 2

	if pad < 0 {
		pad = 0
	}

	l.line(strings.Repeat(" ", pad) + title)
	l.line(fmt.Sprintf("%-40s VERSION 1.0.0  %s", sourceName, now.Format("Mon Jan 2 15:04:05 2006")))
	l.line(fmt.Sprintf("%-*s%-*s%-*s%s", lineNumberFieldWidth, "LINE#", lcFieldWidth, "LC", objectCodeFieldWidth, "OBJECT CODE", "SOURCE"))
	l.line(strings.Repeat(" ", lineNumberFieldWidth+lcFieldWidth+objectCodeFieldWidth) + "------")
	l.line(strings.Repeat("-", listingWidth))
}

// symbolFieldWidth is the width of the label column within the reconstructed-source field.
func (l *Listing) symbolFieldWidth() int { return l.largestSymbolLength + 2 }

// WriteRow emits one listing row: the first three object-code bytes (if any) alongside the
// reconstructed source, followed by continuation rows for any remaining bytes.
func (l *Listing) WriteRow(lineNumber int, lc uint32, bytes []byte, label, mnemonic, operand, comment string) {
	first := bytes
	if len(first) > 3 {
		first = bytes[:3]
	}

	l.line(fmt.Sprintf("%05d  %04X  %-10s%s",
		lineNumber, lc, objectCodeField(first), reconstructedSource(l.symbolFieldWidth(), l.largestOperandLength, label, mnemonic, operand, comment)))

	rest := bytes[len(first):]
	lc += uint32(len(first))

	for len(rest) > 0 {
		chunk := rest
		if len(chunk) > 3 {
			chunk = rest[:3]
		}

		l.line(fmt.Sprintf("%05d  %04X  %-10s", lineNumber, lc, objectCodeField(chunk)))

		lc += uint32(len(chunk))
		rest = rest[len(chunk):]
	}
}

// WriteBlankRow emits a listing row for a line with no object code, e.g. a comment-only line,
// a label-only line, EQU, or END.
func (l *Listing) WriteBlankRow(lineNumber int, lc uint32, label, mnemonic, operand, comment string) {
	l.line(fmt.Sprintf("%05d  %04X  %-10s%s",
		lineNumber, lc, "", reconstructedSource(l.symbolFieldWidth(), l.largestOperandLength, label, mnemonic, operand, comment)))
}

func objectCodeField(bytes []byte) string {
	parts := make([]string, len(bytes))
	for i, b := range bytes {
		parts[i] = fmt.Sprintf("%02X", b)
	}

	return strings.Join(parts, " ")
}

func reconstructedSource(symbolWidth, operandWidth int, label, mnemonic, operand, comment string) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "%-*s", symbolWidth, label)
	fmt.Fprintf(&buf, "%-*s", mnemonicFieldWidth, mnemonic)
	fmt.Fprintf(&buf, "%-*s", operandWidth, operand)

	if comment != "" {
		buf.WriteString("; ")
		buf.WriteString(comment)
	}

	return strings.TrimRight(buf.String(), " ")
}

// WriteAppendix emits the symbol-table appendix in ascending name order.
func (l *Listing) WriteAppendix(symbols *SymbolTable) {
	if symbols.Count() == 0 {
		return
	}

	width := symbols.LargestName()
	if width < 6 {
		width = 6
	}

	width += 2

	l.buf.WriteString(crlf)
	l.line(fmt.Sprintf("%-*sVALUE", width, "SYMBOL"))

	symbols.WalkInOrder(func(name string, value uint32) bool {
		l.line(fmt.Sprintf("%-*s%08X", width, name, value))
		return true
	})
}

func (l *Listing) line(s string) {
	l.buf.WriteString(s)
	l.buf.WriteString(crlf)
}

// String returns the accumulated listing text.
func (l *Listing) String() string { return l.buf.String() }
