package asm

// assembler.go consolidates the per-pass state the reference keeps as process-wide globals
// (argument results, the open source handle, the symbol-table root) into a single context value
// threaded through the pipeline, per §9 of the specification's design notes. Assembler is that
// context; Assemble runs the two-pass driver of §4.8 to completion.

import (
	"strings"
	"time"

	"github.com/nanocore-dev/nanocore-as/internal/log"
)

// Pass identifies which of the two sweeps over the source is in progress.
type Pass uint8

//go:generate go run golang.org/x/tools/cmd/stringer -type Pass -output pass_string.go

const (
	// PassOne builds the symbol table and measures statement lengths; it writes no bytes.
	PassOne Pass = iota
	// PassTwo re-walks the source, resolves symbols, and writes bytes and listing rows.
	PassTwo
)

// Options configures one assembly run. It mirrors the command-line collaborator's -l and -s flags.
type Options struct {
	SourceName  string // Used in diagnostics and the listing header; may be empty.
	Listing     bool   // -l LIST (default true)
	SymbolTable bool   // -s SYM (default true); only meaningful when Listing is also true
}

// Result is the product of a successful assembly.
type Result struct {
	Address uint32 // Location of Binary[0]; 0 if nothing was ever written.
	Binary  []byte // Raw program-memory bytes, per §6.
	Listing string // CRLF-terminated listing text; empty unless Options.Listing was set.
	Symbols *SymbolTable
}

// Assembler threads the pipeline's shared state: the symbol table, program memory, the current
// pass and location counter, and the column widths tallied during pass one for the pass-two
// listing formatter.
type Assembler struct {
	Symbols *SymbolTable
	Memory  *Memory
	Pass    Pass
	LC      uint32

	LargestSymbolLength  int
	LargestOperandLength int

	logger *log.Logger

	listing *Listing
}

// NewAssembler creates an assembler with fresh, empty state.
func NewAssembler(logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Assembler{
		Symbols: NewSymbolTable(),
		Memory:  NewMemory(),
		logger:  logger,
	}
}

// Assemble runs the two-pass driver of §4.8 over lines and returns the resulting binary image and,
// if requested, a listing. On error it returns a *SyntaxError carrying enough source position to
// render the caret diagnostic of §7.
func Assemble(lines []string, opts Options, logger *log.Logger) (*Result, error) {
	a := NewAssembler(logger)

	for pass := PassOne; pass <= PassTwo; pass++ {
		a.Pass = pass
		a.LC = 0

		if pass == PassTwo && opts.Listing {
			a.listing = NewListing(a.LargestSymbolLength, a.LargestOperandLength)
			a.listing.WriteHeader(opts.SourceName, time.Now())
		} else {
			a.listing = nil
		}

		for i, raw := range lines {
			lineNumber := i + 1

			done, err := a.assembleLine(lineNumber, raw)
			if err != nil {
				return nil, a.wrap(err, lineNumber, raw)
			}

			if a.LC > memorySize {
				return nil, a.wrap(ErrExceededProgramMemory, lineNumber, raw)
			}

			if done {
				break
			}
		}
	}

	first, _ := a.Memory.FirstWritten()

	result := &Result{
		Address: uint32(first),
		Binary:  a.Memory.Bytes(a.LC),
		Symbols: a.Symbols,
	}

	if opts.Listing {
		if opts.SymbolTable {
			a.listing.WriteAppendix(a.Symbols)
		}

		result.Listing = a.listing.String()
	}

	a.logger.Info("assembly complete",
		log.String("source", opts.SourceName),
		log.Any("bytes", len(result.Binary)),
		log.Any("symbols", a.Symbols.Count()),
	)

	return result, nil
}

// assembleLine splits and processes one source line, returning whether END was reached.
func (a *Assembler) assembleLine(lineNumber int, raw string) (done bool, err error) {
	line, err := SplitLine(raw)
	if err != nil {
		return false, err
	}

	lineLC := a.LC

	if err := a.processLabel(line); err != nil {
		return false, err
	}

	emitted, done, err := a.dispatchStatement(lineLC, line.Statement, line.Label != "")
	if err != nil {
		return false, err
	}

	for _, b := range emitted {
		if err := a.emit(b); err != nil {
			return false, err
		}
	}

	if a.Pass == PassOne {
		a.trackColumnWidths(line)
	}

	if a.Pass == PassTwo && a.listing != nil {
		a.writeListingRow(lineNumber, lineLC, line, emitted)
	}

	return done, nil
}

// processLabel implements §4.7: insert (or, on pass two, merely validate) a colon-terminated label
// at the location counter value the line started with.
func (a *Assembler) processLabel(line Line) error {
	if line.Label == "" {
		return nil
	}

	if err := validateSymbolName(line.Label); err != nil {
		return err
	}

	if a.Pass != PassOne {
		return nil
	}

	return a.Symbols.Insert(line.Label, a.LC)
}

// emit writes one byte at the current location counter (pass two only) and advances LC.
func (a *Assembler) emit(b byte) error {
	if a.Pass == PassTwo {
		if err := a.Memory.Write(a.LC, b); err != nil {
			return err
		}
	}

	a.LC++

	return nil
}

// trackColumnWidths tallies the listing formatter's column widths during pass one: the longest
// symbol name (already available from the symbol table) and the longest operand text.
func (a *Assembler) trackColumnWidths(line Line) {
	if n := a.Symbols.LargestName(); n > a.LargestSymbolLength {
		a.LargestSymbolLength = n
	}

	_, operand := splitHead(line.Statement)
	if n := len(strings.TrimSpace(operand)); n > a.LargestOperandLength {
		a.LargestOperandLength = n
	}
}

// writeListingRow renders the listing row (and any continuation rows) for one processed line.
func (a *Assembler) writeListingRow(lineNumber int, lc uint32, line Line, emitted []byte) {
	mnemonic, operand := splitHead(line.Statement)
	if isMnemonic(mnemonic) || directiveNames[mnemonic] {
		operand = strings.TrimSpace(operand)
	} else {
		mnemonic, operand = "", strings.TrimSpace(line.Statement)
	}

	if len(emitted) == 0 {
		a.listing.WriteBlankRow(lineNumber, lc, line.Label, mnemonic, operand, line.Comment)
		return
	}

	a.listing.WriteRow(lineNumber, lc, emitted, line.Label, mnemonic, operand, line.Comment)
}

// wrap attaches source position to err for the caret diagnostic, unless it is already wrapped.
func (a *Assembler) wrap(err error, lineNumber int, raw string) error {
	var se *SyntaxError
	if asSyntaxError(err, &se) {
		return err
	}

	return &SyntaxError{
		Pos:  lineNumber,
		Line: raw,
		Col:  0,
		Err:  err,
	}
}

func asSyntaxError(err error, target **SyntaxError) bool {
	se, ok := err.(*SyntaxError)
	if ok {
		*target = se
	}

	return ok
}
