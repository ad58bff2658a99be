package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/nanocore-dev/nanocore-as/internal/asm"
	"github.com/nanocore-dev/nanocore-as/internal/cli"
	"github.com/nanocore-dev/nanocore-as/internal/config"
	"github.com/nanocore-dev/nanocore-as/internal/encoding"
	"github.com/nanocore-dev/nanocore-as/internal/log"
)

// Assembler is the command that translates nanocore assembly source into a binary program image
// and an optional listing.
//
//	nanocore-as asm -l LIST -s SYM -x HEX file.asm
//
// An optional project file, nanocore.toml, in the current directory supplies defaults for -l, -s,
// -x, an output directory, and a list of source files to assemble when none are named on the
// command line. Flags given on the command line always override the project file.
func Assembler() cli.Command {
	return &assembler{}
}

type assembler struct {
	listing     string
	symbolTable string
	hexOutput   string
	configFile  string
}

func (assembler) Description() string {
	return "assemble nanocore source into a binary image and listing"
}

func (assembler) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `asm [-l LIST|NOLIST] [-s SYM|NOSYM] [-x HEX|NOHEX] [-config FILE] [file.asm]...

Assemble nanocore source into <file>.bin, and, unless -l NOLIST is given,
<file>.lst. Given -x HEX, also writes <file>.hex, an Intel-Hex encoding of
the same image. Flags override any value read from the project file
(default nanocore.toml); if no source files are named, the project file's
source list is assembled instead.`)

	return err
}

func (a *assembler) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	fs.StringVar(&a.listing, "l", "", "listing output: `LIST` or `NOLIST`")
	fs.StringVar(&a.symbolTable, "s", "", "symbol-table appendix: `SYM` or `NOSYM`")
	fs.StringVar(&a.hexOutput, "x", "", "Intel-Hex image output: `HEX` or `NOHEX`")
	fs.StringVar(&a.configFile, "config", config.DefaultFile, "project configuration `file`")

	return fs
}

// Run assembles each file named in args, or, if args is empty, the sources listed in the project
// file.
func (a *assembler) Run(_ context.Context, args []string, _ io.Writer, logger *log.Logger) int {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		logger.Error("configuration error", "file", a.configFile, "err", err)
		return 1
	}

	opts, hexOutput, err := a.options(cfg)
	if err != nil {
		logger.Error("argument error", "err", err)
		return 1
	}

	if len(args) == 0 {
		args = cfg.Sources
	}

	if len(args) == 0 {
		logger.Error("argument error", "err", "no source file given")
		return 1
	}

	for _, fn := range args {
		if err := assembleFile(fn, cfg.OutputDir, opts, hexOutput, logger); err != nil {
			logger.Error("assembly failed", "file", fn, "err", err)
			return 1
		}
	}

	return 0
}

// options resolves -l/-s/-x against cfg: an explicit flag value wins, an empty flag value falls
// back to the project file's default. It returns the asm.Options the assembler pipeline consumes
// and, separately, whether an Intel-Hex image should also be written -- a presentation-layer
// concern the assembler itself has no opinion about.
func (a *assembler) options(cfg *config.Config) (opts asm.Options, hexOutput bool, err error) {
	opts = asm.Options{
		Listing:     cfg.Listing,
		SymbolTable: cfg.SymbolTable,
	}

	hexOutput = cfg.HexOutput

	switch a.listing {
	case "":
	case "LIST":
		opts.Listing = true
	case "NOLIST":
		opts.Listing = false
	default:
		return opts, hexOutput, fmt.Errorf("invalid -l value: %q", a.listing)
	}

	switch a.symbolTable {
	case "":
	case "SYM":
		opts.SymbolTable = true
	case "NOSYM":
		opts.SymbolTable = false
	default:
		return opts, hexOutput, fmt.Errorf("invalid -s value: %q", a.symbolTable)
	}

	switch a.hexOutput {
	case "":
	case "HEX":
		hexOutput = true
	case "NOHEX":
		hexOutput = false
	default:
		return opts, hexOutput, fmt.Errorf("invalid -x value: %q", a.hexOutput)
	}

	return opts, hexOutput, nil
}

func assembleFile(fn, outputDir string, opts asm.Options, hexOutput bool, logger *log.Logger) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}

	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return err
	}

	opts.SourceName = fn

	result, err := asm.Assemble(lines, opts, logger)
	if err != nil {
		var se *asm.SyntaxError
		if errors.As(err, &se) {
			fmt.Fprint(os.Stdout, se.CaretWidth(outputWidth()))
		}

		return err
	}

	base := strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
	if outputDir != "" {
		base = filepath.Join(outputDir, base)
	} else {
		base = filepath.Join(filepath.Dir(fn), base)
	}

	if err := os.WriteFile(base+".bin", result.Binary, 0o644); err != nil {
		return err
	}

	if opts.Listing {
		if err := os.WriteFile(base+".lst", []byte(result.Listing), 0o644); err != nil {
			return err
		}
	}

	if hexOutput {
		he := encoding.HexEncoding{Addr: result.Address, Data: result.Binary}

		text, err := he.MarshalText()
		if err != nil {
			return err
		}

		if err := os.WriteFile(base+".hex", text, 0o644); err != nil {
			return err
		}
	}

	logger.Debug("assembled",
		"file", fn,
		"bytes", len(result.Binary),
		"symbols", result.Symbols.Count(),
	)

	return nil
}

// outputWidth returns the terminal width of stdout, or 0 (unbounded) if it is not a terminal.
func outputWidth() int {
	fd := int(os.Stdout.Fd())

	if !term.IsTerminal(fd) {
		return 0
	}

	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}

	return w
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}
