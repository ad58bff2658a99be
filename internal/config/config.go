// Package config loads the assembler's optional project file, nanocore.toml, following the
// project-config pattern the wider example pool uses for TOML-based settings: a struct of
// defaults, decoded in place over a file that may be partially specified or missing entirely.
package config

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the project file name looked for in the current directory when the command-line
// collaborator is not told otherwise.
const DefaultFile = "nanocore.toml"

// Config holds the subset of assembler options a project may fix across invocations. Command-line
// flags always take precedence over these values; see cmd.assembler.options.
type Config struct {
	Listing     bool     `toml:"listing"`      // default for -l; true means LIST
	SymbolTable bool     `toml:"symbol_table"` // default for -s; true means SYM
	HexOutput   bool     `toml:"hex_output"`   // default for -x; true means HEX, emitting an Intel-Hex image alongside the binary
	OutputDir   string   `toml:"output_dir"`   // directory .bin/.lst/.hex files are written to, "" means alongside the source
	Sources     []string `toml:"sources"`      // source files to assemble when none are named on the command line
}

// Default returns the configuration used when no project file is found: listing and symbol-table
// appendix both on, hex output off, output alongside the source, no implicit source list.
func Default() *Config {
	return &Config{
		Listing:     true,
		SymbolTable: true,
	}
}

// Load reads path and decodes it over Default(). A missing file is not an error -- it is the
// ordinary case for a source tree with no project file -- and Load returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	bs, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, err
	}

	if _, err := toml.Decode(string(bs), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
