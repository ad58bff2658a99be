package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nanocore-dev/nanocore-as/internal/config"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nanocore.toml"))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	want := config.Default()

	if cfg.Listing != want.Listing || cfg.SymbolTable != want.SymbolTable {
		t.Errorf("got: %+v, want: %+v", cfg, want)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nanocore.toml")

	contents := `
listing = false
symbol_table = false
output_dir = "build"
sources = ["a.asm", "b.asm"]
`

	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %s", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	if cfg.Listing {
		t.Errorf("Listing: got: true, want: false")
	}

	if cfg.SymbolTable {
		t.Errorf("SymbolTable: got: true, want: false")
	}

	if cfg.OutputDir != "build" {
		t.Errorf("OutputDir: got: %q, want: build", cfg.OutputDir)
	}

	if len(cfg.Sources) != 2 || cfg.Sources[0] != "a.asm" || cfg.Sources[1] != "b.asm" {
		t.Errorf("Sources: got: %v, want: [a.asm b.asm]", cfg.Sources)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nanocore.toml")

	if err := os.WriteFile(path, []byte("not valid toml {{{"), 0o644); err != nil {
		t.Fatalf("write config: %s", err)
	}

	if _, err := config.Load(path); err == nil {
		t.Errorf("want an error for invalid TOML")
	}
}
