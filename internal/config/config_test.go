package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/janpfeifer/GoMentalist/internal/trick"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
addr: "localhost:9999"
palette: [a, b, c]
policy:
  include_zero: false
  decoys:
    mode: range
    min: 8
    max: 12
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Addr != "localhost:9999" {
		t.Errorf("Expected addr localhost:9999, got %q", cfg.Addr)
	}
	if len(cfg.Palette) != 3 || cfg.Palette[2] != "c" {
		t.Errorf("Unexpected palette %v", cfg.Palette)
	}
	want := trick.Policy{IncludeZero: false, Decoys: trick.DecoyPolicy{Mode: trick.DecoysRange, Min: 8, Max: 12}}
	if cfg.Policy != want {
		t.Errorf("Expected policy %+v, got %+v", want, cfg.Policy)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`addr: ":8080"`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(cfg.Palette) != len(trick.DefaultPalette) {
		t.Errorf("Expected default palette of %d symbols, got %d", len(trick.DefaultPalette), len(cfg.Palette))
	}
	if cfg.Policy != trick.DefaultPolicy() {
		t.Errorf("Expected default policy, got %+v", cfg.Policy)
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`palette: [a, a]`))
	var paletteErr *trick.InvalidPaletteError
	if !errors.As(err, &paletteErr) {
		t.Errorf("Expected InvalidPaletteError, got %v", err)
	}

	_, err = Parse([]byte("policy:\n  decoys:\n    mode: fixed\n    count: 40\n"))
	var policyErr *trick.InvalidPolicyError
	if !errors.As(err, &policyErr) {
		t.Errorf("Expected InvalidPolicyError, got %v", err)
	}

	if _, err := Parse([]byte(`palette: {`)); err == nil {
		t.Errorf("Expected error for malformed YAML")
	}
}

func TestFromEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mentalist.yaml")
	if err := os.WriteFile(cfgPath, []byte("addr: \":1\"\npalette: [x, y]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("MENTALIST_CONFIG="+cfgPath+"\nMENTALIST_ADDR=127.0.0.1:7777\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvAddr, "")
	t.Setenv(EnvIncludeZero, "false")
	os.Unsetenv(EnvConfigFile)
	os.Unsetenv(EnvAddr)

	if err := LoadDotEnv(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	cfg, err := FromEnv("")
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7777" {
		t.Errorf("Expected addr from .env, got %q", cfg.Addr)
	}
	if len(cfg.Palette) != 2 {
		t.Errorf("Expected palette from config file, got %v", cfg.Palette)
	}
	if cfg.Policy.IncludeZero {
		t.Errorf("Expected %s=false to disable zero", EnvIncludeZero)
	}

	t.Setenv(EnvIncludeZero, "maybe")
	if _, err := FromEnv(""); err == nil {
		t.Errorf("Expected error for invalid %s", EnvIncludeZero)
	}
}

func TestTrickEncoding(t *testing.T) {
	src := Trick{
		Palette: []string{"🌟", "🌙", "🔥"},
		Policy:  trick.Policy{IncludeZero: true, Decoys: trick.DecoyPolicy{Mode: trick.DecoysFixed, Count: 1}},
	}
	encoded, err := src.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := DecodeTrick(encoded)
	if err != nil {
		t.Fatalf("DecodeTrick failed: %v", err)
	}
	if got.Policy != src.Policy || len(got.Palette) != 3 || got.Palette[0] != "🌟" {
		t.Errorf("Round trip changed settings: %+v -> %+v", src, got)
	}

	def, err := DecodeTrick("")
	if err != nil {
		t.Fatalf("DecodeTrick(\"\") failed: %v", err)
	}
	if len(def.SymbolPalette()) != len(trick.DefaultPalette) {
		t.Errorf("Expected default palette")
	}
}

func TestExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "mentalist.example.yaml"))
	if err != nil {
		t.Fatalf("Failed to load example configuration: %v", err)
	}
	if cfg.Policy.Decoys.Mode != trick.DecoysRange || cfg.Policy.Decoys.Min != 8 || cfg.Policy.Decoys.Max != 12 {
		t.Errorf("Unexpected decoy policy %+v", cfg.Policy.Decoys)
	}
	if len(cfg.Palette) != 20 {
		t.Errorf("Expected 20 symbols, got %d", len(cfg.Palette))
	}
}
