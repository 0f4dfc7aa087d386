// Package config loads the settings of the presentation: the symbol palette, the table
// generation policy and the server address.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/janpfeifer/GoMentalist/internal/trick"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// Environment variables that override the configuration file.
const (
	EnvAddr        = "MENTALIST_ADDR"
	EnvConfigFile  = "MENTALIST_CONFIG"
	EnvWebDir      = "MENTALIST_WEB_DIR"
	EnvIncludeZero = "MENTALIST_INCLUDE_ZERO"

	// EnvTrick is the go-app environment variable carrying the Trick settings to the browser.
	EnvTrick = "MENTALIST_TRICK"
)

// Trick holds what the browser needs to run the trick.
type Trick struct {
	Palette []string     `yaml:"palette,flow" json:"palette"`
	Policy  trick.Policy `yaml:"policy"       json:"policy"`
}

// Config of the presentation.
type Config struct {
	Addr string `yaml:"addr"    json:"addr"`

	// WebDir is the directory served under /web: styles and the compiled app.wasm.
	WebDir string `yaml:"web_dir" json:"web_dir"`

	Trick `yaml:",inline"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		WebDir: "web",
		Trick: Trick{
			Palette: trick.DefaultPalette.Strings(),
			Policy:  trick.DefaultPolicy(),
		},
	}
}

// SymbolPalette returns the configured palette.
func (t *Trick) SymbolPalette() trick.Palette {
	return trick.NewPalette(t.Palette)
}

// Validate checks palette and policy.
func (t *Trick) Validate() error {
	if err := t.SymbolPalette().Validate(); err != nil {
		return err
	}
	return t.Policy.Validate()
}

// Parse parses a YAML configuration. Fields not set keep their default values.
func Parse(raw []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load reads the YAML configuration in path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration %q: %w", path, err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	klog.V(1).Infof("config: loaded %s", path)
	return cfg, nil
}

// LoadDotEnv loads the given .env files into the process environment, if they exist.
// Variables already set in the environment are not overwritten.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load %v: %w", existing, err)
	}
	klog.V(1).Infof("config: loaded environment from %v", existing)
	return nil
}

// FromEnv loads the file named by MENTALIST_CONFIG (or path, if the variable is not set)
// and applies the remaining environment overrides.
func FromEnv(path string) (*Config, error) {
	if p := os.Getenv(EnvConfigFile); p != "" {
		path = p
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Addr = addr
	}
	if dir := os.Getenv(EnvWebDir); dir != "" {
		cfg.WebDir = dir
	}
	if v := os.Getenv(EnvIncludeZero); v != "" {
		includeZero, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s=%q: %w", EnvIncludeZero, v, err)
		}
		cfg.Policy.IncludeZero = includeZero
	}
	return cfg, nil
}

// Encode serializes the trick settings to be handed to the browser.
func (t *Trick) Encode() (string, error) {
	raw, err := yaml.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to encode trick settings: %w", err)
	}
	return string(raw), nil
}

// DecodeTrick parses settings produced by Trick.Encode. An empty string returns the defaults.
func DecodeTrick(encoded string) (*Trick, error) {
	t := &Default().Trick
	if encoded == "" {
		return t, nil
	}
	if err := yaml.Unmarshal([]byte(encoded), t); err != nil {
		return nil, fmt.Errorf("failed to decode trick settings: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
