// Package config loads tuplegen.toml, the per-project generator settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tuplegen/internal/expand"
	"tuplegen/internal/format"
)

// FileName is the name looked up from the working directory upwards.
const FileName = "tuplegen.toml"

// maxArityLimit bounds max_arity; every arity produces one impl block.
const maxArityLimit = 4096

type Config struct {
	Generator   GeneratorConfig   `toml:"generator"`
	Output      OutputConfig      `toml:"output"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type GeneratorConfig struct {
	Attribute      string `toml:"attribute"`
	Marker         string `toml:"marker"`
	ElementPrefix  string `toml:"element_prefix"`
	SuppressUnused bool   `toml:"suppress_unused"`
	MaxArity       int    `toml:"max_arity"`
}

type OutputConfig struct {
	IndentWidth int  `toml:"indent_width"`
	UseTabs     bool `toml:"use_tabs"`
	InlineWidth int  `toml:"inline_width"`
}

type DiagnosticsConfig struct {
	Max int `toml:"max"`
}

// Default returns the settings used without a tuplegen.toml.
func Default() Config {
	gen := expand.DefaultConfig()
	return Config{
		Generator: GeneratorConfig{
			Attribute:      "impl_for_tuples",
			Marker:         gen.Marker,
			ElementPrefix:  gen.ElementPrefix,
			SuppressUnused: gen.SuppressUnused,
			MaxArity:       gen.MaxArity,
		},
		Output: OutputConfig{
			IndentWidth: 4,
			InlineWidth: 60,
		},
		Diagnostics: DiagnosticsConfig{Max: 100},
	}
}

// Find walks from startDir to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest config; without one it returns Default.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads path on top of the defaults.
func Load(path string) (Config, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML text; keys that are absent keep their defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and identifier syntax.
func (c Config) Validate() error {
	g := c.Generator
	for _, f := range []struct{ key, val string }{
		{"generator.attribute", g.Attribute},
		{"generator.marker", g.Marker},
		{"generator.element_prefix", g.ElementPrefix},
	} {
		if !isIdent(f.val) {
			return fmt.Errorf("%s: %q is not an identifier", f.key, f.val)
		}
	}
	if g.MaxArity < 0 || g.MaxArity > maxArityLimit {
		return fmt.Errorf("generator.max_arity: %d is out of range 0..%d", g.MaxArity, maxArityLimit)
	}
	if c.Output.IndentWidth < 1 || c.Output.IndentWidth > 16 {
		return fmt.Errorf("output.indent_width: %d is out of range 1..16", c.Output.IndentWidth)
	}
	if c.Output.InlineWidth < 0 {
		return fmt.Errorf("output.inline_width must not be negative")
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("diagnostics.max must not be negative")
	}
	return nil
}

// Expand returns the generator settings.
func (c Config) Expand() expand.Config {
	return expand.Config{
		Marker:         c.Generator.Marker,
		ElementPrefix:  c.Generator.ElementPrefix,
		SuppressUnused: c.Generator.SuppressUnused,
		MaxArity:       c.Generator.MaxArity,
	}
}

// Format returns the printer settings.
func (c Config) Format() format.Options {
	return format.Options{
		IndentWidth: c.Output.IndentWidth,
		UseTabs:     c.Output.UseTabs,
		InlineWidth: c.Output.InlineWidth,
	}
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
