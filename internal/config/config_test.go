package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse(`
[generator]
marker = "for_each_tuple"
max_arity = 16

[output]
use_tabs = true
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	def := Default()
	if cfg.Generator.Marker != "for_each_tuple" || cfg.Generator.MaxArity != 16 {
		t.Errorf("decoded values lost: %+v", cfg.Generator)
	}
	if cfg.Generator.Attribute != def.Generator.Attribute || cfg.Generator.ElementPrefix != def.Generator.ElementPrefix {
		t.Errorf("defaults overwritten: %+v", cfg.Generator)
	}
	if !cfg.Generator.SuppressUnused {
		t.Errorf("suppress_unused should default to true")
	}
	if !cfg.Output.UseTabs || cfg.Output.IndentWidth != 4 {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	if got := cfg.Expand(); got.Marker != "for_each_tuple" || got.MaxArity != 16 {
		t.Errorf("Expand() = %+v", got)
	}
	if got := cfg.Format(); !got.UseTabs || got.IndentWidth != 4 {
		t.Errorf("Format() = %+v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "syntax", src: "[generator", want: "failed to parse TOML"},
		{name: "unknown key", src: "[generator]\nmarkers = \"x\"", want: "unknown keys: generator.markers"},
		{name: "bad marker", src: "[generator]\nmarker = \"for-tuples\"", want: "generator.marker"},
		{name: "arity range", src: "[generator]\nmax_arity = 100000", want: "generator.max_arity"},
		{name: "indent", src: "[output]\nindent_width = 0", want: "output.indent_width"},
		{name: "diagnostics", src: "[diagnostics]\nmax = -1", want: "diagnostics.max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Parse error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("[diagnostics]\nmax = 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Diagnostics.Max != 7 {
		t.Errorf("max = %d, want 7", cfg.Diagnostics.Max)
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Errorf("path = %q", cfg.Path)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "[generator]") {
		t.Fatalf("missing section:\n%s", buf.String())
	}
	cfg, err := Parse(buf.String())
	if err != nil {
		t.Fatalf("Parse(Write(Default())): %v", err)
	}
	if cfg != Default() {
		t.Errorf("round trip changed config: %+v", cfg)
	}
}
