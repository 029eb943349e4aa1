package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tuplegen/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitThenExpand(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "--quiet", "init", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfgPath := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Generator != config.Default().Generator {
		t.Errorf("written generator section = %+v", cfg.Generator)
	}
	if _, err := execute(t, "--quiet", "init", dir); err == nil {
		t.Error("second init did not fail")
	}

	lib := filepath.Join(dir, "lib.rs")
	src := "#[impl_for_tuples(2)]\ntrait A {\n    fn a(&self);\n}\n"
	if err := os.WriteFile(lib, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "--config", cfgPath, "--color", "off", "expand", lib)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !strings.HasPrefix(out, "trait A {\n    fn a(&self);\n}\n\n#[allow(unused)]\nimpl A for () {") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "A for (TupleElement0, TupleElement1)") {
		t.Errorf("missing arity 2 impl:\n%s", out)
	}
	if data, _ := os.ReadFile(lib); string(data) != src {
		t.Error("stdout mode modified the input file")
	}
}

func TestExpandReportsFailure(t *testing.T) {
	lib := filepath.Join(t.TempDir(), "lib.rs")
	if err := os.WriteFile(lib, []byte("#[impl_for_tuples(x)] trait A {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "--config", "", "--color", "off", "expand", "--stdout", lib)
	if err != errExpansionFailed {
		t.Fatalf("err = %v, want %v", err, errExpansionFailed)
	}
	if !strings.Contains(out, "::core::compile_error!") {
		t.Errorf("output lacks the compile error:\n%s", out)
	}
}

func TestResolveOutputMode(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lib.rs")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		args    []string
		stdout  bool
		write   bool
		outDir  string
		want    outputMode
		wantErr bool
	}{
		{name: "single file", args: []string{file}, want: outputStdout},
		{name: "directory", args: []string{dir}, wantErr: true},
		{name: "directory write", args: []string{dir}, write: true, want: outputInPlace},
		{name: "out dir", args: []string{dir, file}, outDir: "gen", want: outputDir},
		{name: "forced stdout", args: []string{dir}, stdout: true, want: outputStdout},
		{name: "conflict", args: []string{file}, stdout: true, write: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveOutputMode(tt.args, tt.stdout, tt.write, tt.outDir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("mode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.Tool != "tuplegen" || payload.Version == "" {
		t.Errorf("payload = %+v", payload)
	}
}
