package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tuplegen/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestExpandPathsOrderAndFilter(t *testing.T) {
	root := t.TempDir()
	trait := "#[impl_for_tuples(2)] trait A { fn a(&self); }\n"
	writeFile(t, filepath.Join(root, "b.rs"), trait)
	writeFile(t, filepath.Join(root, "a.rs"), "fn main() {}\n")
	writeFile(t, filepath.Join(root, "sub", "c.rs"), trait)
	writeFile(t, filepath.Join(root, "notes.txt"), trait)
	writeFile(t, filepath.Join(root, "target", "gen.rs"), trait)
	writeFile(t, filepath.Join(root, ".git", "x.rs"), trait)

	opts := testOptions()
	opts.Jobs = 2
	_, results, err := ExpandPaths(context.Background(), []string{root, filepath.Join(root, "a.rs")}, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.rs", "b.rs", filepath.Join("sub", "c.rs")}
	if len(results) != len(want) {
		t.Fatalf("results = %d, want %d", len(results), len(want))
	}
	for i, res := range results {
		rel, _ := filepath.Rel(root, res.Path)
		if rel != want[i] {
			t.Errorf("result %d: %s, want %s", i, rel, want[i])
		}
	}
	if results[0].Changed || !results[1].Changed || !results[2].Changed {
		t.Errorf("changed flags: %v %v %v", results[0].Changed, results[1].Changed, results[2].Changed)
	}
}

func TestExpandPathsMissing(t *testing.T) {
	_, _, err := ExpandPaths(context.Background(), []string{filepath.Join(t.TempDir(), "nope.rs")}, testOptions())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestExpandPathsCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.rs"), "fn main() {}\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ExpandPaths(ctx, []string{root}, testOptions()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestLoadFailure(t *testing.T) {
	res := loadFailure("x.rs", os.ErrPermission, testOptions())
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError || items[0].Primary.IsValid() {
		t.Fatalf("diagnostics: %+v", items)
	}
	if res.Changed || res.Output != nil {
		t.Errorf("load failure produced output")
	}
}

func TestTargetPath(t *testing.T) {
	tests := []struct {
		path, root, out, want string
	}{
		{path: "src/lib.rs", want: "src/lib.rs"},
		{path: "src/a/lib.rs", root: "src", out: "gen", want: filepath.Join("gen", "a", "lib.rs")},
		{path: "other/lib.rs", root: "src", out: "gen", want: filepath.Join("gen", "lib.rs")},
		{path: "src/lib.rs", out: "gen", want: filepath.Join("gen", "lib.rs")},
	}
	for _, tt := range tests {
		got, err := TargetPath(tt.path, tt.root, tt.out)
		if err != nil {
			t.Fatalf("TargetPath(%q, %q, %q): %v", tt.path, tt.root, tt.out, err)
		}
		if got != tt.want {
			t.Errorf("TargetPath(%q, %q, %q) = %q, want %q", tt.path, tt.root, tt.out, got, tt.want)
		}
	}
}

func TestWriteResult(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "lib.rs")
	if err := WriteResult(&FileResult{Output: []byte("fn f() {}\n")}, target); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fn f() {}\n" {
		t.Errorf("content = %q", data)
	}
	entries, _ := os.ReadDir(filepath.Dir(target))
	if len(entries) != 1 {
		t.Errorf("leftover files: %v", entries)
	}
}
