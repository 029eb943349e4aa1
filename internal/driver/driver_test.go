package driver

import (
	"strings"
	"testing"

	"tuplegen/internal/config"
	"tuplegen/internal/diag"
	"tuplegen/internal/expand"
	"tuplegen/internal/testkit"
)

func testOptions() Options {
	cfg := config.Default()
	cfg.Generator.ElementPrefix = "T"
	return Options{Config: cfg}
}

func expandString(t *testing.T, src string, opts Options) *FileResult {
	t.Helper()
	_, res := ExpandSource("lib.rs", []byte(src), opts)
	return res
}

func TestExpandFullAutomatic(t *testing.T) {
	src := `use std::fmt;

#[impl_for_tuples(2)]
trait Notify {
    // keep me
    fn notify(&self);
}

fn main() {}
`
	want := `use std::fmt;

trait Notify {
    // keep me
    fn notify(&self);
}

#[allow(unused)]
impl Notify for () {
    fn notify(&self) {}
}

#[allow(unused)]
impl<T0: Notify, T1: Notify> Notify for (T0, T1) {
    fn notify(&self) {
        self.0.notify();
        self.1.notify();
    }
}

fn main() {}
`
	res := expandString(t, src, testOptions())
	if res.Bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", testkit.Messages(res.Bag))
	}
	if got := string(res.Output); got != want {
		t.Fatalf("output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
	if !res.Changed || len(res.Invocations) != 1 {
		t.Fatalf("changed = %v, invocations = %d", res.Changed, len(res.Invocations))
	}
	inv := res.Invocations[0]
	if !inv.OK || inv.Mode != expand.ModeFull || inv.Arity != 2 {
		t.Errorf("unexpected invocation: %+v", inv)
	}
}

func TestExpandSemiAutomaticNested(t *testing.T) {
	src := `mod inner {
    #[impl_for_tuples(2)]
    impl Notify for Tuple {
        fn notify(&self) {
            for_tuples!( #( Tuple.notify(); )* );
        }
    }
}
`
	want := `mod inner {
    #[allow(unused)]
    impl Notify for () {
        fn notify(&self) {}
    }

    #[allow(unused)]
    impl<T0: Notify, T1: Notify> Notify for (T0, T1) {
        fn notify(&self) {
            self.0.notify();
            self.1.notify();
        }
    }
}
`
	res := expandString(t, src, testOptions())
	if res.Bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", testkit.Messages(res.Bag))
	}
	if got := string(res.Output); got != want {
		t.Fatalf("output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
	if res.Invocations[0].Mode != expand.ModeSemi {
		t.Errorf("mode = %v", res.Invocations[0].Mode)
	}
}

func TestExpandFailureBecomesCompileError(t *testing.T) {
	src := "#[impl_for_tuples(x)]\ntrait Foo { fn f(&self); }\n"
	res := expandString(t, src, testOptions())

	want := "::core::compile_error! { \"expected an integer literal, found `x`\" }\n"
	if got := string(res.Output); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.GenMalformedArgument {
		t.Fatalf("diagnostics: %v", testkit.Messages(res.Bag))
	}
	if res.Invocations[0].OK {
		t.Errorf("invocation reported as successful")
	}
}

func TestExpandKeepsOtherAttributes(t *testing.T) {
	src := "#[doc(hidden)] #[tuplegen::impl_for_tuples(2)] trait A { fn a(&self); }"
	res := expandString(t, src, testOptions())
	if res.Bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", testkit.Messages(res.Bag))
	}
	out := string(res.Output)
	if !strings.HasPrefix(out, "#[doc(hidden)] trait A { fn a(&self); }\n\n#[allow(unused)]\nimpl A for () {") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "impl_for_tuples") {
		t.Errorf("attribute left in output:\n%s", out)
	}
}

func TestExpandLeavesFileAlone(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		diags int
	}{
		{name: "no invocation", src: "#[derive(Debug)]\nstruct S;\nfn f() {}\n"},
		{name: "other attribute name", src: "#[impl_for_tuple(3)] trait X {}"},
		{name: "parse error", src: "#[impl_for_tuples(2)] trait X { fn f(&self);", diags: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := expandString(t, tt.src, testOptions())
			if res.Changed || string(res.Output) != tt.src {
				t.Errorf("file changed:\n%s", res.Output)
			}
			if len(res.Invocations) != 0 {
				t.Errorf("invocations = %d", len(res.Invocations))
			}
			if res.Bag.Len() != tt.diags {
				t.Errorf("diagnostics = %v, want %d", testkit.Messages(res.Bag), tt.diags)
			}
		})
	}
}

func TestExpandIndependentInvocations(t *testing.T) {
	src := "#[impl_for_tuples(2)] trait A { fn a(&self); }\n" +
		"#[impl_for_tuples(1000)] trait B { fn b(&self); }\n"
	opts := testOptions()
	opts.Timings = true
	res := expandString(t, src, opts)

	if len(res.Invocations) != 2 || !res.Invocations[0].OK || res.Invocations[1].OK {
		t.Fatalf("invocations: %+v", res.Invocations)
	}
	out := string(res.Output)
	if !strings.Contains(out, "impl<T0: A, T1: A> A for (T0, T1)") {
		t.Errorf("first invocation not expanded:\n%s", out)
	}
	if !strings.Contains(out, "::core::compile_error! { \"tuple count 1000 exceeds the maximum of 128\" }") {
		t.Errorf("second invocation not replaced by an error:\n%s", out)
	}
	if len(res.Timing.Phases) != 2 {
		t.Errorf("timing phases = %+v", res.Timing.Phases)
	}
}

func TestSpliceHelpers(t *testing.T) {
	if got := indentLines("a {\n\nb\n}\n", "  "); got != "a {\n\n  b\n  }" {
		t.Errorf("indentLines = %q", got)
	}
	if got := indentLines("x\ny\n", ""); got != "x\ny" {
		t.Errorf("indentLines without indent = %q", got)
	}
	content := []byte("#[a] #[b]\n  trait X {}")
	if got := withoutAttr(content, 0, uint32(len(content)), 5, 9); got != "#[a] trait X {}" {
		t.Errorf("withoutAttr = %q", got)
	}
	out := applyEdits([]byte("0123456789"), []edit{{start: 6, end: 8, text: "b"}, {start: 1, end: 3, text: "a"}})
	if string(out) != "0a345b89" {
		t.Errorf("applyEdits = %q", out)
	}
}
