package testkit

import (
	"testing"

	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

func TestSpanInvariantsOnParsedTrees(t *testing.T) {
	srcs := []string{
		"fn f(a: u8) -> u8 { a }",
		"/// doc\n#[impl_for_tuples(5)]\ntrait Notify { fn notify(&self); }",
		"impl<T: Iterator<Item = u8>> A for T where T: Copy { type X = (); }",
	}
	for _, src := range srcs {
		s, bag, f := Parse(src)
		if bag.Len() != 0 {
			t.Fatalf("%q: %v", src, Messages(bag))
		}
		if err := CheckSpanInvariants(s, f); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestSpanInvariantsDetectForeignFile(t *testing.T) {
	_, _, f := Parse("x")
	bad := tt.Stream{tt.Ident{Name: "x", Sp: source.Span{File: f.ID + 1, Start: 0, End: 1}}}
	if err := CheckSpanInvariants(bad, f); err == nil {
		t.Fatalf("expected an error for a span from another file")
	}
}
