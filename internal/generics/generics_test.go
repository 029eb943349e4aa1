package generics

import (
	"testing"

	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/syntax"
	"tuplegen/internal/tt"
)

func parseGenerics(t *testing.T, src string) syntax.Generics {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("g.rs", []byte(src))
	bag := diag.NewBag(0)
	s := tt.Parse(fs.Get(id), diag.BagReporter{Bag: bag})
	c := tt.NewCursor(s, source.NoSpan)
	g, ok := syntax.ParseGenerics(c, diag.BagReporter{Bag: bag})
	if !ok || bag.Len() != 0 {
		t.Fatalf("parse %q: %v", src, bag.Items())
	}
	syntax.ParseWhere(c, &g)
	return g
}

func TestAddTupleElements(t *testing.T) {
	bound := tt.Stream{tt.NewIdent("Trait")}
	tests := []struct {
		name       string
		src        string
		elems      []string
		wantParams string
		wantWhere  string
	}{
		{"empty", "", []string{"T0", "T1"}, "< T0 : Trait , T1 : Trait >", ""},
		{"keeps existing", "<'a, X: Clone>", []string{"T0"}, "< 'a , X : Clone , T0 : Trait >", ""},
		{"declared goes to where", "<T0> where T0: Copy", []string{"T0", "T1"}, "< T0 >", "where T0 : Copy , T0 : Trait , T1 : Trait ,"},
		{"no elements", "<X>", nil, "< X >", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := parseGenerics(t, tc.src)
			got := AddTupleElements(g, tc.elems, bound)
			if s := tt.Compact(got.ParamsTokens(false)); s != tc.wantParams {
				t.Errorf("params = %q, want %q", s, tc.wantParams)
			}
			if s := tt.Compact(got.WhereTokens()); s != tc.wantWhere {
				t.Errorf("where = %q, want %q", s, tc.wantWhere)
			}
			if len(g.Params) != len(parseGenerics(t, tc.src).Params) {
				t.Errorf("input generics were modified")
			}
		})
	}
}
