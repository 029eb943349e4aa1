package semiauto

import (
	"fmt"
	"strings"
	"testing"

	"tuplegen/internal/diag"
	"tuplegen/internal/syntax"
	"tuplegen/internal/testkit"
	"tuplegen/internal/tt"
)

func elements(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("TupleElement%d", i)
	}
	return out
}

func generate(t *testing.T, src string, n int) (tt.Stream, *diag.Bag) {
	t.Helper()
	s, bag, _ := testkit.Parse(src)
	r := diag.BagReporter{Bag: bag}
	im, ok := syntax.ParseImpl(s, r)
	if !ok {
		t.Fatalf("ParseImpl: %v", testkit.Messages(bag))
	}
	out, _ := Generate(im, elements(n), Options{SuppressUnused: true}, r)
	return out, bag
}

func mustGenerate(t *testing.T, src string, n int) []string {
	t.Helper()
	out, bag := generate(t, src, n)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", testkit.Messages(bag))
	}
	var impls []string
	start := 0
	for i, tr := range out {
		if tt.IsGroup(tr, tt.Brace) {
			impls = append(impls, tt.Compact(out[start:i+1]))
			start = i + 1
		}
	}
	return impls
}

const assocTemplate = `
impl TraitWithAssociatedType for Tuple {
    for_tuples!( type Ret = ( #( Tuple::Ret ),* ); );
    fn function(counter: &mut u32) -> Self::Ret {
        for_tuples!( ( #( Tuple::function(counter) ),* ) )
    }
}`

func TestAssociatedTypeExpansion(t *testing.T) {
	impls := mustGenerate(t, assocTemplate, 3)
	if len(impls) != 3 {
		t.Fatalf("impls = %d, want 3 (arities 0, 2, 3)", len(impls))
	}
	zero, three := impls[0], impls[2]
	for _, want := range []string{
		"impl TraitWithAssociatedType for ()",
		"type Ret = () ;",
		"-> Self :: Ret { () }",
	} {
		if !strings.Contains(zero, want) {
			t.Errorf("arity 0 missing %q:\n%s", want, zero)
		}
	}
	for _, want := range []string{
		"impl < TupleElement0 : TraitWithAssociatedType , TupleElement1 : TraitWithAssociatedType , TupleElement2 : TraitWithAssociatedType > TraitWithAssociatedType for (TupleElement0 , TupleElement1 , TupleElement2)",
		"type Ret = (TupleElement0 :: Ret , TupleElement1 :: Ret , TupleElement2 :: Ret ,) ;",
		"{ (TupleElement0 :: function (counter) , TupleElement1 :: function (counter) , TupleElement2 :: function (counter) ,) }",
	} {
		if !strings.Contains(three, want) {
			t.Errorf("arity 3 missing %q:\n%s", want, three)
		}
	}
	if !strings.HasPrefix(three, "# [allow (unused)] impl") {
		t.Errorf("missing allow(unused): %s", three)
	}
}

func TestReceiverPositions(t *testing.T) {
	impls := mustGenerate(t, `
impl Notify for TupleIdentifier {
    fn notify(&self) -> Result<(), ()> {
        for_tuples!( #( TupleIdentifier.notify()?; )* );
        Ok(())
    }
}`, 3)
	want := "{ fn notify (& self) -> Result < () , () > { self . 0 . notify () ?; self . 1 . notify () ?; self . 2 . notify () ?; Ok (()) } }"
	if !strings.HasSuffix(impls[2], want) {
		t.Fatalf("arity 3 =\n%s\nwant suffix\n%s", impls[2], want)
	}
	if !strings.HasSuffix(impls[0], "{ fn notify (& self) -> Result < () , () > { Ok (()) } }") {
		t.Fatalf("arity 0 = %s", impls[0])
	}
}

func TestReceiverRequiresSelfParameter(t *testing.T) {
	impls := mustGenerate(t, `
impl Run for T {
    fn run() { for_tuples!( #( T.go(); )* ); }
    fn with_self(&mut self, x: u8) { for_tuples!( #( T.go::<u8>(x); )* ); }
}`, 2)
	if !strings.Contains(impls[1], "fn run () { TupleElement0 . go () ; TupleElement1 . go () ; }") {
		t.Errorf("receiverless method must keep element names: %s", impls[1])
	}
	if !strings.Contains(impls[1], "self . 0 . go ::< u8 > (x) ; self . 1 . go ::< u8 > (x) ;") {
		t.Errorf("turbofish receiver not rewritten: %s", impls[1])
	}
}

func TestNoPlaceholderRemains(t *testing.T) {
	out, bag := generate(t, `
impl<X> Trait<X> for Tuple where Tuple: Sized {
    type Alias = Tuple;
    fn f(&self, t: &Tuple) -> u32 {
        let _ = Tuple::helper();
        for_tuples!( #( Tuple.f(m!(Tuple), t.Tuple); )* );
        { let nested = for_tuples!( ( #( Tuple::g() ),* ) ); }
        0
    }
}`, 4)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", testkit.Messages(bag))
	}
	var walk func(s tt.Stream)
	walk = func(s tt.Stream) {
		for _, tr := range s {
			switch v := tr.(type) {
			case tt.Ident:
				if v.Name == "Tuple" || v.Name == "for_tuples" {
					t.Fatalf("identifier %q remains in output: %s", v.Name, tt.Compact(out))
				}
			case tt.Group:
				walk(v.Stream)
			}
		}
	}
	walk(out)
	got := tt.Compact(out)
	for _, want := range []string{
		"where (TupleElement0 , TupleElement1) : Sized",
		"type Alias = (TupleElement0 , TupleElement1) ;",
		"let _ = < (TupleElement0 , TupleElement1) > :: helper () ;",
		"self . 1 . f (m ! (TupleElement1) , t . TupleElement1) ;",
		"let nested = (TupleElement0 :: g () , TupleElement1 :: g () ,) ;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestWhereMarker(t *testing.T) {
	want := "where TupleElement0 : Trait < FixedType = u32 > , TupleElement1 : Trait < FixedType = u32 > , { type FixedType = u32 ; }"
	tests := []struct {
		name   string
		marker string
	}{
		{name: "plain", marker: "for_tuples!( where #( Tuple: Trait<FixedType=u32> )* );"},
		{name: "comma", marker: "for_tuples!( where #( Tuple: Trait<FixedType=u32> ),* );"},
		{name: "trailing comma in body", marker: "for_tuples!( where #( Tuple: Trait<FixedType=u32>, )* );"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			impls := mustGenerate(t, `
impl Trait for Tuple {
    type FixedType = u32;
    `+tc.marker+`
}`, 2)
			if !strings.HasSuffix(impls[1], want) {
				t.Fatalf("arity 2 =\n%s\nwant suffix\n%s", impls[1], want)
			}
			if strings.Contains(impls[1], ", ,") {
				t.Fatalf("doubled separator: %s", impls[1])
			}
		})
	}
}

func TestDeclaredElementGoesToWhere(t *testing.T) {
	impls := mustGenerate(t, "impl<TupleElement0> Trait for Tuple {}", 2)
	if !strings.Contains(impls[1], "impl < TupleElement0 > Trait for (TupleElement0 , TupleElement1) where TupleElement0 : Trait , TupleElement1 : Trait ,") {
		t.Fatalf("arity 2 = %s", impls[1])
	}
}

func TestFiftyElementsSkipsArityOne(t *testing.T) {
	impls := mustGenerate(t, `
impl TraitWithReturnType for Tuple {
    fn function(counter: &mut u32) -> Result<(), ()> {
        for_tuples!( #( Tuple::function(counter)?; )* );
        Ok(())
    }
}`, 50)
	if len(impls) != 50 {
		t.Fatalf("impls = %d, want 50", len(impls))
	}
	if strings.Contains(impls[1], "TupleElement2") || !strings.Contains(impls[1], "TupleElement1") {
		t.Fatalf("second impl must be arity 2: %s", impls[1])
	}
	if n := strings.Count(impls[49], ":: function (counter) ?;"); n != 50 {
		t.Fatalf("arity 50 calls = %d", n)
	}
}

func TestStructuralErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"impl Trait for a::Tuple {}", diag.GenMissingSelfPlaceholder},
		{"impl Trait for Vec<T> {}", diag.GenMissingSelfPlaceholder},
		{"impl Tuple {}", diag.GenMissingTraitReference},
	}
	for _, tc := range tests {
		out, bag := generate(t, tc.src, 5)
		if out != nil {
			t.Errorf("%q: expected no output", tc.src)
		}
		if bag.Len() != 1 || bag.Items()[0].Code != tc.code {
			t.Errorf("%q: diagnostics %v, want %s", tc.src, testkit.Messages(bag), tc.code.ID())
		}
	}
}

func TestRepetitionErrorsAreDeduplicated(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no star", "fn f() { for_tuples!( #( Tuple::f(); ) ); }"},
		{"bad separator", "fn f() { for_tuples!( #( Tuple::f() );* ); }"},
		{"unknown form", "fn f() { for_tuples!( Tuple::f() ); }"},
		{"trailing tokens", "fn f() { for_tuples!( #( Tuple::f(); )* extra ); }"},
		{"nested", "fn f() { for_tuples!( #( for_tuples!( #( Tuple::g(); )* ); )* ); }"},
		{"where in body", "fn f() { for_tuples!( where #( Tuple: Copy )* ); }"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, bag := generate(t, "impl Trait for Tuple { "+tc.body+" }", 10)
			if out != nil {
				t.Fatalf("expected no output")
			}
			if bag.Len() != 1 || bag.Items()[0].Code != diag.GenRepetitionSyntax {
				t.Fatalf("diagnostics %v, want one %s", testkit.Messages(bag), diag.GenRepetitionSyntax.ID())
			}
		})
	}
}

func TestCustomMarkerName(t *testing.T) {
	s, bag, _ := testkit.Parse("impl A for T { fn f() { each!( #( T::f(); )* ); } }")
	r := diag.BagReporter{Bag: bag}
	im, _ := syntax.ParseImpl(s, r)
	out, ok := Generate(im, elements(2), Options{Marker: "each"}, r)
	if !ok {
		t.Fatalf("diagnostics: %v", testkit.Messages(bag))
	}
	if got := tt.Compact(out); !strings.Contains(got, "fn f () { TupleElement0 :: f () ; TupleElement1 :: f () ; }") {
		t.Fatalf("output = %s", got)
	}
}

func TestParseMarkerForms(t *testing.T) {
	tests := []struct {
		args  string
		place Placement
		comma bool
	}{
		{"type Ret = ( #( T::Ret ),* );", AssocType, true},
		{"( #( T::f() ),* )", Parenthesized, true},
		{"#( T::f(); )*", Statement, false},
		{"where #( T: Copy )*", WhereClause, false},
	}
	for _, tc := range tests {
		s, bag, _ := testkit.Parse("(" + tc.args + ")")
		g := s[0].(tt.Group)
		m, ok := ParseMarker("for_tuples", g, diag.BagReporter{Bag: bag})
		if !ok {
			t.Errorf("%q: %v", tc.args, testkit.Messages(bag))
			continue
		}
		if m.Placement != tc.place || m.Rep.Comma != tc.comma {
			t.Errorf("%q: placement=%s comma=%v", tc.args, m.Placement, m.Rep.Comma)
		}
	}
}
