package syntax

import (
	"testing"

	"tuplegen/internal/diag"
	"tuplegen/internal/testkit"
	"tuplegen/internal/tt"
)

func mustTrait(t *testing.T, src string) *ItemTrait {
	t.Helper()
	s, bag, _ := testkit.Parse(src)
	def, ok := ParseTrait(s, diag.BagReporter{Bag: bag})
	if !ok || bag.Len() != 0 {
		t.Fatalf("ParseTrait(%q): %v", src, testkit.Messages(bag))
	}
	return def
}

func mustImpl(t *testing.T, src string) *ItemImpl {
	t.Helper()
	s, bag, _ := testkit.Parse(src)
	im, ok := ParseImpl(s, diag.BagReporter{Bag: bag})
	if !ok || bag.Len() != 0 {
		t.Fatalf("ParseImpl(%q): %v", src, testkit.Messages(bag))
	}
	return im
}

func TestParseTrait(t *testing.T) {
	def := mustTrait(t, `
/// Docs.
#[impl_for_tuples(5)]
pub unsafe trait Notify<T: Clone, const N: usize = 3>: Send where T: Copy {
    type Ret;
    const ID: u8;
    fn notify(&self, x: T) -> ();
    fn make<X>(arg: X) -> Self::Ret { todo!() }
    m!();
}`)
	if def.Name.Name != "Notify" || !def.Unsafe || tt.Compact(def.Vis) != "pub" {
		t.Fatalf("header: name=%s unsafe=%v vis=%q", def.Name.Name, def.Unsafe, tt.Compact(def.Vis))
	}
	if len(def.Attrs) != 2 || !def.Attrs[1].NameIs("impl_for_tuples") {
		t.Fatalf("attrs = %d", len(def.Attrs))
	}
	if got := tt.Compact(def.Supertraits); got != "Send" {
		t.Fatalf("supertraits = %q", got)
	}
	if got := tt.Compact(def.Generics.StripDefaults().ParamsTokens(false)); got != "< T : Clone , const N : usize >" {
		t.Fatalf("params = %q", got)
	}
	if got := tt.Compact(def.PathTokens()); got != "Notify < T , N >" {
		t.Fatalf("path = %q", got)
	}
	if got := tt.Compact(def.Generics.WhereTokens()); got != "where T : Copy ," {
		t.Fatalf("where = %q", got)
	}

	kinds := []ItemKind{TypeItem, ConstItem, MethodItem, MethodItem, MacroItem}
	if len(def.Items) != len(kinds) {
		t.Fatalf("items = %d, want %d", len(def.Items), len(kinds))
	}
	for i, k := range kinds {
		if def.Items[i].Kind != k {
			t.Errorf("item %d kind = %s, want %s", i, def.Items[i].Kind, k)
		}
	}
	notify := def.Items[2].Sig
	if !notify.HasReceiver() || !notify.ReturnsUnit() || def.Items[2].Body != nil {
		t.Errorf("notify: receiver=%v unit=%v", notify.HasReceiver(), notify.ReturnsUnit())
	}
	mk := def.Items[3].Sig
	if mk.HasReceiver() || mk.ReturnsUnit() || def.Items[3].Body == nil {
		t.Errorf("make: receiver=%v unit=%v", mk.HasReceiver(), mk.ReturnsUnit())
	}
	if def.Items[0].Name != "Ret" || def.Items[1].Name != "ID" {
		t.Errorf("names %q %q", def.Items[0].Name, def.Items[1].Name)
	}
}

func TestReceiverForms(t *testing.T) {
	tests := []struct {
		param string
		want  bool
	}{
		{"self", true},
		{"mut self", true},
		{"&self", true},
		{"&mut self", true},
		{"&'a self", true},
		{"&'a mut self", true},
		{"self: Box<Self>", true},
		{"mut self: Pin<&mut Self>", true},
		{"this: &Self", false},
		{"x: u8", false},
		{"u8", false},
	}
	for _, tc := range tests {
		def := mustTrait(t, "trait A { fn f("+tc.param+"); }")
		if got := def.Items[0].Sig.HasReceiver(); got != tc.want {
			t.Errorf("%q: HasReceiver = %v, want %v", tc.param, got, tc.want)
		}
	}
}

func TestArgNames(t *testing.T) {
	def := mustTrait(t, "trait A { fn f(&self, a: u8, _: String, (x, y): (u8, u8), mut m: u8, u32); }")
	sig := def.Items[0].Sig
	names, renamed := sig.ArgNames()
	want := []string{"a", "__arg2", "__arg3", "m", "__arg5"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d = %s, want %s", i, names[i], want[i])
		}
	}
	if renamed[0] || !renamed[1] || renamed[3] {
		t.Errorf("renamed = %v", renamed)
	}
	got := tt.Compact(sig.WithArgNames())
	if want := "fn f (& self , a : u8 , __arg2 : String , __arg3 : (u8 , u8) , mut m : u8 , __arg5 : u32)"; got != want {
		t.Errorf("WithArgNames = %q\nwant             %q", got, want)
	}
}

func TestParseImpl(t *testing.T) {
	im := mustImpl(t, `
#[impl_for_tuples(3)]
impl<T> Trait<T> for Tuple where T: Default {
    for_tuples!( type Ret = ( #( Tuple::Ret ),* ); );
    type Fixed = u32;
    fn run(&self) -> u8 { 0 }
}`)
	if got := tt.Compact(im.Trait); got != "Trait < T >" {
		t.Fatalf("trait = %q", got)
	}
	id, ok := im.SelfIdent()
	if !ok || id.Name != "Tuple" {
		t.Fatalf("self ident = %v %v", id, ok)
	}
	if len(im.Items) != 3 || im.Items[0].Kind != MacroItem || !im.Items[0].Macro.NameIs("for_tuples") || !im.Items[0].Macro.Semi {
		t.Fatalf("items = %+v", im.Items)
	}
	if im.Items[2].Kind != MethodItem || im.Items[2].Body == nil {
		t.Fatalf("method item = %+v", im.Items[2])
	}
	if !im.Generics.HasTypeParam("T") || len(im.Generics.Where) != 1 {
		t.Fatalf("generics = %+v", im.Generics)
	}
}

func TestParseImplSelfTypes(t *testing.T) {
	tests := []struct {
		src      string
		trait    string
		self     string
		inherent bool
	}{
		{"impl A for B {}", "A", "B", false},
		{"impl B {}", "", "B", true},
		{"impl<T> A for Vec<T> {}", "A", "Vec < T >", false},
		{"impl A for crate::B {}", "A", "crate :: B", false},
		{"impl !Send for B {}", "! Send", "B", false},
	}
	for _, tc := range tests {
		im := mustImpl(t, tc.src)
		if got := tt.Compact(im.Trait); got != tc.trait {
			t.Errorf("%q: trait = %q, want %q", tc.src, got, tc.trait)
		}
		if got := tt.Compact(im.SelfTy); got != tc.self {
			t.Errorf("%q: self = %q, want %q", tc.src, got, tc.self)
		}
		if (im.Trait == nil) != tc.inherent {
			t.Errorf("%q: inherent = %v", tc.src, im.Trait == nil)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src   string
		trait bool
		code  diag.Code
	}{
		{"trait A", true, diag.SynExpectBody},
		{"trait { }", true, diag.SynExpectIdentifier},
		{"trait A<T { }", true, diag.SynUnclosedAngle},
		{"trait A { fn f() }", true, diag.SynExpectBody},
		{"trait A { type X }", true, diag.SynExpectSemicolon},
		{"trait A { } x", true, diag.SynUnexpectedToken},
		{"impl A for B", false, diag.SynExpectBody},
		{"impl A for B { 42 }", false, diag.SynUnexpectedToken},
	}
	for _, tc := range tests {
		s, bag, _ := testkit.Parse(tc.src)
		r := diag.BagReporter{Bag: bag}
		var ok bool
		if tc.trait {
			_, ok = ParseTrait(s, r)
		} else {
			_, ok = ParseImpl(s, r)
		}
		if ok {
			t.Errorf("%q: expected failure", tc.src)
			continue
		}
		if bag.Len() == 0 || bag.Items()[0].Code != tc.code {
			t.Errorf("%q: diagnostics %v, want %s", tc.src, testkit.Messages(bag), tc.code.ID())
		}
	}
}

func TestSplitTopLevel(t *testing.T) {
	s, _, _ := testkit.Parse("A<B, C>, F: Fn(u8) -> Vec<u8>, D,")
	parts := SplitTopLevel(s, ',')
	want := []string{"A < B , C >", "F : Fn (u8) -> Vec < u8 >", "D"}
	if len(parts) != len(want) {
		t.Fatalf("parts = %d", len(parts))
	}
	for i := range want {
		if got := tt.Compact(parts[i]); got != want[i] {
			t.Errorf("part %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestAttributePath(t *testing.T) {
	s, _, _ := testkit.Parse("#[my::impl_for_tuples(5)] #[::a::b] #[doc = \"x\"]")
	attrs := ParseAttrs(tt.NewCursor(s, s.Span()), false, nil)
	if len(attrs) != 3 {
		t.Fatalf("attrs = %d", len(attrs))
	}
	if !attrs[0].NameIs("impl_for_tuples") {
		t.Errorf("path = %v", attrs[0].Path())
	}
	if args, ok := attrs[0].Args(); !ok || tt.Compact(args.Stream) != "5" {
		t.Errorf("args = %v", ok)
	}
	if p := attrs[1].Path(); len(p) != 2 || p[1] != "b" {
		t.Errorf("path = %v", p)
	}
	if _, ok := attrs[2].Args(); ok {
		t.Errorf("doc has no args")
	}
}

func TestTupleType(t *testing.T) {
	if got := tt.Compact(TupleType(nil)); got != "()" {
		t.Errorf("arity 0 = %q", got)
	}
	if got := tt.Compact(TupleType(IdentStreams([]string{"A"}))); got != "(A ,)" {
		t.Errorf("arity 1 = %q", got)
	}
	if got := tt.Compact(TupleType(IdentStreams([]string{"A", "B"}))); got != "(A , B)" {
		t.Errorf("arity 2 = %q", got)
	}
}
