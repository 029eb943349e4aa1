package fullauto

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
	def, ok := syntax.ParseTrait(s, r)
	if !ok {
		t.Fatalf("ParseTrait: %v", testkit.Messages(bag))
	}
	out, _ := Generate(def, elements(n), Options{SuppressUnused: true}, r)
	return out, bag
}

// impls splits the output into top-level impl blocks.
func impls(s tt.Stream) []tt.Stream {
	var out []tt.Stream
	start := 0
	for i, t := range s {
		if tt.IsGroup(t, tt.Brace) {
			out = append(out, s[start:i+1])
			start = i + 1
		}
	}
	return out
}

func selfType(impl tt.Stream) string {
	for i, t := range impl {
		if tt.IsIdent(t, "for") && i+1 < len(impl) {
			return tt.Compact(impl[i+1 : i+2])
		}
	}
	return ""
}

func TestNotifyArities(t *testing.T) {
	out, bag := generate(t, "trait Notify { fn notify(&self); }", 5)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", testkit.Messages(bag))
	}
	got := impls(out)
	want := []string{
		"()",
		"(TupleElement0 , TupleElement1)",
		"(TupleElement0 , TupleElement1 , TupleElement2)",
		"(TupleElement0 , TupleElement1 , TupleElement2 , TupleElement3)",
		"(TupleElement0 , TupleElement1 , TupleElement2 , TupleElement3 , TupleElement4)",
	}
	if len(got) != len(want) {
		t.Fatalf("impls = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if st := selfType(got[i]); st != want[i] {
			t.Errorf("impl %d self type = %q, want %q", i, st, want[i])
		}
	}
}

func TestReceiverCallsInOrder(t *testing.T) {
	out, _ := generate(t, "trait Notify { fn notify(&self); }", 3)
	got := tt.Compact(impls(out)[2])
	want := "# [allow (unused)] impl < TupleElement0 : Notify , TupleElement1 : Notify , TupleElement2 : Notify > " +
		"Notify for (TupleElement0 , TupleElement1 , TupleElement2) " +
		"{ fn notify (& self) { self . 0 . notify () ; self . 1 . notify () ; self . 2 . notify () ; } }"
	if got != want {
		t.Fatalf("impl =\n%s\nwant\n%s", got, want)
	}
}

func TestArityZeroHasEmptyBodies(t *testing.T) {
	out, _ := generate(t, "trait Notify { fn notify(&self); fn stat(x: u8); }", 2)
	got := tt.Compact(impls(out)[0])
	want := "# [allow (unused)] impl Notify for () { fn notify (& self) {} fn stat (x : u8) {} }"
	if got != want {
		t.Fatalf("impl =\n%s\nwant\n%s", got, want)
	}
}

func TestStaticMethodsWithArgs(t *testing.T) {
	out, _ := generate(t, "trait F { fn f(counter: &mut u32, _: String, l: u32); }", 2)
	got := tt.Compact(impls(out)[1])
	if !strings.Contains(got, "fn f (counter : & mut u32 , __arg1 : String , l : u32)") {
		t.Errorf("signature not renamed: %s", got)
	}
	if !strings.Contains(got, "TupleElement0 :: f (counter , __arg1 , l) ; TupleElement1 :: f (counter , __arg1 , l) ;") {
		t.Errorf("calls: %s", got)
	}
}

func TestGenericTraitBound(t *testing.T) {
	out, _ := generate(t, "trait G<T, N = u8> where T: Clone { fn f(l: T); }", 2)
	got := tt.Compact(impls(out)[1])
	if !strings.HasPrefix(got, "# [allow (unused)] impl < T , N , TupleElement0 : G < T , N > , TupleElement1 : G < T , N > > G < T , N > for") {
		t.Errorf("header: %s", got)
	}
	if !strings.Contains(got, "where T : Clone ,") {
		t.Errorf("where clause missing: %s", got)
	}
}

func TestAsyncUnsafeAndGenericMethods(t *testing.T) {
	out, _ := generate(t, "unsafe trait A { async fn a(&self); unsafe fn u(); fn g<X: Copy>(x: X); }", 2)
	got := tt.Compact(impls(out)[1])
	for _, want := range []string{
		"unsafe impl <",
		"self . 0 . a () . await ; self . 1 . a () . await ;",
		"unsafe fn u () { unsafe { TupleElement0 :: u () ; TupleElement1 :: u () ; } }",
		"TupleElement0 :: g ::< X > (x) ;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}

func TestRejectsUnsupportedItems(t *testing.T) {
	out, bag := generate(t, "trait A { type Ret; const C: u8; fn f() -> u8; fn ok(&self); }", 3)
	if out != nil {
		t.Fatalf("expected no output")
	}
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %v, want one merged", testkit.Messages(bag))
	}
	d := bag.Items()[0]
	if d.Code != diag.GenUnsupportedFullAutomatic {
		t.Fatalf("code = %s", d.Code.ID())
	}
	if !strings.Contains(d.Message, "`Ret`") || len(d.Notes) != 3 {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func TestUnitReturnIsAccepted(t *testing.T) {
	_, bag := generate(t, "trait A { fn f() -> (); }", 2)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", testkit.Messages(bag))
	}
}

func TestFiftyElements(t *testing.T) {
	out, _ := generate(t, "trait W { fn w(counter: &mut u32); }", 50)
	got := impls(out)
	if len(got) != 50 {
		t.Fatalf("impls = %d, want 50", len(got))
	}
	for _, impl := range got {
		if selfType(impl) == "(TupleElement0)" || selfType(impl) == "(TupleElement0 ,)" {
			t.Fatalf("arity 1 must not be generated")
		}
	}
	last := tt.Compact(got[len(got)-1])
	if strings.Count(last, ":: w (counter) ;") != 50 {
		t.Fatalf("last impl should call all 50 elements")
	}
}
