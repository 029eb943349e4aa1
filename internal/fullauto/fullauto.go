// Package fullauto implements a trait for tuples from its definition alone:
// every method forwards to each tuple element in position order.
package fullauto

import (
	"fmt"

	"tuplegen/internal/diag"
	"tuplegen/internal/generics"
	"tuplegen/internal/syntax"
	"tuplegen/internal/tt"
)

type Options struct {
	SuppressUnused bool // attach #[allow(unused)] to every impl
}

// Generate returns one implementation of def per arity in [0, len(elems)]
// except 1. Unsupported items are reported as one merged diagnostic.
func Generate(def *syntax.ItemTrait, elems []string, opts Options, r diag.Reporter) (tt.Stream, bool) {
	if !check(def, r) {
		return nil, false
	}

	bound := def.PathTokens()
	base := def.Generics.StripDefaults()

	var out tt.Stream
	for k := 0; k <= len(elems); k++ {
		if k == 1 {
			continue
		}
		out = append(out, implFor(def, base, elems[:k], bound, opts)...)
	}
	return out, true
}

func check(def *syntax.ItemTrait, r diag.Reporter) bool {
	var bad []diag.Diagnostic
	for i := range def.Items {
		it := &def.Items[i]
		var msg string
		switch it.Kind {
		case syntax.TypeItem:
			msg = fmt.Sprintf("associated type `%s` is not supported in full-automatic mode", it.Name)
		case syntax.ConstItem:
			msg = fmt.Sprintf("associated const `%s` is not supported in full-automatic mode", it.Name)
		case syntax.MacroItem:
			msg = "macro invocations are not supported in full-automatic mode"
		case syntax.MethodItem:
			if !it.Sig.ReturnsUnit() {
				msg = fmt.Sprintf("method `%s` returns a value; full-automatic mode cannot combine return values", it.Sig.Name.Name)
			}
		}
		if msg != "" {
			bad = append(bad, diag.NewError(diag.GenUnsupportedFullAutomatic, it.Span(), msg))
		}
	}
	d, ok := diag.Merge(bad)
	if !ok {
		return true
	}
	d = d.WithNote(def.Name.Sp, "use a semi-automatic implementation with `for_tuples!` instead")
	diag.Emit(r, d)
	return false
}

func implFor(def *syntax.ItemTrait, base syntax.Generics, elems []string, bound tt.Stream, opts Options) tt.Stream {
	var attrs tt.Stream
	if opts.SuppressUnused {
		attrs = syntax.AllowUnused().Tokens
	}

	var body tt.Stream
	for i := range def.Items {
		it := &def.Items[i]
		if it.Kind != syntax.MethodItem {
			continue
		}
		body = append(body, method(it, elems)...)
	}

	return syntax.ImplBlock{
		Attrs:    attrs,
		Unsafe:   def.Unsafe,
		Generics: generics.AddTupleElements(base, elems, bound),
		Trait:    bound,
		SelfTy:   syntax.TupleType(syntax.IdentStreams(elems)),
		Body:     body,
	}.Tokens()
}

// method renders one forwarding method.
func method(it *syntax.AssocItem, elems []string) tt.Stream {
	sig := it.Sig
	out := cfgAttrs(it.Attrs)
	out = append(out, sig.WithArgNames()...)

	names, _ := sig.ArgNames()
	var calls tt.Stream
	for i, e := range elems {
		calls = append(calls, call(sig, e, i, names)...)
	}
	if sig.Unsafe && len(calls) > 0 {
		calls = tt.Stream{tt.NewIdent("unsafe"), tt.NewGroup(tt.Brace, calls)}
	}
	return append(out, tt.NewGroup(tt.Brace, calls))
}

// call renders `self.i.m(args);` or `Ti::m(args);`.
func call(sig *syntax.Signature, elem string, index int, names []string) tt.Stream {
	var out tt.Stream
	if sig.HasReceiver() {
		out = tt.Stream{tt.NewIdent("self"), tt.NewPunct('.'), tt.IntLiteral(index), tt.NewPunct('.'), sig.Name}
	} else {
		out = tt.Concat(tt.Stream{tt.NewIdent(elem)}, tt.Puncts("::"), tt.Stream{sig.Name})
	}
	out = append(out, turbofish(sig.Generics)...)

	args := make([]tt.Stream, len(names))
	for i, n := range names {
		args[i] = tt.Stream{tt.NewIdent(n)}
	}
	out = append(out, tt.NewGroup(tt.Paren, syntax.JoinComma(args, false)))
	if sig.Async {
		out = append(out, tt.NewPunct('.'), tt.NewIdent("await"))
	}
	return append(out, tt.NewPunct(';'))
}

// turbofish passes the method's own type and const parameters explicitly.
func turbofish(g syntax.Generics) tt.Stream {
	var args []tt.Stream
	for _, p := range g.Params {
		if p.Kind != syntax.LifetimeParam {
			args = append(args, tt.Stream{p.Arg()})
		}
	}
	if len(args) == 0 {
		return nil
	}
	out := tt.Puncts("::<")
	out = append(out, syntax.JoinComma(args, false)...)
	return append(out, tt.NewPunct('>'))
}

// cfgAttrs keeps the conditional-compilation attributes of a method.
func cfgAttrs(attrs []syntax.Attribute) tt.Stream {
	var out tt.Stream
	for _, a := range attrs {
		if a.NameIs("cfg") || a.NameIs("cfg_attr") {
			out = append(out, a.Tokens...)
		}
	}
	return out
}
