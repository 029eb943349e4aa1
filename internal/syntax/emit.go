package syntax

import "tuplegen/internal/tt"

// ImplBlock describes an implementation block to emit.
type ImplBlock struct {
	Attrs    tt.Stream
	Unsafe   bool
	Default  bool
	Generics Generics
	Trait    tt.Stream
	SelfTy   tt.Stream
	Body     tt.Stream
}

// Tokens renders the block:
// attrs [default] [unsafe] impl<params> Trait for Self where preds { body }.
func (b ImplBlock) Tokens() tt.Stream {
	out := b.Attrs.Clone()
	if b.Default {
		out = append(out, tt.NewIdent("default"))
	}
	if b.Unsafe {
		out = append(out, tt.NewIdent("unsafe"))
	}
	out = append(out, tt.NewIdent("impl"))
	out = append(out, b.Generics.ParamsTokens(false)...)
	if len(b.Trait) > 0 {
		out = append(out, b.Trait...)
		out = append(out, tt.NewIdent("for"))
	}
	out = append(out, b.SelfTy...)
	out = append(out, b.Generics.WhereTokens()...)
	return append(out, tt.NewGroup(tt.Brace, b.Body))
}

// TupleType renders `(A, B, C)`; `()` for no elements.
func TupleType(elems []tt.Stream) tt.Stream {
	if len(elems) == 1 {
		return tt.Stream{tt.NewGroup(tt.Paren, JoinComma(elems, true))}
	}
	return tt.Stream{tt.NewGroup(tt.Paren, JoinComma(elems, false))}
}

// IdentStreams wraps names as single-identifier streams.
func IdentStreams(names []string) []tt.Stream {
	out := make([]tt.Stream, len(names))
	for i, n := range names {
		out[i] = tt.Stream{tt.NewIdent(n)}
	}
	return out
}

// AllowUnused is `#[allow(unused)]`.
func AllowUnused() Attribute {
	return NewAttribute(tt.Stream{
		tt.NewIdent("allow"),
		tt.NewGroup(tt.Paren, tt.Stream{tt.NewIdent("unused")}),
	})
}
