// Package generics injects tuple element type parameters into generics.
package generics

import (
	"tuplegen/internal/syntax"
	"tuplegen/internal/tt"
)

// AddTupleElements returns g extended with one `Ti: bound` per element.
//
// When any element name is already declared as a type parameter the bounds
// go to the where clause; otherwise every element becomes a new parameter.
// g is not modified.
func AddTupleElements(g syntax.Generics, elems []string, bound tt.Stream) syntax.Generics {
	out := g.Clone()
	declared := false
	for _, e := range elems {
		if g.HasTypeParam(e) {
			declared = true
			break
		}
	}
	for _, e := range elems {
		pred := tt.Concat(tt.Stream{tt.NewIdent(e), tt.NewPunct(':')}, bound)
		if declared {
			out.Where = append(out.Where, pred)
			out.HasWhere = true
			continue
		}
		out.Params = append(out.Params, syntax.GenericParam{Kind: syntax.TypeParam, Name: e, Tokens: pred})
	}
	return out
}
