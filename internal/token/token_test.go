package token_test

import (
	"testing"

	"tuplegen/internal/token"
)

func TestKeywords(t *testing.T) {
	for _, kw := range []string{"fn", "impl", "trait", "Self", "self", "where", "dyn"} {
		if !token.IsKeyword(kw) {
			t.Fatalf("%q should be a keyword", kw)
		}
	}
	for _, id := range []string{"Tuple", "r#type", "union", "foo"} {
		if token.IsKeyword(id) {
			t.Fatalf("%q must NOT be a keyword", id)
		}
	}
}

func TestDelimiters(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.LParen:   token.RParen,
		token.LBrace:   token.RBrace,
		token.LBracket: token.RBracket,
	}
	for open, close := range pairs {
		if !open.IsOpen() || open.IsClose() {
			t.Fatalf("%v open/close classification", open)
		}
		if !close.IsClose() {
			t.Fatalf("%v should close", close)
		}
		if open.Closer() != close {
			t.Fatalf("%v closer = %v, want %v", open, open.Closer(), close)
		}
	}
	if token.Ident.Closer() != token.Invalid {
		t.Fatalf("Ident has no closer")
	}
}

func TestTokenPredicates(t *testing.T) {
	p := token.Token{Kind: token.Punct, Text: "#"}
	if !p.IsPunct('#') || p.IsPunct('!') {
		t.Fatalf("IsPunct mismatch")
	}
	d := token.Token{Kind: token.DocInner}
	if !d.IsDoc() {
		t.Fatalf("doc comment not detected")
	}
	if token.LitRawStr.String() != "RawStr" || token.Lifetime.String() != "Lifetime" {
		t.Fatalf("String() names")
	}
}
