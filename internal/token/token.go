package token

import (
	"tuplegen/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Lit     LitKind // only for Literal
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal of any kind.
func (t Token) IsLiteral() bool { return t.Kind == Literal }

// IsIdent reports whether the token is an identifier (keywords included).
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPunct reports whether the token is the punctuation character ch.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsDoc reports whether the token is a doc comment.
func (t Token) IsDoc() bool { return t.Kind == DocOuter || t.Kind == DocInner }
