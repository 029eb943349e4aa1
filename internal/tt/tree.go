package tt

import (
	"strconv"
	"strings"

	"tuplegen/internal/source"
	"tuplegen/internal/token"
)

// Delim is the delimiter of a Group.
type Delim uint8

const (
	Paren   Delim = iota // ( )
	Brace                // { }
	Bracket              // [ ]
)

// Open returns the opening character.
func (d Delim) Open() byte {
	switch d {
	case Brace:
		return '{'
	case Bracket:
		return '['
	}
	return '('
}

// Close returns the closing character.
func (d Delim) Close() byte {
	switch d {
	case Brace:
		return '}'
	case Bracket:
		return ']'
	}
	return ')'
}

func (d Delim) String() string {
	switch d {
	case Paren:
		return "Paren"
	case Brace:
		return "Brace"
	case Bracket:
		return "Bracket"
	}
	return "Delim(?)"
}

// Spacing tells whether a Punct is glued to the following punctuation.
type Spacing uint8

const (
	Alone Spacing = iota
	Joint
)

// Tree is one token tree.
type Tree interface {
	Span() source.Span
	isTree()
}

type Ident struct {
	Name string
	Sp   source.Span
}

type Punct struct {
	Ch      byte
	Spacing Spacing
	Sp      source.Span
}

type Literal struct {
	Kind token.LitKind
	Text string // source form, quotes and suffix included
	Sp   source.Span
}

// Lifetime is a lifetime or loop label; Name keeps the leading quote.
type Lifetime struct {
	Name string
	Sp   source.Span
}

type Group struct {
	Delim  Delim
	Stream Stream
	Open   source.Span
	Close  source.Span
}

func (t Ident) Span() source.Span    { return t.Sp }
func (t Punct) Span() source.Span    { return t.Sp }
func (t Literal) Span() source.Span  { return t.Sp }
func (t Lifetime) Span() source.Span { return t.Sp }
func (t Group) Span() source.Span    { return t.Open.Cover(t.Close) }

func (Ident) isTree()    {}
func (Punct) isTree()    {}
func (Literal) isTree()  {}
func (Lifetime) isTree() {}
func (Group) isTree()    {}

// Stream is a sequence of token trees.
type Stream []Tree

// Span covers the whole stream; NoSpan when empty.
func (s Stream) Span() source.Span {
	if len(s) == 0 {
		return source.NoSpan
	}
	return s[0].Span().Cover(s[len(s)-1].Span())
}

// Clone returns a shallow copy safe for appending.
func (s Stream) Clone() Stream {
	if s == nil {
		return nil
	}
	out := make(Stream, len(s))
	copy(out, s)
	return out
}

// NewIdent creates an identifier without a source location.
func NewIdent(name string) Ident {
	return Ident{Name: name, Sp: source.NoSpan}
}

// NewPunct creates a lone punctuation character.
func NewPunct(ch byte) Punct {
	return Punct{Ch: ch, Sp: source.NoSpan}
}

// Puncts creates a multi-character operator such as "::" or "->": all but
// the last character are Joint.
func Puncts(op string) Stream {
	out := make(Stream, 0, len(op))
	for i := 0; i < len(op); i++ {
		sp := Alone
		if i+1 < len(op) {
			sp = Joint
		}
		out = append(out, Punct{Ch: op[i], Spacing: sp, Sp: source.NoSpan})
	}
	return out
}

// NewGroup creates a delimited group.
func NewGroup(d Delim, s Stream) Group {
	return Group{Delim: d, Stream: s, Open: source.NoSpan, Close: source.NoSpan}
}

// IntLiteral creates an unsuffixed integer literal, as used for tuple indices.
func IntLiteral(v int) Literal {
	return Literal{Kind: token.LitInt, Text: strconv.Itoa(v), Sp: source.NoSpan}
}

// StrLiteral creates a string literal with the given contents.
func StrLiteral(s string) Literal {
	return Literal{Kind: token.LitStr, Text: QuoteString(s), Sp: source.NoSpan}
}

// QuoteString renders s as a Rust string literal.
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\u{`)
				b.WriteString(strconv.FormatInt(int64(r), 16))
				b.WriteByte('}')
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// IsIdent reports whether t is the identifier name.
func IsIdent(t Tree, name string) bool {
	id, ok := t.(Ident)
	return ok && id.Name == name
}

// IsPunct reports whether t is the punctuation character ch.
func IsPunct(t Tree, ch byte) bool {
	p, ok := t.(Punct)
	return ok && p.Ch == ch
}

// IsGroup reports whether t is a group with delimiter d.
func IsGroup(t Tree, d Delim) bool {
	g, ok := t.(Group)
	return ok && g.Delim == d
}

// HasPuncts reports whether s starts with the joint operator op at index i.
func HasPuncts(s Stream, i int, op string) bool {
	if i < 0 || i+len(op) > len(s) {
		return false
	}
	for k := 0; k < len(op); k++ {
		p, ok := s[i+k].(Punct)
		if !ok || p.Ch != op[k] {
			return false
		}
		if k+1 < len(op) && p.Spacing != Joint {
			return false
		}
	}
	return true
}

// Concat joins streams into a new one.
func Concat(parts ...Stream) Stream {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Stream, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Path builds `a::b::c`; a leading empty segment produces a leading `::`.
func Path(segments ...string) Stream {
	var out Stream
	for i, seg := range segments {
		if i > 0 {
			out = append(out, Puncts("::")...)
		}
		if seg != "" {
			out = append(out, NewIdent(seg))
		}
	}
	return out
}
