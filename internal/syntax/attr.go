package syntax

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

// Attribute is `#[...]` or `#![...]`.
type Attribute struct {
	Inner  bool
	Pound  tt.Punct
	Body   tt.Group // the bracket group
	Tokens tt.Stream
}

func (a Attribute) Span() source.Span {
	return a.Pound.Sp.Cover(a.Body.Close)
}

// Path returns the path segments before the arguments, e.g. [a b c] for
// `#[a::b::c(..)]`. A leading `::` is ignored.
func (a Attribute) Path() []string {
	var segs []string
	s := a.Body.Stream
	for i := 0; i < len(s); i++ {
		switch t := s[i].(type) {
		case tt.Ident:
			segs = append(segs, t.Name)
			if !tt.HasPuncts(s, i+1, "::") {
				return segs
			}
			i += 2
		case tt.Punct:
			if i == 0 && tt.HasPuncts(s, 0, "::") {
				i++
				continue
			}
			return segs
		default:
			return segs
		}
	}
	return segs
}

// NameIs reports whether the last path segment is name.
func (a Attribute) NameIs(name string) bool {
	segs := a.Path()
	return len(segs) > 0 && segs[len(segs)-1] == name
}

// Args returns the parenthesized argument group following the path.
func (a Attribute) Args() (tt.Group, bool) {
	for _, t := range a.Body.Stream {
		if g, ok := t.(tt.Group); ok {
			return g, g.Delim == tt.Paren
		}
	}
	return tt.Group{}, false
}

// ParseAttrs consumes a run of attributes. With inner set it also accepts
// `#![...]`; otherwise only outer attributes.
func ParseAttrs(c *tt.Cursor, inner bool, r diag.Reporter) []Attribute {
	var attrs []Attribute
	for c.IsPunct('#') {
		start := c.Pos()
		pound := c.Peek().(tt.Punct)
		isInner := false
		if tt.IsPunct(c.PeekN(1), '!') {
			if !inner {
				return attrs
			}
			isInner = true
		}
		body, ok := c.PeekN(boolInt(isInner) + 1).(tt.Group)
		if !ok || body.Delim != tt.Bracket {
			diag.ReportError(r, diag.SynBadAttribute, pound.Sp, "expected '[' after '#'").Emit()
			c.Next()
			return attrs
		}
		c.Reset(start + boolInt(isInner) + 2)
		attrs = append(attrs, Attribute{Inner: isInner, Pound: pound, Body: body, Tokens: c.Slice(start)})
	}
	return attrs
}

// AttrTokens concatenates the trees of attrs.
func AttrTokens(attrs []Attribute) tt.Stream {
	var out tt.Stream
	for _, a := range attrs {
		out = append(out, a.Tokens...)
	}
	return out
}

// NewAttribute builds `#[body]`.
func NewAttribute(body tt.Stream) Attribute {
	pound := tt.NewPunct('#')
	g := tt.NewGroup(tt.Bracket, body)
	return Attribute{Pound: pound, Body: g, Tokens: tt.Stream{pound, g}}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ParseVisibility consumes `pub`, `pub(crate)`, `pub(in path)` and friends.
func ParseVisibility(c *tt.Cursor) tt.Stream {
	start := c.Pos()
	if !c.EatIdent("pub") {
		return nil
	}
	if g, ok := c.Peek().(tt.Group); ok && g.Delim == tt.Paren && visibilityScope(g.Stream) {
		c.Next()
	}
	return c.Slice(start)
}

func visibilityScope(s tt.Stream) bool {
	if len(s) == 0 {
		return false
	}
	return tt.IsIdent(s[0], "crate") || tt.IsIdent(s[0], "self") ||
		tt.IsIdent(s[0], "super") || tt.IsIdent(s[0], "in")
}
