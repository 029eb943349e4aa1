package syntax

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

// ItemTrait is a trait definition.
type ItemTrait struct {
	Attrs       []Attribute
	Vis         tt.Stream
	Unsafe      bool
	Auto        bool
	Name        tt.Ident
	Generics    Generics
	Supertraits tt.Stream // bounds after ':', nil when absent
	Items       []AssocItem
	Body        tt.Group
	Tokens      tt.Stream
}

func (t *ItemTrait) Span() source.Span { return t.Tokens.Span() }

// ParseTrait parses s as exactly one trait definition.
func ParseTrait(s tt.Stream, r diag.Reporter) (*ItemTrait, bool) {
	c := tt.NewCursor(s, source.NoSpan)
	t := &ItemTrait{Tokens: s}
	t.Attrs = ParseAttrs(c, false, r)
	t.Vis = ParseVisibility(c)
	for {
		if c.EatIdent("unsafe") {
			t.Unsafe = true
			continue
		}
		if c.EatIdent("auto") {
			t.Auto = true
			continue
		}
		break
	}
	if !c.EatIdent("trait") {
		diag.ReportError(r, diag.SynUnexpectedToken, c.Span(), "expected 'trait'").Emit()
		return nil, false
	}
	name, ok := c.AnyIdent()
	if !ok {
		diag.ReportError(r, diag.SynExpectIdentifier, c.Span(), "expected trait name").Emit()
		return nil, false
	}
	t.Name = name
	if t.Generics, ok = ParseGenerics(c, r); !ok {
		return nil, false
	}

	if c.EatPunct(':') {
		start := c.Pos()
		depth := 0
		for !c.EOF() {
			if depth == 0 && (c.IsGroup(tt.Brace) || c.IsIdent("where")) {
				break
			}
			depth = max(depth+angleStep(c.Stream(), c.Pos()), 0)
			c.Next()
		}
		t.Supertraits = c.Slice(start)
	}
	ParseWhere(c, &t.Generics)

	body, ok := c.EatGroup(tt.Brace)
	if !ok {
		diag.ReportError(r, diag.SynExpectBody, c.Span(), "expected '{' to open the trait body").Emit()
		return nil, false
	}
	t.Body = body
	if !c.EOF() {
		diag.ReportError(r, diag.SynUnexpectedToken, c.Span(), "unexpected tokens after trait body").Emit()
		return nil, false
	}
	if t.Items, ok = parseAssocItems(body, r); !ok {
		return nil, false
	}
	return t, true
}

// PathTokens renders the trait as a bound: `Name<params>`.
func (t *ItemTrait) PathTokens() tt.Stream {
	return tt.Concat(tt.Stream{tt.NewIdent(t.Name.Name)}, t.Generics.ArgsTokens())
}
