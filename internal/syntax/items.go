package syntax

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

type ItemKind uint8

const (
	MethodItem ItemKind = iota
	TypeItem
	ConstItem
	MacroItem
	OtherItem
)

func (k ItemKind) String() string {
	switch k {
	case MethodItem:
		return "method"
	case TypeItem:
		return "associated type"
	case ConstItem:
		return "associated const"
	case MacroItem:
		return "macro invocation"
	}
	return "item"
}

// MacroCall is `path!(...)`, `path![...]` or `path!{...}`.
type MacroCall struct {
	Path []string
	Bang tt.Punct
	Args tt.Group
	Semi bool
}

// NameIs reports whether the macro path is exactly the single identifier name.
func (m *MacroCall) NameIs(name string) bool {
	return len(m.Path) == 1 && m.Path[0] == name
}

// AssocItem is one item inside a trait or impl body.
type AssocItem struct {
	Kind   ItemKind
	Attrs  []Attribute
	Vis    tt.Stream
	Sig    *Signature // MethodItem
	Body   *tt.Group  // method body; nil for `fn f();`
	Name   string     // TypeItem, ConstItem
	Macro  *MacroCall // MacroItem
	Tokens tt.Stream  // the whole item, attributes included
}

func (it *AssocItem) Span() source.Span {
	return it.Tokens.Span()
}

// parseAssocItems splits a trait or impl body into items.
func parseAssocItems(body tt.Group, r diag.Reporter) ([]AssocItem, bool) {
	c := tt.GroupCursor(body)
	var items []AssocItem
	ok := true
	for !c.EOF() {
		it, good := parseAssocItem(c, r)
		ok = ok && good
		if len(it.Tokens) > 0 {
			items = append(items, it)
		}
	}
	return items, ok
}

func parseAssocItem(c *tt.Cursor, r diag.Reporter) (AssocItem, bool) {
	start := c.Pos()
	var it AssocItem

	if c.IsPunct('#') && tt.IsPunct(c.PeekN(1), '!') {
		it.Kind = OtherItem
		it.Attrs = ParseAttrs(c, true, r)
		if c.Pos() == start {
			c.Next()
		}
		it.Tokens = c.Slice(start)
		return it, true
	}

	it.Attrs = ParseAttrs(c, false, r)
	it.Vis = ParseVisibility(c)
	if c.IsIdent("default") && !tt.IsPunct(c.PeekN(1), '!') {
		c.Next()
	}

	switch {
	case isFnStart(c):
		it.Kind = MethodItem
		sig, ok := ParseSignature(c, r)
		if !ok {
			skipItem(c)
			it.Tokens = c.Slice(start)
			return it, false
		}
		it.Sig = sig
		if g, ok := c.EatGroup(tt.Brace); ok {
			it.Body = &g
		} else if !c.EatPunct(';') {
			diag.ReportError(r, diag.SynExpectBody, c.Span(), "expected '{' or ';' after function signature").Emit()
			skipItem(c)
			it.Tokens = c.Slice(start)
			return it, false
		}

	case c.IsIdent("type") || c.IsIdent("const"):
		it.Kind = TypeItem
		if c.IsIdent("const") {
			it.Kind = ConstItem
		}
		c.Next()
		if id, ok := c.Peek().(tt.Ident); ok {
			it.Name = id.Name
		}
		if !skipToSemi(c) {
			diag.ReportError(r, diag.SynExpectSemicolon, c.Span(), "expected ';' after "+it.Kind.String()).Emit()
			it.Tokens = c.Slice(start)
			return it, false
		}

	default:
		if m, ok := parseMacroCall(c); ok {
			it.Kind = MacroItem
			it.Macro = m
			break
		}
		diag.ReportError(r, diag.SynUnexpectedToken, c.Span(), "expected an associated item").Emit()
		skipItem(c)
		it.Kind = OtherItem
		it.Tokens = c.Slice(start)
		return it, false
	}

	it.Tokens = c.Slice(start)
	return it, true
}

// parseMacroCall consumes `a::b!(...)` with its optional `;`.
func parseMacroCall(c *tt.Cursor) (*MacroCall, bool) {
	start := c.Pos()
	m := &MacroCall{}
	c.EatOp("::")
	for {
		id, ok := c.AnyIdent()
		if !ok {
			c.Reset(start)
			return nil, false
		}
		m.Path = append(m.Path, id.Name)
		if !c.EatOp("::") {
			break
		}
	}
	bang, ok := c.Peek().(tt.Punct)
	if !ok || bang.Ch != '!' {
		c.Reset(start)
		return nil, false
	}
	c.Next()
	args, ok := c.Peek().(tt.Group)
	if !ok {
		c.Reset(start)
		return nil, false
	}
	c.Next()
	m.Bang, m.Args = bang, args
	m.Semi = c.EatPunct(';')
	return m, true
}

// skipToSemi consumes through the next `;` at this level.
func skipToSemi(c *tt.Cursor) bool {
	for !c.EOF() {
		if c.EatPunct(';') {
			return true
		}
		c.Next()
	}
	return false
}

// skipItem consumes through the next `;` or brace group.
func skipItem(c *tt.Cursor) {
	for !c.EOF() {
		if c.EatPunct(';') {
			return
		}
		if _, ok := c.EatGroup(tt.Brace); ok {
			return
		}
		c.Next()
	}
}

// ParseMacroCall parses a whole stream as one macro invocation.
func ParseMacroCall(s tt.Stream) (*MacroCall, bool) {
	c := tt.NewCursor(s, source.NoSpan)
	m, ok := parseMacroCall(c)
	return m, ok && c.EOF()
}
