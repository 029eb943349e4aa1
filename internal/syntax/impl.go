package syntax

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

// ItemImpl is an implementation block.
type ItemImpl struct {
	Attrs    []Attribute
	Default  bool
	Unsafe   bool
	ImplKw   tt.Ident
	Generics Generics
	Trait    tt.Stream // trait path, `!` included for negative impls; nil for inherent impls
	SelfTy   tt.Stream
	Items    []AssocItem
	Body     tt.Group
	Tokens   tt.Stream
}

func (im *ItemImpl) Span() source.Span { return im.Tokens.Span() }

// HeaderSpan covers `impl ... for Self`.
func (im *ItemImpl) HeaderSpan() source.Span {
	return im.ImplKw.Sp.Cover(im.SelfTy.Span())
}

// ParseImpl parses s as exactly one implementation block.
func ParseImpl(s tt.Stream, r diag.Reporter) (*ItemImpl, bool) {
	c := tt.NewCursor(s, source.NoSpan)
	im := &ItemImpl{Tokens: s}
	im.Attrs = ParseAttrs(c, false, r)
	for {
		if c.EatIdent("default") {
			im.Default = true
			continue
		}
		if c.EatIdent("unsafe") {
			im.Unsafe = true
			continue
		}
		break
	}
	kw, ok := c.Peek().(tt.Ident)
	if !ok || kw.Name != "impl" {
		diag.ReportError(r, diag.SynUnexpectedToken, c.Span(), "expected 'impl'").Emit()
		return nil, false
	}
	c.Next()
	im.ImplKw = kw
	if im.Generics, ok = ParseGenerics(c, r); !ok {
		return nil, false
	}

	start := c.Pos()
	depth := 0
	for !c.EOF() {
		if depth == 0 && (c.IsGroup(tt.Brace) || c.IsIdent("where")) {
			break
		}
		depth = max(depth+angleStep(c.Stream(), c.Pos()), 0)
		c.Next()
	}
	header := c.Slice(start)
	forAt := indexTopLevel(header, func(s tt.Stream, i int) bool {
		// for<'a> это HRTB, а не разделитель
		return tt.IsIdent(s[i], "for") && !(i+1 < len(s) && tt.IsPunct(s[i+1], '<'))
	})
	if forAt >= 0 {
		im.Trait = header[:forAt]
		im.SelfTy = header[forAt+1:]
	} else {
		im.SelfTy = header
	}
	if len(im.SelfTy) == 0 {
		diag.ReportError(r, diag.SynUnexpectedToken, c.Span(), "expected a self type").Emit()
		return nil, false
	}

	ParseWhere(c, &im.Generics)
	body, ok := c.EatGroup(tt.Brace)
	if !ok {
		diag.ReportError(r, diag.SynExpectBody, c.Span(), "expected '{' to open the impl body").Emit()
		return nil, false
	}
	im.Body = body
	if !c.EOF() {
		diag.ReportError(r, diag.SynUnexpectedToken, c.Span(), "unexpected tokens after impl body").Emit()
		return nil, false
	}
	if im.Items, ok = parseAssocItems(body, r); !ok {
		return nil, false
	}
	return im, true
}

// SelfIdent returns the self type when it is a single bare identifier.
func (im *ItemImpl) SelfIdent() (tt.Ident, bool) {
	if len(im.SelfTy) != 1 {
		return tt.Ident{}, false
	}
	id, ok := im.SelfTy[0].(tt.Ident)
	return id, ok
}
