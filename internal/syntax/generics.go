package syntax

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

type ParamKind uint8

const (
	LifetimeParam ParamKind = iota
	TypeParam
	ConstParam
)

// GenericParam is one entry of a `<...>` parameter list.
type GenericParam struct {
	Kind   ParamKind
	Name   string
	Tokens tt.Stream // attributes, bounds and default included
}

// WithoutDefault drops a trailing `= default`.
func (p GenericParam) WithoutDefault() tt.Stream {
	i := indexTopLevel(p.Tokens, func(s tt.Stream, i int) bool {
		return tt.IsPunct(s[i], '=') && !joinedWithNext(s, i)
	})
	if i < 0 {
		return p.Tokens
	}
	return p.Tokens[:i]
}

// Arg is the parameter as a generic argument: `'a`, `T` or `N`.
func (p GenericParam) Arg() tt.Tree {
	if p.Kind == LifetimeParam {
		return tt.Lifetime{Name: p.Name, Sp: source.NoSpan}
	}
	return tt.NewIdent(p.Name)
}

func joinedWithNext(s tt.Stream, i int) bool {
	p, ok := s[i].(tt.Punct)
	return ok && p.Spacing == tt.Joint && i+1 < len(s) && tt.IsPunct(s[i+1], '=')
}

// Generics holds the parameter list and where clause of an item.
type Generics struct {
	Params   []GenericParam
	Where    []tt.Stream // predicates without separators
	HasWhere bool
}

// HasTypeParam reports whether name is declared as a type parameter.
func (g Generics) HasTypeParam(name string) bool {
	for _, p := range g.Params {
		if p.Kind == TypeParam && p.Name == name {
			return true
		}
	}
	return false
}

// Clone returns a copy whose slices can be appended to independently.
func (g Generics) Clone() Generics {
	out := Generics{HasWhere: g.HasWhere}
	out.Params = append([]GenericParam(nil), g.Params...)
	out.Where = append([]tt.Stream(nil), g.Where...)
	return out
}

// ParamsTokens renders `<...>`; empty when there are no parameters.
// Lifetimes are emitted first as Rust requires.
func (g Generics) ParamsTokens(stripDefaults bool) tt.Stream {
	if len(g.Params) == 0 {
		return nil
	}
	var lifetimes, rest []tt.Stream
	for _, p := range g.Params {
		toks := p.Tokens
		if stripDefaults {
			toks = p.WithoutDefault()
		}
		if p.Kind == LifetimeParam {
			lifetimes = append(lifetimes, toks)
		} else {
			rest = append(rest, toks)
		}
	}
	parts := append(lifetimes, rest...)
	out := tt.Stream{tt.NewPunct('<')}
	out = append(out, JoinComma(parts, false)...)
	return append(out, tt.NewPunct('>'))
}

// ArgsTokens renders the parameters as generic arguments: `<'a, T, N>`.
func (g Generics) ArgsTokens() tt.Stream {
	if len(g.Params) == 0 {
		return nil
	}
	var parts []tt.Stream
	for _, p := range g.Params {
		parts = append(parts, tt.Stream{p.Arg()})
	}
	out := tt.Stream{tt.NewPunct('<')}
	out = append(out, JoinComma(parts, false)...)
	return append(out, tt.NewPunct('>'))
}

// WhereTokens renders `where a, b,`; empty when there are no predicates.
func (g Generics) WhereTokens() tt.Stream {
	if len(g.Where) == 0 {
		return nil
	}
	out := tt.Stream{tt.NewIdent("where")}
	return append(out, JoinComma(g.Where, true)...)
}

// ParseGenerics consumes `<...>` when present.
func ParseGenerics(c *tt.Cursor, r diag.Reporter) (Generics, bool) {
	var g Generics
	if !c.IsPunct('<') {
		return g, true
	}
	open := c.Span()
	c.Next()
	start := c.Pos()
	depth := 1
	for !c.EOF() {
		step := angleStep(c.Stream(), c.Pos())
		if step < 0 && depth == 1 {
			inner := c.Slice(start)
			c.Next()
			g.Params = parseParams(inner)
			return g, true
		}
		depth += step
		c.Next()
	}
	diag.ReportError(r, diag.SynUnclosedAngle, open, "unclosed '<' in generic parameter list").Emit()
	return g, false
}

func parseParams(s tt.Stream) []GenericParam {
	var params []GenericParam
	for _, part := range SplitTopLevel(s, ',') {
		params = append(params, classifyParam(part))
	}
	return params
}

func classifyParam(part tt.Stream) GenericParam {
	p := GenericParam{Kind: TypeParam, Tokens: part}
	i := 0
	// атрибуты параметра
	for i+1 < len(part) && tt.IsPunct(part[i], '#') && tt.IsGroup(part[i+1], tt.Bracket) {
		i += 2
	}
	if i >= len(part) {
		return p
	}
	switch t := part[i].(type) {
	case tt.Lifetime:
		p.Kind, p.Name = LifetimeParam, t.Name
	case tt.Ident:
		if t.Name == "const" && i+1 < len(part) {
			if id, ok := part[i+1].(tt.Ident); ok {
				p.Kind, p.Name = ConstParam, id.Name
				return p
			}
		}
		p.Name = t.Name
	}
	return p
}

// ParseWhere consumes `where ...` up to a brace group or `;` at depth zero.
func ParseWhere(c *tt.Cursor, g *Generics) {
	if !c.EatIdent("where") {
		return
	}
	g.HasWhere = true
	start := c.Pos()
	depth := 0
	for !c.EOF() {
		if depth == 0 && (c.IsGroup(tt.Brace) || c.IsPunct(';')) {
			break
		}
		depth = max(depth+angleStep(c.Stream(), c.Pos()), 0)
		c.Next()
	}
	g.Where = append(g.Where, SplitTopLevel(c.Slice(start), ',')...)
}

// StripDefaults drops `= default` from every parameter, as impl blocks require.
func (g Generics) StripDefaults() Generics {
	out := g.Clone()
	for i, p := range out.Params {
		out.Params[i].Tokens = p.WithoutDefault()
	}
	return out
}
