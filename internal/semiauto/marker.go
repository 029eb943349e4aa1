package semiauto

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

// Placement is the syntactic form of a marker.
type Placement uint8

const (
	AssocType     Placement = iota // type Name = ( #(..)* );
	Parenthesized                  // ( #(..)* )
	Statement                      // #(..)*
	WhereClause                    // where #(..)*
)

func (p Placement) String() string {
	switch p {
	case AssocType:
		return "associated type"
	case Parenthesized:
		return "parenthesized"
	case Statement:
		return "statement"
	case WhereClause:
		return "where clause"
	}
	return "placement(?)"
}

// Repetition is `#( body ) [,] *`.
type Repetition struct {
	Body  tt.Stream
	Comma bool
	Span  source.Span
}

// Marker is a parsed `for_tuples!(...)` invocation.
type Marker struct {
	Placement Placement
	TypeKw    tt.Ident // AssocType only
	TypeName  tt.Ident // AssocType only
	Rep       Repetition
	Span      source.Span
}

const formsHelp = "expected `type Name = ( #( ... )* );`, `( #( ... )* )`, `#( ... )*` or `where #( ... )*`"

// ParseMarker parses the argument group of a marker invocation named name.
func ParseMarker(name string, args tt.Group, r diag.Reporter) (*Marker, bool) {
	m := &Marker{Span: args.Span()}
	c := tt.GroupCursor(args)

	switch {
	case c.IsIdent("type"):
		m.Placement = AssocType
		m.TypeKw = c.Next().(tt.Ident)
		id, ok := c.AnyIdent()
		if !ok {
			return nil, syntaxError(r, c.Span(), "expected associated type name after `type`")
		}
		m.TypeName = id
		if !c.EatPunct('=') {
			return nil, syntaxError(r, c.Span(), "expected `=` after associated type name")
		}
		g, ok := c.EatGroup(tt.Paren)
		if !ok {
			return nil, syntaxError(r, c.Span(), "expected `( #( ... )* )` after `=`")
		}
		if m.Rep, ok = parseWholeRepetition(g, r); !ok {
			return nil, false
		}
		if !c.EatPunct(';') {
			return nil, syntaxError(r, c.Span(), "expected `;` after associated type")
		}

	case c.IsGroup(tt.Paren):
		m.Placement = Parenthesized
		g, _ := c.EatGroup(tt.Paren)
		var ok bool
		if m.Rep, ok = parseWholeRepetition(g, r); !ok {
			return nil, false
		}

	case c.IsPunct('#'):
		m.Placement = Statement
		var ok bool
		if m.Rep, ok = parseRepetition(c, r); !ok {
			return nil, false
		}

	case c.IsIdent("where"):
		m.Placement = WhereClause
		c.Next()
		var ok bool
		if m.Rep, ok = parseRepetition(c, r); !ok {
			return nil, false
		}

	default:
		return nil, syntaxError(r, c.Span(), formsHelp)
	}

	if !c.EOF() {
		return nil, syntaxError(r, c.Span(), "unexpected tokens after tuple repetition; "+formsHelp)
	}
	if sp, nested := findMarker(m.Rep.Body, name); nested {
		return nil, syntaxError(r, sp, "`"+name+"!` cannot be nested inside a tuple repetition")
	}
	return m, true
}

func parseWholeRepetition(g tt.Group, r diag.Reporter) (Repetition, bool) {
	c := tt.GroupCursor(g)
	rep, ok := parseRepetition(c, r)
	if !ok {
		return rep, false
	}
	if !c.EOF() {
		syntaxError(r, c.Span(), "unexpected tokens after tuple repetition")
		return rep, false
	}
	return rep, true
}

// parseRepetition consumes `#( body ) [,] *`.
func parseRepetition(c *tt.Cursor, r diag.Reporter) (Repetition, bool) {
	var rep Repetition
	start := c.Span()
	if !c.EatPunct('#') {
		return rep, syntaxError(r, c.Span(), "expected `#` to start a tuple repetition; "+formsHelp)
	}
	g, ok := c.EatGroup(tt.Paren)
	if !ok {
		return rep, syntaxError(r, c.Span(), "expected `(` after `#`")
	}
	rep.Body = g.Stream
	rep.Comma = c.EatPunct(',')
	end := c.Span()
	if !c.EatPunct('*') {
		return rep, syntaxError(r, c.Span(), "expected `*` or `,*` after the repetition body; only `,` is supported as separator")
	}
	rep.Span = start.Cover(end)
	return rep, true
}

func syntaxError(r diag.Reporter, sp source.Span, msg string) bool {
	diag.ReportError(r, diag.GenRepetitionSyntax, sp, msg).Emit()
	return false
}

// findMarker looks for `name!` followed by a group at any depth.
func findMarker(s tt.Stream, name string) (source.Span, bool) {
	for i, t := range s {
		if isMarkerAt(s, i, name) {
			return t.Span(), true
		}
		if g, ok := t.(tt.Group); ok {
			if sp, found := findMarker(g.Stream, name); found {
				return sp, true
			}
		}
	}
	return source.NoSpan, false
}

// isMarkerAt reports whether `name ! (..)` starts at s[i] and is not a path tail.
func isMarkerAt(s tt.Stream, i int, name string) bool {
	if !tt.IsIdent(s[i], name) || i+2 >= len(s) {
		return false
	}
	if i >= 2 && tt.HasPuncts(s, i-2, "::") {
		return false
	}
	_, isGroup := s[i+2].(tt.Group)
	return tt.IsPunct(s[i+1], '!') && isGroup
}
