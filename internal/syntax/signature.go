package syntax

import (
	"strconv"

	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

// Param is one function parameter.
type Param struct {
	Attrs    tt.Stream
	Receiver bool
	Pattern  tt.Stream // nil for anonymous parameters
	Type     tt.Stream // nil for `self`, `&self`, ...
	Tokens   tt.Stream
}

// Ident returns the bound name for `x`, `mut x` and `ref x` patterns.
func (p Param) Ident() (string, bool) {
	pat := p.Pattern
	for len(pat) > 1 && (tt.IsIdent(pat[0], "mut") || tt.IsIdent(pat[0], "ref")) {
		pat = pat[1:]
	}
	if len(pat) != 1 {
		return "", false
	}
	id, ok := pat[0].(tt.Ident)
	if !ok || id.Name == "_" {
		return "", false
	}
	return id.Name, true
}

// Signature is a function header.
type Signature struct {
	Const    bool
	Async    bool
	Unsafe   bool
	Name     tt.Ident
	Generics Generics
	Inputs   tt.Group
	Params   []Param
	Output   tt.Stream // type after `->`, nil when absent
	Tokens   tt.Stream // qualifiers through where clause

	inputsAt int // index of Inputs in Tokens
}

// HasReceiver reports whether the first parameter is a receiver.
func (s *Signature) HasReceiver() bool {
	return len(s.Params) > 0 && s.Params[0].Receiver
}

// ReturnsUnit reports whether the output is absent or `()`.
func (s *Signature) ReturnsUnit() bool {
	if len(s.Output) == 0 {
		return true
	}
	if len(s.Output) == 1 {
		g, ok := s.Output[0].(tt.Group)
		return ok && g.Delim == tt.Paren && len(g.Stream) == 0
	}
	return false
}

// isFnStart reports whether a function signature starts at the cursor.
func isFnStart(c *tt.Cursor) bool {
	for i := 0; ; i++ {
		t := c.PeekN(i)
		switch {
		case tt.IsIdent(t, "fn"):
			return true
		case tt.IsIdent(t, "const"), tt.IsIdent(t, "async"), tt.IsIdent(t, "unsafe"), tt.IsIdent(t, "safe"):
			continue
		case tt.IsIdent(t, "extern"):
			if _, ok := c.PeekN(i + 1).(tt.Literal); ok {
				i++
			}
			continue
		}
		return false
	}
}

// ParseSignature consumes a function header up to, not including, the body or `;`.
func ParseSignature(c *tt.Cursor, r diag.Reporter) (*Signature, bool) {
	start := c.Pos()
	sig := &Signature{}
	for !c.IsIdent("fn") {
		switch {
		case c.EatIdent("const"):
			sig.Const = true
		case c.EatIdent("async"):
			sig.Async = true
		case c.EatIdent("unsafe"):
			sig.Unsafe = true
		case c.EatIdent("safe"):
		case c.EatIdent("extern"):
			if _, ok := c.Peek().(tt.Literal); ok {
				c.Next()
			}
		default:
			diag.ReportError(r, diag.SynUnexpectedToken, c.Span(), "expected 'fn'").Emit()
			return nil, false
		}
	}
	c.Next()

	name, ok := c.AnyIdent()
	if !ok {
		diag.ReportError(r, diag.SynExpectIdentifier, c.Span(), "expected function name").Emit()
		return nil, false
	}
	sig.Name = name

	if sig.Generics, ok = ParseGenerics(c, r); !ok {
		return nil, false
	}

	inputs, ok := c.EatGroup(tt.Paren)
	if !ok {
		diag.ReportError(r, diag.SynUnexpectedToken, c.Span(), "expected '(' after function name").Emit()
		return nil, false
	}
	sig.Inputs = inputs
	sig.inputsAt = c.Pos() - 1 - start
	for _, part := range SplitTopLevel(inputs.Stream, ',') {
		sig.Params = append(sig.Params, parseParam(part))
	}

	if c.EatOp("->") {
		outStart := c.Pos()
		depth := 0
		for !c.EOF() {
			if depth == 0 && (c.IsGroup(tt.Brace) || c.IsPunct(';') || c.IsIdent("where")) {
				break
			}
			depth = max(depth+angleStep(c.Stream(), c.Pos()), 0)
			c.Next()
		}
		sig.Output = c.Slice(outStart)
	}

	ParseWhere(c, &sig.Generics)
	sig.Tokens = c.Slice(start)
	return sig, true
}

func parseParam(part tt.Stream) Param {
	p := Param{Tokens: part}
	i := 0
	for i+1 < len(part) && tt.IsPunct(part[i], '#') && tt.IsGroup(part[i+1], tt.Bracket) {
		i += 2
	}
	p.Attrs = part[:i]
	rest := part[i:]

	colon := indexTopLevel(rest, func(s tt.Stream, i int) bool {
		return tt.IsPunct(s[i], ':') && !partOfPathSep(s, i)
	})
	if colon < 0 {
		if isShortReceiver(rest) {
			p.Receiver = true
			p.Pattern = rest
			return p
		}
		// анонимный параметр (редакция 2015)
		p.Type = rest
		return p
	}
	p.Pattern = rest[:colon]
	p.Type = rest[colon+1:]
	pat := p.Pattern
	if len(pat) > 0 && tt.IsIdent(pat[0], "mut") {
		pat = pat[1:]
	}
	p.Receiver = len(pat) == 1 && tt.IsIdent(pat[0], "self")
	return p
}

// isShortReceiver matches self, mut self, &self, &mut self, &'a self and &'a mut self.
func isShortReceiver(s tt.Stream) bool {
	i := 0
	if i < len(s) && tt.IsPunct(s[i], '&') {
		i++
		if i < len(s) {
			if _, ok := s[i].(tt.Lifetime); ok {
				i++
			}
		}
		if i < len(s) && tt.IsIdent(s[i], "mut") {
			i++
		}
	} else if i < len(s) && tt.IsIdent(s[i], "mut") {
		i++
	}
	return i == len(s)-1 && tt.IsIdent(s[i], "self")
}

// ArgNames returns the forwarded argument names of the non-receiver
// parameters. Patterns that are not plain identifiers get `__arg{i}`;
// renamed reports, per parameter, whether that happened.
func (s *Signature) ArgNames() (names []string, renamed []bool) {
	for i, p := range s.Params {
		if p.Receiver {
			continue
		}
		if name, ok := p.Ident(); ok {
			names = append(names, name)
			renamed = append(renamed, false)
			continue
		}
		names = append(names, argName(i))
		renamed = append(renamed, true)
	}
	return names, renamed
}

func argName(i int) string {
	return "__arg" + strconv.Itoa(i)
}

// WithArgNames re-emits the signature with parameter patterns replaced by
// the names from ArgNames, so every argument can be forwarded.
func (s *Signature) WithArgNames() tt.Stream {
	names, renamed := s.ArgNames()
	var params []tt.Stream
	k := 0
	for _, p := range s.Params {
		if p.Receiver {
			params = append(params, p.Tokens)
			continue
		}
		name, rename := names[k], renamed[k]
		k++
		if !rename && p.Pattern != nil {
			params = append(params, p.Tokens)
			continue
		}
		param := tt.Concat(p.Attrs, tt.Stream{tt.NewIdent(name), tt.NewPunct(':')}, p.Type)
		params = append(params, param)
	}

	out := s.Tokens.Clone()
	out[s.inputsAt] = tt.Group{Delim: tt.Paren, Stream: JoinComma(params, false), Open: s.Inputs.Open, Close: s.Inputs.Close}
	return out
}

// Span covers the signature.
func (s *Signature) Span() source.Span {
	return s.Tokens.Span()
}
