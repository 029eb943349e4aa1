package format

import (
	"github.com/mattn/go-runewidth"

	"tuplegen/internal/tt"
)

// Render prints s as Rust source. The top level is treated as a sequence of
// items; brace groups open indented blocks unless their body is short.
func Render(s tt.Stream, opt Options) string {
	w := NewWriter(opt)
	p := printer{w: w, opt: w.opt}
	p.stream(s, true, true)
	w.Newline()
	return w.String()
}

type printer struct {
	w   *Writer
	opt Options
}

// level is the state of one stream being printed.
type level struct {
	block    bool
	top      bool
	genDepth int
	closure  bool
	inWhere  bool
	prev     unit
	prevPrev unit
}

func (lv *level) push(u unit) {
	lv.prevPrev, lv.prev = lv.prev, u
}

func (p *printer) stream(s tt.Stream, block, top bool) {
	lv := &level{block: block, top: top}
	for i := 0; i < len(s); {
		switch t := s[i].(type) {
		case tt.Punct:
			op, n := splitOp(s, i, lv.genDepth > 0)
			p.op(lv, op)
			i += n
			continue
		case tt.Group:
			p.group(lv, t, s[i+1:])
		case tt.Ident:
			p.put(lv, unit{kind: uWord, text: t.Name})
			if t.Name == "where" {
				lv.inWhere = true
			}
		case tt.Literal:
			p.put(lv, unit{kind: uLit, text: t.Text})
		case tt.Lifetime:
			p.put(lv, unit{kind: uLifetime, text: t.Name})
		}
		i++
	}
}

func (p *printer) put(lv *level, u unit) {
	if needSpace(lv.prev, u) {
		p.w.Space()
	}
	p.w.WriteString(u.text)
	lv.push(u)
}

func (p *printer) op(lv *level, op string) {
	u := unit{kind: uOp, text: op}
	switch {
	case op == "<" && opensGeneric(lv.prev, lv.prevPrev):
		u.role = roleGenOpen
		lv.genDepth++
	case op == ">" && lv.genDepth > 0:
		u.role = roleGenClose
		lv.genDepth--
	case op == "|" && lv.closure:
		u.role = roleClosureClose
		lv.closure = false
	case op == "|" && unaryPos(lv.prev):
		u.role = roleClosureOpen
		lv.closure = true
	case op == "!" && (isPlainWord(lv.prev) || (lv.prev.kind == uOp && lv.prev.text == "#")):
		u.role = roleBang
	case isUnaryOp(op) && unaryPos(lv.prev):
		u.role = roleUnary
	}
	p.put(lv, u)

	if !lv.block {
		return
	}
	switch op {
	case ";":
		lv.inWhere = false
		p.w.Newline()
	case ",":
		if lv.genDepth == 0 && !lv.closure && !lv.inWhere {
			p.w.Newline()
		}
	}
}

func isUnaryOp(op string) bool {
	switch op {
	case "&", "&&", "*", "-", "!", "?":
		return true
	}
	return false
}

func (p *printer) group(lv *level, g tt.Group, rest tt.Stream) {
	u := unit{kind: uGroup, delim: g.Delim}
	attr := g.Delim == tt.Bracket && lv.prev.kind == uOp &&
		(lv.prev.text == "#" || (lv.prev.role == roleBang && lv.prevPrev.text == "#"))
	if needSpace(lv.prev, u) {
		p.w.Space()
	}

	switch {
	case g.Delim != tt.Brace:
		_ = p.w.WriteByte(g.Delim.Open())
		p.stream(g.Stream, false, false)
		_ = p.w.WriteByte(g.Delim.Close())
	case len(g.Stream) == 0:
		p.w.WriteString("{}")
	case p.inline(g.Stream):
		p.w.WriteString("{ ")
		p.stream(g.Stream, false, false)
		p.w.WriteString(" }")
	default:
		_ = p.w.WriteByte('{')
		p.w.Newline()
		p.w.IndentPush()
		p.stream(g.Stream, true, false)
		p.w.Newline()
		p.w.IndentPop()
		_ = p.w.WriteByte('}')
	}
	lv.push(u)

	if g.Delim == tt.Brace {
		lv.inWhere = false
	}
	if !lv.block {
		return
	}
	if attr {
		p.w.Newline()
		return
	}
	if g.Delim == tt.Brace && !continuesLine(rest) {
		if lv.top {
			p.w.BlankLine()
		} else {
			p.w.Newline()
		}
	}
}

// inline reports whether a brace body fits on the line of its opening brace.
func (p *printer) inline(s tt.Stream) bool {
	for _, t := range s {
		switch t := t.(type) {
		case tt.Group:
			if t.Delim == tt.Brace {
				return false
			}
		case tt.Punct:
			if t.Ch == ';' || t.Ch == '#' {
				return false
			}
		}
	}
	return runewidth.StringWidth(tt.Compact(s)) <= p.opt.InlineWidth
}

// continuesLine reports whether the tokens after a closing brace stay on its line.
func continuesLine(rest tt.Stream) bool {
	if len(rest) == 0 {
		return true
	}
	switch t := rest[0].(type) {
	case tt.Punct:
		switch t.Ch {
		case ';', ',', '.', '?', ')':
			return true
		}
	case tt.Ident:
		return t.Name == "else"
	}
	return false
}
