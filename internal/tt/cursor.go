package tt

import "tuplegen/internal/source"

// Cursor walks a stream left to right. It never descends into groups.
type Cursor struct {
	s   Stream
	pos int
	end source.Span // reported as the location of EOF
}

// NewCursor creates a cursor over s; end is the span reported at EOF.
func NewCursor(s Stream, end source.Span) *Cursor {
	if len(s) > 0 && !end.IsValid() {
		end = s.Span().AtEnd()
	}
	return &Cursor{s: s, end: end}
}

// GroupCursor creates a cursor over the contents of g.
func GroupCursor(g Group) *Cursor {
	return &Cursor{s: g.Stream, end: g.Close}
}

func (c *Cursor) EOF() bool { return c.pos >= len(c.s) }

// Peek returns the current tree or nil at EOF.
func (c *Cursor) Peek() Tree { return c.PeekN(0) }

// PeekN returns the tree n positions ahead or nil.
func (c *Cursor) PeekN(n int) Tree {
	if c.pos+n >= len(c.s) || c.pos+n < 0 {
		return nil
	}
	return c.s[c.pos+n]
}

// Next consumes and returns the current tree (nil at EOF).
func (c *Cursor) Next() Tree {
	t := c.Peek()
	if t != nil {
		c.pos++
	}
	return t
}

func (c *Cursor) Pos() int      { return c.pos }
func (c *Cursor) Reset(pos int) { c.pos = pos }

// Stream returns the whole underlying stream.
func (c *Cursor) Stream() Stream { return c.s }

// Rest returns the unconsumed trees.
func (c *Cursor) Rest() Stream { return c.s[min(c.pos, len(c.s)):] }

// Slice returns the trees between from and the current position.
func (c *Cursor) Slice(from int) Stream { return c.s[from:c.pos] }

// Span returns the span of the current tree, or the EOF span.
func (c *Cursor) Span() source.Span {
	if t := c.Peek(); t != nil {
		return t.Span()
	}
	return c.end
}

func (c *Cursor) IsIdent(name string) bool { return IsIdent(c.Peek(), name) }
func (c *Cursor) IsPunct(ch byte) bool     { return IsPunct(c.Peek(), ch) }
func (c *Cursor) IsGroup(d Delim) bool     { return IsGroup(c.Peek(), d) }

// IsOp reports whether a joint operator such as "::" starts here.
func (c *Cursor) IsOp(op string) bool { return HasPuncts(c.s, c.pos, op) }

func (c *Cursor) EatIdent(name string) bool {
	if c.IsIdent(name) {
		c.pos++
		return true
	}
	return false
}

func (c *Cursor) EatPunct(ch byte) bool {
	if c.IsPunct(ch) {
		c.pos++
		return true
	}
	return false
}

func (c *Cursor) EatOp(op string) bool {
	if c.IsOp(op) {
		c.pos += len(op)
		return true
	}
	return false
}

// AnyIdent consumes an identifier of any name.
func (c *Cursor) AnyIdent() (Ident, bool) {
	id, ok := c.Peek().(Ident)
	if ok {
		c.pos++
	}
	return id, ok
}

// EatGroup consumes a group with delimiter d.
func (c *Cursor) EatGroup(d Delim) (Group, bool) {
	g, ok := c.Peek().(Group)
	if ok && g.Delim == d {
		c.pos++
		return g, true
	}
	return Group{}, false
}
