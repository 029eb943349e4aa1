package driver

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/syntax"
	"tuplegen/internal/tt"
)

// invocation is one item decorated with the generator attribute.
type invocation struct {
	attr syntax.Attribute
	// item is the decorated item with every other attribute but without the
	// triggering one.
	item tt.Stream
	// start and end delimit the whole item in the file, attribute run included.
	start, end uint32
}

// locate finds decorated items in s and in nested brace groups, in source order.
// Items that are themselves expanded are not searched further.
func locate(s tt.Stream, name string) []invocation {
	var out []invocation
	for i := 0; i < len(s); {
		if tt.IsPunct(s[i], '#') && !(i+1 < len(s) && tt.IsPunct(s[i+1], '!')) {
			c := tt.NewCursor(s, source.NoSpan)
			c.Reset(i)
			attrs := syntax.ParseAttrs(c, false, diag.NopReporter{})
			if len(attrs) == 0 {
				i++
				continue
			}
			runEnd := c.Pos()
			k := trigger(attrs, name)
			if k < 0 {
				i = runEnd
				continue
			}
			end := itemEnd(s, runEnd)
			out = append(out, newInvocation(s, i, end, attrs, k))
			i = end
			continue
		}
		if g, ok := s[i].(tt.Group); ok && g.Delim == tt.Brace {
			out = append(out, locate(g.Stream, name)...)
		}
		i++
	}
	return out
}

func trigger(attrs []syntax.Attribute, name string) int {
	for k, a := range attrs {
		if !a.Inner && a.NameIs(name) {
			return k
		}
	}
	return -1
}

// itemEnd returns the index after the item body: the first brace group that
// is not a generic or default argument, or a terminating `;`.
func itemEnd(s tt.Stream, from int) int {
	for j := from; j < len(s); j++ {
		switch t := s[j].(type) {
		case tt.Group:
			if t.Delim != tt.Brace {
				continue
			}
			if j > from && (tt.IsPunct(s[j-1], '<') || tt.IsPunct(s[j-1], ',') || tt.IsPunct(s[j-1], '=')) {
				continue
			}
			return j + 1
		case tt.Punct:
			if t.Ch == ';' {
				return j + 1
			}
		}
	}
	return len(s)
}

func newInvocation(s tt.Stream, start, end int, attrs []syntax.Attribute, k int) invocation {
	pos := start
	for _, a := range attrs[:k] {
		pos += len(a.Tokens)
	}
	after := pos + len(attrs[k].Tokens)
	return invocation{
		attr:  attrs[k],
		item:  tt.Concat(s[start:pos], s[after:end]),
		start: s[start].Span().Start,
		end:   s[end-1].Span().End,
	}
}
