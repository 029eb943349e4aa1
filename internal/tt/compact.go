package tt

import "strings"

// Compact renders s on one line the way proc-macro streams are displayed:
// trees separated by single spaces, joint punctuation glued together,
// brace groups padded, other groups tight.
func Compact(s Stream) string {
	var b strings.Builder
	writeCompact(&b, s)
	return b.String()
}

func writeCompact(b *strings.Builder, s Stream) {
	for i, t := range s {
		if i > 0 {
			if p, ok := s[i-1].(Punct); !ok || p.Spacing != Joint {
				b.WriteByte(' ')
			}
		}
		WriteTree(b, t)
	}
}

// WriteTree writes the compact form of a single tree.
func WriteTree(b *strings.Builder, t Tree) {
	switch t := t.(type) {
	case Ident:
		b.WriteString(t.Name)
	case Punct:
		b.WriteByte(t.Ch)
	case Literal:
		b.WriteString(t.Text)
	case Lifetime:
		b.WriteString(t.Name)
	case Group:
		b.WriteByte(t.Delim.Open())
		if t.Delim == Brace && len(t.Stream) > 0 {
			b.WriteByte(' ')
			writeCompact(b, t.Stream)
			b.WriteByte(' ')
		} else {
			writeCompact(b, t.Stream)
		}
		b.WriteByte(t.Delim.Close())
	}
}

// String renders a stream the same way as Compact.
func (s Stream) String() string { return Compact(s) }
