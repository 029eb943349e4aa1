package tt

// IdentContext describes the neighbourhood of an identifier being folded.
type IdentContext struct {
	AfterDot      bool // field or method name: `x.id`
	AfterPathSep  bool // `a::id`
	BeforePathSep bool // `id::a`
}

// Folder drives Fold. FoldIdent sees every identifier that is not taken by
// FoldMethodReceiver; FoldMethodReceiver sees identifiers heading a method
// call (`id.method(..)` or `id.method::<..>(..)`) and may decline.
type Folder interface {
	FoldIdent(id Ident, ctx IdentContext) Stream
	FoldMethodReceiver(recv Ident) (Stream, bool)
}

// StreamFolder lets a Folder take over whole runs of trees. FoldAt returns the
// replacement for s[i:i+n] and n; n == 0 means not handled.
type StreamFolder interface {
	FoldAt(s Stream, i int) (Stream, int)
}

// Fold rewrites s through f, recursing into groups. s is not modified.
func Fold(s Stream, f Folder) Stream {
	sf, _ := f.(StreamFolder)
	out := make(Stream, 0, len(s))
	for i := 0; i < len(s); {
		if sf != nil {
			if repl, n := sf.FoldAt(s, i); n > 0 {
				out = append(out, repl...)
				i += n
				continue
			}
		}

		switch t := s[i].(type) {
		case Ident:
			if IsMethodReceiver(s, i) {
				if repl, ok := f.FoldMethodReceiver(t); ok {
					out = append(out, repl...)
					i++
					continue
				}
			}
			out = append(out, f.FoldIdent(t, identContext(s, i))...)
		case Group:
			out = append(out, Group{Delim: t.Delim, Stream: Fold(t.Stream, f), Open: t.Open, Close: t.Close})
		default:
			out = append(out, t)
		}
		i++
	}
	return out
}

func identContext(s Stream, i int) IdentContext {
	return IdentContext{
		AfterDot:      afterMemberDot(s, i),
		AfterPathSep:  i >= 2 && HasPuncts(s, i-2, "::"),
		BeforePathSep: HasPuncts(s, i+1, "::"),
	}
}

// afterMemberDot reports whether s[i] follows a member-access `.` (not `..`).
func afterMemberDot(s Stream, i int) bool {
	if i < 1 || !IsPunct(s[i-1], '.') {
		return false
	}
	return i < 2 || !IsPunct(s[i-2], '.') || s[i-2].(Punct).Spacing != Joint
}

// IsMethodReceiver reports whether the identifier at s[i] is the receiver of
// a method call: not itself a path segment or member, followed by a lone `.`,
// a method name and either call parentheses or a turbofish.
func IsMethodReceiver(s Stream, i int) bool {
	if afterMemberDot(s, i) || (i >= 2 && HasPuncts(s, i-2, "::")) {
		return false
	}
	if i+2 >= len(s) {
		return false
	}
	dot, ok := s[i+1].(Punct)
	if !ok || dot.Ch != '.' || dot.Spacing == Joint {
		return false
	}
	if _, ok := s[i+2].(Ident); !ok {
		return false
	}
	if i+3 < len(s) && IsGroup(s[i+3], Paren) {
		return true
	}
	return HasPuncts(s, i+3, "::") && i+5 < len(s) && IsPunct(s[i+5], '<')
}
