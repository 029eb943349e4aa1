package syntax

import "tuplegen/internal/tt"

// angleStep returns the change of generic-angle depth caused by s[i].
// `->` and `=>` are not closing angles.
func angleStep(s tt.Stream, i int) int {
	p, ok := s[i].(tt.Punct)
	if !ok {
		return 0
	}
	switch p.Ch {
	case '<':
		return 1
	case '>':
		if i > 0 {
			if prev, ok := s[i-1].(tt.Punct); ok && prev.Spacing == tt.Joint && (prev.Ch == '-' || prev.Ch == '=') {
				return 0
			}
		}
		return -1
	}
	return 0
}

// SplitTopLevel splits s on the punctuation sep at angle depth zero.
// Empty segments (e.g. after a trailing separator) are dropped.
func SplitTopLevel(s tt.Stream, sep byte) []tt.Stream {
	var out []tt.Stream
	depth, start := 0, 0
	for i := range s {
		depth += angleStep(s, i)
		if depth < 0 {
			depth = 0
		}
		if depth == 0 && tt.IsPunct(s[i], sep) && !partOfPathSep(s, i) {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// partOfPathSep reports whether the ':' at s[i] belongs to a `::`.
func partOfPathSep(s tt.Stream, i int) bool {
	if !tt.IsPunct(s[i], ':') {
		return false
	}
	return tt.HasPuncts(s, i, "::") || (i > 0 && tt.HasPuncts(s, i-1, "::"))
}

// indexTopLevel returns the index of the first tree at angle depth zero for
// which match returns true, or -1.
func indexTopLevel(s tt.Stream, match func(s tt.Stream, i int) bool) int {
	depth := 0
	for i := range s {
		if depth == 0 && match(s, i) {
			return i
		}
		depth += angleStep(s, i)
		if depth < 0 {
			depth = 0
		}
	}
	return -1
}

// JoinComma joins parts with `,`, optionally with a trailing comma.
func JoinComma(parts []tt.Stream, trailing bool) tt.Stream {
	var out tt.Stream
	for i, p := range parts {
		if i > 0 {
			out = append(out, tt.NewPunct(','))
		}
		out = append(out, p...)
	}
	if trailing && len(parts) > 0 {
		out = append(out, tt.NewPunct(','))
	}
	return out
}
