package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tuplegen/internal/tt"
)

type unitKind uint8

const (
	uNone unitKind = iota
	uWord
	uLit
	uLifetime
	uOp
	uGroup
)

type opRole uint8

const (
	roleBinary opRole = iota
	roleUnary
	roleBang
	roleGenOpen
	roleGenClose
	roleClosureOpen
	roleClosureClose
)

// unit is one printed token: a word, a literal, an operator or a whole group.
type unit struct {
	kind  unitKind
	text  string
	delim tt.Delim
	role  opRole
}

// compoundOps is ordered so that longer operators match first.
var compoundOps = []string{
	"..=", "...", "<<=", ">>=",
	"::", "->", "=>", "..", "==", "!=", "<=", ">=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=", "<<", ">>",
}

// spacedKeywords are followed by a space before `(` and `::`.
var spacedKeywords = map[string]bool{
	"as": true, "async": true, "break": true, "const": true, "continue": true,
	"dyn": true, "else": true, "enum": true, "extern": true, "for": true,
	"if": true, "impl": true, "in": true, "let": true, "loop": true,
	"match": true, "mod": true, "move": true, "mut": true, "pub": true,
	"ref": true, "return": true, "static": true, "struct": true, "trait": true,
	"type": true, "union": true, "unsafe": true, "use": true, "where": true,
	"while": true, "yield": true,
}

// declKeywords introduce a name that may carry generic parameters.
var declKeywords = map[string]bool{
	"fn": true, "struct": true, "enum": true, "trait": true, "type": true, "union": true,
}

// splitOp reads the operator starting at s[i]. Joint runs are split into
// known operators; inside generic arguments every `>` stands alone.
func splitOp(s tt.Stream, i int, inGeneric bool) (string, int) {
	first, ok := s[i].(tt.Punct)
	if !ok {
		return "", 0
	}
	if inGeneric && first.Ch == '>' {
		return ">", 1
	}
	run := []byte{first.Ch}
	for j := i; j+1 < len(s); j++ {
		cur, ok := s[j].(tt.Punct)
		if !ok || cur.Spacing != tt.Joint {
			break
		}
		next, ok := s[j+1].(tt.Punct)
		if !ok {
			break
		}
		run = append(run, next.Ch)
	}
	text := string(run)
	for _, op := range compoundOps {
		if strings.HasPrefix(text, op) {
			return op, len(op)
		}
	}
	return text[:1], 1
}

func isPlainWord(u unit) bool {
	return u.kind == uWord && !spacedKeywords[u.text]
}

func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(strings.TrimPrefix(name, "r#"))
	return unicode.IsUpper(r)
}

// unaryPos reports whether an operator after prev starts an operand.
func unaryPos(prev unit) bool {
	switch prev.kind {
	case uNone:
		return true
	case uOp:
		return prev.role != roleGenClose
	case uWord:
		return spacedKeywords[prev.text]
	case uGroup:
		return prev.delim == tt.Brace
	}
	return false
}

// opensGeneric decides whether `<` after prev, prevPrev starts generic arguments.
func opensGeneric(prev, prevPrev unit) bool {
	if prev.kind == uOp && prev.text == "::" {
		return true
	}
	if unaryPos(prev) {
		return true
	}
	if !isPlainWord(prev) {
		return false
	}
	return startsUpper(prev.text) || (prevPrev.kind == uWord && declKeywords[prevPrev.text])
}

// pathTight reports whether `::` is glued to prev.
func pathTight(prev unit) bool {
	switch prev.kind {
	case uWord:
		return !spacedKeywords[prev.text]
	case uGroup:
		return true
	case uOp:
		return prev.role == roleGenClose
	}
	return false
}

// needSpace decides whether a space separates prev from cur.
func needSpace(prev, cur unit) bool {
	if prev.kind == uNone {
		return false
	}
	if prev.kind == uOp {
		switch prev.role {
		case roleUnary, roleGenOpen, roleClosureOpen:
			return false
		}
		switch prev.text {
		case "::", ".", "..", "..=", "#", "$":
			return false
		}
	}

	switch cur.kind {
	case uOp:
		switch cur.text {
		case ",", ";", ":", ".":
			return false
		case "::":
			return !pathTight(prev)
		case "..", "..=":
			return prev.kind == uOp && prev.role != roleGenClose
		case "?":
			if cur.role != roleUnary {
				return false
			}
		}
		switch cur.role {
		case roleGenOpen:
			return !isPlainWord(prev) && !(prev.kind == uWord && (prev.text == "impl" || prev.text == "for"))
		case roleGenClose, roleBang, roleClosureClose:
			return false
		}
		return true
	case uGroup:
		if cur.delim == tt.Brace {
			return !(prev.kind == uOp && prev.text == "::")
		}
		switch prev.kind {
		case uWord:
			return spacedKeywords[prev.text] && prev.text != "pub"
		case uOp:
			return prev.role != roleBang && prev.role != roleGenClose
		case uGroup:
			return prev.delim == tt.Brace
		}
		return true
	}
	return true
}
