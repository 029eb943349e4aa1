package token

import "strings"

var keywords = map[string]struct{}{
	"as": {}, "async": {}, "await": {}, "break": {}, "const": {}, "continue": {},
	"crate": {}, "dyn": {}, "else": {}, "enum": {}, "extern": {}, "false": {},
	"fn": {}, "for": {}, "if": {}, "impl": {}, "in": {}, "let": {}, "loop": {},
	"match": {}, "mod": {}, "move": {}, "mut": {}, "pub": {}, "ref": {},
	"return": {}, "self": {}, "Self": {}, "static": {}, "struct": {}, "super": {},
	"trait": {}, "true": {}, "type": {}, "unsafe": {}, "use": {}, "where": {},
	"while": {},
	// зарезервированные
	"abstract": {}, "become": {}, "box": {}, "do": {}, "final": {}, "macro": {},
	"override": {}, "priv": {}, "typeof": {}, "unsized": {}, "virtual": {},
	"yield": {}, "try": {},
}

// IsKeyword reports whether ident is a strict or reserved Rust keyword.
// Raw identifiers (r#type) are never keywords.
func IsKeyword(ident string) bool {
	if strings.HasPrefix(ident, "r#") {
		return false
	}
	_, ok := keywords[ident]
	return ok
}

// IsPathKeyword reports whether ident may start or appear inside a path
// (self, Self, super, crate).
func IsPathKeyword(ident string) bool {
	switch ident {
	case "self", "Self", "super", "crate":
		return true
	}
	return false
}
