package lexer

import (
	"golang.org/x/text/unicode/norm"

	"tuplegen/internal/diag"
	"tuplegen/internal/token"
)

func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteText(lx.text(sp)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.eatIdentTail()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: normalizeIdent(lx.text(sp))}
}

// scanRawIdent handles r#ident; the r# prefix stays in the text.
func (lx *Lexer) scanRawIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	lx.eatIdentTail()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: normalizeIdent(lx.text(sp))}
}

func (lx *Lexer) eatIdentTail() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			return
		}
		lx.bumpRune()
	}
}

// normalizeIdent приводит не-ASCII идентификаторы к NFC.
func normalizeIdent(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8RuneSelf {
			return norm.NFC.String(s)
		}
	}
	return s
}
