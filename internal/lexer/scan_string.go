package lexer

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/token"
)

// scanString scans "..." and its b"..." / c"..." variants; prefix is the prefix length.
func (lx *Lexer) scanString(prefix uint32, kind token.LitKind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(prefix + 1)

	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			// экранированный символ пропускаем целиком
			if !lx.cursor.EOF() {
				lx.bumpRune()
			}
			continue
		}
		if b == '"' {
			closed = true
			break
		}
	}
	if !closed {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.eatNumberSuffix()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Literal, Lit: kind, Span: sp, Text: lx.text(sp)}
}

// rawStringAhead reports whether #...#" follows at offset off.
func (lx *Lexer) rawStringAhead(off uint32) bool {
	n := off
	for lx.cursor.PeekAt(n) == '#' {
		n++
	}
	return n > off && lx.cursor.PeekAt(n) == '"'
}

// scanRawString scans r#"..."# style literals; prefix counts the letters before the hashes.
func (lx *Lexer) scanRawString(prefix uint32, kind token.LitKind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(prefix)
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	if !lx.cursor.Eat('"') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadRawString, sp, "expected '\"' in raw string literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			lx.eatNumberSuffix()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Literal, Lit: kind, Span: sp, Text: lx.text(sp)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanLifetimeOrChar разбирает 'a (лайфтайм / метку) и 'x' (символ).
func (lx *Lexer) scanLifetimeOrChar() token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor

	if c.PeekAt(1) == '\\' {
		return lx.scanChar(0, token.LitChar)
	}

	c.Bump()
	r, _ := lx.peekRune()
	lx.bumpRune()
	if c.Peek() == '\'' {
		c.Bump()
		lx.eatNumberSuffix()
		sp := c.SpanFrom(start)
		return token.Token{Kind: token.Literal, Lit: token.LitChar, Span: sp, Text: lx.text(sp)}
	}
	if isIdentStartRune(r) || (r == 'r' && c.Peek() == '#') {
		if r == 'r' && c.Peek() == '#' {
			c.Bump()
		}
		lx.eatIdentTail()
		sp := c.SpanFrom(start)
		return token.Token{Kind: token.Lifetime, Span: sp, Text: normalizeIdent(lx.text(sp))}
	}

	sp := c.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanChar scans 'x' or b'x' with escapes.
func (lx *Lexer) scanChar(prefix uint32, kind token.LitKind) token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor
	c.BumpN(prefix + 1)

	for !c.EOF() && c.Peek() != '\n' {
		b := c.Peek()
		if b == '\\' {
			c.Bump()
			lx.bumpRune()
			continue
		}
		if b == '\'' {
			c.Bump()
			lx.eatNumberSuffix()
			sp := c.SpanFrom(start)
			return token.Token{Kind: token.Literal, Lit: kind, Span: sp, Text: lx.text(sp)}
		}
		lx.bumpRune()
	}
	sp := c.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
