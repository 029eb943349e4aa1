package lexer

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/token"
)

// scanNumber scans integer and float literals including their type suffix.
// `1..2` keeps the range operator, `1.foo()` leaves the method call alone,
// and `t.0.1` stays two tuple indices.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor
	kind := token.LitInt

	if c.Peek() == '0' && (c.PeekAt(1) == 'x' || c.PeekAt(1) == 'o' || c.PeekAt(1) == 'b') {
		radix := c.PeekAt(1)
		c.BumpN(2)
		digits := 0
		for {
			b := c.Peek()
			if b == '_' {
				c.Bump()
				continue
			}
			if !digitOfRadix(b, radix) {
				break
			}
			c.Bump()
			digits++
		}
		if digits == 0 {
			sp := c.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "missing digits after integer base prefix")
		}
		lx.eatNumberSuffix()
		sp := c.SpanFrom(start)
		return token.Token{Kind: token.Literal, Lit: kind, Span: sp, Text: lx.text(sp)}
	}

	lx.eatDecDigits()
	afterDot := start > 0 && lx.file.Content[start-1] == '.'

	// дробная часть: точка, за которой не идёт вторая точка и не начинается идентификатор
	if !afterDot && c.Peek() == '.' && c.PeekAt(1) != '.' && !isIdentStartByte(c.PeekAt(1)) && c.PeekAt(1) < utf8RuneSelf {
		c.Bump()
		kind = token.LitFloat
		if isDec(c.Peek()) {
			lx.eatDecDigits()
		}
	}

	if b := c.Peek(); b == 'e' || b == 'E' {
		save := c.Mark()
		c.Bump()
		if c.Peek() == '+' || c.Peek() == '-' {
			c.Bump()
		}
		for c.Peek() == '_' {
			c.Bump()
		}
		if isDec(c.Peek()) {
			lx.eatDecDigits()
			kind = token.LitFloat
		} else {
			// это суффикс, а не экспонента
			c.Reset(save)
		}
	}

	lx.eatNumberSuffix()
	sp := c.SpanFrom(start)
	text := lx.text(sp)
	if kind == token.LitInt && hasFloatSuffix(text) {
		kind = token.LitFloat
	}
	return token.Token{Kind: token.Literal, Lit: kind, Span: sp, Text: text}
}

func (lx *Lexer) eatDecDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eatNumberSuffix() {
	if isIdentStartByte(lx.cursor.Peek()) {
		lx.eatIdentTail()
	}
}

func digitOfRadix(b, radix byte) bool {
	switch radix {
	case 'x':
		return isHex(b)
	case 'o':
		return b >= '0' && b <= '7'
	case 'b':
		return b == '0' || b == '1'
	}
	return isDec(b)
}

func hasFloatSuffix(text string) bool {
	n := len(text)
	return n > 3 && (text[n-3:] == "f32" || text[n-3:] == "f64")
}
