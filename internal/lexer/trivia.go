package lexer

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/token"
)

// collectLeadingTrivia складывает пробелы, переводы строк и обычные комментарии в lx.hold.
// Doc-комментарии не трогаем: это значимые токены.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			for {
				c := lx.cursor.Peek()
				if c != ' ' && c != '\t' && c != '\r' && c != '\f' && c != '\v' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)

		case b == '\n':
			lx.cursor.Bump()
			lx.pushTrivia(token.TriviaNewline, start)

		case b == '/' && lx.cursor.PeekAt(1) == '/' && !lx.atDocComment():
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaLineComment, start)

		case b == '/' && lx.cursor.PeekAt(1) == '*' && !lx.atDocComment():
			lx.skipBlockComment(start)
			lx.pushTrivia(token.TriviaBlockComment, start)

		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// skipBlockComment съедает /* ... */ с учётом вложенности.
func (lx *Lexer) skipBlockComment(start Mark) {
	lx.cursor.BumpN(2)
	depth := 1
	for !lx.cursor.EOF() {
		switch {
		case lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '*':
			lx.cursor.BumpN(2)
			depth++
		case lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/':
			lx.cursor.BumpN(2)
			depth--
			if depth == 0 {
				return
			}
		default:
			lx.cursor.Bump()
		}
	}
	lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
}

// atDocComment reports whether the cursor is at ///, //!, /** or /*!.
// //// and /*** are plain comments, /**/ is an empty plain comment.
func (lx *Lexer) atDocComment() bool {
	c := &lx.cursor
	if c.Peek() != '/' {
		return false
	}
	switch c.PeekAt(1) {
	case '/':
		third := c.PeekAt(2)
		return third == '!' || (third == '/' && c.PeekAt(3) != '/')
	case '*':
		third := c.PeekAt(2)
		if third == '!' {
			return true
		}
		return third == '*' && c.PeekAt(3) != '*' && c.PeekAt(3) != '/'
	}
	return false
}

// scanDocComment turns a doc comment into a DocOuter/DocInner token.
// Text holds the comment body without the comment markers.
func (lx *Lexer) scanDocComment() token.Token {
	start := lx.cursor.Mark()
	kind := token.DocOuter
	if lx.cursor.PeekAt(2) == '!' {
		kind = token.DocInner
	}

	var body source.Span
	if lx.cursor.PeekAt(1) == '/' {
		lx.cursor.BumpN(3)
		bodyStart := lx.cursor.Mark()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		body = lx.cursor.SpanFrom(bodyStart)
		// \r перед \n не часть текста
		if body.End > body.Start && lx.file.Content[body.End-1] == '\r' {
			body.End--
		}
	} else {
		lx.skipBlockComment(start)
		sp := lx.cursor.SpanFrom(start)
		body = sp
		body.Start += 3
		if sp.Len() >= 5 && lx.file.Content[sp.End-2] == '*' && lx.file.Content[sp.End-1] == '/' {
			body.End -= 2
		}
		if body.End < body.Start {
			body.End = body.Start
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(body)}
}
