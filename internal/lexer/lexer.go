package lexer

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // одноэлементный буфер
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token with its leading trivia.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	tok := lx.scanToken()
	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	next := lx.cursor.PeekAt(1)

	switch {
	case ch == '/' && lx.atDocComment():
		return lx.scanDocComment()

	case ch == 'r' && next == '#' && isIdentStartByte(lx.cursor.PeekAt(2)):
		return lx.scanRawIdent()

	case ch == 'r' && (next == '"' || (next == '#' && lx.rawStringAhead(1))):
		return lx.scanRawString(1, token.LitRawStr)

	case ch == 'b' && next == '\'':
		return lx.scanChar(1, token.LitByte)

	case ch == 'b' && next == '"':
		return lx.scanString(1, token.LitByteStr)

	case ch == 'b' && next == 'r' && (lx.cursor.PeekAt(2) == '"' || lx.rawStringAhead(2)):
		return lx.scanRawString(2, token.LitRawByteStr)

	case ch == 'c' && next == '"':
		return lx.scanString(1, token.LitCStr)

	case ch == 'c' && next == 'r' && (lx.cursor.PeekAt(2) == '"' || lx.rawStringAhead(2)):
		return lx.scanRawString(2, token.LitCStr)

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdent()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '\'':
		return lx.scanLifetimeOrChar()

	case ch == '"':
		return lx.scanString(0, token.LitStr)

	default:
		return lx.scanPunct()
	}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	var kind token.Kind
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	default:
		if IsPunctByte(ch) {
			kind = token.Punct
		}
	}

	if kind == token.Invalid {
		// неизвестный символ: съедаем руну целиком
		lx.cursor.Reset(start)
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteText(lx.text(sp)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
