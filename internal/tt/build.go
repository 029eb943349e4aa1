package tt

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/lexer"
	"tuplegen/internal/source"
	"tuplegen/internal/token"
)

type frame struct {
	delim Delim
	open  source.Span
	items Stream
}

// Build assembles tokens into trees. Delimiter errors are reported and
// recovered from: a stray closer is dropped, a mismatched closer ends the
// innermost group, an unclosed group is closed at EOF.
func Build(toks []token.Token, r diag.Reporter) Stream {
	stack := []frame{{}}
	top := func() *frame { return &stack[len(stack)-1] }

	for i, tok := range toks {
		switch tok.Kind {
		case token.EOF:
			// ничего

		case token.Invalid:
			// лексер уже сообщил об ошибке

		case token.Ident:
			top().items = append(top().items, Ident{Name: tok.Text, Sp: tok.Span})

		case token.Lifetime:
			top().items = append(top().items, Lifetime{Name: tok.Text, Sp: tok.Span})

		case token.Literal:
			top().items = append(top().items, Literal{Kind: tok.Lit, Text: tok.Text, Sp: tok.Span})

		case token.Punct:
			sp := Alone
			if i+1 < len(toks) && toks[i+1].Kind == token.Punct && toks[i+1].Span.Start == tok.Span.End {
				sp = Joint
			}
			top().items = append(top().items, Punct{Ch: tok.Text[0], Spacing: sp, Sp: tok.Span})

		case token.DocOuter, token.DocInner:
			top().items = append(top().items, docAttribute(tok)...)

		case token.LParen, token.LBrace, token.LBracket:
			stack = append(stack, frame{delim: delimOf(tok.Kind), open: tok.Span})

		case token.RParen, token.RBrace, token.RBracket:
			d := delimOf(tok.Kind)
			if len(stack) == 1 {
				diag.ReportError(r, diag.SynUnexpectedClose, tok.Span,
					"unexpected closing delimiter '"+tok.Text+"'").Emit()
				continue
			}
			f := *top()
			if f.delim != d {
				diag.ReportError(r, diag.SynMismatchedClose, tok.Span,
					"mismatched closing delimiter '"+tok.Text+"'").
					WithNote(f.open, "unclosed delimiter '"+string(f.delim.Open())+"' opened here").
					Emit()
			}
			stack = stack[:len(stack)-1]
			top().items = append(top().items, Group{Delim: f.delim, Stream: f.items, Open: f.open, Close: tok.Span})
		}
	}

	// незакрытые группы закрываем в конце файла
	for len(stack) > 1 {
		f := *top()
		diag.ReportError(r, diag.SynUnclosedDelimiter, f.open,
			"unclosed delimiter '"+string(f.delim.Open())+"'").Emit()
		stack = stack[:len(stack)-1]
		end := f.open.AtEnd()
		if len(f.items) > 0 {
			end = f.items.Span().AtEnd()
		}
		top().items = append(top().items, Group{Delim: f.delim, Stream: f.items, Open: f.open, Close: end})
	}
	return stack[0].items
}

// Lex runs the lexer over f and returns all tokens up to and including EOF.
func Lex(f *source.File, r diag.Reporter) []token.Token {
	lx := lexer.New(f, lexer.Options{Reporter: r})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Parse lexes f and builds its token trees.
func Parse(f *source.File, r diag.Reporter) Stream {
	return Build(Lex(f, r), r)
}

func delimOf(k token.Kind) Delim {
	switch k {
	case token.LBrace, token.RBrace:
		return Brace
	case token.LBracket, token.RBracket:
		return Bracket
	}
	return Paren
}

// docAttribute turns a doc comment into #[doc = "..."] or #![doc = "..."].
func docAttribute(tok token.Token) Stream {
	sp := tok.Span
	out := Stream{Punct{Ch: '#', Sp: sp}}
	if tok.Kind == token.DocInner {
		out[0] = Punct{Ch: '#', Spacing: Joint, Sp: sp}
		out = append(out, Punct{Ch: '!', Sp: sp})
	}
	inner := Stream{
		Ident{Name: "doc", Sp: sp},
		Punct{Ch: '=', Sp: sp},
		Literal{Kind: token.LitStr, Text: QuoteString(tok.Text), Sp: sp},
	}
	return append(out, Group{Delim: Bracket, Stream: inner, Open: sp, Close: sp})
}
