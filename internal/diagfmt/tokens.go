package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"tuplegen/internal/source"
	"tuplegen/internal/token"
	"tuplegen/internal/tt"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Lit     string      `json:"lit,omitempty"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

func leadingKinds(tok token.Token) []string {
	var leading []string
	for _, trivia := range tok.Leading {
		leading = append(leading, trivia.Kind.String())
	}
	return leading
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		kind := tok.Kind.String()
		if tok.Kind == token.Literal {
			kind += "(" + tok.Lit.String() + ")"
		}
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, kind); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := leadingKinds(tok); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: leadingKinds(tok),
		}
		if tok.Kind == token.Literal {
			out.Lit = tok.Lit.String()
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// FormatTrees печатает дерево токенов с отступами, по одному узлу на строку.
func FormatTrees(w io.Writer, s tt.Stream, fs *source.FileSet) error {
	var b strings.Builder
	writeTrees(&b, s, fs, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTrees(b *strings.Builder, s tt.Stream, fs *source.FileSet, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, t := range s {
		pos := treePos(t.Span(), fs)
		switch t := t.(type) {
		case tt.Group:
			fmt.Fprintf(b, "%sGroup %s%s\n", pad, t.Delim, pos)
			writeTrees(b, t.Stream, fs, depth+1)
		case tt.Ident:
			fmt.Fprintf(b, "%sIdent %s%s\n", pad, t.Name, pos)
		case tt.Punct:
			spacing := "alone"
			if t.Spacing == tt.Joint {
				spacing = "joint"
			}
			fmt.Fprintf(b, "%sPunct %c %s%s\n", pad, t.Ch, spacing, pos)
		case tt.Literal:
			fmt.Fprintf(b, "%sLiteral %s %s%s\n", pad, t.Kind, t.Text, pos)
		case tt.Lifetime:
			fmt.Fprintf(b, "%sLifetime %s%s\n", pad, t.Name, pos)
		}
	}
}

func treePos(sp source.Span, fs *source.FileSet) string {
	if fs == nil || !sp.IsValid() {
		return ""
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf(" at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
