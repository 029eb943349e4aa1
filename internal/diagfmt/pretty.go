package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tuplegen/internal/diag"
	"tuplegen/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgCyan),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	loc := location(d.Primary, fs, opts.PathMode, opts.BaseDir)
	if loc != "" {
		fmt.Fprintf(w, "%s: ", pal.bold.Sprint(loc))
	}
	fmt.Fprintf(w, "%s %s: %s\n",
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.bold.Sprint(d.Code.ID()),
		d.Message)
	snippet(w, d.Primary, fs, opts, pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nloc := location(n.Span, fs, opts.PathMode, opts.BaseDir)
		label := pal.note.Sprint("note")
		if nloc != "" {
			fmt.Fprintf(w, "  %s: %s: %s\n", label, nloc, n.Msg)
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", label, n.Msg)
	}
}

func location(sp source.Span, fs *source.FileSet, mode PathMode, baseDir string) string {
	if fs == nil || !sp.IsValid() {
		return ""
	}
	f := fs.Get(sp.File)
	if f == nil {
		return ""
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f.Path, mode, baseDir), start.Line, start.Col)
}

// snippet prints the primary line with a caret run under the span, plus
// opts.Context lines around it.
func snippet(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts, pal palette) {
	if fs == nil || !sp.IsValid() || opts.Context < 0 {
		return
	}
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	first := start.Line
	if ctx := uint32(opts.Context); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + uint32(opts.Context)
	if total := uint32(len(f.LineIdx)) + 1; last > total {
		last = total
	}
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "...")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}
		caretEnd := end.Col
		if end.Line != start.Line {
			caretEnd = uint32(len(f.GetLine(ln))) + 1
		}
		fmt.Fprintf(w, "%s %s\n",
			pal.gutter.Sprintf("%*s |", gutterWidth, ""),
			pal.caret.Sprint(underline(text, start.Col, caretEnd)))
	}
}

// underline builds the marker line for bytes [fromCol, toCol) of line,
// keeping tabs and wide runes aligned with the text above.
func underline(line string, fromCol, toCol uint32) string {
	from := int(fromCol) - 1
	from = min(max(from, 0), len(line))
	to := min(max(int(toCol)-1, from), len(line))

	var b strings.Builder
	for _, r := range line[:from] {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := runewidth.StringWidth(line[from:to])
	b.WriteByte('^')
	if width > 1 {
		b.WriteString(strings.Repeat("~", width-1))
	}
	return b.String()
}
