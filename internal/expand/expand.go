// Package expand is the entry point of tuple implementation generation: it
// parses the attribute argument, decides between the full- and
// semi-automatic generators and turns failures into compile errors.
package expand

import (
	"fmt"

	"tuplegen/internal/diag"
	"tuplegen/internal/fullauto"
	"tuplegen/internal/semiauto"
	"tuplegen/internal/source"
	"tuplegen/internal/syntax"
	"tuplegen/internal/tt"
)

type Mode uint8

const (
	ModeFull Mode = iota
	ModeSemi
)

func (m Mode) String() string {
	if m == ModeSemi {
		return "semi-automatic"
	}
	return "full-automatic"
}

// Config controls generation.
type Config struct {
	Marker         string
	ElementPrefix  string
	SuppressUnused bool
	MaxArity       int // 0 means unlimited
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Marker:         "for_tuples",
		ElementPrefix:  "TupleElement",
		SuppressUnused: true,
		MaxArity:       128,
	}
}

// Result is a successful expansion.
type Result struct {
	Mode  Mode
	Arity int
	// Retained is the part of the input that stays in the output: the trait
	// definition in full-automatic mode, nothing in semi-automatic mode.
	Retained  tt.Stream
	Generated tt.Stream
}

// Tokens returns the complete replacement for the decorated item.
func (res *Result) Tokens() tt.Stream {
	return tt.Concat(res.Retained, res.Generated)
}

// Expand runs generation for one decorated item. args is the content of the
// attribute's parentheses and argsSpan its location; item is the decorated
// item without the triggering attribute.
func Expand(args tt.Stream, argsSpan source.Span, item tt.Stream, cfg Config, r diag.Reporter) (*Result, bool) {
	n, ok := ParseArity(args, argsSpan, cfg.MaxArity, r)
	if !ok {
		return nil, false
	}

	mode, ok := dispatch(item, r)
	if !ok {
		return nil, false
	}
	elems := ElementIdents(cfg.ElementPrefix, n)
	res := &Result{Mode: mode, Arity: n}

	switch mode {
	case ModeFull:
		def, ok := syntax.ParseTrait(item, r)
		if !ok {
			return nil, false
		}
		out, ok := fullauto.Generate(def, elems, fullauto.Options{SuppressUnused: cfg.SuppressUnused}, r)
		if !ok {
			return nil, false
		}
		res.Retained, res.Generated = item, out

	case ModeSemi:
		im, ok := syntax.ParseImpl(item, r)
		if !ok {
			return nil, false
		}
		out, ok := semiauto.Generate(im, elems, semiauto.Options{Marker: cfg.Marker, SuppressUnused: cfg.SuppressUnused}, r)
		if !ok {
			return nil, false
		}
		res.Generated = out
	}
	return res, true
}

// dispatch looks past attributes, visibility and item qualifiers for
// `trait` or `impl`.
func dispatch(item tt.Stream, r diag.Reporter) (Mode, bool) {
	c := tt.NewCursor(item, source.NoSpan)
	syntax.ParseAttrs(c, false, diag.NopReporter{})
	syntax.ParseVisibility(c)
	for c.EatIdent("unsafe") || c.EatIdent("auto") || c.EatIdent("default") {
	}
	switch {
	case c.IsIdent("trait"):
		return ModeFull, true
	case c.IsIdent("impl"):
		return ModeSemi, true
	}
	sp := c.Span()
	if t := c.Peek(); t == nil && len(item) > 0 {
		sp = item.Span()
	}
	diag.ReportError(r, diag.GenMalformedBody, sp,
		"expected a trait definition (full-automatic) or a trait implementation (semi-automatic)").Emit()
	return 0, false
}

// ElementIdents returns prefix0 ... prefix{n-1}.
func ElementIdents(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}
