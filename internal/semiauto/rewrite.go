package semiauto

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/generics"
	"tuplegen/internal/syntax"
	"tuplegen/internal/tt"
)

type Options struct {
	Marker         string // name of the repetition macro, `for_tuples` by default
	SuppressUnused bool   // attach #[allow(unused)] to every impl
}

// Generate expands the template im into one implementation per arity in
// [0, len(elems)] except 1.
func Generate(im *syntax.ItemImpl, elems []string, opts Options, r diag.Reporter) (tt.Stream, bool) {
	if opts.Marker == "" {
		opts.Marker = "for_tuples"
	}

	placeholder, okSelf := im.SelfIdent()
	if !okSelf {
		diag.ReportError(r, diag.GenMissingSelfPlaceholder, im.SelfTy.Span(),
			"expected an identifier as tuple placeholder in the self type").
			WithNote(im.ImplKw.Sp, "the self type of the implementation names the placeholder, e.g. `impl Trait for Tuple`").
			Emit()
	}
	if len(im.Trait) == 0 {
		diag.ReportError(r, diag.GenMissingTraitReference, im.HeaderSpan(),
			"the semi-automatic implementation is required to implement a trait").Emit()
	}
	if !okSelf || len(im.Trait) == 0 {
		return nil, false
	}

	var out tt.Stream
	all := diag.NewBag(0)
	for k := 0; k <= len(elems); k++ {
		if k == 1 {
			continue
		}
		bag := diag.NewBag(0)
		p := &pass{
			placeholder: placeholder.Name,
			elems:       elems[:k],
			opts:        opts,
			r:           diag.BagReporter{Bag: bag},
		}
		impl := p.implementation(im)
		if bag.HasErrors() {
			bag.Collapse()
			all.Merge(bag)
			continue
		}
		out = append(out, impl...)
	}

	if all.Len() > 0 {
		all.Dedup()
		for _, d := range all.Items() {
			diag.Emit(r, d)
		}
		return nil, false
	}
	return out, true
}

// pass holds the state of one arity.
type pass struct {
	placeholder string
	elems       []string
	opts        Options
	r           diag.Reporter
	where       []tt.Stream // predicates from `where` markers
}

func (p *pass) implementation(im *syntax.ItemImpl) tt.Stream {
	outer := &outerFolder{pass: p}

	var body tt.Stream
	for i := range im.Items {
		body = append(body, p.item(&im.Items[i], outer)...)
	}

	trait := tt.Fold(im.Trait, outer)
	bound := trait
	if len(bound) > 0 && tt.IsPunct(bound[0], '!') {
		bound = bound[1:]
	}

	g := im.Generics.Clone()
	for i, pred := range g.Where {
		g.Where[i] = tt.Fold(pred, outer)
	}
	g.Where = append(g.Where, p.where...)
	g = generics.AddTupleElements(g, p.elems, bound)

	attrs := syntax.AttrTokens(im.Attrs)
	if p.opts.SuppressUnused {
		attrs = append(attrs.Clone(), syntax.AllowUnused().Tokens...)
	}

	return syntax.ImplBlock{
		Attrs:    attrs,
		Unsafe:   im.Unsafe,
		Default:  im.Default,
		Generics: g,
		Trait:    trait,
		SelfTy:   p.tupleType(),
		Body:     body,
	}.Tokens()
}

// item rewrites one associated item of the template.
func (p *pass) item(it *syntax.AssocItem, outer *outerFolder) tt.Stream {
	switch it.Kind {
	case syntax.MacroItem:
		if !it.Macro.NameIs(p.opts.Marker) {
			break
		}
		m, ok := ParseMarker(p.opts.Marker, it.Macro.Args, p.r)
		if !ok {
			return nil
		}
		if m.Placement == WhereClause {
			p.where = append(p.where, p.predicates(m.Rep)...)
			return nil
		}
		return p.expand(m, false)

	case syntax.MethodItem:
		if it.Body == nil {
			break
		}
		head := it.Tokens[:len(it.Tokens)-1]
		inner := &outerFolder{pass: p, useSelf: it.Sig.HasReceiver()}
		body := tt.Group{Delim: tt.Brace, Stream: tt.Fold(it.Body.Stream, inner), Open: it.Body.Open, Close: it.Body.Close}
		return append(tt.Fold(head, outer), body)
	}
	return tt.Fold(it.Tokens, outer)
}

// expand renders a marker for this pass.
func (p *pass) expand(m *Marker, useSelf bool) tt.Stream {
	rep := tt.Concat(p.copies(m.Rep, useSelf)...)
	switch m.Placement {
	case AssocType:
		return tt.Stream{
			m.TypeKw, m.TypeName, tt.NewPunct('='),
			tt.NewGroup(tt.Paren, rep),
			tt.NewPunct(';'),
		}
	case Parenthesized:
		return tt.Stream{tt.NewGroup(tt.Paren, rep)}
	}
	return rep
}

// copies folds the repetition body once per position. With the comma form
// every copy is followed by `,`.
func (p *pass) copies(rep Repetition, useSelf bool) []tt.Stream {
	out := make([]tt.Stream, 0, len(p.elems))
	for i, e := range p.elems {
		f := &replaceFolder{search: p.placeholder, replace: e, index: i, useSelf: useSelf}
		c := tt.Fold(rep.Body, f)
		if rep.Comma {
			c = append(c, tt.NewPunct(','))
		}
		out = append(out, c)
	}
	return out
}

// predicates folds a `where` repetition into one predicate per position.
// The where clause adds its own separators, so the comma form and a
// trailing `,` in the body are dropped.
func (p *pass) predicates(rep Repetition) []tt.Stream {
	rep.Comma = false
	out := p.copies(rep, false)
	for i, c := range out {
		if n := len(c); n > 0 && tt.IsPunct(c[n-1], ',') {
			out[i] = c[:n-1]
		}
	}
	return out
}

// tupleType is `(T0, T1, ...)` for this pass.
func (p *pass) tupleType() tt.Stream {
	return syntax.TupleType(syntax.IdentStreams(p.elems))
}

// outerFolder rewrites template code outside repetitions: markers are
// expanded and the placeholder becomes the tuple type.
type outerFolder struct {
	pass    *pass
	useSelf bool
}

func (f *outerFolder) FoldAt(s tt.Stream, i int) (tt.Stream, int) {
	name := f.pass.opts.Marker
	if !isMarkerAt(s, i, name) {
		return nil, 0
	}
	args := s[i+2].(tt.Group)
	n := 3
	m, ok := ParseMarker(name, args, f.pass.r)
	if !ok {
		return nil, n
	}
	if m.Placement == WhereClause {
		diag.ReportError(f.pass.r, diag.GenRepetitionSyntax, s[i].Span().Cover(args.Close),
			"the `where` form is only allowed at item level of the implementation").Emit()
		return nil, n
	}
	// statement- и item-формы поглощают следующий `;`
	if m.Placement != Parenthesized && i+n < len(s) && tt.IsPunct(s[i+n], ';') {
		n++
	}
	return f.pass.expand(m, f.useSelf), n
}

func (f *outerFolder) FoldIdent(id tt.Ident, ctx tt.IdentContext) tt.Stream {
	if id.Name != f.pass.placeholder || ctx.AfterDot {
		return tt.Stream{id}
	}
	ty := f.pass.tupleType()
	if ctx.BeforePathSep {
		return tt.Concat(tt.Stream{tt.NewPunct('<')}, ty, tt.Stream{tt.NewPunct('>')})
	}
	return ty
}

func (f *outerFolder) FoldMethodReceiver(tt.Ident) (tt.Stream, bool) {
	return nil, false
}

// replaceFolder is the expansion context of one tuple position.
type replaceFolder struct {
	search  string
	replace string
	index   int
	useSelf bool
}

func (f *replaceFolder) FoldIdent(id tt.Ident, _ tt.IdentContext) tt.Stream {
	if id.Name != f.search {
		return tt.Stream{id}
	}
	return tt.Stream{tt.Ident{Name: f.replace, Sp: id.Sp}}
}

func (f *replaceFolder) FoldMethodReceiver(recv tt.Ident) (tt.Stream, bool) {
	if !f.useSelf || recv.Name != f.search {
		return nil, false
	}
	idx := tt.IntLiteral(f.index)
	idx.Sp = recv.Sp
	return tt.Stream{
		tt.Ident{Name: "self", Sp: recv.Sp},
		tt.Punct{Ch: '.', Sp: recv.Sp},
		idx,
	}, true
}
