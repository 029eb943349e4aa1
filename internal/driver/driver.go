// Package driver finds decorated items in Rust source files, expands them
// and splices the generated code back into the file text.
package driver

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"tuplegen/internal/config"
	"tuplegen/internal/diag"
	"tuplegen/internal/expand"
	"tuplegen/internal/format"
	"tuplegen/internal/logging"
	"tuplegen/internal/observ"
	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

type Options struct {
	Config         config.Config
	MaxDiagnostics int // на файл, 0 - без ограничения
	Jobs           int // 0 - GOMAXPROCS
	Cache          *DiskCache
	Logger         *zap.SugaredLogger
	Timings        bool
}

// InvocationResult summarizes one expanded attribute.
type InvocationResult struct {
	Span  source.Span // the decorated item, attributes included
	Mode  expand.Mode
	Arity int
	OK    bool
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Output      []byte // the file with every invocation replaced
	Changed     bool
	Invocations []InvocationResult
	Bag         *diag.Bag
	Cached      bool
	Timing      observ.Report
}

// ExpandSource expands in-memory content registered under name.
func ExpandSource(name string, content []byte, opts Options) (*source.FileSet, *FileResult) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return fs, ExpandFile(fs, id, opts)
}

// ExpandFile expands every invocation in file id of fs.
func ExpandFile(fs *source.FileSet, id source.FileID, opts Options) *FileResult {
	f := fs.Get(id)
	log := logging.OrNop(opts.Logger).With("file", f.Path)
	res := &FileResult{
		Path:   f.Path,
		FileID: id,
		Output: f.Content,
		Bag:    diag.NewBag(opts.MaxDiagnostics),
	}

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(f, opts.Config)
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			log.Debugw("cache read failed", "error", err)
		case ok:
			payload.restore(res)
			res.Cached = true
			log.Debugw("cache hit", "invocations", len(res.Invocations))
			return res
		}
	}

	timer := observ.NewTimer()
	var trees tt.Stream
	timer.Measure("parse", func() {
		trees = tt.Parse(f, diag.BagReporter{Bag: res.Bag})
	})
	if res.Bag.HasErrors() {
		log.Debugw("parse failed, file left unchanged", "diagnostics", res.Bag.Len())
		return finish(res, timer, opts, key)
	}

	invs := locate(trees, opts.Config.Generator.Attribute)
	idx := timer.Begin("expand")
	edits := make([]edit, 0, len(invs))
	for _, inv := range invs {
		edits = append(edits, expandOne(f, inv, opts, res, log))
	}
	timer.End(idx, fmt.Sprintf("%d invocations", len(invs)))

	if len(edits) > 0 {
		res.Output = applyEdits(f.Content, edits)
		res.Changed = !bytes.Equal(res.Output, f.Content)
	}
	return finish(res, timer, opts, key)
}

func finish(res *FileResult, timer *observ.Timer, opts Options, key Digest) *FileResult {
	res.Bag.Sort()
	if opts.Timings {
		res.Timing = timer.Report()
	}
	if opts.Cache != nil {
		if err := opts.Cache.Put(key, resultToPayload(res)); err != nil {
			logging.OrNop(opts.Logger).Debugw("cache write failed", "file", res.Path, "error", err)
		}
	}
	return res
}

func expandOne(f *source.File, inv invocation, opts Options, res *FileResult, log *zap.SugaredLogger) edit {
	bag := diag.NewBag(0)
	args, argsSpan := tt.Stream(nil), inv.attr.Body.Span()
	if g, ok := inv.attr.Args(); ok {
		args, argsSpan = g.Stream, g.Span()
	}

	out, ok := expand.Expand(args, argsSpan, inv.item, opts.Config.Expand(), diag.BagReporter{Bag: bag})
	fmtOpts := opts.Config.Format()
	indent := lineIndent(f, inv.start)
	ir := InvocationResult{
		Span: source.Span{File: f.ID, Start: inv.start, End: inv.end},
		OK:   ok,
	}

	var text string
	switch {
	case !ok:
		text = indentLines(format.Render(expand.CompileErrors(bag.Items()), fmtOpts), indent)
		log.Debugw("expansion failed", "offset", inv.start, "diagnostics", bag.Len())
	case out.Mode == expand.ModeFull:
		attrSpan := inv.attr.Span()
		text = withoutAttr(f.Content, inv.start, inv.end, attrSpan.Start, attrSpan.End) +
			"\n\n" + indent + indentLines(format.Render(out.Generated, fmtOpts), indent)
	default:
		text = indentLines(format.Render(out.Generated, fmtOpts), indent)
	}
	if ok {
		ir.Mode, ir.Arity = out.Mode, out.Arity
		log.Debugw("expanded", "offset", inv.start, "mode", out.Mode.String(), "arity", out.Arity)
	}

	res.Invocations = append(res.Invocations, ir)
	res.Bag.Merge(bag)
	return edit{start: inv.start, end: inv.end, text: text}
}
