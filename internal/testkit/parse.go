package testkit

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

// Parse lexes src as a virtual file and builds its trees; diagnostics go to the returned bag.
func Parse(src string) (tt.Stream, *diag.Bag, *source.File) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.rs", []byte(src))
	f := fs.Get(id)
	bag := diag.NewBag(0)
	return tt.Parse(f, diag.BagReporter{Bag: bag}), bag, f
}

// Messages flattens the diagnostics of bag into "CODE message" lines.
func Messages(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID()+" "+d.Message)
		for _, n := range d.Notes {
			out = append(out, "  note: "+n.Msg)
		}
	}
	return out
}
