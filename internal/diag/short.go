package diag

import (
	"path/filepath"
	"strconv"
	"strings"

	"tuplegen/internal/source"
)

// FormatShort renders one line per diagnostic in the compiler-style
// `path:line:col: severity[CODE]: message` form, with notes on their own
// `note:` lines when includeNotes is set. Diagnostics without a location
// are prefixed with the tool name instead. Order follows diags.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	var lines []string
	for i := range diags {
		d := &diags[i]
		lines = append(lines, shortLocation(fs, d.Primary)+": "+
			strings.ToLower(d.Severity.String())+"["+d.Code.ID()+"]: "+oneLine(d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, shortLocation(fs, n.Span)+": note: "+oneLine(n.Msg))
		}
	}
	return strings.Join(lines, "\n")
}

func shortLocation(fs *source.FileSet, sp source.Span) string {
	if fs == nil || !sp.IsValid() {
		return "tuplegen"
	}
	file := fs.Get(sp.File)
	if file == nil {
		return "tuplegen"
	}
	start, _ := fs.Resolve(sp)
	path := strings.TrimPrefix(filepath.ToSlash(file.Path), "./")
	return path + ":" + strconv.FormatUint(uint64(start.Line), 10) + ":" + strconv.FormatUint(uint64(start.Col), 10)
}

func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
}
