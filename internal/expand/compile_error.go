package expand

import (
	"tuplegen/internal/diag"
	"tuplegen/internal/tt"
)

// CompileErrors renders diagnostics as `::core::compile_error! { "..." }`
// items, one per message; notes become their own items after the primary.
func CompileErrors(diags []diag.Diagnostic) tt.Stream {
	var out tt.Stream
	for _, d := range diags {
		if d.Severity < diag.SevError {
			continue
		}
		for _, msg := range d.Messages() {
			out = append(out, compileError(msg)...)
		}
	}
	return out
}

func compileError(msg string) tt.Stream {
	out := tt.Path("", "core", "compile_error")
	out = append(out, tt.NewPunct('!'))
	return append(out, tt.NewGroup(tt.Brace, tt.Stream{tt.StrLiteral(msg)}))
}
