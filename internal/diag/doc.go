// Package diag defines the diagnostic model shared by the lexer, the token-tree
// builder, the item parser and both generators.
//
// # Data model
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form, a short Message, the Primary span and optional Notes (secondary
// span + message). Notes carry the rest of a merged failure: when one
// generation attempt produces several problems they are folded into a single
// diagnostic whose first entry is the primary and whose others become notes
// (see Merge).
//
// # Emitting diagnostics
//
// Producers report through a Reporter and never format anything themselves.
// BagReporter stores into a Bag and ReportBuilder lets a producer chain
// WithNote before Emit. FormatShort is the one-line-per-entry rendering;
// the other renderings live in internal/diagfmt.
//
// Bag is the diagnostic bag: it can be merged with another bag, sorted,
// deduplicated and collapsed.
package diag
