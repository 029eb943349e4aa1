package expand

import (
	"fmt"
	"strconv"
	"strings"

	"tuplegen/internal/diag"
	"tuplegen/internal/source"
	"tuplegen/internal/token"
	"tuplegen/internal/tt"
)

var intSuffixes = []string{"usize", "isize", "u128", "i128", "u64", "i64", "u32", "i32", "u16", "i16", "u8", "i8"}

// ParseArity parses the attribute argument as one non-negative integer
// literal. limit > 0 bounds the accepted value.
func ParseArity(args tt.Stream, sp source.Span, limit int, r diag.Reporter) (int, bool) {
	if len(args) > 0 {
		sp = args.Span()
	}
	fail := func(msg string) (int, bool) {
		diag.ReportError(r, diag.GenMalformedArgument, sp, msg).Emit()
		return 0, false
	}
	if len(args) != 1 {
		return fail("expected the number of tuple elements as a single integer literal, e.g. `#[impl_for_tuples(5)]`")
	}
	lit, ok := args[0].(tt.Literal)
	if !ok || lit.Kind != token.LitInt {
		return fail("expected an integer literal, found `" + tt.Compact(args) + "`")
	}
	n, err := parseIntLiteral(lit.Text)
	if err != nil {
		return fail(fmt.Sprintf("invalid tuple count `%s`: %v", lit.Text, err))
	}
	if limit > 0 && n > uint64(limit) {
		return fail(fmt.Sprintf("tuple count %d exceeds the maximum of %d", n, limit))
	}
	return int(n), true
}

// parseIntLiteral understands decimal, 0x, 0o and 0b literals with `_`
// separators and an optional integer suffix.
func parseIntLiteral(text string) (uint64, error) {
	for _, suf := range intSuffixes {
		if strings.HasSuffix(text, suf) && len(text) > len(suf) {
			text = strings.TrimSuffix(text, suf)
			break
		}
	}
	base := 10
	switch {
	case strings.HasPrefix(text, "0x"):
		base, text = 16, text[2:]
	case strings.HasPrefix(text, "0o"):
		base, text = 8, text[2:]
	case strings.HasPrefix(text, "0b"):
		base, text = 2, text[2:]
	}
	text = strings.ReplaceAll(text, "_", "")
	if text == "" {
		return 0, fmt.Errorf("no digits")
	}
	return strconv.ParseUint(text, base, 64)
}
