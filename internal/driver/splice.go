package driver

import (
	"bytes"
	"sort"
	"strings"

	"tuplegen/internal/source"
)

// edit replaces content[start:end] with text.
type edit struct {
	start, end uint32
	text       string
}

func applyEdits(content []byte, edits []edit) []byte {
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })
	var b bytes.Buffer
	b.Grow(len(content))
	prev := uint32(0)
	for _, e := range edits {
		if e.start < prev {
			continue
		}
		b.Write(content[prev:e.start])
		b.WriteString(e.text)
		prev = e.end
	}
	b.Write(content[prev:])
	return b.Bytes()
}

// lineIndent returns the blanks before off on its line, or "" when other
// text precedes off.
func lineIndent(f *source.File, off uint32) string {
	prefix := f.Content[f.LineStart(off):off]
	for _, c := range prefix {
		if c != ' ' && c != '\t' {
			return ""
		}
	}
	return string(prefix)
}

// indentLines prefixes every non-empty line after the first with indent
// and drops the trailing newline.
func indentLines(text, indent string) string {
	text = strings.TrimRight(text, "\n")
	if indent == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// withoutAttr returns content[start:end] with the bytes of the attribute at
// [attrStart, attrEnd) and the blanks after it removed.
func withoutAttr(content []byte, start, end, attrStart, attrEnd uint32) string {
	cut := attrEnd
	for cut < end && isBlank(content[cut]) {
		cut++
	}
	return string(content[start:attrStart]) + string(content[cut:end])
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
