package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tuplegen/internal/source"
	"tuplegen/internal/tt"
)

// CheckSpanInvariants runs a minimal set of span invariants on built trees:
// 1) every tree with a location points into sf and lies within its content
// 2) every leaf span is non-empty
// 3) sibling trees are ordered and do not overlap
// 4) the contents of a group lie between its delimiters
func CheckSpanInvariants(s tt.Stream, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkStream(s, sf.ID, lenContent, source.NoSpan)
}

func checkStream(s tt.Stream, file source.FileID, limit uint32, parent source.Span) error {
	var prevEnd uint32
	havePrev := false
	for i, t := range s {
		sp := t.Span()
		if !sp.IsValid() {
			continue
		}
		// 1) файл и границы
		if sp.File != file {
			return fmt.Errorf("tree %d points to different file id: got=%d want=%d", i, sp.File, file)
		}
		if sp.End > limit || sp.Start > sp.End {
			return fmt.Errorf("tree %d span out of bounds: %v (content %d)", i, sp, limit)
		}
		// 2) непустые листья
		if _, isGroup := t.(tt.Group); !isGroup && sp.Empty() {
			return fmt.Errorf("tree %d has empty span: %v", i, sp)
		}
		// 3) порядок соседей (doc-атрибуты делят один span)
		if havePrev && sp.Start < prevEnd && !sharesDocSpan(s, i) {
			return fmt.Errorf("tree %d overlaps previous: %v starts before %d", i, sp, prevEnd)
		}
		// 4) содержимое группы внутри родителя
		if parent.IsValid() && !parent.Contains(sp) {
			return fmt.Errorf("tree %d %v escapes its group %v", i, sp, parent)
		}
		prevEnd, havePrev = sp.End, true

		if g, ok := t.(tt.Group); ok {
			if err := checkStream(g.Stream, file, limit, g.Span()); err != nil {
				return fmt.Errorf("in group at %v: %w", g.Open, err)
			}
		}
	}
	return nil
}

func sharesDocSpan(s tt.Stream, i int) bool {
	return i > 0 && s[i-1].Span().Contains(s[i].Span())
}
