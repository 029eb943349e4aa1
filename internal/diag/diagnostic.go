package diag

import (
	"tuplegen/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Span: sp, Msg: msg})
	return d
}

// Messages returns the primary message followed by every note message.
func (d Diagnostic) Messages() []string {
	out := make([]string, 0, 1+len(d.Notes))
	out = append(out, d.Message)
	for _, n := range d.Notes {
		out = append(out, n.Msg)
	}
	return out
}

// Merge folds diags into one diagnostic: the first one stays primary and
// every other (with its own notes) is attached as a note. The merged severity
// is the highest of all inputs. Merge of nothing returns false.
func Merge(diags []Diagnostic) (Diagnostic, bool) {
	if len(diags) == 0 {
		return Diagnostic{}, false
	}
	merged := diags[0]
	for _, d := range diags[1:] {
		merged = merged.WithNote(d.Primary, d.Message)
		for _, n := range d.Notes {
			merged = merged.WithNote(n.Span, n.Msg)
		}
		if d.Severity > merged.Severity {
			merged.Severity = d.Severity
		}
	}
	return merged, true
}
