package diag

import (
	"gpex/internal/source"
)

// Note is a nested log attached to a diagnostic. A note without a valid
// span has no location.
type Note struct {
	Severity Severity
	Span     source.Span
	Msg      string
}

// Diagnostic is one entry of the diagnostics stream.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span // zero span when the diagnostic has no location
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

// WithNote appends an info-level note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Severity: SevInfo, Span: sp, Msg: msg})
	return d
}
