package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"gpex/internal/diag"
	"gpex/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	pathColor    = color.New(color.Faint)
)

// Text writes diagnostics in the display form:
//
//	error: `x` value not found (at src/main.gpex:3:9)
//	  --> info: depends on itself (at src/main.gpex:1:9)
func Text(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts TextOpts) error {
	for _, d := range bag.Items() {
		if _, err := io.WriteString(w, FormatDiagnostic(d, fs, opts.Color)); err != nil {
			return err
		}
	}
	return nil
}

// FormatDiagnostic renders one diagnostic with its notes, newline terminated.
func FormatDiagnostic(d diag.Diagnostic, fs *source.FileSet, colored bool) string {
	var b strings.Builder
	writeLine(&b, "", d.Severity, d.Message, d.Primary, fs, colored)
	for _, note := range d.Notes {
		writeLine(&b, "  --> ", note.Severity, note.Msg, note.Span, fs, colored)
	}
	return b.String()
}

func writeLine(b *strings.Builder, prefix string, sev diag.Severity, msg string, span source.Span, fs *source.FileSet, colored bool) {
	b.WriteString(prefix)
	b.WriteString(severityLabel(sev, colored))
	b.WriteString(": ")
	b.WriteString(msg)
	if loc, ok := location(span, fs); ok {
		b.WriteByte(' ')
		if colored {
			b.WriteString(pathColor.Sprintf("(at %s)", loc))
		} else {
			fmt.Fprintf(b, "(at %s)", loc)
		}
	}
	b.WriteByte('\n')
}

// location returns "path:line:col" for valid spans.
func location(span source.Span, fs *source.FileSet) (string, bool) {
	if fs == nil || !span.IsValid() || int(span.File) > fs.Len() {
		return "", false
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", fs.Get(span.File).Path, start.Line, start.Col), true
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(label)
	case diag.SevWarning:
		return warningColor.Sprint(label)
	default:
		return infoColor.Sprint(label)
	}
}
