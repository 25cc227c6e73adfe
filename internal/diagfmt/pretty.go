package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"gpex/internal/diag"
	"gpex/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид: строка в display
// форме, затем (опционально) строка исходника с подчёркиванием ^~~~ по Span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	var b strings.Builder
	for _, d := range bag.Items() {
		writeLine(&b, "", d.Severity, d.Message, d.Primary, fs, opts.Color)
		if opts.Context {
			writeContext(&b, d.Primary, fs)
		}
		if opts.ShowNotes {
			for _, note := range d.Notes {
				writeLine(&b, "  --> ", note.Severity, note.Msg, note.Span, fs, opts.Color)
			}
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		b.Reset()
	}
	if n := bag.Dropped(); n > 0 {
		if _, err := fmt.Fprintf(w, "... %d more diagnostics not shown\n", n); err != nil {
			return err
		}
	}
	return nil
}

func writeContext(b *strings.Builder, span source.Span, fs *source.FileSet) {
	if fs == nil || !span.IsValid() || int(span.File) > fs.Len() {
		return
	}
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	gutter := fmt.Sprintf("%4d | ", start.Line)
	b.WriteString(gutter)
	b.WriteString(line)
	b.WriteByte('\n')

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	b.WriteString(strings.Repeat(" ", len(gutter)+int(start.Col)-1))
	b.WriteByte('^')
	if width > 1 {
		b.WriteString(strings.Repeat("~", width-1))
	}
	b.WriteByte('\n')
}
