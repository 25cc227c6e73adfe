package parser

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"gpex/internal/diag"
	"gpex/internal/source"
)

// ParseError records the furthest point a parse reached and what it
// expected to find there.
type ParseError struct {
	File     source.FileID
	Offset   int
	Expected []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message())
}

// Message renders "expected A, B or C".
func (e *ParseError) Message() string {
	var b strings.Builder
	b.WriteString("expected ")
	for i, label := range e.Expected {
		switch {
		case i == 0:
		case i == len(e.Expected)-1:
			b.WriteString(" or ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(label)
	}
	return b.String()
}

// merge keeps the error that got further; on a tie the expectations are
// concatenated.
func merge(a, b *ParseError) *ParseError {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Offset > b.Offset:
		return a
	case b.Offset > a.Offset:
		return b
	}
	out := &ParseError{File: a.File, Offset: a.Offset, Expected: slices.Clone(a.Expected)}
	for _, label := range b.Expected {
		if !slices.Contains(out.Expected, label) {
			out.Expected = append(out.Expected, label)
		}
	}
	return out
}

// Span is the one-byte location of the error.
func (e *ParseError) Span() source.Span {
	off, err := safecast.Conv[uint32](e.Offset)
	if err != nil {
		panic(fmt.Errorf("error offset overflow: %w", err))
	}
	return source.Span{File: e.File, Start: off, End: off + 1}
}

// Report emits the error as a syntax diagnostic.
func (e *ParseError) Report(r diag.Reporter) {
	diag.ReportError(r, diag.SynUnexpectedToken, e.Span(), e.Message()).Emit()
}
