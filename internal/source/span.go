package source

import (
	"cmp"
	"fmt"
)

// Span is a half-open byte range inside one file.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// IsValid reports whether the span points into a file.
func (s Span) IsValid() bool {
	return s.File != NoFileID
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Compare orders spans by file, then start, then end.
func (s Span) Compare(other Span) int {
	if c := cmp.Compare(s.File, other.File); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Start, other.Start); c != 0 {
		return c
	}
	return cmp.Compare(s.End, other.End)
}

// Less reports whether s sorts before other.
func (s Span) Less(other Span) bool {
	return s.Compare(other) < 0
}
