package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"gpex/internal/ast"
	"gpex/internal/source"
)

// Counter hands out NodeIDs. One counter is shared by every file of a
// compilation so ids grow in file order.
type Counter struct {
	next ast.NodeID
}

// Next returns a fresh id.
func (c *Counter) Next() ast.NodeID {
	id := c.next
	c.next++
	return id
}

// Peek returns the id Next would return.
func (c *Counter) Peek() ast.NodeID {
	return c.next
}

// cursor is the whole backtracking state: offset, scope stack and counter.
type cursor struct {
	src   []byte
	file  source.FileID
	off   int
	scope []ast.NodeID
	ids   *Counter
}

// mark is what parseAny restores after a failed alternative.
type mark struct {
	off      int
	scopeLen int
	nextID   ast.NodeID
}

func (c *cursor) save() mark {
	return mark{off: c.off, scopeLen: len(c.scope), nextID: c.ids.next}
}

func (c *cursor) restore(m mark) {
	c.off = m.off
	c.scope = c.scope[:m.scopeLen]
	c.ids.next = m.nextID
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

func (c *cursor) peekRune() (rune, int) {
	if c.eof() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(c.src[c.off:])
}

// skipTrivia skips whitespace and `//` comments until neither is next.
func (c *cursor) skipTrivia() {
	for {
		start := c.off
		for !c.eof() {
			r, size := c.peekRune()
			if !unicode.IsSpace(r) {
				break
			}
			c.off += size
		}
		if c.off+1 < len(c.src) && c.src[c.off] == '/' && c.src[c.off+1] == '/' {
			for !c.eof() && c.src[c.off] != '\n' {
				c.off++
			}
		}
		if c.off == start {
			return
		}
	}
}

func (c *cursor) span(start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return source.Span{File: c.file, Start: s, End: e}
}

// scopePath snapshots the current scope stack.
func (c *cursor) scopePath() ast.ScopePath {
	return ast.ScopePath(c.scope).Clone()
}

// keywordChar reports characters that glue onto a keyword.
func keywordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
