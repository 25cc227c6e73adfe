package parser

import (
	"bytes"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"gpex/internal/source"
)

// charClass is a predicate over a single character.
type charClass func(r rune) bool

// part is one repeated character class of a pattern.
type part struct {
	class    charClass
	min, max int
}

// pattern describes a token shape such as an identifier or a literal.
type pattern struct {
	label    string
	parts    []part
	excluded []string
}

func isASCIILetter(r rune) bool { return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' }
func isASCIIDigit(r rune) bool  { return r >= '0' && r <= '9' }

func oneOf(chars string) charClass {
	return func(r rune) bool { return strings.ContainsRune(chars, r) }
}

func anyOf(classes ...charClass) charClass {
	return func(r rune) bool {
		for _, c := range classes {
			if c(r) {
				return true
			}
		}
		return false
	}
}

// symbol matches an exact literal. Keyword-shaped literals must not be
// followed by an identifier character, so `var` does not match `variable`.
func (c *cursor) symbol(text string) (source.Span, *ParseError) {
	c.skipTrivia()
	start := c.off
	fail := &ParseError{File: c.file, Offset: start, Expected: []string{"`" + text + "`"}}
	if !bytes.HasPrefix(c.src[start:], []byte(text)) {
		return source.Span{}, fail
	}
	end := start + len(text)
	if isKeywordShaped(text) {
		if r, size := utf8.DecodeRune(c.src[end:]); size > 0 && keywordChar(r) {
			return source.Span{}, fail
		}
	}
	c.off = end
	return c.span(start, end), nil
}

func isKeywordShaped(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !keywordChar(r) {
			return false
		}
	}
	return true
}

// match runs a pattern greedily, part by part.
func (c *cursor) match(p *pattern) (source.Span, string, *ParseError) {
	c.skipTrivia()
	start := c.off
	fail := &ParseError{File: c.file, Offset: start, Expected: []string{p.label}}

	for _, pt := range p.parts {
		count := 0
		for count < pt.max && !c.eof() {
			r, size := c.peekRune()
			if !pt.class(r) {
				break
			}
			c.off += size
			count++
		}
		if count < pt.min {
			c.off = start
			return source.Span{}, "", fail
		}
	}

	text := string(c.src[start:c.off])
	if slices.Contains(p.excluded, text) {
		c.off = start
		return source.Span{}, "", fail
	}
	if r, size := c.peekRune(); size > 0 && keywordChar(r) {
		c.off = start
		return source.Span{}, "", fail
	}
	return c.span(start, c.off), text, nil
}

const unbounded = math.MaxInt
