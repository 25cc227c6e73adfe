package parser

import (
	"testing"

	"gpex/internal/source"
)

func newCursor(src string) *cursor {
	return &cursor{src: []byte(src), file: 1, ids: &Counter{}}
}

func TestSymbolKeywordBoundary(t *testing.T) {
	tests := []struct {
		src  string
		sym  string
		want bool
	}{
		{"var x", "var", true},
		{"variable", "var", false},
		{"var_x", "var", false},
		{"var1", "var", false},
		{"var;", "var", true},
		{"var", "var", true},
		{";;", ";", true},
		{".x", ".", true},
		{"  // comment\n\t// more\n  import", "import", true},
		{"pub", "pubx", false},
	}
	for _, tt := range tests {
		c := newCursor(tt.src)
		_, err := c.symbol(tt.sym)
		if (err == nil) != tt.want {
			t.Errorf("symbol(%q) on %q: ok=%v, want %v", tt.sym, tt.src, err == nil, tt.want)
		}
	}
}

func TestSymbolFailureLabelAndOffset(t *testing.T) {
	c := newCursor("   = 1")
	_, err := c.symbol(";")
	if err == nil {
		t.Fatal("expected failure")
	}
	if err.Offset != 3 || len(err.Expected) != 1 || err.Expected[0] != "`;`" {
		t.Fatalf("unexpected error %+v", err)
	}
}

func TestSkipTriviaCollapsesCommentsAndSpaces(t *testing.T) {
	c := newCursor(" \n// a\n   // b\n\n  x")
	c.skipTrivia()
	if got := string(c.src[c.off:]); got != "x" {
		t.Fatalf("remaining = %q", got)
	}
	c = newCursor("// only a comment")
	c.skipTrivia()
	if !c.eof() {
		t.Fatalf("expected eof, at %d", c.off)
	}
}

func TestIdentifierPattern(t *testing.T) {
	accepted := []string{"a", "_", "_x", "x1", "constant", "variable", "imports", "snake_case_9", "CAPS"}
	for _, name := range accepted {
		expr, err := ParseExpr([]byte(name), 1, source.NewInterner(), &Counter{})
		if err != nil {
			t.Errorf("ParseExpr(%q) failed: %s", name, err.Message())
			continue
		}
		if expr.Span.Start != 0 || int(expr.Span.End) != len(name) {
			t.Errorf("ParseExpr(%q) span = %v", name, expr.Span)
		}
	}
	rejected := []string{"const", "import", "var", "9a", "", "-x"}
	for _, name := range rejected {
		if _, err := ParseExpr([]byte(name), 1, source.NewInterner(), &Counter{}); err == nil {
			t.Errorf("ParseExpr(%q) unexpectedly succeeded", name)
		}
	}
}

func TestIntPattern(t *testing.T) {
	tests := []struct {
		src    string
		digits string
		ok     bool
	}{
		{"0", "0", true},
		{"-12", "-12", true},
		{"1_000_000", "1000000", true},
		{"9_", "9", true},
		{"_1", "", false},
		{"-", "", false},
		{"12abc", "", false},
	}
	for _, tt := range tests {
		c := newCursor(tt.src)
		p := &Parser{strs: source.NewInterner()}
		expr, err := p.parseIntLiteral(c)
		if (err == nil) != tt.ok {
			t.Errorf("parseIntLiteral(%q) ok=%v, want %v", tt.src, err == nil, tt.ok)
			continue
		}
		if tt.ok && expr.Digits != tt.digits {
			t.Errorf("parseIntLiteral(%q) digits = %q, want %q", tt.src, expr.Digits, tt.digits)
		}
	}
}
