package fuzztests

import (
	"context"
	"testing"
	"time"

	"gpex/internal/ast"
	"gpex/internal/diag"
	"gpex/internal/parser"
	"gpex/internal/source"
	"gpex/internal/testkit"
)

// parseTimeout bounds a single parse; exceeding it means a loop in the
// backtracking combinators.
const parseTimeout = 5 * time.Second

func parseOne(input []byte) (*source.FileSet, *ast.Builder, *diag.Bag, parser.Result) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("fuzz.gpex", "fuzz", input)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(16)
	res := parser.ParseFile(fs, file, builder, &parser.Counter{}, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return fs, builder, bag, res
}

func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs, builder, bag, res := parseOne(clamp(input))
		if res.Err != nil && bag.Len() != 1 {
			t.Fatalf("syntax error reported %d times", bag.Len())
		}
		if err := testkit.CheckSpanInvariants(builder, fs.Get(res.File)); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, input)
		}
		if res.Err != nil {
			if res.Err.Offset > len(fs.Get(res.File).Content) {
				t.Fatalf("error offset %d beyond input", res.Err.Offset)
			}
		}
	})
}

func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("import ~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~.~"))
	f.Add([]byte("var ________________________________________________ = 1_1_1_1_1_1_1_1_1_1_1_1_1_1_1_1_1"))
	f.Add([]byte("//\n//\n//\n//\n//\n//\n//\n//\n//\n//\n//\n//\n//\n//\n//\n//\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			parseOne(input)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected after %v\ninput (%d bytes): %q", parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
