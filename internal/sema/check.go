package sema

import (
	"fmt"

	"gpex/internal/ast"
	"gpex/internal/diag"
	"gpex/internal/source"
	"gpex/internal/symbols"
)

// Options configure the validation pass.
type Options struct {
	Reporter diag.Reporter
	Resolver *symbols.Resolver
}

// Result summarises what the pass found.
type Result struct {
	// Skipped lists modules whose items were not checked because an
	// import of the module failed.
	Skipped  []source.FileID
	Errors   int
	Warnings int
}

// Check validates every module in file order.
func Check(fs *source.FileSet, opts Options) Result {
	counter := &diag.CountingReporter{Next: opts.Reporter}
	c := checker{fs: fs, resolver: opts.Resolver, builder: opts.Resolver.Builder, reporter: counter}
	var res Result
	for _, mod := range c.builder.Modules() {
		if !c.checkModule(mod) {
			res.Skipped = append(res.Skipped, mod.File)
		}
	}
	res.Errors, res.Warnings = counter.Errors, counter.Warnings
	return res
}

type checker struct {
	fs       *source.FileSet
	resolver *symbols.Resolver
	builder  *ast.Builder
	reporter diag.Reporter
}

func (c *checker) checkModule(mod ast.Module) bool {
	importsOK := true
	seenDefinition := false
	for _, id := range mod.Items {
		switch c.builder.Items.Get(id).Kind {
		case ast.ItemImport:
			if !c.checkImport(id, seenDefinition) {
				importsOK = false
			}
		case ast.ItemVar, ast.ItemConst:
			seenDefinition = true
		}
	}
	if !importsOK {
		return false
	}
	for _, id := range mod.Items {
		def, ok := c.builder.Items.Def(id)
		if !ok {
			continue
		}
		c.checkDef(def)
	}
	return true
}

func (c *checker) report(code diag.Code, sev diag.Severity, span source.Span, format string, args ...any) *diag.ReportBuilder {
	return diag.NewReportBuilder(c.reporter, sev, code, span, fmt.Sprintf(format, args...))
}

func (c *checker) name(id source.StringID) string {
	return c.builder.Name(id)
}
