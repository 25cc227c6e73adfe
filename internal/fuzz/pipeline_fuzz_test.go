package fuzztests

import (
	"context"
	"testing"

	"gpex/internal/ast"
	"gpex/internal/backend"
	"gpex/internal/backend/wgsl"
	"gpex/internal/diag"
	"gpex/internal/parser"
	"gpex/internal/program"
	"gpex/internal/sema"
	"gpex/internal/source"
	"gpex/internal/symbols"
	"gpex/internal/vm"
)

// FuzzPipeline runs two modules (`main` and `lib`) through every pass. Any
// diagnostic-free input must produce a program the host evaluator accepts.
func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("import lib;\nvar _a = shared;"))
	f.Add([]byte("import lib;\nvar a = LIMIT;"))

	lib := []byte("pub var shared = 3;\nconst LIMIT = 4;\npub import main;")

	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		fs.AddVirtual("lib.gpex", "lib", lib)
		fs.AddVirtual("main.gpex", "main", clamp(input))

		bag := diag.NewBag(0)
		reporter := diag.BagReporter{Bag: bag}
		builder := ast.NewBuilder(ast.Hints{}, nil)
		ids := &parser.Counter{}
		for _, id := range fs.IDs() {
			if res := parser.ParseFile(fs, id, builder, ids, parser.Options{Reporter: reporter}); res.Err != nil {
				return
			}
		}

		resolver := symbols.NewResolver(fs, builder, "/fuzz")
		resolver.ResolveAll()
		sema.Check(fs, sema.Options{Reporter: reporter, Resolver: resolver})
		if bag.HasErrors() {
			return
		}

		plan := backend.Lower(fs, resolver)
		prog := &program.Program{Buffer: plan.Buffer(), InitShader: wgsl.Emit(plan)}
		if err := prog.Check(); err != nil {
			t.Fatalf("layout: %v", err)
		}
		machine, err := vm.New(prog)
		if err != nil {
			t.Fatalf("vm rejected generated shader: %v\n%s", err, prog.InitShader)
		}
		if err := machine.Run(context.Background()); err != nil {
			t.Fatalf("init failed: %v\n%s", err, prog.InitShader)
		}
	})
}
