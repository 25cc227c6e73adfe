// Package driver runs the compiler passes over a project directory.
package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"gpex/internal/ast"
	"gpex/internal/backend"
	"gpex/internal/backend/wgsl"
	"gpex/internal/buildpipeline"
	"gpex/internal/diag"
	"gpex/internal/observ"
	"gpex/internal/parser"
	"gpex/internal/program"
	"gpex/internal/project"
	"gpex/internal/sema"
	"gpex/internal/shader"
	"gpex/internal/source"
	"gpex/internal/symbols"
	"gpex/internal/trace"
)

// ErrCompilationFailed is returned whenever the diagnostics fail the
// compilation. The diagnostics themselves are in Result.Bag.
var ErrCompilationFailed = errors.New("compilation failed")

// Options configure Compile.
type Options struct {
	WarningsAsErrors bool
	MaxDiagnostics   int // <= 0: unlimited
	VerifyShader     bool
	Progress         buildpipeline.ProgressSink
	// Timer receives pass durations; a fresh one is created when nil.
	Timer *observ.Timer
}

// Result holds everything a compilation produced. Program and Plan are nil
// when compilation failed.
type Result struct {
	Root        string
	FileSet     *source.FileSet
	Bag         *diag.Bag
	Builder     *ast.Builder
	Resolver    *symbols.Resolver
	Sema        sema.Result
	Plan        *backend.Plan
	Program     *program.Program
	Shader      shader.Report
	Fingerprint project.Digest
	Timer       *observ.Timer
}

// Files returns the display names of the compiled modules, relative to
// the root when possible.
func (r *Result) Files() []string {
	if r == nil || r.FileSet == nil {
		return nil
	}
	out := make([]string, 0, r.FileSet.Len())
	for _, id := range r.FileSet.IDs() {
		out = append(out, displayPath(r.Root, r.FileSet.Get(id).Path))
	}
	return out
}

func displayPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// compilation carries per-run state between passes.
type compilation struct {
	ctx      context.Context
	opts     Options
	res      *Result
	reporter diag.Reporter
	tracer   trace.Tracer
	files    []string
}

// Compile compiles every `.gpex` file below root into a Program.
//
// Passes: read, parse, index, validate, generate and the optional verify.
// An I/O failure yields a single diagnostic. Syntax errors stop after
// every file is parsed. Any error (or warning with WarningsAsErrors) skips
// generation and the returned error wraps ErrCompilationFailed.
func Compile(ctx context.Context, root string, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compile", trace.ParentFrom(ctx))
	span.WithExtra("root", root)

	bag := diag.NewBag(opts.MaxDiagnostics)
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer(tracer, span.ID())
	}
	c := &compilation{
		ctx:      trace.WithParent(ctx, span),
		opts:     opts,
		reporter: diag.BagReporter{Bag: bag},
		tracer:   tracer,
		res: &Result{
			Root:    root,
			FileSet: source.NewFileSet(),
			Bag:     bag,
			Timer:   timer,
		},
	}

	err := c.run()
	if err != nil {
		span.End("failed")
		return c.res, err
	}
	span.End("ok")
	return c.res, nil
}

func (c *compilation) run() error {
	if err := c.read(); err != nil {
		return err
	}
	if !c.parse() {
		return c.fail(buildpipeline.StageParse, "syntax errors")
	}
	c.index()
	c.validate()
	if c.res.Bag.Failed(c.opts.WarningsAsErrors) {
		return c.fail(buildpipeline.StageValidate, failureSummary(c.res.Bag, c.opts.WarningsAsErrors))
	}
	c.generate()
	if c.opts.VerifyShader {
		if err := c.verify(); err != nil {
			return err
		}
	}
	c.res.Fingerprint = project.Fingerprint(c.res.FileSet)
	return nil
}

// pass wraps a stage in timer, trace and progress bookkeeping.
func (c *compilation) pass(stage buildpipeline.Stage, fn func(parent uint64) (note string, err error)) error {
	buildpipeline.Emit(c.opts.Progress, buildpipeline.Event{Stage: stage, Status: buildpipeline.StatusWorking})
	started := time.Now()
	idx := c.res.Timer.Begin(string(stage))
	note, err := fn(c.res.Timer.Span(idx))
	c.res.Timer.End(idx, note)
	evt := buildpipeline.Event{Stage: stage, Status: buildpipeline.StatusDone, Elapsed: time.Since(started)}
	if err != nil {
		evt.Status, evt.Err = buildpipeline.StatusError, err
	}
	buildpipeline.Emit(c.opts.Progress, evt)
	return err
}

func (c *compilation) fail(stage buildpipeline.Stage, detail string) error {
	trace.Point(c.tracer, trace.ScopePass, "fail:"+string(stage), detail, trace.ParentFrom(c.ctx))
	return fmt.Errorf("%w: %s", ErrCompilationFailed, detail)
}

func failureSummary(bag *diag.Bag, warningsAsErrors bool) string {
	errs, warns := bag.Count(diag.SevError), bag.Count(diag.SevWarning)
	if errs == 0 && warningsAsErrors {
		return fmt.Sprintf("%d warning(s) treated as errors", warns)
	}
	return fmt.Sprintf("%d error(s)", errs)
}

func (c *compilation) read() error {
	var files []project.SourceFile
	readErr := c.pass(buildpipeline.StageRead, func(uint64) (string, error) {
		var err error
		files, err = project.ReadSources(c.ctx, c.res.Root)
		return fmt.Sprintf("%d files", len(files)), err
	})
	if readErr != nil {
		var rerr *project.ReadError
		if !errors.As(readErr, &rerr) {
			// отмена контекста и прочее - не диагностика
			return readErr
		}
		diag.ReportError(c.reporter, diag.IOReadFailed, source.Span{}, rerr.Error()).Emit()
		return c.fail(buildpipeline.StageRead, rerr.Error())
	}

	c.files = make([]string, 0, len(files))
	for _, f := range files {
		var flags source.FileFlags
		if f.HadBOM {
			flags |= source.FileHadBOM
		}
		c.res.FileSet.Add(f.Path, f.DotPath, f.Content, flags)
		c.files = append(c.files, displayPath(c.res.Root, f.Path))
	}
	buildpipeline.EmitFiles(c.opts.Progress, c.files, buildpipeline.StageRead, buildpipeline.StatusQueued)
	return nil
}

func (c *compilation) parse() bool {
	fs := c.res.FileSet
	c.res.Builder = ast.NewBuilder(ast.Hints{Files: uint(fs.Len())}, source.NewInterner()) //nolint:gosec // len is non-negative
	ids := &parser.Counter{}
	ok := true
	_ = c.pass(buildpipeline.StageParse, func(parent uint64) (string, error) {
		failed := 0
		for i, id := range fs.IDs() {
			file := c.files[i]
			buildpipeline.Emit(c.opts.Progress, buildpipeline.Event{File: file, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
			span := trace.Begin(c.tracer, trace.ScopeModule, "module:"+fs.Get(id).DotPath, parent)
			res := parser.ParseFile(fs, id, c.res.Builder, ids, parser.Options{Reporter: c.reporter})
			status := buildpipeline.StatusDone
			if res.Err != nil {
				status = buildpipeline.StatusError
				failed++
				span.End("syntax error")
			} else {
				span.WithExtra("items", fmt.Sprint(len(res.Items))).End("")
			}
			evt := buildpipeline.Event{File: file, Stage: buildpipeline.StageParse, Status: status}
			if res.Err != nil {
				evt.Err = res.Err
			}
			buildpipeline.Emit(c.opts.Progress, evt)
		}
		if failed > 0 {
			ok = false
			return fmt.Sprintf("%d of %d files failed", failed, fs.Len()), nil
		}
		return fmt.Sprintf("%d nodes", ids.Peek()), nil
	})
	return ok
}

func (c *compilation) index() {
	_ = c.pass(buildpipeline.StageIndex, func(uint64) (string, error) {
		c.res.Resolver = symbols.NewResolver(c.res.FileSet, c.res.Builder, c.res.Root)
		c.res.Resolver.ResolveAll()
		return "", nil
	})
}

func (c *compilation) validate() {
	_ = c.pass(buildpipeline.StageValidate, func(uint64) (string, error) {
		c.res.Sema = sema.Check(c.res.FileSet, sema.Options{Reporter: c.reporter, Resolver: c.res.Resolver})
		skipped := make(map[source.FileID]bool, len(c.res.Sema.Skipped))
		for _, id := range c.res.Sema.Skipped {
			skipped[id] = true
		}
		for i, id := range c.res.FileSet.IDs() {
			status := buildpipeline.StatusDone
			if skipped[id] {
				status = buildpipeline.StatusSkipped
			}
			buildpipeline.Emit(c.opts.Progress, buildpipeline.Event{File: c.files[i], Stage: buildpipeline.StageValidate, Status: status})
		}
		return fmt.Sprintf("%d errors, %d warnings", c.res.Sema.Errors, c.res.Sema.Warnings), nil
	})
}

func (c *compilation) generate() {
	_ = c.pass(buildpipeline.StageGenerate, func(uint64) (string, error) {
		plan := backend.Lower(c.res.FileSet, c.res.Resolver)
		c.res.Plan = plan
		c.res.Program = &program.Program{Buffer: plan.Buffer(), InitShader: wgsl.Emit(plan)}
		return fmt.Sprintf("%d globals, %d bytes", len(plan.Globals), plan.Size), nil
	})
}

func (c *compilation) verify() error {
	return c.pass(buildpipeline.StageVerify, func(uint64) (string, error) {
		rep, err := shader.Verify(c.res.Program.InitShader)
		if err != nil {
			return "", fmt.Errorf("verify init shader: %w", err)
		}
		c.res.Shader = rep
		if rep.Skipped {
			return "empty buffer", nil
		}
		return "", nil
	})
}
