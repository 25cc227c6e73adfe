package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gpex/internal/buildpipeline"
	"gpex/internal/diag"
	"gpex/internal/program"
	"gpex/internal/shader"
	"gpex/internal/source"
)

// ArtifactExt is the default extension of compiled programs.
const ArtifactExt = ".gpexc"

// DefaultOutput returns <root>/<base of root>.gpexc.
func DefaultOutput(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return filepath.Join(abs, filepath.Base(abs)+ArtifactExt)
}

// WriteArtifact saves res.Program to path. A failure is reported into
// res.Bag as `cannot write "<path>": <err>` and returned wrapped in
// ErrCompilationFailed.
func WriteArtifact(res *Result, path string, sink buildpipeline.ProgressSink) error {
	if res == nil || res.Program == nil {
		return errors.New("nothing to write: compilation produced no program")
	}
	buildpipeline.Emit(sink, buildpipeline.Event{Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusWorking})
	started := time.Now()
	if err := program.Save(path, res.Program); err != nil {
		return writeFailed(res, sink, path, err)
	}
	buildpipeline.Emit(sink, buildpipeline.Event{Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone, Elapsed: time.Since(started)})
	return nil
}

// WriteSPIRV compiles the init shader with naga and writes the binary.
func WriteSPIRV(res *Result, path string) error {
	if res == nil || res.Program == nil {
		return errors.New("nothing to write: compilation produced no program")
	}
	blob, err := shader.CompileSPIRV(res.Program.InitShader)
	if err != nil {
		return fmt.Errorf("compile SPIR-V: %w", err)
	}
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		return writeFailed(res, nil, path, err)
	}
	return nil
}

func writeFailed(res *Result, sink buildpipeline.ProgressSink, path string, err error) error {
	msg := fmt.Sprintf("cannot write %q: %v", path, err)
	diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.IOWriteFailed, source.Span{}, msg).Emit()
	buildpipeline.Emit(sink, buildpipeline.Event{Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusError, Err: err})
	return fmt.Errorf("%w: %s", ErrCompilationFailed, msg)
}

// LoadArtifact reads a compiled program. Unreadable or malformed files
// produce a diagnostic in the returned bag.
func LoadArtifact(path string) (*program.Program, *diag.Bag, error) {
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	prog, err := program.Load(path)
	switch {
	case err == nil:
		return prog, bag, nil
	case errors.Is(err, program.ErrInvalidProgram), errors.Is(err, program.ErrSchemaMismatch):
		diag.ReportError(rep, diag.IOInvalidProgram, source.Span{}, fmt.Sprintf("invalid compiled program %q", path)).
			WithNote(source.Span{}, err.Error()).
			Emit()
	default:
		diag.ReportError(rep, diag.IOReadFailed, source.Span{}, fmt.Sprintf("cannot read %q: %v", path, err)).Emit()
	}
	return nil, bag, fmt.Errorf("%w: %w", ErrCompilationFailed, err)
}
