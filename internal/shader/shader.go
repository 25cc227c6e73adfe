// Package shader checks init shaders with the naga WGSL front end and
// compiles them to SPIR-V.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// ErrInvalidShader wraps every rejection of a shader.
var ErrInvalidShader = errors.New("invalid init shader")

// Report describes a verified shader.
type Report struct {
	Skipped     bool // nothing to verify: the buffer is empty
	EntryPoints []string
	Globals     int
}

// Empty reports whether src declares an empty buffer struct. WGSL rejects
// empty structs, so such shaders are never handed to naga.
func Empty(src string) bool {
	return strings.HasPrefix(src, "struct Buffer { }")
}

// Verify parses, lowers and validates src.
func Verify(src string) (Report, error) {
	if Empty(src) {
		return Report{Skipped: true}, nil
	}
	module, err := lower(src)
	if err != nil {
		return Report{}, err
	}
	problems, err := naga.Validate(module)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	if len(problems) > 0 {
		return Report{}, fmt.Errorf("%w: %s", ErrInvalidShader, joinProblems(problems))
	}

	rep := Report{Globals: len(module.GlobalVariables)}
	for _, ep := range module.EntryPoints {
		if ep.Stage != ir.StageCompute {
			return Report{}, fmt.Errorf("%w: entry point %q is not a compute shader", ErrInvalidShader, ep.Name)
		}
		rep.EntryPoints = append(rep.EntryPoints, ep.Name)
	}
	if len(rep.EntryPoints) != 1 {
		return Report{}, fmt.Errorf("%w: expected one entry point, found %d", ErrInvalidShader, len(rep.EntryPoints))
	}
	return rep, nil
}

// CompileSPIRV compiles src to a SPIR-V binary with validation enabled.
func CompileSPIRV(src string) ([]byte, error) {
	if Empty(src) {
		return nil, fmt.Errorf("%w: buffer has no fields", ErrInvalidShader)
	}
	out, err := naga.CompileWithOptions(src, naga.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	return out, nil
}

func lower(src string) (*ir.Module, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	return module, nil
}

func joinProblems(problems []ir.ValidationError) string {
	msgs := make([]string, 0, len(problems))
	for _, p := range problems {
		msgs = append(msgs, p.Error())
	}
	return strings.Join(msgs, "; ")
}
