package vm

import (
	"strconv"
	"strings"

	"github.com/gogpu/naga/wgsl"
)

func (vm *VM) exec(index int, stmt wgsl.Stmt) error {
	assign, ok := stmt.(*wgsl.AssignStmt)
	if !ok {
		return vmErrorf(PanicUnsupportedExpr, index, "unsupported statement %T", stmt)
	}
	if assign.Op != wgsl.TokenEqual {
		return vmErrorf(PanicUnimplementedOp, index, "compound assignment")
	}
	off, err := vm.member(index, assign.Left)
	if err != nil {
		return err
	}
	value, err := vm.eval(index, assign.Right)
	if err != nil {
		return err
	}
	vm.store32(off, value)
	vm.initialized[off] = true
	return nil
}

// member resolves `b.vN` to a byte offset.
func (vm *VM) member(index int, expr wgsl.Expr) (int, error) {
	m, ok := expr.(*wgsl.MemberExpr)
	if !ok {
		return 0, vmErrorf(PanicUnsupportedExpr, index, "expected buffer member, got %T", expr)
	}
	base, ok := m.Expr.(*wgsl.Ident)
	if !ok || base.Name != bufferVar {
		return 0, vmErrorf(PanicUnsupportedExpr, index, "member access on something other than %s", bufferVar)
	}
	off, ok := vm.offsets[m.Member]
	if !ok {
		return 0, vmErrorf(PanicUnknownField, index, "unknown member %s", m.Member)
	}
	return off, nil
}

func (vm *VM) eval(index int, expr wgsl.Expr) (int32, error) {
	switch e := expr.(type) {
	case *wgsl.MemberExpr:
		off, err := vm.member(index, e)
		if err != nil {
			return 0, err
		}
		if !vm.initialized[off] {
			return 0, vmErrorf(PanicUseBeforeInit, index, "%s read before it was assigned", e.Member)
		}
		return vm.load32(off), nil
	case *wgsl.ConstructExpr:
		named, ok := e.Type.(*wgsl.NamedType)
		if !ok || named.Name != "i32" {
			return 0, vmErrorf(PanicTypeMismatch, index, "constructor is not i32")
		}
		return vm.single(index, e.Args)
	case *wgsl.CallExpr:
		if e.Func == nil || e.Func.Name != "i32" {
			return 0, vmErrorf(PanicUnsupportedExpr, index, "unsupported call")
		}
		return vm.single(index, e.Args)
	default:
		v, err := constant(index, expr)
		if err != nil {
			return 0, err
		}
		return narrow(index, v)
	}
}

func (vm *VM) single(index int, args []wgsl.Expr) (int32, error) {
	if len(args) != 1 {
		return 0, vmErrorf(PanicTypeMismatch, index, "i32 takes one argument, got %d", len(args))
	}
	return vm.eval(index, args[0])
}

// constant folds integer literals with an optional leading minus. The
// value is kept wide so -2147483648 survives until narrowing.
func constant(index int, expr wgsl.Expr) (int64, error) {
	switch e := expr.(type) {
	case *wgsl.Literal:
		if e.Kind != wgsl.TokenIntLiteral {
			return 0, vmErrorf(PanicTypeMismatch, index, "literal %s is not an integer", e.Value)
		}
		v, err := strconv.ParseInt(strings.TrimRight(e.Value, "iu"), 0, 64)
		if err != nil {
			return 0, vmErrorf(PanicOutOfBounds, index, "literal %s: %v", e.Value, err)
		}
		return v, nil
	case *wgsl.UnaryExpr:
		if e.Op != wgsl.TokenMinus {
			return 0, vmErrorf(PanicUnsupportedExpr, index, "unsupported unary operator")
		}
		v, err := constant(index, e.Operand)
		return -v, err
	}
	return 0, vmErrorf(PanicUnsupportedExpr, index, "unsupported expression %T", expr)
}

func narrow(index int, v int64) (int32, error) {
	if v < -1<<31 || v > 1<<31-1 {
		return 0, vmErrorf(PanicOutOfBounds, index, "value %d does not fit i32", v)
	}
	return int32(v), nil
}
