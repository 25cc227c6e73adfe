package vm

import "fmt"

// PanicCode identifies the type of VM panic.
type PanicCode int

// Stable panic codes - do not change values.
const (
	PanicMalformedShader PanicCode = 1001 // VM1001: shader does not have the init shape
	PanicUnknownField    PanicCode = 1002 // VM1002: unknown buffer member or key
	PanicTypeMismatch    PanicCode = 1003 // VM1003: value is not an i32
	PanicOutOfBounds     PanicCode = 1004 // VM1004: field outside the buffer
	PanicUnsupportedExpr PanicCode = 1005 // VM1005: expression the evaluator does not know
	PanicUseBeforeInit   PanicCode = 1006 // VM1006: read of a field not yet assigned
	PanicUnimplementedOp PanicCode = 1999 // VM1999: compound assignment and friends
)

// String returns the code as "VM1001" format.
func (c PanicCode) String() string {
	return fmt.Sprintf("VM%d", c)
}

// VMError represents a failure while evaluating an init shader.
type VMError struct {
	Code    PanicCode
	Message string
	// Statement is the index of the statement in the entry point, -1 when
	// the failure is not tied to one.
	Statement int
}

// Error implements the error interface.
func (p *VMError) Error() string {
	if p.Statement >= 0 {
		return fmt.Sprintf("panic %s: %s (statement %d)", p.Code, p.Message, p.Statement)
	}
	return fmt.Sprintf("panic %s: %s", p.Code, p.Message)
}

func vmErrorf(code PanicCode, stmt int, format string, args ...any) *VMError {
	return &VMError{Code: code, Message: fmt.Sprintf(format, args...), Statement: stmt}
}
