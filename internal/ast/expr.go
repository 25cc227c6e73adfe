package ast

import "gpex/internal/source"

type ExprKind uint8

const (
	ExprIntLiteral ExprKind = iota + 1
	ExprIdent
)

func (k ExprKind) String() string {
	switch k {
	case ExprIntLiteral:
		return "int literal"
	case ExprIdent:
		return "identifier"
	}
	return "unknown"
}

// Expr is a tagged union: an integer literal (Digits set) or an
// identifier reference (Name and Scope set).
type Expr struct {
	Kind   ExprKind
	Node   NodeID
	Span   source.Span
	Scope  ScopePath
	Name   source.StringID // ExprIdent
	Digits string          // ExprIntLiteral, underscores removed
}

type Exprs struct {
	Arena *Arena[Expr]
}

func NewExprs(capHint uint) *Exprs {
	return &Exprs{Arena: NewArena[Expr](capHint)}
}

func (e *Exprs) New(expr Expr) ExprID {
	return ExprID(e.Arena.Allocate(expr))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}
