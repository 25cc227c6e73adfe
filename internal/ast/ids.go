package ast

import (
	"fmt"
	"strings"
)

type (
	// NodeID is the compilation-wide identity of a scope-introducing node
	// (var, const, import) or an expression. Assigned in source order
	// across files; it is not an arena index and 0 is a valid id.
	NodeID uint32

	ItemID    uint32
	ExprID    uint32
	PayloadID uint32
)

const (
	NoItemID    ItemID    = 0
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
)

func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }

// ScopePath is the chain of enclosing var/const nodes, outermost first.
type ScopePath []NodeID

// Equal reports whether two paths denote the same scope.
func (s ScopePath) Equal(other ScopePath) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s ScopePath) Clone() ScopePath {
	if s == nil {
		return nil
	}
	out := make(ScopePath, len(s))
	copy(out, s)
	return out
}

func (s ScopePath) String() string {
	parts := make([]string, len(s))
	for i, id := range s {
		parts[i] = fmt.Sprint(id)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
