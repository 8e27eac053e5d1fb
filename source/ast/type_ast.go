package ast

import (
	"github.com/tim-hardcastle/welang/source/types"
)

// A type parameter, '<in, out>value'. The in and out entries are themselves values, whose
// out types are the types declared for the value they annotate, so that '<_, 1>' declares
// a value needing nothing and producing an atom.
type Annotation struct {
	In  *Node
	Out *Node
}

func (a *Annotation) String() string {
	return "<" + a.In.String() + ", " + a.Out.String() + ">"
}

// Whether a declared type constrains the inferred one. A declared type which is None or
// Unknown leaves that type to be inferred.
func Constrains(declared types.Type) bool {
	return !declared.Unalias().IsEmpty()
}

// Makes a node with the types the parser knows about before any typing has happened.
func NewNode(value Value, in, out types.Type) *Node {
	return &Node{InType: in, OutType: out, Value: value}
}
