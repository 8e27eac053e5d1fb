package ast

import (
	"strings"

	"github.com/tim-hardcastle/welang/source/types"
)

// The signature of a declaration is what the rest of the world can know about it once it
// has been typed: what it needs and what it produces.
type Signature struct {
	Module      string // The qualified path of the module, "" for the root.
	Declaration string
	In          types.Type
	Out         types.Type
	Digest      string
}

func (s Signature) Path() string {
	if s.Module == "" {
		return s.Declaration
	}
	return s.Module + "." + s.Declaration
}

func (s Signature) String() string {
	return s.Path() + " : " + s.In.String() + " -> " + s.Out.String()
}

// Lists the signatures of all the resolved non-module declarations in the tree, in order of
// their paths.
func Signatures(root *Node) []Signature {
	result := []Signature{}
	collectSignatures(root, []string{}, &result)
	return result
}

func collectSignatures(n *Node, path []string, result *[]Signature) {
	m, ok := n.Value.(*Module)
	if !ok {
		return
	}
	for _, name := range m.Names() {
		decl := m.Declarations[name]
		if _, isModule := decl.Value.(*Module); isModule {
			collectSignatures(decl, append(append([]string{}, path...), name), result)
			continue
		}
		if decl.State != RESOLVED {
			continue
		}
		*result = append(*result, Signature{Module: strings.Join(path, "."), Declaration: name,
			In: decl.InType, Out: decl.OutType, Digest: m.Digest})
	}
}
