package parser

import (
	"bytes"
	"strconv"

	"github.com/tim-hardcastle/welang/source/ast"
)

// Pretty-prints a value as source code. Steps are written back as a single clause, which
// runs in the same order as whatever clauses they were parsed from.
func PrettyPrint(node *ast.Node) string {
	return node.String()
}

// Dumps a typed tree, one node to a line, with each node's in and out types and state.
func Dump(node *ast.Node) string {
	var out bytes.Buffer
	dump(&out, "", "", node)
	return out.String()
}

func dump(out *bytes.Buffer, indent, label string, node *ast.Node) {
	out.WriteString(indent)
	if label != "" {
		out.WriteString(label + ": ")
	}
	switch value := node.Value.(type) {
	case *ast.Module:
		out.WriteString("module")
		if value.Source != "" {
			out.WriteString(" " + value.Source)
		}
	case *ast.Array:
		out.WriteString("array")
	case *ast.Context:
		out.WriteString("context")
	case *ast.Word:
		out.WriteString("word")
	case *ast.TypeAlias:
		out.WriteString("alias")
	case *ast.TypeIdentity:
		out.WriteString("identity")
	default:
		out.WriteString(value.String())
	}
	if node.Declared != nil {
		out.WriteString(" " + node.Declared.String())
	}
	out.WriteString(" :: " + node.InType.String() + " -> " + node.OutType.String())
	out.WriteString(" (" + node.State.String() + ")\n")
	indent = indent + "    "
	switch value := node.Value.(type) {
	case *ast.Module:
		for _, u := range value.Usings {
			out.WriteString(indent + "use " + (&ast.Reference{Chain: u}).String() + "\n")
		}
		for _, k := range value.Names() {
			dump(out, indent, k, value.Declarations[k])
		}
	case *ast.Context:
		for _, k := range value.Keys() {
			dump(out, indent, k, value.Fields[k])
		}
	default:
		for i, c := range node.Value.Children() {
			dump(out, indent, strconv.Itoa(i), c)
		}
	}
}
