package typer_test

import (
	"testing"

	"github.com/tim-hardcastle/welang/source/ast"
	"github.com/tim-hardcastle/welang/source/parser"
	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/typer"
	"github.com/tim-hardcastle/welang/source/types"
)

// A directory of modules, written as a map from file names to code. A name containing
// a slash puts the file in a subdirectory.
type files map[string]string

func tree(t *testing.T, fs files) *ast.Node {
	t.Helper()
	root := ast.NewNode(ast.NewModule(), types.Unknown(), types.Unknown())
	for name, code := range fs {
		node, err := parser.ParseModule(name, code)
		if err != nil {
			t.Fatalf("unexpected parse error in %s: %v", name, err)
		}
		dir := root.Value.(*ast.Module)
		for {
			i := 0
			for i < len(name) && name[i] != '/' {
				i++
			}
			if i == len(name) {
				break
			}
			sub, ok := dir.Declarations[name[:i]]
			if !ok {
				sub = ast.NewNode(ast.NewModule(), types.Unknown(), types.Unknown())
				dir.Declarations[name[:i]] = sub
			}
			dir, name = sub.Value.(*ast.Module), name[i+1:]
		}
		dir.Declarations[name] = node
	}
	return root
}

func typeOf(t *testing.T, root *ast.Node, chain ...string) types.Type {
	t.Helper()
	node := root
	for _, name := range chain {
		node = node.Value.(*ast.Module).Declarations[name]
	}
	return node.OutType
}

func TestModules(t *testing.T) {
	tests := []struct {
		fs   files
		path []string
		want string
	}{
		{files{"lib": "x: 1\ny: \"s\"", "main": "use lib\na: (x)"}, []string{"main", "a"}, "Word(Atom)"},
		{files{"lib": "x: 1\ny: \"s\"", "main": "a: lib.y"}, []string{"main", "a"}, "Array(Atom)"},
		{files{"lib": "x: 1\ny: \"s\"", "main": "a: lib"}, []string{"main", "a"}, "Context({x: Atom, y: Array(Atom)})"},
		{files{"lib": "x: 1", "main": "use lib\nx: \"s\"\na: x"}, []string{"main", "a"}, "Array(Atom)"},
		{files{"std/io": "p: {q: 1}", "main": "use std.io\na: p.q"}, []string{"main", "a"}, "Atom"},
		{files{"std/io": "p: 1", "main": "a: std.io.p"}, []string{"main", "a"}, "Atom"},
		{files{"std/io": "p: 1", "main": "a: 1"}, []string{"std"}, "Context({io: Context({p: Atom})})"},
		{files{"l1": "x: 1", "l2": "y: 2", "main": "use l1\nuse l2\na: [x, y]"}, []string{"main", "a"}, "Array(Atom)"},
	}
	for i, tt := range tests {
		root := tree(t, tt.fs)
		if err := typer.Check(root); err != nil {
			t.Fatalf("tests[%d]: unexpected error: %v", i, err)
		}
		if got := typeOf(t, root, tt.path...).String(); got != tt.want {
			t.Fatalf("tests[%d]: expected %s, got %s", i, tt.want, got)
		}
	}
}

func TestModuleErrors(t *testing.T) {
	tests := []struct {
		fs   files
		want string
	}{
		{files{"l1": "x: 1", "l2": "x: 2", "main": "use l1\nuse l2\na: x"}, "ref/ambiguous"},
		{files{"main": "use nothing\na: 1"}, "ref/use"},
		{files{"lib": "x: 1", "main": "use lib.x\na: 1"}, "ref/use"},
		{files{"a": "x: b.y", "b": "y: a.x"}, "ref/cycle"},
		{files{"a": "x: b", "b": "y: a"}, "ref/cycle"},
		{files{"lib": "x: 1", "main": "a: lib.z"}, "ref/unresolved"},
		{files{"lib": "x: [1, \"s\"]", "main": "a: 1"}, "type/fold/combination"},
	}
	for i, tt := range tests {
		err := typer.Check(tree(t, tt.fs))
		if report.IdOf(err) != tt.want {
			t.Fatalf("tests[%d]: expected %s, got %v", i, tt.want, err)
		}
	}
}

func TestCheckForest(t *testing.T) {
	roots := []*ast.Node{}
	for _, code := range []string{"a: 1", "a: [1, \"s\"]", "a: (b)\nb: \"s\"", "a: a"} {
		root, err := parser.ParseModule("dummy source", code)
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		roots = append(roots, root)
	}
	errs := typer.CheckForest(roots, 2)
	if len(errs) != 4 {
		t.Fatalf("expected 4 results, got %d", len(errs))
	}
	if errs[0] != nil || errs[2] != nil {
		t.Fatalf("independent trees should be unaffected: %v, %v", errs[0], errs[2])
	}
	if report.IdOf(errs[1]) != "type/fold/combination" || report.IdOf(errs[3]) != "ref/cycle" {
		t.Fatalf("unexpected errors %v, %v", errs[1], errs[3])
	}
	if roots[2].State != ast.RESOLVED {
		t.Fatalf("expected the third tree to be resolved")
	}
}
