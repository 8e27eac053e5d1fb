package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/tim-hardcastle/welang/source/ast"
	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/typer"
)

func write(t *testing.T, dir string, fs map[string]string) {
	t.Helper()
	for name, code := range fs {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFromDirectory(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, map[string]string{
		"main.we":       "use std.io\na: (p)",
		"std/io.we":     "p: \"hi\"",
		"std/notes.txt": "not source",
		".hidden/x.we":  "this isn't even welang",
		"std/.swap.we":  "nor this",
		"empty/README":  "",
	})
	root, err := FromPath(dir, ".we")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := root.Value.(*ast.Module)
	if got := m.Names(); len(got) != 3 || got[0] != "empty" || got[1] != "main" || got[2] != "std" {
		t.Fatalf("unexpected declarations %v", got)
	}
	std := m.Declarations["std"].Value.(*ast.Module)
	if got := std.Names(); len(got) != 1 || got[0] != "io" {
		t.Fatalf("unexpected declarations in std %v", got)
	}
	io := std.Declarations["io"].Value.(*ast.Module)
	if io.Source != filepath.Join(dir, "std", "io.we") || io.Digest != Digest("p: \"hi\"") {
		t.Fatalf("unexpected source %s or digest %s", io.Source, io.Digest)
	}
	if err := typer.Check(root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := m.Declarations["main"].Value.(*ast.Module).Declarations["a"]
	if a.OutType.String() != "Word(Array(Atom))" {
		t.Fatalf("unexpected type %s", a.OutType)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, map[string]string{"one.we": "x: 1"})
	root, err := FromPath(filepath.Join(dir, "one.we"), ".we")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names := root.Value.(*ast.Module).Names(); len(names) != 1 || names[0] != "x" {
		t.Fatalf("unexpected declarations %v", names)
	}
}

func TestAssemblerErrors(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, map[string]string{"x.we": "a: 1", "x/y.we": "b: 2"})
	_, err := FromPath(dir, ".we")
	if kind, ok := report.KindOf(err); !ok || kind != report.DuplicateKey {
		t.Fatalf("expected DuplicateKey, got %v", err)
	}
	if _, err := FromPath(filepath.Join(dir, "nowhere"), ".we"); err == nil || !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("expected a missing path to be reported, got %v", err)
	}
	bad := t.TempDir()
	write(t, bad, map[string]string{"bad.we": "a: [1 2]"})
	if _, err := FromPath(bad, ".we"); report.IdOf(err) != "parse/separator/missing" {
		t.Fatalf("expected the parser's error, got %v", err)
	}
}

func TestSourceFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, map[string]string{"a.we": "", "b/c.we": "", "b/d.txt": "", ".git/e.we": ""})
	files, err := SourceFiles(dir, ".we")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 || files[0] != filepath.Join(dir, "a.we") || files[1] != filepath.Join(dir, "b", "c.we") {
		t.Fatalf("unexpected files %v", files)
	}
}

func TestDigest(t *testing.T) {
	if Digest("a: 1") == Digest("a: 2") || len(Digest("")) != 64 {
		t.Fatalf("digests should be distinct 32-byte hex strings")
	}
}
