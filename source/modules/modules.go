package modules

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/tim-hardcastle/welang/source/ast"
	"github.com/tim-hardcastle/welang/source/parser"
	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/token"
	"github.com/tim-hardcastle/welang/source/types"
)

// The assembler turns a path into a declaration tree. A source file becomes a module
// whose declarations are the file's; a directory becomes a module whose declarations are
// the modules made from its source files and subdirectories, named by their base names
// with the extension stripped. Hidden files and files with other extensions are ignored.
func FromPath(path, ext string) (*ast.Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open module %s", path)
	}
	if info.IsDir() {
		return fromDirectory(path, ext)
	}
	return fromFile(path)
}

// Makes a module from code that didn't come from a file.
func FromSource(name, code string) (*ast.Node, error) {
	node, err := parser.ParseModule(name, code)
	if err != nil {
		return nil, err
	}
	m := node.Value.(*ast.Module)
	m.Source = name
	m.Digest = Digest(code)
	return node, nil
}

// The hex-encoded BLAKE2b-256 digest of a module's source code.
func Digest(code string) string {
	sum := blake2b.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func fromFile(path string) (*ast.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read module %s", path)
	}
	return FromSource(path, string(data))
}

func fromDirectory(dir, ext string) (*ast.Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read directory %s", dir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	m := ast.NewModule()
	m.Source = dir
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		var child *ast.Node
		if entry.IsDir() {
			child, err = fromDirectory(path, ext)
		} else {
			if filepath.Ext(name) != ext {
				continue
			}
			name = strings.TrimSuffix(name, ext)
			child, err = fromFile(path)
		}
		if err != nil {
			return nil, err
		}
		if _, ok := m.Declarations[name]; ok {
			return nil, report.CreateErr("mod/duplicate", &token.Token{Source: path}, name, dir)
		}
		m.Declarations[name] = child
	}
	return ast.NewNode(m, types.Unknown(), types.Unknown()), nil
}

// Lists the source files below a path, in the order the assembler reads them.
func SourceFiles(path, ext string) ([]string, error) {
	result := []string{}
	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != path && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && filepath.Ext(p) == ext {
			result = append(result, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't list modules in %s", path)
	}
	return result, nil
}
