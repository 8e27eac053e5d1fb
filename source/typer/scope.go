package typer

import (
	"strings"

	"src.elv.sh/pkg/persistent/vector"

	"github.com/tim-hardcastle/welang/source/ast"
	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/types"
)

// The scope of a module: its own declarations, and the modules named by its 'use'
// lines. It is handed down explicitly through both passes.
type scope struct {
	module *ast.Module
	path   vector.Vector // The names leading from the root to the module.
	usings []usedModule  // Filled in when pass 2 reaches the module.
}

type usedModule struct {
	name   string
	module *ast.Module
}

// What the arena knows about each declaration: where it lives and what it is called.
type declaration struct {
	scope *scope
	path  vector.Vector
}

// Finds the modules named by the 'use' lines of the scope. They are always given by
// their path from the root.
func (t *Typer) bindUsings(s *scope) error {
	if s.usings != nil {
		return nil
	}
	usings := []usedModule{}
	for _, chain := range s.module.Usings {
		node := t.root
		for _, name := range chain {
			m, ok := node.Value.(*ast.Module)
			if !ok || m.Declarations[name] == nil {
				node = nil
				break
			}
			node = m.Declarations[name]
		}
		var m *ast.Module
		if node != nil {
			m, _ = node.Value.(*ast.Module)
		}
		if m == nil {
			return report.CreateErr("ref/use", nil, strings.Join(chain, "."))
		}
		usings = append(usings, usedModule{name: strings.Join(chain, "."), module: m})
	}
	s.usings = usings
	return nil
}

// Finds the declaration a chain starts from. A name declared in the module itself comes
// first; then a name that exactly one of the used modules declares; then a name declared
// at the root. The bool is false if the name was found in none of these places.
func (t *Typer) lookupHead(s *scope, head string) (*ast.Node, bool, error) {
	if node, ok := s.module.Declarations[head]; ok {
		return node, true, nil
	}
	var found *ast.Node
	provider := ""
	for _, u := range s.usings {
		node, ok := u.module.Declarations[head]
		if !ok {
			continue
		}
		if found != nil && found != node {
			return nil, false, report.CreateErr("ref/ambiguous", nil, head, provider, u.name)
		}
		found, provider = node, u.name
	}
	if found != nil {
		return found, true, nil
	}
	if rootModule, ok := t.root.Value.(*ast.Module); ok {
		if node, ok := rootModule.Declarations[head]; ok {
			return node, true, nil
		}
	}
	return nil, false, nil
}

// Finds the declaration a chain names, descending through nested modules. Whatever is
// left of the chain names fields of the declaration's value.
func (t *Typer) lookup(s *scope, chain []string) (*ast.Node, []string, error) {
	node, ok, err := t.lookupHead(s, chain[0])
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, report.CreateErr("ref/unresolved", nil, strings.Join(chain, "."))
	}
	i := 1
	for ; i < len(chain); i++ {
		m, isModule := node.Value.(*ast.Module)
		if !isModule {
			break
		}
		next, ok := m.Declarations[chain[i]]
		if !ok {
			return nil, nil, report.CreateErr("ref/unresolved", nil, strings.Join(chain, "."))
		}
		node = next
	}
	return node, chain[i:], nil
}

// Picks out the type of a field, and of a field of that, and so on.
func project(t types.Type, fields []string) (types.Type, error) {
	for _, field := range fields {
		u := t.Unalias()
		fieldType, ok := u.Fields[field]
		if !u.Is(types.CONTEXT) || !ok {
			return types.Type{}, report.CreateErr("ref/field", nil, field, t)
		}
		t = fieldType
	}
	return t, nil
}

// The declaration path as the strings the error reports want.
func pathOf(v vector.Vector) []string {
	result := make([]string, 0, v.Len())
	for it := v.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(string))
	}
	return result
}
