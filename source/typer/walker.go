package typer

import (
	"fmt"
	"strconv"
	"strings"

	"src.elv.sh/pkg/persistent/vector"

	"github.com/tim-hardcastle/welang/source/ast"
	"github.com/tim-hardcastle/welang/source/digraph"
	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/settings"
	"github.com/tim-hardcastle/welang/source/types"
)

// The typer types a declaration tree in place, in two passes.
//
// Pass 1 types every node bottom-up from its children, treating references as opaque:
// anything that would need to know what a reference stands for is left until later.
//
// Pass 2 walks each module's declarations in dependency order, resolves every reference
// through the module's scope, and recomputes every node from its resolved children, so
// that all the checks are made again with nothing left opaque.
//
// Both passes stop at the first error. The node that failed, and every node above it,
// is marked FAILED and keeps the types it had before.
type Typer struct {
	root       *ast.Node
	top        *scope
	scopes     map[*ast.Module]*scope
	arena      map[*ast.Node]*declaration
	inProgress map[*ast.Node]bool
	deferred   map[*ast.Node][2]provisional // Given types to check once pass 2 has inferred.
}

// Indexes the tree. Every module gets a scope, and every declaration is put in the arena
// so that pass 2 can find where it lives without searching the tree.
func New(root *ast.Node) *Typer {
	t := &Typer{
		root:       root,
		scopes:     map[*ast.Module]*scope{},
		arena:      map[*ast.Node]*declaration{},
		inProgress: map[*ast.Node]bool{},
		deferred:   map[*ast.Node][2]provisional{},
	}
	t.index(root, vector.Empty)
	if m, ok := root.Value.(*ast.Module); ok {
		t.top = t.scopes[m]
	} else {
		t.top = &scope{module: ast.NewModule(), path: vector.Empty}
	}
	return t
}

func (t *Typer) index(n *ast.Node, path vector.Vector) {
	m, ok := n.Value.(*ast.Module)
	if !ok {
		return
	}
	s := &scope{module: m, path: path}
	t.scopes[m] = s
	for _, name := range m.Names() {
		decl := m.Declarations[name]
		declPath := path.Conj(name)
		t.arena[decl] = &declaration{scope: s, path: declPath}
		t.index(decl, declPath)
	}
}

// Runs both passes over the tree.
func Check(root *ast.Node) error {
	t := New(root)
	if err := t.LocalPass(); err != nil {
		return err
	}
	return t.ResolvePass()
}

func (t *Typer) LocalPass() error {
	return t.local(t.root, vector.Empty)
}

func (t *Typer) ResolvePass() error {
	return t.resolve(t.root, vector.Empty, t.top)
}

// Pass 1.
func (t *Typer) local(n *ast.Node, path vector.Vector) error {
	switch n.State {
	case ast.RESOLVED:
		return nil
	case ast.FAILED:
		return n.Err
	}
	for _, c := range children(n, path) {
		if err := t.local(c.node, c.path); err != nil {
			return t.fail(n, path, err)
		}
	}
	if n.Declared != nil {
		for _, c := range []*ast.Node{n.Declared.In, n.Declared.Out} {
			if err := t.local(c, path); err != nil {
				return t.fail(n, path, err)
			}
		}
	}
	fresh := n.State == ast.UNKNOWN
	provisionalIn, provisionalOut := n.InType, n.OutType
	var in, out types.Type
	var err error
	if ref, ok := n.Value.(*ast.Reference); ok {
		in, out = types.Reference(ref.Chain...), types.Reference(ref.Chain...)
	} else {
		in, out, err = combine(n, nil)
	}
	if err == nil {
		in, out, err = applyAnnotation(n, in, out, false)
	}
	if err == nil && fresh {
		err = t.checkProvisional(n, provisional{"in", provisionalIn, in}, provisional{"out", provisionalOut, out})
	}
	if err != nil {
		return t.fail(n, path, err)
	}
	n.InType, n.OutType = in, out
	n.State = ast.LOCALLY_TYPED
	t.log("Pass 1", n, path)
	return nil
}

// Pass 2.
func (t *Typer) resolve(n *ast.Node, path vector.Vector, s *scope) error {
	switch n.State {
	case ast.RESOLVED:
		return nil
	case ast.FAILED:
		return n.Err
	}
	var in, out types.Type
	var err error
	switch value := n.Value.(type) {
	case *ast.Module:
		in, out, err = t.resolveModule(value)
	case *ast.Reference:
		in, out, err = t.resolveReference(s, value.Chain)
	default:
		for _, c := range children(n, path) {
			if err := t.resolve(c.node, c.path, s); err != nil {
				return t.fail(n, path, err)
			}
		}
		in, out, err = combine(n, t.resolver(s))
	}
	if err == nil && n.Declared != nil {
		for _, c := range []*ast.Node{n.Declared.In, n.Declared.Out} {
			if err = t.resolve(c, path, s); err != nil {
				break
			}
		}
	}
	if err == nil {
		in, out, err = applyAnnotation(n, in, out, true)
	}
	if deferred, ok := t.deferred[n]; ok && err == nil {
		delete(t.deferred, n)
		deferred[0].inferred, deferred[1].inferred = in, out
		err = t.checkProvisional(n, deferred[0], deferred[1])
	}
	if err != nil {
		return t.fail(n, path, err)
	}
	n.InType, n.OutType = in, out
	n.State = ast.RESOLVED
	t.log("Pass 2", n, path)
	return nil
}

// The declarations of a module are resolved leaves first, so that a declaration is
// only typed once everything it refers to in the same module has been.
func (t *Typer) resolveModule(m *ast.Module) (types.Type, types.Type, error) {
	s := t.scopes[m]
	if err := t.bindUsings(s); err != nil {
		return types.Type{}, types.Type{}, err
	}
	order, err := t.declarationOrder(s)
	if err != nil {
		return types.Type{}, types.Type{}, err
	}
	for _, name := range order {
		if err := t.resolveDeclaration(m.Declarations[name]); err != nil {
			return types.Type{}, types.Type{}, err
		}
	}
	return types.None(), moduleType(m), nil
}

func (t *Typer) declarationOrder(s *scope) ([]string, error) {
	D := digraph.Digraph[string]{}
	for _, name := range s.module.Names() {
		D.Add(name, []string{})
		for _, chain := range references(s.module.Declarations[name]) {
			if _, ok := s.module.Declarations[chain[0]]; ok {
				D.AddArrow(name, chain[0])
			}
		}
	}
	order, cycle := digraph.Ordering(D)
	if len(cycle) > 0 {
		err := report.CreateErr("ref/cycle", nil, strings.Join(append(cycle, cycle[0]), " -> "))
		first := s.module.Declarations[cycle[0]]
		return nil, t.fail(first, s.path.Conj(cycle[0]), err)
	}
	return order, nil
}

// Makes sure that a declaration is resolved, whichever module it belongs to. Finding a
// declaration that is already being resolved means that its type depends on itself.
func (t *Typer) resolveDeclaration(n *ast.Node) error {
	switch n.State {
	case ast.RESOLVED:
		return nil
	case ast.FAILED:
		return n.Err
	}
	decl, ok := t.arena[n]
	if !ok {
		return report.CreateErr("ref/unresolved", &n.Token, n.String())
	}
	if t.inProgress[n] {
		return report.CreateErr("ref/cycle", &n.Token, strings.Join(pathOf(decl.path), "."))
	}
	t.inProgress[n] = true
	defer delete(t.inProgress, n)
	return t.resolve(n, decl.path, decl.scope)
}

// A reference stands for what its target needs and produces. A word is not called by
// being referred to: its type as a value is still a word type.
func (t *Typer) resolveReference(s *scope, chain []string) (types.Type, types.Type, error) {
	if err := t.bindUsings(s); err != nil {
		return types.Type{}, types.Type{}, err
	}
	target, rest, err := t.lookup(s, chain)
	if err != nil {
		return types.Type{}, types.Type{}, err
	}
	if err := t.resolveDeclaration(target); err != nil {
		return types.Type{}, types.Type{}, err
	}
	out, err := project(target.OutType, rest)
	if err != nil {
		return types.Type{}, types.Type{}, err
	}
	return target.InType, out, nil
}

func (t *Typer) resolver(s *scope) Resolver {
	return func(chain []string) (types.Type, error) {
		_, out, err := t.resolveReference(s, chain)
		return out, err
	}
}

// Applies a type parameter to the inferred types. A declared type of None or Unknown
// accepts what was inferred. A declared in type is a parameter: a value that needs
// nothing by itself can be declared to need something. Otherwise the declared type must
// be the inferred one. In pass 1 anything not yet settled is left for pass 2.
func applyAnnotation(n *ast.Node, in, out types.Type, final bool) (types.Type, types.Type, error) {
	if n.Declared == nil {
		return in, out, nil
	}
	declaredIn, declaredOut := n.Declared.In.OutType, n.Declared.Out.OutType
	if ast.Constrains(declaredIn) && (final || settled(declaredIn, in)) {
		switch {
		case in.Unalias().Is(types.NONE):
			in = declaredIn
		case !types.Equal(declaredIn, in):
			return types.Type{}, types.Type{}, report.CreateErr("type/annotation", &n.Token, "in", declaredIn, in)
		}
	}
	if ast.Constrains(declaredOut) && (final || settled(declaredOut, out)) && !types.Equal(declaredOut, out) {
		return types.Type{}, types.Type{}, report.CreateErr("type/annotation", &n.Token, "out", declaredOut, out)
	}
	return in, out, nil
}

// A type a node was given before it was typed, and the type inferred for it.
type provisional struct {
	side     string
	given    types.Type
	inferred types.Type
}

// A node may come to the typer with types already given, e.g. by whatever built the tree.
// Unknown and None say nothing; any other given type must be what is inferred. Where
// pass 1 can't yet say what is inferred, the check waits for pass 2.
func (t *Typer) checkProvisional(n *ast.Node, in, out provisional) error {
	for _, p := range []provisional{in, out} {
		if !ast.Constrains(p.given) || p.given.HasUnknown() || p.given.HasReference() {
			continue
		}
		if p.inferred.HasUnknown() || p.inferred.HasReference() {
			t.deferred[n] = [2]provisional{in, out}
			continue
		}
		if !types.Equal(p.given, p.inferred) {
			return report.CreateErr("type/annotation", &n.Token, p.side, p.given, p.inferred)
		}
	}
	return nil
}

func settled(ts ...types.Type) bool {
	for _, t := range ts {
		if t.Is(types.UNKNOWN) || t.HasReference() {
			return false
		}
	}
	return true
}

// Computes the types of a node from its children's current types. With a nil Resolver
// this is pass 1, and anything involving a reference is left alone.
func combine(n *ast.Node, resolve Resolver) (types.Type, types.Type, error) {
	switch value := n.Value.(type) {
	case *ast.Atom:
		return types.None(), types.Atom(), nil
	case *ast.String:
		return types.None(), types.Array(types.Atom()), nil
	case *ast.Discard:
		return types.None(), types.None(), nil
	case *ast.Array:
		ins, outs := typesOf(value.Elements)
		in, err := requirements(ins, resolve)
		if err != nil {
			return types.Type{}, types.Type{}, err
		}
		if resolve == nil && anyReference(outs) {
			if _, err := types.Fold(withoutReferences(outs)); err != nil {
				return types.Type{}, types.Type{}, err
			}
			return in, types.Array(outs[0]), nil
		}
		elem, err := types.Fold(outs)
		if err != nil {
			return types.Type{}, types.Type{}, err
		}
		return in, types.Array(elem), nil
	case *ast.Context:
		fields := map[string]types.Type{}
		ins := []types.Type{}
		for _, k := range value.Keys() {
			fields[k] = value.Fields[k].OutType
			ins = append(ins, value.Fields[k].InType)
		}
		in, err := requirements(ins, resolve)
		if err != nil {
			return types.Type{}, types.Type{}, err
		}
		return in, types.Context(fields), nil
	case *ast.Word:
		if err := CheckSteps(value.Steps, resolve); err != nil {
			return types.Type{}, types.Type{}, err
		}
		in, out := WordTypes(value.Steps)
		return in, out, nil
	case *ast.TypeAlias:
		return value.Of.InType, types.Alias(value.Of.OutType), nil
	case *ast.TypeIdentity:
		return value.Of.InType, types.Identity(value.Of.OutType), nil
	case *ast.Module:
		return types.None(), moduleType(value), nil
	case *ast.Reference:
		return types.Reference(value.Chain...), types.Reference(value.Chain...), nil
	}
	panic("unhandled value " + fmt.Sprintf("%T", n.Value))
}

// What an aggregate needs is what all its members need.
func requirements(ins []types.Type, resolve Resolver) (types.Type, error) {
	if resolve == nil && anyReference(ins) {
		if _, err := types.FoldRequirements(withoutReferences(ins)); err != nil {
			return types.Type{}, err
		}
		return types.Unknown(), nil
	}
	return types.FoldRequirements(ins)
}

// A module as a value is the context of its declarations.
func moduleType(m *ast.Module) types.Type {
	fields := map[string]types.Type{}
	for name, decl := range m.Declarations {
		fields[name] = decl.OutType
	}
	return types.Context(fields)
}

func typesOf(nodes []*ast.Node) (ins, outs []types.Type) {
	for _, n := range nodes {
		ins = append(ins, n.InType)
		outs = append(outs, n.OutType)
	}
	return ins, outs
}

// The members that pass 1 can already fold with each other.
func withoutReferences(ts []types.Type) []types.Type {
	result := []types.Type{}
	for _, t := range ts {
		if !t.HasReference() && !t.HasUnknown() {
			result = append(result, t)
		}
	}
	return result
}

func anyReference(ts []types.Type) bool {
	for _, t := range ts {
		if t.HasReference() {
			return true
		}
	}
	return false
}

type child struct {
	node *ast.Node
	path vector.Vector
}

// The children of a node with their declaration paths. Pass 2 doesn't use this for
// modules, whose declarations it takes in dependency order.
func children(n *ast.Node, path vector.Vector) []child {
	result := []child{}
	switch value := n.Value.(type) {
	case *ast.Module:
		for _, name := range value.Names() {
			result = append(result, child{value.Declarations[name], path.Conj(name)})
		}
	case *ast.Context:
		for _, k := range value.Keys() {
			result = append(result, child{value.Fields[k], path.Conj(k)})
		}
	case *ast.TypeAlias:
		result = append(result, child{value.Of, path})
	case *ast.TypeIdentity:
		result = append(result, child{value.Of, path})
	default:
		for i, c := range n.Value.Children() {
			result = append(result, child{c, path.Conj(strconv.Itoa(i))})
		}
	}
	return result
}

// Lists the chains of all the references in a declaration, including those in its type
// parameters, but not those inside nested modules, which have scopes of their own.
func references(n *ast.Node) [][]string {
	result := [][]string{}
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if _, ok := n.Value.(*ast.Module); ok {
			return
		}
		if ref, ok := n.Value.(*ast.Reference); ok {
			result = append(result, ref.Chain)
		}
		if n.Declared != nil {
			walk(n.Declared.In)
			walk(n.Declared.Out)
		}
		for _, c := range n.Value.Children() {
			walk(c)
		}
	}
	walk(n)
	return result
}

func (t *Typer) fail(n *ast.Node, path vector.Vector, err error) error {
	if e, ok := err.(*report.Error); ok {
		e.At(pathOf(path))
		tok := n.Token
		e.On(&tok)
	}
	n.State = ast.FAILED
	n.Err = err
	return err
}

func (t *Typer) log(pass string, n *ast.Node, path vector.Vector) {
	if settings.SHOW_TYPER {
		fmt.Println(pass+":", strings.Join(pathOf(path), "."), "::", n.InType.String(), "->", n.OutType.String())
	}
}

// Gives the types of whatever a chain names, as seen from the root of the tree, once the
// tree has been checked.
func (t *Typer) TypeOf(chain []string) (types.Type, types.Type, error) {
	if len(chain) == 0 {
		return t.root.InType, t.root.OutType, nil
	}
	return t.resolveReference(t.top, chain)
}
