package ast

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tim-hardcastle/welang/source/token"
	"github.com/tim-hardcastle/welang/source/types"
)

// How far typing has got with a node.
type State int

const (
	UNKNOWN       State = iota // Freshly parsed.
	LOCALLY_TYPED              // Pass 1 is done: local structure is typed, references are left alone.
	RESOLVED                   // Pass 2 is done: every reference is replaced by its target's type.
	FAILED                     // Terminal; Err holds the first error.
)

func (s State) String() string {
	switch s {
	case UNKNOWN:
		return "unknown"
	case LOCALLY_TYPED:
		return "locally typed"
	case RESOLVED:
		return "resolved"
	case FAILED:
		return "failed"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// A Node is created once by the parser with provisional types, and then mutated in place by
// the two passes of the typer.
type Node struct {
	InType   types.Type
	OutType  types.Type
	Value    Value
	Token    token.Token
	Declared *Annotation // Non-nil if the source gave the node a type parameter.
	State    State
	Err      error
}

func (n *Node) String() string {
	if n.Declared != nil {
		return n.Declared.String() + n.Value.String()
	}
	return n.Value.String()
}

// The base Value interface.
type Value interface {
	Children() []*Node
	String() string
}

// Values in alphabetical order.

type Array struct {
	Elements []*Node
}

func (ar *Array) Children() []*Node { return ar.Elements }
func (ar *Array) String() string {
	elements := []string{}
	for _, e := range ar.Elements {
		elements = append(elements, e.String())
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

type Atom struct {
	Value uint32
}

func (at *Atom) Children() []*Node { return []*Node{} }
func (at *Atom) String() string    { return strconv.FormatUint(uint64(at.Value), 10) }

type Context struct {
	Fields map[string]*Node
}

func (cx *Context) Children() []*Node {
	result := []*Node{}
	for _, k := range cx.Keys() {
		result = append(result, cx.Fields[k])
	}
	return result
}

func (cx *Context) Keys() []string {
	return sortedKeys(cx.Fields)
}

func (cx *Context) String() string {
	fields := []string{}
	for _, k := range cx.Keys() {
		fields = append(fields, k+": "+cx.Fields[k].String())
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

type Discard struct{}

func (d *Discard) Children() []*Node { return []*Node{} }
func (d *Discard) String() string    { return "_" }

// A module is a namespace of declarations. A directory of source files is also a module,
// whose declarations are the modules made from its files and subdirectories.
type Module struct {
	Usings       [][]string
	Declarations map[string]*Node
	Source       string // The file or directory the module was made from, if any.
	Digest       string // The digest of the source code, if the module was made from a file.
}

func NewModule() *Module {
	return &Module{Usings: [][]string{}, Declarations: map[string]*Node{}}
}

func (m *Module) Children() []*Node {
	result := []*Node{}
	for _, k := range m.Names() {
		result = append(result, m.Declarations[k])
	}
	return result
}

func (m *Module) Names() []string {
	return sortedKeys(m.Declarations)
}

func (m *Module) String() string {
	var out strings.Builder
	for _, u := range m.Usings {
		out.WriteString("use " + strings.Join(u, ".") + "\n")
	}
	for _, k := range m.Names() {
		out.WriteString(k + ": " + m.Declarations[k].String() + "\n")
	}
	return out.String()
}

// An unresolved qualified name.
type Reference struct {
	Chain []string
}

func (r *Reference) Children() []*Node { return []*Node{} }
func (r *Reference) String() string    { return strings.Join(r.Chain, ".") }

type String struct {
	Value string
}

func (s *String) Children() []*Node { return []*Node{} }
func (s *String) String() string    { return strconv.Quote(s.Value) }

type TypeAlias struct {
	Of *Node
}

func (ta *TypeAlias) Children() []*Node { return []*Node{ta.Of} }
func (ta *TypeAlias) String() string    { return "'" + ta.Of.String() }

type TypeIdentity struct {
	Of *Node
}

func (ti *TypeIdentity) Children() []*Node { return []*Node{ti.Of} }
func (ti *TypeIdentity) String() string    { return "*" + ti.Of.String() }

// The steps of a word are held in execution order, first-executed first.
type Word struct {
	Steps []*Node
}

func (w *Word) Children() []*Node { return w.Steps }
func (w *Word) String() string {
	steps := []string{}
	for i := len(w.Steps) - 1; i >= 0; i-- {
		steps = append(steps, w.Steps[i].String())
	}
	return "(" + strings.Join(steps, " ") + ")"
}

func sortedKeys(m map[string]*Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Visits the node and everything below it, parents before children.
func Walk(n *Node, f func(*Node)) {
	f(n)
	for _, c := range n.Value.Children() {
		Walk(c, f)
	}
}
