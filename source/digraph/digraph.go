package digraph

// We have a digraph given in the form of a map associating each node with the set
// of nodes it points to, i.e. the declarations it refers to. We want to list all the
// nodes of the graph in such a way that no node X ever precedes a node Y in the list if
// there is a route from X to Y, or, if this is not possible given the map, our function
// should notice this and say so.

// We can do this like this:

// while there are leaf nodes in the graph :
// add all the leaf nodes to the end of the list
// remove the leaf nodes from the graph
// if there are still nodes in the graph :
// complain that the graph is cyclic
// otherwise :
// return the list

// If the graph contains a cycle then when we run out of leaf nodes the graph is
// non-empty, since no member of the cycle is a leaf node.

// The function returns the list and a cycle from the digraph: if the cycle is of length
// zero then the list is valid. Nodes are always visited in ascending order so that the
// same graph gives the same list and the same cycle every time.

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/tim-hardcastle/welang/source/set"
)

type Digraph[E cmp.Ordered] map[E]set.Set[E]

func (D *Digraph[E]) String() string {
	var out strings.Builder
	out.WriteString("{\n")
	for _, k := range set.Sorted(*D.SetOfNodes()) {
		v := (*D)[k]
		out.WriteString(fmt.Sprintf("%v : %v\n", k, v.String()))
	}
	out.WriteString("}\n")
	return out.String()
}

func Ordering[E cmp.Ordered](D Digraph[E]) ([]E, []E) {
	D = D.copy()
	result := []E{}
	for leafnodes := D.StripLeafnodes(); len(leafnodes) > 0; leafnodes = D.StripLeafnodes() {
		result = append(result, set.Sorted(leafnodes)...)
	}
	return result, extractCycle(&D)
}

// This is just for the Ordering function to use: *IF* the digraph at the end of the
// Ordering function is non-empty, then it consists of cycles and the paths leading into
// them, and we can follow arrows from any node until we come round to one we've seen.
func extractCycle[E cmp.Ordered](D *Digraph[E]) []E {
	start, ok := set.Least(*D.SetOfNodes())
	if !ok {
		return []E{}
	}
	result := []E{start}
	for next, ok := set.Least((*D)[start]); true; next, ok = set.Least((*D)[next]) {
		if !ok {
			panic("extractCycle has found a leaf node, this is bad.")
		}
		if i := Index(result, next); i != -1 {
			result = result[i:]
			break
		}
		result = append(result, next)
	}
	return result
}

// In a digraph D, if we have x in D[y] for some y but x itself is undefined, something has
// gone wrong. (x would NOT represent a leaf node, which would be represented by D[x] being
// {}.) In our case it means the caller has added an arrow to something outside the graph.
func (D *Digraph[E]) Check() (bool, E) {
	nodes := *(D.SetOfNodes())
	for _, v := range set.Sorted(nodes) {
		for _, w := range set.Sorted((*D)[v]) {
			if !nodes.Contains(w) {
				return false, w
			}
		}
	}
	var x E
	return true, x
}

func (D *Digraph[E]) SetOfNodes() *set.Set[E] {
	result := set.Set[E]{}
	for x := range *D {
		result.Add(x)
	}
	return &result
}

func (D *Digraph[E]) Add(node E, neighbors []E) {
	s := *set.MakeFromSlice(neighbors)
	(*D)[node] = s
}

// Adds an arrow, creating the nodes at either end if necessary.
func (D *Digraph[E]) AddArrow(a, b E) {
	if _, ok := (*D)[a]; !ok {
		(*D)[a] = set.Set[E]{}
	}
	if _, ok := (*D)[b]; !ok {
		(*D)[b] = set.Set[E]{}
	}
	(*D)[a].Add(b)
}

func (D *Digraph[E]) StripLeafnodes() set.Set[E] {
	result := set.Set[E]{}
	for k, v := range *D {
		if v.IsEmpty() {
			result.Add(k)
		}
	}
	for k := range result {
		delete(*D, k)
	}
	for _, V := range *D {
		for e := range result {
			delete(V, e)
		}
	}
	return result
}

func (D Digraph[E]) copy() Digraph[E] {
	result := Digraph[E]{}
	for k, v := range D {
		s := set.Set[E]{}
		s.AddSet(v)
		result[k] = s
	}
	return result
}

func Index[E comparable](slice []E, element E) int {
	result := -1
	for k, v := range slice {
		if v == element {
			result = k
			break
		}
	}
	return result
}

func (T *Digraph[E]) PointsTo(candidate, target E) bool {
	return (*T)[candidate].Contains(target)
}
