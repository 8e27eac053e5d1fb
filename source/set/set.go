package set

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type Set[E comparable] map[E]struct{}

func MakeFromSlice[E comparable](slice []E) *Set[E] {
	S := Set[E]{}
	for _, v := range slice {
		S.Add(v)
	}
	return &S
}

func (S *Set[E]) String() string {
	elements := []string{}
	for e := range *S {
		elements = append(elements, fmt.Sprintf("%v", e))
	}
	slices.Sort(elements)
	return "{" + strings.Join(elements, ", ") + "}"
}

func (S *Set[E]) ToSlice() []E {
	result := []E{}
	for e := range *S {
		result = append(result, e)
	}
	return result
}

func (S *Set[E]) IsEmpty() bool {
	return len(*S) == 0
}

func (S Set[E]) Add(e E) {
	S[e] = struct{}{}
}

func (S Set[E]) AddSet(T Set[E]) {
	for e := range T {
		S.Add(e)
	}
}

func (S Set[E]) Contains(e E) bool {
	_, found := S[e]
	return found
}

// Returns the elements in ascending order, so that anything built by iterating over a
// set comes out the same every time.
func Sorted[E cmp.Ordered](S Set[E]) []E {
	result := S.ToSlice()
	slices.Sort(result)
	return result
}

// Returns the least element of the set.
func Least[E cmp.Ordered](S Set[E]) (E, bool) {
	var result E
	ok := false
	for e := range S {
		if !ok || e < result {
			result = e
			ok = true
		}
	}
	return result, ok
}
