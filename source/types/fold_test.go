package types

import (
	"testing"

	"github.com/tim-hardcastle/welang/source/report"
)

func ctxt(pairs ...any) Type {
	fields := map[string]Type{}
	for i := 0; i < len(pairs); i += 2 {
		fields[pairs[i].(string)] = pairs[i+1].(Type)
	}
	return Context(fields)
}

type foldItem struct {
	members []Type
	want    Type
	errorId string
}

func TestFold(t *testing.T) {
	items := []foldItem{
		{[]Type{}, None(), ""},
		{[]Type{Atom()}, Atom(), ""},
		{[]Type{Alias(Atom())}, Atom(), ""},
		{[]Type{Atom(), Atom(), Alias(Atom())}, Atom(), ""},
		{[]Type{None(), None()}, None(), ""},
		{[]Type{Array(Atom()), Array(Atom())}, Array(Atom()), ""},
		{[]Type{Word(Atom()), Word(Alias(Atom()))}, Word(Atom()), ""},
		{[]Type{Identity(Atom()), Identity(Atom())}, Identity(Atom()), ""},
		{[]Type{ctxt("a", Atom()), ctxt("b", Atom())}, ctxt("a", Atom(), "b", Atom()), ""},
		{[]Type{ctxt("b", Atom()), ctxt("a", Atom())}, ctxt("a", Atom(), "b", Atom()), ""},
		{[]Type{ctxt("a", Atom()), ctxt("a", Alias(Atom()), "c", None())}, ctxt("a", Atom(), "c", None()), ""},
		{[]Type{ctxt(), ctxt()}, ctxt(), ""},
		{[]Type{ctxt("a", Atom()), ctxt("a", Array(Atom()))}, Type{}, "type/fold/context"},
		{[]Type{Array(Atom()), Array(None())}, Type{}, "type/fold/array"},
		{[]Type{Word(Atom()), Word(None())}, Type{}, "type/fold/word"},
		{[]Type{Identity(Atom()), Identity(Array(Atom()))}, Type{}, "type/fold/identity/a"},
		{[]Type{Identity(Alias(Atom())), Identity(Atom())}, Type{}, "type/fold/identity/a"},
		{[]Type{Identity(Alias(Atom())), Identity(Alias(Atom()))}, Identity(Alias(Atom())), ""},
		{[]Type{Alias(Identity(Atom())), Identity(Atom())}, Identity(Atom()), ""},
		{[]Type{Identity(Atom()), Atom()}, Type{}, "type/fold/identity/b"},
		{[]Type{Atom(), Identity(Atom())}, Type{}, "type/fold/identity/b"},
		{[]Type{Atom(), None()}, Type{}, "type/fold/combination"},
		{[]Type{None(), Atom()}, Type{}, "type/fold/combination"},
		{[]Type{Atom(), Array(Atom())}, Type{}, "type/fold/combination"},
		{[]Type{ctxt(), Atom()}, Type{}, "type/fold/combination"},
		{[]Type{Word(Atom()), Atom()}, Type{}, "type/fold/combination"},
		{[]Type{Reference("x")}, Type{}, "type/fold/reference"},
		{[]Type{Atom(), Array(Reference("x"))}, Type{}, "type/fold/reference"},
	}
	for i, item := range items {
		got, err := Fold(item.members)
		if item.errorId != "" {
			if report.IdOf(err) != item.errorId {
				t.Fatalf("[%d] wanted error %s, got %v", i, item.errorId, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[%d] unexpected error %v", i, err)
		}
		if !Equal(got, item.want) {
			t.Fatalf("[%d] wanted %v, got %v", i, item.want, got)
		}
	}
}

func TestFoldErrorKinds(t *testing.T) {
	_, err := Fold([]Type{ctxt("a", Atom()), ctxt("a", Array(Atom()))})
	if kind, _ := report.KindOf(err); kind != report.StructuralMismatch {
		t.Fatalf("context conflict should be a structural mismatch, was %v", kind)
	}
	e := err.(*report.Error)
	if e.Args[0] != "a" {
		t.Fatalf("context conflict should name the key, named %v", e.Args[0])
	}
	_, err = Fold([]Type{Atom(), Array(Atom())})
	if kind, _ := report.KindOf(err); kind != report.UnimplementedCombination {
		t.Fatalf("atom with array should be an unimplemented combination, was %v", kind)
	}
}

func TestFoldRequirements(t *testing.T) {
	got, err := FoldRequirements([]Type{None(), ctxt("a", Atom()), Alias(None()), ctxt("b", Atom())})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !Equal(got, ctxt("a", Atom(), "b", Atom())) {
		t.Fatalf("got %v", got)
	}
	got, err = FoldRequirements([]Type{None(), None()})
	if err != nil || !got.Is(NONE) {
		t.Fatalf("got %v, %v", got, err)
	}
}
