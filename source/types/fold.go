package types

import (
	"github.com/tim-hardcastle/welang/source/report"
)

// Computes one representative type for a sequence of member types, folding left from
// None. An empty sequence folds to None. The seed absorbs the first member, so a single
// member folds to itself with its aliases stripped.
func Fold(members []Type) (Type, error) {
	if len(members) == 0 {
		return None(), nil
	}
	acc := members[0].Unalias()
	if acc.HasReference() {
		return Type{}, report.CreateErr("type/fold/reference", nil, None(), acc)
	}
	for _, next := range members[1:] {
		var err error
		acc, err = Merge(acc, next)
		if err != nil {
			return Type{}, err
		}
	}
	return acc, nil
}

// Folds the input requirements of the members of an aggregate. A member which needs
// nothing accepts anything, so None members drop out before folding.
func FoldRequirements(members []Type) (Type, error) {
	needed := []Type{}
	for _, t := range members {
		if !t.Unalias().IsEmpty() {
			needed = append(needed, t)
		}
	}
	return Fold(needed)
}

// Combines two types. Nothing is ever widened or coerced: two types combine if they are
// structurally identical, if they are identities of the same type, or if they are contexts
// which agree on the keys they share.
func Merge(acc, next Type) (Type, error) {
	a, b := acc.Unalias(), next.Unalias()
	switch {
	case a.HasReference() || b.HasReference():
		return Type{}, report.CreateErr("type/fold/reference", nil, a, b)
	case a.Kind == IDENTITY && b.Kind == IDENTITY:
		if Identical(*a.Elem, *b.Elem) {
			return a, nil
		}
		return Type{}, report.CreateErr("type/fold/identity/a", nil, a, b)
	case a.Kind == IDENTITY || b.Kind == IDENTITY:
		return Type{}, report.CreateErr("type/fold/identity/b", nil, a, b)
	case a.Kind == CONTEXT && b.Kind == CONTEXT:
		return mergeContexts(a, b)
	case Equal(a, b):
		return a, nil
	case a.Kind == ARRAY && b.Kind == ARRAY:
		return Type{}, report.CreateErr("type/fold/array", nil, a, b)
	case a.Kind == WORD && b.Kind == WORD:
		return Type{}, report.CreateErr("type/fold/word", nil, a, b)
	}
	return Type{}, report.CreateErr("type/fold/combination", nil, a, b)
}

// Key-wise union. A key in only one context is copied; a key in both must have the same
// type in both.
func mergeContexts(a, b Type) (Type, error) {
	fields := make(map[string]Type, len(a.Fields)+len(b.Fields))
	for k, v := range a.Fields {
		fields[k] = v
	}
	for _, k := range b.Keys() {
		suggested := b.Fields[k]
		current, ok := fields[k]
		if !ok {
			fields[k] = suggested
			continue
		}
		if !Equal(current, suggested) {
			return Type{}, report.CreateErr("type/fold/context", nil, k, current, suggested)
		}
	}
	return Type{Kind: CONTEXT, Fields: fields}, nil
}
