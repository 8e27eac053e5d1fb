package types

import (
	"sort"
	"strings"
)

type Kind int

const (
	UNKNOWN   Kind = iota // Not yet typed. Never the result of typing anything.
	NONE                  // Absence of required input or of produced output.
	ATOM                  // An opaque scalar.
	ARRAY                 // A homogeneous sequence of Elem.
	CONTEXT               // A structural record of Fields.
	WORD                  // A pipeline whose overall effect produces Elem.
	REFERENCE             // An unresolved qualified name, Chain.
	IDENTITY              // A nominal wrapper around Elem.
	ALIAS                 // A transparent wrapper around Elem.
)

var kindNames = map[Kind]string{
	UNKNOWN:   "Unknown",
	NONE:      "None",
	ATOM:      "Atom",
	ARRAY:     "Array",
	CONTEXT:   "Context",
	WORD:      "Word",
	REFERENCE: "Reference",
	IDENTITY:  "Identity",
	ALIAS:     "Alias",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Types are values: constructors never share mutable state with their arguments except
// through the Fields map of a context, which is treated as immutable once built.
type Type struct {
	Kind   Kind
	Elem   *Type
	Fields map[string]Type
	Chain  []string
}

func Unknown() Type { return Type{Kind: UNKNOWN} }
func None() Type    { return Type{Kind: NONE} }
func Atom() Type    { return Type{Kind: ATOM} }

func Array(elem Type) Type  { return Type{Kind: ARRAY, Elem: &elem} }
func Word(out Type) Type    { return Type{Kind: WORD, Elem: &out} }
func Identity(of Type) Type { return Type{Kind: IDENTITY, Elem: &of} }
func Alias(of Type) Type    { return Type{Kind: ALIAS, Elem: &of} }

func Reference(chain ...string) Type {
	return Type{Kind: REFERENCE, Chain: append([]string{}, chain...)}
}

func Context(fields map[string]Type) Type {
	copied := make(map[string]Type, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Type{Kind: CONTEXT, Fields: copied}
}

func (t Type) Is(k Kind) bool {
	return t.Kind == k
}

// Whether the type is absent: either not typed yet, or typed as needing/producing nothing.
func (t Type) IsEmpty() bool {
	return t.Kind == UNKNOWN || t.Kind == NONE
}

// Strips any number of alias layers off the outside of the type.
func (t Type) Unalias() Type {
	for t.Kind == ALIAS {
		t = *t.Elem
	}
	return t
}

// Whether there is a reference anywhere inside the type.
func (t Type) HasReference() bool {
	switch t.Kind {
	case REFERENCE:
		return true
	case ARRAY, WORD, IDENTITY, ALIAS:
		return t.Elem.HasReference()
	case CONTEXT:
		for _, v := range t.Fields {
			if v.HasReference() {
				return true
			}
		}
	}
	return false
}

// Whether there is an Unknown anywhere inside the type.
func (t Type) HasUnknown() bool {
	switch t.Kind {
	case UNKNOWN:
		return true
	case ARRAY, WORD, IDENTITY, ALIAS:
		return t.Elem.HasUnknown()
	case CONTEXT:
		for _, v := range t.Fields {
			if v.HasUnknown() {
				return true
			}
		}
	}
	return false
}

// Structural equality. Aliases are unwrapped at every level on both sides until an
// Identity is reached: identities compare only with identities, and what they wrap must
// be Identical. References are never equal to anything.
func Equal(a, b Type) bool {
	a, b = a.Unalias(), b.Unalias()
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case UNKNOWN, REFERENCE:
		return false
	case NONE, ATOM:
		return true
	case ARRAY, WORD:
		return Equal(*a.Elem, *b.Elem)
	case IDENTITY:
		return Identical(*a.Elem, *b.Elem)
	case CONTEXT:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for k, v := range a.Fields {
			w, ok := b.Fields[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	}
	return false
}

// Equality with nothing unwrapped: an Alias is only identical to an Alias of an identical
// type.
func Identical(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case UNKNOWN, REFERENCE:
		return false
	case NONE, ATOM:
		return true
	case ARRAY, WORD, IDENTITY, ALIAS:
		return Identical(*a.Elem, *b.Elem)
	case CONTEXT:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for k, v := range a.Fields {
			w, ok := b.Fields[k]
			if !ok || !Identical(v, w) {
				return false
			}
		}
		return true
	}
	return false
}

// Replaces every reference inside the type by what the resolver says it stands for.
func Deref(t Type, resolve func(chain []string) (Type, error)) (Type, error) {
	switch t.Kind {
	case REFERENCE:
		return resolve(t.Chain)
	case ARRAY, WORD, IDENTITY, ALIAS:
		elem, err := Deref(*t.Elem, resolve)
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: t.Kind, Elem: &elem}, nil
	case CONTEXT:
		fields := make(map[string]Type, len(t.Fields))
		for k, v := range t.Fields {
			w, err := Deref(v, resolve)
			if err != nil {
				return Type{}, err
			}
			fields[k] = w
		}
		return Type{Kind: CONTEXT, Fields: fields}, nil
	}
	return t, nil
}

// Returns the keys of a context type in sorted order.
func (t Type) Keys() []string {
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (t Type) String() string {
	switch t.Kind {
	case ARRAY, WORD, IDENTITY, ALIAS:
		return t.Kind.String() + "(" + t.Elem.String() + ")"
	case CONTEXT:
		fields := []string{}
		for _, k := range t.Keys() {
			fields = append(fields, k+": "+t.Fields[k].String())
		}
		return "Context({" + strings.Join(fields, ", ") + "})"
	case REFERENCE:
		return "Reference(" + strings.Join(t.Chain, ".") + ")"
	}
	return t.Kind.String()
}
